// Program tripcode is a command-line tool for imageboard tripcodes.
package main

import (
	"cmp"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/mds/mbits"
	"github.com/creachadair/mds/value"
	"github.com/creachadair/tripcode"
	"github.com/creachadair/tripcode/cmd/tripcode/config"
	"github.com/creachadair/tripcode/cmd/tripcode/internal/cmdcli"
	"github.com/creachadair/tripcode/cmd/tripcode/internal/cmddebug"
	tcconfig "github.com/creachadair/tripcode/config"
	"github.com/creachadair/tripcode/tclib"
)

var flags struct {
	Type     string `flag:"type,Tripcode format (see 'tripcode formats')"`
	Filter   bool   `flag:"filter,Read passwords from stdin, one per line"`
	Password bool   `flag:"password,Print '#password' after each tripcode"`
	Prefix   bool   `flag:"prefix,Print a marker before each tripcode"`
	Encoding string `flag:"encoding,Convert passwords to this character encoding"`
	OutEnc   string `flag:"output-encoding,Write output lines in this character encoding"`
	Prompt   bool   `flag:"prompt,Read a password from the terminal"`
	Jobs     int    `flag:"jobs,Number of concurrent workers (0 means one per CPU)"`
	Output   string `flag:"output,Write output to this file instead of stdout"`
	Copy     bool   `flag:"copy,Copy output to the clipboard instead of stdout"`
	Config   string `flag:"config,default=$TRIPCODE_CONFIG,Configuration file path"`
}

func main() {
	root := &command.C{
		Name:  command.ProgramName(),
		Usage: "[flags] [password ...]",
		Help: `◆ Generate imageboard tripcodes.

Each password given on the command line is converted to a tripcode and
printed, one per line, in the order given. Use --type to choose the
format (the default is 4chan); the "formats" command lists them all.

With --filter, or when no passwords are given and stdin is not a
terminal, passwords are also read from stdin one per line, after any
given as arguments. With --prompt, a single password is read from the
terminal without echo.

Use --output-encoding to write the output in another character set,
for example shift_jis for katakana tripcodes on a Shift-JIS terminal.

A password that is the name of a subcommand must be given with --filter
or --prompt.`,

		SetFlags: command.Flags(flax.MustBind, &flags),
		Init:     initSettings,
		Run:      command.Adapt(runGenerate),

		Commands: append(
			cmdcli.Commands,
			command.HelpCommand([]command.HelpTopic{{
				Name: "config",
				Help: `Syntax of the configuration file.

The configuration file sets defaults for the command-line flags. It is
read from --config or $TRIPCODE_CONFIG if set, otherwise from
tripcode/config.yaml in the user configuration directory. A file whose
name ends in ".toml" is read as TOML, anything else as YAML:

  type: mona          # default --type
  prefix: true        # default --prefix
  password: false     # default --password
  encoding: shift_jis # default --encoding
  jobs: 4             # default --jobs
  marker: "◆"         # marker printed by --prefix

Flags given on the command line take precedence over the file.`,
			}}),
			command.VersionCommand(),
			cmddebug.Command,
		),
	}
	command.RunOrFail(root.NewEnv(nil).MergeFlags(true), os.Args[1:])
}

// initSettings merges the flags with the config file into the settings
// shared by all subcommands.
func initSettings(env *command.Env) error {
	if flags.Jobs < 0 {
		return env.Usagef("the job count (--jobs) must not be negative")
	}
	var cfg *tcconfig.Config
	var err error
	if flags.Config != "" {
		cfg, err = tcconfig.Load(flags.Config)
		if err != nil {
			return err
		}
	} else if cfg, err = tcconfig.LoadDefault(); err != nil {
		log.Printf("WARNING: %v (ignored)", err)
		cfg = new(tcconfig.Config)
	}
	cur := tcconfig.Config{
		Type:     flags.Type,
		Encoding: flags.Encoding,
		Jobs:     flags.Jobs,
	}.Merge(*cfg)

	f, err := tripcode.ParseFormat(cmp.Or(cur.Type, tripcode.Fourchan.String()))
	if err != nil {
		return env.Usagef("%v", err)
	}
	enc, err := tclib.LookupEncoding(cur.Encoding)
	if err != nil {
		return env.Usagef("%v", err)
	}
	outEnc, err := tclib.LookupEncoding(flags.OutEnc)
	if err != nil {
		return env.Usagef("--output-encoding: %v", err)
	}
	env.Config = &config.Settings{
		Format:   f,
		Encoding: enc,
		Jobs:     cur.Jobs,
		Output:   flags.Output,
		OutEnc:   outEnc,
		Prefix:   flags.Prefix || value.At(cur.Prefix),
		Password: flags.Password || value.At(cur.Password),
		Marker:   cmp.Or(cur.Marker, tclib.DefaultMarker()),
	}
	return nil
}

// runGenerate implements the root command.
func runGenerate(env *command.Env, passwords ...string) error {
	set := config.Get(env)
	if flags.Copy && set.Output != "" {
		return env.Usagef("--copy and --output are mutually exclusive")
	}

	var raw [][]byte
	switch {
	case flags.Prompt:
		if flags.Filter || len(passwords) != 0 {
			return env.Usagef("--prompt does not accept --filter or password arguments")
		}
		pw, err := tclib.GetPassword("Password: ")
		if err != nil {
			return err
		}
		raw = [][]byte{[]byte(pw)}
		defer mbits.Zero(raw[0])

	case flags.Filter || (len(passwords) == 0 && !tclib.StdinIsTerminal()):
		lines, err := tclib.FilterInputs(passwords, os.Stdin)
		if err != nil {
			return err
		}
		raw = lines

	case len(passwords) == 0:
		return env.Usagef("no passwords given")

	default:
		for _, pw := range passwords {
			raw = append(raw, []byte(pw))
		}
	}

	inputs, err := tclib.NewInputs(set.Encoding, raw)
	if err != nil {
		return err
	}
	if flags.Prompt && set.Encoding != nil {
		defer mbits.Zero(inputs[0].Data)
	}

	ctx, cancel := signal.NotifyContext(env.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	results, err := tclib.GenerateAll(ctx, set.Format, inputs, set.Jobs)
	if err != nil {
		return err
	}
	for i, r := range results {
		if r.Err != nil {
			log.Printf("WARNING: password %d: %v", i+1, r.Err)
		}
	}
	if flags.Copy {
		if err := tclib.CopyToClipboard(set.Formatter(), results); err != nil {
			return fmt.Errorf("copying output: %w", err)
		}
		fmt.Fprintf(env, "<copied %d tripcodes>\n", len(results))
		return nil
	}
	return tclib.WriteLines(env, set.Output, set.Formatter(), results)
}
