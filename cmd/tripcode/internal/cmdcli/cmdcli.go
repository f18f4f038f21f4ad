package cmdcli

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/mds/value"
	"github.com/creachadair/tripcode"
	"github.com/creachadair/tripcode/cmd/tripcode/config"
	"github.com/creachadair/tripcode/tclib"
)

var Commands = []*command.C{
	{
		Name: "formats",
		Help: "List the supported tripcode formats.",
		Run:  command.Adapt(runFormats),
	},
	{
		Name:  "check",
		Usage: "<format> <tripcode>...",
		Help: `Check whether each tripcode could be generated in a format.

Each argument is reported as "ok" or "invalid". The check covers the
length and alphabet of the format; it does not, and cannot, recover
a password. The command fails if any argument is invalid.`,
		Run: command.Adapt(runCheck),
	},
	{
		Name:  "search",
		Usage: "<prefix>",
		Help: `Search for passwords whose tripcodes begin with a prefix.

Random passwords are generated and converted in the format selected
by --type until --count matches are found. Each match is printed as
it is found, with the password. Use --digits and --symbols to widen
the characters used in candidate passwords, and -n to set their length.

The search runs until it succeeds, --max candidates have been tried,
or it is interrupted. Each additional prefix character multiplies the
expected running time by 64.`,
		SetFlags: command.Flags(flax.MustBind, &searchFlags),
		Run:      command.Adapt(runSearch),
	},
}

// runFormats implements the "formats" subcommand.
func runFormats(env *command.Env) error {
	tw := tabwriter.NewWriter(env, 4, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLENGTH\tALIASES\tDESCRIPTION")
	for _, f := range tripcode.Formats() {
		length := value.Cond(f.Length() == 0, "auto", fmt.Sprint(f.Length()))
		aliases := value.Cond(len(f.Aliases()) == 0, "-", strings.Join(f.Aliases(), ","))
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f, length, aliases, f.Help())
	}
	return tw.Flush()
}

// runCheck implements the "check" subcommand.
func runCheck(env *command.Env, name string, trips ...string) error {
	f, err := tripcode.ParseFormat(name)
	if err != nil {
		return env.Usagef("%v", err)
	}
	if len(trips) == 0 {
		return env.Usagef("no tripcodes to check")
	}
	tw := tabwriter.NewWriter(env, 4, 0, 2, ' ', 0)
	var nbad int
	for _, s := range trips {
		err := tripcode.Check(f, s)
		if err != nil {
			nbad++
		}
		fmt.Fprintf(tw, "%s\t%s\n", s, value.Cond(err == nil, "ok", "invalid"))
	}
	if err := tw.Flush(); err != nil {
		return err
	} else if nbad != 0 {
		return fmt.Errorf("%d of %d are not valid %v tripcodes", nbad, len(trips), f)
	}
	return nil
}

var searchFlags struct {
	Length  int   `flag:"n,default=8,Length of candidate passwords"`
	Count   int   `flag:"count,default=1,Number of matches to find"`
	Digits  bool  `flag:"digits,Include digits in candidate passwords"`
	Symbols bool  `flag:"symbols,Include punctuation in candidate passwords"`
	Max     int64 `flag:"max,Give up after this many candidates (0 means no limit)"`
}

// runSearch implements the "search" subcommand.
func runSearch(env *command.Env, prefix string) error {
	if searchFlags.Length <= 0 {
		return env.Usagef("the length (-n) must be positive")
	} else if searchFlags.Count <= 0 {
		return env.Usagef("the count (--count) must be positive")
	}
	set := config.Get(env)

	cs := tclib.Letters
	if searchFlags.Digits {
		cs |= tclib.Digits
	}
	if searchFlags.Symbols {
		cs |= tclib.Symbols
	}

	ctx, cancel := signal.NotifyContext(env.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Candidates are ASCII, so set.Encoding does not apply to them.
	lf := set.Formatter()
	lf.ShowPassword = true
	tries, err := tclib.Search(ctx, tclib.SearchOptions{
		Format:   set.Format,
		Prefix:   prefix,
		Length:   searchFlags.Length,
		Charset:  cs,
		Count:    searchFlags.Count,
		Jobs:     set.Jobs,
		MaxTries: searchFlags.Max,
	}, func(r tclib.Result) error {
		return tclib.WriteLines(env, "", lf, []tclib.Result{r})
	})
	if err != nil && tries != 0 && !errors.Is(err, tclib.ErrNotFound) {
		return fmt.Errorf("search stopped after %d tries: %w", tries, err)
	}
	return err
}
