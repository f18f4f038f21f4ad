package cmddebug

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/creachadair/command"
	"github.com/creachadair/tripcode"
	"github.com/creachadair/tripcode/alphabet"
	"github.com/creachadair/tripcode/descrypt"
)

var Command = &command.C{
	Name:     "debug",
	Help:     "Debug commands for the tripcode primitives.",
	Unlisted: true,

	Commands: []*command.C{{
		Name:  "crypt",
		Usage: "<key> <salt>",
		Help:  "Print the crypt(3) string for a key and a two-character salt.",
		Run:   command.Adapt(runDebugCrypt),
	}, {
		Name:  "salt",
		Usage: "<password>",
		Help:  "Print the DES salt derived from a password.",
		Run:   command.Adapt(runDebugSalt),
	}, {
		Name:  "raw",
		Usage: "<password>",
		Help:  "Check and convert a raw key password.",
		Run:   command.Adapt(runDebugRaw),
	}, {
		Name:  "encode",
		Usage: "<alphabet> <hex> [offset [count]]",
		Help: `Encode hex-encoded bytes in the named alphabet.

The offset is a bit offset into the input, default 0. The count is the
number of symbols to emit, default enough to cover the input.`,
		Run: command.Adapt(runDebugEncode),
	}},
}

// runDebugCrypt implements the "debug crypt" subcommand.
func runDebugCrypt(env *command.Env, key, salt string) error {
	if len(salt) != 2 {
		return env.Usagef("salt must be 2 bytes, got %d", len(salt))
	}
	fmt.Fprintln(env, descrypt.Crypt([]byte(key), [2]byte{salt[0], salt[1]}))
	return nil
}

// runDebugSalt implements the "debug salt" subcommand.
func runDebugSalt(env *command.Env, password string) error {
	salt := tripcode.Salt([]byte(password))
	fmt.Fprintf(env, "%s\t%s\n", salt[:], tripcode.DES([]byte(password), salt[0], salt[1]))
	return nil
}

// runDebugRaw implements the "debug raw" subcommand.
func runDebugRaw(env *command.Env, password string) error {
	trip, err := tripcode.RawKey([]byte(password))
	if err != nil {
		return err
	}
	fmt.Fprintln(env, trip)
	return nil
}

// runDebugEncode implements the "debug encode" subcommand.
func runDebugEncode(env *command.Env, name, data string, rest ...string) error {
	alpha := alphabet.Lookup(name)
	if alpha == nil {
		return env.Usagef("unknown alphabet %q", name)
	}
	src, err := hex.DecodeString(data)
	if err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	if len(rest) > 2 {
		return env.Usagef("extra arguments after count: %q", rest[2:])
	}
	var args [2]int
	for i, s := range rest {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return env.Usagef("invalid argument %q", s)
		}
		args[i] = v
	}
	offset, count := args[0], args[1]
	if len(rest) < 2 {
		count = (8*len(src) - offset + 5) / 6
	}
	fmt.Fprintln(env, alpha.Encode(src, offset, max(count, 0)))
	return nil
}
