// Package tclib is a support library for the tripcode tool.
package tclib

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/atomicfile"
	"github.com/creachadair/getpass"
	"github.com/creachadair/mds/value"
	"golang.org/x/term"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// An Input is a password to generate a tripcode for.
type Input struct {
	Text string // the password as given by the user
	Data []byte // the bytes to hash
}

// ReadLines reads r to EOF and splits the result into lines at each "\n".
// Any other line-ending characters, including "\r", are kept. A final empty
// line is not reported.
func ReadLines(r io.Reader) ([][]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	lines := bytes.Split(data, []byte("\n"))
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// FilterInputs returns the given passwords followed by the lines of r, as
// split by ReadLines.
func FilterInputs(passwords []string, r io.Reader) ([][]byte, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(passwords)+len(lines))
	for _, pw := range passwords {
		out = append(out, []byte(pw))
	}
	return append(out, lines...), nil
}

// LookupEncoding returns the character encoding with the given name, using
// the names defined by the WHATWG Encoding Standard (for example "shift_jis"
// or "euc-jp"). The empty string and UTF-8 return nil, meaning passwords are
// used as given.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == encoding.Nop || enc == htmlindex.MustGet("utf-8") {
		return nil, nil
	}
	return enc, nil
}

// Encode returns the bytes of text in enc. If enc == nil, text is returned
// as given.
func Encode(enc encoding.Encoding, text []byte) ([]byte, error) {
	if enc == nil {
		return text, nil
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), text)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", text, err)
	}
	return out, nil
}

// NewInputs converts each of the given passwords into an Input, encoding its
// bytes with enc.
func NewInputs(enc encoding.Encoding, passwords [][]byte) ([]Input, error) {
	out := make([]Input, len(passwords))
	for i, pw := range passwords {
		data, err := Encode(enc, pw)
		if err != nil {
			return nil, fmt.Errorf("password %d: %w", i+1, err)
		}
		out[i] = Input{Text: string(pw), Data: data}
	}
	return out, nil
}

// GetPassword prompts the user at the terminal for a password with echo
// disabled.
func GetPassword(prompt string) (string, error) {
	pw, err := getpass.Prompt(prompt)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}

// StdinIsTerminal reports whether standard input is connected to a terminal.
func StdinIsTerminal() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// DefaultMarker returns the mark printed before a tripcode: "◆" if the
// user's locale is Japanese, otherwise "!".
func DefaultMarker() string {
	var locale string
	for _, v := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if locale = os.Getenv(v); locale != "" {
			break
		}
	}
	return value.Cond(strings.HasPrefix(locale, "ja"), "◆", "!")
}

// A Formatter renders results as output lines.
type Formatter struct {
	Marker       string // if non-empty, printed before each tripcode
	ShowPassword bool   // if true, print "#password" after each tripcode

	// If non-nil, WriteLines converts its output from UTF-8 to this
	// encoding. Characters the encoding lacks become its substitute byte.
	Encoding encoding.Encoding
}

// Line returns the output line for r, without a trailing newline.
func (f Formatter) Line(r Result) string {
	var sb strings.Builder
	sb.WriteString(f.Marker)
	sb.WriteString(r.Tripcode)
	if f.ShowPassword {
		sb.WriteString("#")
		sb.WriteString(r.Input.Text)
	}
	return sb.String()
}

// WriteLines writes the formatted lines for results to w, or atomically to
// the file at path if path != "".
func WriteLines(w io.Writer, path string, f Formatter, results []Result) error {
	writeAll := func(w io.Writer) error {
		for _, r := range results {
			if _, err := fmt.Fprintln(w, f.Line(r)); err != nil {
				return err
			}
		}
		return nil
	}
	write := func(w io.Writer) error {
		if f.Encoding == nil {
			return writeAll(w)
		}
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(f.Encoding.NewEncoder()))
		if err := writeAll(tw); err != nil {
			tw.Close()
			return err
		}
		return tw.Close() // flush
	}
	if path == "" {
		return write(w)
	}
	return atomicfile.Tx(path, 0644, func(f *atomicfile.File) error {
		return write(f)
	})
}
