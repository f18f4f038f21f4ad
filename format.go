package tripcode

import (
	"fmt"
	"strings"

	"github.com/creachadair/tripcode/alphabet"
)

// A Format selects a tripcode generation rule.
// The zero value is Fourchan.
type Format int

const (
	// Fourchan is the DES tripcode of the 4chan family of boards. The
	// password is HTML-escaped first.
	Fourchan Format = iota

	// FourchanNonescaping is Fourchan for a password that has already been
	// escaped by the board.
	FourchanNonescaping

	// Mona is the 2channel tripcode. The password is HTML-escaped, except
	// for "&", and then:
	//
	//   - if it is shorter than 12 bytes the result is as Mona10;
	//   - if it begins with "#" the result is as MonaRaw;
	//   - if it begins with "$" the result is Invalid (reserved);
	//   - otherwise the result is as Mona12.
	Mona

	// MonaNonescaping is Mona for a password that has already been escaped.
	MonaNonescaping

	// Mona10 is the 10-character DES tripcode of 2channel, for any length of
	// password.
	Mona10

	// Mona12 is the 12-character SHA1 tripcode of 2channel, for any length
	// of password.
	Mona12

	// Mona12Nonescaping is Mona12 for a password that has already been
	// escaped.
	Mona12Nonescaping

	// MonaRaw is the "nama key" format, which takes its DES key and salt
	// directly from the password. See RawKey.
	MonaRaw

	// Sc is the 2ch.sc tripcode for UTF-8 passwords. The password is not
	// escaped. Passwords shorter than 12 bytes are as FourchanNonescaping.
	// Longer passwords beginning with "#" are as MonaRaw, those beginning
	// with "$" are as ScKatakana if the next character is a half-width
	// katakana and as Sc15 otherwise, and the rest are as Mona12Nonescaping.
	Sc

	// ScSJIS is as Sc, for passwords encoded in Shift-JIS. This is the
	// format named "sc", since the 2ch.sc boards take Shift-JIS input.
	ScSJIS

	// Sc15 is the 15-character SHA1 tripcode of 2ch.sc.
	Sc15

	// ScKatakana is the 15-character katakana tripcode of 2ch.sc.
	ScKatakana

	numFormats
)

type formatInfo struct {
	name    string
	aliases []string
	length  int                // 0 if the length depends on the password
	alpha   *alphabet.Alphabet // nil if the alphabet depends on the password
	help    string
}

var formats = [numFormats]formatInfo{
	Fourchan: {
		name:    "4chan",
		aliases: []string{"4ch", "4"},
		length:  10,
		alpha:   alphabet.Crypt,
		help:    "4chan DES tripcode",
	},
	FourchanNonescaping: {
		name:   "4chan-nonescaping",
		length: 10,
		alpha:  alphabet.Crypt,
		help:   "4chan DES tripcode of a pre-escaped password",
	},
	Mona: {
		name:    "mona",
		aliases: []string{"2ch", "2"},
		help:    "2channel tripcode, 10 or 12 characters by length",
	},
	MonaNonescaping: {
		name: "mona-nonescaping",
		help: "2channel tripcode of a pre-escaped password",
	},
	Mona10: {
		name:    "mona10",
		aliases: []string{"2ch10"},
		length:  10,
		alpha:   alphabet.Crypt,
		help:    "2channel 10-character DES tripcode",
	},
	Mona12: {
		name:    "mona12",
		aliases: []string{"2ch12"},
		length:  12,
		alpha:   alphabet.Base64,
		help:    "2channel 12-character SHA1 tripcode",
	},
	Mona12Nonescaping: {
		name:   "mona12-nonescaping",
		length: 12,
		alpha:  alphabet.Base64,
		help:   "2channel 12-character SHA1 tripcode of a pre-escaped password",
	},
	MonaRaw: {
		name:    "mona-raw",
		aliases: []string{"nama", "raw"},
		length:  10,
		alpha:   alphabet.Crypt,
		help:    "2channel raw key: #, 16 hex digits, optional 2-character salt",
	},
	Sc: {
		name: "sc-utf8",
		help: "2ch.sc tripcode of a UTF-8 password",
	},
	ScSJIS: {
		name:    "sc-sjis",
		aliases: []string{"sc", "s"},
		help:    "2ch.sc tripcode of a Shift-JIS password",
	},
	Sc15: {
		name:   "sc15",
		length: 15,
		alpha:  alphabet.Dotted,
		help:   "2ch.sc 15-character SHA1 tripcode",
	},
	ScKatakana: {
		name:   "sc-katakana",
		length: 15,
		alpha:  alphabet.Katakana,
		help:   "2ch.sc 15-character katakana tripcode",
	},
}

// Formats returns all the supported formats in order.
func Formats() []Format {
	out := make([]Format, numFormats)
	for i := range out {
		out[i] = Format(i)
	}
	return out
}

// ParseFormat returns the format with the given name or alias. Names are
// not case sensitive.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, fi := range formats {
		if key == fi.name {
			return Format(i), nil
		}
		for _, a := range fi.aliases {
			if key == a {
				return Format(i), nil
			}
		}
	}
	return 0, fmt.Errorf("unknown tripcode format %q", name)
}

func (f Format) valid() bool { return f >= 0 && f < numFormats }

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f].name
}

// Aliases returns the alternative names accepted by ParseFormat for f.
func (f Format) Aliases() []string {
	if !f.valid() {
		return nil
	}
	return append([]string(nil), formats[f].aliases...)
}

// Help returns a short human-readable description of f.
func (f Format) Help() string {
	if !f.valid() {
		return ""
	}
	return formats[f].help
}

// Length returns the number of symbols in a tripcode of format f, or 0 if
// the length depends on the password.
func (f Format) Length() int {
	if !f.valid() {
		return 0
	}
	return formats[f].length
}

// Alphabet returns the alphabet of tripcodes of format f, or nil if the
// alphabet depends on the password.
func (f Format) Alphabet() *alphabet.Alphabet {
	if !f.valid() {
		return nil
	}
	return formats[f].alpha
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("invalid format %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseFormat.
func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Set implements flag.Value using ParseFormat.
func (f *Format) Set(s string) error { return f.UnmarshalText([]byte(s)) }
