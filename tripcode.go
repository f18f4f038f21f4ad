// Package tripcode generates imageboard tripcodes: short tokens derived
// from a secret password that let an anonymous poster show that two posts
// come from the same author.
//
// Each Format reproduces a historical board algorithm bit for bit, so the
// password is treated as raw bytes throughout. Where a format branches on
// the length of the password, it is the length in bytes that counts, so the
// same text in different encodings may select different branches.
//
// All functions in this package are safe for concurrent use.
package tripcode

import (
	"errors"
	"fmt"

	"github.com/creachadair/tripcode/alphabet"
	"golang.org/x/text/encoding/japanese"
)

// Invalid is the tripcode reported by the auto-selecting formats for a
// password that cannot be used, such as a malformed raw key.
const Invalid = "???"

var (
	// ErrRawKey is reported by RawKey and TryGenerate for a malformed raw
	// key.
	ErrRawKey = errors.New("invalid raw key")

	// ErrInvalid is reported by Check for a string that is not a tripcode of
	// the requested format.
	ErrInvalid = errors.New("invalid tripcode")
)

// Generate returns the tripcode of password in format f. It never fails: if
// f is MonaRaw and the password is not a valid raw key, the result is
// Invalid. Use TryGenerate to distinguish that case.
//
// Generate panics if f is not a known format.
func Generate(f Format, password []byte) string {
	switch f {
	case Fourchan:
		return desTripcode(escapeHTML(password, true))
	case FourchanNonescaping:
		return desTripcode(password)
	case Mona:
		return mona(escapeHTML(password, false))
	case MonaNonescaping:
		return mona(password)
	case Mona10:
		return desTripcode(escapeHTML(password, false))
	case Mona12:
		return sha1Tripcode(escapeHTML(password, false))
	case Mona12Nonescaping:
		return sha1Tripcode(password)
	case MonaRaw:
		return rawOrInvalid(password)
	case Sc:
		return sc(password, isKatakanaUTF8)
	case ScSJIS:
		return sc(password, isKatakanaSJIS)
	case Sc15:
		return scTripcode(password, alphabet.Dotted)
	case ScKatakana:
		return scTripcode(password, alphabet.Katakana)
	}
	panic(fmt.Sprintf("tripcode: invalid format %d", int(f)))
}

// TryGenerate returns the tripcode of password in format f. Only MonaRaw
// can fail; the error for a malformed raw key wraps ErrRawKey.
func TryGenerate(f Format, password []byte) (string, error) {
	if f == MonaRaw {
		return RawKey(password)
	}
	return Generate(f, password), nil
}

// Append appends the tripcode of password in format f to dst, and returns
// the updated slice.
func Append(dst []byte, f Format, password []byte) []byte {
	return append(dst, Generate(f, password)...)
}

// AppendSJIS is as Append, but writes the tripcode in Shift-JIS rather than
// UTF-8. The two differ only for katakana tripcodes, whose half-width
// symbols take one byte each in Shift-JIS.
func AppendSJIS(dst []byte, f Format, password []byte) []byte {
	tc, err := japanese.ShiftJIS.NewEncoder().String(Generate(f, password))
	if err != nil {
		// Every tripcode symbol has a Shift-JIS encoding.
		panic(fmt.Sprintf("tripcode: encode %v: %v", f, err))
	}
	return append(dst, tc...)
}

// Check reports whether s could be a tripcode of format f. If not, the error
// wraps ErrInvalid. Check does not, and cannot, verify a password.
func Check(f Format, s string) error {
	var ok bool
	switch f {
	case Fourchan, FourchanNonescaping, Mona10, MonaRaw:
		ok = isDES(s)
	case Mona12, Mona12Nonescaping, Sc15, ScKatakana:
		ok = isLength(s, f)
	case Mona, MonaNonescaping:
		ok = isDES(s) || isLength(s, Mona12) || s == Invalid
	case Sc, ScSJIS:
		ok = isDES(s) || isLength(s, Mona12) || isLength(s, Sc15) || isLength(s, ScKatakana) || s == Invalid
	default:
		return fmt.Errorf("invalid format %d", int(f))
	}
	if !ok {
		return fmt.Errorf("%w: %q is not a %v tripcode", ErrInvalid, s, f)
	}
	return nil
}

// isLength reports whether s has the length and alphabet of format f.
func isLength(s string, f Format) bool {
	n, ok := f.Alphabet().Len(s)
	return ok && n == f.Length()
}

// isDES reports whether s is a possible DES tripcode. The last symbol holds
// only 4 bits of the block, so its low 2 bits must be zero.
func isDES(s string) bool {
	if !isLength(s, Fourchan) {
		return false
	}
	v, _ := Fourchan.Alphabet().Index(rune(s[len(s)-1]))
	return v&3 == 0
}
