package tripcode

import (
	"crypto/sha1"
	"fmt"

	"github.com/creachadair/tripcode/alphabet"
)

// mona selects a 2channel tripcode for an escaped password p.
func mona(p []byte) string {
	if len(p) < 12 {
		return desTripcode(p)
	}
	switch p[0] {
	case '#':
		return rawOrInvalid(p)
	case '$':
		return Invalid
	}
	return sha1Tripcode(p)
}

// sha1Tripcode encodes the first 72 bits of the SHA1 digest of p in base64.
func sha1Tripcode(p []byte) string {
	sum := sha1.Sum(p)
	return alphabet.Base64.Encode(sum[:], 0, 12)
}

// RawKey returns the 2channel "nama key" tripcode of password, which must
// have the form
//
//	#XXXXXXXXXXXXXXXX[s[s]]
//
// where X are 16 hex digits giving the 8-byte DES key, and the optional s are
// salt characters from the crypt alphabet. A missing salt character is ".".
// A zero key byte ends the key. Any other form reports an error wrapping
// ErrRawKey.
func RawKey(password []byte) (string, error) {
	key, salt, err := parseRawKey(password)
	if err != nil {
		return "", err
	}
	return desSum(key[:], salt), nil
}

func rawOrInvalid(p []byte) string {
	trip, err := RawKey(p)
	if err != nil {
		return Invalid
	}
	return trip
}

func parseRawKey(p []byte) (key [8]byte, salt [2]byte, _ error) {
	if len(p) < 17 || len(p) > 19 {
		return key, salt, fmt.Errorf("%w: length is %d bytes, want 17 to 19", ErrRawKey, len(p))
	} else if p[0] != '#' {
		return key, salt, fmt.Errorf("%w: missing # marker", ErrRawKey)
	}
	for i := range key {
		hi, ok1 := unhex(p[1+2*i])
		lo, ok2 := unhex(p[2+2*i])
		if !ok1 || !ok2 {
			return key, salt, fmt.Errorf("%w: invalid hex digit in key", ErrRawKey)
		}
		key[i] = hi<<4 | lo
	}
	for i, b := range key {
		if b == 0 {
			clear(key[i:])
			break
		}
	}

	salt = [2]byte{'.', '.'}
	for i, c := range p[17:] {
		if _, ok := alphabet.Crypt.Index(rune(c)); !ok {
			return key, salt, fmt.Errorf("%w: invalid salt character %q", ErrRawKey, c)
		}
		salt[i] = c
	}
	return key, salt, nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
