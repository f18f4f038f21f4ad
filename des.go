package tripcode

import (
	"github.com/creachadair/tripcode/alphabet"
	"github.com/creachadair/tripcode/descrypt"
)

// DES returns the DES tripcode of password using the salt characters salt1
// and salt2 in place of the salt derived from the password. The password is
// not escaped.
func DES(password []byte, salt1, salt2 byte) string {
	return desSum(password, [2]byte{normalizeSalt(salt1), normalizeSalt(salt2)})
}

// Salt returns the salt characters of the DES tripcode of password, as
// derived from the unescaped bytes of password.
func Salt(password []byte) [2]byte { return deriveSalt(password) }

// desTripcode returns the DES tripcode of p with the salt derived from p.
func desTripcode(p []byte) string { return desSum(p, deriveSalt(p)) }

// desSum returns the last 10 characters of the crypt(3) string for key p.
func desSum(p []byte, salt [2]byte) string {
	sum := descrypt.Sum(p, salt)
	return alphabet.Crypt.Encode(sum[:], 6, 10)
}

// deriveSalt returns the salt for a DES tripcode of p: the second and third
// bytes of p padded with "H.", normalized into the crypt alphabet.
func deriveSalt(p []byte) [2]byte {
	switch len(p) {
	case 0, 1:
		return [2]byte{'H', '.'}
	case 2:
		return [2]byte{normalizeSalt(p[1]), 'H'}
	default:
		return [2]byte{normalizeSalt(p[1]), normalizeSalt(p[2])}
	}
}

// normalizeSalt maps c into the crypt alphabet the way boards do: bytes
// outside '.'..'z' become '.', and the punctuation between the digits,
// upper and lower case letters is shifted onto letters.
func normalizeSalt(c byte) byte {
	switch {
	case c < '.' || c > 'z':
		return '.'
	case c >= ':' && c <= '@':
		return c - ':' + 'A'
	case c >= '[' && c <= '`':
		return c - '[' + 'a'
	}
	return c
}
