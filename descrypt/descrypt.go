// Package descrypt exposes the traditional DES-based crypt(3) password hash
// as the raw 8-byte block that tripcodes are built from. A 12-bit salt
// perturbs the DES E-box expansion, and the key encrypts an all-zero block
// 25 times.
//
// Only the classic two-character salt form is supported.
package descrypt

import (
	"encoding/binary"
	"fmt"

	"github.com/creachadair/tripcode/alphabet"
	"github.com/digitive/crypt"
)

// Sum returns the 8-byte DES block computed by crypt(3) for the given key
// and salt characters.
//
// Only the first 8 bytes of key are used, and a shorter key is padded with
// zeroes. A zero byte does not terminate the key. Salt characters outside
// the crypt alphabet "./0-9A-Za-z" are treated as ".".
func Sum(key []byte, salt [2]byte) [8]byte {
	s := Crypt(key, salt)

	// The 11 symbols after the salt hold the block MSB first; the last
	// symbol carries 4 bits and 2 bits of zero padding.
	var v uint64
	for _, c := range s[2:12] {
		v = v<<6 | uint64(symbolValue(c))
	}
	v = v<<4 | uint64(symbolValue(rune(s[12]))>>2)

	var out [8]byte
	binary.BigEndian.PutUint64(out[:], v)
	return out
}

// Crypt returns the classic 13-character crypt(3) string for key and salt:
// the two salt characters followed by 11 symbols encoding the DES block.
// Salt characters outside the crypt alphabet are replaced by ".".
func Crypt(key []byte, salt [2]byte) string {
	s, err := crypt.Crypt(string(key), string([]byte{cleanSalt(salt[0]), cleanSalt(salt[1])}))
	if err != nil {
		// Unreachable: the salt is always in the alphabet.
		panic(fmt.Sprintf("descrypt: %v", err))
	}
	return s
}

func cleanSalt(c byte) byte {
	if _, ok := alphabet.Crypt.Index(rune(c)); ok {
		return c
	}
	return '.'
}

func symbolValue(c rune) int {
	v, _ := alphabet.Crypt.Index(c)
	return v
}
