package tripcode

import (
	"crypto/sha1"

	"github.com/creachadair/tripcode/alphabet"
)

// sc selects a 2ch.sc tripcode for p, using isKatakana to decide whether
// a "$" password gets a katakana tripcode.
func sc(p []byte, isKatakana func([]byte) bool) string {
	if len(p) < 12 {
		return desTripcode(p)
	}
	switch p[0] {
	case '#':
		return rawOrInvalid(p)
	case '$':
		if isKatakana(p[1:]) {
			return scTripcode(p, alphabet.Katakana)
		}
		return scTripcode(p, alphabet.Dotted)
	}
	return sha1Tripcode(p)
}

// scTripcode encodes 90 bits of the SHA1 digest of p, skipping the first
// 18, in alpha.
func scTripcode(p []byte, alpha *alphabet.Alphabet) string {
	sum := sha1.Sum(p)
	return alpha.Encode(sum[:], 18, 15)
}

// isKatakanaUTF8 reports whether p begins with the UTF-8 encoding of a
// half-width katakana or punctuation mark (U+FF61 to U+FF9F).
func isKatakanaUTF8(p []byte) bool {
	if len(p) < 3 || p[0] != 0xef {
		return false
	}
	switch p[1] {
	case 0xbd:
		return p[2] >= 0xa1 && p[2] <= 0xbf
	case 0xbe:
		return p[2] >= 0x80 && p[2] <= 0x9f
	}
	return false
}

// isKatakanaSJIS reports whether p begins with a single-byte Shift-JIS
// half-width katakana or punctuation mark.
func isKatakanaSJIS(p []byte) bool {
	return len(p) > 0 && p[0] >= 0xa1 && p[0] <= 0xdf
}
