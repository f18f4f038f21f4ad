// Package alphabet defines the 64-symbol alphabets used to render hash
// bytes as printable tripcodes.
//
// Unlike MIME base64, an alphabet may start encoding at any bit offset, and
// symbols are not padded. Bits are consumed most significant first, in
// groups of six.
package alphabet

import (
	"fmt"
	"unicode/utf8"
)

// Size is the number of symbols in every alphabet.
const Size = 64

// An Alphabet is an ordered set of 64 distinct symbols. The position of a
// symbol is its 6-bit value. Order is significant.
type Alphabet struct {
	name  string
	syms  []rune
	ascii bool
	index map[rune]int
}

var (
	// Crypt is the alphabet of crypt(3) and the DES tripcode formats.
	Crypt = New("crypt", "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")

	// Base64 is the standard MIME base64 alphabet, used by 12-character
	// tripcodes.
	Base64 = New("base64", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")

	// Dotted is the base64 alphabet with "+" and "/" replaced by "." and "!",
	// used by 15-character 2ch.sc tripcodes.
	Dotted = New("dotted", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.!")

	// Katakana is the half-width katakana alphabet of 2ch.sc katakana
	// tripcodes.
	Katakana = New("katakana", "ｫｬｭｮｯｰｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝﾞ｡｢｣､･ｦｧｨｩｪﾟ!")
)

var all = []*Alphabet{Crypt, Base64, Dotted, Katakana}

// All returns the predefined alphabets.
func All() []*Alphabet { return append([]*Alphabet(nil), all...) }

// Lookup returns the predefined alphabet with the given name, or nil.
func Lookup(name string) *Alphabet {
	for _, a := range all {
		if a.name == name {
			return a
		}
	}
	return nil
}

// New constructs an alphabet with the given name from the runes of symbols.
// It panics if symbols does not contain exactly 64 distinct runes.
func New(name, symbols string) *Alphabet {
	a := &Alphabet{
		name:  name,
		syms:  []rune(symbols),
		ascii: len(symbols) == utf8.RuneCountInString(symbols),
		index: make(map[rune]int, Size),
	}
	if len(a.syms) != Size {
		panic(fmt.Sprintf("alphabet %q has %d symbols, want %d", name, len(a.syms), Size))
	}
	for i, r := range a.syms {
		if r == utf8.RuneError {
			panic(fmt.Sprintf("alphabet %q has an invalid symbol at %d", name, i))
		} else if _, ok := a.index[r]; ok {
			panic(fmt.Sprintf("alphabet %q has duplicate symbol %q", name, r))
		}
		a.index[r] = i
	}
	return a
}

// Name returns the name of the alphabet.
func (a *Alphabet) Name() string { return a.name }

// String returns the symbols of the alphabet in order.
func (a *Alphabet) String() string { return string(a.syms) }

// Symbol returns the symbol with 6-bit value v. It panics if v is out of
// range.
func (a *Alphabet) Symbol(v int) rune { return a.syms[v] }

// Index reports the 6-bit value of r and whether r is in the alphabet.
func (a *Alphabet) Index(r rune) (int, bool) {
	v, ok := a.index[r]
	return v, ok
}

// Contains reports whether every rune of s is a symbol of a.
func (a *Alphabet) Contains(s string) bool {
	_, ok := a.Len(s)
	return ok
}

// Len reports the number of symbols in s, and whether every rune of s is a
// symbol of a.
func (a *Alphabet) Len(s string) (int, bool) {
	var n int
	for _, r := range s {
		if _, ok := a.index[r]; !ok {
			return n, false
		}
		n++
	}
	return n, true
}

// Encode returns n symbols encoding the bits of src starting at bit offset,
// counting from the most significant bit of src[0]. Bits past the end of src
// are read as zero.
func (a *Alphabet) Encode(src []byte, offset, n int) string {
	return string(a.AppendEncode(make([]byte, 0, a.maxLen(n)), src, offset, n))
}

// AppendEncode is as Encode, but appends the UTF-8 encoding of the symbols
// to dst and returns the updated slice.
func (a *Alphabet) AppendEncode(dst, src []byte, offset, n int) []byte {
	for i := range n {
		r := a.syms[bits6(src, offset+6*i)]
		if a.ascii {
			dst = append(dst, byte(r))
		} else {
			dst = utf8.AppendRune(dst, r)
		}
	}
	return dst
}

func (a *Alphabet) maxLen(n int) int {
	if a.ascii {
		return n
	}
	return n * utf8.UTFMax
}

// bits6 returns the 6 bits of src beginning at bit position pos.
func bits6(src []byte, pos int) int {
	var v int
	for i := range 6 {
		v <<= 1
		b := pos + i
		if k := b / 8; k < len(src) && src[k]&(0x80>>(b%8)) != 0 {
			v |= 1
		}
	}
	return v
}
