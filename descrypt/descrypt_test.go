package descrypt_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/creachadair/tripcode/descrypt"
)

func salt(s string) [2]byte { return [2]byte{s[0], s[1]} }

// Check test vectors confirmed against the system crypt(3).
func TestCrypt(t *testing.T) {
	tests := []struct {
		key, salt string
		want      string
	}{
		{"test", "PQ", "PQl1.p7BcJRuM"},
		{"much longer password here", "xx", "xxtHrOGVa3182"},
		{"much lon", "xx", "xxtHrOGVa3182"},
		{"password", "as", "as1ozOtJW9BFA"},
		{"", "H.", "H.2jPpg5.obl6"},
		{"de", "eH", "eHuyqYXjvHgbk"},
	}
	for _, tc := range tests {
		if got := descrypt.Crypt([]byte(tc.key), salt(tc.salt)); got != tc.want {
			t.Errorf("Crypt(%q, %q): got %q, want %q", tc.key, tc.salt, got, tc.want)
		}
	}
}

func TestBinaryKey(t *testing.T) {
	tests := []struct {
		key, salt string // key is hex
		want      string
	}{
		{"0123456789abcdef", "./", "./nIP9Lda5FPc"},
		{"1145145554560721", "..", "..N14cvFmVHg2"},

		// Only the low 7 bits of each key byte are significant.
		{"ff", "..", "..u7Uzd/KllpE"},
		{"7f", "..", "..u7Uzd/KllpE"},
		{"ff00000000000000", "..", "..u7Uzd/KllpE"},
		{"ff41", "..", "..oh.HoyDJVEw"},
	}
	for _, tc := range tests {
		key, err := hex.DecodeString(tc.key)
		if err != nil {
			t.Fatalf("Invalid key %q: %v", tc.key, err)
		}
		if got := descrypt.Crypt(key, salt(tc.salt)); got != tc.want {
			t.Errorf("Crypt(%s, %q): got %q, want %q", tc.key, tc.salt, got, tc.want)
		}
	}
}

func TestZeroByteInKey(t *testing.T) {
	// A zero byte does not end the key: the bytes after it still count.
	short := descrypt.Crypt([]byte("\xff"), salt(".."))
	if got := descrypt.Crypt([]byte("\xff\x00A"), salt("..")); got == short {
		t.Errorf("Crypt(ff0041): got %q, same as Crypt(ff)", got)
	}
	if got, want := descrypt.Sum([]byte("\xff\x00A"), salt("..")), descrypt.Sum([]byte("\xff"), salt("..")); got == want {
		t.Errorf("Sum(ff0041): got %x, same as Sum(ff)", got)
	}
}

func TestSaltOutsideAlphabet(t *testing.T) {
	// Characters outside the crypt alphabet have value zero, like ".".
	want := descrypt.Sum([]byte("key"), salt(".."))
	for _, s := range []string{"!!", "~.", ".\x00", "{:"} {
		if got := descrypt.Sum([]byte("key"), salt(s)); got != want {
			t.Errorf("Sum(key, %q): got %x, want %x", s, got, want)
		}
	}
	if got := descrypt.Crypt([]byte("key"), salt("!~")); got[:2] != ".." {
		t.Errorf("Crypt(key, !~): got %q, want salt %q", got, "..")
	}
}

func TestSumMatchesCrypt(t *testing.T) {
	const alpha = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	for _, key := range []string{"", "a", "tripcode", "TRIPCODE", "\x80\x81\x82"} {
		s := salt("Zz")
		sum := descrypt.Sum([]byte(key), s)
		c := descrypt.Crypt([]byte(key), s)

		// The first symbol after the salt holds the top 6 bits of the block.
		if got, want := strings.IndexByte(alpha, c[2]), int(sum[0]>>2); got != want {
			t.Errorf("Key %q: first symbol %q has value %d, want %d", key, c[2], got, want)
		}
		// The last symbol holds the low 4 bits, shifted up by 2.
		if got, want := strings.IndexByte(alpha, c[12]), int(sum[7]&0xf)<<2; got != want {
			t.Errorf("Key %q: last symbol %q has value %d, want %d", key, c[12], got, want)
		}
	}

	want := [8]byte{0x0f, 0x4f, 0xda, 0xe5, 0x58, 0x8b, 0x35, 0x13}
	if got := descrypt.Sum([]byte("password"), salt("as")); got != want {
		t.Errorf("Sum(password, as): got %x, want %x", got, want)
	}
}

func TestConcurrent(t *testing.T) {
	const want = "as1ozOtJW9BFA"
	done := make(chan string)
	for range 8 {
		go func() { done <- descrypt.Crypt([]byte("password"), salt("as")) }()
	}
	for range 8 {
		if got := <-done; got != want {
			t.Errorf("Crypt: got %q, want %q", got, want)
		}
	}
}
