package tclib

import (
	"runtime"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
)

func TestClipboardCommand(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("Clipboard is always available on macOS")
	}
	tests := []struct {
		wayland, display string
		want             []string
	}{
		{"", "", nil},
		{"", ":0", []string{"xsel", "--clipboard", "--input"}},
		{"wayland-0", "", []string{"wl-copy"}},
		{"wayland-0", ":0", []string{"wl-copy"}},
	}
	for _, tc := range tests {
		t.Setenv("WAYLAND_DISPLAY", tc.wayland)
		t.Setenv("DISPLAY", tc.display)
		got, err := clipboardCommand()
		if tc.want == nil {
			if err == nil {
				t.Errorf("clipboardCommand: got %q, want error", got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("clipboardCommand: unexpected error: %v", err)
		}
		if diff := gocmp.Diff(tc.want, got); diff != "" {
			t.Errorf("clipboardCommand (-want, +got):\n%s", diff)
		}
	}
}

func TestFillRandom(t *testing.T) {
	// A constant source yields the same character everywhere, one chosen
	// from the charset.
	buf := make([]byte, 20)
	fillRandom(buf, hexDigits, zeroReader{})
	if got, want := string(buf), "00000000000000000000"; got != want {
		t.Errorf("fillRandom: got %q, want %q", got, want)
	}
	for _, cs := range []Charset{Letters, Digits, Symbols, AllChars} {
		if got := len(expandCharset(cs)); got > 1<<bitsPerChar {
			t.Errorf("Charset %d has %d characters, more than %d bits each", cs, got, bitsPerChar)
		}
	}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) { clear(p); return len(p), nil }
