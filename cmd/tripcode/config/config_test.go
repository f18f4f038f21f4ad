package config_test

import (
	"testing"

	"github.com/creachadair/tripcode/cmd/tripcode/config"
	"github.com/creachadair/tripcode/tclib"
	gocmp "github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/japanese"
)

func TestFormatter(t *testing.T) {
	tests := []struct {
		set  config.Settings
		want tclib.Formatter
	}{
		{config.Settings{Marker: "◆"}, tclib.Formatter{}},
		{config.Settings{Prefix: true, Marker: "◆"}, tclib.Formatter{Marker: "◆"}},
		{config.Settings{Password: true, Marker: "!"}, tclib.Formatter{ShowPassword: true}},
		{config.Settings{Prefix: true, Password: true, Marker: "!"}, tclib.Formatter{Marker: "!", ShowPassword: true}},
	}
	for _, tc := range tests {
		if diff := gocmp.Diff(tc.want, tc.set.Formatter()); diff != "" {
			t.Errorf("Formatter %+v (-want, +got):\n%s", tc.set, diff)
		}
	}
}

func TestFormatterEncoding(t *testing.T) {
	set := config.Settings{Prefix: true, Marker: "◆", OutEnc: japanese.ShiftJIS}
	if f := set.Formatter(); f.Encoding != japanese.ShiftJIS || f.Marker != "◆" {
		t.Errorf("Formatter: got %+v, want Shift-JIS output with marker", f)
	}
}
