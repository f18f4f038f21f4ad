package cmdcli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/creachadair/command"
)

func testEnv(buf *bytes.Buffer) *command.Env {
	env := (&command.C{Name: "test"}).NewEnv(nil)
	env.Log = buf
	return env
}

func TestFormatsOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := runFormats(testEnv(&buf)); err != nil {
		t.Fatalf("formats: unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "NAME") {
		t.Fatalf("formats: got %q, want a table with a header", buf.String())
	}
	var found bool
	for _, line := range lines[1:] {
		if fs := strings.Fields(line); len(fs) > 2 && fs[0] == "sc-sjis" {
			found = true
			if fs[2] != "sc,s" {
				t.Errorf("sc-sjis aliases: got %q, want sc,s", fs[2])
			}
		}
	}
	if !found {
		t.Errorf("formats: sc-sjis not listed in %q", buf.String())
	}
}

func TestCheckOutput(t *testing.T) {
	var buf bytes.Buffer
	err := runCheck(testEnv(&buf), "4chan", "ozOtJW9BFA", "ozOtJW9BFB")
	if err == nil {
		t.Error("check: got nil, want error")
	}
	const want = "ozOtJW9BFA  ok\nozOtJW9BFB  invalid\n"
	if got := buf.String(); got != want {
		t.Errorf("check: got %q, want %q", got, want)
	}
}
