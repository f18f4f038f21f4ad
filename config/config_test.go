package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creachadair/mds/value"
	"github.com/creachadair/tripcode/config"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	want := &config.Config{
		Type:     "sc-sjis",
		Prefix:   value.Ptr(true),
		Encoding: "shift_jis",
		Jobs:     4,
		Marker:   "◆",
	}
	tests := []struct {
		name, content string
	}{
		{"config.yaml", `
type: sc-sjis
prefix: true
encoding: shift_jis
jobs: 4
marker: ◆
`},
		{"config.toml", `
type = "sc-sjis"
prefix = true
encoding = "shift_jis"
jobs = 4
marker = "◆"
`},
	}
	for _, tc := range tests {
		got, err := config.Load(writeFile(t, tc.name, tc.content))
		if err != nil {
			t.Errorf("Load %s: unexpected error: %v", tc.name, err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Load %s (-want, +got):\n%s", tc.name, diff)
		}
	}
}

func TestLoadEmpty(t *testing.T) {
	got, err := config.Load(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if diff := cmp.Diff(new(config.Config), got); diff != "" {
		t.Errorf("Load empty (-want, +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"bad-type.yaml", "type: 5chan\n"},
		{"bad-type.toml", `type = "5chan"`},
		{"unknown.yaml", "colour: blue\n"},
		{"unknown.toml", `colour = "blue"`},
		{"jobs.yaml", "jobs: -1\n"},
		{"syntax.toml", "type = \n"},
	}
	for _, tc := range tests {
		if got, err := config.Load(writeFile(t, tc.name, tc.content)); err == nil {
			t.Errorf("Load %s: got %+v, want error", tc.name, got)
		}
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "nonesuch.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("Load missing: got %v, want not-exist", err)
	}
}

func TestMerge(t *testing.T) {
	base := config.Config{Type: "mona", Password: value.Ptr(false)}
	defaults := config.Config{
		Type:     "4chan",
		Prefix:   value.Ptr(true),
		Password: value.Ptr(true),
		Jobs:     2,
	}
	want := config.Config{
		Type:     "mona",
		Prefix:   value.Ptr(true),
		Password: value.Ptr(false),
		Jobs:     2,
	}
	if diff := cmp.Diff(want, base.Merge(defaults)); diff != "" {
		t.Errorf("Merge (-want, +got):\n%s", diff)
	}
}

func TestFilePath(t *testing.T) {
	t.Setenv(config.EnvVar, "/some/path.toml")
	if got := config.FilePath(); got != "/some/path.toml" {
		t.Errorf("FilePath: got %q, want %q", got, "/some/path.toml")
	}

	// Set but empty disables the config file.
	t.Setenv(config.EnvVar, "")
	if got := config.FilePath(); got != "" {
		t.Errorf("FilePath: got %q, want empty", got)
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: unexpected error: %v", err)
	}
	if diff := cmp.Diff(new(config.Config), cfg); diff != "" {
		t.Errorf("LoadDefault (-want, +got):\n%s", diff)
	}

	// A missing file named explicitly is an error.
	t.Setenv(config.EnvVar, filepath.Join(t.TempDir(), "nonesuch.yaml"))
	if cfg, err := config.LoadDefault(); err == nil {
		t.Errorf("LoadDefault: got %+v, want error", cfg)
	}
}
