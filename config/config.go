// Package config handles tripcode configuration settings. Configurations are
// stored on disk as YAML, or as TOML if the file name ends in ".toml".
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creachadair/tripcode"
	yaml "gopkg.in/yaml.v3"
)

// EnvVar is the environment variable that overrides the default config file
// path. If it is set but empty, no config file is used.
const EnvVar = "TRIPCODE_CONFIG"

// A Config represents the contents of a tripcode config file. Each field
// supplies the default for the command-line flag of the same name.
type Config struct {
	// The name or alias of the default tripcode format.
	Type string `yaml:"type,omitempty" toml:"type"`

	// Whether to print the tripcode marker before each tripcode.
	Prefix *bool `yaml:"prefix,omitempty" toml:"prefix"`

	// Whether to print the password after each tripcode.
	Password *bool `yaml:"password,omitempty" toml:"password"`

	// The character encoding passwords are converted to before hashing.
	Encoding string `yaml:"encoding,omitempty" toml:"encoding"`

	// The number of passwords to process concurrently.
	Jobs int `yaml:"jobs,omitempty" toml:"jobs"`

	// The tripcode marker to use with prefix, overriding the locale default.
	Marker string `yaml:"marker,omitempty" toml:"marker"`
}

// Load reads the config file at path. If path does not exist, the reported
// error satisfies os.IsNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = decodeTOML(data, &cfg)
	} else {
		err = decodeYAML(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	return &cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if keys := md.Undecoded(); len(keys) != 0 {
		return fmt.Errorf("unknown settings: %v", keys)
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports an error if c contains an invalid setting.
func (c *Config) Validate() error {
	if c.Type != "" {
		if _, err := tripcode.ParseFormat(c.Type); err != nil {
			return err
		}
	}
	if c.Jobs < 0 {
		return fmt.Errorf("invalid jobs count %d", c.Jobs)
	}
	return nil
}

// Merge returns a copy of c in which non-empty fields of d are used to fill
// empty fields of c.
func (c Config) Merge(d Config) Config {
	if c.Type == "" {
		c.Type = d.Type
	}
	if c.Prefix == nil {
		c.Prefix = d.Prefix
	}
	if c.Password == nil {
		c.Password = d.Password
	}
	if c.Encoding == "" {
		c.Encoding = d.Encoding
	}
	if c.Jobs <= 0 {
		c.Jobs = d.Jobs
	}
	if c.Marker == "" {
		c.Marker = d.Marker
	}
	return c
}

// FilePath returns the path of the config file to load, or "" if none
// should be loaded. If EnvVar is set, its value is the path; otherwise the
// path is config.yaml in the "tripcode" subdirectory of the user's config
// directory.
func FilePath() string {
	if path, ok := os.LookupEnv(EnvVar); ok {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tripcode", "config.yaml")
}

// LoadDefault loads the config file named by FilePath. If no file is to be
// loaded, or the default file does not exist, it returns an empty config. A
// missing file named by EnvVar is an error.
func LoadDefault() (*Config, error) {
	path := FilePath()
	if path == "" {
		return new(Config), nil
	}
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		if _, set := os.LookupEnv(EnvVar); !set {
			return new(Config), nil
		}
	}
	return cfg, err
}
