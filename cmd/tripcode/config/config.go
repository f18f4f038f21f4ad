// Package config contains shared configuration settings for tripcode
// subcommands.
package config

import (
	"github.com/creachadair/command"
	"github.com/creachadair/tripcode"
	"github.com/creachadair/tripcode/tclib"
	"golang.org/x/text/encoding"
)

// Settings are shared settings used by tripcode subcommands.
type Settings struct {
	Format   tripcode.Format
	Encoding encoding.Encoding // nil means passwords are hashed as given
	Jobs     int               // 0 means one worker per CPU
	Output   string            // if set, write output to this file
	OutEnc   encoding.Encoding // nil means output is written in UTF-8

	Prefix   bool // print Marker before each tripcode
	Password bool // print the password after each tripcode
	Marker   string
}

// Get returns the settings associated with env.
func Get(env *command.Env) *Settings { return env.Config.(*Settings) }

// Formatter returns an output formatter for s.
func (s *Settings) Formatter() tclib.Formatter {
	f := tclib.Formatter{ShowPassword: s.Password, Encoding: s.OutEnc}
	if s.Prefix {
		f.Marker = s.Marker
	}
	return f
}
