// Package config holds runtime configuration: defaults, the optional TOML
// config file, and validation. CLI flags are bound in cmd/m4v2mkv and applied
// on top of file values, so precedence is flags > file > defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Tools holds the executable names or paths of the external collaborators.
// Bare names are resolved through PATH at invocation time.
type Tools struct {
	Ffprobe  string `toml:"ffprobe"`
	Mkvmerge string `toml:"mkvmerge"`
	Ffmpeg   string `toml:"ffmpeg"`
}

// TagPolicy controls which probed tags are rewritten or dropped before they
// are handed to mkvmerge. Drop entries always win over Set entries.
type TagPolicy struct {
	GlobalSet  map[string]string `toml:"global_set"`
	GlobalDrop []string          `toml:"global_drop"`
	TrackSet   map[string]string `toml:"track_set"`
	TrackDrop  []string          `toml:"track_drop"`
}

// Logging holds log output settings.
type Logging struct {
	Level string    `toml:"level"` // "debug", "info", "warn", "error".
	File  string    `toml:"file"`  // Optional log file path (appended).
	Color ColorMode `toml:"color"` // "auto", "always", "never".
}

// Config holds all runtime settings. It is populated by [Default], optionally
// overlaid by [Load], and then mutated by the CLI layer before being passed
// (by pointer) to packages that need it.
type Config struct {
	Tools   Tools     `toml:"tools"`
	Tags    TagPolicy `toml:"tags"`
	Logging Logging   `toml:"logging"`

	// Overwrite an existing destination instead of refusing.
	Force bool `toml:"force"`

	// Runtime fields set from CLI arguments, never from the file.
	Input      string   `toml:"-"` // Source file (positional argument).
	Output     string   `toml:"-"` // Destination override; derived from Input when empty.
	DryRun     bool     `toml:"-"`
	RawArgs    []string `toml:"-"` // Extra arguments appended to the mkvmerge argv.
	Verbose    bool     `toml:"-"`
	ConfigPath string   `toml:"-"` // Where the file config came from, for diagnostics.
}

// Default returns a Config with repository defaults. The default tag policy
// matches the historical behavior of dropping timestamps Apple stamps into
// purchased files: creation_time and purchase_date globally, creation_time
// per track.
func Default() Config {
	return Config{
		Tools: Tools{
			Ffprobe:  "ffprobe",
			Mkvmerge: "mkvmerge",
			Ffmpeg:   "ffmpeg",
		},
		Tags: TagPolicy{
			GlobalDrop: []string{"creation_time", "purchase_date"},
			TrackDrop:  []string{"creation_time"},
		},
		Logging: Logging{
			Level: "info",
			Color: ColorAuto,
		},
	}
}

// Validate checks enum fields and tool names. Input presence is checked by
// the CLI layer because the check subcommand runs without one.
func (c *Config) Validate() error {
	switch c.Logging.Color {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level %q (use debug, info, warn or error)", c.Logging.Level)
	}

	if c.Tools.Ffprobe == "" || c.Tools.Mkvmerge == "" || c.Tools.Ffmpeg == "" {
		return errors.New("tool paths must not be empty")
	}
	return nil
}
