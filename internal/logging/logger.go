// Package logging configures the process-wide zerolog logger: a console
// writer on stderr with NO_COLOR-aware color resolution and an optional
// file sink.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/backmassage/m4v2mkv/internal/config"
)

// Setup builds the logger from config. The returned closer is non-nil when a
// log file was opened; call it before exit.
func Setup(cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
		NoColor:    !colorEnabled(cfg.Logging.Color),
	}

	var (
		sink   io.Writer = console
		closer io.Closer
	)
	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o755); err != nil {
			return zerolog.Nop(), nil, err
		}
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		sink = zerolog.MultiLevelWriter(console, f)
		closer = f
	}

	log := zerolog.New(sink).Level(level(cfg)).With().Timestamp().Logger()
	return log, closer, nil
}

func level(cfg *config.Config) zerolog.Level {
	if cfg.Verbose {
		return zerolog.DebugLevel
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// colorEnabled resolves the configured color mode against TTY detection and
// the NO_COLOR convention (https://no-color.org).
func colorEnabled(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return isatty.IsTerminal(os.Stderr.Fd()) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}
