// Package check provides the check subcommand diagnostics and pre-pipeline
// dependency validation for ffprobe, mkvmerge, and ffmpeg.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/backmassage/m4v2mkv/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfprobeNotFound  = errors.New("ffprobe not found (install ffmpeg or set tools.ffprobe)")
	ErrMkvmergeNotFound = errors.New("mkvmerge not found (install mkvtoolnix or set tools.mkvmerge)")
)

// RunCheck runs the interactive diagnostics flow: prints availability and
// version of each external tool. Informational only; it reports, not stops,
// on failure. Returns false when any required tool is missing.
func RunCheck(cfg *config.Config, log zerolog.Logger) bool {
	ok := checkTool(log, "ffprobe", cfg.Tools.Ffprobe, "-version", true)
	ok = checkTool(log, "mkvmerge", cfg.Tools.Mkvmerge, "--version", true) && ok

	// ffmpeg is only required when a subtitle track needs SRT conversion.
	checkTool(log, "ffmpeg", cfg.Tools.Ffmpeg, "-version", false)

	return ok
}

// checkTool verifies one binary is resolvable and logs its version line.
func checkTool(log zerolog.Logger, name, bin, versionFlag string, required bool) bool {
	path, err := exec.LookPath(bin)
	if err != nil {
		if required {
			log.Error().Str("tool", name).Msgf("%s not found", bin)
		} else {
			log.Warn().Str("tool", name).Msgf("%s not found (only needed for subtitle conversion)", bin)
		}
		return false
	}

	out, err := exec.Command(bin, versionFlag).Output()
	if err != nil {
		log.Warn().Str("tool", name).Str("path", path).Msgf("found but %s failed: %v", versionFlag, err)
		return false
	}
	log.Info().Str("tool", name).Msg(firstLine(string(out)))
	return true
}

// CheckDeps is the pre-pipeline validation: ffprobe and mkvmerge must
// resolve. ffmpeg availability is checked lazily by the pipeline only when a
// subtitle extraction is actually planned.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.Tools.Ffprobe); err != nil {
		return fmt.Errorf("%w: %v", ErrFfprobeNotFound, err)
	}
	if _, err := exec.LookPath(cfg.Tools.Mkvmerge); err != nil {
		return fmt.Errorf("%w: %v", ErrMkvmergeNotFound, err)
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}
