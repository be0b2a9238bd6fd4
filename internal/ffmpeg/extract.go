package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// mov_text subtitles come out of ffmpeg wrapped in font markup that players
// render literally once the text lives in an SRT track. The {\an7} position
// override appears in Apple-authored files.
var reFontMarkup = regexp.MustCompile(`<font face="[^"]+">(?:\{\\an7\})?([^<]+)</font>`)

// ExtractFunc converts one subtitle stream to an SRT side file. The pipeline
// holds one so tests can substitute a fake.
type ExtractFunc func(ctx context.Context, bin, input string, streamIndex int, outPath string) error

// ExtractSRT decodes subtitle stream streamIndex of input to SRT on stdout,
// strips font markup, and writes the result to outPath.
func ExtractSRT(ctx context.Context, bin, input string, streamIndex int, outPath string) error {
	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-i", input,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-scodec", "srt",
		"-f", "srt",
		"-",
	)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("ffmpeg subtitle extract (stream %d): %w: %s",
				streamIndex, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return fmt.Errorf("ffmpeg subtitle extract (stream %d): %w", streamIndex, err)
	}

	srt := StripFontMarkup(string(out))
	if err := os.WriteFile(outPath, []byte(srt), 0o644); err != nil {
		return fmt.Errorf("write extracted subtitle: %w", err)
	}
	return nil
}

// StripFontMarkup removes the font wrapper ffmpeg emits around each
// mov_text cue. Exported for tests.
func StripFontMarkup(srt string) string {
	return reFontMarkup.ReplaceAllString(srt, "$1")
}
