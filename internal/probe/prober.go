package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Error is a probing failure. Diagnostics carries ffprobe's stderr verbatim
// so the pipeline can surface it to the user.
type Error struct {
	Diagnostics string
	Err         error
}

func (e *Error) Error() string {
	if e.Diagnostics == "" {
		return fmt.Sprintf("probe: %v", e.Err)
	}
	return fmt.Sprintf("probe: %v: %s", e.Err, strings.TrimSpace(e.Diagnostics))
}

func (e *Error) Unwrap() error { return e.Err }

// Probe runs a single ffprobe JSON call against path and returns the parsed
// source descriptor. ffprobeBin is the executable name or path from config.
func Probe(ctx context.Context, ffprobeBin, path string) (*Result, error) {
	cmd := exec.CommandContext(ctx, ffprobeBin,
		"-v", "error",
		"-of", "json",
		"-show_format", "-show_streams", "-show_chapters",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &Error{Diagnostics: string(exitErr.Stderr), Err: fmt.Errorf("ffprobe %q: %w", path, err)}
		}
		return nil, &Error{Err: fmt.Errorf("ffprobe %q: %w", path, err)}
	}

	r, err := ParseJSON(out)
	if err != nil {
		return nil, &Error{Err: err}
	}
	return r, nil
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format   ffprobeFormat    `json:"format"`
	Streams  []ffprobeStream  `json:"streams"`
	Chapters []ffprobeChapter `json:"chapters"`
}

type ffprobeFormat struct {
	Filename   string            `json:"filename"`
	NbStreams  int               `json:"nb_streams"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	Tags       map[string]string `json:"tags"`
}

type ffprobeStream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Disposition map[string]int    `json:"disposition"`
	Tags        map[string]string `json:"tags"`
}

type ffprobeChapter struct {
	ID        int64             `json:"id"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Tags      map[string]string `json:"tags"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *ffprobeOutput) *Result {
	r := &Result{
		Format: Format{
			Filename:   raw.Format.Filename,
			NbStreams:  raw.Format.NbStreams,
			FormatName: raw.Format.FormatName,
			Duration:   parseFloat(raw.Format.Duration),
			Size:       parseInt64(raw.Format.Size),
			Tags:       nonNilTags(raw.Format.Tags),
		},
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		t := Track{
			Index:   s.Index,
			Type:    trackType(s.CodecType),
			Codec:   s.CodecName,
			Tags:    nonNilTags(s.Tags),
			Default: s.Disposition["default"] == 1,
			Forced:  s.Disposition["forced"] == 1,
		}

		// iTunes-style files embed cover art as an mjpeg video stream that
		// rarely carries the attached_pic disposition.
		if s.Disposition["attached_pic"] == 1 || (t.Type == TrackVideo && s.CodecName == "mjpeg") {
			t.CoverArt = true
		}

		r.Tracks = append(r.Tracks, t)
	}

	for _, c := range raw.Chapters {
		r.Chapters = append(r.Chapters, Chapter{
			ID:    c.ID,
			Start: parseFloat(c.StartTime),
			End:   parseFloat(c.EndTime),
			Title: c.Tags["title"],
		})
	}

	return r
}

func trackType(codecType string) TrackType {
	switch codecType {
	case "video":
		return TrackVideo
	case "audio":
		return TrackAudio
	case "subtitle":
		return TrackSubtitle
	default:
		return TrackOther
	}
}

// nonNilTags normalizes a possibly-absent tags object so callers can index
// without nil checks.
func nonNilTags(tags map[string]string) map[string]string {
	if tags == nil {
		return map[string]string{}
	}
	return tags
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
