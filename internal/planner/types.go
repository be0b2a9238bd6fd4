package planner

import "github.com/backmassage/m4v2mkv/internal/probe"

// TrackPlan holds the destination metadata for one muxable track. Track
// plans appear in Plan.Tracks in source order; that order is what
// --track-order reproduces in the destination.
type TrackPlan struct {
	SourceIndex int // Absolute ffprobe stream index; also the mkvmerge TID in the main input.
	Type        probe.TrackType
	Codec       string

	Title    string
	Language string
	Default  bool
	Forced   bool

	// Tags resolved through the tag policy. Written to TagsFile when non-empty.
	Tags     map[string]string
	TagsFile string

	// ExtractedPath is set when the track is fed to mkvmerge from a converted
	// SRT side file instead of the main input.
	ExtractedPath string
}

// Extraction is one ffmpeg subtitle conversion job that must run before
// mkvmerge. SourceIndex selects the stream; OutputPath is the SRT side file.
type Extraction struct {
	SourceIndex int
	OutputPath  string
}

// Plan is the complete, deterministic description of one mkvmerge run. It is
// produced by BuildPlan and consumed by the mkvmerge package for argv
// construction and by the pipeline for side-file materialization.
type Plan struct {
	InputPath  string
	OutputPath string

	Tracks []TrackPlan

	// Container-level tags after policy resolution, and the side file they
	// are written to ("" when there are none).
	GlobalTags     map[string]string
	GlobalTagsFile string

	// Chapters are read natively from the MP4 container by mkvmerge; the
	// count is recorded for reporting and verification.
	ChapterCount int

	Extractions []Extraction

	// Extra user-supplied arguments appended verbatim to the argv.
	RawArgs []string
}

// SideFiles returns every side file the plan expects to exist before
// invocation: tag XMLs plus extracted subtitles.
func (p *Plan) SideFiles() []string {
	var out []string
	if p.GlobalTagsFile != "" {
		out = append(out, p.GlobalTagsFile)
	}
	for _, t := range p.Tracks {
		if t.TagsFile != "" {
			out = append(out, t.TagsFile)
		}
	}
	for _, e := range p.Extractions {
		out = append(out, e.OutputPath)
	}
	return out
}
