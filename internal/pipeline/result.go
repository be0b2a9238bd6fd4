package pipeline

import "time"

// Result reports a completed run. For dry runs only Plan-derived fields are
// populated and OutputSize stays zero.
type Result struct {
	InputPath  string
	OutputPath string

	InputSize  int64
	OutputSize int64

	TrackCount   int
	ChapterCount int

	// Warned is set when mkvmerge exited 1 (completed with warnings).
	Warned bool

	DryRun  bool
	Elapsed time.Duration
}
