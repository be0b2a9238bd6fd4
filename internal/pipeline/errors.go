package pipeline

import (
	"fmt"
	"strings"
)

// The error taxonomy maps one-to-one onto exit codes in cmd/m4v2mkv. Each
// pipeline failure is exactly one of UsageError, ProbeError or MuxError;
// the latter two carry the failing tool's diagnostic text verbatim.

// UsageError is a pre-pipeline failure: bad arguments, unreadable input, or
// a destination that already exists without --force. No stage was entered.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// ProbeError is a failure in the PROBING stage: ffprobe exited non-zero or
// produced unparseable output.
type ProbeError struct {
	Diagnostics string
	Err         error
}

func (e *ProbeError) Error() string { return stageMessage("probe", e.Err, e.Diagnostics) }
func (e *ProbeError) Unwrap() error { return e.Err }

// MuxError is a failure in the MUXING stage: a side file could not be
// materialized or mkvmerge exited with a hard error. The partial destination
// has already been cleaned up when this error is returned.
type MuxError struct {
	Diagnostics string
	Err         error
}

func (e *MuxError) Error() string { return stageMessage("mux", e.Err, e.Diagnostics) }
func (e *MuxError) Unwrap() error { return e.Err }

func stageMessage(stage string, err error, diagnostics string) string {
	msg := fmt.Sprintf("%s failed: %v", stage, err)
	if d := strings.TrimSpace(diagnostics); d != "" {
		msg += "\n" + d
	}
	return msg
}
