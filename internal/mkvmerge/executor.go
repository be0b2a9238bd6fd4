package mkvmerge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// mkvmerge exit codes: 0 clean, 1 completed with warnings, >=2 error.
const exitWarnings = 1

// ExecResult holds the outcome of a single mkvmerge invocation. mkvmerge
// reports progress and warnings on stdout and hard errors on stderr; both
// are captured for diagnostics.
type ExecResult struct {
	Stdout string
	Stderr string
	Err    error
}

// Warned reports whether mkvmerge completed but emitted warnings (exit 1).
func (r ExecResult) Warned() bool {
	var exitErr *exec.ExitError
	return errors.As(r.Err, &exitErr) && exitErr.ExitCode() == exitWarnings
}

// Failed reports whether the invocation must be treated as a hard failure.
// Exit 1 counts as success-with-warnings.
func (r ExecResult) Failed() bool {
	return r.Err != nil && !r.Warned()
}

// Diagnostics returns the captured tool output for error reporting, stderr
// first since that is where mkvmerge puts fatal messages.
func (r ExecResult) Diagnostics() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// RunFunc runs mkvmerge. The pipeline holds one so tests can substitute a
// fake without spawning processes.
type RunFunc func(ctx context.Context, bin string, args []string, verbose bool) ExecResult

// Execute runs mkvmerge with the given argv. When verbose, stdout is tee'd
// to os.Stdout in real time (progress lines); otherwise output is captured
// silently.
func Execute(ctx context.Context, bin string, args []string, verbose bool) ExecResult {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	if verbose {
		cmd.Stdout = io.MultiWriter(&stdoutBuf, os.Stdout)
	} else {
		cmd.Stdout = &stdoutBuf
	}
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return ExecResult{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
