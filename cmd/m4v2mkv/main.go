// Command m4v2mkv remuxes m4v-family containers into mkv, preserving the
// metadata a naive remux drops: container tags, track titles and languages,
// default/forced flags, and chapters. It delegates the media work to
// ffprobe, mkvmerge, and (for subtitle conversion only) ffmpeg.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/m4v2mkv/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// Exit codes. Usage, probe and mux failures are distinguishable so scripts
// wrapping the tool can tell which stage gave up.
const (
	exitOK    = 0
	exitUsage = 2
	exitProbe = 3
	exitMux   = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "m4v2mkv: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps the pipeline error taxonomy onto distinct exit codes.
// Anything cobra itself rejects (unknown flag, wrong arg count) is a usage
// error too.
func exitCode(err error) int {
	var probeErr *pipeline.ProbeError
	if errors.As(err, &probeErr) {
		return exitProbe
	}
	var muxErr *pipeline.MuxError
	if errors.As(err, &muxErr) {
		return exitMux
	}
	return exitUsage
}
