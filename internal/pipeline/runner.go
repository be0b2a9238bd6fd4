package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/backmassage/m4v2mkv/internal/config"
	"github.com/backmassage/m4v2mkv/internal/display"
	"github.com/backmassage/m4v2mkv/internal/ffmpeg"
	"github.com/backmassage/m4v2mkv/internal/mkvmerge"
	"github.com/backmassage/m4v2mkv/internal/naming"
	"github.com/backmassage/m4v2mkv/internal/planner"
	"github.com/backmassage/m4v2mkv/internal/probe"
	"github.com/backmassage/m4v2mkv/internal/tags"
)

// ProbeFunc matches probe.Probe; held on the Runner so tests can inject
// fixtures without an ffprobe binary.
type ProbeFunc func(ctx context.Context, bin, path string) (*probe.Result, error)

// Runner executes the remux pipeline for a single input file.
type Runner struct {
	cfg *config.Config
	log zerolog.Logger

	probe   ProbeFunc
	extract ffmpeg.ExtractFunc
	mux     mkvmerge.RunFunc
}

// New returns a Runner wired to the real external tools.
func New(cfg *config.Config, log zerolog.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		log:     log,
		probe:   probe.Probe,
		extract: ffmpeg.ExtractSRT,
		mux:     mkvmerge.Execute,
	}
}

// Run drives the pipeline to completion. The returned error, when non-nil,
// is a *UsageError, *ProbeError or *MuxError; any partial destination file
// and the temp workspace are already cleaned up.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	// --- Validate (no stage entered on failure) ---
	fi, err := os.Stat(r.cfg.Input)
	if err != nil {
		return nil, &UsageError{Err: fmt.Errorf("cannot read input: %w", err)}
	}
	if !fi.Mode().IsRegular() {
		return nil, &UsageError{Err: fmt.Errorf("input %s is not a regular file", r.cfg.Input)}
	}

	output := naming.OutputPath(r.cfg.Input, r.cfg.Output)
	if err := naming.CheckDestination(r.cfg.Input, output, r.cfg.Force); err != nil {
		return nil, &UsageError{Err: err}
	}

	result := &Result{
		InputPath:  r.cfg.Input,
		OutputPath: output,
		InputSize:  fi.Size(),
		DryRun:     r.cfg.DryRun,
	}

	// --- PROBING ---
	r.log.Debug().Str("input", r.cfg.Input).Msg("probing source")
	pr, err := r.probe(ctx, r.cfg.Tools.Ffprobe, r.cfg.Input)
	if err != nil {
		var perr *probe.Error
		if errors.As(err, &perr) {
			return nil, &ProbeError{Diagnostics: perr.Diagnostics, Err: perr.Err}
		}
		return nil, &ProbeError{Err: err}
	}
	if len(pr.MuxableTracks()) == 0 {
		return nil, &ProbeError{Err: fmt.Errorf("no muxable tracks in %s", r.cfg.Input)}
	}
	r.log.Debug().
		Str("container", pr.Format.FormatName).
		Int("tracks", len(pr.Tracks)).
		Int("chapters", len(pr.Chapters)).
		Msg("probe complete")

	// --- PLANNING ---
	// The workspace name embeds a UUID so concurrent runs never share side
	// files even if TMPDIR collisions were possible.
	workDir, err := os.MkdirTemp("", "m4v2mkv-"+uuid.NewString())
	if err != nil {
		return nil, &MuxError{Err: fmt.Errorf("create workspace: %w", err)}
	}
	defer os.RemoveAll(workDir)

	plan := planner.BuildPlan(r.cfg, pr, workDir)
	plan.OutputPath = output
	result.TrackCount = len(plan.Tracks)
	result.ChapterCount = plan.ChapterCount

	argv := mkvmerge.Build(plan)

	if r.cfg.DryRun {
		display.RenderPlan(os.Stdout, plan, argv)
		result.Elapsed = time.Since(start)
		return result, nil
	}

	// --- MUXING ---
	if err := r.materialize(ctx, plan); err != nil {
		return nil, &MuxError{Err: err}
	}

	r.log.Debug().Strs("argv", argv).Msg("invoking mkvmerge")
	res := r.mux(ctx, r.cfg.Tools.Mkvmerge, argv, r.cfg.Verbose)
	if res.Failed() {
		// The partial destination is undefined output; remove it.
		if _, statErr := os.Stat(output); statErr == nil {
			if rmErr := os.Remove(output); rmErr != nil {
				r.log.Warn().Err(rmErr).Str("path", output).Msg("could not remove partial output")
			}
		}
		return nil, &MuxError{Diagnostics: res.Diagnostics(), Err: res.Err}
	}
	if res.Warned() {
		result.Warned = true
		r.log.Warn().Msg("mkvmerge completed with warnings")
		if r.cfg.Verbose {
			r.log.Warn().Msg(res.Stdout)
		}
	}

	// --- DONE ---
	outInfo, err := os.Stat(output)
	if err != nil {
		return nil, &MuxError{Err: fmt.Errorf("mkvmerge did not produce %s: %w", output, err)}
	}
	result.OutputSize = outInfo.Size()
	result.Elapsed = time.Since(start)
	return result, nil
}

// materialize writes the plan's side files: tag XML documents and extracted
// SRT subtitles.
func (r *Runner) materialize(ctx context.Context, plan *planner.Plan) error {
	if plan.GlobalTagsFile != "" {
		if err := tags.WriteFile(plan.GlobalTagsFile, plan.GlobalTags); err != nil {
			return err
		}
	}
	for _, t := range plan.Tracks {
		if t.TagsFile == "" {
			continue
		}
		if err := tags.WriteFile(t.TagsFile, t.Tags); err != nil {
			return err
		}
	}
	for _, e := range plan.Extractions {
		r.log.Debug().Int("stream", e.SourceIndex).Msg("extracting subtitle track")
		if err := r.extract(ctx, r.cfg.Tools.Ffmpeg, plan.InputPath, e.SourceIndex, e.OutputPath); err != nil {
			return err
		}
	}
	return nil
}
