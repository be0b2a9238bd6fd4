package pipeline

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/m4v2mkv/internal/config"
	"github.com/backmassage/m4v2mkv/internal/mkvmerge"
	"github.com/backmassage/m4v2mkv/internal/probe"
)

// fixtureProbe returns a ProbeFunc serving a canned descriptor: one video
// track, one audio track tagged language=eng, two chapters, container title.
func fixtureProbe() ProbeFunc {
	return func(_ context.Context, _, _ string) (*probe.Result, error) {
		return &probe.Result{
			Format: probe.Format{
				FormatName: "mov,mp4,m4a,3gp,3g2,mj2",
				Tags:       map[string]string{"title": "Foo", "creation_time": "2019-04-01"},
			},
			Tracks: []probe.Track{
				{Index: 0, Type: probe.TrackVideo, Codec: "h264", Default: true, Tags: map[string]string{}},
				{Index: 1, Type: probe.TrackAudio, Codec: "aac", Default: true,
					Tags: map[string]string{"language": "eng"}},
			},
			Chapters: []probe.Chapter{
				{ID: 1, Start: 0, End: 600, Title: "One"},
				{ID: 2, Start: 600, End: 1200, Title: "Two"},
			},
		}, nil
	}
}

func newTestRunner(t *testing.T, cfg *config.Config) *Runner {
	t.Helper()
	r := New(cfg, zerolog.Nop())
	r.probe = fixtureProbe()
	r.extract = func(_ context.Context, _, _ string, _ int, outPath string) error {
		return os.WriteFile(outPath, []byte("1\n00:00:01,000 --> 00:00:02,000\nhi\n"), 0o644)
	}
	return r
}

func testInput(t *testing.T) (cfg config.Config, dir string) {
	t.Helper()
	dir = t.TempDir()
	input := filepath.Join(dir, "movie.m4v")
	require.NoError(t, os.WriteFile(input, []byte("not really media"), 0o644))

	cfg = config.Default()
	cfg.Input = input
	return cfg, dir
}

func TestRun_Success(t *testing.T) {
	cfg, dir := testInput(t)
	r := newTestRunner(t, &cfg)

	var gotArgs []string
	r.mux = func(_ context.Context, _ string, args []string, _ bool) mkvmerge.ExecResult {
		gotArgs = args
		// Side files named in the argv must exist by invocation time.
		for i, a := range args {
			if a == "--global-tags" {
				_, err := os.Stat(args[i+1])
				assert.NoError(t, err, "global tag XML must be materialized before mkvmerge runs")
			}
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.mkv"), []byte("mkv bytes"), 0o644))
		return mkvmerge.ExecResult{Stdout: "Muxing took 1 second."}
	}

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "movie.mkv"), result.OutputPath)
	assert.Equal(t, 2, result.TrackCount)
	assert.Equal(t, 2, result.ChapterCount)
	assert.Positive(t, result.OutputSize)
	assert.False(t, result.Warned)

	joined := strings.Join(gotArgs, " ")
	assert.Contains(t, joined, "--language 1:eng")
	assert.Contains(t, joined, "--track-order 0:0,0:1")
}

func TestRun_MissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.Input = filepath.Join(t.TempDir(), "absent.m4v")
	r := newTestRunner(t, &cfg)

	_, err := r.Run(context.Background())
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)

	_, statErr := os.Stat(strings.TrimSuffix(cfg.Input, ".m4v") + ".mkv")
	assert.True(t, os.IsNotExist(statErr), "no output file may be created")
}

func TestRun_ExistingDestinationWithoutForce(t *testing.T) {
	cfg, dir := testInput(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.mkv"), []byte("old"), 0o644))
	r := newTestRunner(t, &cfg)

	_, err := r.Run(context.Background())
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.ErrorContains(t, err, "already exists")
}

func TestRun_ProbeFailure(t *testing.T) {
	cfg, dir := testInput(t)
	r := newTestRunner(t, &cfg)
	r.probe = func(_ context.Context, _, _ string) (*probe.Result, error) {
		return nil, &probe.Error{Diagnostics: "movie.m4v: Invalid data found", Err: errors.New("exit status 1")}
	}
	r.mux = func(_ context.Context, _ string, _ []string, _ bool) mkvmerge.ExecResult {
		t.Fatal("mkvmerge must not run after a probe failure")
		return mkvmerge.ExecResult{}
	}

	_, err := r.Run(context.Background())
	var probeErr *ProbeError
	require.ErrorAs(t, err, &probeErr)
	assert.Contains(t, probeErr.Diagnostics, "Invalid data found")

	_, statErr := os.Stat(filepath.Join(dir, "movie.mkv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_NoMuxableTracks(t *testing.T) {
	cfg, _ := testInput(t)
	r := newTestRunner(t, &cfg)
	r.probe = func(_ context.Context, _, _ string) (*probe.Result, error) {
		return &probe.Result{
			Tracks: []probe.Track{
				{Index: 0, Type: probe.TrackVideo, Codec: "mjpeg", CoverArt: true, Tags: map[string]string{}},
			},
		}, nil
	}

	_, err := r.Run(context.Background())
	var probeErr *ProbeError
	require.ErrorAs(t, err, &probeErr)
}

func TestRun_MuxFailureCleansPartialOutput(t *testing.T) {
	cfg, dir := testInput(t)
	r := newTestRunner(t, &cfg)
	output := filepath.Join(dir, "movie.mkv")
	r.mux = func(_ context.Context, _ string, _ []string, _ bool) mkvmerge.ExecResult {
		// Simulate mkvmerge dying partway through the write.
		require.NoError(t, os.WriteFile(output, []byte("trunc"), 0o644))
		return mkvmerge.ExecResult{
			Stderr: "Error: the file could not be written",
			Err:    errors.New("exit status 2"),
		}
	}

	_, err := r.Run(context.Background())
	var muxErr *MuxError
	require.ErrorAs(t, err, &muxErr)
	assert.Contains(t, muxErr.Diagnostics, "could not be written")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "partial output must be removed on mux failure")
}

func TestRun_MuxWarningsAreSuccess(t *testing.T) {
	cfg, dir := testInput(t)
	r := newTestRunner(t, &cfg)
	r.mux = func(_ context.Context, _ string, _ []string, _ bool) mkvmerge.ExecResult {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.mkv"), []byte("mkv"), 0o644))
		return mkvmerge.ExecResult{Stdout: "Warning: something minor", Err: exitOneError(t)}
	}

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Warned)
}

func TestRun_DryRunInvokesNothing(t *testing.T) {
	cfg, dir := testInput(t)
	cfg.DryRun = true
	r := newTestRunner(t, &cfg)
	r.mux = func(_ context.Context, _ string, _ []string, _ bool) mkvmerge.ExecResult {
		t.Fatal("dry run must not invoke mkvmerge")
		return mkvmerge.ExecResult{}
	}

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.DryRun)

	_, statErr := os.Stat(filepath.Join(dir, "movie.mkv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_OutputOverride(t *testing.T) {
	cfg, _ := testInput(t)
	outDir := t.TempDir()
	cfg.Output = filepath.Join(outDir, "custom.mkv")
	r := newTestRunner(t, &cfg)
	r.mux = func(_ context.Context, _ string, args []string, _ bool) mkvmerge.ExecResult {
		require.NoError(t, os.WriteFile(cfg.Output, []byte("mkv"), 0o644))
		assert.Equal(t, cfg.Output, args[1])
		return mkvmerge.ExecResult{}
	}

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Output, result.OutputPath)
}

// exitOneError fabricates mkvmerge's warnings exit status (1) by running a
// shell that exits with it, yielding a genuine *exec.ExitError.
func exitOneError(t *testing.T) error {
	t.Helper()
	err := exec.Command("sh", "-c", "exit 1").Run()
	require.Error(t, err)
	return err
}
