package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/m4v2mkv/internal/check"
	"github.com/backmassage/m4v2mkv/internal/config"
	"github.com/backmassage/m4v2mkv/internal/display"
	"github.com/backmassage/m4v2mkv/internal/logging"
	"github.com/backmassage/m4v2mkv/internal/pipeline"
)

// rootFlags holds CLI flag values before they are merged into the config.
// Flags are applied only when set, so config-file values hold otherwise.
type rootFlags struct {
	configPath     string
	output         string
	dryRun         bool
	force          bool
	verbose        bool
	colorMode      string
	logFile        string
	ffprobePath    string
	mkvmergePath   string
	ffmpegPath     string
	overrideGlobal string
	overrideTrack  string
	rawArgs        string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:     "m4v2mkv [flags] INPUT",
		Short:   "Remux m4v to mkv, preserving tags, track metadata and chapters",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Args:    cobra.ExactArgs(1),
		Example: `  m4v2mkv movie.m4v
  m4v2mkv --dry-run movie.m4v
  m4v2mkv -o /mnt/library/movie.mkv --force movie.m4v
  m4v2mkv --override-global-tags '{"title":"Foo","comment":null}' movie.m4v`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemux(cmd, args[0], &flags)
		},
	}

	fl := rootCmd.Flags()
	fl.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	fl.StringVarP(&flags.output, "output", "o", "", "Destination path (default: input with .mkv extension)")
	fl.BoolVarP(&flags.dryRun, "dry-run", "n", false, "Print the multiplex plan without invoking mkvmerge")
	fl.BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing destination file")
	fl.BoolVarP(&flags.verbose, "verbose", "v", false, "Debug logging and live mkvmerge output")
	fl.StringVar(&flags.colorMode, "color", "", "Color output: auto, always or never")
	fl.StringVar(&flags.logFile, "log-file", "", "Also append log output to a file")
	fl.StringVar(&flags.ffprobePath, "ffprobe-path", "", "Path to the ffprobe executable")
	fl.StringVar(&flags.mkvmergePath, "mkvmerge-path", "", "Path to the mkvmerge executable")
	fl.StringVar(&flags.ffmpegPath, "ffmpeg-path", "", "Path to the ffmpeg executable")
	fl.StringVar(&flags.overrideGlobal, "override-global-tags", "", "JSON object merged into container tags (null value deletes a tag)")
	fl.StringVar(&flags.overrideTrack, "override-track-tags", "", "JSON object merged into every track's tags (null value deletes a tag)")
	fl.StringVar(&flags.rawArgs, "raw-args", "", "Extra arguments appended to the mkvmerge command (whitespace-split)")

	rootCmd.AddCommand(newCheckCommand(&flags))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// loadConfig resolves defaults, the optional config file, and CLI flags into
// the final Config. Precedence is flags > file > defaults.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg := config.Default()
	if err := config.Load(&cfg, flags.configPath); err != nil {
		return cfg, &pipeline.UsageError{Err: err}
	}

	set := cmd.Flags().Changed
	if set("force") {
		cfg.Force = flags.force
	}
	if set("color") {
		cfg.Logging.Color = config.ColorMode(flags.colorMode)
	}
	if set("log-file") {
		cfg.Logging.File = flags.logFile
	}
	if set("ffprobe-path") {
		cfg.Tools.Ffprobe = flags.ffprobePath
	}
	if set("mkvmerge-path") {
		cfg.Tools.Mkvmerge = flags.mkvmergePath
	}
	if set("ffmpeg-path") {
		cfg.Tools.Ffmpeg = flags.ffmpegPath
	}

	cfg.Output = flags.output
	cfg.DryRun = flags.dryRun
	cfg.Verbose = flags.verbose
	cfg.RawArgs = strings.Fields(flags.rawArgs)

	if flags.overrideGlobal != "" {
		setTags, drop, err := config.ParseOverrideJSON(flags.overrideGlobal)
		if err != nil {
			return cfg, &pipeline.UsageError{Err: err}
		}
		cfg.Tags.MergeGlobalOverrides(setTags, drop)
	}
	if flags.overrideTrack != "" {
		setTags, drop, err := config.ParseOverrideJSON(flags.overrideTrack)
		if err != nil {
			return cfg, &pipeline.UsageError{Err: err}
		}
		cfg.Tags.MergeTrackOverrides(setTags, drop)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, &pipeline.UsageError{Err: err}
	}
	return cfg, nil
}

func runRemux(cmd *cobra.Command, input string, flags *rootFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	cfg.Input = input

	log, closer, err := logging.Setup(&cfg)
	if err != nil {
		return &pipeline.UsageError{Err: err}
	}
	if closer != nil {
		defer closer.Close()
	}

	// A dry run never invokes mkvmerge, so only the real run insists on the
	// tools being present up front.
	if !cfg.DryRun {
		if err := check.CheckDeps(&cfg); err != nil {
			return &pipeline.UsageError{Err: err}
		}
	}

	// Cancel the pipeline on SIGINT/SIGTERM; the child process dies with the
	// context and the partial destination is cleaned up.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn().Msg("interrupt received, aborting")
		cancel()
	}()

	result, err := pipeline.New(&cfg, log).Run(ctx)
	if err != nil {
		return err
	}

	if result.DryRun {
		return nil
	}

	log.Info().
		Str("output", result.OutputPath).
		Str("size", display.FormatBytes(result.OutputSize)).
		Int("tracks", result.TrackCount).
		Int("chapters", result.ChapterCount).
		Dur("elapsed", result.Elapsed).
		Msg("remux complete")
	return nil
}
