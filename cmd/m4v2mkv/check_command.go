package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/m4v2mkv/internal/check"
	"github.com/backmassage/m4v2mkv/internal/config"
	"github.com/backmassage/m4v2mkv/internal/logging"
	"github.com/backmassage/m4v2mkv/internal/pipeline"
)

// newCheckCommand builds the diagnostics subcommand. It shares the tool-path
// and config flags with the root command so "m4v2mkv check" verifies the
// same binaries a real run would use.
func newCheckCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that ffprobe, mkvmerge and ffmpeg are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if err := config.Load(&cfg, flags.configPath); err != nil {
				return &pipeline.UsageError{Err: err}
			}
			if flags.ffprobePath != "" {
				cfg.Tools.Ffprobe = flags.ffprobePath
			}
			if flags.mkvmergePath != "" {
				cfg.Tools.Mkvmerge = flags.mkvmergePath
			}
			if flags.ffmpegPath != "" {
				cfg.Tools.Ffmpeg = flags.ffmpegPath
			}

			log, closer, err := logging.Setup(&cfg)
			if err != nil {
				return &pipeline.UsageError{Err: err}
			}
			if closer != nil {
				defer closer.Close()
			}

			if !check.RunCheck(&cfg, log) {
				return &pipeline.UsageError{Err: errors.New("required tools missing")}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVar(&flags.ffprobePath, "ffprobe-path", "", "Path to the ffprobe executable")
	cmd.Flags().StringVar(&flags.mkvmergePath, "mkvmerge-path", "", "Path to the mkvmerge executable")
	cmd.Flags().StringVar(&flags.ffmpegPath, "ffmpeg-path", "", "Path to the ffmpeg executable")

	return cmd
}
