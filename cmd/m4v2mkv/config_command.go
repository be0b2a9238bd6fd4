package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/m4v2mkv/internal/config"
)

// newConfigCommand builds the config helper subcommand: it prints the
// annotated sample config and the default file location, for piping into a
// fresh config file.
func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path, err := config.DefaultPath(); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "# Default location: %s\n", path)
			}
			fmt.Fprint(cmd.OutOrStdout(), config.Sample())
			return nil
		},
	}
}
