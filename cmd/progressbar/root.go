package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose      bool
	settingsPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "progressbar",
		Short:         "Render and host a data-bound progress bar widget",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.settingsPath, "settings", "", "Path to a settings file (default ./progressbar.yaml)")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
