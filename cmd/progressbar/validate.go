package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/progressbar/internal/config"
)

func newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a widget configuration without rendering it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFilePath("config", configPath); err != nil {
				return err
			}

			w, err := config.ParseWidget(configPath)
			if err != nil {
				return err
			}
			if err := config.ValidateClickAction(*w); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", configPath)
			if attrs := w.SourceAttributes(); len(attrs) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  reads: %v\n", attrs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to widget configuration")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}
