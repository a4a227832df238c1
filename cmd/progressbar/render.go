package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/progressbar/internal/config"
	"github.com/alexisbeaulieu97/progressbar/internal/render"
)

type renderOptions struct {
	ConfigPath string
	RecordPath string
	Format     string
	Preview    bool
	Width      int
}

const (
	formatText = "text"
	formatHTML = "html"
	formatJSON = "json"
)

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the widget once against a record file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFilePath("config", opts.ConfigPath); err != nil {
				return err
			}
			if opts.RecordPath != "" {
				if err := validateFilePath("record", opts.RecordPath); err != nil {
					return err
				}
			}
			switch opts.Format {
			case formatText, formatHTML, formatJSON:
			default:
				return fmt.Errorf("unknown format %q (want text, html or json)", opts.Format)
			}
			return runRender(cmd.OutOrStdout(), cmd.ErrOrStderr(), root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to widget configuration")
	cmd.Flags().StringVarP(&opts.RecordPath, "record", "r", "", "Path to a record file")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", formatText, "Output format: text, html or json")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Render the design-time preview instead of record data")
	cmd.Flags().IntVarP(&opts.Width, "width", "w", 0, "Bar width in cells for text output")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runRender(out, errOut io.Writer, root *rootFlags, opts renderOptions) error {
	rt, err := newRuntime(runtimeOptions{
		ConfigPath:   opts.ConfigPath,
		RecordPath:   opts.RecordPath,
		SettingsPath: root.settingsPath,
		Verbose:      root.verbose,
		LogWriter:    errOut,
	})
	if err != nil {
		return err
	}

	var view render.View
	if opts.Preview {
		view = render.Preview(rt.widget)
	} else {
		ctrl := rt.controller(nil)
		view = render.Build(ctrl.State(), rt.widget)
		ctrl.Close()
	}

	switch opts.Format {
	case formatHTML:
		html, err := render.HTML(view)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, html)
		return err
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default:
		_, err := fmt.Fprintln(out, render.Terminal(view, render.TerminalOptions{Width: textWidth(opts.Width, rt.widget)}))
		return err
	}
}

// textWidth picks the bar width: the flag, else the configured width
// shrunk to fit the terminal.
func textWidth(flag int, w config.Widget) int {
	if flag > 0 {
		return flag
	}
	width := w.Width
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if cols, _, err := term.GetSize(fd); err == nil && cols-8 > 0 && cols-8 < width {
			width = cols - 8
		}
	}
	return width
}
