package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/progressbar/internal/tui"
)

type watchOptions struct {
	ConfigPath string
	RecordPath string
	FeedPath   string
	LogPath    string
}

func newWatchCmd(root *rootFlags) *cobra.Command {
	opts := watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the widget live in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFilePath("config", opts.ConfigPath); err != nil {
				return err
			}
			if opts.RecordPath != "" {
				if err := validateFilePath("record", opts.RecordPath); err != nil {
					return err
				}
			}
			if err := validateFeedPath(opts.FeedPath); err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("watch needs an interactive terminal; use render instead")
			}
			return runWatch(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to widget configuration")
	cmd.Flags().StringVarP(&opts.RecordPath, "record", "r", "", "Path to a record file")
	cmd.Flags().StringVar(&opts.FeedPath, "feed", "", `JSON lines of record changes ("-" for stdin)`)
	cmd.Flags().StringVar(&opts.LogPath, "log-file", "", "Write logs to this file instead of discarding them")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runWatch(parent context.Context, root *rootFlags, opts watchOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var logWriter io.Writer = io.Discard
	if opts.LogPath != "" {
		f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logWriter = f
	}

	rt, err := newRuntime(runtimeOptions{
		ConfigPath:   opts.ConfigPath,
		RecordPath:   opts.RecordPath,
		SettingsPath: root.settingsPath,
		Verbose:      root.verbose,
		LogWriter:    logWriter,
	})
	if err != nil {
		return err
	}

	var forward tui.Forwarder
	ctrl := rt.controller(forward.Send)
	defer ctrl.Close()

	model := tui.NewModel(ctx, ctrl, tui.Options{
		Title:         filepath.Base(opts.ConfigPath),
		FrameInterval: rt.settings.Watch.FrameInterval,
	})

	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseCellMotion()}
	if opts.FeedPath == "-" {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	program := tea.NewProgram(model, programOpts...)
	forward.Attach(program)

	feedCtx, cancelFeed := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(feedCtx)
	if err := rt.startFeed(gctx, g, opts.FeedPath); err != nil {
		cancelFeed()
		return err
	}

	_, runErr := program.Run()
	cancelFeed()
	feedErr := g.Wait()
	rt.dispatcher.Wait()

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return feedErr
}
