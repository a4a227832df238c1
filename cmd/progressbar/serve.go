package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/progressbar/internal/server"
)

type serveOptions struct {
	ConfigPath string
	RecordPath string
	FeedPath   string
	Addr       string
}

func newServeCmd(root *rootFlags) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the widget over HTTP with live websocket updates",
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
			return runServe(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to widget configuration")
	cmd.Flags().StringVarP(&opts.RecordPath, "record", "r", "", "Path to a record file")
	cmd.Flags().StringVar(&opts.FeedPath, "feed", "", `JSON lines of record changes ("-" for stdin)`)
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from settings, :8080)")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runServe(parent context.Context, root *rootFlags, opts serveOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(runtimeOptions{
		ConfigPath:   opts.ConfigPath,
		RecordPath:   opts.RecordPath,
		SettingsPath: root.settingsPath,
		Verbose:      root.verbose,
	})
	if err != nil {
		return err
	}

	srv := server.New(rt.store, server.WithLogger(rt.log.With("layer", "server")))
	ctrl := rt.controller(srv.Notify)
	defer ctrl.Close()
	srv.Attach(ctrl)

	addr := opts.Addr
	if addr == "" {
		addr = rt.settings.Server.Addr
	}

	g, gctx := errgroup.WithContext(ctx)
	if err := rt.startFeed(gctx, g, opts.FeedPath); err != nil {
		return err
	}
	g.Go(func() error { return srv.Run(gctx, addr) })

	rt.log.WithFields(map[string]any{"record": rt.record.ID(), "addr": addr}).Info("serving widget")
	err = g.Wait()
	rt.dispatcher.Wait()
	return err
}
