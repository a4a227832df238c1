package main

import (
	"context"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/progressbar/internal/binding"
	"github.com/alexisbeaulieu97/progressbar/internal/config"
	"github.com/alexisbeaulieu97/progressbar/internal/infrastructure/actions"
	"github.com/alexisbeaulieu97/progressbar/internal/infrastructure/bus"
	"github.com/alexisbeaulieu97/progressbar/internal/infrastructure/store"
	"github.com/alexisbeaulieu97/progressbar/internal/logger"
	"github.com/alexisbeaulieu97/progressbar/internal/settings"
)

type runtimeOptions struct {
	ConfigPath   string
	RecordPath   string
	SettingsPath string
	Verbose      bool
	// LogWriter receives log output; nil means stderr.
	LogWriter io.Writer
}

// appRuntime bundles the long-lived services a command works with.
type appRuntime struct {
	settings   *settings.Settings
	log        *logger.Logger
	widget     config.Widget
	store      *store.Store
	record     store.Record
	dispatcher *actions.Dispatcher
}

func newRuntime(opts runtimeOptions) (*appRuntime, error) {
	s, err := settings.Load(opts.SettingsPath)
	if err != nil {
		return nil, err
	}

	level := s.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	writer := opts.LogWriter
	human := s.Log.HumanReadable
	if writer == nil {
		writer = os.Stderr
		human = human || term.IsTerminal(int(os.Stderr.Fd()))
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: human, Writer: writer, Component: "progressbar"})
	if err != nil {
		return nil, err
	}

	widget, err := config.ParseWidget(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	st := store.New(log.With("layer", "store"))
	var rec store.Record
	if opts.RecordPath != "" {
		rec, err = st.LoadFile(opts.RecordPath)
		if err != nil {
			return nil, err
		}
	} else {
		rec = st.Create("", nil)
	}

	dispatcher := actions.New(widget.Workflows, widget.Pages,
		actions.WithLogger(log.With("layer", "actions")),
		actions.WithShell(s.Actions.Shell),
		actions.WithConcurrency(s.Actions.Concurrency),
	)

	return &appRuntime{
		settings:   s,
		log:        log,
		widget:     *widget,
		store:      st,
		record:     rec,
		dispatcher: dispatcher,
	}, nil
}

// controller mounts and binds a controller to the runtime's record.
func (r *appRuntime) controller(onChange func(binding.State)) *binding.Controller {
	opts := []binding.Option{binding.WithLogger(r.log.With("layer", "binding"))}
	if onChange != nil {
		opts = append(opts, binding.WithOnChange(onChange))
	}
	c := binding.New(r.store, r.dispatcher, r.widget, opts...)
	c.Bind(r.record, r.widget)
	return c
}

// startFeed routes JSON change lines from path ("-" for stdin) into the
// store through the bus. It does nothing when path is empty.
func (r *appRuntime) startFeed(ctx context.Context, g *errgroup.Group, path string) error {
	if path == "" {
		return nil
	}

	b, err := bus.NewInMemory(r.log.With("layer", "bus"))
	if err != nil {
		return err
	}
	b.RouteTo(r.store)

	var reader io.ReadCloser = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		reader = f
	}

	g.Go(func() error { return b.Run(ctx) })
	g.Go(func() error {
		if path != "-" {
			defer reader.Close()
		}
		return b.FeedLines(ctx, reader)
	})
	return nil
}
