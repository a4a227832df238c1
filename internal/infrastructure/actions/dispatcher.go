// Package actions runs progress bar click actions: workflows are shell
// commands, pages are entries in an in-process navigation history.
package actions

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/progressbar/internal/logger"
	"github.com/alexisbeaulieu97/progressbar/internal/ports"
)

var (
	// ErrUnknownWorkflow is reported when no command is defined for a workflow.
	ErrUnknownWorkflow = errors.New("workflow not defined")
	// ErrUnknownPage is reported for pages the navigator does not know.
	ErrUnknownPage = errors.New("page not found")
	// ErrBusy is reported when too many actions are already running.
	ErrBusy = errors.New("too many actions in flight")
)

// DefaultConcurrency bounds the number of actions running at once.
const DefaultConcurrency = 4

// Navigation is one successful page navigation.
type Navigation struct {
	Page     string `json:"page"`
	Location string `json:"location"`
	RecordID string `json:"record_id"`
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// WithShell overrides the shell used for workflow commands.
func WithShell(shell string) Option {
	return func(d *Dispatcher) { d.shell = shell }
}

// WithConcurrency bounds how many actions may run at once.
func WithConcurrency(n int) Option {
	return func(d *Dispatcher) { d.limit = n }
}

// WithNavigateHook is called after every successful navigation.
func WithNavigateHook(fn func(Navigation)) Option {
	return func(d *Dispatcher) { d.onNavigate = fn }
}

// Dispatcher implements ports.ActionService.
type Dispatcher struct {
	workflows  map[string]string
	pages      map[string]struct{}
	shell      string
	limit      int
	log        *logger.Logger
	onNavigate func(Navigation)

	group errgroup.Group

	mu      sync.Mutex
	history []Navigation
}

var _ ports.ActionService = (*Dispatcher)(nil)

// New creates a dispatcher for the given workflow commands and known pages.
func New(workflows map[string]string, pages []string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		workflows: make(map[string]string, len(workflows)),
		pages:     make(map[string]struct{}, len(pages)),
		limit:     DefaultConcurrency,
	}
	for name, line := range workflows {
		d.workflows[name] = line
	}
	for _, p := range pages {
		d.pages[p] = struct{}{}
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.limit > 0 {
		d.group.SetLimit(d.limit)
	}
	return d
}

// InvokeWorkflow implements ports.ActionService.
func (d *Dispatcher) InvokeWorkflow(ctx context.Context, name string, req ports.WorkflowRequest) {
	log := d.log.WithFields(map[string]any{"workflow": name, "record": req.RecordID})
	d.spawn(req.OnError, func() error {
		line, ok := d.workflows[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownWorkflow, name)
		}
		if err := runCommand(ctx, d.shell, line, map[string]string{
			"RECORD_ID": req.RecordID,
			"WORKFLOW":  name,
		}); err != nil {
			return err
		}
		log.Info("workflow completed")
		return nil
	})
}

// NavigateToPage implements ports.ActionService.
func (d *Dispatcher) NavigateToPage(ctx context.Context, name string, req ports.PageRequest) {
	d.spawn(req.OnError, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := d.pages[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPage, name)
		}
		nav := Navigation{Page: name, Location: req.Location, RecordID: req.RecordID}
		d.mu.Lock()
		d.history = append(d.history, nav)
		d.mu.Unlock()

		d.log.WithFields(map[string]any{"page": name, "location": req.Location}).Info("page opened")
		if d.onNavigate != nil {
			d.onNavigate(nav)
		}
		return nil
	})
}

// History returns the navigations performed so far.
func (d *Dispatcher) History() []Navigation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Navigation(nil), d.history...)
}

// Wait blocks until every in-flight action has finished.
func (d *Dispatcher) Wait() {
	_ = d.group.Wait()
}

// spawn runs fn in the background and routes its failure to onError. The
// group never sees the error so one failed action does not poison Wait.
func (d *Dispatcher) spawn(onError func(error), fn func() error) {
	run := func() error {
		if err := fn(); err != nil {
			d.log.Error(err, "action failed")
			if onError != nil {
				onError(err)
			}
		}
		return nil
	}

	if d.group.TryGo(run) {
		return
	}
	d.log.Warn("action rejected, dispatcher busy")
	if onError != nil {
		go onError(ErrBusy)
	}
}
