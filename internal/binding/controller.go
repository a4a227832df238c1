// Package binding keeps a progress bar's derived state in step with a
// host-owned record and mediates its click actions.
package binding

import (
	"context"
	"reflect"
	"sync"

	"github.com/alexisbeaulieu97/progressbar/internal/config"
	"github.com/alexisbeaulieu97/progressbar/internal/logger"
	"github.com/alexisbeaulieu97/progressbar/internal/ports"
	"github.com/alexisbeaulieu97/progressbar/internal/progress"
	pberrors "github.com/alexisbeaulieu97/progressbar/pkg/errors"
)

// Option customises a Controller.
type Option func(*Controller)

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithOnChange registers a function called with a fresh snapshot every
// time the derived state is recomputed. It runs without the controller
// lock held, on whichever goroutine caused the change. Calls never overlap
// and a snapshot older than one already delivered is dropped, so the last
// call always carries the current state. fn must not rebind the controller.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// Controller owns one widget instance's subscriptions and derived state.
// It moves from unbound to bound on Bind, rebinds by releasing every handle
// before subscribing again, and becomes inert after Close.
type Controller struct {
	data     ports.DataService
	actions  ports.ActionService
	log      *logger.Logger
	onChange func(State)

	mu         sync.Mutex
	cfg        config.Widget
	record     ports.Record
	handles    []ports.Handle
	generation uint64
	state      State
	closed     bool
	seq        uint64

	emitMu   sync.Mutex
	lastSent uint64
}

// New mounts a controller with cfg and no record bound.
func New(data ports.DataService, actions ports.ActionService, cfg config.Widget, opts ...Option) *Controller {
	c := &Controller{
		data:    data,
		actions: actions,
		cfg:     cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = c.resolveLocked("")
	return c
}

// Bind releases every subscription held so far, resolves the state against
// record and cfg, and subscribes to the record and to each attribute cfg
// reads. A nil record leaves the widget unbound with literal defaults.
// Binding the same record and configuration again is harmless.
func (c *Controller) Bind(record ports.Record, cfg config.Widget) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.Warn("bind after close ignored")
		return
	}

	c.releaseLocked()
	c.generation++
	gen := c.generation

	if isNil(record) {
		record = nil
	}
	prevID := c.state.RecordID
	c.cfg = cfg
	c.record = record
	c.state = c.resolveLocked(prevID)

	if record != nil && record.ID() != "" {
		id := record.ID()
		cb := c.changed(gen)
		c.handles = append(c.handles, c.data.Subscribe(ports.Subscription{RecordID: id, Callback: cb}))
		for _, attr := range cfg.SourceAttributes() {
			c.handles = append(c.handles, c.data.Subscribe(ports.Subscription{RecordID: id, Attribute: attr, Callback: cb}))
		}
	}

	c.log.WithFields(map[string]any{
		"record":  c.state.RecordID,
		"handles": len(c.handles),
	}).Debug("widget bound")

	snap, seq := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap, seq)
}

// OnDataChange rebinds the current configuration to a new record.
func (c *Controller) OnDataChange(record ports.Record) {
	c.Bind(record, c.Config())
}

// Update replaces the configuration and rebinds the current record.
func (c *Controller) Update(cfg config.Widget) {
	c.Bind(c.Record(), cfg)
}

// Validate returns the configuration banner text, or "" when the click
// action is complete.
func (c *Controller) Validate(cfg config.Widget) string {
	if err := config.ValidateClickAction(cfg); err != nil {
		return err.Error()
	}
	return ""
}

// HandleClick dispatches the configured click action for the bound record.
// It does nothing when no action is configured, no record is bound, the
// record has no identity, or the action is incomplete. A failure reported
// by the host later sets ActionError.
func (c *Controller) HandleClick(ctx context.Context) {
	c.mu.Lock()
	if c.closed || isNil(c.record) || c.record.ID() == "" {
		c.mu.Unlock()
		return
	}
	cfg := c.cfg
	if !cfg.OnClick.Enabled() || config.ValidateClickAction(cfg) != nil {
		c.mu.Unlock()
		return
	}
	id := c.record.ID()
	cleared := c.state.ActionError != ""
	c.state.ActionError = ""
	snap, seq := c.snapshotLocked()
	c.mu.Unlock()

	if cleared {
		c.emit(snap, seq)
	}

	switch cfg.OnClick.Action {
	case config.ActionWorkflow:
		name := cfg.OnClick.Workflow
		c.log.WithFields(map[string]any{"record": id, "workflow": name}).Info("invoking workflow")
		c.actions.InvokeWorkflow(ctx, name, ports.WorkflowRequest{
			RecordID: id,
			OnError:  c.actionFailed(id, pberrors.ActionWorkflow, name),
		})
	case config.ActionPage:
		name := cfg.OnClick.Page
		c.log.WithFields(map[string]any{"record": id, "page": name}).Info("opening page")
		c.actions.NavigateToPage(ctx, name, ports.PageRequest{
			RecordID: id,
			Location: string(cfg.OnClick.Location),
			OnError:  c.actionFailed(id, pberrors.ActionPage, name),
		})
	}
}

// Close releases every subscription exactly once. Later calls, late
// notifications and late action failures are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.releaseLocked()
	c.generation++
	c.record = nil
	c.log.Debug("widget unmounted")
}

// State returns a snapshot of the derived state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Config returns the current configuration.
func (c *Controller) Config() config.Widget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Record returns the bound record, or nil.
func (c *Controller) Record() ports.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// Handles returns how many subscriptions the controller holds.
func (c *Controller) Handles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handles)
}

func (c *Controller) changed(gen uint64) func() {
	return func() {
		c.mu.Lock()
		if c.closed || gen != c.generation {
			c.mu.Unlock()
			return
		}
		c.state = c.resolveLocked(c.state.RecordID)
		snap, seq := c.snapshotLocked()
		c.mu.Unlock()

		c.emit(snap, seq)
	}
}

func (c *Controller) actionFailed(recordID, kind, name string) func(error) {
	return func(err error) {
		actionErr := pberrors.NewActionInvocationError(kind, name, err)

		c.mu.Lock()
		if c.closed || isNil(c.record) || c.record.ID() != recordID {
			c.mu.Unlock()
			c.log.WithFields(map[string]any{"record": recordID}).Debug("late action failure dropped")
			return
		}
		c.state.ActionError = actionErr.Error()
		snap, seq := c.snapshotLocked()
		c.mu.Unlock()

		c.log.WithFields(map[string]any{"record": recordID, "action": kind, "name": name}).Error(err, "click action failed")
		c.emit(snap, seq)
	}
}

// resolveLocked derives a fresh state. The action error survives only
// while the same record stays bound.
func (c *Controller) resolveLocked(prevRecordID string) State {
	cfg := c.cfg
	st := State{
		Maximum:     cfg.Maximum,
		Style:       cfg.BootstrapStyle,
		ConfigError: c.Validate(cfg),
	}
	if cfg.Progress != nil {
		v := *cfg.Progress
		st.Progress = &v
	}
	if !st.Style.Valid() {
		st.Style = config.StyleDefault
	}

	if c.record == nil {
		return st
	}

	st.Bound = true
	st.RecordID = c.record.ID()

	if attr := cfg.ProgressAttribute; attr != "" {
		raw, _ := c.data.Attribute(c.record, attr)
		st.Progress = progress.Coerce(raw)
	}
	if attr := cfg.MaximumAttribute; attr != "" {
		raw, _ := c.data.Attribute(c.record, attr)
		if m := progress.Coerce(raw); m != nil {
			st.Maximum = *m
		} else {
			// an unreadable bound maximum renders as invalid
			st.Maximum = 0
		}
	}
	if attr := cfg.StyleAttribute; attr != "" {
		raw, _ := c.data.Attribute(c.record, attr)
		if style, ok := config.ParseBootstrapStyle(raw); ok {
			st.Style = style
		}
	}

	if prevRecordID == st.RecordID {
		st.ActionError = c.state.ActionError
	}
	return st
}

func (c *Controller) releaseLocked() {
	for _, h := range c.handles {
		c.data.Unsubscribe(h)
	}
	c.handles = nil
}

// snapshotLocked copies the state and stamps it with its position in the
// sequence of changes.
func (c *Controller) snapshotLocked() (State, uint64) {
	c.seq++
	return c.state.clone(), c.seq
}

func (c *Controller) emit(st State, seq uint64) {
	if c.onChange == nil {
		return
	}
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	if seq <= c.lastSent {
		return
	}
	c.lastSent = seq
	c.onChange(st)
}

// isNil catches typed nil pointers hidden in a non-nil interface.
func isNil(r ports.Record) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
