// Package tui is the interactive terminal host for a single progress bar.
package tui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/progressbar/internal/binding"
	"github.com/alexisbeaulieu97/progressbar/internal/config"
)

// DefaultFrameInterval paces the stripe animation of animated bars.
const DefaultFrameInterval = 120 * time.Millisecond

// Widget is the part of the binding controller the TUI drives.
type Widget interface {
	State() binding.State
	Config() config.Widget
	HandleClick(ctx context.Context)
}

// StateMsg carries a freshly derived state into the program.
type StateMsg struct {
	State binding.State
}

type frameMsg struct{}

type keyMap struct {
	Click key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Click, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func newKeyMap(clickable bool) keyMap {
	k := keyMap{
		Click: key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "click")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	k.Click.SetEnabled(clickable)
	return k
}

// Options tunes the model.
type Options struct {
	Title         string
	Width         int
	FrameInterval time.Duration
}

// Model is the Bubbletea model for the watch view.
type Model struct {
	ctx    context.Context
	widget Widget
	cfg    config.Widget
	state  binding.State

	keys keyMap
	help help.Model

	title    string
	width    int
	maxWidth int
	phase    int
	interval time.Duration
	clicks   int
	quitting bool
}

// NewModel builds a model around widget. ctx bounds the click actions it
// starts.
func NewModel(ctx context.Context, widget Widget, opts Options) Model {
	cfg := widget.Config()
	width := opts.Width
	if width <= 0 {
		width = cfg.Width
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	title := opts.Title
	if title == "" {
		title = "Progress"
	}

	return Model{
		ctx:      ctx,
		widget:   widget,
		cfg:      cfg,
		state:    widget.State(),
		keys:     newKeyMap(cfg.OnClick.Enabled()),
		help:     help.New(),
		title:    title,
		width:    width,
		maxWidth: width,
		interval: interval,
	}
}

// Init starts the animation loop for animated bars.
func (m Model) Init() tea.Cmd {
	if m.cfg.BarType != config.BarAnimated {
		return nil
	}
	return m.frame()
}

// State returns the last state the model received.
func (m Model) State() binding.State {
	return m.state
}

// Clicks counts the click actions the model started.
func (m Model) Clicks() int {
	return m.clicks
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) click() tea.Cmd {
	widget, ctx := m.widget, m.ctx
	return func() tea.Msg {
		widget.HandleClick(ctx)
		return nil
	}
}

// Forwarder bridges controller change notifications into a running
// program. Changes arriving before Attach are dropped; the model reads the
// initial state itself.
type Forwarder struct {
	program atomic.Pointer[tea.Program]
}

// Attach starts delivering to p.
func (f *Forwarder) Attach(p *tea.Program) {
	f.program.Store(p)
}

// Send is suitable for binding.WithOnChange.
func (f *Forwarder) Send(st binding.State) {
	if p := f.program.Load(); p != nil {
		p.Send(StateMsg{State: st})
	}
}
