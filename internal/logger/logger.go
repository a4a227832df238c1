// Package logger is the structured log sink shared by the widget runtime:
// the binding controller, the action dispatcher, the change feed and the
// HTTP server all write through it.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Options mirrors the log section of the settings file.
type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// HumanReadable switches from JSON lines to a console layout.
	HumanReadable bool
	// Writer defaults to stderr so stdout stays free for rendered output.
	Writer io.Writer
	// Component tags every entry, e.g. "progressbar".
	Component string
}

// Logger writes leveled entries carrying record, action and route fields.
// A nil *Logger discards everything, so components can take one optionally.
type Logger struct {
	base zerolog.Logger
}

// New builds a Logger from opts.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	ctx := zerolog.New(output(opts)).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return &Logger{base: ctx.Logger()}, nil
}

func parseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "log level %q", name)
	}
	return level, nil
}

func output(opts Options) io.Writer {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if !opts.HumanReadable {
		return w
	}
	console := zerolog.NewConsoleWriter()
	console.Out = w
	console.TimeFormat = time.RFC3339
	return console
}

// WithFields derives a logger stamping fields on every entry, in key order.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Fields(fields).Logger()}
}

// With derives a logger carrying one extra field.
func (l *Logger) With(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

func (l *Logger) Info(msg string) {
	if l != nil {
		l.base.Info().Msg(msg)
	}
}

func (l *Logger) Debug(msg string) {
	if l != nil {
		l.base.Debug().Msg(msg)
	}
}

func (l *Logger) Warn(msg string) {
	if l != nil {
		l.base.Warn().Msg(msg)
	}
}

// Error logs msg at error level with err attached when non-nil.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
