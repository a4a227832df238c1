package binding

import (
	"github.com/alexisbeaulieu97/progressbar/internal/config"
	"github.com/alexisbeaulieu97/progressbar/internal/progress"
)

// State is the widget-local projection of the bound record and the
// widget configuration. It is recomputed from scratch on every bind and
// every change notification.
type State struct {
	// Progress is nil when no value is available, which is distinct from 0.
	Progress *float64              `json:"progress"`
	Maximum  float64               `json:"maximum"`
	Style    config.BootstrapStyle `json:"style"`
	// ConfigError replaces the whole bar with a banner.
	ConfigError string `json:"config_error,omitempty"`
	// ActionError is shown next to the last rendered bar.
	ActionError string `json:"action_error,omitempty"`
	Bound       bool   `json:"bound"`
	RecordID    string `json:"record_id,omitempty"`
}

// Result runs the state through the progress normalizer.
func (s State) Result(colorSwitch int) progress.Result {
	return progress.Compute(s.Progress, s.Maximum, colorSwitch)
}

// ShowBar reports whether the bar may be drawn at all.
func (s State) ShowBar() bool {
	return s.ConfigError == ""
}

func (s State) clone() State {
	if s.Progress != nil {
		v := *s.Progress
		s.Progress = &v
	}
	return s
}
