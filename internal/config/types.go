package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// BarType selects the stripe/animation treatment of the filled segment.
type BarType string

const (
	BarDefault  BarType = "default"
	BarStriped  BarType = "striped"
	BarAnimated BarType = "animated"
)

// Striped reports whether the fill is drawn with stripes.
func (b BarType) Striped() bool {
	return b == BarStriped || b == BarAnimated
}

// BootstrapStyle is the color style of the filled segment.
type BootstrapStyle string

const (
	StyleDefault BootstrapStyle = "default"
	StyleInfo    BootstrapStyle = "info"
	StylePrimary BootstrapStyle = "primary"
	StyleSuccess BootstrapStyle = "success"
	StyleWarning BootstrapStyle = "warning"
	StyleDanger  BootstrapStyle = "danger"
)

var bootstrapStyles = map[BootstrapStyle]struct{}{
	StyleDefault: {}, StyleInfo: {}, StylePrimary: {}, StyleSuccess: {}, StyleWarning: {}, StyleDanger: {},
}

// Valid reports whether s is one of the known styles.
func (s BootstrapStyle) Valid() bool {
	_, ok := bootstrapStyles[s]
	return ok
}

// ParseBootstrapStyle reads a style from a loosely typed attribute value.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseBootstrapStyle(raw any) (BootstrapStyle, bool) {
	str, ok := raw.(string)
	if !ok {
		return "", false
	}
	style := BootstrapStyle(strings.ToLower(strings.TrimSpace(str)))
	if !style.Valid() {
		return "", false
	}
	return style, true
}

// ClickAction is the side effect triggered by clicking the bar.
type ClickAction string

const (
	ActionNone     ClickAction = "none"
	ActionWorkflow ClickAction = "workflow"
	ActionPage     ClickAction = "page"
)

// PageLocation is where a navigated page opens.
type PageLocation string

const (
	LocationContent PageLocation = "content"
	LocationPopup   PageLocation = "popup"
	LocationModal   PageLocation = "modal"
)

// OnClick describes the configured click action.
type OnClick struct {
	Action   ClickAction  `yaml:"action,omitempty" json:"action,omitempty" validate:"omitempty,oneof=none workflow page"`
	Workflow string       `yaml:"workflow,omitempty" json:"workflow,omitempty"`
	Page     string       `yaml:"page,omitempty" json:"page,omitempty"`
	Location PageLocation `yaml:"location,omitempty" json:"location,omitempty" validate:"omitempty,oneof=content popup modal"`
}

// Enabled reports whether clicking the bar does anything.
func (o OnClick) Enabled() bool {
	return o.Action == ActionWorkflow || o.Action == ActionPage
}

// Defaults applied when a document leaves a field out.
const (
	DefaultColorSwitch = 50
	DefaultMaximum     = 100
	DefaultWidth       = 40
)

// Widget is the configuration of one mounted progress bar. It is
// immutable for a render cycle and replaced wholesale on update.
type Widget struct {
	BarType        BarType        `yaml:"bar_type,omitempty" json:"bar_type,omitempty" validate:"omitempty,oneof=default striped animated"`
	BootstrapStyle BootstrapStyle `yaml:"bootstrap_style,omitempty" json:"bootstrap_style,omitempty" validate:"omitempty,bootstrap_style"`
	ColorSwitch    int            `yaml:"color_switch" json:"color_switch" validate:"min=0,max=100"`

	ProgressAttribute string   `yaml:"progress_attribute,omitempty" json:"progress_attribute,omitempty" validate:"omitempty,attribute_name"`
	Progress          *float64 `yaml:"progress,omitempty" json:"progress,omitempty"`
	MaximumAttribute  string   `yaml:"maximum_attribute,omitempty" json:"maximum_attribute,omitempty" validate:"omitempty,attribute_name"`
	Maximum           float64  `yaml:"maximum" json:"maximum"`
	StyleAttribute    string   `yaml:"style_attribute,omitempty" json:"style_attribute,omitempty" validate:"omitempty,attribute_name"`

	OnClick OnClick `yaml:"on_click,omitempty" json:"on_click,omitempty"`

	Width     int               `yaml:"width,omitempty" json:"width,omitempty" validate:"omitempty,min=5,max=400"`
	Workflows map[string]string `yaml:"workflows,omitempty" json:"workflows,omitempty" validate:"omitempty,dive,keys,required,endkeys,required"`
	Pages     []string          `yaml:"pages,omitempty" json:"pages,omitempty" validate:"omitempty,dive,required"`
}

// DefaultWidget returns a widget with every default applied.
func DefaultWidget() Widget {
	return Widget{
		BarType:        BarDefault,
		BootstrapStyle: StyleDefault,
		ColorSwitch:    DefaultColorSwitch,
		Maximum:        DefaultMaximum,
		OnClick:        OnClick{Action: ActionNone, Location: LocationContent},
		Width:          DefaultWidth,
	}
}

// Normalize fills zero-valued enum fields with their defaults.
func (w *Widget) Normalize() {
	if w.BarType == "" {
		w.BarType = BarDefault
	}
	if w.BootstrapStyle == "" {
		w.BootstrapStyle = StyleDefault
	}
	if w.OnClick.Action == "" {
		w.OnClick.Action = ActionNone
	}
	if w.OnClick.Location == "" {
		w.OnClick.Location = LocationContent
	}
	if w.Width == 0 {
		w.Width = DefaultWidth
	}
}

// SourceAttributes lists the distinct record attributes the widget reads.
func (w Widget) SourceAttributes() []string {
	attrs := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)
	for _, attr := range []string{w.ProgressAttribute, w.MaximumAttribute, w.StyleAttribute} {
		if attr == "" {
			continue
		}
		if _, dup := seen[attr]; dup {
			continue
		}
		seen[attr] = struct{}{}
		attrs = append(attrs, attr)
	}
	return attrs
}

// UnmarshalYAML applies defaults for keys the document leaves out.
func (w *Widget) UnmarshalYAML(value *yaml.Node) error {
	type rawWidget Widget
	temp := rawWidget(DefaultWidget())
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*w = Widget(temp)
	w.Normalize()
	return nil
}
