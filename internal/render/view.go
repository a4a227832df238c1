// Package render turns derived widget state into the progress bar's
// rendered output: a class-annotated view model plus terminal and HTML
// renderings of it.
package render

import (
	"fmt"

	"github.com/alexisbeaulieu97/progressbar/internal/binding"
	"github.com/alexisbeaulieu97/progressbar/internal/config"
	"github.com/alexisbeaulieu97/progressbar/internal/progress"
)

// CSS classes carried by the rendered widget.
const (
	ClassWrapper      = "widget-progressbar"
	ClassContainer    = "progress"
	ClassInvalid      = "widget-progressbar-alert"
	ClassClickable    = "widget-progressbar-clickable"
	ClassTextContrast = "widget-progressbar-text-contrast"
	ClassBar          = "progress-bar"
	ClassStriped      = "progress-bar-striped"
	ClassActive       = "active"
	ClassNegative     = "widget-progressbar-negative"
	ClassAlert        = "alert alert-danger widget-progressbar-alert"
)

// PreviewProgress is the reading shown by design-time previews.
const PreviewProgress = 80

// View is everything a renderer needs. When Banner is set the bar is not
// drawn at all.
type View struct {
	Banner string `json:"banner,omitempty"`

	ShowBar          bool     `json:"show_bar"`
	ContainerClasses []string `json:"container_classes,omitempty"`
	BarClasses       []string `json:"bar_classes,omitempty"`
	Width            string   `json:"width,omitempty"`
	Label            string   `json:"label"`
	Alert            string   `json:"alert,omitempty"`

	Fill        int                   `json:"fill"`
	Negative    bool                  `json:"negative,omitempty"`
	LowContrast bool                  `json:"low_contrast,omitempty"`
	Invalid     bool                  `json:"invalid,omitempty"`
	Clickable   bool                  `json:"clickable,omitempty"`
	Style       config.BootstrapStyle `json:"style,omitempty"`
	BarType     config.BarType        `json:"bar_type,omitempty"`
}

// Build projects state and configuration into a View.
func Build(st binding.State, cfg config.Widget) View {
	if !st.ShowBar() {
		return View{Banner: st.ConfigError}
	}
	return fromResult(st.Result(cfg.ColorSwitch), st.Style, st.ActionError, cfg)
}

// Preview renders cfg the way a design surface shows it: a fixed reading
// of 80 out of 100, or the configuration banner.
func Preview(cfg config.Widget) View {
	if err := config.ValidateClickAction(cfg); err != nil {
		return View{Banner: err.Error()}
	}
	value := float64(PreviewProgress)
	style := cfg.BootstrapStyle
	if !style.Valid() {
		style = config.StyleDefault
	}
	return fromResult(progress.Compute(&value, 100, cfg.ColorSwitch), style, "", cfg)
}

func fromResult(res progress.Result, style config.BootstrapStyle, alert string, cfg config.Widget) View {
	v := View{
		ShowBar:     true,
		Width:       fmt.Sprintf("%d%%", res.Fill),
		Label:       res.Label,
		Alert:       alert,
		Fill:        res.Fill,
		Negative:    res.Negative,
		LowContrast: res.LowContrast,
		Invalid:     res.Invalid,
		Clickable:   cfg.OnClick.Enabled(),
		Style:       style,
		BarType:     cfg.BarType,
	}

	v.ContainerClasses = []string{ClassContainer}
	if v.Invalid {
		v.ContainerClasses = append(v.ContainerClasses, ClassInvalid)
	}
	if v.Clickable {
		v.ContainerClasses = append(v.ContainerClasses, ClassClickable)
	}
	if v.LowContrast {
		v.ContainerClasses = append(v.ContainerClasses, ClassTextContrast)
	}

	v.BarClasses = []string{ClassBar, "progress-bar-" + string(style)}
	if cfg.BarType == config.BarAnimated {
		v.BarClasses = append(v.BarClasses, ClassActive)
	}
	if cfg.BarType.Striped() {
		v.BarClasses = append(v.BarClasses, ClassStriped)
	}
	if v.Negative {
		v.BarClasses = append(v.BarClasses, ClassNegative)
	}
	return v
}
