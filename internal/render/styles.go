package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/progressbar/internal/config"
)

// Bootstrap 3 contextual colors.
var styleColors = map[config.BootstrapStyle]lipgloss.Color{
	config.StyleDefault: lipgloss.Color("#337ab7"),
	config.StylePrimary: lipgloss.Color("#337ab7"),
	config.StyleInfo:    lipgloss.Color("#5bc0de"),
	config.StyleSuccess: lipgloss.Color("#5cb85c"),
	config.StyleWarning: lipgloss.Color("#f0ad4e"),
	config.StyleDanger:  lipgloss.Color("#d9534f"),
}

var (
	trackStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	trackLabelStyle   = lipgloss.NewStyle().Bold(true)
	invalidTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bannerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	alertStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	capStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func fillStyle(style config.BootstrapStyle) lipgloss.Style {
	color, ok := styleColors[style]
	if !ok {
		color = styleColors[config.StyleDefault]
	}
	return lipgloss.NewStyle().Background(color).Foreground(lipgloss.Color("#ffffff"))
}
