package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/progressbar/internal/config"
	"github.com/alexisbeaulieu97/progressbar/internal/progress"
)

const (
	trackRune  = '░'
	solidRune  = ' '
	stripeRune = '╱'
)

// TerminalOptions controls the terminal rendering.
type TerminalOptions struct {
	// Width is the number of cells between the bar caps.
	Width int
	// Phase shifts the stripe pattern of animated bars.
	Phase int
}

// Terminal draws v as a single bar line, followed by the action alert when
// there is one. The label sits inside the filled segment unless the fill
// is too narrow for it to read well, in which case it moves onto the track.
func Terminal(v View, opts TerminalOptions) string {
	if !v.ShowBar {
		return bannerStyle.Render("✗ " + v.Banner)
	}

	width := opts.Width
	if width <= 0 {
		width = config.DefaultWidth
	}

	fillCells := width * v.Fill / progress.MaxFill
	trackCells := width - fillCells

	fill := fillRunes(v.BarType, fillCells, opts.Phase)
	track := []rune(strings.Repeat(string(trackRune), trackCells))
	label := []rune(v.Label)

	base := fillStyle(v.Style)
	labelPlaced := len(label) == 0
	var fillSeg, trackSeg string

	switch {
	case !labelPlaced && !v.LowContrast && len(label)+2 <= fillCells:
		fillSeg = overlay(fill, label, (fillCells-len(label))/2, base, base.Bold(true))
		labelPlaced = true
	default:
		fillSeg = base.Render(string(fill))
	}

	tStyle := trackStyle
	if v.Invalid {
		tStyle = invalidTrackStyle
	}
	if !labelPlaced && len(label)+2 <= trackCells {
		at := 1
		if v.Negative {
			at = trackCells - len(label) - 1
		}
		trackSeg = overlay(track, label, at, tStyle, trackLabelStyle)
		labelPlaced = true
	} else {
		trackSeg = tStyle.Render(string(track))
	}

	var bar string
	if v.Negative {
		bar = trackSeg + fillSeg
	} else {
		bar = fillSeg + trackSeg
	}
	line := capStyle.Render("▕") + bar + capStyle.Render("▏")
	if !labelPlaced {
		line += " " + trackLabelStyle.Render(v.Label)
	}

	if v.Alert == "" {
		return line
	}
	return line + "\n" + alertStyle.Render("✗ "+v.Alert)
}

func fillRunes(barType config.BarType, n, phase int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = solidRune
		if !barType.Striped() {
			continue
		}
		offset := i
		if barType == config.BarAnimated {
			offset += phase
		}
		if offset%2 == 0 {
			out[i] = stripeRune
		}
	}
	return out
}

func overlay(cells, label []rune, at int, base, emphasis lipgloss.Style) string {
	if at < 0 {
		at = 0
	}
	end := at + len(label)
	if end > len(cells) {
		return base.Render(string(cells))
	}
	return base.Render(string(cells[:at])) + emphasis.Render(string(label)) + base.Render(string(cells[end:]))
}
