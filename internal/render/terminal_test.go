package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/progressbar/internal/config"
)

func TestTerminal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		view  View
		width int
		lines int
		want  []string
	}{
		{
			name:  "label inside fill",
			view:  View{ShowBar: true, Fill: 50, Label: "50%", Style: config.StyleSuccess, BarType: config.BarDefault},
			width: 20,
			lines: 1,
			want:  []string{"50%"},
		},
		{
			name:  "low contrast label moves to track",
			view:  View{ShowBar: true, Fill: 10, Label: "10%", LowContrast: true, Style: config.StyleInfo},
			width: 20,
			lines: 1,
			want:  []string{"10%", "░"},
		},
		{
			name:  "negative fill",
			view:  View{ShowBar: true, Fill: 30, Label: "-30%", Negative: true, LowContrast: true, Style: config.StyleWarning},
			width: 20,
			lines: 1,
			want:  []string{"-30%"},
		},
		{
			name:  "invalid",
			view:  View{ShowBar: true, Fill: 0, Label: "Invalid", Invalid: true, LowContrast: true},
			width: 20,
			lines: 1,
			want:  []string{"Invalid"},
		},
		{
			name:  "alert below bar",
			view:  View{ShowBar: true, Fill: 60, Label: "60%", Alert: "Error while executing microflow Refresh: boom"},
			width: 20,
			lines: 2,
			want:  []string{"60%", "Error while executing microflow Refresh: boom"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := Terminal(tc.view, TerminalOptions{Width: tc.width})
			lines := strings.Split(out, "\n")
			require.Len(t, lines, tc.lines)
			require.Equal(t, tc.width+2, lipgloss.Width(lines[0]))
			for _, want := range tc.want {
				require.Contains(t, out, want)
			}
		})
	}
}

func TestTerminalLabelOverflowsNarrowBar(t *testing.T) {
	t.Parallel()

	out := Terminal(View{ShowBar: true, Fill: 100, Label: "100%"}, TerminalOptions{Width: 5})
	require.Contains(t, out, " 100%")
}

func TestTerminalBanner(t *testing.T) {
	t.Parallel()

	out := Terminal(View{Banner: "Error in progress bar configuration: on click page is required"}, TerminalOptions{})
	require.Contains(t, out, "on click page is required")
	require.NotContains(t, out, "░")
}

func TestTerminalDefaultWidth(t *testing.T) {
	t.Parallel()

	out := Terminal(View{ShowBar: true, Fill: 0, LowContrast: true}, TerminalOptions{})
	require.Equal(t, config.DefaultWidth+2, lipgloss.Width(out))
}

func TestFillRunes(t *testing.T) {
	t.Parallel()

	require.Equal(t, "    ", string(fillRunes(config.BarDefault, 4, 1)))
	require.Equal(t, "╱ ╱ ", string(fillRunes(config.BarStriped, 4, 1)))
	require.Equal(t, "╱ ╱ ", string(fillRunes(config.BarAnimated, 4, 0)))
	require.Equal(t, " ╱ ╱", string(fillRunes(config.BarAnimated, 4, 1)))
	require.Empty(t, fillRunes(config.BarStriped, 0, 0))
}
