package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pberrors "github.com/alexisbeaulieu97/progressbar/pkg/errors"
)

func TestParseWidget(t *testing.T) {
	t.Parallel()

	validYAML := `bar_type: striped
bootstrap_style: success
color_switch: 30
progress_attribute: Progress
maximum_attribute: Max
style_attribute: Style
on_click:
  action: workflow
  workflow: Refresh
workflows:
  Refresh: "echo refreshed"
`

	invalidYAML := `bar_type: [striped
`

	badStyle := `bootstrap_style: purple
`

	badThreshold := `color_switch: 140
`

	unknownWorkflow := `on_click:
  action: workflow
  workflow: Missing
workflows:
  Refresh: "true"
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, w *Widget, err error)
	}{
		{
			name:     "valid document is parsed",
			contents: validYAML,
			assert: func(t *testing.T, w *Widget, err error) {
				require.NoError(t, err)
				require.Equal(t, BarStriped, w.BarType)
				require.Equal(t, StyleSuccess, w.BootstrapStyle)
				require.Equal(t, 30, w.ColorSwitch)
				require.Equal(t, float64(DefaultMaximum), w.Maximum)
				require.Equal(t, ActionWorkflow, w.OnClick.Action)
				require.Equal(t, LocationContent, w.OnClick.Location)
				require.Equal(t, DefaultWidth, w.Width)
				require.Equal(t, "echo refreshed", w.Workflows["Refresh"])
			},
		},
		{
			name:     "empty document yields defaults",
			contents: "",
			assert: func(t *testing.T, w *Widget, err error) {
				require.NoError(t, err)
				require.Equal(t, DefaultWidget(), *w)
			},
		},
		{
			name:     "invalid yaml returns parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, w *Widget, err error) {
				require.Nil(t, w)
				var parseErr *pberrors.ParseError
				require.ErrorAs(t, err, &parseErr)
			},
		},
		{
			name:     "unknown style returns validation error",
			contents: badStyle,
			assert: func(t *testing.T, w *Widget, err error) {
				var validationErr *pberrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "bootstrap_style", validationErr.Field)
			},
		},
		{
			name:     "threshold out of range returns validation error",
			contents: badThreshold,
			assert: func(t *testing.T, w *Widget, err error) {
				var validationErr *pberrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "color_switch", validationErr.Field)
			},
		},
		{
			name:     "click action must reference a defined workflow",
			contents: unknownWorkflow,
			assert: func(t *testing.T, w *Widget, err error) {
				var validationErr *pberrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "on_click.workflow", validationErr.Field)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "widget.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.contents), 0o644))

			w, err := ParseWidget(path)
			tc.assert(t, w, err)
		})
	}
}

func TestParseWidgetMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseWidget(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *pberrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseWidgetKeepsExplicitZeroThreshold(t *testing.T) {
	t.Parallel()

	w, err := ParseWidgetBytes("inline", []byte("color_switch: 0\nmaximum: 0\n"))
	require.NoError(t, err)
	require.Equal(t, 0, w.ColorSwitch)
	require.Zero(t, w.Maximum)
}

func TestParseWidgetAcceptsIncompleteClickAction(t *testing.T) {
	t.Parallel()

	w, err := ParseWidgetBytes("inline", []byte("on_click:\n  action: workflow\n"))
	require.NoError(t, err)

	cfgErr := ValidateClickAction(*w)
	require.Error(t, cfgErr)
	require.Contains(t, cfgErr.Error(), "on click microflow is required")
}
