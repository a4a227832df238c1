package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/progressbar/internal/binding"
	"github.com/alexisbeaulieu97/progressbar/internal/config"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	t.Run("bar markup", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultWidget()
		cfg.BarType = config.BarStriped
		cfg.OnClick = config.OnClick{Action: config.ActionPage, Page: "Detail.xml"}

		out, err := HTML(Build(binding.State{Progress: ptr(64), Maximum: 100, Style: config.StyleInfo}, cfg))
		require.NoError(t, err)
		require.Contains(t, out, `<div class="widget-progressbar">`)
		require.Contains(t, out, `class="progress widget-progressbar-clickable"`)
		require.Contains(t, out, `class="progress-bar progress-bar-info progress-bar-striped"`)
		require.Contains(t, out, `style="width: 64%;"`)
		require.Contains(t, out, `>64%</div>`)
		require.Contains(t, out, `role="button"`)
		require.NotContains(t, out, "alert-danger")
	})

	t.Run("banner is escaped", func(t *testing.T) {
		t.Parallel()

		out, err := HTML(View{Banner: "<script>x</script>"})
		require.NoError(t, err)
		require.Contains(t, out, "&lt;script&gt;")
		require.NotContains(t, out, "progress-bar")
	})

	t.Run("action alert follows bar", func(t *testing.T) {
		t.Parallel()

		out, err := HTML(Build(binding.State{Progress: ptr(10), Maximum: 100, Style: config.StyleDefault, ActionError: "Error while opening page P: denied"}, config.DefaultWidget()))
		require.NoError(t, err)
		require.Contains(t, out, `<div class="alert alert-danger widget-progressbar-alert">Error while opening page P: denied</div>`)
		require.NotContains(t, out, `role="button"`)
	})
}
