package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "info", s.Log.Level)
	require.False(t, s.Log.HumanReadable)
	require.Equal(t, ":8080", s.Server.Addr)
	require.Equal(t, 4, s.Actions.Concurrency)
	require.Equal(t, 120*time.Millisecond, s.Watch.FrameInterval)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	contents := `log:
  level: debug
  human_readable: true
server:
  addr: 127.0.0.1:9000
actions:
  shell: bash
  concurrency: 2
watch:
  frame_interval: 250ms
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", s.Log.Level)
	require.True(t, s.Log.HumanReadable)
	require.Equal(t, "127.0.0.1:9000", s.Server.Addr)
	require.Equal(t, "bash", s.Actions.Shell)
	require.Equal(t, 2, s.Actions.Concurrency)
	require.Equal(t, 250*time.Millisecond, s.Watch.FrameInterval)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PROGRESSBAR_LOG_LEVEL", "warn")
	t.Setenv("PROGRESSBAR_SERVER_ADDR", ":9999")

	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "warn", s.Log.Level)
	require.Equal(t, ":9999", s.Server.Addr)
}
