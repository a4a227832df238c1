// Package settings loads process-level settings for the progressbar
// commands: logging, HTTP listen address and action execution.
package settings

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PROGRESSBAR_LOG_LEVEL.
const EnvPrefix = "PROGRESSBAR"

// Settings holds runtime knobs that are not part of a widget document.
type Settings struct {
	Log     LogSettings    `mapstructure:"log"`
	Server  ServerSettings `mapstructure:"server"`
	Actions ActionSettings `mapstructure:"actions"`
	Watch   WatchSettings  `mapstructure:"watch"`
}

// LogSettings configures the zerolog logger.
type LogSettings struct {
	Level         string `mapstructure:"level"`
	HumanReadable bool   `mapstructure:"human_readable"`
}

// ServerSettings configures the HTTP host.
type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

// ActionSettings configures click action execution.
type ActionSettings struct {
	Shell       string `mapstructure:"shell"`
	Concurrency int    `mapstructure:"concurrency"`
}

// WatchSettings configures the terminal view.
type WatchSettings struct {
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

// Load reads settings from path, or from progressbar.yaml in the working
// directory when path is empty. A missing file yields the defaults.
// Environment variables override both.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	} else {
		v.SetConfigName("progressbar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.human_readable", false)

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("actions.shell", "")
	v.SetDefault("actions.concurrency", 4)

	v.SetDefault("watch.frame_interval", "120ms")
}
