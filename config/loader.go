package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. NAVIPLAYER_CONTROLS_HIDE_DELAY_MS
const EnvPrefix = "NAVIPLAYER"

// Load reads naviplayer.toml (or the file at path) into a validated Config.
// A missing config file is not an error; defaults apply.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("naviplayer")
		v.SetConfigType("toml")
		v.AddConfigPath("$HOME/.config/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("player.progress_interval_ms", defaults.Player.ProgressIntervalMs)
	v.SetDefault("player.hwdec", defaults.Player.Hwdec)
	v.SetDefault("player.auto_advance", defaults.Player.AutoAdvance)
	v.SetDefault("player.dock_scale", defaults.Player.DockScale)
	v.SetDefault("player.pause_on_disconnect", defaults.Player.PauseOnDisconnect)
	v.SetDefault("controls.hide_delay_ms", defaults.Controls.HideDelayMs)
	v.SetDefault("controls.volume_step", defaults.Controls.VolumeStep)
	v.SetDefault("controls.seek_step_seconds", defaults.Controls.SeekStepSeconds)
	v.SetDefault("controls.resume_volume", defaults.Controls.ResumeVolume)
	v.SetDefault("controls.initial_volume", defaults.Controls.InitialVolume)
	v.SetDefault("controls.initial_rate", defaults.Controls.InitialRate)
	v.SetDefault("ui.progress_bar_width", defaults.UI.ProgressBarWidth)
	v.SetDefault("playlist.base_dir", "")
	v.SetDefault("playlist.items", defaults.Playlist.Items)
	v.SetDefault("playlist.start_index", 0)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}
