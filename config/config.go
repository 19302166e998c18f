package config

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Player   PlayerConfig   `mapstructure:"player"`
	Controls ControlsConfig `mapstructure:"controls"`
	UI       UIConfig       `mapstructure:"ui"`
	Playlist PlaylistConfig `mapstructure:"playlist"`
	Log      LogConfig      `mapstructure:"log"`
}

// PlayerConfig contains settings for the embedded mpv instance
type PlayerConfig struct {
	ProgressIntervalMs int     `mapstructure:"progress_interval_ms" validate:"gte=100,lte=10000"`
	Hwdec              string  `mapstructure:"hwdec"`
	AutoAdvance        bool    `mapstructure:"auto_advance"`
	DockScale          float64 `mapstructure:"dock_scale" validate:"gt=0,lte=1"`
	PauseOnDisconnect  bool    `mapstructure:"pause_on_disconnect"`
}

// ControlsConfig contains transport control tuning
type ControlsConfig struct {
	HideDelayMs     int     `mapstructure:"hide_delay_ms" validate:"gte=0"`
	VolumeStep      float64 `mapstructure:"volume_step" validate:"gt=0,lte=1"`
	SeekStepSeconds float64 `mapstructure:"seek_step_seconds" validate:"gt=0"`
	ResumeVolume    float64 `mapstructure:"resume_volume" validate:"gte=0,lte=1"`
	InitialVolume   float64 `mapstructure:"initial_volume" validate:"gte=0,lte=1"`
	InitialRate     float64 `mapstructure:"initial_rate" validate:"gt=0"`
}

// UIConfig contains user interface settings
type UIConfig struct {
	ProgressBarWidth int `mapstructure:"progress_bar_width" validate:"gte=10,lte=200"`
}

// PlaylistConfig lists the media played by this instance
type PlaylistConfig struct {
	BaseDir    string   `mapstructure:"base_dir"`
	Items      []string `mapstructure:"items"`
	StartIndex int      `mapstructure:"start_index" validate:"gte=0"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// ProgressInterval returns the progress poll interval as a time.Duration
func (p *PlayerConfig) ProgressInterval() time.Duration {
	return time.Duration(p.ProgressIntervalMs) * time.Millisecond
}

// HideDelay returns the auto-hide delay as a time.Duration
func (c *ControlsConfig) HideDelay() time.Duration {
	return time.Duration(c.HideDelayMs) * time.Millisecond
}

// SeekStep returns the seek step as a time.Duration
func (c *ControlsConfig) SeekStep() time.Duration {
	return time.Duration(c.SeekStepSeconds * float64(time.Second))
}

var validate = validator.New()

// Validate checks value ranges and that the playlist is usable
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if len(c.Playlist.Items) == 0 {
		return errors.New("playlist is empty")
	}
	if c.Playlist.StartIndex >= len(c.Playlist.Items) {
		return errors.Newf("start index %d out of range for %d items",
			c.Playlist.StartIndex, len(c.Playlist.Items))
	}
	return nil
}

// DefaultPlaylist is played when neither the config file nor the command line lists media
var DefaultPlaylist = []string{"/RST.mp4", "BSMS.mp4", "/HCW.mp4", "/KGP.mp4", "/POH.mp3", "/AudioBook.mp3"}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			ProgressIntervalMs: 1000,
			Hwdec:              "auto",
			AutoAdvance:        false,
			DockScale:          0.4,
			PauseOnDisconnect:  true,
		},
		Controls: ControlsConfig{
			HideDelayMs:     3000,
			VolumeStep:      0.05,
			SeekStepSeconds: 10,
			ResumeVolume:    0.5,
			InitialVolume:   0.5,
			InitialRate:     1,
		},
		UI: UIConfig{
			ProgressBarWidth: 40,
		},
		Playlist: PlaylistConfig{
			Items: slices.Clone(DefaultPlaylist),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
