package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir stands in for testing.T.Chdir, which needs go 1.24
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "naviplayer.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[playlist]
items = ["/RST.mp4", "/POH.mp3"]
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/RST.mp4", "/POH.mp3"}, cfg.Playlist.Items)
	assert.Equal(t, 3*time.Second, cfg.Controls.HideDelay())
	assert.Equal(t, 10*time.Second, cfg.Controls.SeekStep())
	assert.Equal(t, time.Second, cfg.Player.ProgressInterval())
	assert.InDelta(t, 0.05, cfg.Controls.VolumeStep, 1e-9)
	assert.InDelta(t, 0.5, cfg.Controls.ResumeVolume, 1e-9)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[controls]
hide_delay_ms = 1500
volume_step = 0.1

[player]
auto_advance = true

[playlist]
items = ["a.mp4"]
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, cfg.Controls.HideDelay())
	assert.InDelta(t, 0.1, cfg.Controls.VolumeStep, 1e-9)
	assert.True(t, cfg.Player.AutoAdvance)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
[playlist]
items = ["a.mp4"]
`)
	t.Setenv("NAVIPLAYER_CONTROLS_HIDE_DELAY_MS", "500")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Controls.HideDelay())
}

func TestLoad_DefaultPlaylistWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultPlaylist, cfg.Playlist.Items)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ArgumentsReplaceDefaultPlaylist(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	v.Set("playlist.items", []string{"clip.mp4"})
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"clip.mp4"}, cfg.Playlist.Items)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty playlist",
			mutate:  func(c *Config) { c.Playlist.Items = nil },
			wantErr: true,
		},
		{
			name:    "start index out of range",
			mutate:  func(c *Config) { c.Playlist.StartIndex = 2 },
			wantErr: true,
		},
		{
			name:    "volume above one",
			mutate:  func(c *Config) { c.Controls.InitialVolume = 1.5 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Playlist.Items = []string{"a.mp4", "b.mp3"}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
