package mpvplayer

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/wildeyedskies/go-mpv/mpv"
)

// Options tune the libmpv instance and the Player built on it
type Options struct {
	Hwdec            string
	ProgressInterval time.Duration
	DockScale        float64
}

// Mpvplayer adds typed property accessors on top of a libmpv handle
type Mpvplayer struct {
	*mpv.Mpv
}

func flag(on bool) string {
	if on {
		return "yes"
	}
	return "no"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m *Mpvplayer) getDouble(name string) (float64, error) {
	v, err := m.GetProperty(name, mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, errors.Newf("property %s is not a double", name)
	}
	return f, nil
}

func (m *Mpvplayer) getFlag(name string) (bool, error) {
	v, err := m.GetProperty(name, mpv.FORMAT_FLAG)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Newf("property %s is not a flag", name)
	}
	return b, nil
}

// Load replaces the current file
func (m *Mpvplayer) Load(playURL string) error {
	return m.Command([]string{"loadfile", playURL, "replace"})
}

// GetProgress returns the playback position in seconds
func (m *Mpvplayer) GetProgress() (float64, error) {
	return m.getDouble("time-pos")
}

// GetDuration returns the media length in seconds
func (m *Mpvplayer) GetDuration() (float64, error) {
	return m.getDouble("duration")
}

// GetCacheTime returns how far the demuxer has buffered, in seconds of media time
func (m *Mpvplayer) GetCacheTime() (float64, error) {
	return m.getDouble("demuxer-cache-time")
}

func (m *Mpvplayer) IsPaused() (bool, error) {
	return m.getFlag("pause")
}

func (m *Mpvplayer) SetPaused(paused bool) error {
	return m.SetPropertyString("pause", flag(paused))
}

// IsEOF reports whether playback reached the end; requires keep-open
func (m *Mpvplayer) IsEOF() (bool, error) {
	return m.getFlag("eof-reached")
}

func (m *Mpvplayer) IsFullscreen() (bool, error) {
	return m.getFlag("fullscreen")
}

func (m *Mpvplayer) SetFullscreen(on bool) error {
	return m.SetPropertyString("fullscreen", flag(on))
}

// SeekAbsolute jumps to seconds; mpv clamps to the media bounds
func (m *Mpvplayer) SeekAbsolute(seconds float64) error {
	return m.Command([]string{"seek", formatFloat(seconds), "absolute"})
}

// SetVolumePercent takes mpv's 0-100 scale
func (m *Mpvplayer) SetVolumePercent(percent float64) error {
	return m.SetPropertyString("volume", formatFloat(percent))
}

func (m *Mpvplayer) SetSpeed(speed float64) error {
	return m.SetPropertyString("speed", formatFloat(speed))
}

// Dock toggles the small always-on-top window with the native on-screen controller
func (m *Mpvplayer) Dock(on bool, scale float64) error {
	if !on {
		scale = 1
	}
	if err := m.SetPropertyString("ontop", flag(on)); err != nil {
		return err
	}
	if err := m.SetPropertyString("window-scale", formatFloat(scale)); err != nil {
		return err
	}
	visibility := "never"
	if on {
		visibility = "always"
	}
	return m.Command([]string{"script-message", "osc-visibility", visibility})
}

// CreateMPVInstance creates and initializes a libmpv handle that opens its own video window
func CreateMPVInstance(opts Options) (*mpv.Mpv, error) {
	mpvInstance := mpv.Create()

	options := [][2]string{
		{"terminal", "no"},
		{"force-window", "yes"},
		{"idle", "yes"},
		{"pause", "yes"},
		{"keep-open", "yes"},
		{"osc", "yes"},
		{"script-opts", "osc-visibility=never"},
		{"input-default-bindings", "yes"},
		{"input-vo-keyboard", "yes"},
	}
	if opts.Hwdec != "" {
		options = append(options, [2]string{"hwdec", opts.Hwdec})
	}
	for _, o := range options {
		if err := mpvInstance.SetOptionString(o[0], o[1]); err != nil {
			mpvInstance.TerminateDestroy()
			return nil, errors.Wrapf(err, "set mpv option %s", o[0])
		}
	}

	err := mpvInstance.Initialize()
	if err != nil {
		mpvInstance.TerminateDestroy()
		return nil, errors.Wrap(err, "initialize mpv")
	}
	return mpvInstance, nil
}
