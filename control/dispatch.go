package control

import (
	"time"

	"github.com/samber/lo"
)

// Settings tune the dispatcher
type Settings struct {
	VolumeStep   float64
	SeekStep     time.Duration
	ResumeVolume float64 // volume restored when unmuting
	HideDelay    time.Duration
	AutoAdvance  bool
}

// DefaultSettings mirrors the stock key bindings: 5% volume, 10s seek, 3s auto-hide
func DefaultSettings() Settings {
	return Settings{
		VolumeStep:   0.05,
		SeekStep:     10 * time.Second,
		ResumeVolume: 0.5,
		HideDelay:    3 * time.Second,
	}
}

// Dispatcher computes state transitions. It holds no state of its own.
type Dispatcher struct {
	settings Settings
}

func NewDispatcher(settings Settings) *Dispatcher {
	return &Dispatcher{settings: settings}
}

func clampVolume(v float64) float64 {
	return lo.Clamp(v, 0, 1)
}

// Mount returns the effects that bring a freshly attached player in line with s
func (d *Dispatcher) Mount(s State) []Effect {
	effects := []Effect{
		{Kind: EffectLoad, Source: s.Current().Source},
		{Kind: EffectVolume, Value: s.Volume},
		{Kind: EffectRate, Value: s.PlaybackRate},
	}
	if s.Playing {
		effects = append(effects, Effect{Kind: EffectPlay})
	}
	return effects
}

// Dispatch applies c to s and returns the next state plus the effects to run
func (d *Dispatcher) Dispatch(s State, c Command) (State, []Effect) {
	switch c.Kind {
	case CmdTogglePlay:
		s.Playing = !s.Playing
		if s.Playing {
			return s, []Effect{{Kind: EffectPlay}}
		}
		return s, []Effect{{Kind: EffectPause}}

	case CmdVolumeUp:
		s.Muted = false
		return d.setVolume(s, s.Volume+d.settings.VolumeStep)

	case CmdVolumeDown:
		s.Muted = false
		return d.setVolume(s, s.Volume-d.settings.VolumeStep)

	case CmdSetVolume:
		// the slider leaves Muted alone
		return d.setVolume(s, c.Value)

	case CmdSeekForward:
		return s, []Effect{{Kind: EffectSeek, Value: d.settings.SeekStep.Seconds()}}

	case CmdSeekBackward:
		return s, []Effect{{Kind: EffectSeek, Value: -d.settings.SeekStep.Seconds()}}

	case CmdToggleMute:
		s.Muted = !s.Muted
		if s.Muted {
			return d.setVolume(s, 0)
		}
		return d.setVolume(s, d.settings.ResumeVolume)

	case CmdRequestFullscreen:
		if s.Fullscreen {
			return s, nil
		}
		s.Fullscreen = true
		return s, []Effect{{Kind: EffectFullscreen, On: true}}

	case CmdExitFullscreen:
		if !s.Fullscreen {
			return s, nil
		}
		s.Fullscreen = false
		return s, []Effect{{Kind: EffectFullscreen, On: false}}

	case CmdToggleMinimized:
		s.Minimized = !s.Minimized
		return s, []Effect{{Kind: EffectDock, On: s.Minimized}}

	case CmdNext:
		return d.selectIndex(s, s.Index+1)

	case CmdPrevious:
		return d.selectIndex(s, s.Index-1)

	case CmdSelectIndex:
		if c.Index < 0 || c.Index >= len(s.Playlist) {
			return s, nil
		}
		return d.selectIndex(s, c.Index)

	case CmdSetRate:
		if !lo.Contains(PlaybackRates, c.Value) {
			return s, nil
		}
		return d.setRate(s, c.Value)

	case CmdRateUp:
		i := lo.IndexOf(PlaybackRates, s.PlaybackRate)
		return d.setRate(s, PlaybackRates[lo.Clamp(i+1, 0, len(PlaybackRates)-1)])

	case CmdRateDown:
		i := lo.IndexOf(PlaybackRates, s.PlaybackRate)
		return d.setRate(s, PlaybackRates[lo.Clamp(i-1, 0, len(PlaybackRates)-1)])

	case CmdPointerOver:
		s.ControlsVisible = true
		return s, nil

	case CmdPointerLeave:
		if s.Playing {
			s.ControlsVisible = false
		}
		return s, nil

	case CmdPlayerPlayed:
		s.Playing = true
		s.ControlsVisible = true
		return s, []Effect{{Kind: EffectScheduleHide, Delay: d.settings.HideDelay}}

	case CmdPlayerPaused:
		s.Playing = false
		s.ControlsVisible = true
		return s, nil

	case CmdPlayerProgress:
		s.PlayedSeconds = c.Progress.PlayedSeconds
		s.LoadedSeconds = c.Progress.LoadedSeconds
		s.DurationSeconds = c.Progress.DurationSeconds
		return s, nil

	case CmdPlayerEnded:
		if !d.settings.AutoAdvance {
			return s, nil
		}
		var effects []Effect
		s, effects = d.selectIndex(s, s.Index+1)
		s.Playing = true
		return s, append(effects, Effect{Kind: EffectPlay})

	case CmdPlayerFullscreen:
		s.Fullscreen = c.On
		return s, nil

	case CmdControlsTimeout:
		s.ControlsVisible = false
		return s, nil
	}

	return s, nil
}

func (d *Dispatcher) setVolume(s State, v float64) (State, []Effect) {
	s.Volume = clampVolume(v)
	return s, []Effect{{Kind: EffectVolume, Value: s.Volume}}
}

func (d *Dispatcher) setRate(s State, rate float64) (State, []Effect) {
	if rate == s.PlaybackRate {
		return s, nil
	}
	s.PlaybackRate = rate
	return s, []Effect{{Kind: EffectRate, Value: rate}}
}

// selectIndex wraps i into the playlist and loads that entry
func (d *Dispatcher) selectIndex(s State, i int) (State, []Effect) {
	n := len(s.Playlist)
	if n == 0 {
		return s, nil
	}
	s.Index = ((i % n) + n) % n
	s.PlayedSeconds = 0
	s.LoadedSeconds = 0
	s.DurationSeconds = 0
	return s, []Effect{{Kind: EffectLoad, Source: s.Current().Source}}
}
