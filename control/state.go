// Package control holds the player's UI state and the dispatcher that turns
// input commands into state transitions and player effects.
package control

import (
	"math"

	"github.com/yhkl-dev/NaviPlayer/domain"
)

// PlaybackRates is the fixed set of speeds offered by the rate selector
var PlaybackRates = []float64{0.5, 0.75, 1, 1.25, 1.5, 1.75, 2, 2.25, 2.5, 2.75, 3, 3.25, 3.5, 3.75, 4}

// State is the per-instance playback and presentation state.
// It is a value type; the dispatcher returns a modified copy.
type State struct {
	Playlist []domain.MediaItem
	Index    int

	Playing         bool
	Muted           bool
	Minimized       bool
	Fullscreen      bool
	ControlsVisible bool

	Volume       float64
	PlaybackRate float64

	PlayedSeconds   float64
	LoadedSeconds   float64
	DurationSeconds float64
}

// NewState builds the mount-time state. The start index is wrapped into range
// and the rate snapped to the nearest entry of PlaybackRates.
func NewState(playlist []domain.MediaItem, startIndex int, volume, rate float64) State {
	s := State{
		Playlist:     playlist,
		Volume:       clampVolume(volume),
		PlaybackRate: nearestRate(rate),
	}
	if n := len(playlist); n > 0 {
		s.Index = ((startIndex % n) + n) % n
	}
	return s
}

// Current returns the playlist entry at Index
func (s State) Current() domain.MediaItem {
	if len(s.Playlist) == 0 {
		return domain.MediaItem{}
	}
	return s.Playlist[s.Index]
}

// DisplayDuration is the length shown next to the elapsed time.
// Streams without a known duration fall back to the buffered position.
func (s State) DisplayDuration() float64 {
	if s.DurationSeconds > 0 {
		return s.DurationSeconds
	}
	return s.LoadedSeconds
}

// Progress returns played/duration in [0,1]
func (s State) Progress() float64 {
	total := s.DisplayDuration()
	if total <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, s.PlayedSeconds/total))
}

func nearestRate(rate float64) float64 {
	best := PlaybackRates[0]
	for _, r := range PlaybackRates {
		if math.Abs(r-rate) < math.Abs(best-rate) {
			best = r
		}
	}
	return best
}
