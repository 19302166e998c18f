package player

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// statePollInterval bounds the latency of play/pause/fullscreen notifications
const statePollInterval = 150 * time.Millisecond

// Properties is the player state a Watcher samples
type Properties interface {
	IsPaused() (bool, error)
	IsEOF() (bool, error)
	IsFullscreen() (bool, error)
	GetProgress() (float64, error)
	GetCacheTime() (float64, error)
	GetDuration() (float64, error)
}

// Watcher turns sampled properties into events. State flags produce an event
// on each change; progress is reported at most once per interval.
// Properties that fail to read are skipped for that sample.
type Watcher struct {
	props    Properties
	interval time.Duration

	lastPaused     bool
	lastFullscreen bool
	lastEOF        bool
	lastProgress   time.Time
}

// NewWatcher starts from the state a fresh player is created in: paused, windowed, not ended
func NewWatcher(props Properties, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		props:      props,
		interval:   interval,
		lastPaused: true,
	}
}

// PollInterval is how often Run samples
func (w *Watcher) PollInterval() time.Duration {
	return min(w.interval, statePollInterval)
}

// Sample reads the properties once and returns the events they imply
func (w *Watcher) Sample(now time.Time) []Event {
	var events []Event

	if eof, err := w.props.IsEOF(); err == nil {
		if eof && !w.lastEOF {
			events = append(events, Event{Kind: EventEnded})
		}
		w.lastEOF = eof
	}

	if paused, err := w.props.IsPaused(); err == nil && paused != w.lastPaused {
		kind := EventPlayed
		if paused {
			kind = EventPaused
		}
		events = append(events, Event{Kind: kind})
		w.lastPaused = paused
	}

	if fs, err := w.props.IsFullscreen(); err == nil && fs != w.lastFullscreen {
		events = append(events, Event{Kind: EventFullscreenChanged, Fullscreen: fs})
		w.lastFullscreen = fs
	}

	if now.Sub(w.lastProgress) < w.interval {
		return events
	}
	pos, err := w.props.GetProgress()
	if err != nil {
		return events
	}
	w.lastProgress = now
	progress := Progress{PlayedSeconds: pos}
	if cached, err := w.props.GetCacheTime(); err == nil {
		progress.LoadedSeconds = cached
	}
	if duration, err := w.props.GetDuration(); err == nil {
		progress.DurationSeconds = duration
	}
	return append(events, Event{Kind: EventProgress, Progress: progress})
}

// Run samples on every tick of clock and sends the events to out until ctx is done
func (w *Watcher) Run(ctx context.Context, clock clockwork.Clock, out chan<- Event) {
	ticker := clock.NewTicker(w.PollInterval())
	defer ticker.Stop()

	for {
		var now time.Time
		select {
		case <-ctx.Done():
			return
		case now = <-ticker.Chan():
		}

		for _, e := range w.Sample(now) {
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}
}
