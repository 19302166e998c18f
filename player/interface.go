package player

// Handle is the capability the controls depend on.
// It abstracts the embedded player so the router can run against MPV or a fake.
type Handle interface {
	// Load replaces the current media with source, keeping the pause state
	Load(source string) error

	// Play resumes playback
	Play() error

	// Pause pauses playback
	Pause() error

	// SeekTo jumps to an absolute position; the player clamps out-of-range values
	SeekTo(seconds float64) error

	// CurrentTime returns the playback position in seconds
	CurrentTime() (float64, error)

	// SetVolume sets the volume in [0,1]
	SetVolume(volume float64) error

	// SetPlaybackRate sets the speed multiplier
	SetPlaybackRate(rate float64) error

	// SetFullscreen enters or leaves fullscreen on the player surface
	SetFullscreen(on bool) error

	// SetDocked shrinks the player surface into a small always-on-top window with native controls
	SetDocked(on bool) error

	// Events returns a channel of progress and state notifications
	Events() <-chan Event

	// Close releases the player
	Close()
}

// EventKind identifies a player notification
type EventKind int

const (
	EventProgress EventKind = iota
	EventPlayed
	EventPaused
	EventEnded
	EventFullscreenChanged
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventPlayed:
		return "played"
	case EventPaused:
		return "paused"
	case EventEnded:
		return "ended"
	case EventFullscreenChanged:
		return "fullscreen_changed"
	default:
		return "unknown"
	}
}

// Progress is the periodic position report
type Progress struct {
	PlayedSeconds   float64
	LoadedSeconds   float64 // buffered up to
	DurationSeconds float64 // 0 when unknown
}

// Event is a notification from the player
type Event struct {
	Kind       EventKind
	Progress   Progress // EventProgress only
	Fullscreen bool     // EventFullscreenChanged only
}
