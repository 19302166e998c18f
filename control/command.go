package control

import (
	"time"

	"github.com/yhkl-dev/NaviPlayer/player"
)

// Kind identifies a command
type Kind int

const (
	// input: keys, pointer and overlay widgets
	CmdTogglePlay Kind = iota
	CmdVolumeUp
	CmdVolumeDown
	CmdSetVolume
	CmdSeekForward
	CmdSeekBackward
	CmdToggleMute
	CmdRequestFullscreen
	CmdExitFullscreen
	CmdToggleMinimized
	CmdNext
	CmdPrevious
	CmdSelectIndex
	CmdSetRate
	CmdRateUp
	CmdRateDown
	CmdPointerOver
	CmdPointerLeave

	// reported by the player or the auto-hide timer
	CmdPlayerPlayed
	CmdPlayerPaused
	CmdPlayerProgress
	CmdPlayerEnded
	CmdPlayerFullscreen
	CmdControlsTimeout
)

var kindNames = map[Kind]string{
	CmdTogglePlay:        "toggle_play",
	CmdVolumeUp:          "volume_up",
	CmdVolumeDown:        "volume_down",
	CmdSetVolume:         "set_volume",
	CmdSeekForward:       "seek_forward",
	CmdSeekBackward:      "seek_backward",
	CmdToggleMute:        "toggle_mute",
	CmdRequestFullscreen: "request_fullscreen",
	CmdExitFullscreen:    "exit_fullscreen",
	CmdToggleMinimized:   "toggle_minimized",
	CmdNext:              "next",
	CmdPrevious:          "previous",
	CmdSelectIndex:       "select_index",
	CmdSetRate:           "set_rate",
	CmdRateUp:            "rate_up",
	CmdRateDown:          "rate_down",
	CmdPointerOver:       "pointer_over",
	CmdPointerLeave:      "pointer_leave",
	CmdPlayerPlayed:      "player_played",
	CmdPlayerPaused:      "player_paused",
	CmdPlayerProgress:    "player_progress",
	CmdPlayerEnded:       "player_ended",
	CmdPlayerFullscreen:  "player_fullscreen",
	CmdControlsTimeout:   "controls_timeout",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsInput reports whether the command originates from the user.
// Input is dropped while no player handle is attached.
func (k Kind) IsInput() bool {
	return k < CmdPlayerPlayed
}

// Command is a request to change state
type Command struct {
	Kind     Kind
	Value    float64 // CmdSetVolume, CmdSetRate
	Index    int     // CmdSelectIndex
	On       bool    // CmdPlayerFullscreen
	Progress player.Progress
}

// CommandFromEvent maps a player notification onto a command
func CommandFromEvent(e player.Event) (Command, bool) {
	switch e.Kind {
	case player.EventPlayed:
		return Command{Kind: CmdPlayerPlayed}, true
	case player.EventPaused:
		return Command{Kind: CmdPlayerPaused}, true
	case player.EventProgress:
		return Command{Kind: CmdPlayerProgress, Progress: e.Progress}, true
	case player.EventEnded:
		return Command{Kind: CmdPlayerEnded}, true
	case player.EventFullscreenChanged:
		return Command{Kind: CmdPlayerFullscreen, On: e.Fullscreen}, true
	default:
		return Command{}, false
	}
}

// EffectKind identifies a side effect requested by the dispatcher
type EffectKind int

const (
	EffectLoad EffectKind = iota
	EffectPlay
	EffectPause
	EffectSeek
	EffectVolume
	EffectRate
	EffectFullscreen
	EffectDock
	EffectScheduleHide
)

func (k EffectKind) String() string {
	switch k {
	case EffectLoad:
		return "load"
	case EffectPlay:
		return "play"
	case EffectPause:
		return "pause"
	case EffectSeek:
		return "seek"
	case EffectVolume:
		return "volume"
	case EffectRate:
		return "rate"
	case EffectFullscreen:
		return "fullscreen"
	case EffectDock:
		return "dock"
	case EffectScheduleHide:
		return "schedule_hide"
	default:
		return "unknown"
	}
}

// Effect is a command for the player handle or the timer
type Effect struct {
	Kind   EffectKind
	Source string        // EffectLoad
	Value  float64       // EffectSeek offset in seconds, EffectVolume, EffectRate
	On     bool          // EffectFullscreen, EffectDock
	Delay  time.Duration // EffectScheduleHide
}
