package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/yhkl-dev/NaviPlayer/control"
)

// FormatDuration converts a probed length to M:SS
func FormatDuration(d time.Duration) string {
	return control.FormatTime(d.Seconds())
}

// FormatNowPlaying creates the info text shown on the player surface
func FormatNowPlaying(s control.State) string {
	item := s.Current()

	status := fmt.Sprintf("[lightgreen]%s", item.Title)
	if !s.Playing {
		status = fmt.Sprintf("[yellow]%s [darkgray](PAUSED)", item.Title)
	}

	var flags []string
	if s.Fullscreen {
		flags = append(flags, "fullscreen")
	}
	if s.Muted {
		flags = append(flags, "muted")
	}
	if s.PlaybackRate != 1 {
		flags = append(flags, FormatRate(s.PlaybackRate))
	}
	flagText := ""
	if len(flags) > 0 {
		flagText = "[darkgray]" + strings.Join(flags, " · ")
	}

	return fmt.Sprintf(`
[white]Current %d/%d:
%s
%s

[darkgray]kind:   [white]%s
[darkgray]source: [white]%s

[gray]%s / %s`,
		s.Index+1, len(s.Playlist), status, flagText,
		item.Kind, item.Source,
		control.FormatTime(s.PlayedSeconds), control.FormatTime(s.DisplayDuration()))
}

// CreateProgressBar creates a visual progress bar
func CreateProgressBar(progress float64, width int) string {
	filledWidth := int(progress * float64(width))
	var bar strings.Builder

	for i := 0; i < width; i++ {
		if i < filledWidth {
			bar.WriteString("[lightgreen]▓")
		} else {
			bar.WriteString("[darkgray]░")
		}
	}
	return bar.String()
}

// CreateProgressText creates the elapsed/duration line of the overlay
func CreateProgressText(s control.State, width int) string {
	return fmt.Sprintf("[white]%s[darkgray] / %s %s",
		control.FormatTime(s.PlayedSeconds),
		control.FormatTime(s.DisplayDuration()),
		CreateProgressBar(s.Progress(), width))
}

// CreateDockText creates the docked bar text
func CreateDockText(s control.State) string {
	state := "[yellow]paused"
	if s.Playing {
		state = "[lightgreen]playing"
	}
	return fmt.Sprintf("[white]%s %s [darkgray]%s", s.Current().Title, state, control.FormatTime(s.PlayedSeconds))
}

// CreateHintText creates the key hint line
func CreateHintText() string {
	return "[darkgray] SPACE play | ←/→ seek | ↑/↓ volume | m mute | f full | w mini | n/p next/prev | </> rate | ? help | q quit"
}
