package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// HelpView represents the keyboard shortcuts help interface
type HelpView struct {
	container *tview.Flex
	textView  *tview.TextView
	isActive  bool
}

// NewHelpView creates a new help view
func NewHelpView() *HelpView {
	hv := &HelpView{}

	hv.textView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)

	helpText := `[yellow::b]Keyboard Shortcuts[-:-:-]

[lightgreen]Playback:[-]
  [white]Space[-]       Play/Pause
  [white]→ / ←[-]       Seek forward/back 10s
  [white]↑ / ↓[-]       Volume up/down
  [white]m[-]           Mute/Unmute
  [white]< / >[-]       Slower/Faster

[lightgreen]Window:[-]
  [white]f[-]           Fullscreen
  [white]ESC[-]         Exit fullscreen / close help
  [white]w[-]           Minimize/Restore

[lightgreen]Playlist:[-]
  [white]n / p[-]       Next/Previous
  [white]gg / G[-]      First/Last entry
  [white]Enter[-]       Play selected entry

[lightgreen]General:[-]
  [white]?[-]           Show this help panel
  [white]q / Ctrl+C[-]  Quit

[yellow]Press ESC or ? to close this help panel[-]
`

	hv.textView.SetText(helpText)

	hv.container = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(hv.textView, 0, 1, true)

	hv.container.SetBorder(true).
		SetTitle(" Help (ESC to close) ").
		SetBorderColor(tcell.ColorYellow)

	return hv
}

// Show marks the help view active
func (hv *HelpView) Show() {
	hv.isActive = true
}

// Close marks the help view inactive
func (hv *HelpView) Close() {
	hv.isActive = false
}

// IsActive returns whether the help view is active
func (hv *HelpView) IsActive() bool {
	return hv.isActive
}

// GetContainer returns the help view container
func (hv *HelpView) GetContainer() *tview.Flex {
	return hv.container
}
