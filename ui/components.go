package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/samber/lo"
	"github.com/yhkl-dev/NaviPlayer/control"
)

const overlayHeight = 3

// createLayout sets up the UI layout
func (a *App) createLayout() {
	a.surface = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(true)
	a.surface.SetBorder(true).
		SetTitle(" NaviPlayer ").
		SetBorderColor(tcell.ColorDarkGray)

	a.overlay = a.newOverlay()

	a.playerArea = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.surface, 0, 1, false).
		AddItem(a.overlay, overlayHeight, 0, false)

	a.playlistView = NewPlaylistView(a.playlist, func(index int) {
		a.controller.Dispatch(control.Command{Kind: control.CmdSelectIndex, Index: index})
	})

	a.hintBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText(CreateHintText())

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.playerArea, 0, 2, false).
		AddItem(a.playlistView.table, 0, 1, true)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainLayout, 0, 1, true).
		AddItem(a.hintBar, 1, 0, false)

	a.dockBar = a.newDockBar()
	docked := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.dockBar, 1, 0, true).
		AddItem(nil, 0, 1, false)

	a.helpView = NewHelpView()
	help := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(nil, 0, 1, false).
			AddItem(a.helpView.GetContainer(), 60, 0, true).
			AddItem(nil, 0, 1, false), 24, 0, true).
		AddItem(nil, 0, 1, false)

	a.pages = tview.NewPages().
		AddPage(pageMain, root, true, true).
		AddPage(pageDocked, docked, true, false).
		AddPage(pageHelp, help, true, false)

	a.tviewApp.
		SetRoot(a.pages, true).
		SetFocus(a.playlistView.table).
		EnableMouse(true).
		SetInputCapture(a.handleKey).
		SetMouseCapture(a.handleMouse)
}

// showHelp displays the help modal on top of the current page
func (a *App) showHelp() {
	a.keys.ResetPending()
	a.helpView.Show()
	a.pages.ShowPage(pageHelp)
	a.tviewApp.SetFocus(a.helpView.textView)
}

// closeHelp hides the help modal
func (a *App) closeHelp() {
	a.keys.ResetPending()
	a.helpView.Close()
	a.pages.HidePage(pageHelp)
	if a.docked {
		a.tviewApp.SetFocus(a.dockBar)
	} else {
		a.tviewApp.SetFocus(a.playlistView.table)
	}
}

// Overlay is the transport controls panel below the player surface
type Overlay struct {
	*tview.Flex

	times      *tview.TextView
	playButton *tview.Button
	fullscreen *tview.Button
	volume     *VolumeSlider
	rate       *tview.DropDown
	barWidth   int
}

func (a *App) newOverlay() *Overlay {
	o := &Overlay{
		Flex:     tview.NewFlex().SetDirection(tview.FlexRow),
		times:    tview.NewTextView().SetDynamicColors(true),
		barWidth: a.cfg.UI.ProgressBarWidth,
	}

	button := func(label string, kind control.Kind) *tview.Button {
		return tview.NewButton(label).SetSelectedFunc(func() { a.dispatch(kind) })
	}
	o.playButton = button(playLabel(false), control.CmdTogglePlay)
	// leaving fullscreen is Esc or the mpv window's own controls
	o.fullscreen = button("⛶ full", control.CmdRequestFullscreen)

	buttons := tview.NewFlex().SetDirection(tview.FlexColumn)
	for _, b := range []*tview.Button{
		button("⏮", control.CmdPrevious),
		button("-10s", control.CmdSeekBackward),
		o.playButton,
		button("+10s", control.CmdSeekForward),
		button("⏭", control.CmdNext),
		button("▁ mini", control.CmdToggleMinimized),
		o.fullscreen,
	} {
		buttons.AddItem(b, tview.TaggedStringWidth(b.GetLabel())+2, 0, false).
			AddItem(nil, 1, 0, false)
	}

	o.volume = NewVolumeSlider().SetChangedFunc(func(v float64) {
		if a.syncing {
			return
		}
		a.controller.Dispatch(control.Command{Kind: control.CmdSetVolume, Value: v})
	})

	labels := lo.Map(control.PlaybackRates, func(r float64, _ int) string {
		return FormatRate(r)
	})
	o.rate = tview.NewDropDown().
		SetLabel("rate ").
		SetOptions(labels, func(_ string, index int) {
			if a.syncing || index < 0 {
				return
			}
			a.controller.Dispatch(control.Command{Kind: control.CmdSetRate, Value: control.PlaybackRates[index]})
		})

	settings := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(o.volume, 0, 1, false).
		AddItem(nil, 2, 0, false).
		AddItem(o.rate, 12, 0, false)

	o.AddItem(o.times, 1, 0, false).
		AddItem(buttons, 1, 0, false).
		AddItem(settings, 1, 0, false)
	return o
}

// Render updates labels, progress, the volume slider and the rate selector
func (o *Overlay) Render(s control.State) {
	o.times.SetText(CreateProgressText(s, o.barWidth))
	o.playButton.SetLabel(playLabel(s.Playing))
	o.volume.SetValue(s.Volume).SetMuted(s.Muted)
	if i := lo.IndexOf(control.PlaybackRates, s.PlaybackRate); i >= 0 {
		if current, _ := o.rate.GetCurrentOption(); current != i {
			o.rate.SetCurrentOption(i)
		}
	}
}

func playLabel(playing bool) string {
	if playing {
		return "❚❚ pause"
	}
	return "▶ play"
}

// DockBar is the one-line bar shown while minimized
type DockBar struct {
	*tview.Flex
	text *tview.TextView
}

func (a *App) newDockBar() *DockBar {
	d := &DockBar{
		Flex: tview.NewFlex().SetDirection(tview.FlexColumn),
		text: tview.NewTextView().SetDynamicColors(true),
	}
	restore := tview.NewButton("▢ restore").SetSelectedFunc(func() { a.dispatch(control.CmdToggleMinimized) })
	closeBtn := tview.NewButton("✕").SetSelectedFunc(func() { a.dispatch(control.CmdToggleMinimized) })

	d.AddItem(d.text, 0, 1, false).
		AddItem(restore, 11, 0, true).
		AddItem(nil, 1, 0, false).
		AddItem(closeBtn, 3, 0, false)
	return d
}

// Render shows the current title and play state
func (d *DockBar) Render(s control.State) {
	d.text.SetText(CreateDockText(s))
}

// FormatRate renders a playback rate the way the selector lists it
func FormatRate(r float64) string {
	return fmt.Sprintf("%gx", r)
}
