package ui

import (
	"context"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
	"github.com/yhkl-dev/NaviPlayer/config"
	"github.com/yhkl-dev/NaviPlayer/control"
	"github.com/yhkl-dev/NaviPlayer/device"
	"github.com/yhkl-dev/NaviPlayer/domain"
	"github.com/yhkl-dev/NaviPlayer/player"
	"github.com/yhkl-dev/NaviPlayer/probe"
)

const (
	pageMain   = "main"
	pageDocked = "docked"
	pageHelp   = "help"

	probeWorkers = 4
)

// App represents the TUI application
type App struct {
	tviewApp   *tview.Application
	cfg        *config.Config
	ctx        context.Context
	controller *control.Controller
	keys       *KeyBindingManager
	playlist   []domain.MediaItem

	stopped       atomic.Bool
	syncing       bool // set while render pushes state into widgets
	pointerInside bool
	docked        bool

	pages        *tview.Pages
	playerArea   *tview.Flex
	surface      *tview.TextView
	overlay      *Overlay
	playlistView *PlaylistView
	dockBar      *DockBar
	hintBar      *tview.TextView
	helpView     *HelpView
}

// NewApp builds the UI and its controller. The controller has no player
// attached until Attach is called; keys pressed before that are ignored.
func NewApp(ctx context.Context, cfg *config.Config, playlist []domain.MediaItem) *App {
	a := &App{
		tviewApp: tview.NewApplication(),
		cfg:      cfg,
		ctx:      ctx,
		playlist: playlist,
	}

	initial := control.NewState(playlist, cfg.Playlist.StartIndex, cfg.Controls.InitialVolume, cfg.Controls.InitialRate)
	a.controller = control.NewController(
		control.NewDispatcher(settingsFrom(cfg)),
		initial,
		control.WithPost(a.post),
		control.WithOnChange(a.render),
	)

	a.createLayout()
	a.keys = a.newKeyBindings()
	a.render(initial)
	return a
}

func settingsFrom(cfg *config.Config) control.Settings {
	return control.Settings{
		VolumeStep:   cfg.Controls.VolumeStep,
		SeekStep:     cfg.Controls.SeekStep(),
		ResumeVolume: cfg.Controls.ResumeVolume,
		HideDelay:    cfg.Controls.HideDelay(),
		AutoAdvance:  cfg.Player.AutoAdvance,
	}
}

// Attach connects the player and starts forwarding its events to the UI goroutine
func (a *App) Attach(h player.Handle) {
	a.controller.Attach(h)
	go a.controller.Listen(a.ctx, h)
}

// Run starts the application and blocks until it stops
func (a *App) Run() error {
	go a.loadDurations()
	if a.cfg.Player.PauseOnDisconnect {
		go device.NewMonitor(device.SystemProfiler, a.pauseOnDisconnect).Run(a.ctx)
	}
	go func() {
		<-a.ctx.Done()
		a.Stop()
	}()

	log.Info().Int("items", len(a.playlist)).Msg("start naviplayer")
	err := a.tviewApp.Run()
	a.stopped.Store(true)
	return err
}

// Stop stops the application
func (a *App) Stop() {
	a.stopped.Store(true)
	if a.tviewApp != nil {
		a.tviewApp.Stop()
	}
}

// post runs f on the UI goroutine. Callbacks arriving after shutdown are dropped.
func (a *App) post(f func()) {
	if a.stopped.Load() {
		return
	}
	a.tviewApp.QueueUpdateDraw(f)
}

func (a *App) dispatch(kind control.Kind) {
	a.controller.Dispatch(control.Command{Kind: kind})
}

// loadDurations probes local audio files and fills the playlist's duration column
func (a *App) loadDurations() {
	durations := probe.Durations(a.playlist, probeWorkers)
	if len(durations) == 0 {
		return
	}
	a.post(func() {
		a.playlistView.SetDurations(durations)
		a.playlistView.Render(a.controller.State())
	})
}

// pauseOnDisconnect pauses playback when the external audio output goes away
func (a *App) pauseOnDisconnect() {
	a.post(func() {
		if a.controller.State().Playing {
			a.dispatch(control.CmdTogglePlay)
		}
	})
}

// handleKey is the application-wide input capture
func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if a.helpView.IsActive() {
		if event.Key() == tcell.KeyEscape || event.Rune() == '?' {
			a.closeHelp()
			return nil
		}
		return event
	}
	// an open drop-down owns the keyboard until it closes
	if a.overlay.rate.IsOpen() {
		return event
	}
	if a.keys.HandleKey(event) {
		return nil
	}
	return event
}

// handleMouse tracks the pointer over the player area to show and hide the overlay
func (a *App) handleMouse(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
	if action != tview.MouseMove || a.docked {
		return event, action
	}

	x, y := event.Position()
	inside := a.playerArea.InRect(x, y)
	switch {
	case inside:
		a.dispatch(control.CmdPointerOver)
	case a.pointerInside:
		a.dispatch(control.CmdPointerLeave)
	}
	a.pointerInside = inside

	return event, action
}

// render pushes s into every widget. It runs on the UI goroutine.
func (a *App) render(s control.State) {
	a.syncing = true
	defer func() { a.syncing = false }()

	a.surface.SetText(FormatNowPlaying(s))
	a.overlay.Render(s)
	if s.ControlsVisible {
		a.playerArea.ResizeItem(a.overlay, overlayHeight, 0)
	} else {
		a.playerArea.ResizeItem(a.overlay, 0, 0)
	}
	a.playlistView.Render(s)
	a.dockBar.Render(s)

	if s.Minimized != a.docked {
		a.docked = s.Minimized
		a.pointerInside = false
		a.keys.ResetPending()
		a.helpView.Close()
		if a.docked {
			a.pages.SwitchToPage(pageDocked)
			a.tviewApp.SetFocus(a.dockBar)
		} else {
			a.pages.SwitchToPage(pageMain)
			a.tviewApp.SetFocus(a.playlistView.table)
		}
	}
}
