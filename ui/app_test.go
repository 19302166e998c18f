package ui

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yhkl-dev/NaviPlayer/config"
	"github.com/yhkl-dev/NaviPlayer/control"
	"github.com/yhkl-dev/NaviPlayer/domain"
	"github.com/yhkl-dev/NaviPlayer/player"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config.DefaultConfig()
	cfg.Playlist.Items = []string{"/RST.mp4", "BSMS.mp4", "/HCW.mp4"}
	return NewApp(ctx, cfg, domain.NewPlaylist(cfg.Playlist.Items, ""))
}

func attachMock(t *testing.T, a *App) *player.Mock {
	t.Helper()
	m := player.NewMock()
	a.Attach(m)
	t.Cleanup(m.Close)
	m.Reset()
	return m
}

func press(a *App, keys ...*tcell.EventKey) {
	for _, k := range keys {
		a.handleKey(k)
	}
}

func special(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestApp_KeysIgnoredUntilAttached(t *testing.T) {
	a := newTestApp(t)

	press(a, runeKey('n'), runeKey(' '), special(tcell.KeyUp))

	s := a.controller.State()
	assert.Equal(t, 0, s.Index)
	assert.False(t, s.Playing)
	assert.Equal(t, 0.5, s.Volume)
}

func TestApp_PlaylistKeys(t *testing.T) {
	a := newTestApp(t)
	m := attachMock(t, a)

	press(a, runeKey('n'), runeKey('N'))
	assert.Equal(t, 2, a.controller.State().Index)

	press(a, runeKey('n'))
	assert.Equal(t, 0, a.controller.State().Index)

	press(a, runeKey('p'))
	assert.Equal(t, 2, a.controller.State().Index)

	press(a, runeKey('g'), runeKey('g'))
	assert.Equal(t, 0, a.controller.State().Index)

	press(a, runeKey('G'))
	assert.Equal(t, 2, a.controller.State().Index)

	assert.Equal(t, []string{
		"load BSMS.mp4", "load /HCW.mp4", "load /RST.mp4", "load /HCW.mp4", "load /RST.mp4", "load /HCW.mp4",
	}, m.Calls())
	assert.Equal(t, 2, a.playlistView.current)
}

func TestApp_TransportKeys(t *testing.T) {
	a := newTestApp(t)
	m := attachMock(t, a)
	m.SetCurrentTime(30)

	press(a,
		runeKey(' '),
		special(tcell.KeyUp),
		special(tcell.KeyRight),
		special(tcell.KeyLeft),
		runeKey('>'),
		runeKey('f'),
		special(tcell.KeyEscape),
	)

	s := a.controller.State()
	assert.True(t, s.Playing)
	assert.InDelta(t, 0.55, s.Volume, 1e-9)
	assert.Equal(t, 1.25, s.PlaybackRate)
	assert.False(t, s.Fullscreen)
	assert.Equal(t, []string{
		"play", "volume 0.55", "seek 40.00", "seek 20.00", "rate 1.25", "fullscreen true", "fullscreen false",
	}, m.Calls())

	index, _ := a.overlay.rate.GetCurrentOption()
	assert.Equal(t, 3, index)
	assert.Equal(t, "❚❚ pause", a.overlay.playButton.GetLabel())
}

func TestApp_MuteKey(t *testing.T) {
	a := newTestApp(t)
	attachMock(t, a)

	press(a, runeKey('m'))
	s := a.controller.State()
	assert.True(t, s.Muted)
	assert.Equal(t, 0.0, s.Volume)
	assert.Equal(t, 0.0, a.overlay.volume.GetValue())

	press(a, runeKey('M'))
	assert.False(t, a.controller.State().Muted)
	assert.Equal(t, 0.5, a.overlay.volume.GetValue())
}

func TestApp_HelpSwallowsKeys(t *testing.T) {
	a := newTestApp(t)
	attachMock(t, a)

	press(a, runeKey('?'))
	require.True(t, a.helpView.IsActive())

	press(a, runeKey('n'))
	assert.Equal(t, 0, a.controller.State().Index)

	press(a, special(tcell.KeyEscape))
	assert.False(t, a.helpView.IsActive())

	press(a, runeKey('n'))
	assert.Equal(t, 1, a.controller.State().Index)
}

func TestApp_MinimizeSwitchesPage(t *testing.T) {
	a := newTestApp(t)
	m := attachMock(t, a)

	press(a, runeKey('w'))
	assert.True(t, a.docked)
	name, _ := a.pages.GetFrontPage()
	assert.Equal(t, pageDocked, name)

	press(a, runeKey(' '))
	assert.True(t, a.controller.State().Minimized, "play state is independent of minimize")

	press(a, runeKey('W'))
	assert.False(t, a.docked)
	name, _ = a.pages.GetFrontPage()
	assert.Equal(t, pageMain, name)

	assert.Equal(t, []string{"docked true", "play", "docked false"}, m.Calls())
}

func TestApp_PageSwitchDropsPendingSequence(t *testing.T) {
	a := newTestApp(t)
	attachMock(t, a)

	press(a, runeKey('G'), runeKey('g'))
	// the overlay's mini button docks without going through the key manager
	a.dispatch(control.CmdToggleMinimized)
	press(a, runeKey('g'))
	assert.Equal(t, 2, a.controller.State().Index, "g before and after the switch is not gg")

	press(a, runeKey('g'))
	assert.Equal(t, 0, a.controller.State().Index)
}

func TestApp_FullscreenButtonOnlyEnters(t *testing.T) {
	a := newTestApp(t)
	m := attachMock(t, a)

	click := func() {
		a.overlay.fullscreen.InputHandler()(special(tcell.KeyEnter), func(tview.Primitive) {})
	}
	click()
	click()

	assert.True(t, a.controller.State().Fullscreen)
	assert.Equal(t, []string{"fullscreen true"}, m.Calls())
	assert.Equal(t, "⛶ full", a.overlay.fullscreen.GetLabel())
}

func TestApp_PointerShowsAndHidesOverlay(t *testing.T) {
	a := newTestApp(t)
	attachMock(t, a)
	a.playerArea.SetRect(0, 0, 60, 20)

	move := func(x, y int) {
		a.handleMouse(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone), tview.MouseMove)
	}

	move(5, 5)
	assert.True(t, a.controller.State().ControlsVisible)

	// leaving while paused keeps the controls up
	move(70, 5)
	assert.True(t, a.controller.State().ControlsVisible)

	press(a, runeKey(' '))
	move(5, 5)
	move(70, 5)
	assert.False(t, a.controller.State().ControlsVisible)
}

func TestApp_PlaylistSelect(t *testing.T) {
	a := newTestApp(t)
	m := attachMock(t, a)

	a.playlistView.table.Select(3, 0)
	a.playlistView.table.InputHandler()(special(tcell.KeyEnter), func(tview.Primitive) {})

	assert.Equal(t, 2, a.controller.State().Index)
	assert.Equal(t, []string{"load /HCW.mp4"}, m.Calls())
}
