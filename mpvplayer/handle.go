package mpvplayer

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/wildeyedskies/go-mpv/mpv"
	"github.com/yhkl-dev/NaviPlayer/player"
)

// Player implements player.Handle using an embedded libmpv instance
type Player struct {
	instance  *Mpvplayer
	events    chan player.Event
	cancel    context.CancelFunc
	wg        conc.WaitGroup
	dockScale float64
	closeOnce sync.Once
}

// Verify Player implements player.Handle at compile time.
var _ player.Handle = (*Player)(nil)

// NewPlayer creates the mpv window and starts the event and property loops
func NewPlayer(ctx context.Context, opts Options) (*Player, error) {
	mpvInstance, err := CreateMPVInstance(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MPV instance")
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Player{
		instance:  &Mpvplayer{Mpv: mpvInstance},
		events:    make(chan player.Event, 16),
		cancel:    cancel,
		dockScale: opts.DockScale,
	}

	watcher := player.NewWatcher(p.instance, opts.ProgressInterval)
	p.wg.Go(func() { p.eventLoop(ctx) })
	p.wg.Go(func() { watcher.Run(ctx, clockwork.NewRealClock(), p.events) })

	return p, nil
}

func (p *Player) Load(source string) error {
	return p.instance.Load(source)
}

func (p *Player) Play() error {
	return p.instance.SetPaused(false)
}

func (p *Player) Pause() error {
	return p.instance.SetPaused(true)
}

func (p *Player) SeekTo(seconds float64) error {
	return p.instance.SeekAbsolute(seconds)
}

func (p *Player) CurrentTime() (float64, error) {
	return p.instance.GetProgress()
}

// SetVolume maps [0,1] onto mpv's percent scale
func (p *Player) SetVolume(volume float64) error {
	return p.instance.SetVolumePercent(volume * 100)
}

func (p *Player) SetPlaybackRate(rate float64) error {
	return p.instance.SetSpeed(rate)
}

func (p *Player) SetFullscreen(on bool) error {
	return p.instance.SetFullscreen(on)
}

func (p *Player) SetDocked(on bool) error {
	return p.instance.Dock(on, p.dockScale)
}

func (p *Player) Events() <-chan player.Event {
	return p.events
}

// Close stops both loops, then quits and destroys the mpv instance
func (p *Player) Close() {
	p.closeOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
		close(p.events)

		if p.instance != nil && p.instance.Mpv != nil {
			p.instance.Command([]string{"quit"})
			p.instance.TerminateDestroy()
		}
	})
}

// eventLoop drains libmpv's event queue; state changes are picked up by the watcher
func (p *Player) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			e := p.instance.WaitEvent(1)
			if e == nil {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			switch e.Event_Id {
			case mpv.EVENT_SHUTDOWN:
				log.Info().Msg("mpv window closed")
				return
			case mpv.EVENT_END_FILE:
				log.Debug().Msg("mpv end-file")
			}
		}
	}
}
