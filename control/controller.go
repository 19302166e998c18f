package control

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/yhkl-dev/NaviPlayer/player"
)

// Controller owns the current State and runs dispatcher effects against the attached handle
type Controller struct {
	mu         sync.Mutex
	dispatcher *Dispatcher
	state      State
	handle     player.Handle

	clock    clockwork.Clock
	post     func(func())
	onChange func(State)
}

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces the real clock used for the auto-hide timer
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithPost routes asynchronous callbacks (timer, player events) through post,
// typically the UI's event queue
func WithPost(post func(func())) Option {
	return func(c *Controller) { c.post = post }
}

// WithOnChange registers a callback invoked with the new state after every dispatch
func WithOnChange(onChange func(State)) Option {
	return func(c *Controller) { c.onChange = onChange }
}

func NewController(dispatcher *Dispatcher, initial State, opts ...Option) *Controller {
	c := &Controller{
		dispatcher: dispatcher,
		state:      initial,
		clock:      clockwork.NewRealClock(),
		post:       func(f func()) { f() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attached reports whether a player handle is attached
func (c *Controller) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle != nil
}

// Attach connects the player handle and pushes the mount state into it
func (c *Controller) Attach(h player.Handle) {
	c.mu.Lock()
	c.handle = h
	state := c.state
	c.mu.Unlock()

	c.apply(h, c.dispatcher.Mount(state))
	c.notify(state)
}

// Detach forgets the handle; later input is dropped
func (c *Controller) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handle = nil
}

// Dispatch runs cmd through the dispatcher and applies the resulting effects.
// Input arriving before a handle is attached is dropped.
func (c *Controller) Dispatch(cmd Command) {
	c.mu.Lock()
	if cmd.Kind.IsInput() && c.handle == nil {
		c.mu.Unlock()
		log.Debug().Stringer("command", cmd.Kind).Msg("no player attached, input dropped")
		return
	}
	next, effects := c.dispatcher.Dispatch(c.state, cmd)
	c.state = next
	h := c.handle
	c.mu.Unlock()

	if cmd.Kind != CmdPlayerProgress {
		log.Debug().Stringer("command", cmd.Kind).Int("effects", len(effects)).Msg("dispatched")
	}
	c.apply(h, effects)
	c.notify(next)
}

// HandleEvent translates a player notification into a command
func (c *Controller) HandleEvent(e player.Event) {
	if cmd, ok := CommandFromEvent(e); ok {
		c.Dispatch(cmd)
	}
}

// Listen forwards events from h through post until the channel closes or ctx is done
func (c *Controller) Listen(ctx context.Context, h player.Handle) {
	events := h.Events()
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			c.post(func() { c.HandleEvent(e) })
		case <-ctx.Done():
			return
		}
	}
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

func (c *Controller) apply(h player.Handle, effects []Effect) {
	for _, e := range effects {
		if e.Kind == EffectScheduleHide {
			c.scheduleHide(e)
			continue
		}
		if h == nil {
			continue
		}
		if err := run(h, e); err != nil {
			log.Warn().Err(err).Stringer("effect", e.Kind).Msg("player command failed")
		}
	}
}

// scheduleHide starts a single-shot timer. Earlier timers are left running,
// so the first of several play events decides when the controls hide.
func (c *Controller) scheduleHide(e Effect) {
	c.clock.AfterFunc(e.Delay, func() {
		c.post(func() { c.Dispatch(Command{Kind: CmdControlsTimeout}) })
	})
}

func run(h player.Handle, e Effect) error {
	switch e.Kind {
	case EffectLoad:
		return h.Load(e.Source)
	case EffectPlay:
		return h.Play()
	case EffectPause:
		return h.Pause()
	case EffectSeek:
		pos, err := h.CurrentTime()
		if err != nil {
			return err
		}
		return h.SeekTo(pos + e.Value)
	case EffectVolume:
		return h.SetVolume(e.Value)
	case EffectRate:
		return h.SetPlaybackRate(e.Value)
	case EffectFullscreen:
		return h.SetFullscreen(e.On)
	case EffectDock:
		return h.SetDocked(e.On)
	}
	return nil
}
