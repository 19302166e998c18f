package device

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const defaultInterval = 500 * time.Millisecond

// Monitor polls a Source and calls onDisconnect when the external output
// that was in use goes away
type Monitor struct {
	source       Source
	clock        clockwork.Clock
	interval     time.Duration
	onDisconnect func()

	last    Output
	hasLast bool
}

// MonitorOption configures a Monitor
type MonitorOption func(*Monitor)

// WithClock replaces the real clock driving the poll ticker
func WithClock(clock clockwork.Clock) MonitorOption {
	return func(m *Monitor) { m.clock = clock }
}

// WithInterval sets the poll interval
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) { m.interval = d }
}

func NewMonitor(source Source, onDisconnect func(), opts ...MonitorOption) *Monitor {
	m := &Monitor{
		source:       source,
		clock:        clockwork.NewRealClock(),
		interval:     defaultInterval,
		onDisconnect: onDisconnect,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run polls until ctx is done. It returns at once when the source is unsupported.
func (m *Monitor) Run(ctx context.Context) {
	if !m.poll(ctx) {
		return
	}
	if m.hasLast {
		log.Info().Str("device", m.last.Name).Int("class", int(m.last.Class)).Msg("initial audio output")
	}

	ticker := m.clock.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			m.poll(ctx)
		case <-ctx.Done():
			log.Debug().Msg("audio monitor stopped")
			return
		}
	}
}

// poll reads the outputs once; false means the source can never work here
func (m *Monitor) poll(ctx context.Context) bool {
	outputs, err := m.source(ctx)
	if errors.Is(err, ErrUnsupported) {
		log.Info().Msg("audio monitor disabled: unsupported platform")
		return false
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to list audio outputs")
		return true
	}

	if m.Observe(outputs) && m.onDisconnect != nil {
		m.onDisconnect()
	}
	return true
}

// Observe records the current outputs and reports whether the previous
// external output disappeared or stopped being the default
func (m *Monitor) Observe(outputs []Output) bool {
	current, ok := Current(outputs)
	if !ok {
		return false
	}

	disconnected := false
	if m.hasLast && m.last.Class.External() {
		stillThere := lo.ContainsBy(outputs, func(o Output) bool {
			return o.Connected && namesMatch(o.Name, m.last.Name)
		})
		switched := !namesMatch(current.Name, m.last.Name) && !current.Class.External()
		disconnected = !stillThere || switched
	}

	if disconnected {
		log.Info().Str("from", m.last.Name).Str("to", current.Name).Msg("audio output disconnected")
	}
	m.last, m.hasLast = current, true
	return disconnected
}

func namesMatch(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
