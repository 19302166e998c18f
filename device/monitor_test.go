package device

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

var (
	speakers = Output{Name: "MacBook Pro Speakers", Class: ClassBuiltIn, Connected: true}
	airpods  = Output{Name: "AirPods", Class: ClassBluetooth, Connected: true}
	dac      = Output{Name: "USB DAC", Class: ClassUSB, Connected: true}
)

func withDefault(o Output) Output {
	o.Default = true
	return o
}

func TestMonitor_Observe(t *testing.T) {
	tests := []struct {
		name  string
		steps [][]Output
		want  []bool
	}{
		{
			name:  "headphones unplugged",
			steps: [][]Output{{speakers, withDefault(airpods)}, {withDefault(speakers)}},
			want:  []bool{false, true},
		},
		{
			name:  "switch back to speakers while headphones stay connected",
			steps: [][]Output{{speakers, withDefault(airpods)}, {withDefault(speakers), airpods}},
			want:  []bool{false, true},
		},
		{
			name:  "switch between external outputs",
			steps: [][]Output{{withDefault(airpods), dac}, {airpods, withDefault(dac)}},
			want:  []bool{false, false},
		},
		{
			name:  "built-in only",
			steps: [][]Output{{withDefault(speakers)}, {withDefault(speakers)}},
			want:  []bool{false, false},
		},
		{
			name:  "empty report is ignored",
			steps: [][]Output{{withDefault(airpods)}, nil, {withDefault(airpods)}},
			want:  []bool{false, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor(nil, nil)
			for i, outputs := range tt.steps {
				assert.Equal(t, tt.want[i], m.Observe(outputs), "step %d", i)
			}
		})
	}
}

func TestMonitor_RunUnsupported(t *testing.T) {
	m := NewMonitor(func(context.Context) ([]Output, error) { return nil, ErrUnsupported }, func() {
		t.Error("unexpected disconnect")
	})

	done := make(chan struct{})
	go func() {
		m.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return for an unsupported source")
	}
}

func TestMonitor_RunPollsAndFires(t *testing.T) {
	clock := clockwork.NewFakeClock()

	reports := [][]Output{{speakers, withDefault(airpods)}, {withDefault(speakers)}}
	var polls atomic.Int32
	source := func(context.Context) ([]Output, error) {
		i := min(int(polls.Add(1))-1, len(reports)-1)
		return reports[i], nil
	}

	var fired atomic.Int32
	m := NewMonitor(source, func() { fired.Add(1) }, WithClock(clock), WithInterval(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	clock.BlockUntil(1)
	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.GreaterOrEqual(t, polls.Load(), int32(2))
}
