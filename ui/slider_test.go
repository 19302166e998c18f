package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func TestSliderValue(t *testing.T) {
	tests := []struct {
		col, barX, width int
		want             float64
	}{
		{col: 10, barX: 10, width: 11, want: 0},
		{col: 15, barX: 10, width: 11, want: 0.5},
		{col: 20, barX: 10, width: 11, want: 1},
		{col: 3, barX: 10, width: 11, want: 0},
		{col: 40, barX: 10, width: 11, want: 1},
		{col: 10, barX: 10, width: 1, want: 1},
		{col: 9, barX: 10, width: 0, want: 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, sliderValue(tt.col, tt.barX, tt.width), 1e-9, "col %d", tt.col)
	}
}

func TestVolumeSlider_Mouse(t *testing.T) {
	var got []float64
	s := NewVolumeSlider().SetChangedFunc(func(v float64) { got = append(got, v) })
	s.SetRect(0, 0, 30, 1)
	handler := s.MouseHandler()
	noFocus := func(tview.Primitive) {}

	// track spans columns 4..23
	consumed, capture := handler(tview.MouseLeftDown, tcell.NewEventMouse(23, 0, tcell.Button1, tcell.ModNone), noFocus)
	assert.True(t, consumed)
	assert.Equal(t, tview.Primitive(s), capture)
	assert.Equal(t, 1.0, s.GetValue())

	// dragging outside the widget still moves the value
	handler(tview.MouseMove, tcell.NewEventMouse(0, 3, tcell.Button1, tcell.ModNone), noFocus)
	assert.Equal(t, 0.0, s.GetValue())

	handler(tview.MouseLeftUp, tcell.NewEventMouse(0, 3, tcell.ButtonNone, tcell.ModNone), noFocus)
	consumed, _ = handler(tview.MouseMove, tcell.NewEventMouse(10, 3, tcell.ButtonNone, tcell.ModNone), noFocus)
	assert.False(t, consumed)

	handler(tview.MouseScrollUp, tcell.NewEventMouse(10, 0, tcell.WheelUp, tcell.ModNone), noFocus)
	assert.InDelta(t, 0.05, s.GetValue(), 1e-9)

	assert.Len(t, got, 3)
}

func TestVolumeSlider_SetValueIsSilent(t *testing.T) {
	called := false
	s := NewVolumeSlider().SetChangedFunc(func(float64) { called = true })

	s.SetValue(1.7)

	assert.Equal(t, 1.0, s.GetValue())
	assert.False(t, called)
}
