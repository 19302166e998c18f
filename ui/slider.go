package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/samber/lo"
)

const (
	sliderLabel = "vol "
	sliderWheel = 0.05
)

// VolumeSlider is a one-line horizontal slider driven by the mouse.
// Click or drag sets the value, the wheel nudges it.
type VolumeSlider struct {
	*tview.Box

	value    float64
	muted    bool
	dragging bool
	changed  func(float64)
}

func NewVolumeSlider() *VolumeSlider {
	return &VolumeSlider{Box: tview.NewBox()}
}

// SetValue sets the displayed value without firing the changed callback
func (s *VolumeSlider) SetValue(v float64) *VolumeSlider {
	s.value = lo.Clamp(v, 0, 1)
	return s
}

func (s *VolumeSlider) SetMuted(muted bool) *VolumeSlider {
	s.muted = muted
	return s
}

func (s *VolumeSlider) GetValue() float64 {
	return s.value
}

// SetChangedFunc sets the handler called when the user moves the slider
func (s *VolumeSlider) SetChangedFunc(handler func(float64)) *VolumeSlider {
	s.changed = handler
	return s
}

// bar returns the screen columns occupied by the track
func (s *VolumeSlider) bar() (x, y, width int) {
	x, y, width, _ = s.GetInnerRect()
	return x + len(sliderLabel), y, max(0, width-len(sliderLabel)-6)
}

// sliderValue maps a column to a value in [0,1]; the first column of the
// track is 0 and the last is 1
func sliderValue(col, barX, barWidth int) float64 {
	if barWidth <= 1 {
		if col >= barX {
			return 1
		}
		return 0
	}
	return lo.Clamp(float64(col-barX)/float64(barWidth-1), 0, 1)
}

func (s *VolumeSlider) Draw(screen tcell.Screen) {
	s.Box.DrawForSubclass(screen, s)

	x, y, width := s.bar()
	labelColor := tcell.ColorGray
	if s.muted {
		labelColor = tcell.ColorRed
	}
	tview.Print(screen, sliderLabel, x-len(sliderLabel), y, len(sliderLabel), tview.AlignLeft, labelColor)

	filled := int(math.Round(s.value * float64(width)))
	for i := 0; i < width; i++ {
		style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		ch := '░'
		if i < filled {
			style = style.Foreground(tcell.ColorLightGreen)
			ch = '▓'
		}
		screen.SetContent(x+i, y, ch, nil, style)
	}

	percent := fmt.Sprintf("%3.0f%%", s.value*100)
	if s.muted {
		percent = "mute"
	}
	tview.Print(screen, percent, x+width+1, y, 5, tview.AlignLeft, tcell.ColorWhite)
}

func (s *VolumeSlider) set(v float64) {
	v = lo.Clamp(v, 0, 1)
	s.value = v
	if s.changed != nil {
		s.changed(v)
	}
}

func (s *VolumeSlider) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return s.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		col, row := event.Position()
		barX, _, width := s.bar()

		switch action {
		case tview.MouseLeftUp:
			if s.dragging {
				s.dragging = false
				return true, nil
			}
		case tview.MouseMove:
			if s.dragging {
				s.set(sliderValue(col, barX, width))
				return true, s
			}
		}

		if !s.InRect(col, row) {
			return false, nil
		}
		switch action {
		case tview.MouseLeftDown:
			setFocus(s)
			s.dragging = true
			s.set(sliderValue(col, barX, width))
			return true, s
		case tview.MouseScrollUp:
			s.set(s.value + sliderWheel)
			return true, nil
		case tview.MouseScrollDown:
			s.set(s.value - sliderWheel)
			return true, nil
		}
		return false, nil
	})
}
