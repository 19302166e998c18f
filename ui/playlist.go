package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/yhkl-dev/NaviPlayer/control"
	"github.com/yhkl-dev/NaviPlayer/domain"
)

// PlaylistView lists the playlist entries next to the player
type PlaylistView struct {
	table     *tview.Table
	items     []domain.MediaItem
	durations map[int]time.Duration
	current   int
}

// NewPlaylistView creates the playlist table; onSelect receives the entry index
func NewPlaylistView(items []domain.MediaItem, onSelect func(int)) *PlaylistView {
	pv := &PlaylistView{
		items:     items,
		durations: make(map[int]time.Duration),
		current:   -1,
	}

	pv.table = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	pv.table.SetBorder(true).
		SetTitle(" Playlist ").
		SetBorderColor(tcell.ColorDarkGray)

	headerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Attributes(tcell.AttrBold)
	pv.table.SetCell(0, 0, tview.NewTableCell("#").SetStyle(headerStyle).SetSelectable(false))
	pv.table.SetCell(0, 1, tview.NewTableCell("Title").SetStyle(headerStyle).SetSelectable(false))
	pv.table.SetCell(0, 2, tview.NewTableCell("Kind").SetStyle(headerStyle).SetSelectable(false))
	pv.table.SetCell(0, 3, tview.NewTableCell("Length").SetStyle(headerStyle).SetSelectable(false))

	pv.table.SetSelectedStyle(tcell.StyleDefault.
		Background(tcell.ColorDarkGreen).
		Foreground(tcell.ColorWhite))

	pv.table.SetSelectedFunc(func(row, _ int) {
		if row > 0 && row <= len(pv.items) {
			onSelect(row - 1)
		}
	})

	pv.fill()
	return pv
}

// SetDurations stores probed lengths keyed by entry index
func (pv *PlaylistView) SetDurations(durations map[int]time.Duration) {
	for i, d := range durations {
		pv.durations[i] = d
	}
	pv.fill()
}

// Render highlights the current entry
func (pv *PlaylistView) Render(s control.State) {
	if s.Index == pv.current {
		return
	}
	pv.current = s.Index
	pv.fill()
	pv.table.Select(s.Index+1, 0)
}

func (pv *PlaylistView) fill() {
	rowStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for i, item := range pv.items {
		row := i + 1

		marker := fmt.Sprintf("%d", i+1)
		titleStyle := rowStyle
		if i == pv.current {
			marker = "▶"
			titleStyle = rowStyle.Foreground(tcell.ColorLightGreen)
		}

		length := "--:--"
		if d, ok := pv.durations[i]; ok {
			length = FormatDuration(d)
		}

		pv.table.SetCell(row, 0,
			tview.NewTableCell(marker).
				SetStyle(rowStyle.Foreground(tcell.ColorLightGreen)).
				SetAlign(tview.AlignRight))

		pv.table.SetCell(row, 1,
			tview.NewTableCell(item.Title).
				SetStyle(titleStyle).
				SetExpansion(1))

		pv.table.SetCell(row, 2,
			tview.NewTableCell(item.Kind.String()).
				SetStyle(rowStyle.Foreground(tcell.ColorGray)))

		pv.table.SetCell(row, 3,
			tview.NewTableCell(length).
				SetStyle(rowStyle.Foreground(tcell.ColorGray)).
				SetAlign(tview.AlignRight))
	}
}
