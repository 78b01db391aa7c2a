// Package tui hosts a recorder view on a tcell terminal screen: the view
// on top, a prompt or key help row and a status row at the bottom.
package tui

import (
	"github.com/gdamore/tcell/v2"

	"flightrec/pkg/chart"
)

var palette = map[chart.Color]tcell.Style{
	chart.White:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
	chart.Yellow: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	chart.Red:    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	chart.Green:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
	chart.Cyan:   tcell.StyleDefault.Foreground(tcell.ColorTeal),
	chart.Gray:   tcell.StyleDefault.Foreground(tcell.ColorGray),
}

// Canvas draws chart cells onto a tcell screen.
type Canvas struct {
	screen tcell.Screen
}

// NewCanvas wraps screen.
func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen}
}

func (c *Canvas) Size() (int, int) { return c.screen.Size() }

func (c *Canvas) Set(x, y int, ch rune, col chart.Color) {
	style, ok := palette[col]
	if !ok {
		style = tcell.StyleDefault
	}
	c.screen.SetContent(x, y, ch, nil, style)
}
