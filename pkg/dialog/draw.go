package dialog

import (
	"fmt"

	"flightrec/pkg/chart"
)

// Draw paints the control rows, the graph list when there is room for it,
// and the graph stack.
func (d *Dialog) Draw(c chart.Canvas, r chart.Rect) {
	if r.Empty() {
		return
	}
	button := "[Start]"
	if d.Recording() {
		button = "[Stop]"
	}
	chart.Text(c, r, r.X, r.Y, Title, chart.White)
	chart.Text(c, r, r.X+len(Title)+2, r.Y, button, chart.Green)

	target := "none"
	if t, ok := d.rec.Target(); ok {
		target = t.Name
	}
	status := fmt.Sprintf("Vessel: %s  Target: %s  Rate: %s/s  Log: %s",
		d.rec.Vessel(), target, RatePresets[d.rate], d.rec.LogPath())
	chart.Text(c, r, r.X, r.Y+1, status, chart.Yellow)

	body := chart.Rect{X: r.X, Y: r.Y + 2, W: r.W, H: r.H - 2}
	if body.W >= listWidth*3 {
		d.drawList(c, chart.Rect{X: body.X, Y: body.Y, W: listWidth, H: body.H})
		body.X += listWidth
		body.W -= listWidth
	}
	if d.stack.Len() == 0 {
		chart.Text(c, body, body.X+1, body.Y+1, "No graphs selected (G to add)", chart.Gray)
		return
	}
	d.stack.Draw(c, body)
}

func (d *Dialog) drawList(c chart.Canvas, r chart.Rect) {
	for k := Kind(0); k < NumKinds && int(k) < r.H; k++ {
		mark, col := "[ ]", chart.Gray
		if d.Selected(k) {
			mark, col = "[x]", chart.White
		}
		chart.Text(c, r, r.X, r.Y+int(k), fmt.Sprintf("%s %2d %s", mark, int(k), k.Title()), col)
	}
}
