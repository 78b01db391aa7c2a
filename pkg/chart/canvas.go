// Package chart draws scrolling strip charts and XY plots of telemetry
// series onto a character-cell canvas.
package chart

// Color is a logical palette entry; backends map it to their own colours.
type Color int

const (
	White Color = iota
	Yellow
	Red
	Green
	Cyan
	Gray
)

// Canvas is the minimal drawing surface a backend has to provide. Cells
// outside Size are ignored by the chart code before reaching Set.
type Canvas interface {
	Size() (w, h int)
	Set(x, y int, ch rune, c Color)
}

// Rect is a cell region; X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r has no drawable cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Full returns the whole canvas as a Rect.
func Full(c Canvas) Rect {
	w, h := c.Size()
	return Rect{W: w, H: h}
}

// set plots one cell, clipped to both clip and the canvas.
func set(c Canvas, clip Rect, x, y int, ch rune, col Color) {
	if !clip.contains(x, y) {
		return
	}
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.Set(x, y, ch, col)
}

// Text writes s starting at (x, y), clipped to clip.
func Text(c Canvas, clip Rect, x, y int, s string, col Color) {
	for _, ch := range s {
		set(c, clip, x, y, ch, col)
		x++
	}
}

// line draws a Bresenham line from (x0, y0) to (x1, y1).
func line(c Canvas, clip Rect, x0, y0, x1, y1 int, ch rune, col Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		set(c, clip, x0, y0, ch, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
