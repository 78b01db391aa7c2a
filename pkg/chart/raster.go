package chart

import "strings"

// Raster is an in-memory Canvas, used for headless snapshots and tests.
type Raster struct {
	w, h   int
	cells  []rune
	colors []Color
}

// NewRaster returns a blank w×h raster.
func NewRaster(w, h int) *Raster {
	r := &Raster{w: w, h: h, cells: make([]rune, w*h), colors: make([]Color, w*h)}
	r.Clear()
	return r
}

func (r *Raster) Size() (int, int) { return r.w, r.h }

func (r *Raster) Set(x, y int, ch rune, c Color) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	r.cells[y*r.w+x] = ch
	r.colors[y*r.w+x] = c
}

// Clear blanks every cell.
func (r *Raster) Clear() {
	for i := range r.cells {
		r.cells[i] = ' '
		r.colors[i] = White
	}
}

// At returns the rune and colour at (x, y).
func (r *Raster) At(x, y int) (rune, Color) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return 0, White
	}
	return r.cells[y*r.w+x], r.colors[y*r.w+x]
}

// Row returns line y with trailing blanks trimmed.
func (r *Raster) Row(y int) string {
	if y < 0 || y >= r.h {
		return ""
	}
	return strings.TrimRight(string(r.cells[y*r.w:(y+1)*r.w]), " ")
}

// Count returns how many cells hold ch.
func (r *Raster) Count(ch rune) int {
	n := 0
	for _, c := range r.cells {
		if c == ch {
			n++
		}
	}
	return n
}

func (r *Raster) String() string {
	var b strings.Builder
	for y := 0; y < r.h; y++ {
		b.WriteString(r.Row(y))
		b.WriteByte('\n')
	}
	return b.String()
}
