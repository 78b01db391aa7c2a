package chart

import (
	"math"
	"strconv"
)

// labelWidth is the column reserved left of the plot for Y tick labels.
const labelWidth = 8

// Plot binds one Y series of a graph.
type Plot struct {
	Y      Series
	Legend string
	Color  Color
	Mark   rune
}

// Overlay is a fixed curve drawn behind the data, such as a reference
// orbit speed line. It never affects auto-ranging.
type Overlay struct {
	X, Y  Series
	Color Color
}

// Graph is one chart: one or two Y series against either the sample index
// or another series, each axis with its own range policy.
type Graph struct {
	Key    string
	Title  string
	XTitle string
	YTitle string

	// X is the abscissa series; nil plots against sample index.
	X     Series
	Plots []Plot

	XAxis Axis
	YAxis Axis

	// Span fixes the width of an index axis to this many samples so the
	// chart fills left to right and then scrolls. Zero fits the data.
	Span int

	Reference *Overlay
}

// NewGraph returns a graph with both axes on auto range.
func NewGraph(key, title string) *Graph {
	return &Graph{
		Key:   key,
		Title: title,
		XAxis: AutoAxis(),
		YAxis: AutoAxis(),
	}
}

// AddPlot appends a Y series. Marks and colours default by position.
func (g *Graph) AddPlot(y Series, legend string) *Graph {
	p := Plot{Y: y, Legend: legend, Color: Yellow, Mark: '*'}
	if len(g.Plots) > 0 {
		p.Color, p.Mark = Cyan, '+'
	}
	g.Plots = append(g.Plots, p)
	return g
}

func (g *Graph) xSeries() Series {
	if g.X != nil {
		return g.X
	}
	if len(g.Plots) == 0 {
		return Values(nil)
	}
	return Index(g.Plots[0].Y)
}

// Ranges resolves both axes against the current data.
func (g *Graph) Ranges() (xlo, xhi, ylo, yhi float64) {
	xa := g.XAxis
	if g.X == nil && g.Span > 0 && xa.Auto {
		xa = FixedAxis(0, float64(g.Span-1))
	}
	xlo, xhi = xa.Resolve(g.xSeries())

	ys := make([]Series, 0, len(g.Plots))
	for _, p := range g.Plots {
		ys = append(ys, p.Y)
	}
	ylo, yhi = g.YAxis.Resolve(ys...)
	return xlo, xhi, ylo, yhi
}

// Draw renders the graph into r: a title row, Y labels on the left, the
// X range and title on the bottom row, and the plot area in between.
func (g *Graph) Draw(c Canvas, r Rect) {
	if r.Empty() {
		return
	}
	Text(c, r, r.X, r.Y, g.Title, White)
	g.drawLegend(c, r)
	if r.W <= labelWidth+2 || r.H < 4 {
		return
	}

	area := Rect{X: r.X + labelWidth, Y: r.Y + 1, W: r.W - labelWidth, H: r.H - 2}
	xlo, xhi, ylo, yhi := g.Ranges()

	// Frame and labels.
	for y := area.Y; y < area.Y+area.H; y++ {
		set(c, r, area.X-1, y, '|', Gray)
	}
	Text(c, r, r.X, area.Y, tick(yhi), White)
	Text(c, r, r.X, area.Y+area.H-1, tick(ylo), White)
	if area.H > 4 && g.YTitle != "" {
		Text(c, r, r.X, area.Y+area.H/2, clip(g.YTitle, labelWidth-1), Green)
	}
	bottom := r.Y + r.H - 1
	Text(c, r, area.X, bottom, tick(xlo), White)
	hiLabel := tick(xhi)
	Text(c, r, area.X+area.W-len(hiLabel), bottom, hiLabel, White)
	if g.XTitle != "" {
		Text(c, r, area.X+(area.W-len(g.XTitle))/2, bottom, g.XTitle, Green)
	}

	if ylo < 0 && yhi > 0 {
		y0 := area.Y + area.H - 1 - scale(0, ylo, yhi, area.H)
		for x := area.X; x < area.X+area.W; x += 2 {
			set(c, area, x, y0, '.', Gray)
		}
	}

	if ref := g.Reference; ref != nil {
		drawSeries(c, area, ref.X, ref.Y, xlo, xhi, ylo, yhi, '.', ref.Color)
	}
	xs := g.xSeries()
	for _, p := range g.Plots {
		drawSeries(c, area, xs, p.Y, xlo, xhi, ylo, yhi, p.Mark, p.Color)
	}
}

func (g *Graph) drawLegend(c Canvas, r Rect) {
	if len(g.Plots) < 2 {
		return
	}
	x := r.X + r.W
	for i := len(g.Plots) - 1; i >= 0; i-- {
		p := g.Plots[i]
		entry := string(p.Mark) + p.Legend
		x -= len(entry) + 1
		if x <= r.X+len(g.Title) {
			return
		}
		Text(c, r, x, r.Y, entry, p.Color)
	}
}

func drawSeries(c Canvas, area Rect, xs, ys Series, xlo, xhi, ylo, yhi float64, mark rune, col Color) {
	if xs == nil || ys == nil {
		return
	}
	n := min(xs.Len(), ys.Len())
	havePrev := false
	var px, py int
	for i := 0; i < n; i++ {
		xv, yv := xs.At(i), ys.At(i)
		if math.IsNaN(xv) || math.IsNaN(yv) || math.IsInf(xv, 0) || math.IsInf(yv, 0) {
			havePrev = false
			continue
		}
		x := area.X + scale(xv, xlo, xhi, area.W)
		y := area.Y + area.H - 1 - scale(yv, ylo, yhi, area.H)
		if havePrev {
			line(c, area, px, py, x, y, mark, col)
		} else {
			set(c, area, x, y, mark, col)
		}
		px, py, havePrev = x, y, true
	}
}

// scale maps v in [lo, hi] onto cells 0..n-1. Values far outside the range
// are clamped so off-scale lines stay short.
func scale(v, lo, hi float64, n int) int {
	if n <= 1 || hi <= lo {
		return 0
	}
	f := (v - lo) / (hi - lo)
	f = math.Max(-1, math.Min(2, f))
	return int(math.Round(f * float64(n-1)))
}

func tick(v float64) string {
	return clip(strconv.FormatFloat(v, 'g', 4, 64), labelWidth-1)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
