// Package mfd is the instrument-panel variant of the recorder: six XY
// graphs on two pages, a paused status page and a key/button table.
package mfd

import (
	"context"
	"fmt"
	"log/slog"

	"flightrec/pkg/chart"
	"flightrec/pkg/config"
	"flightrec/pkg/geo"
	"flightrec/pkg/recorder"
	"flightrec/pkg/samples"
	"flightrec/pkg/sim"
)

// Title is drawn on the first row of every page.
const Title = "Flight Data Recorder"

// Graph indices.
const (
	GraphVtanAlt = iota
	GraphVradAlt
	GraphVertAcc
	GraphAltRange
	GraphVtanRange
	GraphTanAcc

	numGraphs
)

// NumPages is the number of graph pages; each shows three graphs.
const NumPages = 2

const graphsPerPage = numGraphs / NumPages

// MFD renders a recorder as the instrument view.
type MFD struct {
	rec    *recorder.Recorder
	prov   config.Provider
	logger *slog.Logger

	page   int
	graphs [numGraphs]*chart.Graph

	altAxis  chart.Axis
	vradAxis chart.Axis
	vtanAxis chart.Axis

	ref     chart.Overlay
	refBody sim.Body
	refLo   float64
	refHi   float64
}

// New builds the view over rec. prov persists the page and axis ranges; it
// may be nil.
func New(ctx context.Context, rec *recorder.Recorder, prov config.Provider) *MFD {
	m := &MFD{
		rec:      rec,
		prov:     prov,
		logger:   slog.With("component", "mfd"),
		altAxis:  chart.AutoAxis(),
		vradAxis: chart.AutoAxis(),
		vtanAxis: chart.AutoAxis(),
		ref:      chart.Overlay{Color: chart.Gray},
	}
	m.buildGraphs()

	if prov != nil {
		m.page = prov.MFDPage(ctx)
		m.altAxis = m.storedAxis(ctx, config.KeyMFDAltRange)
		m.vradAxis = m.storedAxis(ctx, config.KeyMFDVradRange)
		m.vtanAxis = m.storedAxis(ctx, config.KeyMFDVtanRange)
	}
	return m
}

func (m *MFD) buildGraphs() {
	buf := m.rec.Buffer()
	xy := func(title string, x, y samples.Channel) *chart.Graph {
		g := chart.NewGraph(x.String()+"/"+y.String(), title)
		g.X = buf.Series(x)
		g.XTitle = x.AxisTitle()
		g.YTitle = y.AxisTitle()
		g.AddPlot(buf.Series(y), "")
		return g
	}
	m.graphs[GraphVtanAlt] = xy("Vtan/Alt", samples.VTan, samples.Altitude)
	m.graphs[GraphVradAlt] = xy("Vrad/Alt", samples.VRad, samples.Altitude)
	m.graphs[GraphVertAcc] = xy("Vert acc", samples.SimTime, samples.ARad)
	m.graphs[GraphAltRange] = xy("Alt/Range", samples.Range, samples.Altitude)
	m.graphs[GraphVtanRange] = xy("Vtan/Range", samples.Range, samples.VTan)
	m.graphs[GraphTanAcc] = xy("Tan acc", samples.SimTime, samples.ATan)
	m.graphs[GraphVtanAlt].Reference = &m.ref
}

func (m *MFD) storedAxis(ctx context.Context, key string) chart.Axis {
	a, err := chart.ParseAxis(m.prov.AxisRange(ctx, key))
	if err != nil {
		m.logger.Warn("Ignoring stored axis range", "key", key, "error", err)
		return chart.AutoAxis()
	}
	return a
}

// Page returns the displayed page, 0 or 1.
func (m *MFD) Page() int { return m.page }

// Graph returns one of the six graphs by index.
func (m *MFD) Graph(i int) *chart.Graph {
	if i < 0 || i >= numGraphs {
		return nil
	}
	return m.graphs[i]
}

// Refresh applies the current range policies to the graphs. The altitude
// range is shared by every graph with altitude on an axis.
func (m *MFD) Refresh() {
	buf := m.rec.Buffer()
	lo, hi := m.altAxis.Resolve(buf.Series(samples.Altitude))
	alt := chart.FixedAxis(lo, hi)
	m.graphs[GraphVtanAlt].YAxis = alt
	m.graphs[GraphVradAlt].YAxis = alt
	m.graphs[GraphAltRange].YAxis = alt

	m.graphs[GraphVradAlt].XAxis = m.vradAxis
	m.graphs[GraphVtanAlt].XAxis = m.vtanAxis
	m.graphs[GraphVtanRange].YAxis = m.vtanAxis

	m.updateReference(lo, hi)
}

// updateReference recomputes the circular orbit speed curve over the
// altitude range when the range or the body changed.
func (m *MFD) updateReference(lo, hi float64) {
	body := m.rec.Body()
	if body == m.refBody && lo == m.refLo && hi == m.refHi && m.ref.X != nil {
		return
	}
	alts, speeds := geo.ReferenceCurve(body.Mass, body.Radius, lo, hi, m.rec.Buffer().Cap())
	m.ref.X = chart.Values(speeds)
	m.ref.Y = chart.Values(alts)
	m.refBody, m.refLo, m.refHi = body, lo, hi
}

// Draw paints the current page, or the status page while paused.
func (m *MFD) Draw(c chart.Canvas, r chart.Rect) {
	if r.Empty() {
		return
	}
	chart.Text(c, r, r.X, r.Y, Title, chart.White)
	body := chart.Rect{X: r.X, Y: r.Y + 1, W: r.W, H: r.H - 1}

	if m.rec.Paused() {
		m.drawPaused(c, body)
		return
	}
	chart.Text(c, r, r.X+30, r.Y, fmt.Sprintf("PG%d", m.page), chart.White)

	m.Refresh()
	first := m.page * graphsPerPage
	for i, row := range chart.Split(body, graphsPerPage) {
		m.graphs[first+i].Draw(c, row)
	}
}

func (m *MFD) drawPaused(c chart.Canvas, r chart.Rect) {
	s := m.rec.Settings()
	line := func(y int, x int, text string, col chart.Color) {
		chart.Text(c, r, r.X+x, r.Y+y, text, col)
	}

	target := "TGT BASE: "
	if t, ok := m.rec.Target(); ok {
		target += t.Name
	} else {
		target += " !!  NONE  !!"
	}
	autoInc := "OFF"
	if s.AutoIncrement {
		autoInc = "ON"
	}

	line(1, 0, "Log Dir:", chart.Yellow)
	line(1, 10, s.LogDir, chart.Yellow)
	line(2, 0, "Log File:", chart.Yellow)
	line(2, 10, s.LogFile, chart.Yellow)
	line(4, 0, fmt.Sprintf("Delimiter: '%c'", s.Delimiter), chart.Yellow)
	line(5, 0, "Auto Inc. Filename:", chart.Yellow)
	line(5, 20, autoInc, chart.Yellow)
	line(7, 0, target, chart.Yellow)
	line(11, 7, "DATA ACQUISITION PAUSED", chart.Red)
	line(15, 0, fmt.Sprintf("Rate: %.3f", 1/s.SampleDT), chart.Yellow)
	line(15, 13, "samples/sec", chart.Yellow)
}
