package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"flightrec/pkg/chart"
	"flightrec/pkg/samples"
)

// Kind selects one of the graphs the dialog offers.
type Kind int

// Graph kinds in list order.
const (
	KindSample Kind = iota
	KindSimTime
	KindAltitude
	KindPitch
	KindRoll
	KindYaw
	KindVelocity
	KindAcceleration
	KindPosition
	KindHeading
	KindRange
	KindAOA
	KindMach
	KindTemperature
	KindPressure
	KindDensity
	KindFuelMass
	KindFuelRate
	KindLiftDrag
	KindLiftToDrag
	KindMass
	KindGLoad

	NumKinds
)

type kindInfo struct {
	key    string
	title  string
	ytitle string
	plots  []samples.Channel
	legend []string
}

var kindTable = [NumKinds]kindInfo{
	KindSample:       {"sample", "Sample index", "#", nil, nil},
	KindSimTime:      {"simt", "Simulation time", "s", []samples.Channel{samples.SimTime}, nil},
	KindAltitude:     {"alt", "Altitude", "km", []samples.Channel{samples.Altitude}, nil},
	KindPitch:        {"pitch", "Pitch", "deg", []samples.Channel{samples.Pitch}, nil},
	KindRoll:         {"roll", "Roll", "deg", []samples.Channel{samples.Roll}, nil},
	KindYaw:          {"yaw", "Yaw", "deg", []samples.Channel{samples.Yaw}, nil},
	KindVelocity:     {"vel", "Velocity", "m/s", []samples.Channel{samples.VRad, samples.VTan}, []string{"rad", "tan"}},
	KindAcceleration: {"acc", "Acceleration", "m/s^2", []samples.Channel{samples.ARad, samples.ATan}, []string{"rad", "tan"}},
	KindPosition:     {"pos", "Longitude/Latitude", "deg", []samples.Channel{samples.Lon, samples.Lat}, []string{"lng", "lat"}},
	KindHeading:      {"hdg", "Heading", "deg", []samples.Channel{samples.Heading}, nil},
	KindRange:        {"range", "Range to target", "km", []samples.Channel{samples.Range}, nil},
	KindAOA:          {"aoa", "Angle of attack/Slip", "deg", []samples.Channel{samples.AOA, samples.Yaw}, []string{"aoa", "slip"}},
	KindMach:         {"mach", "Mach number", "", []samples.Channel{samples.Mach}, nil},
	KindTemperature:  {"temp", "Temperature", "K", []samples.Channel{samples.AtmTemp}, nil},
	KindPressure:     {"pres", "Pressure", "Pa", []samples.Channel{samples.AtmPressure, samples.DynPressure}, []string{"static", "dyn"}},
	KindDensity:      {"rho", "Density", "kg/m^3", []samples.Channel{samples.AtmDensity}, nil},
	KindFuelMass:     {"fuel", "Fuel mass", "kg", []samples.Channel{samples.FuelMass}, nil},
	KindFuelRate:     {"flow", "Fuel rate", "kg/s", []samples.Channel{samples.FuelRate}, nil},
	KindLiftDrag:     {"liftdrag", "Lift/Drag", "kN", []samples.Channel{samples.Lift, samples.Drag}, []string{"lift", "drag"}},
	KindLiftToDrag:   {"ld", "L/D ratio", "", nil, nil},
	KindMass:         {"mass", "Mass", "kg", []samples.Channel{samples.Mass}, nil},
	KindGLoad:        {"g", "Acceleration (G)", "G", []samples.Channel{samples.GLoad}, nil},
}

// Valid reports whether k names a graph.
func (k Kind) Valid() bool { return k >= 0 && k < NumKinds }

// Key is the short name used when persisting the open graphs.
func (k Kind) Key() string {
	if !k.Valid() {
		return ""
	}
	return kindTable[k].key
}

// Title is the list entry and graph heading.
func (k Kind) Title() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindTable[k].title
}

func (k Kind) String() string { return k.Title() }

// Plots returns how many series the graph draws.
func (k Kind) Plots() int {
	if !k.Valid() {
		return 0
	}
	if n := len(kindTable[k].plots); n > 0 {
		return n
	}
	return 1
}

// KindByKey looks a kind up by its key.
func KindByKey(key string) (Kind, bool) {
	for k := Kind(0); k < NumKinds; k++ {
		if kindTable[k].key == key {
			return k, true
		}
	}
	return 0, false
}

// ParseKind accepts a list number or a key.
func ParseKind(text string) (Kind, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if n, err := strconv.Atoi(text); err == nil {
		k := Kind(n)
		return k, k.Valid()
	}
	return KindByKey(text)
}

// newGraph binds kind k to the live history in buf.
func newGraph(k Kind, buf *samples.Buffer) *chart.Graph {
	info := kindTable[k]
	g := chart.NewGraph(info.key, info.title)
	g.YTitle = info.ytitle
	g.XTitle = "sample"
	g.Span = buf.Cap()

	switch k {
	case KindSample:
		g.AddPlot(buf.Slots(), "")
	case KindLiftToDrag:
		g.AddPlot(chart.Ratio(buf.Series(samples.Lift), buf.Series(samples.Drag)), "")
	default:
		for i, c := range info.plots {
			legend := ""
			if i < len(info.legend) {
				legend = info.legend[i]
			}
			g.AddPlot(buf.Series(c), legend)
		}
	}
	return g
}
