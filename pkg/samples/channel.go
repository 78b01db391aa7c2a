// Package samples holds the fixed-capacity telemetry history shared by the
// recorder and its graphs.
package samples

// Channel identifies one scalar telemetry series.
type Channel int

// Channels in log-field order.
const (
	SimTime Channel = iota
	Altitude
	Pitch
	Roll
	Yaw
	VRad
	VTan
	ARad
	ATan
	GLoad
	Lon
	Lat
	Heading
	Range
	AOA
	Mach
	Lift
	Drag
	AtmTemp
	AtmPressure
	DynPressure
	AtmDensity
	FuelMass
	FuelRate
	MainThrust
	HoverThrust
	Mass

	NumChannels
)

// ChannelInfo describes a channel for labels and the log header.
type ChannelInfo struct {
	Name   string // short identifier, used in log headers and config keys
	Label  string // axis label
	Unit   string
	Logged bool // written to the per-sample log file
}

var channelTable = [NumChannels]ChannelInfo{
	SimTime:     {"simt", "Time", "s", true},
	Altitude:    {"alt", "Alt", "km", true},
	Pitch:       {"pitch", "Pitch", "deg", true},
	Roll:        {"roll", "Roll", "deg", true},
	Yaw:         {"yaw", "Yaw", "deg", true},
	VRad:        {"vrad", "Vrad", "m/s", true},
	VTan:        {"vtan", "Vtan", "m/s", true},
	ARad:        {"arad", "Vacc", "m/s^2", true},
	ATan:        {"atan", "Tacc", "m/s^2", true},
	GLoad:       {"g", "Acc", "G", true},
	Lon:         {"lon", "Lng", "deg", true},
	Lat:         {"lat", "Lat", "deg", true},
	Heading:     {"hdg", "Hdg", "deg", true},
	Range:       {"range", "RTT", "km", true},
	AOA:         {"aoa", "AOA", "deg", true},
	Mach:        {"mach", "Mach", "", true},
	Lift:        {"lift", "Lift", "kN", true},
	Drag:        {"drag", "Drag", "kN", true},
	AtmTemp:     {"temp", "Temp", "K", true},
	AtmPressure: {"pres", "Pres", "Pa", true},
	DynPressure: {"dynp", "DynP", "Pa", true},
	AtmDensity:  {"rho", "Dens", "kg/m^3", true},
	FuelMass:    {"fuel", "Fuel", "kg", true},
	FuelRate:    {"flow", "Flow", "kg/s", true},
	MainThrust:  {"main", "Main", "%", true},
	HoverThrust: {"hover", "Hover", "%", true},
	Mass:        {"mass", "Mass", "kg", false},
}

// Info returns the table entry for c. Unknown channels get a zero entry.
func (c Channel) Info() ChannelInfo {
	if c < 0 || c >= NumChannels {
		return ChannelInfo{}
	}
	return channelTable[c]
}

func (c Channel) String() string {
	if n := c.Info().Name; n != "" {
		return n
	}
	return "unknown"
}

// AxisTitle formats "Label: unit" as shown on graph axes.
func (c Channel) AxisTitle() string {
	info := c.Info()
	if info.Unit == "" {
		return info.Label
	}
	return info.Label + ": " + info.Unit
}

// LogChannels returns the logged channels in field order.
func LogChannels() []Channel {
	out := make([]Channel, 0, NumChannels)
	for c := Channel(0); c < NumChannels; c++ {
		if channelTable[c].Logged {
			out = append(out, c)
		}
	}
	return out
}

// ChannelByName looks a channel up by its short name.
func ChannelByName(name string) (Channel, bool) {
	for c := Channel(0); c < NumChannels; c++ {
		if channelTable[c].Name == name {
			return c, true
		}
	}
	return 0, false
}

// Frame is one value per channel for a single simulation instant.
type Frame [NumChannels]float32
