package kinematics

import "math"

// G0 is standard gravity in m/s².
const G0 = 9.80665

// GInput carries everything a G-load strategy may look at for one sample.
type GInput struct {
	ARad, ATan float64 // backward-difference accelerations, m/s²
	Speed      float64 // current |V|, m/s
	PrevSpeed  float64 // |V| of the previous sample, 0 if none
	DT         float64 // sampling interval, s
}

// GLoad converts one sample's motion into multiples of standard gravity.
//
// The two recorder variants compute G differently and the results are not
// interchangeable, so each is kept as its own strategy.
type GLoad interface {
	Name() string
	Load(in GInput) float64
}

// NetComponentG is the Flight Data dialog formula: the magnitude of the sum
// of radial and tangential acceleration, in g.
type NetComponentG struct{}

func (NetComponentG) Name() string { return "net-component" }

func (NetComponentG) Load(in GInput) float64 {
	return finite(math.Abs(in.ARad+in.ATan) / G0)
}

// SpeedDeltaG is the MFD formula: the unsigned rate of change of the speed
// between consecutive samples, in g. It reads 0 until a previous speed exists.
type SpeedDeltaG struct{}

func (SpeedDeltaG) Name() string { return "speed-delta" }

func (SpeedDeltaG) Load(in GInput) float64 {
	if in.PrevSpeed <= 0 || in.DT <= 0 {
		return 0
	}
	return finite(math.Abs((in.Speed-in.PrevSpeed)/in.DT) / G0)
}

// GLoadByName returns the strategy registered under name.
func GLoadByName(name string) (GLoad, bool) {
	switch name {
	case NetComponentG{}.Name():
		return NetComponentG{}, true
	case SpeedDeltaG{}.Name():
		return SpeedDeltaG{}, true
	}
	return nil, false
}
