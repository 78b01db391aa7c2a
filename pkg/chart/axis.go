package chart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned for unparsable or inverted range input.
var ErrInvalidRange = errors.New("invalid axis range")

// Axis is a range policy: fixed bounds, or auto-scaled to the data on every
// refresh.
type Axis struct {
	Auto     bool
	Min, Max float64
}

// AutoAxis returns an auto-ranging axis.
func AutoAxis() Axis { return Axis{Auto: true} }

// FixedAxis returns an axis pinned to [lo, hi].
func FixedAxis(lo, hi float64) Axis { return Axis{Min: lo, Max: hi} }

// Resolve returns the bounds to draw with. Auto axes cover every valid
// sample of every series; a flat or empty range is padded by 0.5 either side.
func (a Axis) Resolve(series ...Series) (lo, hi float64) {
	if a.Auto {
		lo, hi = FindRange(series...)
	} else {
		lo, hi = a.Min, a.Max
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	return lo, hi
}

// FindRange returns the extrema over all finite samples of the series, or
// (0, 0) when there are none.
func FindRange(series ...Series) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		if s == nil {
			continue
		}
		for i, n := 0, s.Len(); i < n; i++ {
			v := s.At(i)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// ParseAxis reads interactive range input: "a" (or "auto") selects auto
// range, "min max" a fixed range with min < max.
func ParseAxis(s string) (Axis, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Axis{}, ErrInvalidRange
	}
	if s[0] == 'a' || s[0] == 'A' {
		return AutoAxis(), nil
	}
	f := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(f) != 2 {
		return Axis{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	lo, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return Axis{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	hi, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return Axis{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if !(lo < hi) {
		return Axis{}, fmt.Errorf("%w: min %g must be below max %g", ErrInvalidRange, lo, hi)
	}
	return FixedAxis(lo, hi), nil
}

// String renders the axis the way ParseAxis accepts it.
func (a Axis) String() string {
	if a.Auto {
		return "auto"
	}
	return strconv.FormatFloat(a.Min, 'g', -1, 64) + " " + strconv.FormatFloat(a.Max, 'g', -1, 64)
}
