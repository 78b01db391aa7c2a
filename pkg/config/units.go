package config

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration to support extended units (d, w) in YAML.
type Duration time.Duration

// Common durations.
const (
	Day  = 24 * time.Hour
	Week = 7 * Day
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Seconds returns the duration as floating-point seconds.
func (d Duration) Seconds() float64 {
	return time.Duration(d).Seconds()
}

// ParseDuration parses a duration string, supporting d and w on top of the
// units time.ParseDuration knows.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.ContainsAny(s, "dw") {
		return parseExtendedDuration(s)
	}
	return time.ParseDuration(s)
}

var unitMap = map[string]time.Duration{
	"ns": time.Nanosecond,
	"us": time.Microsecond,
	"µs": time.Microsecond,
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  Day,
	"w":  Week,
}

var durationPart = regexp.MustCompile(`([0-9.]+)([a-zµ]+)`)

func parseExtendedDuration(s string) (time.Duration, error) {
	var total time.Duration

	matches := durationPart.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	for _, match := range matches {
		val, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number in duration: %s", match[1])
		}
		base, ok := unitMap[match[2]]
		if !ok {
			return 0, fmt.Errorf("unknown unit: %s", match[2])
		}
		total += time.Duration(val * float64(base))
	}

	return total, nil
}

// Sampling limits. Faster than MaxSampleRate the per-sample file append
// dominates the host step.
const (
	MaxSampleRate     = 100.0 // samples per second
	MinSampleInterval = time.Second / time.Duration(MaxSampleRate)
)

// ErrInvalidRate is returned for sample rates that cannot be parsed or are
// out of range.
var ErrInvalidRate = errors.New("invalid sample rate")

// ParseSampleInterval reads a sample rate typed by the user and returns the
// interval between samples. A bare number or an "hz" suffix is samples per
// second ("10", "10hz"); a value with a time unit is the interval itself
// ("0.5s", "250ms", "1m").
func ParseSampleInterval(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalidRate
	}

	var interval time.Duration
	if num, ok := strings.CutSuffix(s, "hz"); ok || isNumber(s) {
		if !ok {
			num = s
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil || rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidRate, s)
		}
		interval = time.Duration(float64(time.Second) / rate)
	} else {
		d, err := ParseDuration(s)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidRate, s)
		}
		interval = d
	}

	if interval < MinSampleInterval {
		return 0, fmt.Errorf("%w: %q is faster than %g samples per second", ErrInvalidRate, s, MaxSampleRate)
	}
	return interval, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
