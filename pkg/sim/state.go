// Package sim defines the host simulator surface the recorder depends on:
// per-step state snapshots, the reference body, and range-target lookup.
package sim

// State represents the connection and activity state of the simulator.
type State string

const (
	// StateDisconnected indicates no connection to the simulator.
	StateDisconnected State = "disconnected"
	// StateInactive indicates connected but not in active flight (menu/pause).
	StateInactive State = "inactive"
	// StateActive indicates connected and in active flight.
	StateActive State = "active"
)

// Sampling reports whether snapshots taken in this state are worth recording.
func (s State) Sampling() bool {
	return s == StateActive
}
