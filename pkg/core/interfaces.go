package core

import (
	"context"
)

// SessionResettable is an interface for components that keep per-flight
// state (sample history, the open recording session) and need to be reset
// when the host starts a new flight.
type SessionResettable interface {
	ResetSession(ctx context.Context)
}
