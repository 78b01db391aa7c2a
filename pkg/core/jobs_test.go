package core

import (
	"context"
	"testing"
	"time"

	"flightrec/pkg/sim"
)

// TestBaseJob_LockUnlock tests the atomic lock behavior.
func TestBaseJob_LockUnlock(t *testing.T) {
	b := NewBaseJob("test")

	if !b.TryLock() {
		t.Fatal("First TryLock should succeed")
	}
	if b.TryLock() {
		t.Error("Second TryLock should fail when already locked")
	}
	b.Unlock()
	if !b.TryLock() {
		t.Error("TryLock should succeed after Unlock")
	}
}

// TestBaseJob_Name tests the Name method.
func TestBaseJob_Name(t *testing.T) {
	tests := []struct {
		name     string
		jobName  string
		wantName string
	}{
		{"Simple name", "TestJob", "TestJob"},
		{"Empty name", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBaseJob(tt.jobName)
			if got := b.Name(); got != tt.wantName {
				t.Errorf("Name() = %v, want %v", got, tt.wantName)
			}
		})
	}
}

// TestTimeJob_ShouldFire tests the wall-clock trigger logic.
func TestTimeJob_ShouldFire(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	runs := 0
	j := NewTimeJob("tick", 30*time.Second, func(context.Context, sim.Snapshot) { runs++ })
	j.now = func() time.Time { return clock }

	snap := &sim.Snapshot{}
	steps := []struct {
		advance time.Duration
		want    bool
	}{
		{0, true}, // first run always fires
		{10 * time.Second, false},
		{20 * time.Second, true},
		{29 * time.Second, false},
	}
	for i, s := range steps {
		clock = clock.Add(s.advance)
		got := j.ShouldFire(snap)
		if got != s.want {
			t.Errorf("step %d: ShouldFire = %v, want %v", i, got, s.want)
		}
		if got {
			j.Run(context.Background(), snap)
		}
	}
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

// TestTimeJob_SkipsWhileRunning checks the re-entry guard.
func TestTimeJob_SkipsWhileRunning(t *testing.T) {
	j := NewTimeJob("busy", time.Second, func(context.Context, sim.Snapshot) {})
	j.TryLock()
	if j.ShouldFire(&sim.Snapshot{}) {
		t.Error("ShouldFire should be false while running")
	}
}

// TestSimTimeJob_FollowsSimClock tests the sim-time trigger logic.
func TestSimTimeJob_FollowsSimClock(t *testing.T) {
	var fired []float64
	j := NewSimTimeJob("trace", 10*time.Second, func(_ context.Context, s sim.Snapshot) {
		fired = append(fired, s.SimTime)
	})

	for _, simt := range []float64{0, 5, 9.99, 10, 15, 20.5, 3} {
		s := &sim.Snapshot{SimTime: simt}
		if j.ShouldFire(s) {
			j.Run(context.Background(), s)
		}
	}
	want := []float64{0, 10, 20.5, 3}
	if len(fired) != len(want) {
		t.Fatalf("fired at %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired[%d] = %v, want %v", i, fired[i], want[i])
		}
	}
}
