package participant_test

import (
	"testing"
	"time"

	"techfest/internal/domain/participant"
)

// TestRollingDeadline tests the legacy seven-day window normalization.
func TestRollingDeadline(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	d := participant.RollingDeadline(start)
	want := time.Date(2026, 3, 8, 23, 59, 59, 999*int(time.Millisecond), time.UTC)
	if !d.At().Equal(want) {
		t.Fatalf("expected deadline %v, got %v", want, d.At())
	}
}

// TestDeadlineBoundary tests that closure flips exactly one millisecond past
// the cutoff.
func TestDeadlineBoundary(t *testing.T) {
	cutoff := time.Date(2026, 3, 8, 23, 59, 59, 999*int(time.Millisecond), time.UTC)
	d := participant.NewDeadline(cutoff)

	if d.Closed(cutoff.Add(-time.Millisecond)) {
		t.Error("expected one millisecond before cutoff to be open")
	}
	if d.Closed(cutoff) {
		t.Error("expected the cutoff instant itself to be open")
	}
	if !d.Closed(cutoff.Add(time.Millisecond)) {
		t.Error("expected one millisecond after cutoff to be closed")
	}
}

// TestDaysRemaining tests whole-day rounding of time left.
func TestDaysRemaining(t *testing.T) {
	cutoff := time.Date(2026, 3, 8, 23, 59, 59, 999*int(time.Millisecond), time.UTC)
	d := participant.NewDeadline(cutoff)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"a week out", time.Date(2026, 3, 1, 23, 59, 59, 999*int(time.Millisecond), time.UTC), 7},
		{"partial day rounds up", time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), 1},
		{"after cutoff", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DaysRemaining(tt.now); got != tt.want {
				t.Errorf("expected %d days, got %d", tt.want, got)
			}
		})
	}
}

// TestRemainingFloorsAtZero tests that Remaining never goes negative.
func TestRemainingFloorsAtZero(t *testing.T) {
	d := participant.NewDeadline(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
	if got := d.Remaining(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Errorf("expected zero remaining, got %v", got)
	}
}
