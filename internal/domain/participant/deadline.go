package participant

import "time"

// Deadline is the instant after which registration is closed. It is computed
// once at service construction so every caller sees the same window; an
// instant exactly at the deadline is still open.
type Deadline struct {
	at time.Time
}

// NewDeadline creates a Deadline at a fixed instant, typically an injected
// configuration value (the published close of the event's sign-up window).
func NewDeadline(at time.Time) Deadline {
	return Deadline{at: at}
}

// RollingDeadline computes the legacy window: seven days from now, normalized
// to 23:59:59.999 of that day in now's location.
// PRE: now is the service start time
// POST: Returns a Deadline at end-of-day seven days out
func RollingDeadline(now time.Time) Deadline {
	y, m, d := now.AddDate(0, 0, 7).Date()
	return Deadline{at: time.Date(y, m, d, 23, 59, 59, 999*int(time.Millisecond), now.Location())}
}

// At returns the deadline instant.
func (d Deadline) At() time.Time {
	return d.at
}

// Closed reports whether registration is closed at the given instant.
// INVARIANT: an instant equal to the deadline is still open
func (d Deadline) Closed(now time.Time) bool {
	return now.After(d.at)
}

// Remaining returns the time left until the deadline, floored at zero.
func (d Deadline) Remaining(now time.Time) time.Duration {
	left := d.at.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// DaysRemaining returns the whole days left until the deadline, rounding any
// partial day up, floored at zero.
// PRE: none
// POST: Returns ceil(remaining / 24h), or 0 once closed
func (d Deadline) DaysRemaining(now time.Time) int {
	left := d.Remaining(now)
	if left == 0 {
		return 0
	}
	days := int(left / (24 * time.Hour))
	if left%(24*time.Hour) != 0 {
		days++
	}
	return days
}
