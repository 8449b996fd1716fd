package projections

import (
	"context"
	"time"

	domain "techfest/internal/domain/participant"
)

// Statistics carries the dashboard summary numbers.
type Statistics struct {
	Total         int // all registered participants
	Today         int // registered on the current calendar day
	DaysRemaining int // whole days until the deadline, 0 once closed
}

// GetStatisticsDeps holds dependencies for GetStatistics.
type GetStatisticsDeps struct {
	ParticipantStore ParticipantStore
	Deadline         domain.Deadline
	Now              func() time.Time
}

// QueryGetStatistics computes dashboard statistics from the current
// collection and the registration deadline.
// PRE: Deps are wired; Now is non-nil
// POST: Returns totals and days remaining; Today counts the calendar day of Now
func QueryGetStatistics(ctx context.Context, deps GetStatisticsDeps) (Statistics, error) {
	participants, err := deps.ParticipantStore.Load(ctx)
	if err != nil {
		return Statistics{}, err
	}

	now := deps.Now()
	y, m, d := now.Date()
	today := 0
	for _, p := range participants {
		ry, rm, rd := p.RegistrationDate.In(now.Location()).Date()
		if ry == y && rm == m && rd == d {
			today++
		}
	}

	return Statistics{
		Total:         len(participants),
		Today:         today,
		DaysRemaining: deps.Deadline.DaysRemaining(now),
	}, nil
}
