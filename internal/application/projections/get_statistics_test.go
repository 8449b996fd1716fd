package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "techfest/internal/domain/participant"
)

// stubStore implements ParticipantStore for testing.
type stubStore struct {
	participants []domain.Participant
	err          error
}

func (s *stubStore) Load(_ context.Context) ([]domain.Participant, error) {
	return s.participants, s.err
}

// TestQueryGetStatistics tests totals, today count, and days remaining.
func TestQueryGetStatistics(t *testing.T) {
	now := time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC)
	store := &stubStore{participants: []domain.Participant{
		p("1", "Amy Wu", "amy@x.com", "B", "E", domain.YearFirst, 5),
		p("2", "Ben Ito", "ben@x.com", "B", "E", domain.YearFirst, 5),
		p("3", "Carla Reyes", "carla@x.com", "B", "E", domain.YearFirst, 2),
	}}

	stats, err := QueryGetStatistics(context.Background(), GetStatisticsDeps{
		ParticipantStore: store,
		Deadline:         domain.NewDeadline(time.Date(2026, 3, 8, 23, 59, 59, 999*int(time.Millisecond), time.UTC)),
		Now:              func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.Today != 2 {
		t.Errorf("expected 2 registered today, got %d", stats.Today)
	}
	if stats.DaysRemaining != 4 {
		t.Errorf("expected 4 days remaining, got %d", stats.DaysRemaining)
	}
}

// TestQueryGetStatisticsClosed tests the floor at zero days once closed.
func TestQueryGetStatisticsClosed(t *testing.T) {
	stats, err := QueryGetStatistics(context.Background(), GetStatisticsDeps{
		ParticipantStore: &stubStore{},
		Deadline:         domain.NewDeadline(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		Now:              func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.DaysRemaining != 0 {
		t.Errorf("expected 0 days remaining, got %d", stats.DaysRemaining)
	}
}

// TestQueryGetStatisticsLoadError tests that store failures propagate.
func TestQueryGetStatisticsLoadError(t *testing.T) {
	wantErr := errors.New("corrupt")
	_, err := QueryGetStatistics(context.Background(), GetStatisticsDeps{
		ParticipantStore: &stubStore{err: wantErr},
		Deadline:         domain.NewDeadline(time.Now()),
		Now:              time.Now,
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected load error to propagate, got %v", err)
	}
}
