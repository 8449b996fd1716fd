package projections

import (
	"context"

	domain "techfest/internal/domain/participant"
)

// ParticipantStore interface for participant read queries.
type ParticipantStore interface {
	Load(ctx context.Context) ([]domain.Participant, error)
}
