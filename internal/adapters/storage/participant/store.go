package participant

import (
	"context"

	domain "techfest/internal/domain/participant"
)

// ParticipantsKey is the provider key holding the serialized collection.
const ParticipantsKey = "participants"

// Store persists the participant collection. The collection is the single
// source of truth and is re-serialized wholesale on every mutation.
type Store interface {
	Load(ctx context.Context) ([]domain.Participant, error)
	SaveAll(ctx context.Context, participants []domain.Participant) error
	Append(ctx context.Context, p domain.Participant) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
