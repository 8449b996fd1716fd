package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// ParticipantStoreForAdmin defines the store interface needed by the admin
// delete and clear operations.
type ParticipantStoreForAdmin interface {
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// DeleteParticipantInput carries input for the orchestrator.
type DeleteParticipantInput struct {
	ID string
}

// DeleteParticipantDeps holds dependencies for DeleteParticipant.
type DeleteParticipantDeps struct {
	ParticipantStore ParticipantStoreForAdmin
}

// ExecuteDeleteParticipant removes at most one record by id.
// PRE: caller has confirmed the deletion (presentation concern)
// POST: Record is gone; an absent id is a no-op, not an error
func ExecuteDeleteParticipant(ctx context.Context, input DeleteParticipantInput, deps DeleteParticipantDeps) error {
	if input.ID == "" {
		return errors.New("participant id cannot be empty")
	}
	if err := deps.ParticipantStore.Remove(ctx, input.ID); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "participant_deleted", "id", input.ID)
	return nil
}

// ExecuteClearParticipants removes every record unconditionally. Exposed as
// its own explicit operation, never a side effect of anything else.
// PRE: caller has confirmed the clear (presentation concern)
// POST: The collection is empty
func ExecuteClearParticipants(ctx context.Context, deps DeleteParticipantDeps) error {
	if err := deps.ParticipantStore.Clear(ctx); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "participants_cleared")
	return nil
}
