package participant

import (
	"context"
	"encoding/json"
	"fmt"

	"techfest/internal/adapters/storage"
	domain "techfest/internal/domain/participant"
)

// KVStore implements Store over a storage.Provider. Mutations follow
// load-mutate-saveAll with no partial-write recovery; the execution model
// assumes a single synchronous caller, so the last writer wins.
type KVStore struct {
	provider storage.Provider
}

// NewKVStore creates a Store backed by the given provider.
func NewKVStore(provider storage.Provider) *KVStore {
	return &KVStore{provider: provider}
}

// Load reads the whole collection.
// PRE: provider is reachable
// POST: Returns the persisted sequence in insertion order, empty when the
// key has never been written; a payload that fails to parse into valid
// records surfaces as *storage.CorruptDataError, never silently dropped
func (s *KVStore) Load(ctx context.Context) ([]domain.Participant, error) {
	raw, ok, err := s.provider.Get(ctx, ParticipantsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Participant{}, nil
	}

	var participants []domain.Participant
	if err := json.Unmarshal([]byte(raw), &participants); err != nil {
		return nil, &storage.CorruptDataError{
			Key:    ParticipantsKey,
			Reason: "payload is not a participant array",
			Err:    err,
		}
	}
	for i := range participants {
		if err := participants[i].Validate(); err != nil {
			return nil, &storage.CorruptDataError{
				Key:    ParticipantsKey,
				Reason: fmt.Sprintf("record %d is malformed: %v", i, err),
				Err:    err,
			}
		}
	}
	if participants == nil {
		participants = []domain.Participant{}
	}
	return participants, nil
}

// SaveAll re-serializes and persists the entire collection.
// PRE: participants is the full intended collection
// POST: Provider holds exactly this sequence
func (s *KVStore) SaveAll(ctx context.Context, participants []domain.Participant) error {
	if participants == nil {
		participants = []domain.Participant{}
	}
	payload, err := json.Marshal(participants)
	if err != nil {
		return &storage.IOError{Op: "encode", Key: ParticipantsKey, Err: err}
	}
	return s.provider.Set(ctx, ParticipantsKey, string(payload))
}

// Append adds one record to the end of the collection.
// PRE: p has been validated by the caller
// POST: Collection grows by one, insertion order preserved
func (s *KVStore) Append(ctx context.Context, p domain.Participant) error {
	participants, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.SaveAll(ctx, append(participants, p))
}

// Remove deletes at most one record by id.
// PRE: id is non-empty
// POST: Record with the id is gone; an absent id is a no-op, not an error
func (s *KVStore) Remove(ctx context.Context, id string) error {
	participants, err := s.Load(ctx)
	if err != nil {
		return err
	}
	kept := participants[:0]
	for _, p := range participants {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(participants) {
		return nil
	}
	return s.SaveAll(ctx, kept)
}

// Clear removes every record unconditionally.
// POST: Subsequent Load returns an empty collection
func (s *KVStore) Clear(ctx context.Context) error {
	return s.provider.Delete(ctx, ParticipantsKey)
}
