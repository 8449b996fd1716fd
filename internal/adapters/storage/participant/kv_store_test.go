package participant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"techfest/internal/adapters/storage"
	store "techfest/internal/adapters/storage/participant"
	domain "techfest/internal/domain/participant"
)

// memProvider is an in-memory Provider for testing.
type memProvider struct {
	values map[string]string
	setErr error
}

func newMemProvider() *memProvider {
	return &memProvider{values: make(map[string]string)}
}

func (m *memProvider) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memProvider) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memProvider) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func record(id, name, email string) domain.Participant {
	return domain.Participant{
		ID:               id,
		Name:             name,
		Email:            email,
		Phone:            "+6421555000",
		Year:             domain.YearSecond,
		Branch:           "Electronics",
		Event:            "Robotics Workshop",
		Experience:       domain.DefaultExperience,
		RegistrationDate: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// TestLoadEmpty tests that a never-written key loads as an empty collection.
func TestLoadEmpty(t *testing.T) {
	s := store.NewKVStore(newMemProvider())
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d records", len(got))
	}
}

// TestAppendRoundTrip tests that appended records load back in insertion order.
func TestAppendRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewKVStore(newMemProvider())

	first := record("1", "Amy Wu", "amy@example.com")
	second := record("2", "Ben Ito", "ben@example.com")
	if err := s.Append(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Append(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("expected insertion order [1 2], got [%s %s]", got[0].ID, got[1].ID)
	}
	if !got[0].RegistrationDate.Equal(first.RegistrationDate) {
		t.Errorf("expected registration date to survive round trip, got %v", got[0].RegistrationDate)
	}
}

// TestRemove tests removal by id and the absent-id no-op.
func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := store.NewKVStore(newMemProvider())
	if err := s.Append(ctx, record("1", "Amy Wu", "amy@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Remove(ctx, "no-such-id"); err != nil {
		t.Fatalf("expected absent id to be a no-op, got %v", err)
	}
	got, _ := s.Load(ctx)
	if len(got) != 1 {
		t.Fatalf("expected collection unchanged, got %d records", len(got))
	}

	if err := s.Remove(ctx, "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = s.Load(ctx)
	if len(got) != 0 {
		t.Errorf("expected empty collection after removal, got %d", len(got))
	}
}

// TestClear tests that clearing leaves an empty, loadable collection.
func TestClear(t *testing.T) {
	ctx := context.Background()
	s := store.NewKVStore(newMemProvider())
	if err := s.Append(ctx, record("1", "Amy Wu", "amy@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection after clear, got %d", len(got))
	}
}

// TestLoadCorruptPayload tests that unparseable payloads surface as
// CorruptDataError instead of being dropped.
func TestLoadCorruptPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "{{{"},
		{"not an array", `{"id":"1"}`},
		{"record missing id", `[{"name":"Amy Wu","email":"amy@example.com","registrationDate":"2026-03-01T10:00:00Z"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newMemProvider()
			p.values[store.ParticipantsKey] = tt.payload
			s := store.NewKVStore(p)

			_, err := s.Load(context.Background())
			var corrupt *storage.CorruptDataError
			if !errors.As(err, &corrupt) {
				t.Fatalf("expected CorruptDataError, got %v", err)
			}
		})
	}
}

// TestSaveAllPropagatesWriteFailure tests that a failed write is never
// reported as success.
func TestSaveAllPropagatesWriteFailure(t *testing.T) {
	p := newMemProvider()
	p.setErr = &storage.IOError{Op: "set", Key: store.ParticipantsKey, Err: errors.New("disk full")}
	s := store.NewKVStore(p)

	err := s.Append(context.Background(), record("1", "Amy Wu", "amy@example.com"))
	var ioErr *storage.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
}
