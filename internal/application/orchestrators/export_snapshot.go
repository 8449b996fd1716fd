package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	domain "techfest/internal/domain/participant"
)

// ParticipantStoreForExport defines the store interface needed by ExportSnapshot.
type ParticipantStoreForExport interface {
	Load(ctx context.Context) ([]domain.Participant, error)
}

// ExportSnapshotInput carries input for the orchestrator.
type ExportSnapshotInput struct {
	EventName string
}

// ExportSnapshotDeps holds dependencies for ExportSnapshot.
type ExportSnapshotDeps struct {
	ParticipantStore ParticipantStoreForExport
	Now              func() time.Time
}

// Snapshot is the downloadable export of the full collection: pretty-printed
// JSON whose parse yields field-for-field identical records.
type Snapshot struct {
	Filename    string
	Payload     []byte
	RecordCount int
}

// ExecuteExportSnapshot serializes the whole collection for download.
// PRE: Deps are wired; Now is non-nil
// POST: Returns the snapshot with filename <event-name>-participants-<ISO-date>.json
func ExecuteExportSnapshot(ctx context.Context, input ExportSnapshotInput, deps ExportSnapshotDeps) (Snapshot, error) {
	participants, err := deps.ParticipantStore.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if participants == nil {
		participants = []domain.Participant{}
	}

	payload, err := json.MarshalIndent(participants, "", "  ")
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}

	name := slugify(input.EventName)
	if name == "" {
		name = "event"
	}
	return Snapshot{
		Filename:    fmt.Sprintf("%s-participants-%s.json", name, deps.Now().Format("2006-01-02")),
		Payload:     payload,
		RecordCount: len(participants),
	}, nil
}

// slugify lowercases the event name and replaces whitespace so it is safe in
// a filename.
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}
