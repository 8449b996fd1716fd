package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"techfest/internal/adapters/email"
	domain "techfest/internal/domain/participant"
)

// ParticipantStoreForRegister defines the store interface needed by RegisterParticipant.
type ParticipantStoreForRegister interface {
	Load(ctx context.Context) ([]domain.Participant, error)
	Append(ctx context.Context, p domain.Participant) error
}

// RegisterParticipantInput carries input for the orchestrator. Fields arrive
// untrimmed, straight from the form.
type RegisterParticipantInput struct {
	Name       string
	Email      string
	Phone      string
	Year       string
	Branch     string
	Event      string
	Experience string
	Comments   string
}

// RegisterParticipantDeps holds dependencies for RegisterParticipant.
type RegisterParticipantDeps struct {
	ParticipantStore ParticipantStoreForRegister
	Deadline         domain.Deadline
	GenerateID       func() string
	Now              func() time.Time

	// Sender is optional; when set, a confirmation email is sent best-effort
	// after the record is persisted. A send failure never fails the
	// registration.
	Sender    email.Sender
	EmailFrom string
	EventName string
}

// TimestampID derives a collection-unique id from the current time, in
// millisecond resolution like the ids already in circulation.
func TimestampID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// ExecuteRegisterParticipant coordinates participant registration.
// Validation order: deadline gate, then every field checked (all violations
// collected), then the duplicate-email scan. Only a fully valid candidate
// reaches the store, so no rollback is needed.
// PRE: Deps are wired; GenerateID and Now are non-nil
// POST: On success the stored record is returned with id and registrationDate assigned
// INVARIANT: Email is unique across the collection, compared case-insensitively
func ExecuteRegisterParticipant(ctx context.Context, input RegisterParticipantInput, deps RegisterParticipantDeps) (domain.Participant, error) {
	now := deps.Now()
	if deps.Deadline.Closed(now) {
		return domain.Participant{}, domain.ErrRegistrationClosed
	}

	candidate := domain.Participant{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Year:       strings.TrimSpace(input.Year),
		Branch:     strings.TrimSpace(input.Branch),
		Event:      strings.TrimSpace(input.Event),
		Experience: strings.TrimSpace(input.Experience),
		Comments:   strings.TrimSpace(input.Comments),
	}
	if errs := candidate.ValidateFields(); len(errs) > 0 {
		return domain.Participant{}, errs
	}
	if candidate.Experience == "" {
		candidate.Experience = domain.DefaultExperience
	}

	existing, err := deps.ParticipantStore.Load(ctx)
	if err != nil {
		return domain.Participant{}, err
	}
	for _, p := range existing {
		if strings.EqualFold(p.Email, candidate.Email) {
			return domain.Participant{}, domain.ErrDuplicateEmail
		}
	}

	candidate.ID = uniqueID(deps.GenerateID, existing)
	candidate.RegistrationDate = now

	if err := deps.ParticipantStore.Append(ctx, candidate); err != nil {
		return domain.Participant{}, err
	}

	slog.Info("registration_event", "event", "participant_registered",
		"id", candidate.ID, "email", candidate.Email, "event_name", candidate.Event)

	sendConfirmation(ctx, candidate, deps)

	return candidate, nil
}

// uniqueID draws ids until one is unused. Millisecond ids can collide when
// two registrations land in the same tick; a numeric suffix keeps the
// collection invariant.
func uniqueID(generate func() string, existing []domain.Participant) string {
	taken := make(map[string]bool, len(existing))
	for _, p := range existing {
		taken[p.ID] = true
	}
	id := generate()
	for n := 1; taken[id]; n++ {
		id = fmt.Sprintf("%s-%d", generate(), n)
	}
	return id
}

// sendConfirmation emails the registrant. Best-effort: failures are logged
// and swallowed since the registration is already persisted.
func sendConfirmation(ctx context.Context, p domain.Participant, deps RegisterParticipantDeps) {
	if deps.Sender == nil {
		return
	}
	eventName := deps.EventName
	if eventName == "" {
		eventName = p.Event
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your registration for <strong>%s</strong> (%s) is confirmed.</p><p>Registration ID: %s</p>",
		html.EscapeString(p.Name), html.EscapeString(eventName), html.EscapeString(p.Event), p.ID)

	_, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{p.Email},
		From:    deps.EmailFrom,
		Subject: fmt.Sprintf("You're registered for %s", eventName),
		HTML:    body,
	})
	if err != nil {
		slog.Warn("confirmation_email_failed", "error", err, "id", p.ID)
	}
}
