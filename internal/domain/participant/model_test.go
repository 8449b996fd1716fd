package participant_test

import (
	"testing"
	"time"

	"techfest/internal/domain/participant"
)

func validCandidate() participant.Participant {
	return participant.Participant{
		Name:   "Priya Sharma",
		Email:  "priya@example.com",
		Phone:  "+64 21 555 0199",
		Year:   participant.YearThird,
		Branch: "Computer Science",
		Event:  "Hackathon",
	}
}

// TestValidateFields tests per-field candidate validation.
func TestValidateFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*participant.Participant)
		wantField string
	}{
		{
			name:   "valid candidate",
			mutate: func(p *participant.Participant) {},
		},
		{
			name:      "missing name",
			mutate:    func(p *participant.Participant) { p.Name = "  " },
			wantField: "name",
		},
		{
			name:      "one character name",
			mutate:    func(p *participant.Participant) { p.Name = "A" },
			wantField: "name",
		},
		{
			name:      "missing email",
			mutate:    func(p *participant.Participant) { p.Email = "" },
			wantField: "email",
		},
		{
			name:      "email without domain",
			mutate:    func(p *participant.Participant) { p.Email = "priya@" },
			wantField: "email",
		},
		{
			name:      "email without tld",
			mutate:    func(p *participant.Participant) { p.Email = "priya@example" },
			wantField: "email",
		},
		{
			name:      "phone with letters",
			mutate:    func(p *participant.Participant) { p.Phone = "021-555" },
			wantField: "phone",
		},
		{
			name:      "phone with leading zero",
			mutate:    func(p *participant.Participant) { p.Phone = "0215550199" },
			wantField: "phone",
		},
		{
			name:      "phone too long",
			mutate:    func(p *participant.Participant) { p.Phone = "12345678901234567" },
			wantField: "phone",
		},
		{
			name:      "missing year",
			mutate:    func(p *participant.Participant) { p.Year = "" },
			wantField: "year",
		},
		{
			name:      "unknown year",
			mutate:    func(p *participant.Participant) { p.Year = "5th Year" },
			wantField: "year",
		},
		{
			name:      "missing branch",
			mutate:    func(p *participant.Participant) { p.Branch = "" },
			wantField: "branch",
		},
		{
			name:      "missing event",
			mutate:    func(p *participant.Participant) { p.Event = "" },
			wantField: "event",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCandidate()
			tt.mutate(&p)
			errs := p.ValidateFields()
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("expected error on field %q, got none", tt.wantField)
			}
			if _, ok := errs.ByField(tt.wantField); !ok {
				t.Errorf("expected error on field %q, got %v", tt.wantField, errs)
			}
		})
	}
}

// TestValidateFieldsCollectsAll tests that every violation is reported at once.
func TestValidateFieldsCollectsAll(t *testing.T) {
	p := participant.Participant{}
	errs := p.ValidateFields()
	for _, field := range []string{"name", "email", "phone", "year", "branch", "event"} {
		if _, ok := errs.ByField(field); !ok {
			t.Errorf("expected error on field %q, got %v", field, errs)
		}
	}
	if len(errs) != 6 {
		t.Errorf("expected 6 field errors, got %d", len(errs))
	}
}

// TestPhoneInternalWhitespace tests that spaces inside a phone number are
// stripped before shape matching.
func TestPhoneInternalWhitespace(t *testing.T) {
	p := validCandidate()
	p.Phone = "+64 21 555 0199"
	if errs := p.ValidateFields(); len(errs) != 0 {
		t.Fatalf("expected spaced phone number to pass, got %v", errs)
	}
}

// TestYearRank tests rank ordering of academic years.
func TestYearRank(t *testing.T) {
	if participant.YearRank(participant.YearFirst) >= participant.YearRank(participant.YearGraduate) {
		t.Error("expected 1st Year to rank before Graduate")
	}
	if participant.YearRank("Unknown") != len(participant.Years) {
		t.Errorf("expected unknown year to rank last, got %d", participant.YearRank("Unknown"))
	}
}

// TestValidateStoredShape tests shape checks on persisted records.
func TestValidateStoredShape(t *testing.T) {
	good := validCandidate()
	good.ID = "1700000000000"
	good.RegistrationDate = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*participant.Participant)
	}{
		{"empty id", func(p *participant.Participant) { p.ID = "" }},
		{"empty name", func(p *participant.Participant) { p.Name = "" }},
		{"malformed email", func(p *participant.Participant) { p.Email = "nope" }},
		{"zero registration date", func(p *participant.Participant) { p.RegistrationDate = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := good
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected shape error, got nil")
			}
		})
	}
}
