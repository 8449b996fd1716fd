package participant

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Academic year constants, in rank order.
const (
	YearFirst    = "1st Year"
	YearSecond   = "2nd Year"
	YearThird    = "3rd Year"
	YearFourth   = "4th Year"
	YearGraduate = "Graduate"
	YearOther    = "Other"
)

// DefaultExperience is stored when the candidate leaves the field blank.
const DefaultExperience = "Not specified"

// Years lists the allowed academic years in sort-rank order.
var Years = []string{YearFirst, YearSecond, YearThird, YearFourth, YearGraduate, YearOther}

// Domain errors
var (
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrRegistrationClosed = errors.New("registration is closed")
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

// Participant holds one registrant's record. Records are immutable once
// created; changes happen by full replacement or deletion.
type Participant struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Year             string    `json:"year"`
	Branch           string    `json:"branch"`
	Event            string    `json:"event"`
	Experience       string    `json:"experience"`
	Comments         string    `json:"comments,omitempty"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// FieldError names one offending form field and a human-readable reason.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every field violation so a caller can display
// them all at once.
type ValidationError []FieldError

// Error implements the error interface.
// PRE: len(v) > 0
// POST: Returns a semicolon-joined summary of all field errors
func (v ValidationError) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ByField returns the reason recorded for the given field, if any.
func (v ValidationError) ByField(field string) (string, bool) {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Reason, true
		}
	}
	return "", false
}

// YearRank returns the sort rank of an academic year.
// PRE: none
// POST: Returns index in Years, or len(Years) for unknown values
func YearRank(year string) int {
	for i, y := range Years {
		if y == year {
			return i
		}
	}
	return len(Years)
}

// ValidFields checks candidate form fields before a record is created.
// All required fields are checked, not short-circuited, so every violation
// is reported in one pass.
// PRE: fields come from user input, untrimmed
// POST: Returns nil when all fields pass, otherwise one FieldError per violation
// INVARIANT: Name >= 2 chars after trim, email/phone match their shapes, year is enumerated
func (p *Participant) ValidateFields() ValidationError {
	var errs ValidationError

	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		errs = append(errs, FieldError{Field: "name", Reason: "Full Name is required"})
	case len(name) < 2:
		errs = append(errs, FieldError{Field: "name", Reason: "Name must be at least 2 characters long"})
	}

	email := strings.TrimSpace(p.Email)
	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Reason: "Email Address is required"})
	case !emailPattern.MatchString(email):
		errs = append(errs, FieldError{Field: "email", Reason: "Please enter a valid email address"})
	}

	phone := strings.TrimSpace(p.Phone)
	switch {
	case phone == "":
		errs = append(errs, FieldError{Field: "phone", Reason: "Phone Number is required"})
	case !phonePattern.MatchString(stripSpaces(phone)):
		errs = append(errs, FieldError{Field: "phone", Reason: "Please enter a valid phone number"})
	}

	year := strings.TrimSpace(p.Year)
	switch {
	case year == "":
		errs = append(errs, FieldError{Field: "year", Reason: "Academic Year is required"})
	case YearRank(year) == len(Years):
		errs = append(errs, FieldError{Field: "year", Reason: "Please select a valid academic year"})
	}

	if strings.TrimSpace(p.Branch) == "" {
		errs = append(errs, FieldError{Field: "branch", Reason: "Branch/Department is required"})
	}
	if strings.TrimSpace(p.Event) == "" {
		errs = append(errs, FieldError{Field: "event", Reason: "Event Selection is required"})
	}

	return errs
}

// Validate checks that a stored record has a plausible shape. Used when
// loading persisted data, where a malformed record means corruption rather
// than user error.
// PRE: record was decoded from the persistence provider
// POST: Returns error naming the first malformed field, nil otherwise
func (p *Participant) Validate() error {
	if p.ID == "" {
		return errors.New("participant id is empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("participant name is empty")
	}
	if !strings.Contains(p.Email, "@") {
		return errors.New("participant email is malformed")
	}
	if p.RegistrationDate.IsZero() {
		return errors.New("participant registration date is unset")
	}
	return nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}
