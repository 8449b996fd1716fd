package projections

import (
	"sort"
	"strings"

	domain "techfest/internal/domain/participant"
)

// Sort key constants for participant list views.
const (
	SortByName   = "name"
	SortByYear   = "year"
	SortByBranch = "branch"
	SortByEvent  = "event"
	SortByDate   = "date"
)

// QueryParams selects, orders, and pages the participant collection. Zero
// values mean "inactive": an empty Search or filter matches everything, an
// empty SortKey preserves insertion order.
type QueryParams struct {
	Search  string // case-insensitive substring over name/email/phone/branch/event
	Branch  string // exact match
	Event   string // exact match
	Year    string // exact match
	SortKey string // one of the SortBy constants
	Dir     string // "asc" (default) or "desc"
	Page    int    // 1-indexed
	PerPage int    // page size, <= 0 disables pagination
}

// QueryResult is the ephemeral, derived view of the collection. TotalCount
// is the post-filter, pre-pagination count.
type QueryResult struct {
	Items      []domain.Participant
	TotalCount int
}

// ApplyQuery builds the filtered, sorted, paginated view. Pure function: the
// input slice is never mutated and the result holds no references shared
// with future mutations of it.
// PRE: participants is the full collection in insertion order
// POST: Items is the page slice, TotalCount the full filtered count
// INVARIANT: sort is stable; records tied on the sort key keep insertion order
func ApplyQuery(participants []domain.Participant, params QueryParams) QueryResult {
	filtered := filter(participants, params)
	sortParticipants(filtered, params.SortKey, params.Dir == "desc")
	return QueryResult{
		Items:      page(filtered, params.Page, params.PerPage),
		TotalCount: len(filtered),
	}
}

func filter(participants []domain.Participant, params QueryParams) []domain.Participant {
	term := strings.ToLower(strings.TrimSpace(params.Search))
	matched := make([]domain.Participant, 0, len(participants))
	for _, p := range participants {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if params.Branch != "" && p.Branch != params.Branch {
			continue
		}
		if params.Event != "" && p.Event != params.Event {
			continue
		}
		if params.Year != "" && p.Year != params.Year {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// matchesSearch reports whether the term appears in any searchable field.
func matchesSearch(p domain.Participant, term string) bool {
	for _, field := range []string{p.Name, p.Email, p.Phone, p.Branch, p.Event} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func sortParticipants(participants []domain.Participant, key string, desc bool) {
	if key == "" {
		return
	}
	less := lessFunc(key)
	sort.SliceStable(participants, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return less(participants[i], participants[j])
	})
}

func lessFunc(key string) func(a, b domain.Participant) bool {
	switch key {
	case SortByYear:
		return func(a, b domain.Participant) bool {
			return domain.YearRank(a.Year) < domain.YearRank(b.Year)
		}
	case SortByBranch:
		return func(a, b domain.Participant) bool {
			return strings.ToLower(a.Branch) < strings.ToLower(b.Branch)
		}
	case SortByEvent:
		return func(a, b domain.Participant) bool {
			return strings.ToLower(a.Event) < strings.ToLower(b.Event)
		}
	case SortByDate:
		return func(a, b domain.Participant) bool {
			return a.RegistrationDate.Before(b.RegistrationDate)
		}
	default:
		return func(a, b domain.Participant) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
}

// page slices out the 1-based page, clipped to bounds.
func page(participants []domain.Participant, pageNum, perPage int) []domain.Participant {
	if perPage <= 0 {
		return participants
	}
	if pageNum < 1 {
		pageNum = 1
	}
	start := (pageNum - 1) * perPage
	if start >= len(participants) {
		return []domain.Participant{}
	}
	end := start + perPage
	if end > len(participants) {
		end = len(participants)
	}
	return participants[start:end]
}
