package projections

import (
	"context"
	"sort"

	"techfest/internal/application/listutil"
	domain "techfest/internal/domain/participant"
)

// ListParticipantsQuery carries query parameters.
type ListParticipantsQuery struct {
	Params QueryParams
}

// ListParticipantsDeps holds dependencies for ListParticipants.
type ListParticipantsDeps struct {
	ParticipantStore ParticipantStore
}

// ListParticipantsResult carries the page of records plus everything the
// dashboard needs to render its controls.
type ListParticipantsResult struct {
	Items      []domain.Participant
	TotalCount int
	PageInfo   listutil.PageInfo
	// Branches and Events are the distinct values across the FULL collection,
	// for the filter dropdowns — computed pre-filter so narrowing one filter
	// never hides the others' options.
	Branches []string
	Events   []string
}

// QueryListParticipants loads the collection and builds the requested view.
// PRE: valid query parameters
// POST: Returns the filtered, sorted, paginated projection with page metadata
func QueryListParticipants(ctx context.Context, query ListParticipantsQuery, deps ListParticipantsDeps) (ListParticipantsResult, error) {
	participants, err := deps.ParticipantStore.Load(ctx)
	if err != nil {
		return ListParticipantsResult{}, err
	}

	view := ApplyQuery(participants, query.Params)
	return ListParticipantsResult{
		Items:      view.Items,
		TotalCount: view.TotalCount,
		PageInfo:   listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, view.TotalCount),
		Branches:   distinct(participants, func(p domain.Participant) string { return p.Branch }),
		Events:     distinct(participants, func(p domain.Participant) string { return p.Event }),
	}, nil
}

func distinct(participants []domain.Participant, field func(domain.Participant) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, p := range participants {
		v := field(p)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}
