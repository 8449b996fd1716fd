package projections

import (
	"context"
	"reflect"
	"testing"
)

// TestQueryListParticipants tests the full read path: filter, page metadata,
// and filter dropdown options.
func TestQueryListParticipants(t *testing.T) {
	store := &stubStore{participants: fixture()}

	res, err := QueryListParticipants(context.Background(), ListParticipantsQuery{
		Params: QueryParams{Event: "Hackathon", SortKey: SortByName, Page: 1, PerPage: 10},
	}, ListParticipantsDeps{ParticipantStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ids(res.Items); !reflect.DeepEqual(got, []string{"1", "4"}) {
		t.Errorf("expected [1 4], got %v", got)
	}
	if res.TotalCount != 2 {
		t.Errorf("expected TotalCount 2, got %d", res.TotalCount)
	}
	if res.PageInfo.TotalPages != 1 {
		t.Errorf("expected 1 page, got %d", res.PageInfo.TotalPages)
	}

	// Dropdown options come from the whole collection, not the filtered view.
	wantBranches := []string{"Computer Science", "Electronics", "Mechanical"}
	if !reflect.DeepEqual(res.Branches, wantBranches) {
		t.Errorf("expected branches %v, got %v", wantBranches, res.Branches)
	}
	wantEvents := []string{"Hackathon", "Robotics Workshop"}
	if !reflect.DeepEqual(res.Events, wantEvents) {
		t.Errorf("expected events %v, got %v", wantEvents, res.Events)
	}
}

// TestQueryListParticipants_PageClamp tests that PageInfo clamps a page past
// the end while Items stays empty for the requested page.
func TestQueryListParticipants_PageClamp(t *testing.T) {
	store := &stubStore{participants: fixture()}

	res, err := QueryListParticipants(context.Background(), ListParticipantsQuery{
		Params: QueryParams{Page: 7, PerPage: 10},
	}, ListParticipantsDeps{ParticipantStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 0 {
		t.Errorf("expected no items on page 7, got %d", len(res.Items))
	}
	if res.PageInfo.Page != 1 {
		t.Errorf("expected PageInfo clamped to page 1, got %d", res.PageInfo.Page)
	}
}
