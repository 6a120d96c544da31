package roster

import (
	"reflect"
	"testing"

	"github.com/iliyamo/matchday-rundown/internal/model"
)

func TestEffective_baselineOnly(t *testing.T) {
	baseline := []model.BaselineAssignment{
		{ID: 10, PersonID: 1, PositionID: 100},
		{ID: 11, PersonID: 2, PositionID: 101},
	}
	got := Effective(baseline, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(got))
	}
	for _, e := range got {
		if e.Source != LayerBaseline {
			t.Errorf("binding %v should come from the baseline layer", e)
		}
	}
}

func TestEffective_segmentRowsAreAdditive(t *testing.T) {
	// A segment row for a new position must not suppress baseline
	// bindings for other positions.
	baseline := []model.BaselineAssignment{
		{ID: 10, PersonID: 1, PositionID: 100},
	}
	overrides := []model.SegmentAssignment{
		{ID: 20, PersonID: 2, PositionID: 101},
	}
	got := Effective(baseline, overrides)
	if len(got) != 2 {
		t.Fatalf("expected baseline + segment binding, got %d rows", len(got))
	}
	if got[0].PositionID != 100 || got[0].Source != LayerBaseline {
		t.Errorf("baseline binding missing or mis-tagged: %+v", got[0])
	}
	if got[1].PositionID != 101 || got[1].Source != LayerSegment {
		t.Errorf("segment binding missing or mis-tagged: %+v", got[1])
	}
}

func TestEffective_segmentRowWinsForSamePosition(t *testing.T) {
	baseline := []model.BaselineAssignment{
		{ID: 10, PersonID: 1, PositionID: 100},
		{ID: 11, PersonID: 3, PositionID: 102},
	}
	overrides := []model.SegmentAssignment{
		{ID: 20, PersonID: 2, PositionID: 100},
	}
	got := Effective(baseline, overrides)
	if len(got) != 2 {
		t.Fatalf("expected 2 bindings, got %d: %+v", len(got), got)
	}
	if got[0].PositionID != 100 || got[0].PersonID != 2 || got[0].Source != LayerSegment {
		t.Errorf("position 100 should be staffed by the segment row, got %+v", got[0])
	}
	if got[1].PositionID != 102 || got[1].Source != LayerBaseline {
		t.Errorf("untouched baseline binding should survive, got %+v", got[1])
	}
}

func TestEffective_duplicateSegmentRowsAllReturned(t *testing.T) {
	// The model tolerates two people on the same position in the same
	// segment; the resolver must surface both.
	overrides := []model.SegmentAssignment{
		{ID: 20, PersonID: 2, PositionID: 100},
		{ID: 21, PersonID: 5, PositionID: 100},
	}
	got := Effective(nil, overrides)
	if len(got) != 2 {
		t.Fatalf("expected both duplicate rows, got %d", len(got))
	}
	if got[0].PersonID != 2 || got[1].PersonID != 5 {
		t.Errorf("duplicates should be ordered by person id, got %+v", got)
	}
}

func TestEffective_deterministicOrder(t *testing.T) {
	baseline := []model.BaselineAssignment{
		{ID: 12, PersonID: 9, PositionID: 300},
		{ID: 10, PersonID: 1, PositionID: 100},
	}
	overrides := []model.SegmentAssignment{
		{ID: 21, PersonID: 4, PositionID: 200},
		{ID: 20, PersonID: 2, PositionID: 200},
	}
	first := Effective(baseline, overrides)
	second := Effective(baseline, overrides)
	if !reflect.DeepEqual(first, second) {
		t.Error("resolution must be deterministic")
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].PositionID > first[i].PositionID {
			t.Errorf("result not sorted by position id: %+v", first)
		}
	}
}

func TestEffective_emptyLayers(t *testing.T) {
	got := Effective(nil, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
