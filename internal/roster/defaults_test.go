package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/matchday-rundown/internal/model"
)

// fakeTemplateStore serves template rows from a map keyed by segment name.
type fakeTemplateStore struct {
	rows map[string][]model.DefaultPosition
	err  error
}

func (f *fakeTemplateStore) ListByName(_ context.Context, name string) ([]model.DefaultPosition, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[name], nil
}

func TestDefaultResolver_exactNameMatch(t *testing.T) {
	store := &fakeTemplateStore{rows: map[string][]model.DefaultPosition{
		"Half-time analysis": {
			{ID: 1, SegmentName: "Half-time analysis", Ord: 1, PositionID: 100},
			{ID: 2, SegmentName: "Half-time analysis", Ord: 2, PositionID: 101},
		},
		GlobalTemplateName: {
			{ID: 9, SegmentName: GlobalTemplateName, Ord: 1, PositionID: 900},
		},
	}}
	r := NewDefaultResolver(store)

	got, err := r.Resolve(context.Background(), "Half-time analysis")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 || got[0].PositionID != 100 || got[1].PositionID != 101 {
		t.Errorf("expected the name-specific template, got %+v", got)
	}
}

func TestDefaultResolver_fallsBackToGlobal(t *testing.T) {
	store := &fakeTemplateStore{rows: map[string][]model.DefaultPosition{
		GlobalTemplateName: {
			{ID: 1, SegmentName: GlobalTemplateName, Ord: 3, PositionID: 300},
			{ID: 2, SegmentName: GlobalTemplateName, Ord: 1, PositionID: 100},
			{ID: 3, SegmentName: GlobalTemplateName, Ord: 2, PositionID: 200},
		},
	}}
	r := NewDefaultResolver(store)

	got, err := r.Resolve(context.Background(), "Q&A")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected the 3 global rows, got %d", len(got))
	}
	if got[0].Ord != 1 || got[1].Ord != 2 || got[2].Ord != 3 {
		t.Errorf("rows should follow stored order, got %+v", got)
	}
}

func TestDefaultResolver_noTemplateIsEmptyNotError(t *testing.T) {
	r := NewDefaultResolver(&fakeTemplateStore{rows: map[string][]model.DefaultPosition{}})
	got, err := r.Resolve(context.Background(), "Sponsor break")
	if err != nil {
		t.Fatalf("missing templates must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %+v", got)
	}
}

func TestDefaultResolver_storeErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	r := NewDefaultResolver(&fakeTemplateStore{err: boom})
	if _, err := r.Resolve(context.Background(), "Pre-show"); !errors.Is(err, boom) {
		t.Errorf("store error must propagate unchanged, got %v", err)
	}
}

func TestOrderTemplate_tieBreakByPositionID(t *testing.T) {
	rows := []model.DefaultPosition{
		{ID: 1, Ord: 1, PositionID: 200},
		{ID: 2, Ord: 1, PositionID: 100},
	}
	got := OrderTemplate(rows)
	if got[0].PositionID != 100 || got[1].PositionID != 200 {
		t.Errorf("equal ord must tie-break by position id, got %+v", got)
	}
	// Input must stay untouched.
	if rows[0].PositionID != 200 {
		t.Error("OrderTemplate must not mutate its input")
	}
}
