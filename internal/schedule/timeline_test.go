package schedule

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/iliyamo/matchday-rundown/internal/model"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts.UTC()
}

func TestComputeTimeline_anchorInMiddle(t *testing.T) {
	// A(10m), B(15m, anchor), C(5m); B starts at 10:00.
	segs := []model.Segment{
		{ID: 1, Name: "A", Position: 1, DurationMinutes: 10},
		{ID: 2, Name: "B", Position: 2, DurationMinutes: 15, IsTimeAnchor: true},
		{ID: 3, Name: "C", Position: 3, DurationMinutes: 5},
	}
	live := mustTime(t, "2026-03-07T10:00:00Z")

	tl, err := ComputeTimeline(segs, &live)
	if err != nil {
		t.Fatalf("ComputeTimeline: %v", err)
	}
	if len(tl) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(tl))
	}

	want := []struct{ start, end string }{
		{"2026-03-07T09:50:00Z", "2026-03-07T10:00:00Z"},
		{"2026-03-07T10:00:00Z", "2026-03-07T10:15:00Z"},
		{"2026-03-07T10:15:00Z", "2026-03-07T10:20:00Z"},
	}
	for i, w := range want {
		if !tl[i].Start.Equal(mustTime(t, w.start)) {
			t.Errorf("row %d start = %v, want %s", i, tl[i].Start, w.start)
		}
		if !tl[i].End.Equal(mustTime(t, w.end)) {
			t.Errorf("row %d end = %v, want %s", i, tl[i].End, w.end)
		}
	}
	if !tl[1].Anchor {
		t.Error("row 1 should be flagged as the anchor")
	}
	if tl[0].Anchor || tl[2].Anchor {
		t.Error("only the anchor segment may carry the anchor flag")
	}
}

func TestComputeTimeline_deterministic(t *testing.T) {
	segs := []model.Segment{
		{ID: 1, Name: "Pre", Position: 1, DurationMinutes: 25},
		{ID: 2, Name: "Kickoff", Position: 2, DurationMinutes: 45, IsTimeAnchor: true},
		{ID: 3, Name: "Half-time", Position: 3, DurationMinutes: 15},
		{ID: 4, Name: "Second half", Position: 4, DurationMinutes: 45},
	}
	live := mustTime(t, "2026-05-01T18:30:00Z")

	first, err := ComputeTimeline(segs, &live)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := ComputeTimeline(segs, &live)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical timelines")
	}
}

func TestComputeTimeline_unsortedInput(t *testing.T) {
	// Rows are handed over in storage order, not position order.
	segs := []model.Segment{
		{ID: 3, Name: "C", Position: 3, DurationMinutes: 5},
		{ID: 1, Name: "A", Position: 1, DurationMinutes: 10, IsTimeAnchor: true},
		{ID: 2, Name: "B", Position: 2, DurationMinutes: 15},
	}
	live := mustTime(t, "2026-03-07T09:00:00Z")

	tl, err := ComputeTimeline(segs, &live)
	if err != nil {
		t.Fatalf("ComputeTimeline: %v", err)
	}
	if tl[0].SegmentID != 1 || tl[1].SegmentID != 2 || tl[2].SegmentID != 3 {
		t.Errorf("timeline must follow position order, got %v %v %v", tl[0].SegmentID, tl[1].SegmentID, tl[2].SegmentID)
	}
	if !tl[2].End.Equal(mustTime(t, "2026-03-07T09:30:00Z")) {
		t.Errorf("last segment end = %v, want 09:30", tl[2].End)
	}
}

func TestComputeTimeline_emptyProduction(t *testing.T) {
	live := mustTime(t, "2026-03-07T10:00:00Z")
	tl, err := ComputeTimeline(nil, &live)
	if err != nil {
		t.Fatalf("ComputeTimeline: %v", err)
	}
	if len(tl) != 0 {
		t.Errorf("expected empty timeline, got %d rows", len(tl))
	}
}

func TestComputeTimeline_noAnchorFlagged(t *testing.T) {
	segs := []model.Segment{
		{ID: 1, Name: "A", Position: 1, DurationMinutes: 10},
		{ID: 2, Name: "B", Position: 2, DurationMinutes: 15},
	}
	live := mustTime(t, "2026-03-07T10:00:00Z")
	if _, err := ComputeTimeline(segs, &live); !errors.Is(err, ErrNoAnchor) {
		t.Errorf("expected ErrNoAnchor, got %v", err)
	}
}

func TestComputeTimeline_twoAnchorsFlagged(t *testing.T) {
	segs := []model.Segment{
		{ID: 1, Name: "A", Position: 1, DurationMinutes: 10, IsTimeAnchor: true},
		{ID: 2, Name: "B", Position: 2, DurationMinutes: 15, IsTimeAnchor: true},
	}
	live := mustTime(t, "2026-03-07T10:00:00Z")
	if _, err := ComputeTimeline(segs, &live); !errors.Is(err, ErrNoAnchor) {
		t.Errorf("expected ErrNoAnchor for duplicate anchors, got %v", err)
	}
}

func TestComputeTimeline_liveInstantUnset(t *testing.T) {
	segs := []model.Segment{
		{ID: 1, Name: "A", Position: 1, DurationMinutes: 10, IsTimeAnchor: true},
	}
	if _, err := ComputeTimeline(segs, nil); !errors.Is(err, ErrNoAnchor) {
		t.Errorf("expected ErrNoAnchor when live instant is unset, got %v", err)
	}
}

func TestComputeTimeline_zeroDurationCollapses(t *testing.T) {
	segs := []model.Segment{
		{ID: 1, Name: "Bumper", Position: 1, DurationMinutes: 0, IsTimeAnchor: true},
		{ID: 2, Name: "Show", Position: 2, DurationMinutes: 30},
	}
	live := mustTime(t, "2026-03-07T10:00:00Z")
	tl, err := ComputeTimeline(segs, &live)
	if err != nil {
		t.Fatalf("ComputeTimeline: %v", err)
	}
	if !tl[0].Start.Equal(tl[0].End) {
		t.Errorf("zero-duration segment must collapse, got start=%v end=%v", tl[0].Start, tl[0].End)
	}
	if !tl[1].Start.Equal(live) {
		t.Errorf("next segment should start at the anchor instant, got %v", tl[1].Start)
	}
}
