package schedule

import (
	"errors"
	"testing"

	"github.com/iliyamo/matchday-rundown/internal/model"
)

func seq(n int) []model.Segment {
	segs := make([]model.Segment, 0, n)
	for i := 1; i <= n; i++ {
		segs = append(segs, model.Segment{ID: uint64(i), Position: i})
	}
	return segs
}

// applyChanges mirrors what the repository does inside its
// transaction so the ordering invariant can be checked end to end.
func applyChanges(segs []model.Segment, changes []PositionChange) []model.Segment {
	out := make([]model.Segment, len(segs))
	copy(out, segs)
	for i := range out {
		for _, ch := range changes {
			if out[i].ID == ch.SegmentID {
				out[i].Position = ch.Position
			}
		}
	}
	return out
}

func TestValidatePositions_ok(t *testing.T) {
	if err := ValidatePositions(seq(5)); err != nil {
		t.Fatalf("contiguous set should validate, got %v", err)
	}
	if err := ValidatePositions(nil); err != nil {
		t.Fatalf("empty set should validate, got %v", err)
	}
}

func TestValidatePositions_gap(t *testing.T) {
	segs := []model.Segment{{ID: 1, Position: 1}, {ID: 2, Position: 3}}
	var oerr *InvalidOrderingError
	if err := ValidatePositions(segs); !errors.As(err, &oerr) {
		t.Fatalf("expected InvalidOrderingError for a gap, got %v", err)
	}
}

func TestValidatePositions_duplicate(t *testing.T) {
	segs := []model.Segment{{ID: 1, Position: 1}, {ID: 2, Position: 1}}
	var oerr *InvalidOrderingError
	if err := ValidatePositions(segs); !errors.As(err, &oerr) {
		t.Fatalf("expected InvalidOrderingError for a duplicate, got %v", err)
	}
}

func TestPlanMove_down(t *testing.T) {
	segs := seq(4)
	changes, err := PlanMove(segs, 1, 3)
	if err != nil {
		t.Fatalf("PlanMove: %v", err)
	}
	after := applyChanges(segs, changes)
	if err := ValidatePositions(after); err != nil {
		t.Fatalf("invariant broken after move: %v", err)
	}
	want := map[uint64]int{1: 3, 2: 1, 3: 2, 4: 4}
	for _, s := range after {
		if want[s.ID] != s.Position {
			t.Errorf("segment %d at %d, want %d", s.ID, s.Position, want[s.ID])
		}
	}
}

func TestPlanMove_up(t *testing.T) {
	segs := seq(4)
	changes, err := PlanMove(segs, 4, 2)
	if err != nil {
		t.Fatalf("PlanMove: %v", err)
	}
	after := applyChanges(segs, changes)
	if err := ValidatePositions(after); err != nil {
		t.Fatalf("invariant broken after move: %v", err)
	}
	want := map[uint64]int{1: 1, 2: 3, 3: 4, 4: 2}
	for _, s := range after {
		if want[s.ID] != s.Position {
			t.Errorf("segment %d at %d, want %d", s.ID, s.Position, want[s.ID])
		}
	}
}

func TestPlanMove_targetOutOfRange(t *testing.T) {
	segs := seq(3)
	var oerr *InvalidOrderingError
	if _, err := PlanMove(segs, 1, 0); !errors.As(err, &oerr) {
		t.Errorf("position 0 must be rejected, got %v", err)
	}
	if _, err := PlanMove(segs, 1, 4); !errors.As(err, &oerr) {
		t.Errorf("position N+1 must be rejected, got %v", err)
	}
}

func TestPlanMove_samePositionIsNoop(t *testing.T) {
	changes, err := PlanMove(seq(3), 2, 2)
	if err != nil {
		t.Fatalf("PlanMove: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("moving onto the current position should plan nothing, got %v", changes)
	}
}

func TestPlanMove_unknownSegment(t *testing.T) {
	var oerr *InvalidOrderingError
	if _, err := PlanMove(seq(3), 99, 1); !errors.As(err, &oerr) {
		t.Errorf("unknown segment must be rejected, got %v", err)
	}
}

func TestPlanDelete_compaction(t *testing.T) {
	segs := seq(5)
	changes, err := PlanDelete(segs, 2)
	if err != nil {
		t.Fatalf("PlanDelete: %v", err)
	}
	// Drop segment 2 and apply the compaction.
	var remaining []model.Segment
	for _, s := range segs {
		if s.ID != 2 {
			remaining = append(remaining, s)
		}
	}
	after := applyChanges(remaining, changes)
	if err := ValidatePositions(after); err != nil {
		t.Fatalf("invariant broken after delete: %v", err)
	}
	want := map[uint64]int{1: 1, 3: 2, 4: 3, 5: 4}
	for _, s := range after {
		if want[s.ID] != s.Position {
			t.Errorf("segment %d at %d, want %d", s.ID, s.Position, want[s.ID])
		}
	}
}

func TestPlanInsert_append(t *testing.T) {
	changes, pos, err := PlanInsert(seq(3), 0)
	if err != nil {
		t.Fatalf("PlanInsert: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("append should shift nothing, got %v", changes)
	}
	if pos != 4 {
		t.Errorf("append position = %d, want 4", pos)
	}
}

func TestPlanInsert_explicitPosition(t *testing.T) {
	segs := seq(3)
	changes, pos, err := PlanInsert(segs, 2)
	if err != nil {
		t.Fatalf("PlanInsert: %v", err)
	}
	if pos != 2 {
		t.Errorf("insert position = %d, want 2", pos)
	}
	after := applyChanges(segs, changes)
	after = append(after, model.Segment{ID: 99, Position: pos})
	if err := ValidatePositions(after); err != nil {
		t.Fatalf("invariant broken after insert: %v", err)
	}
}

func TestPlanInsert_outOfRange(t *testing.T) {
	var oerr *InvalidOrderingError
	if _, _, err := PlanInsert(seq(3), 5); !errors.As(err, &oerr) {
		t.Errorf("insert past N+1 must be rejected, got %v", err)
	}
}

func TestOrdering_invariantUnderOperationSequence(t *testing.T) {
	segs := seq(6)

	steps := []struct {
		op  string
		seg uint64
		pos int
	}{
		{"move", 1, 6},
		{"move", 3, 1},
		{"delete", 5, 0},
		{"move", 6, 2},
		{"delete", 1, 0},
		{"move", 2, 1},
	}
	for _, st := range steps {
		switch st.op {
		case "move":
			changes, err := PlanMove(segs, st.seg, st.pos)
			if err != nil {
				t.Fatalf("move %d->%d: %v", st.seg, st.pos, err)
			}
			segs = applyChanges(segs, changes)
		case "delete":
			changes, err := PlanDelete(segs, st.seg)
			if err != nil {
				t.Fatalf("delete %d: %v", st.seg, err)
			}
			var remaining []model.Segment
			for _, s := range segs {
				if s.ID != st.seg {
					remaining = append(remaining, s)
				}
			}
			segs = applyChanges(remaining, changes)
		}
		if err := ValidatePositions(segs); err != nil {
			t.Fatalf("invariant broken after %s %d: %v", st.op, st.seg, err)
		}
	}
}
