package roster

import (
	"errors"
	"testing"

	"github.com/iliyamo/matchday-rundown/internal/model"
)

func TestValidateCopyRequest_rejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		source  uint64
		targets []uint64
	}{
		{"empty target list", 1, nil},
		{"source as target", 1, []uint64{2, 1}},
		{"duplicate targets", 1, []uint64{2, 3, 2}},
		{"zero target id", 1, []uint64{2, 0}},
		{"zero source id", 0, []uint64{2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cerr *InvalidCopyError
			if err := ValidateCopyRequest(tc.source, tc.targets); !errors.As(err, &cerr) {
				t.Errorf("expected InvalidCopyError, got %v", err)
			}
		})
	}
}

func TestValidateCopyRequest_ok(t *testing.T) {
	if err := ValidateCopyRequest(1, []uint64{2, 3, 4}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestParseCopyMode(t *testing.T) {
	if m, err := ParseCopyMode("merge"); err != nil || m != CopyMerge {
		t.Errorf("merge: got %v / %v", m, err)
	}
	if m, err := ParseCopyMode("overwrite"); err != nil || m != CopyOverwrite {
		t.Errorf("overwrite: got %v / %v", m, err)
	}
	var cerr *InvalidCopyError
	if _, err := ParseCopyMode("replace"); !errors.As(err, &cerr) {
		t.Errorf("unknown mode must be rejected, got %v", err)
	}
}

func TestPlanCopy_mergeSkipsExistingPairs(t *testing.T) {
	source := []model.SegmentAssignment{
		{ID: 1, PersonID: 1, PositionID: 100},
		{ID: 2, PersonID: 2, PositionID: 101},
	}
	target := []model.SegmentAssignment{
		{ID: 9, PersonID: 1, PositionID: 100}, // already present
		{ID: 8, PersonID: 7, PositionID: 900}, // unrelated, must survive
	}
	plan := PlanCopy(source, target, CopyMerge)
	if plan.ReplaceAll {
		t.Error("merge must not clear the target")
	}
	if len(plan.Insert) != 1 || plan.Insert[0].PersonID != 2 || plan.Insert[0].PositionID != 101 {
		t.Errorf("expected only the missing pair, got %+v", plan.Insert)
	}
}

func TestPlanCopy_mergeIsIdempotent(t *testing.T) {
	source := []model.SegmentAssignment{
		{ID: 1, PersonID: 1, PositionID: 100},
		{ID: 2, PersonID: 2, PositionID: 101},
	}
	var target []model.SegmentAssignment

	first := PlanCopy(source, target, CopyMerge)
	for _, row := range first.Insert {
		target = append(target, row)
	}
	second := PlanCopy(source, target, CopyMerge)
	if len(second.Insert) != 0 {
		t.Errorf("second merge must plan nothing, got %+v", second.Insert)
	}
}

func TestPlanCopy_mergeDeduplicatesSourcePairs(t *testing.T) {
	// Two identical source rows must not become two inserts, or merge
	// would stop being idempotent.
	source := []model.SegmentAssignment{
		{ID: 1, PersonID: 1, PositionID: 100},
		{ID: 2, PersonID: 1, PositionID: 100},
	}
	plan := PlanCopy(source, nil, CopyMerge)
	if len(plan.Insert) != 1 {
		t.Errorf("expected a single insert for duplicate pairs, got %+v", plan.Insert)
	}
}

func TestPlanCopy_overwriteReplacesFully(t *testing.T) {
	// Target has (X, P1); source has only (Y, P2). After overwrite the
	// target holds exactly {(Y, P2)}.
	source := []model.SegmentAssignment{
		{ID: 1, PersonID: 2, PositionID: 200},
	}
	target := []model.SegmentAssignment{
		{ID: 9, PersonID: 1, PositionID: 100},
	}
	plan := PlanCopy(source, target, CopyOverwrite)
	if !plan.ReplaceAll {
		t.Fatal("overwrite must clear the target first")
	}
	if len(plan.Insert) != 1 || plan.Insert[0].PersonID != 2 || plan.Insert[0].PositionID != 200 {
		t.Errorf("expected exactly the source set, got %+v", plan.Insert)
	}
}

func TestPlanCopy_overwriteKeepsSourceDuplicates(t *testing.T) {
	source := []model.SegmentAssignment{
		{ID: 1, PersonID: 1, PositionID: 100},
		{ID: 2, PersonID: 1, PositionID: 100},
	}
	plan := PlanCopy(source, nil, CopyOverwrite)
	if len(plan.Insert) != 2 {
		t.Errorf("overwrite installs the full source row set, got %+v", plan.Insert)
	}
}
