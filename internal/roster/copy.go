package roster

import (
    "fmt"

    "github.com/iliyamo/matchday-rundown/internal/model"
)

// CopyMode selects the conflict policy when copying one segment's
// assignment rows to other segments.
type CopyMode string

const (
    // CopyMerge adds source pairs missing on the target and leaves
    // existing target rows untouched.
    CopyMerge CopyMode = "merge"
    // CopyOverwrite removes all target rows first and installs the
    // full source set.
    CopyOverwrite CopyMode = "overwrite"
)

// ParseCopyMode validates the wire form of a copy mode.
func ParseCopyMode(s string) (CopyMode, error) {
    switch CopyMode(s) {
    case CopyMerge, CopyOverwrite:
        return CopyMode(s), nil
    }
    return "", &InvalidCopyError{Reason: fmt.Sprintf("unknown mode %q", s)}
}

// InvalidCopyError reports a copy request rejected before any write:
// empty target list, duplicate targets, the source listed as its own
// target, or an unknown mode.
type InvalidCopyError struct {
    Reason string
}

// Error implements the error interface.
func (e *InvalidCopyError) Error() string {
    return "invalid copy request: " + e.Reason
}

// ValidateCopyRequest checks the copy input contract.  It must pass
// before any target is written so that a bad request never partially
// applies.
func ValidateCopyRequest(sourceID uint64, targetIDs []uint64) error {
    if sourceID == 0 {
        return &InvalidCopyError{Reason: "source segment id is required"}
    }
    if len(targetIDs) == 0 {
        return &InvalidCopyError{Reason: "target list is empty"}
    }
    seen := make(map[uint64]struct{}, len(targetIDs))
    for _, id := range targetIDs {
        if id == 0 {
            return &InvalidCopyError{Reason: "target segment id is required"}
        }
        if id == sourceID {
            return &InvalidCopyError{Reason: "source segment cannot be a copy target"}
        }
        if _, dup := seen[id]; dup {
            return &InvalidCopyError{Reason: fmt.Sprintf("duplicate target id %d", id)}
        }
        seen[id] = struct{}{}
    }
    return nil
}

// CopyPlan is the per-target outcome of planning a copy: optionally
// clear the target first, then insert the listed (person, position)
// pairs.  SegmentID on the planned rows is left zero; the repository
// stamps the target id when applying the plan.
type CopyPlan struct {
    ReplaceAll bool
    Insert     []model.SegmentAssignment
}

// pair is the dedup key for merge mode.
type pair struct {
    person   uint64
    position uint64
}

// PlanCopy computes the plan for one target segment.
//
// Under merge, every source pair not already present on the target is
// inserted exactly once; repeating the same copy therefore yields the
// same effective set.  Under overwrite, the target is cleared and the
// full source row set is installed, duplicates included, so the
// target mirrors the source exactly.
func PlanCopy(source, target []model.SegmentAssignment, mode CopyMode) CopyPlan {
    switch mode {
    case CopyOverwrite:
        rows := make([]model.SegmentAssignment, 0, len(source))
        for _, s := range source {
            rows = append(rows, model.SegmentAssignment{PersonID: s.PersonID, PositionID: s.PositionID})
        }
        return CopyPlan{ReplaceAll: true, Insert: rows}
    default: // merge
        present := make(map[pair]struct{}, len(target)+len(source))
        for _, t := range target {
            present[pair{t.PersonID, t.PositionID}] = struct{}{}
        }
        var rows []model.SegmentAssignment
        for _, s := range source {
            p := pair{s.PersonID, s.PositionID}
            if _, ok := present[p]; ok {
                continue
            }
            present[p] = struct{}{}
            rows = append(rows, model.SegmentAssignment{PersonID: s.PersonID, PositionID: s.PositionID})
        }
        return CopyPlan{Insert: rows}
    }
}
