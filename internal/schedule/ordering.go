// Package schedule contains the pure planning core of the rundown
// service: ordering plans over a production's segment arena and the
// wall-clock timeline derived from the time anchor.  Nothing in this
// package performs I/O; repositories load the full segment list of a
// production, the functions here compute what must change, and the
// repository applies the result inside a single transaction.
package schedule

import (
    "fmt"
    "sort"

    "github.com/iliyamo/matchday-rundown/internal/model"
)

// PositionChange describes one segment whose position must be
// rewritten when an ordering plan is applied.
type PositionChange struct {
    SegmentID uint64 // segment to update
    Position  int    // new 1-based position
}

// InvalidOrderingError reports a rejected ordering operation: either
// a requested target position outside [1..N], or a loaded segment set
// whose positions are not exactly {1..N}.  The error is returned as a
// value so callers can branch on it in normal operation.
type InvalidOrderingError struct {
    Reason   string // human-readable cause
    Position int    // offending position, when applicable
}

// Error implements the error interface.
func (e *InvalidOrderingError) Error() string {
    if e.Position != 0 {
        return fmt.Sprintf("invalid ordering: %s (position %d)", e.Reason, e.Position)
    }
    return "invalid ordering: " + e.Reason
}

// ValidatePositions checks the core invariant: for N segments the set
// of position values is exactly {1..N}, no gaps, no duplicates.  It
// must hold before any ordering plan is computed; a violation means
// the stored data is corrupt and the operation is aborted rather than
// silently corrected.
func ValidatePositions(segs []model.Segment) error {
    seen := make(map[int]struct{}, len(segs))
    for _, s := range segs {
        if s.Position < 1 || s.Position > len(segs) {
            return &InvalidOrderingError{Reason: "position outside 1..N", Position: s.Position}
        }
        if _, dup := seen[s.Position]; dup {
            return &InvalidOrderingError{Reason: "duplicate position", Position: s.Position}
        }
        seen[s.Position] = struct{}{}
    }
    return nil
}

// sortedByPosition returns a copy of segs ordered by position so the
// caller's slice is never mutated.
func sortedByPosition(segs []model.Segment) []model.Segment {
    out := make([]model.Segment, len(segs))
    copy(out, segs)
    sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
    return out
}

// PlanInsert computes the shifts needed to insert a new segment at
// the given position.  Position 0 (or N+1) means append at the end.
// For an explicit position p in [1..N], every segment at [p..N] moves
// up by one.  The returned int is the position the new segment must
// be created with.
func PlanInsert(segs []model.Segment, at int) ([]PositionChange, int, error) {
    if err := ValidatePositions(segs); err != nil {
        return nil, 0, err
    }
    n := len(segs)
    if at == 0 || at == n+1 {
        return nil, n + 1, nil
    }
    if at < 1 || at > n {
        return nil, 0, &InvalidOrderingError{Reason: "insert position out of range", Position: at}
    }
    var changes []PositionChange
    for _, s := range sortedByPosition(segs) {
        if s.Position >= at {
            changes = append(changes, PositionChange{SegmentID: s.ID, Position: s.Position + 1})
        }
    }
    return changes, at, nil
}

// PlanMove computes the renumbering for relocating one segment to a
// new position.  Moving down (q > p) shifts the segments in (p..q]
// down by one; moving up (q < p) shifts [q..p) up by one.  The plan
// includes the moved segment itself.  A target outside [1..N] is
// rejected; moving a segment onto its current position yields an
// empty plan.
func PlanMove(segs []model.Segment, segmentID uint64, newPos int) ([]PositionChange, error) {
    if err := ValidatePositions(segs); err != nil {
        return nil, err
    }
    n := len(segs)
    if newPos < 1 || newPos > n {
        return nil, &InvalidOrderingError{Reason: "target position out of range", Position: newPos}
    }
    cur := 0
    for _, s := range segs {
        if s.ID == segmentID {
            cur = s.Position
            break
        }
    }
    if cur == 0 {
        return nil, &InvalidOrderingError{Reason: "segment not in production"}
    }
    if cur == newPos {
        return nil, nil
    }
    var changes []PositionChange
    for _, s := range sortedByPosition(segs) {
        switch {
        case s.ID == segmentID:
            changes = append(changes, PositionChange{SegmentID: s.ID, Position: newPos})
        case newPos > cur && s.Position > cur && s.Position <= newPos:
            changes = append(changes, PositionChange{SegmentID: s.ID, Position: s.Position - 1})
        case newPos < cur && s.Position >= newPos && s.Position < cur:
            changes = append(changes, PositionChange{SegmentID: s.ID, Position: s.Position + 1})
        }
    }
    return changes, nil
}

// PlanDelete computes the compaction applied after removing one
// segment: every segment past the removed position slides down by
// one.  The removed segment itself is not part of the plan.
func PlanDelete(segs []model.Segment, segmentID uint64) ([]PositionChange, error) {
    if err := ValidatePositions(segs); err != nil {
        return nil, err
    }
    cur := 0
    for _, s := range segs {
        if s.ID == segmentID {
            cur = s.Position
            break
        }
    }
    if cur == 0 {
        return nil, &InvalidOrderingError{Reason: "segment not in production"}
    }
    var changes []PositionChange
    for _, s := range sortedByPosition(segs) {
        if s.Position > cur {
            changes = append(changes, PositionChange{SegmentID: s.ID, Position: s.Position - 1})
        }
    }
    return changes, nil
}
