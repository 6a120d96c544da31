package schedule

import (
    "errors"
    "time"

    "github.com/iliyamo/matchday-rundown/internal/model"
)

// ErrNoAnchor is returned when a timeline is requested but the
// production has no usable time anchor: no segment is flagged, more
// than one segment is flagged, or the flagged segment has no fixed
// live instant yet.  Callers are expected to branch on this and
// prompt for anchor configuration; it is an expected state, not a
// fault.
var ErrNoAnchor = errors.New("no time anchor configured")

// SegmentTiming is one row of a computed timeline: a segment together
// with the wall-clock start and end instants derived from the anchor.
// Zero-duration segments collapse to Start == End.
type SegmentTiming struct {
    SegmentID uint64    `json:"segment_id"`
    Name      string    `json:"name"`
    Position  int       `json:"position"`
    Anchor    bool      `json:"anchor"`
    Start     time.Time `json:"start"`
    End       time.Time `json:"end"`
}

// ComputeTimeline derives start/end instants for every segment of a
// production from the single anchor segment and its fixed start
// instant.  Durations propagate forward from the anchor (each segment
// starts when the previous one ends) and backward before it (each
// segment ends when the next one starts).  The function is pure and
// deterministic: identical inputs always yield identical output.
//
// An empty segment list yields an empty timeline and no error.  When
// the anchor is missing, duplicated, or liveStartAt is nil, the
// function returns ErrNoAnchor rather than guessing a reference
// segment.
func ComputeTimeline(segs []model.Segment, liveStartAt *time.Time) ([]SegmentTiming, error) {
    if len(segs) == 0 {
        return []SegmentTiming{}, nil
    }

    ordered := sortedByPosition(segs)

    anchorIdx := -1
    for i, s := range ordered {
        if !s.IsTimeAnchor {
            continue
        }
        if anchorIdx != -1 {
            return nil, ErrNoAnchor
        }
        anchorIdx = i
    }
    if anchorIdx == -1 || liveStartAt == nil {
        return nil, ErrNoAnchor
    }

    out := make([]SegmentTiming, len(ordered))
    for i, s := range ordered {
        out[i] = SegmentTiming{
            SegmentID: s.ID,
            Name:      s.Name,
            Position:  s.Position,
            Anchor:    i == anchorIdx,
        }
    }

    anchorStart := liveStartAt.UTC()
    out[anchorIdx].Start = anchorStart
    out[anchorIdx].End = anchorStart.Add(minutes(ordered[anchorIdx].DurationMinutes))

    // Forward from the anchor: each segment starts where the previous ends.
    for i := anchorIdx + 1; i < len(ordered); i++ {
        out[i].Start = out[i-1].End
        out[i].End = out[i].Start.Add(minutes(ordered[i].DurationMinutes))
    }

    // Backward before the anchor: each segment ends where the next starts.
    for i := anchorIdx - 1; i >= 0; i-- {
        out[i].End = out[i+1].Start
        out[i].Start = out[i].End.Add(-minutes(ordered[i].DurationMinutes))
    }

    return out, nil
}

// minutes converts a whole-minute duration column into a time.Duration.
func minutes(n int) time.Duration {
    return time.Duration(n) * time.Minute
}
