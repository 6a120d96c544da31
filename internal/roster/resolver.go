// Package roster contains the pure assignment core: resolution of
// effective person-to-position bindings per segment, default-position
// template lookup with the global fallback, copy plans between
// segments, and the advisory crew eligibility filter.  All functions
// here operate on data already loaded by the repositories and perform
// no I/O themselves.
package roster

import (
    "sort"

    "github.com/iliyamo/matchday-rundown/internal/model"
)

// Layer identifies which layer an effective binding came from.
type Layer string

const (
    // LayerBaseline marks bindings inherited from the production-wide
    // ProductionPersonPosition rows.
    LayerBaseline Layer = "baseline"
    // LayerSegment marks bindings from segment-specific assignment rows.
    LayerSegment Layer = "segment"
)

// EffectiveAssignment is one resolved person-to-position binding for
// a segment, tagged with the layer that produced it.  AssignmentID
// refers to the segment_assignments row for segment-layer bindings
// and to the production_person_positions row for baseline ones.
type EffectiveAssignment struct {
    AssignmentID uint64 `json:"assignment_id"`
    PersonID     uint64 `json:"person_id"`
    PositionID   uint64 `json:"position_id"`
    Source       Layer  `json:"source"`
}

// Effective folds a segment's override rows over the production
// baseline.  Positions that have at least one segment row are staffed
// by those rows alone; baseline bindings for every other position
// pass through untouched.  Duplicate (person, position) rows on the
// segment layer are all returned; duplicate prevention is a
// write-time concern, never a read-time one.  The result is sorted by
// position id, then person id, then row id, so identical inputs
// always produce identical output.
func Effective(baseline []model.BaselineAssignment, overrides []model.SegmentAssignment) []EffectiveAssignment {
    overridden := make(map[uint64]struct{}, len(overrides))
    for _, o := range overrides {
        overridden[o.PositionID] = struct{}{}
    }

    out := make([]EffectiveAssignment, 0, len(baseline)+len(overrides))
    for _, b := range baseline {
        if _, ok := overridden[b.PositionID]; ok {
            continue
        }
        out = append(out, EffectiveAssignment{
            AssignmentID: b.ID,
            PersonID:     b.PersonID,
            PositionID:   b.PositionID,
            Source:       LayerBaseline,
        })
    }
    for _, o := range overrides {
        out = append(out, EffectiveAssignment{
            AssignmentID: o.ID,
            PersonID:     o.PersonID,
            PositionID:   o.PositionID,
            Source:       LayerSegment,
        })
    }

    sort.Slice(out, func(i, j int) bool {
        if out[i].PositionID != out[j].PositionID {
            return out[i].PositionID < out[j].PositionID
        }
        if out[i].PersonID != out[j].PersonID {
            return out[i].PersonID < out[j].PersonID
        }
        return out[i].AssignmentID < out[j].AssignmentID
    })
    return out
}
