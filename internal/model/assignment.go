package model

import "time"

// BaselineAssignment binds a person to a position for a whole
// production ("this person generally plays this role").  Baseline
// rows are the bottom layer of assignment resolution: a segment row
// replaces the baseline rows for its position, while positions the
// segment never touches keep their baseline rows.
//
// Fields:
//  ID           – primary key identifier.
//  ProductionID – production the binding is scoped to.
//  PersonID     – crew member bound to the position.
//  PositionID   – position being staffed.
//  CreatedAt    – creation timestamp.
type BaselineAssignment struct {
    ID           uint64    `json:"id"`            // production_person_positions.id
    ProductionID uint64    `json:"production_id"` // production_person_positions.production_id
    PersonID     uint64    `json:"person_id"`     // production_person_positions.person_id
    PositionID   uint64    `json:"position_id"`   // production_person_positions.position_id
    CreatedAt    time.Time `json:"created_at"`    // production_person_positions.created_at
}

// SegmentAssignment binds a person to a position for one specific
// segment.  Multiple rows per segment are allowed, and duplicate
// (person, position) pairs are tolerated by the data model; the
// resolver returns all of them rather than hiding any.
//
// Fields:
//  ID         – primary key identifier.
//  SegmentID  – segment the binding is scoped to.
//  PersonID   – crew member bound to the position.
//  PositionID – position being staffed.
//  CreatedAt  – creation timestamp.
type SegmentAssignment struct {
    ID         uint64    `json:"id"`          // segment_assignments.id
    SegmentID  uint64    `json:"segment_id"`  // segment_assignments.segment_id
    PersonID   uint64    `json:"person_id"`   // segment_assignments.person_id
    PositionID uint64    `json:"position_id"` // segment_assignments.position_id
    CreatedAt  time.Time `json:"created_at"`  // segment_assignments.created_at
}
