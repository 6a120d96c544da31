package model

import "time"

// Segment is one entry in a production's run of show: a named block
// of air time with a fixed duration.  Segments form a strict total
// order within their production; the set of Position values is
// always exactly {1..N}.  At most one segment per production may be
// flagged as the time anchor.
//
// Fields:
//  ID              – primary key identifier.
//  ProductionID    – production this segment belongs to.
//  Name            – free-text name, not unique (e.g. "First half").
//  Position        – 1-based order within the production, gap free.
//  DurationMinutes – planned length in whole minutes (may be zero).
//  IsTimeAnchor    – whether this segment carries the fixed start instant.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Segment struct {
    ID              uint64    `json:"id"`               // segments.id
    ProductionID    uint64    `json:"production_id"`    // segments.production_id
    Name            string    `json:"name"`             // segments.name
    Position        int       `json:"position"`         // segments.position
    DurationMinutes int       `json:"duration_minutes"` // segments.duration_minutes
    IsTimeAnchor    bool      `json:"is_time_anchor"`   // segments.is_time_anchor
    CreatedAt       time.Time `json:"created_at"`       // segments.created_at
    UpdatedAt       time.Time `json:"updated_at"`       // segments.updated_at
}
