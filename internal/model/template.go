package model

// DefaultPosition is one row of a default-position template: for
// segments named SegmentName, the referenced position is expected to
// be staffed.  Rows are ordered by Ord within a segment name.  The
// reserved sentinel name handled by the roster package marks the
// global fallback template used when no name-specific rows exist.
//
// Fields:
//  ID          – primary key identifier.
//  SegmentName – segment name this template row applies to.
//  Ord         – display order within the template.
//  PositionID  – position expected for matching segments.
type DefaultPosition struct {
    ID          uint64 `json:"id"`           // segment_default_positions.id
    SegmentName string `json:"segment_name"` // segment_default_positions.segment_name
    Ord         int    `json:"ord"`          // segment_default_positions.ord
    PositionID  uint64 `json:"position_id"`  // segment_default_positions.position_id
}
