// Package queue defines message payloads exchanged over the message broker.
package queue

// RundownChangedEvent is published whenever a production's run of show
// changes in a way that affects the computed timeline or the staffing
// picture: a segment is created, moved, edited, or deleted, the time
// anchor moves, or assignments are copied in bulk. Downstream consumers
// (notification fan-out, audit log) get enough context to act without
// querying the primary database.
type RundownChangedEvent struct {
	ProductionID uint64 `json:"production_id"`
	SegmentID    uint64 `json:"segment_id,omitempty"`
	Action       string `json:"action"` // e.g. "segment.moved", "anchor.set", "assignments.copied"
	ActorID      uint64 `json:"actor_id"`
	Detail       string `json:"detail,omitempty"`
	OccurredAt   string `json:"occurred_at"` // RFC3339 UTC
}
