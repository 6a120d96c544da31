package model

import "time"

// Production represents one planned broadcast (for example a single
// matchday transmission).  A production owns an ordered list of
// segments and a crew roster.  The LiveStartAt field stores the
// externally fixed wall-clock instant of the production's time
// anchor segment; while it is nil no timeline can be computed.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – producer (user) who owns this production.
//  Name        – display name (e.g. "Home opener vs. United").
//  LiveStartAt – fixed start instant of the anchor segment (nullable).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Production struct {
    ID          uint64     `json:"id"`            // productions.id
    OwnerID     uint64     `json:"owner_id"`      // productions.owner_id
    Name        string     `json:"name"`          // productions.name
    LiveStartAt *time.Time `json:"live_start_at"` // productions.live_start_at (nullable)
    CreatedAt   time.Time  `json:"created_at"`    // productions.created_at
    UpdatedAt   time.Time  `json:"updated_at"`    // productions.updated_at
}
