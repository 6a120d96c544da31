// Package repository contains the data access layer. This file holds
// persistence for rundown segments, including the transactional
// renumbering writes computed by the schedule package.  Position
// uniqueness is enforced by the ordering plans, not by a database
// constraint, so a plan may pass through intermediate states freely
// inside its transaction.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/matchday-rundown/internal/model"
    "github.com/iliyamo/matchday-rundown/internal/schedule"
)

// ErrSegmentNotFound indicates that a segment was not located in the DB.
var ErrSegmentNotFound = errors.New("segment not found")

// SegmentRepo manages persistence for segments.
type SegmentRepo struct {
    db *sql.DB
}

// NewSegmentRepo returns a new SegmentRepo bound to the given database.
func NewSegmentRepo(db *sql.DB) *SegmentRepo { return &SegmentRepo{db: db} }

// DB exposes the underlying sql.DB for multi-repository transactions.
func (r *SegmentRepo) DB() *sql.DB { return r.db }

const segmentColumns = `id, production_id, name, position, duration_minutes, is_time_anchor, created_at, updated_at`

func scanSegment(s interface {
    Scan(dest ...interface{}) error
}) (model.Segment, error) {
    var seg model.Segment
    err := s.Scan(&seg.ID, &seg.ProductionID, &seg.Name, &seg.Position,
        &seg.DurationMinutes, &seg.IsTimeAnchor, &seg.CreatedAt, &seg.UpdatedAt)
    return seg, err
}

// ListByProduction returns all segments of a production ordered by
// position ascending.
func (r *SegmentRepo) ListByProduction(ctx context.Context, productionID uint64) ([]model.Segment, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+segmentColumns+` FROM segments WHERE production_id = ? ORDER BY position ASC`,
        productionID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Segment
    for rows.Next() {
        seg, err := scanSegment(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, seg)
    }
    return out, rows.Err()
}

// ListByProductionTx is ListByProduction inside the caller's
// transaction.  The calling handler must have taken the production
// lock first; the rows read here form the arena an ordering plan is
// computed over.
func (r *SegmentRepo) ListByProductionTx(ctx context.Context, tx *sql.Tx, productionID uint64) ([]model.Segment, error) {
    rows, err := tx.QueryContext(ctx,
        `SELECT `+segmentColumns+` FROM segments WHERE production_id = ? ORDER BY position ASC`,
        productionID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Segment
    for rows.Next() {
        seg, err := scanSegment(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, seg)
    }
    return out, rows.Err()
}

// GetByID fetches a segment by id.
func (r *SegmentRepo) GetByID(ctx context.Context, id uint64) (*model.Segment, error) {
    seg, err := scanSegment(r.db.QueryRowContext(ctx,
        `SELECT `+segmentColumns+` FROM segments WHERE id = ? LIMIT 1`, id))
    if err == sql.ErrNoRows {
        return nil, ErrSegmentNotFound
    }
    if err != nil {
        return nil, err
    }
    return &seg, nil
}

// GetByIDAndOwner fetches a segment only when its production belongs
// to the given owner.
func (r *SegmentRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Segment, error) {
    seg, err := scanSegment(r.db.QueryRowContext(ctx,
        `SELECT s.id, s.production_id, s.name, s.position, s.duration_minutes, s.is_time_anchor, s.created_at, s.updated_at
         FROM segments s JOIN productions p ON p.id = s.production_id
         WHERE s.id = ? AND p.owner_id = ? LIMIT 1`, id, ownerID))
    if err == sql.ErrNoRows {
        return nil, ErrSegmentNotFound
    }
    if err != nil {
        return nil, err
    }
    return &seg, nil
}

// InsertTx inserts a segment at the position already stamped on it by
// an ordering plan.  The generated ID and timestamp defaults are
// populated on the given segment.
func (r *SegmentRepo) InsertTx(ctx context.Context, tx *sql.Tx, seg *model.Segment) error {
    res, err := tx.ExecContext(ctx,
        `INSERT INTO segments (production_id, name, position, duration_minutes, is_time_anchor)
         VALUES (?, ?, ?, ?, ?)`,
        seg.ProductionID, seg.Name, seg.Position, seg.DurationMinutes, seg.IsTimeAnchor)
    if err != nil {
        if isFKViolation(err) {
            return ErrUnknownReference
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    seg.ID = uint64(id)
    return tx.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM segments WHERE id = ?`, seg.ID).
        Scan(&seg.CreatedAt, &seg.UpdatedAt)
}

// ApplyPlanTx rewrites segment positions according to an ordering
// plan.  All updates run in the caller's transaction so the {1..N}
// invariant is never observable in a violated state.
func (r *SegmentRepo) ApplyPlanTx(ctx context.Context, tx *sql.Tx, changes []schedule.PositionChange) error {
    for _, ch := range changes {
        if _, err := tx.ExecContext(ctx,
            `UPDATE segments SET position = ?, updated_at = NOW() WHERE id = ?`,
            ch.Position, ch.SegmentID); err != nil {
            return err
        }
    }
    return nil
}

// DeleteTx removes a segment and its assignment rows.  The caller
// applies the compaction plan for the remaining segments in the same
// transaction.
func (r *SegmentRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    if _, err := tx.ExecContext(ctx,
        `DELETE FROM segment_assignments WHERE segment_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM segments WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrSegmentNotFound
    }
    return nil
}

// UpdateMeta changes a segment's name and duration.  Ordering and
// anchor state are untouched; duration edits surface on the next
// timeline computation.
func (r *SegmentRepo) UpdateMeta(ctx context.Context, id uint64, name string, durationMinutes int) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE segments SET name = ?, duration_minutes = ?, updated_at = NOW() WHERE id = ?`,
        name, durationMinutes, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        if _, gerr := r.GetByID(ctx, id); gerr != nil {
            return gerr
        }
    }
    return nil
}

// SetAnchorTx flags one segment as the production's time anchor,
// clearing any previously flagged segment in the same transaction so
// the at-most-one invariant holds at every commit point.
func (r *SegmentRepo) SetAnchorTx(ctx context.Context, tx *sql.Tx, productionID, segmentID uint64) error {
    if _, err := tx.ExecContext(ctx,
        `UPDATE segments SET is_time_anchor = FALSE, updated_at = NOW()
         WHERE production_id = ? AND is_time_anchor = TRUE`, productionID); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx,
        `UPDATE segments SET is_time_anchor = TRUE, updated_at = NOW()
         WHERE id = ? AND production_id = ?`, segmentID, productionID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrSegmentNotFound
    }
    return nil
}

// ClearAnchorTx removes the anchor flag from a segment without
// electing a replacement.
func (r *SegmentRepo) ClearAnchorTx(ctx context.Context, tx *sql.Tx, segmentID uint64) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE segments SET is_time_anchor = FALSE, updated_at = NOW() WHERE id = ?`, segmentID)
    return err
}
