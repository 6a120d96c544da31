// Package repository contains the data access layer. This file holds
// persistence for both assignment layers: production-wide baseline
// bindings and segment-specific assignment rows, plus the per-target
// transactional application of copy plans.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/matchday-rundown/internal/model"
    "github.com/iliyamo/matchday-rundown/internal/roster"
)

// ErrAssignmentNotFound indicates that an assignment row was not located in the DB.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentRepo manages persistence for segment_assignments and
// production_person_positions.
type AssignmentRepo struct {
    db *sql.DB
}

// NewAssignmentRepo returns a new AssignmentRepo bound to the given database.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// DB exposes the underlying sql.DB for multi-repository transactions.
func (r *AssignmentRepo) DB() *sql.DB { return r.db }

// ListBySegment returns all assignment rows of one segment.  Order is
// by row id; the roster resolver re-sorts deterministically anyway.
func (r *AssignmentRepo) ListBySegment(ctx context.Context, segmentID uint64) ([]model.SegmentAssignment, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, segment_id, person_id, position_id, created_at
         FROM segment_assignments WHERE segment_id = ? ORDER BY id ASC`, segmentID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.SegmentAssignment
    for rows.Next() {
        var a model.SegmentAssignment
        if err := rows.Scan(&a.ID, &a.SegmentID, &a.PersonID, &a.PositionID, &a.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

// ListBaseline returns the production-wide person-to-position rows.
func (r *AssignmentRepo) ListBaseline(ctx context.Context, productionID uint64) ([]model.BaselineAssignment, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, production_id, person_id, position_id, created_at
         FROM production_person_positions WHERE production_id = ? ORDER BY id ASC`, productionID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.BaselineAssignment
    for rows.Next() {
        var b model.BaselineAssignment
        if err := rows.Scan(&b.ID, &b.ProductionID, &b.PersonID, &b.PositionID, &b.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// Insert adds one segment assignment row.  Unknown person, position
// or segment ids are rejected by the foreign keys and surfaced as
// ErrUnknownReference with nothing written.
func (r *AssignmentRepo) Insert(ctx context.Context, a *model.SegmentAssignment) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO segment_assignments (segment_id, person_id, position_id) VALUES (?, ?, ?)`,
        a.SegmentID, a.PersonID, a.PositionID)
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
    a.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at FROM segment_assignments WHERE id = ?`, a.ID).Scan(&a.CreatedAt)
}

// Delete removes one segment assignment row scoped to its segment so
// a stale id from another segment cannot be deleted by accident.
func (r *AssignmentRepo) Delete(ctx context.Context, id, segmentID uint64) error {
    res, err := r.db.ExecContext(ctx,
        `DELETE FROM segment_assignments WHERE id = ? AND segment_id = ?`, id, segmentID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrAssignmentNotFound
    }
    return nil
}

// InsertBaseline adds one production-wide binding.
func (r *AssignmentRepo) InsertBaseline(ctx context.Context, b *model.BaselineAssignment) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO production_person_positions (production_id, person_id, position_id) VALUES (?, ?, ?)`,
        b.ProductionID, b.PersonID, b.PositionID)
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
    b.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at FROM production_person_positions WHERE id = ?`, b.ID).Scan(&b.CreatedAt)
}

// DeleteBaseline removes one production-wide binding scoped to its
// production.
func (r *AssignmentRepo) DeleteBaseline(ctx context.Context, id, productionID uint64) error {
    res, err := r.db.ExecContext(ctx,
        `DELETE FROM production_person_positions WHERE id = ? AND production_id = ?`, id, productionID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrAssignmentNotFound
    }
    return nil
}

// ApplyCopyToTarget copies the source rows onto one target segment in
// its own transaction.  Under merge the target's current rows are read
// with a locking read inside the same transaction, so the plan is
// computed against what is actually there at commit time and a pair
// added concurrently cannot be inserted a second time.  Each target is
// independently atomic: clearing and re-inserting under overwrite
// either both happen or neither does, and a failure here never rolls
// back targets that already committed.
func (r *AssignmentRepo) ApplyCopyToTarget(ctx context.Context, targetID uint64, source []model.SegmentAssignment, mode roster.CopyMode) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    var target []model.SegmentAssignment
    if mode == roster.CopyMerge {
        if target, err = listBySegmentForUpdate(ctx, tx, targetID); err != nil {
            return err
        }
    }
    plan := roster.PlanCopy(source, target, mode)

    if plan.ReplaceAll {
        if _, err := tx.ExecContext(ctx,
            `DELETE FROM segment_assignments WHERE segment_id = ?`, targetID); err != nil {
            return err
        }
    }
    if len(plan.Insert) > 0 {
        query := `INSERT INTO segment_assignments (segment_id, person_id, position_id) VALUES `
        args := make([]interface{}, 0, len(plan.Insert)*3)
        for i, row := range plan.Insert {
            if i > 0 {
                query += ","
            }
            query += "(?, ?, ?)"
            args = append(args, targetID, row.PersonID, row.PositionID)
        }
        if _, err := tx.ExecContext(ctx, query, args...); err != nil {
            if isFKViolation(err) {
                return ErrUnknownReference
            }
            return err
        }
    }
    return tx.Commit()
}

// listBySegmentForUpdate reads a segment's rows with FOR UPDATE so the
// index range stays locked until the surrounding transaction commits.
func listBySegmentForUpdate(ctx context.Context, tx *sql.Tx, segmentID uint64) ([]model.SegmentAssignment, error) {
    rows, err := tx.QueryContext(ctx,
        `SELECT id, segment_id, person_id, position_id, created_at
         FROM segment_assignments WHERE segment_id = ? ORDER BY id ASC FOR UPDATE`, segmentID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.SegmentAssignment
    for rows.Next() {
        var a model.SegmentAssignment
        if err := rows.Scan(&a.ID, &a.SegmentID, &a.PersonID, &a.PositionID, &a.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}
