// Package repository contains the data access layer. This file holds
// persistence for productions: the root aggregate that owns segments,
// crew attachments and baseline assignments.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/matchday-rundown/internal/model"
)

// ErrProductionNotFound indicates that a production was not located in the DB.
var ErrProductionNotFound = errors.New("production not found")

// ProductionRepo manages persistence for productions.
type ProductionRepo struct {
    db *sql.DB
}

// NewProductionRepo returns a new ProductionRepo bound to the given database.
func NewProductionRepo(db *sql.DB) *ProductionRepo { return &ProductionRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *ProductionRepo) DB() *sql.DB { return r.db }

// Create inserts a production and populates its generated ID and
// timestamp defaults.
func (r *ProductionRepo) Create(ctx context.Context, p *model.Production) error {
    var live sql.NullTime
    if p.LiveStartAt != nil {
        live = sql.NullTime{Time: p.LiveStartAt.UTC(), Valid: true}
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO productions (owner_id, name, live_start_at) VALUES (?, ?, ?)`,
        p.OwnerID, p.Name, live)
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
    p.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM productions WHERE id = ?`, p.ID).
        Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches a production by id.
func (r *ProductionRepo) GetByID(ctx context.Context, id uint64) (*model.Production, error) {
    var p model.Production
    var live sql.NullTime
    err := r.db.QueryRowContext(ctx,
        `SELECT id, owner_id, name, live_start_at, created_at, updated_at
         FROM productions WHERE id = ? LIMIT 1`, id).
        Scan(&p.ID, &p.OwnerID, &p.Name, &live, &p.CreatedAt, &p.UpdatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrProductionNotFound
    }
    if err != nil {
        return nil, err
    }
    if live.Valid {
        t := live.Time.UTC()
        p.LiveStartAt = &t
    }
    return &p, nil
}

// GetByIDAndOwner fetches a production only when it belongs to the
// given owner.  Ownership checks for every producer mutation go
// through this method.
func (r *ProductionRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Production, error) {
    p, err := r.GetByID(ctx, id)
    if err != nil {
        return nil, err
    }
    if p.OwnerID != ownerID {
        return nil, ErrProductionNotFound
    }
    return p, nil
}

// ListByOwner returns all productions owned by a user, newest first.
func (r *ProductionRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Production, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, owner_id, name, live_start_at, created_at, updated_at
         FROM productions WHERE owner_id = ? ORDER BY id DESC`, ownerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []*model.Production
    for rows.Next() {
        var p model.Production
        var live sql.NullTime
        if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &live, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        if live.Valid {
            t := live.Time.UTC()
            p.LiveStartAt = &t
        }
        out = append(out, &p)
    }
    return out, rows.Err()
}

// SetLiveStart updates the fixed live instant of the production's
// anchor segment.  Passing nil clears it, which makes the timeline
// uncomputable again until a new instant is supplied.
func (r *ProductionRepo) SetLiveStart(ctx context.Context, id, ownerID uint64, at *time.Time) error {
    var arg interface{}
    if at != nil {
        arg = at.UTC()
    }
    res, err := r.db.ExecContext(ctx,
        `UPDATE productions SET live_start_at = ?, updated_at = NOW() WHERE id = ? AND owner_id = ?`,
        arg, id, ownerID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // Either the production does not exist or the caller does not
        // own it; re-check to report the right error.
        if _, gerr := r.GetByIDAndOwner(ctx, id, ownerID); gerr != nil {
            return gerr
        }
    }
    return nil
}

// LockTx takes the per-production write lock by selecting the
// production row FOR UPDATE inside the caller's transaction.  Every
// multi-row segment or assignment write locks first, so concurrent
// mutations on one production serialize while other productions
// proceed in parallel.
func (r *ProductionRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    var got uint64
    err := tx.QueryRowContext(ctx,
        `SELECT id FROM productions WHERE id = ? FOR UPDATE`, id).Scan(&got)
    if err == sql.ErrNoRows {
        return ErrProductionNotFound
    }
    return err
}
