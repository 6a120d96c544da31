// Package repository contains the data access layer. This file holds
// read access to the shared position and skill catalogues.  Catalogue
// data is managed externally; the planner only reads it.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/matchday-rundown/internal/model"
)

// ErrPositionNotFound indicates that a position was not located in the DB.
var ErrPositionNotFound = errors.New("position not found")

// PositionRepo reads the positions and skills catalogues.
type PositionRepo struct {
    db *sql.DB
}

// NewPositionRepo returns a new PositionRepo bound to the given database.
func NewPositionRepo(db *sql.DB) *PositionRepo { return &PositionRepo{db: db} }

// GetByID fetches one catalogue position.
func (r *PositionRepo) GetByID(ctx context.Context, id uint64) (*model.Position, error) {
    var (
        p     model.Position
        skill sql.NullInt64
    )
    err := r.db.QueryRowContext(ctx,
        `SELECT id, name, required_skill_id, is_studio FROM positions WHERE id = ? LIMIT 1`, id).
        Scan(&p.ID, &p.Name, &skill, &p.IsStudio)
    if err == sql.ErrNoRows {
        return nil, ErrPositionNotFound
    }
    if err != nil {
        return nil, err
    }
    if skill.Valid {
        s := uint64(skill.Int64)
        p.RequiredSkillID = &s
    }
    return &p, nil
}

// ListAll returns the full position catalogue ordered by id.
func (r *PositionRepo) ListAll(ctx context.Context) ([]model.Position, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, name, required_skill_id, is_studio FROM positions ORDER BY id ASC`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Position
    for rows.Next() {
        var (
            p     model.Position
            skill sql.NullInt64
        )
        if err := rows.Scan(&p.ID, &p.Name, &skill, &p.IsStudio); err != nil {
            return nil, err
        }
        if skill.Valid {
            s := uint64(skill.Int64)
            p.RequiredSkillID = &s
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// GetByIDs fetches a batch of catalogue positions keyed by id.
// Missing ids are simply absent from the map.
func (r *PositionRepo) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Position, error) {
    out := make(map[uint64]model.Position, len(ids))
    if len(ids) == 0 {
        return out, nil
    }
    query := `SELECT id, name, required_skill_id, is_studio FROM positions WHERE id IN (`
    args := make([]interface{}, 0, len(ids))
    for i, id := range ids {
        if i > 0 {
            query += ","
        }
        query += "?"
        args = append(args, id)
    }
    query += ")"
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var (
            p     model.Position
            skill sql.NullInt64
        )
        if err := rows.Scan(&p.ID, &p.Name, &skill, &p.IsStudio); err != nil {
            return nil, err
        }
        if skill.Valid {
            s := uint64(skill.Int64)
            p.RequiredSkillID = &s
        }
        out[p.ID] = p
    }
    return out, rows.Err()
}
