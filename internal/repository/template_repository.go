// Package repository contains the data access layer. This file holds
// read access to the segment_default_positions table.  The repository
// satisfies roster.TemplateStore; the sentinel-name fallback itself
// lives in the roster package, not here.
package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/matchday-rundown/internal/model"
)

// TemplateRepo reads default-position template rows.
type TemplateRepo struct {
    db *sql.DB
}

// NewTemplateRepo returns a new TemplateRepo bound to the given database.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

// ListByName returns every template row stored under the given
// segment name.  A name with no rows yields an empty slice, never an
// error; the resolver decides whether to fall back.
func (r *TemplateRepo) ListByName(ctx context.Context, segmentName string) ([]model.DefaultPosition, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, segment_name, ord, position_id
         FROM segment_default_positions WHERE segment_name = ? ORDER BY ord ASC, position_id ASC`,
        segmentName)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.DefaultPosition
    for rows.Next() {
        var d model.DefaultPosition
        if err := rows.Scan(&d.ID, &d.SegmentName, &d.Ord, &d.PositionID); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}
