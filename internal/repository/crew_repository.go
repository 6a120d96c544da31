// Package repository contains the data access layer. This file holds
// the crew roster: people, their attachment to productions and their
// skill sets.  The roster read feeds the eligibility filter.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/matchday-rundown/internal/model"
)

// ErrPersonNotFound indicates that a person was not located in the DB.
var ErrPersonNotFound = errors.New("person not found")

// CrewRepo manages people, production_crew attachments and person_skills.
type CrewRepo struct {
    db *sql.DB
}

// NewCrewRepo returns a new CrewRepo bound to the given database.
func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

// ListByProduction returns the production's roster with each member's
// skill-id set, ordered by person id for stable output.
func (r *CrewRepo) ListByProduction(ctx context.Context, productionID uint64) ([]model.CrewMember, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT p.id, p.full_name, p.created_at, ps.skill_id
         FROM production_crew pc
         JOIN people p ON p.id = pc.person_id
         LEFT JOIN person_skills ps ON ps.person_id = p.id
         WHERE pc.production_id = ?
         ORDER BY p.id ASC`, productionID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.CrewMember
    index := make(map[uint64]int)
    for rows.Next() {
        var (
            person model.Person
            skill  sql.NullInt64
        )
        if err := rows.Scan(&person.ID, &person.FullName, &person.CreatedAt, &skill); err != nil {
            return nil, err
        }
        i, ok := index[person.ID]
        if !ok {
            out = append(out, model.CrewMember{Person: person, SkillIDs: make(map[uint64]struct{})})
            i = len(out) - 1
            index[person.ID] = i
        }
        if skill.Valid {
            out[i].SkillIDs[uint64(skill.Int64)] = struct{}{}
        }
    }
    return out, rows.Err()
}

// GetPerson fetches one person from the people catalogue.
func (r *CrewRepo) GetPerson(ctx context.Context, id uint64) (*model.Person, error) {
    var p model.Person
    err := r.db.QueryRowContext(ctx,
        `SELECT id, full_name, created_at FROM people WHERE id = ? LIMIT 1`, id).
        Scan(&p.ID, &p.FullName, &p.CreatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrPersonNotFound
    }
    if err != nil {
        return nil, err
    }
    return &p, nil
}

// AttachToProduction adds a person to a production's roster.
// Attaching twice is reported as ErrConflict; pointing at a missing
// person or production as ErrUnknownReference.
func (r *CrewRepo) AttachToProduction(ctx context.Context, productionID, personID uint64) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO production_crew (production_id, person_id) VALUES (?, ?)`,
        productionID, personID)
    if err != nil {
        if isDuplicate(err) {
            return ErrConflict
        }
        if isFKViolation(err) {
            return ErrUnknownReference
        }
        return err
    }
    return nil
}

// DetachFromProduction removes a person from a production's roster.
// Baseline and segment assignment rows for that person are untouched;
// existing assignments are never retroactively hidden.
func (r *CrewRepo) DetachFromProduction(ctx context.Context, productionID, personID uint64) error {
    res, err := r.db.ExecContext(ctx,
        `DELETE FROM production_crew WHERE production_id = ? AND person_id = ?`,
        productionID, personID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrPersonNotFound
    }
    return nil
}
