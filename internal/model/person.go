package model

import "time"

// Person is one crew member in the people catalogue.  People are
// attached to productions through the production_crew table and may
// hold any number of skills.
//
// Fields:
//  ID        – primary key identifier.
//  FullName  – display name of the crew member.
//  CreatedAt – creation timestamp.
type Person struct {
    ID        uint64    `json:"id"`         // people.id
    FullName  string    `json:"full_name"`  // people.full_name
    CreatedAt time.Time `json:"created_at"` // people.created_at
}

// CrewMember is a person in the context of one production's roster,
// carrying the set of skill IDs the person holds.  The skill set is
// what the eligibility filter inspects when building candidate lists
// for a position.
type CrewMember struct {
    Person
    SkillIDs map[uint64]struct{} `json:"-"` // skill ids held by this person
}

// Skills returns the member's skill IDs as a sorted-free slice for
// JSON responses; callers that need a stable order sort it themselves.
func (m CrewMember) Skills() []uint64 {
    out := make([]uint64, 0, len(m.SkillIDs))
    for id := range m.SkillIDs {
        out = append(out, id)
    }
    return out
}

// HasSkill reports whether the crew member holds the given skill.
func (m CrewMember) HasSkill(skillID uint64) bool {
    _, ok := m.SkillIDs[skillID]
    return ok
}
