package model

// Position is a catalogue entry describing one broadcast role that
// can be staffed during a segment (e.g. "Commentator", "Camera 2",
// "Floor manager").  Positions are shared reference data and are not
// owned by any single production.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – display name of the role.
//  RequiredSkillID – skill a person must hold to be eligible (nullable).
//  IsStudio        – informational flag: role is staffed from the studio.
type Position struct {
    ID              uint64  `json:"id"`                // positions.id
    Name            string  `json:"name"`              // positions.name
    RequiredSkillID *uint64 `json:"required_skill_id"` // positions.required_skill_id (nullable)
    IsStudio        bool    `json:"is_studio"`         // positions.is_studio
}

// Skill is a catalogue entry referenced by positions that require a
// specific qualification (e.g. "Replay operator licence").
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique skill name.
type Skill struct {
    ID   uint64 `json:"id"`   // skills.id
    Name string `json:"name"` // skills.name
}
