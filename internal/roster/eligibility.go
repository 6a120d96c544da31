package roster

import "github.com/iliyamo/matchday-rundown/internal/model"

// EligibleCrew filters a production's roster down to the people who
// may be offered for the given position.  A position without a
// required skill accepts the entire roster, including an empty one.
// The filter is advisory and feeds candidate lists only; it is never
// applied to assignments that already exist, so a later change to the
// skill catalogue cannot hide bindings retroactively.
func EligibleCrew(pos model.Position, crew []model.CrewMember) []model.CrewMember {
    out := make([]model.CrewMember, 0, len(crew))
    if pos.RequiredSkillID == nil {
        out = append(out, crew...)
        return out
    }
    for _, m := range crew {
        if m.HasSkill(*pos.RequiredSkillID) {
            out = append(out, m)
        }
    }
    return out
}
