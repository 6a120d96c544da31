package roster

import (
	"testing"

	"github.com/iliyamo/matchday-rundown/internal/model"
)

func member(id uint64, skills ...uint64) model.CrewMember {
	set := make(map[uint64]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return model.CrewMember{Person: model.Person{ID: id}, SkillIDs: set}
}

func TestEligibleCrew_noRequiredSkill(t *testing.T) {
	crew := []model.CrewMember{member(1), member(2, 5)}
	got := EligibleCrew(model.Position{ID: 1, Name: "Runner"}, crew)
	if len(got) != 2 {
		t.Errorf("position without skill must accept everyone, got %d", len(got))
	}
}

func TestEligibleCrew_emptyRosterIsEmptyNotError(t *testing.T) {
	got := EligibleCrew(model.Position{ID: 1}, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestEligibleCrew_filtersBySkill(t *testing.T) {
	skill := uint64(5)
	crew := []model.CrewMember{
		member(1),          // no skills
		member(2, 5),       // has the skill
		member(3, 4, 6),    // other skills only
		member(4, 5, 6, 7), // has it among others
	}
	got := EligibleCrew(model.Position{ID: 1, RequiredSkillID: &skill}, crew)
	if len(got) != 2 {
		t.Fatalf("expected 2 eligible members, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 4 {
		t.Errorf("eligibility must preserve roster order, got %v %v", got[0].ID, got[1].ID)
	}
}
