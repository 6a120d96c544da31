package handler

import (
	"errors"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-rundown/internal/model"
	"github.com/iliyamo/matchday-rundown/internal/repository"
)

// ownedProduction verifies the caller owns the production in the path.
func (h *RosterHandler) ownedProduction(c echo.Context, param string) (uint64, uint64, error) {
	ownerID, err := getUserID(c)
	if err != nil {
		return 0, 0, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, param)
	if err != nil || id == 0 {
		return 0, 0, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid production id"})
	}
	if _, err := h.Productions.GetByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrProductionNotFound {
			return 0, 0, c.JSON(http.StatusNotFound, echo.Map{"error": "production not found"})
		}
		return 0, 0, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load production failed"})
	}
	return id, ownerID, nil
}

// ListCrew handles GET /v1/productions/:id/crew.
func (h *RosterHandler) ListCrew(c echo.Context) error {
	productionID, _, errResp := h.ownedProduction(c, "id")
	if productionID == 0 {
		return errResp
	}
	crew, err := h.Crew.ListByProduction(c.Request().Context(), productionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load crew failed"})
	}
	type memberView struct {
		PersonID uint64   `json:"person_id"`
		FullName string   `json:"full_name"`
		SkillIDs []uint64 `json:"skill_ids"`
	}
	out := make([]memberView, 0, len(crew))
	for _, m := range crew {
		skills := m.Skills()
		sort.Slice(skills, func(i, j int) bool { return skills[i] < skills[j] })
		out = append(out, memberView{PersonID: m.ID, FullName: m.FullName, SkillIDs: skills})
	}
	return c.JSON(http.StatusOK, echo.Map{"production_id": productionID, "crew": out})
}

// AttachCrew handles POST /v1/productions/:id/crew and adds a person
// to the production roster.
func (h *RosterHandler) AttachCrew(c echo.Context) error {
	productionID, _, errResp := h.ownedProduction(c, "id")
	if productionID == 0 {
		return errResp
	}
	var body struct {
		PersonID uint64 `json:"person_id"`
	}
	if err := c.Bind(&body); err != nil || body.PersonID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "person_id is required"})
	}
	err := h.Crew.AttachToProduction(c.Request().Context(), productionID, body.PersonID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "person already on roster"})
		case errors.Is(err, repository.ErrUnknownReference):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown person"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "attach crew failed"})
		}
	}
	return c.NoContent(http.StatusCreated)
}

// DetachCrew handles DELETE /v1/productions/:id/crew/:personID.
// Existing assignments of the person are left alone; the roster is a
// membership list, not a constraint on history.
func (h *RosterHandler) DetachCrew(c echo.Context) error {
	productionID, _, errResp := h.ownedProduction(c, "id")
	if productionID == 0 {
		return errResp
	}
	personID, err := pathID(c, "personID")
	if err != nil || personID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
	}
	if err := h.Crew.DetachFromProduction(c.Request().Context(), productionID, personID); err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not on roster"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "detach crew failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBaselineAssignments handles GET /v1/productions/:id/baseline-assignments.
func (h *RosterHandler) ListBaselineAssignments(c echo.Context) error {
	productionID, _, errResp := h.ownedProduction(c, "id")
	if productionID == 0 {
		return errResp
	}
	rows, err := h.Assignments.ListBaseline(c.Request().Context(), productionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load baseline failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"production_id": productionID, "baseline": rows})
}

// AddBaselineAssignment handles POST /v1/productions/:id/baseline-assignments.
// The row applies to every segment of the production until a segment
// override shadows it for that position.
func (h *RosterHandler) AddBaselineAssignment(c echo.Context) error {
	productionID, actorID, errResp := h.ownedProduction(c, "id")
	if productionID == 0 {
		return errResp
	}
	var body struct {
		PersonID   uint64 `json:"person_id"`
		PositionID uint64 `json:"position_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PersonID == 0 || body.PositionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "person_id and position_id are required"})
	}
	b := &model.BaselineAssignment{ProductionID: productionID, PersonID: body.PersonID, PositionID: body.PositionID}
	if err := h.Assignments.InsertBaseline(c.Request().Context(), b); err != nil {
		if errors.Is(err, repository.ErrUnknownReference) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown person or position"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create baseline failed"})
	}
	notifyRundownChanged(actorID, productionID, 0, "baseline.created", "")
	return c.JSON(http.StatusCreated, b)
}

// RemoveBaselineAssignment handles DELETE /v1/productions/:id/baseline-assignments/:assignmentID.
func (h *RosterHandler) RemoveBaselineAssignment(c echo.Context) error {
	productionID, _, errResp := h.ownedProduction(c, "id")
	if productionID == 0 {
		return errResp
	}
	assignmentID, err := pathID(c, "assignmentID")
	if err != nil || assignmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid assignment id"})
	}
	if err := h.Assignments.DeleteBaseline(c.Request().Context(), assignmentID, productionID); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "baseline assignment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete baseline failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
