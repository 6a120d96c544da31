package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-rundown/internal/model"
	"github.com/iliyamo/matchday-rundown/internal/repository"
	"github.com/iliyamo/matchday-rundown/internal/roster"
)

// RosterHandler bundles the repositories behind staffing endpoints:
// effective assignments per segment, segment overrides, bulk copy,
// default-position templates, and the eligibility filter.
type RosterHandler struct {
	Productions *repository.ProductionRepo
	Segments    *repository.SegmentRepo
	Assignments *repository.AssignmentRepo
	Positions   *repository.PositionRepo
	Crew        *repository.CrewRepo
	Defaults    *roster.DefaultResolver
}

func NewRosterHandler(
	p *repository.ProductionRepo,
	s *repository.SegmentRepo,
	a *repository.AssignmentRepo,
	pos *repository.PositionRepo,
	crew *repository.CrewRepo,
	defaults *roster.DefaultResolver,
) *RosterHandler {
	return &RosterHandler{Productions: p, Segments: s, Assignments: a, Positions: pos, Crew: crew, Defaults: defaults}
}

// ownedSegment loads a segment and verifies the caller owns its production.
func (h *RosterHandler) ownedSegment(c echo.Context, param string) (*model.Segment, error) {
	ownerID, err := getUserID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, param)
	if err != nil || id == 0 {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid segment id"})
	}
	seg, err := h.Segments.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrSegmentNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "segment not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segment failed"})
	}
	return seg, nil
}

// GetEffectiveAssignments handles GET /v1/segments/:id/assignments.
// The response merges the production's baseline layer with the
// segment's own rows: a segment row replaces baseline rows for the
// same position, baseline rows for untouched positions shine through.
func (h *RosterHandler) GetEffectiveAssignments(c echo.Context) error {
	seg, errResp := h.ownedSegment(c, "id")
	if seg == nil {
		return errResp
	}
	ctx := c.Request().Context()
	baseline, err := h.Assignments.ListBaseline(ctx, seg.ProductionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load baseline failed"})
	}
	overrides, err := h.Assignments.ListBySegment(ctx, seg.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load assignments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"segment_id":  seg.ID,
		"assignments": roster.Effective(baseline, overrides),
	})
}

// AddAssignment handles POST /v1/segments/:id/assignments and creates
// a segment-level row. Duplicate (person, position) pairs are allowed;
// the effective view reports all of them.
func (h *RosterHandler) AddAssignment(c echo.Context) error {
	seg, errResp := h.ownedSegment(c, "id")
	if seg == nil {
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
	a := &model.SegmentAssignment{SegmentID: seg.ID, PersonID: body.PersonID, PositionID: body.PositionID}
	if err := h.Assignments.Insert(c.Request().Context(), a); err != nil {
		if errors.Is(err, repository.ErrUnknownReference) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown person or position"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create assignment failed"})
	}
	actorID, _ := getUserID(c)
	notifyRundownChanged(actorID, seg.ProductionID, seg.ID, "assignment.created", "")
	return c.JSON(http.StatusCreated, a)
}

// RemoveAssignment handles DELETE /v1/segments/:id/assignments/:assignmentID.
func (h *RosterHandler) RemoveAssignment(c echo.Context) error {
	seg, errResp := h.ownedSegment(c, "id")
	if seg == nil {
		return errResp
	}
	assignmentID, err := pathID(c, "assignmentID")
	if err != nil || assignmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid assignment id"})
	}
	if err := h.Assignments.Delete(c.Request().Context(), assignmentID, seg.ID); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "assignment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete assignment failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// copyTargetResult is the per-target outcome of a bulk copy.
type copyTargetResult struct {
	SegmentID uint64 `json:"segment_id"`
	Status    string `json:"status"` // "ok" | "failed"
	Error     string `json:"error,omitempty"`
}

// CopyAssignments handles POST /v1/segments/:id/copy-assignments.
// Validation covers the whole request before anything is written;
// after that each target is applied in its own transaction, so one
// failing target leaves the others committed and the response says
// which was which.
func (h *RosterHandler) CopyAssignments(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sourceID, err := pathID(c, "id")
	if err != nil || sourceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid segment id"})
	}
	var body struct {
		TargetSegmentIDs []uint64 `json:"target_segment_ids"`
		Mode             string   `json:"mode"` // "merge" | "overwrite"
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	mode, err := roster.ParseCopyMode(body.Mode)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := roster.ValidateCopyRequest(sourceID, body.TargetSegmentIDs); err != nil {
		var ce *roster.InvalidCopyError
		if errors.As(err, &ce) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ce.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid copy request"})
	}

	ctx := c.Request().Context()
	source, err := h.Segments.GetByIDAndOwner(ctx, sourceID, ownerID)
	if err != nil {
		if err == repository.ErrSegmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "source segment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load source segment failed"})
	}
	// All targets must resolve to segments of the same production
	// before any write happens.
	targets := make([]*model.Segment, 0, len(body.TargetSegmentIDs))
	for _, id := range body.TargetSegmentIDs {
		t, err := h.Segments.GetByIDAndOwner(ctx, id, ownerID)
		if err != nil {
			if err == repository.ErrSegmentNotFound {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown target segment"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load target segment failed"})
		}
		if t.ProductionID != source.ProductionID {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "target segment belongs to another production"})
		}
		targets = append(targets, t)
	}

	sourceRows, err := h.Assignments.ListBySegment(ctx, sourceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load source assignments failed"})
	}

	results := make([]copyTargetResult, 0, len(targets))
	failed := 0
	for _, t := range targets {
		if err := h.Assignments.ApplyCopyToTarget(ctx, t.ID, sourceRows, mode); err != nil {
			results = append(results, copyTargetResult{SegmentID: t.ID, Status: "failed", Error: "apply copy failed"})
			failed++
			continue
		}
		results = append(results, copyTargetResult{SegmentID: t.ID, Status: "ok"})
	}

	notifyRundownChanged(ownerID, source.ProductionID, sourceID, "assignments.copied", string(mode))
	status := http.StatusOK
	if failed == len(results) && failed > 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, echo.Map{
		"source_segment_id": sourceID,
		"mode":              mode,
		"failed_count":      failed,
		"results":           results,
	})
}

// GetDefaultPositions handles GET /v1/segments/:id/default-positions.
// The template is advisory: it suggests which positions are usually
// staffed for segments with this name and never creates assignments.
func (h *RosterHandler) GetDefaultPositions(c echo.Context) error {
	seg, errResp := h.ownedSegment(c, "id")
	if seg == nil {
		return errResp
	}
	ctx := c.Request().Context()
	rows, err := h.Defaults.Resolve(ctx, strings.TrimSpace(seg.Name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve defaults failed"})
	}
	ids := make([]uint64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.PositionID)
	}
	positions, err := h.Positions.GetByIDs(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load positions failed"})
	}
	type defaultPositionView struct {
		PositionID uint64 `json:"position_id"`
		Name       string `json:"name"`
		Ord        int    `json:"ord"`
	}
	out := make([]defaultPositionView, 0, len(rows))
	for _, r := range rows {
		v := defaultPositionView{PositionID: r.PositionID, Ord: r.Ord}
		if p, ok := positions[r.PositionID]; ok {
			v.Name = p.Name
		}
		out = append(out, v)
	}
	return c.JSON(http.StatusOK, echo.Map{"segment_id": seg.ID, "default_positions": out})
}

// GetEligibleCrew handles GET /v1/productions/:id/positions/:positionID/eligible-crew.
// The filter is advisory: it narrows the candidate list for a position
// but never blocks an assignment made against it.
func (h *RosterHandler) GetEligibleCrew(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productionID, err := pathID(c, "id")
	if err != nil || productionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid production id"})
	}
	positionID, err := pathID(c, "positionID")
	if err != nil || positionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid position id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Productions.GetByIDAndOwner(ctx, productionID, ownerID); err != nil {
		if err == repository.ErrProductionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "production not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load production failed"})
	}
	pos, err := h.Positions.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, repository.ErrPositionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "position not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load position failed"})
	}
	crew, err := h.Crew.ListByProduction(ctx, productionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load crew failed"})
	}
	eligible := roster.EligibleCrew(*pos, crew)
	type memberView struct {
		PersonID uint64 `json:"person_id"`
		FullName string `json:"full_name"`
	}
	out := make([]memberView, 0, len(eligible))
	for _, m := range eligible {
		out = append(out, memberView{PersonID: m.ID, FullName: m.FullName})
	}
	return c.JSON(http.StatusOK, echo.Map{"position_id": positionID, "eligible": out})
}

// ListPositions handles GET /v1/positions and returns the shared
// position catalogue.
func (h *RosterHandler) ListPositions(c echo.Context) error {
	items, err := h.Positions.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list positions failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"positions": items})
}
