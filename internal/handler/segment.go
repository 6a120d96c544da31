package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-rundown/internal/model"
	"github.com/iliyamo/matchday-rundown/internal/repository"
	"github.com/iliyamo/matchday-rundown/internal/schedule"
)

// Segment ordering endpoints. Every write that renumbers positions runs
// in one transaction holding the production row lock, so concurrent
// edits of the same rundown serialize and the contiguous 1..N numbering
// is what each writer sees and leaves behind.

// CreateSegment handles POST /v1/productions/:id/segments. An absent or
// zero position appends at the end; an explicit position shifts the
// tail up by one.
func (h *ProducerHandler) CreateSegment(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productionID, err := pathID(c, "id")
	if err != nil || productionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid production id"})
	}
	var body struct {
		Name            string `json:"name"`
		DurationMinutes int    `json:"duration_minutes"`
		Position        int    `json:"position"` // 0 = append
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.DurationMinutes < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_minutes must not be negative"})
	}
	ctx := c.Request().Context()
	if _, err := h.Productions.GetByIDAndOwner(ctx, productionID, ownerID); err != nil {
		if err == repository.ErrProductionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "production not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load production failed"})
	}

	tx, err := h.Segments.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Productions.LockTx(ctx, tx, productionID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lock production failed"})
	}
	segs, err := h.Segments.ListByProductionTx(ctx, tx, productionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segments failed"})
	}
	shifts, pos, err := schedule.PlanInsert(segs, body.Position)
	if err != nil {
		var oe *schedule.InvalidOrderingError
		if errors.As(err, &oe) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": oe.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "plan insert failed"})
	}
	if err := h.Segments.ApplyPlanTx(ctx, tx, shifts); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "renumber segments failed"})
	}
	seg := &model.Segment{
		ProductionID:    productionID,
		Name:            name,
		Position:        pos,
		DurationMinutes: body.DurationMinutes,
	}
	if err := h.Segments.InsertTx(ctx, tx, seg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create segment failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	notifyRundownChanged(ownerID, productionID, seg.ID, "segment.created", fmt.Sprintf("position=%d", pos))
	return c.JSON(http.StatusCreated, seg)
}

// MoveSegment handles PATCH /v1/segments/:id/position.
func (h *ProducerHandler) MoveSegment(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	segmentID, err := pathID(c, "id")
	if err != nil || segmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid segment id"})
	}
	var body struct {
		Position int `json:"position"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	seg, err := h.Segments.GetByIDAndOwner(ctx, segmentID, ownerID)
	if err != nil {
		if err == repository.ErrSegmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "segment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segment failed"})
	}

	tx, err := h.Segments.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Productions.LockTx(ctx, tx, seg.ProductionID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lock production failed"})
	}
	segs, err := h.Segments.ListByProductionTx(ctx, tx, seg.ProductionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segments failed"})
	}
	plan, err := schedule.PlanMove(segs, segmentID, body.Position)
	if err != nil {
		var oe *schedule.InvalidOrderingError
		if errors.As(err, &oe) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": oe.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "plan move failed"})
	}
	if err := h.Segments.ApplyPlanTx(ctx, tx, plan); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "renumber segments failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	notifyRundownChanged(ownerID, seg.ProductionID, segmentID, "segment.moved",
		fmt.Sprintf("from=%d to=%d", seg.Position, body.Position))
	return c.NoContent(http.StatusNoContent)
}

// UpdateSegment handles PATCH /v1/segments/:id. Only name and duration
// can be edited here; position changes go through MoveSegment so they
// always pass the ordering plan.
func (h *ProducerHandler) UpdateSegment(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	segmentID, err := pathID(c, "id")
	if err != nil || segmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid segment id"})
	}
	var body struct {
		Name            *string `json:"name"`
		DurationMinutes *int    `json:"duration_minutes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	seg, err := h.Segments.GetByIDAndOwner(ctx, segmentID, ownerID)
	if err != nil {
		if err == repository.ErrSegmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "segment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segment failed"})
	}

	name := seg.Name
	if body.Name != nil {
		name = strings.TrimSpace(*body.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
		}
	}
	duration := seg.DurationMinutes
	if body.DurationMinutes != nil {
		if *body.DurationMinutes < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_minutes must not be negative"})
		}
		duration = *body.DurationMinutes
	}
	if err := h.Segments.UpdateMeta(ctx, segmentID, name, duration); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update segment failed"})
	}

	notifyRundownChanged(ownerID, seg.ProductionID, segmentID, "segment.updated", "")
	return c.NoContent(http.StatusNoContent)
}

// DeleteSegment handles DELETE /v1/segments/:id. The segment's
// assignments go with it and the tail compacts down so positions stay
// contiguous.
func (h *ProducerHandler) DeleteSegment(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	segmentID, err := pathID(c, "id")
	if err != nil || segmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid segment id"})
	}
	ctx := c.Request().Context()
	seg, err := h.Segments.GetByIDAndOwner(ctx, segmentID, ownerID)
	if err != nil {
		if err == repository.ErrSegmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "segment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segment failed"})
	}

	tx, err := h.Segments.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Productions.LockTx(ctx, tx, seg.ProductionID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lock production failed"})
	}
	segs, err := h.Segments.ListByProductionTx(ctx, tx, seg.ProductionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segments failed"})
	}
	plan, err := schedule.PlanDelete(segs, segmentID)
	if err != nil {
		var oe *schedule.InvalidOrderingError
		if errors.As(err, &oe) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": oe.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "plan delete failed"})
	}
	if err := h.Segments.DeleteTx(ctx, tx, segmentID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete segment failed"})
	}
	if err := h.Segments.ApplyPlanTx(ctx, tx, plan); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "renumber segments failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	notifyRundownChanged(ownerID, seg.ProductionID, segmentID, "segment.deleted", "")
	return c.NoContent(http.StatusNoContent)
}

// SetAnchor handles POST /v1/segments/:id/anchor. Flagging a segment
// clears any previous anchor of the production in the same transaction,
// so the single-anchor rule holds at every commit point.
func (h *ProducerHandler) SetAnchor(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	segmentID, err := pathID(c, "id")
	if err != nil || segmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid segment id"})
	}
	ctx := c.Request().Context()
	seg, err := h.Segments.GetByIDAndOwner(ctx, segmentID, ownerID)
	if err != nil {
		if err == repository.ErrSegmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "segment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segment failed"})
	}

	tx, err := h.Segments.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Productions.LockTx(ctx, tx, seg.ProductionID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lock production failed"})
	}
	if err := h.Segments.SetAnchorTx(ctx, tx, seg.ProductionID, segmentID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "set anchor failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	notifyRundownChanged(ownerID, seg.ProductionID, segmentID, "anchor.set", "")
	return c.NoContent(http.StatusNoContent)
}

// ClearAnchor handles DELETE /v1/segments/:id/anchor. Afterwards the
// production has no anchor and timeline requests report that instead
// of guessing.
func (h *ProducerHandler) ClearAnchor(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	segmentID, err := pathID(c, "id")
	if err != nil || segmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid segment id"})
	}
	ctx := c.Request().Context()
	seg, err := h.Segments.GetByIDAndOwner(ctx, segmentID, ownerID)
	if err != nil {
		if err == repository.ErrSegmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "segment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segment failed"})
	}

	tx, err := h.Segments.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Productions.LockTx(ctx, tx, seg.ProductionID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lock production failed"})
	}
	if err := h.Segments.ClearAnchorTx(ctx, tx, segmentID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear anchor failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	notifyRundownChanged(ownerID, seg.ProductionID, segmentID, "anchor.cleared", "")
	return c.NoContent(http.StatusNoContent)
}
