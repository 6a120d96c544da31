package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-rundown/internal/repository"
	"github.com/iliyamo/matchday-rundown/internal/schedule"
)

// GetRundown handles GET /v1/productions/:id/rundown. It computes the
// projected on-air timeline from the current segment order, durations,
// and the anchor's fixed start instant. Nothing is persisted; the same
// stored state always yields the same timeline.
func (h *ProducerHandler) GetRundown(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid production id"})
	}
	ctx := c.Request().Context()
	p, err := h.Productions.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == repository.ErrProductionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "production not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load production failed"})
	}
	segs, err := h.Segments.ListByProduction(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segments failed"})
	}
	timeline, err := schedule.ComputeTimeline(segs, p.LiveStartAt)
	if err != nil {
		if errors.Is(err, schedule.ErrNoAnchor) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no time anchor configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "compute timeline failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"production_id": id, "timeline": timeline})
}
