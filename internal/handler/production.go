package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-rundown/internal/model"
	"github.com/iliyamo/matchday-rundown/internal/repository"
)

// ProducerHandler bundles the repositories behind the producer-facing
// planning endpoints: productions, their segments, and the computed
// rundown timeline.
type ProducerHandler struct {
	Productions *repository.ProductionRepo
	Segments    *repository.SegmentRepo
}

func NewProducerHandler(p *repository.ProductionRepo, s *repository.SegmentRepo) *ProducerHandler {
	return &ProducerHandler{Productions: p, Segments: s}
}

// CreateProduction handles POST /v1/productions.
func (h *ProducerHandler) CreateProduction(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name        string  `json:"name"`
		LiveStartAt *string `json:"live_start_at"` // optional, RFC3339
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	var liveStart *time.Time
	if body.LiveStartAt != nil && strings.TrimSpace(*body.LiveStartAt) != "" {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*body.LiveStartAt))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid live_start_at format"})
		}
		utc := t.UTC()
		liveStart = &utc
	}

	p := &model.Production{OwnerID: ownerID, Name: name, LiveStartAt: liveStart}
	if err := h.Productions.Create(c.Request().Context(), p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create production failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListProductions handles GET /v1/productions and returns only the
// caller's productions.
func (h *ProducerHandler) ListProductions(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Productions.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list productions failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"productions": items})
}

// GetProduction handles GET /v1/productions/:id and returns the
// production together with its ordered segments.
func (h *ProducerHandler) GetProduction(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid production id"})
	}
	p, err := h.Productions.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrProductionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "production not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load production failed"})
	}
	segs, err := h.Segments.ListByProduction(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load segments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"production": p, "segments": segs})
}

// SetLiveStart handles PATCH /v1/productions/:id/live-start. A null or
// missing live_start_at clears the instant; the anchor flag on segments
// is left untouched so timelines report the unset instant explicitly.
func (h *ProducerHandler) SetLiveStart(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid production id"})
	}
	var body struct {
		LiveStartAt *string `json:"live_start_at"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	var liveStart *time.Time
	if body.LiveStartAt != nil && strings.TrimSpace(*body.LiveStartAt) != "" {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*body.LiveStartAt))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid live_start_at format"})
		}
		utc := t.UTC()
		liveStart = &utc
	}
	if err := h.Productions.SetLiveStart(c.Request().Context(), id, ownerID, liveStart); err != nil {
		if err == repository.ErrProductionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "production not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update live start failed"})
	}
	notifyRundownChanged(ownerID, id, 0, "live_start.set", "")
	return c.NoContent(http.StatusNoContent)
}
