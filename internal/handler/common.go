package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-rundown/internal/queue"
	queue_publisher "github.com/iliyamo/matchday-rundown/internal/service"
)

// getUserID extracts the authenticated user ID that the JWT middleware
// stored on the echo context.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	id, ok := v.(uint64)
	if !ok || id == 0 {
		return 0, errors.New("missing or invalid user id in context")
	}
	return id, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// notifyRundownChanged publishes a rundown.changed event in the background.
// Publishing is best effort: the HTTP response never waits on the broker
// and a failed publish only produces a log line inside the publisher.
func notifyRundownChanged(actorID, productionID, segmentID uint64, action, detail string) {
	ev := queue.RundownChangedEvent{
		ProductionID: productionID,
		SegmentID:    segmentID,
		Action:       action,
		ActorID:      actorID,
		Detail:       detail,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishRundownChanged(ctx, ev)
	}()
}
