// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-rundown/internal/handler"
	"github.com/iliyamo/matchday-rundown/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations (register, login, refresh, logout by
// refresh token) live under /v1/auth; endpoints that need a session
// live under /v1 behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("PRODUCER", "CREW"))
	auth.GET("/me", a.Me)
	auth.POST("/logout-all", a.LogoutAll)
}

// RegisterPlanner registers the producer-facing planning API: run of
// show editing, the computed rundown timeline, and staffing. All of it
// requires the PRODUCER role; extra middleware (response cache, rate
// limiter) is applied to the group when provided.
func RegisterPlanner(e *echo.Echo, ph *handler.ProducerHandler, rh *handler.RosterHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("PRODUCER"))
	for _, mw := range extra {
		g.Use(mw)
	}

	// Productions and the run of show.
	g.POST("/productions", ph.CreateProduction)
	g.GET("/productions", ph.ListProductions)
	g.GET("/productions/:id", ph.GetProduction)
	g.PATCH("/productions/:id/live-start", ph.SetLiveStart)
	g.GET("/productions/:id/rundown", ph.GetRundown)
	g.POST("/productions/:id/segments", ph.CreateSegment)

	// Segment editing. Position changes have their own route so every
	// reorder passes through the planner instead of a blind column update.
	g.PATCH("/segments/:id", ph.UpdateSegment)
	g.PATCH("/segments/:id/position", ph.MoveSegment)
	g.DELETE("/segments/:id", ph.DeleteSegment)
	g.POST("/segments/:id/anchor", ph.SetAnchor)
	g.DELETE("/segments/:id/anchor", ph.ClearAnchor)

	// Staffing: effective assignments, overrides, bulk copy, templates.
	g.GET("/segments/:id/assignments", rh.GetEffectiveAssignments)
	g.POST("/segments/:id/assignments", rh.AddAssignment)
	g.DELETE("/segments/:id/assignments/:assignmentID", rh.RemoveAssignment)
	g.POST("/segments/:id/copy-assignments", rh.CopyAssignments)
	g.GET("/segments/:id/default-positions", rh.GetDefaultPositions)

	// Roster and catalogue.
	g.GET("/positions", rh.ListPositions)
	g.GET("/productions/:id/positions/:positionID/eligible-crew", rh.GetEligibleCrew)
	g.GET("/productions/:id/crew", rh.ListCrew)
	g.POST("/productions/:id/crew", rh.AttachCrew)
	g.DELETE("/productions/:id/crew/:personID", rh.DetachCrew)
	g.GET("/productions/:id/baseline-assignments", rh.ListBaselineAssignments)
	g.POST("/productions/:id/baseline-assignments", rh.AddBaselineAssignment)
	g.DELETE("/productions/:id/baseline-assignments/:assignmentID", rh.RemoveBaselineAssignment)
}
