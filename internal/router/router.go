// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups, mapping
// paths to their corresponding handlers.
package router

import (
	"github.com/deckwise/backend/internal/handler"
	"github.com/deckwise/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// New builds the echo router: global middleware in order, the error
// handler funnel, system routes, and the API route groups.
//
// Middleware order matters: RequestID must precede the context enhancer so
// the request-scoped logger carries the correlation ID, and the New Relic
// middleware must precede EnhanceTracing so a transaction exists to
// decorate.
func New(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	r.Use(middleware.RequestID())
	r.Use(m.Tracing.NewRelicMiddleware())
	r.Use(m.ContextEnhancer.EnhanceContext())
	r.Use(m.Global.RequestLogger())
	r.Use(m.Global.Recover())
	r.Use(m.Global.Secure())
	r.Use(m.Global.CORS())
	r.Use(m.Tracing.EnhanceTracing())

	registerSystemRoutes(r, h)

	api := r.Group("/api")

	// Public API routes.
	api.GET("/legal/:slug", h.Legal.GetDocument())

	// Authenticated API routes.
	protected := api.Group("", m.Auth.RequireAuth)

	protected.POST("/decks", h.Deck.CreateDeck())
	protected.GET("/decks", h.Deck.ListDecks())

	protected.POST("/generations", h.Generation.CreateGeneration(), m.RateLimit.Limit("create_generation"))
	protected.GET("/generations/:id", h.Generation.GetGeneration())

	return r
}
