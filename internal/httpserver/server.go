package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devtrackhq/event-tracker/internal/apperr"
	"github.com/devtrackhq/event-tracker/internal/handlers"
)

// NewRouter wires the complete HTTP surface. The route table is closed:
// anything outside it, method or path, funnels through the error boundary
// as a Not Found failure.
func NewRouter(st handlers.EventStore) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	// Paths match exactly; a trailing-slash variant is outside the route
	// table and must 404, not redirect.
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(ErrorBoundary())

	// Root page identifies the service; the only non-JSON response.
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Development Event Tracker API")
	})

	handlers.RegisterEventRoutes(r, st)

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperr.NotFound())
	})

	return r
}
