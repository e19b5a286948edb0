package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devtrackhq/event-tracker/internal/apperr"
	"github.com/devtrackhq/event-tracker/internal/models"
)

// EventStore is the persistence surface the handlers depend on.
type EventStore interface {
	ResetSchema(ctx context.Context) error
	InsertEvent(ctx context.Context, ev models.DevelopmentEvent) (int64, error)
	ListEvents(ctx context.Context, f models.EventFilter) ([]models.DevelopmentEvent, error)
}

// RegisterEventRoutes registers the event API.
//
// GET  /init    - drop and recreate the events table (destructive)
// POST /ingest  - persist one event, returning its assigned id
// GET  /events  - list events, optionally filtered by source / event_type
//
// The OPTIONS acknowledgments answer CORS pre-flights without touching the
// database. Handlers never format errors themselves; failures are attached
// to the context and rendered at the router's error boundary.
func RegisterEventRoutes(r gin.IRoutes, st EventStore) {
	r.OPTIONS("/ingest", preflight)
	r.OPTIONS("/events", preflight)

	r.GET("/init", func(c *gin.Context) {
		if err := st.ResetSchema(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
		ok(c, gin.H{"status": "initialized"})
	})

	r.POST("/ingest", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			fail(c, apperr.Body(err))
			return
		}
		ev, err := models.ParseIngest(body)
		if err != nil {
			fail(c, apperr.JSON(err))
			return
		}
		id, err := st.InsertEvent(c.Request.Context(), ev)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, models.IngestResponse{Status: "ingested", ID: id})
	})

	r.GET("/events", func(c *gin.Context) {
		filter := models.EventFilter{
			Source:    c.Query("source"),
			EventType: c.Query("event_type"),
		}
		events, err := st.ListEvents(c.Request.Context(), filter)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, events)
	})
}

func preflight(c *gin.Context) {
	ok(c, gin.H{"status": "ok"})
}

// ok writes a success response with the fixed CORS header set. Error
// responses deliberately omit these headers.
func ok(c *gin.Context, body any) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "api,Keep-Alive,User-Agent,Content-Type")
	c.JSON(http.StatusOK, body)
}

// fail records a classified error for the boundary middleware to render.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
