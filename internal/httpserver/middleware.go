package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/devtrackhq/event-tracker/internal/apperr"
)

// RequestLogger tags each request with an id and logs its outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)

		c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request")
	}
}

// ErrorBoundary is the single place failures become responses. Handlers
// attach classified errors; this middleware maps the first one to its
// status and generic message, logging the original detail. Nothing past
// this point sees internal error text.
func ErrorBoundary() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors[0].Err
		status, message := apperr.HTTP(err)

		log.Error().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Err(err).
			Msg("request failed")

		c.JSON(status, gin.H{"error": message})
	}
}
