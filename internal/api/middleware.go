package api

import (
	"net/http"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/logger"
	"github.com/DEFRA/content-reviewer-frontend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie names the cookie the flash-message store is keyed by.
const SessionCookie = "crf_session"

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SessionMiddleware makes sure every browser carries a session id
// cookie, created on first contact.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := c.Cookie(SessionCookie); err != nil {
			id := uuid.NewString()
			c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
			c.Set(SessionCookie, id)
		}
		c.Next()
	}
}

// SessionID returns the request's session id, whether it arrived as a
// cookie or was just issued.
func SessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil {
		return id
	}
	if id, ok := c.Get(SessionCookie); ok {
		return id.(string)
	}
	return ""
}

func LoggingMiddleware() gin.HandlerFunc {
	log := logger.Get()
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}

func RecoveryMiddleware() gin.HandlerFunc {
	log := logger.Get()
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("Panic recovered in handler")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			model.ErrorResponse{Success: false, Message: "Internal server error"})
	})
}
