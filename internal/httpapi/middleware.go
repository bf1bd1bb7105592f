package httpapi

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/promptstudio/prompt-studio/internal/platform/logger"
	"github.com/promptstudio/prompt-studio/internal/platform/requestid"
)

const requestIDKey = "request_id"

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if id == "" {
			id = requestid.New()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func accessLogMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.With(
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		).Info("http request")
	}
}

// recoverMiddleware catches panics at the boundary, logs the full detail
// server-side, and returns the generic execution failure to the caller.
func recoverMiddleware(log *logger.Logger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.With(
					"request_id", c.GetString(requestIDKey),
					"panic", rec,
					"stack", string(debug.Stack()),
				).Error("panic recovered")

				msg := "Internal server error"
				if development {
					msg = strings.TrimSpace(strings.Join([]string{"Internal server error:", toString(rec)}, " "))
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg})
			}
		}()
		c.Next()
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return ""
}

// corsMiddleware restricts cross-origin access to the one configured
// client origin.
func corsMiddleware(origin string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
}

// bodyLimitMiddleware caps request bodies; oversized reads fail inside the
// JSON decoder and surface as malformed-request errors.
func bodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
