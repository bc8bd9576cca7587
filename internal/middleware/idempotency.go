package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
)

// idempotencyBodyWriter wraps gin.ResponseWriter to capture the response body for idempotency caching
type idempotencyBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency middleware gives POST requests carrying an Idempotency-Key
// exactly-once semantics per client address and route. A repeated key replays
// the first successful response instead of logging the activity twice.
func Idempotency(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		log := logger.Ctx(c.Request.Context())
		clientID := c.ClientIP()
		route := c.Request.Method + " " + c.Request.URL.Path

		existing, err := repo.Get(c.Request.Context(), key, route, clientID)
		if err != nil {
			// Proceed without idempotency rather than blocking a valid request
			log.Error("failed to check idempotency key",
				logger.Err(err),
				logger.String("key", key),
			)
			c.Next()
			return
		}

		if existing != nil {
			log.Info("replaying idempotent response",
				logger.String("key", key),
				logger.String("route", route),
				logger.Int("status_code", existing.StatusCode),
			)

			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.StatusCode, "application/json; charset=utf-8", existing.ResponseBody)
			c.Abort()
			return
		}

		blw := &idempotencyBodyWriter{
			body:           bytes.NewBuffer(nil),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		c.Next()

		// Only cache successful responses
		statusCode := c.Writer.Status()
		if statusCode < 200 || statusCode >= 300 {
			return
		}
		if err := repo.Store(c.Request.Context(), key, route, clientID, blw.body.Bytes(), statusCode); err != nil {
			log.Warn("failed to store idempotency key",
				logger.Err(err),
				logger.String("key", key),
			)
			return
		}
		log.Debug("stored idempotency key",
			logger.String("key", key),
			logger.String("route", route),
			logger.Int("status_code", statusCode),
		)
	}
}
