package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/request"
	"go-worktrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	idempotencyTTL       = 24 * time.Hour
	idempotencyLockTTL   = 30 * time.Second
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a successful POST carrying the
// same Idempotency-Key, so a double-submitted form creates one row.
func Idempotency(rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("middleware.idempotency")
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		var owner int64
		if actor, err := request.Actor(c); err == nil {
			owner = actor.EmployeeID
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%d:%s", c.FullPath(), owner, idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(val, &cached) == nil {
				c.Header("Idempotent-Replay", "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		locked, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !locked {
			response.Error(c, http.StatusConflict, apperror.CodeProcessing, "This request is already being processed", nil)
			c.Abort()
			return
		}
		defer rdb.Del(ctx, lockKey)

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		payload, err := json.Marshal(cachedResponse{Status: status, Body: rec.buf.Bytes()})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, payload, idempotencyTTL).Err(); err != nil {
			log.Warn("idempotency store failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
}
