package middleware

import (
	"time"

	"go-worktrack/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger carrying request and actor ids,
// and logs one access line per request. Run it after RequestID and Session.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		fields := []zap.Field{zap.String("request_id", contextutil.GetRequestID(ctx))}
		if actor, ok := contextutil.GetActor(ctx); ok {
			fields = append(fields, zap.Int64("employee_id", actor.EmployeeID), zap.String("role", actor.Role))
		}
		reqLogger := logger.With(fields...)

		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))

		c.Next()

		reqLogger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
