package bootstrap

import (
	"context"
	"os"

	"go-worktrack/internal/shared/contextutil"

	"go.uber.org/zap"
)

// AuditLog is one lifecycle event of a running process.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type zapAuditLogger struct {
	log *zap.Logger
}

// NewAuditLogger writes audit entries through logger, tagged with the process
// name and pid so api, worker and consumer lines can be told apart.
func NewAuditLogger(process string, logger *zap.Logger) AuditLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &zapAuditLogger{
		log: logger.Named("audit").With(
			zap.String("process", process),
			zap.Int("pid", os.Getpid()),
		),
	}
}

func (l *zapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}
	l.log.Info("audit event", fields...)
}
