package bootstrap_test

import (
	"context"
	"testing"

	"go-worktrack/internal/bootstrap"
	"go-worktrack/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuditLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audit := bootstrap.NewAuditLogger("outbox worker", zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "rid-42")
	audit.Log(ctx, bootstrap.AuditLog{
		Action:  "PROCESS_SHUTDOWN",
		Message: "outbox worker is shutting down",
		Meta:    map[string]any{"signal": "terminated"},
	})
	audit.Log(context.Background(), bootstrap.AuditLog{Action: "SERVER_SHUTDOWN"})

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "audit", entries[0].LoggerName)

	first := entries[0].ContextMap()
	assert.Equal(t, "outbox worker", first["process"])
	assert.Equal(t, "PROCESS_SHUTDOWN", first["action"])
	assert.Equal(t, "rid-42", first["request_id"])
	assert.Contains(t, first, "pid")
	assert.Contains(t, first, "meta")

	second := entries[1].ContextMap()
	assert.NotContains(t, second, "request_id")
	assert.NotContains(t, second, "meta")
}
