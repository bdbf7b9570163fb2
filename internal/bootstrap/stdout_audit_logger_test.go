package bootstrap_test

import (
	"context"
	"testing"

	"github.com/andreicionca/motivare-absente/internal/bootstrap"
	"github.com/andreicionca/motivare-absente/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	bootstrap.NewStdoutAuditLogger().Log(context.Background(), bootstrap.AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"signal": "terminated"},
	})

	entries := logs.FilterMessage("audit event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)
	assert.Equal(t, "SERVER_SHUTDOWN", entries[0].ContextMap()["action"])
}

func TestStdoutAuditLogger_CarriesActor(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	ctx = contextutil.WithUserID(ctx, "u-9")
	ctx = contextutil.WithRole(ctx, "teacher")

	bootstrap.NewStdoutAuditLogger(zap.New(core)).Log(ctx, bootstrap.AuditLog{Action: "SERVER_START", Message: "listening"})

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "rid-1", fields["request_id"])
	assert.Equal(t, "u-9", fields["actor_id"])
	assert.Equal(t, "teacher", fields["actor_role"])
	assert.NotContains(t, fields, "meta")
}
