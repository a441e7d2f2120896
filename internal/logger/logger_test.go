package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-project-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(config.LoggerConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, l)

	_, err = New(config.LoggerConfig{Level: "loud", Format: "console"})
	require.Error(t, err)
}

func TestLogSecurityEvent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core)).WithComponent("auth")

	l.LogSecurityEvent("invalid_token", "alice", "10.0.0.1", map[string]interface{}{"reason": "expired"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Security event", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "auth", fields["component"])
	assert.Equal(t, "invalid_token", fields["security_event"])
	assert.Equal(t, "alice", fields["username"])
	assert.Equal(t, "expired", fields["reason"])
}
