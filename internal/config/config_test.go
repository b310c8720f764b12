package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("PRESENCE_BACKEND", "")
	t.Setenv("WS_PATH", "")
	t.Setenv("NODE_ID", "node-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, PresenceLocal, cfg.Realtime.PresenceBackend)
	assert.Equal(t, "/ws", cfg.Realtime.WSPath)
	assert.Equal(t, "node-1", cfg.Realtime.NodeID)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidPresenceBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PRESENCE_BACKEND", "etcd")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRedisBackendRequiresURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PRESENCE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REDIS_URL", "redis://localhost:6379")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, PresenceRedis, cfg.Realtime.PresenceBackend)
}
