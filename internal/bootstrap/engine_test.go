package bootstrap

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zion-platform/zion-sync/config"
	"github.com/zion-platform/zion-sync/internal/session"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()

	return config.AppConfig{
		API: config.APIConfig{
			BaseURL: "http://localhost:9",
			Timeout: time.Second,
		},
		Session: config.SessionConfig{
			Store:    config.StoreBackendFile,
			FilePath: filepath.Join(t.TempDir(), "session.json"),
		},
		Sync: config.SyncConfig{PollInterval: time.Second},
	}
}

func TestNewEngine_FileStore(t *testing.T) {
	engine, err := NewEngine(testConfig(t), nil)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, engine.Close())
	}()

	assert.Equal(t, session.StateInitializing, engine.Sessions.State())
	assert.NotNil(t, engine.Syncer)
	assert.NotNil(t, engine.AppState)
}

func TestNewEngine_PushRequiresDeviceToken(t *testing.T) {
	cfg := testConfig(t)
	cfg.Push.Enabled = true

	engine, err := NewEngine(cfg, nil)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, engine.Close())
	}()

	assert.Nil(t, engine.registrar)
}

func TestNewEngine_PushWithDeviceToken(t *testing.T) {
	cfg := testConfig(t)
	cfg.Push.Enabled = true
	cfg.Push.DeviceToken = "ExponentPushToken[abc]"

	engine, err := NewEngine(cfg, nil)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, engine.Close())
	}()

	assert.NotNil(t, engine.registrar)
}

func TestNewSessionStore_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.Store = config.StoreBackend("vault")

	_, _, err := newSessionStore(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session store backend")
}

func TestLoadConfig_Sanitizes(t *testing.T) {
	t.Setenv("API_TIMEOUT", "1ms")
	t.Setenv("SYNC_POLL_INTERVAL", "1ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.API.Timeout)
	assert.Equal(t, time.Second, cfg.Sync.PollInterval)
	assert.NotEmpty(t, cfg.Session.InstallationID)
}
