package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/toonsync/internal/common"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "toonsync.db", c.LocalDSN)
	assert.Equal(t, 30*time.Second, c.SyncInterval)
	assert.Equal(t, models.LatestWins, c.ConflictStrategy)
	assert.True(t, c.RealtimeEnabled)
	assert.Equal(t, common.DefaultRealtimeChannel, c.RealtimeChannel)
	assert.Equal(t, "slog", c.LogBackend)
}

func TestLoadConfig_FlagsOnly(t *testing.T) {
	cfg, err := LoadConfig([]string{"-d", "postgres://cloud", "-u", "user-1", "-i", "5s", "-s", "cloud_wins", "-r=false", "-x", "ignored"})
	require.NoError(t, err)

	assert.Equal(t, "postgres://cloud", cfg.CloudDSN)
	assert.Equal(t, "user-1", cfg.UserID)
	assert.Equal(t, 5*time.Second, cfg.SyncInterval)
	assert.Equal(t, models.CloudWins, cfg.ConflictStrategy)
	assert.False(t, cfg.RealtimeEnabled)
	assert.Equal(t, "toonsync.db", cfg.LocalDSN)
}

func TestLoadConfig_JSONThenFlags(t *testing.T) {
	path := writeJSON(t, `{
		"local_dsn": "/var/lib/toonsync/local.db",
		"cloud_dsn": "postgres://json",
		"user_id": "user-json",
		"sync_interval": "2m",
		"conflict_strategy": "local_wins",
		"realtime_enabled": false,
		"realtime_channel": "custom_channel",
		"log_backend": "zap",
		"log_level": "debug",
		"cloud_max_open_conns": 10,
		"cloud_conn_max_lifetime": "1h"
	}`)

	cfg, err := LoadConfig([]string{"-c", path, "-u", "user-flag"})
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/toonsync/local.db", cfg.LocalDSN)
	assert.Equal(t, "postgres://json", cfg.CloudDSN)
	assert.Equal(t, "user-flag", cfg.UserID)
	assert.Equal(t, 2*time.Minute, cfg.SyncInterval)
	assert.Equal(t, models.LocalWins, cfg.ConflictStrategy)
	assert.False(t, cfg.RealtimeEnabled)
	assert.Equal(t, "custom_channel", cfg.RealtimeChannel)
	assert.Equal(t, "zap", cfg.LogBackend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.CloudMaxOpenConns)
	assert.Equal(t, 2, cfg.CloudMaxIdleConns)
	assert.Equal(t, time.Hour, cfg.CloudConnMaxLifetime)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(nil)
	require.ErrorContains(t, err, "cloud_dsn is required")
	require.ErrorContains(t, err, "user_id is required")

	_, err = LoadConfig([]string{"-d", "x", "-u", "y", "-s", "first_wins"})
	require.ErrorIs(t, err, common.ErrInvalidStrategy)

	_, err = LoadConfig([]string{"-d", "x", "-u", "y", "-i", "soon"})
	require.ErrorContains(t, err, "parse flags")

	_, err = LoadConfig([]string{"-config=" + filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorContains(t, err, "read config")

	_, err = LoadConfig([]string{"-c", writeJSON(t, `{"sync_interval": true}`)})
	require.ErrorContains(t, err, "parse config")
}
