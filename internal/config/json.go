package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/toonsync/internal/flagx"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/timex"
)

// JsonConfig is the on-disk shape. Absent fields keep their current value.
type JsonConfig struct {
	LocalDSN         string         `json:"local_dsn"`
	CloudDSN         string         `json:"cloud_dsn"`
	UserID           string         `json:"user_id"`
	SyncInterval     timex.Duration `json:"sync_interval"`
	ConflictStrategy string         `json:"conflict_strategy"`
	RealtimeEnabled  *bool          `json:"realtime_enabled"`
	RealtimeChannel  string         `json:"realtime_channel"`

	LogBackend string `json:"log_backend"`
	LogLevel   string `json:"log_level"`
	LogFile    string `json:"log_file"`

	CloudMaxOpenConns    int            `json:"cloud_max_open_conns"`
	CloudMaxIdleConns    int            `json:"cloud_max_idle_conns"`
	CloudConnMaxLifetime timex.Duration `json:"cloud_conn_max_lifetime"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.LocalDSN, jc.LocalDSN)
	setString(&cfg.CloudDSN, jc.CloudDSN)
	setString(&cfg.UserID, jc.UserID)
	if jc.SyncInterval.Duration != 0 {
		cfg.SyncInterval = jc.SyncInterval.Duration
	}
	if jc.ConflictStrategy != "" {
		cfg.ConflictStrategy = models.ConflictStrategy(jc.ConflictStrategy)
	}
	if jc.RealtimeEnabled != nil {
		cfg.RealtimeEnabled = *jc.RealtimeEnabled
	}
	setString(&cfg.RealtimeChannel, jc.RealtimeChannel)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFile, jc.LogFile)
	if jc.CloudMaxOpenConns != 0 {
		cfg.CloudMaxOpenConns = jc.CloudMaxOpenConns
	}
	if jc.CloudMaxIdleConns != 0 {
		cfg.CloudMaxIdleConns = jc.CloudMaxIdleConns
	}
	if jc.CloudConnMaxLifetime.Duration != 0 {
		cfg.CloudConnMaxLifetime = jc.CloudConnMaxLifetime.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
