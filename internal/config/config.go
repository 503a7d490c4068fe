// Package config loads the sync daemon settings: defaults, then an optional
// JSON file (-c/-config), then command-line flags. Later sources win.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/toonsync/internal/common"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"go.uber.org/multierr"
)

type Config struct {
	// LocalDSN is the SQLite path (or ":memory:").
	LocalDSN string
	// CloudDSN is the Postgres connection string.
	CloudDSN string
	UserID   string

	SyncInterval     time.Duration
	ConflictStrategy models.ConflictStrategy

	RealtimeEnabled bool
	RealtimeChannel string

	LogBackend string
	LogLevel   string
	LogFile    string

	CloudMaxOpenConns    int
	CloudMaxIdleConns    int
	CloudConnMaxLifetime time.Duration
}

func (c *Config) LoadDefaults() {
	c.LocalDSN = "toonsync.db"
	c.SyncInterval = 30 * time.Second
	c.ConflictStrategy = models.LatestWins
	c.RealtimeEnabled = true
	c.RealtimeChannel = common.DefaultRealtimeChannel
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.CloudMaxOpenConns = 4
	c.CloudMaxIdleConns = 2
	c.CloudConnMaxLifetime = 30 * time.Minute
}

// LoadConfig builds a Config from args (usually os.Args[1:]) and validates it.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var err error
	if c.CloudDSN == "" {
		err = multierr.Append(err, errors.New("cloud_dsn is required"))
	}
	if c.UserID == "" {
		err = multierr.Append(err, errors.New("user_id is required"))
	}
	if c.LocalDSN == "" {
		err = multierr.Append(err, errors.New("local_dsn is required"))
	}
	if c.SyncInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("sync_interval must be positive, got %s", c.SyncInterval))
	}
	if _, perr := models.ParseConflictStrategy(string(c.ConflictStrategy)); perr != nil {
		err = multierr.Append(err, perr)
	}
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
