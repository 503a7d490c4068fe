package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/toonsync/internal/flagx"
	"github.com/dmitrijs2005/toonsync/internal/models"
)

// parseFlags overlays cfg with command-line flags.
//
//	-l string     local SQLite DSN
//	-d string     cloud Postgres DSN
//	-u string     user id to sync
//	-i duration   sync interval, e.g. 30s
//	-s string     conflict strategy: latest_wins, local_wins, cloud_wins
//	-r bool       keep a realtime subscription open (use -r=false to disable)
//	-log-level    debug, info, warn, error
//	-log-backend  slog or zap
//	-log-file     rotate logs into this file
//
// Only these flags are parsed; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-l", "-d", "-u", "-i", "-s", "-r", "-log-level", "-log-backend", "-log-file",
	})

	fs := flag.NewFlagSet("toonsync", flag.ContinueOnError)

	fs.StringVar(&cfg.LocalDSN, "l", cfg.LocalDSN, "local SQLite DSN")
	fs.StringVar(&cfg.CloudDSN, "d", cfg.CloudDSN, "cloud Postgres DSN")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "user id to sync")
	fs.DurationVar(&cfg.SyncInterval, "i", cfg.SyncInterval, "sync interval")
	strategy := fs.String("s", string(cfg.ConflictStrategy), "conflict strategy")
	fs.BoolVar(&cfg.RealtimeEnabled, "r", cfg.RealtimeEnabled, "enable realtime subscription")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "log backend")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.ConflictStrategy = models.ConflictStrategy(*strategy)
	return nil
}
