// Package app wires the sync daemon: local SQLite stores, the cloud Postgres
// repositories, the periodic sync loop and the realtime subscription.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/toonsync/internal/cloud/repomanager"
	"github.com/dmitrijs2005/toonsync/internal/config"
	"github.com/dmitrijs2005/toonsync/internal/local"
	"github.com/dmitrijs2005/toonsync/internal/logging"
	"github.com/dmitrijs2005/toonsync/internal/realtime"
	"github.com/dmitrijs2005/toonsync/internal/syncer"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Realtime is the subscription side of the daemon. *realtime.Bridge
// satisfies it.
type Realtime interface {
	Subscribe(ctx context.Context, userID string, onUpdate realtime.UpdateFunc, onDelete realtime.DeleteFunc) (*realtime.Subscription, error)
	Unsubscribe(sub *realtime.Subscription)
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	sync    syncer.Service
	rt      Realtime
	applier *realtime.StoreApplier

	closers []func() error
}

// NewApp opens both databases, applies migrations and builds the services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, closeLog, err := logging.New(logging.Options{
		Backend:    cfg.LogBackend,
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 14,
	})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	stores, err := local.InitDatabase(ctx, cfg.LocalDSN)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("local db init error: %w", err), closeLog())
	}

	cloudDB, err := repomanager.Open(ctx, cfg.CloudDSN, repomanager.PoolOptions{
		MaxOpenConns:    cfg.CloudMaxOpenConns,
		MaxIdleConns:    cfg.CloudMaxIdleConns,
		ConnMaxLifetime: cfg.CloudConnMaxLifetime,
	})
	if err != nil {
		return nil, multierr.Combine(fmt.Errorf("cloud db init error: %w", err), stores.Close(), closeLog())
	}

	closeAll := func() error {
		return multierr.Combine(cloudDB.Close(), stores.Close(), closeLog())
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, cloudDB); err != nil {
		return nil, multierr.Append(err, closeAll())
	}

	app := build(cfg, logger, stores, cloudDB, rm)
	app.closers = append(app.closers, closeAll)
	return app, nil
}

func build(cfg *config.Config, logger logging.Logger, stores *local.Stores, cloudDB *sql.DB, rm repomanager.RepositoryManager) *App {
	cloudNotes := rm.Notes(cloudDB)

	svc := syncer.NewService(syncer.Deps{
		CloudNotes:  cloudNotes,
		CloudLabels: rm.Labels(cloudDB),
		CloudBoards: rm.Boards(cloudDB),
		LocalNotes:  stores.Notes,
		LocalLabels: stores.Labels,
		LocalBoards: stores.Boards,
		Logger:      logger,
	})

	app := &App{
		config:  cfg,
		logger:  logger,
		sync:    svc,
		applier: realtime.NewStoreApplier(stores.Notes, logger),
	}

	if cfg.RealtimeEnabled {
		listener := realtime.NewPgListener(cfg.CloudDSN, realtime.ListenerOptions{}, logger)
		app.rt = realtime.NewBridge(listener, cloudNotes, cfg.RealtimeChannel, logger)
	}
	return app
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run blocks until ctx is cancelled or a signal arrives. A sync pass runs
// immediately and then every sync interval.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "user_id", app.config.UserID, "interval", app.config.SyncInterval)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.runSyncLoop(ctx)
		return nil
	})

	if app.rt != nil {
		g.Go(func() error {
			return app.runRealtime(ctx)
		})
	}

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) runSyncLoop(ctx context.Context) {
	app.syncOnce(ctx)

	ticker := time.NewTicker(app.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			app.syncOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (app *App) syncOnce(ctx context.Context) {
	res := app.sync.SyncAll(ctx, app.config.UserID, syncer.Options{ConflictStrategy: app.config.ConflictStrategy})
	if len(res.Errors) > 0 {
		app.logger.Warn(ctx, "sync finished with errors",
			"uploaded", res.Uploaded, "downloaded", res.Downloaded, "errors", res.Messages())
		return
	}
	app.logger.Info(ctx, "sync finished", "uploaded", res.Uploaded, "downloaded", res.Downloaded, "skipped", res.Skipped)
}

func (app *App) runRealtime(ctx context.Context) error {
	sub, err := app.rt.Subscribe(ctx, app.config.UserID, app.applier.OnUpdate, app.applier.OnDelete)
	if err != nil {
		return fmt.Errorf("realtime subscribe: %w", err)
	}
	defer app.rt.Unsubscribe(sub)

	select {
	case <-ctx.Done():
		return nil
	case <-sub.Done():
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("realtime stopped: %w", sub.Err())
	}
}

// Close releases the databases and then the log output.
func (app *App) Close() error {
	var err error
	for _, c := range app.closers {
		err = multierr.Append(err, c())
	}
	return err
}
