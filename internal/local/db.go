// Package local owns the on-device SQLite database: schema migrations and the
// note, label and board stores built on it.
package local

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/toonsync/internal/local/migrations"
	"github.com/dmitrijs2005/toonsync/internal/local/repositories/boards"
	"github.com/dmitrijs2005/toonsync/internal/local/repositories/labels"
	"github.com/dmitrijs2005/toonsync/internal/local/repositories/notes"
	"github.com/pressly/goose/v3"
	"go.uber.org/multierr"

	_ "modernc.org/sqlite"
)

// Stores groups the local repositories sharing one database handle.
type Stores struct {
	Notes  *notes.SQLiteRepository
	Labels *labels.SQLiteRepository
	Boards *boards.SQLiteRepository

	db *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens dsn, migrates it and returns the stores.
func InitDatabase(ctx context.Context, dsn string) (*Stores, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and keeps :memory: databases
	// alive for the lifetime of the handle.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		return nil, multierr.Append(fmt.Errorf("local migrations: %w", err), db.Close())
	}

	return &Stores{
		Notes:  notes.NewSQLiteRepository(db),
		Labels: labels.NewSQLiteRepository(db),
		Boards: boards.NewSQLiteRepository(db),
		db:     db,
	}, nil
}

func (s *Stores) DB() *sql.DB {
	return s.db
}

func (s *Stores) Close() error {
	return s.db.Close()
}
