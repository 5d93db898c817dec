// Package storage bootstraps the local SQLite database and bundles the
// repositories built on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/medxscan/internal/migrations"
	"github.com/dmitrijs2005/medxscan/internal/repositories/analyses"
	"github.com/dmitrijs2005/medxscan/internal/repositories/session"
	"github.com/dmitrijs2005/medxscan/internal/repositories/users"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the local persistence layer for composition.
type Repositories struct {
	Users    users.Repository
	Analyses analyses.Repository
	Session  session.Repository
}

// NewRepositories returns SQLite-backed repositories over db.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:    users.NewSQLiteRepository(db),
		Analyses: analyses.NewSQLiteRepository(db),
		Session:  session.NewSQLiteRepository(db),
	}
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the SQLite database at path and
// brings its schema up to date. The caller owns the returned handle.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
