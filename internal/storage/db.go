package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/contactpro/internal/filex"
	"github.com/dmitrijs2005/contactpro/internal/logging"
	"github.com/dmitrijs2005/contactpro/internal/migrations"
	"github.com/dmitrijs2005/contactpro/internal/repositories/kv"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Database bundles the open connection with the repositories built on it.
type Database struct {
	DB *sql.DB
	KV kv.Repository
}

func (d *Database) Close() error {
	return d.DB.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB, log logging.Logger) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(&gooseLogger{ctx: ctx, log: log})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite file at dsn and
// migrates it. ":memory:" is accepted for throwaway databases.
func InitDatabase(ctx context.Context, dsn string, log logging.Logger) (*Database, error) {
	if dsn != ":memory:" {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug(ctx, "database ready", "dsn", dsn)

	return &Database{
		DB: db,
		KV: kv.NewSQLiteRepository(db),
	}, nil
}

// gooseLogger routes goose output into the application logger instead of
// stdout, where it would corrupt the REPL and TUI.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}

func (g *gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}
