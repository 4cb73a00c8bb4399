// Package migrations embeds the goose schema migrations for the SQL store
// backends and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// gooseDialects maps a store dialect to the goose dialect and the directory
// holding its migrations.
var gooseDialects = map[string]struct{ goose, dir string }{
	"postgres": {goose: "pgx", dir: "postgres"},
	"sqlite":   {goose: "sqlite3", dir: "sqlite"},
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies all pending migrations for dialect ("postgres" or "sqlite").
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	d, ok := gooseDialects[dialect]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(d.goose); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, d.dir)
}
