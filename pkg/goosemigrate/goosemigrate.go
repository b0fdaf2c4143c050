package goosemigrate

import (
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrator runs goose SQL migrations from an fs.FS (usually an embed.FS,
// so the binary carries its own schema) against a dedicated schema with a
// schema-scoped version table.
type Migrator struct {
	postgresURL string
	fsys        fs.FS
	dir         string
	schemaName  string
}

func NewMigrator(postgresURL string, fsys fs.FS, dir, schemaName string) *Migrator {
	return &Migrator{
		postgresURL: postgresURL,
		fsys:        fsys,
		dir:         dir,
		schemaName:  schemaName,
	}
}

func (m *Migrator) Up() error {
	goose.SetBaseFS(m.fsys)
	defer goose.SetBaseFS(nil)

	goose.SetTableName(m.schemaName + ".migrations")

	db, err := goose.OpenDBWithDriver("pgx", m.postgresURL)
	if err != nil {
		return fmt.Errorf("failed to open DB for migration: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", m.schemaName)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := goose.Up(db, m.dir); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close db for migration: %w", err)
	}

	return nil
}

func (m *Migrator) Down() error {
	goose.SetBaseFS(m.fsys)
	defer goose.SetBaseFS(nil)

	goose.SetTableName(m.schemaName + ".migrations")

	db, err := goose.OpenDBWithDriver("pgx", m.postgresURL)
	if err != nil {
		return fmt.Errorf("failed to open DB for migration: %w", err)
	}

	if err := goose.Down(db, m.dir); err != nil {
		return fmt.Errorf("failed to down migrations: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", m.schemaName)); err != nil {
		return fmt.Errorf("failed to delete schema: %w", err)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close db for migration: %w", err)
	}

	return nil
}
