// Package repositories wires the SQLite-backed stores together and owns
// database bootstrap (open + goose migrations).
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/studyos/internal/migrations"
	"github.com/dmitrijs2005/studyos/internal/repositories/decks"
	"github.com/dmitrijs2005/studyos/internal/repositories/files"
	"github.com/dmitrijs2005/studyos/internal/repositories/snapshots"
	"github.com/pressly/goose/v3"
)

type Repositories struct {
	Files     files.Repository
	Snapshots snapshots.Repository
	Decks     decks.Repository
	DB        *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	repos := &Repositories{
		Files:     files.NewSQLiteRepository(db),
		Snapshots: snapshots.NewSQLiteRepository(db),
		Decks:     decks.NewSQLiteRepository(db),
		DB:        db,
	}
	return repos, nil
}
