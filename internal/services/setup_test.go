package services

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/studyos/internal/logging"
	"github.com/dmitrijs2005/studyos/internal/repositories/decks"
	"github.com/dmitrijs2005/studyos/internal/repositories/files"
	"github.com/dmitrijs2005/studyos/internal/repositories/snapshots"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE files (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  mime_type TEXT NOT NULL,
  size INTEGER NOT NULL,
  created_at INTEGER NOT NULL,
  tags TEXT NOT NULL DEFAULT '[]',
  folder TEXT NOT NULL DEFAULT '/',
  data BLOB NOT NULL
);
CREATE TABLE snapshots (ts INTEGER PRIMARY KEY, data TEXT NOT NULL);
CREATE TABLE decks (name TEXT PRIMARY KEY);
CREATE TABLE cards (
  id TEXT PRIMARY KEY,
  deck TEXT NOT NULL,
  q TEXT NOT NULL,
  a TEXT NOT NULL,
  q_image_id INTEGER NOT NULL DEFAULT 0,
  a_image_id INTEGER NOT NULL DEFAULT 0,
  last_reviewed INTEGER NOT NULL DEFAULT 0,
  next_review INTEGER NOT NULL,
  interval INTEGER NOT NULL DEFAULT 0,
  ease_factor REAL NOT NULL DEFAULT 2.5,
  status TEXT NOT NULL DEFAULT 'new',
  position INTEGER NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

type repoSet struct {
	files files.Repository
	decks decks.Repository
	snaps snapshots.Repository
}

func setupRepos(t *testing.T) (*sql.DB, repoSet) {
	t.Helper()
	db := setupDB(t)
	return db, repoSet{
		files: files.NewSQLiteRepository(db),
		decks: decks.NewSQLiteRepository(db),
		snaps: snapshots.NewSQLiteRepository(db),
	}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}
