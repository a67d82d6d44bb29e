package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/lmoran/feedreg/internal/migrations"
	"github.com/lmoran/feedreg/internal/sqlite"
)

func newTestRepo(t *testing.T) sqlite.Repo {
	t.Helper()

	dbx, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A single connection so every statement sees the same in-memory db.
	dbx.SetMaxOpenConns(1)
	t.Cleanup(func() { dbx.Close() })

	require.NoError(t, migrations.Run(dbx))

	return sqlite.New(dbx)
}

func TestOpen_AppliesPragmas(t *testing.T) {
	dbx, err := sqlite.Open(filepath.Join(t.TempDir(), "pragmas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { dbx.Close() })

	// The pragma names have to be in the form this driver honors, or
	// they're silently dropped and every writer conflict is an
	// immediate SQLITE_BUSY.
	var journalMode string
	require.NoError(t, dbx.Get(&journalMode, "PRAGMA journal_mode;"))
	assert.Equal(t, "wal", journalMode)

	var busyTimeout int
	require.NoError(t, dbx.Get(&busyTimeout, "PRAGMA busy_timeout;"))
	assert.Equal(t, 5000, busyTimeout)
}
