package database

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MigratesAndSeedsCatalog(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sim.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var roles, achievements int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM roles`).Scan(&roles))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM achievements`).Scan(&achievements))
	assert.Equal(t, 6, roles)
	assert.Equal(t, 6, achievements)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.db")

	first, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	var roles int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM roles`).Scan(&roles))
	assert.Equal(t, 6, roles)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on&_busy_timeout=5000", dsn("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_foreign_keys=on&_busy_timeout=5000", dsn("file:a.db?mode=rwc"))
}
