package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/assets"
)

func TestOpenAndMigrate(t *testing.T) {
	db, err := Open(DriverPureGo, filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, assets.Migrations()))
	// second run is a no-op
	require.NoError(t, Migrate(ctx, db, assets.Migrations()))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	_, err = db.Exec(`INSERT INTO ledger (player, key, value) VALUES ('p', 'wins', 1)`)
	assert.NoError(t, err)
}

func TestMigrate_BadSQLRollsBack(t *testing.T) {
	db, err := Open(DriverPureGo, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{"001_bad.sql": {Data: []byte("CREATE TABLE oops (")}}
	assert.Error(t, Migrate(context.Background(), db, fsys))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("postgres", filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}
