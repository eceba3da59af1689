package migration

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRunMigrations_SQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, RunMigrations(conn))
	assert.True(t, conn.Migrator().HasTable("payment_tokens"))

	// idempotent
	require.NoError(t, RunMigrations(conn))
}

func TestRunMigrations_NilHandle(t *testing.T) {
	assert.Error(t, RunMigrations(nil))
}

func TestWithMigrationLock_NilHandle(t *testing.T) {
	assert.Error(t, withMigrationLock(t.Context(), nil, func() error { return nil }))
}

func TestLatestMigrationVersion(t *testing.T) {
	latest, err := LatestMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), latest)

	up, err := embeddedMigrations.ReadFile(migrationsDir + "/0001_create_payment_tokens.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS payment_tokens")

	down, err := embeddedMigrations.ReadFile(migrationsDir + "/0001_create_payment_tokens.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(down), "DROP TABLE IF EXISTS payment_tokens")
}

func TestParseMigrationVersion(t *testing.T) {
	tests := []struct {
		name    string
		version uint
		ok      bool
	}{
		{"0001_create_payment_tokens.up.sql", 1, true},
		{"0012_add_index.up.sql", 12, true},
		{"create_payment_tokens.up.sql", 0, false},
		{"_missing.up.sql", 0, false},
		{"0001.up.sql", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, ok := parseMigrationVersion(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.version, version)
		})
	}
}

type fakeVersioner struct {
	version uint
	dirty   bool
	err     error
}

func (f fakeVersioner) Version() (uint, bool, error) { return f.version, f.dirty, f.err }

func TestEnsureNotDirty(t *testing.T) {
	version, err := ensureNotDirty(fakeVersioner{err: migrate.ErrNilVersion})
	require.NoError(t, err)
	assert.Zero(t, version)

	version, err = ensureNotDirty(fakeVersioner{version: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	_, err = ensureNotDirty(fakeVersioner{version: 1, dirty: true})
	assert.ErrorContains(t, err, "dirty at version 1")

	_, err = ensureNotDirty(fakeVersioner{err: errors.New("connection reset")})
	assert.ErrorContains(t, err, "connection reset")
}
