package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// migrationLockKey is shared by every paygate migrator.
const migrationLockKey int64 = 7_210_448_362

var errLockHeld = errors.New("migration_lock_held")

// withMigrationLock runs fn while holding a postgres session advisory lock.
// The lock lives on one pinned connection so unlock hits the same session.
func withMigrationLock(ctx context.Context, db *sql.DB, fn func() error) error {
	if db == nil {
		return errors.New("migration lock requires database handle")
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("pin migration connection: %w", err)
	}
	defer conn.Close()

	var locked bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", migrationLockKey).Scan(&locked); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	if !locked {
		return errLockHeld
	}

	runErr := fn()

	var released bool
	if err := conn.QueryRowContext(context.Background(), "SELECT pg_advisory_unlock($1)", migrationLockKey).Scan(&released); err != nil && runErr == nil {
		return fmt.Errorf("release migration lock: %w", err)
	}
	return runErr
}
