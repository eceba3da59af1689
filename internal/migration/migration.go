package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"gorm.io/gorm"
)

// Models lists every table owned by this service.
func Models() []any {
	return []any{
		&domain.TokenRecord{},
	}
}

// RunMigrations brings the schema up to date. Postgres applies the embedded
// SQL migrations under an advisory lock; sqlite and mysql, used for local
// runs and tests, are auto-migrated from the models.
func RunMigrations(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if conn.Dialector.Name() != "postgres" {
		if err := conn.WithContext(ctx).AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return withMigrationLock(ctx, sqlDB, func() error {
		return applyEmbedded(sqlDB)
	})
}

func applyEmbedded(db *sql.DB) error {
	latest, err := LatestMigrationVersion()
	if err != nil {
		return err
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if _, err := ensureNotDirty(migrator); err != nil {
		return err
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	current, err := ensureNotDirty(migrator)
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version mismatch after migrate: got %d want %d", current, latest)
	}
	return nil
}

type versioner interface {
	Version() (uint, bool, error)
}

func ensureNotDirty(m versioner) (uint, error) {
	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, nil
		}
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("database migrations are dirty at version %d", version)
	}
	return version, nil
}
