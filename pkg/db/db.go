package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/paygate/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormprometheus "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

// Dialector picks the gorm driver for the configured database.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "sqlite":
		return sqlite.Open(cfg.DSN), nil
	case "postgres", "postgresql":
		return postgres.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Open connects to the configured database. Query spans are recorded on tp
// when tracing is enabled.
func Open(cfg config.Config, tp trace.TracerProvider) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{}
	if cfg.IsProduction() {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	conn, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	if cfg.Tracing.Enabled && tp != nil {
		if err := conn.Use(otelgorm.NewPlugin(otelgorm.WithTracerProvider(tp))); err != nil {
			return nil, fmt.Errorf("register db tracing: %w", err)
		}
	}

	if cfg.Database.MetricsEnabled {
		if err := conn.Use(gormprometheus.New(gormprometheus.Config{
			DBName:          cfg.AppName,
			RefreshInterval: 15,
		})); err != nil {
			return nil, fmt.Errorf("register db metrics: %w", err)
		}
	}
	return conn, nil
}

func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, tp trace.TracerProvider) (*gorm.DB, error) {
	conn, err := Open(cfg, tp)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			log.Info("closing database connection")
			return sqlDB.Close()
		},
	})
	return conn, nil
}
