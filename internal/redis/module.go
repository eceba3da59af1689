package redis

import (
	"context"
	"fmt"

	"github.com/railzwaylabs/paygate/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("redis",
	fx.Provide(NewClient),
)

// NewClient returns nil when no address is configured; callers then run
// without a cache.
func NewClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Info("redis disabled, capability snapshots will not be cached")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}
