package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(NewLogger),
	fx.Provide(NewRegistry),
	fx.Provide(NewTracerProvider),
	fx.Provide(func(reg *prometheus.Registry) prometheus.Registerer { return reg }),
	fx.Invoke(func(lc fx.Lifecycle, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				_ = log.Sync()
				return nil
			},
		})
	}),
)
