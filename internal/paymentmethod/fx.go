package paymentmethod

import (
	"github.com/railzwaylabs/paygate/internal/config"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/repository"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/service"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/token"
	"go.uber.org/fx"
)

var Module = fx.Module("paymentmethod.service",
	fx.Provide(domain.DefaultRegistry),
	fx.Provide(repository.Provide),
	fx.Provide(token.NewFactory),
	fx.Provide(service.NewMetrics),
	fx.Provide(func(s *config.Settings) service.SettingsSource { return s }),
	fx.Provide(service.NewService),
)
