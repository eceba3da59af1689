package capability

import (
	capabilitydomain "github.com/railzwaylabs/paygate/internal/capability/domain"
	"github.com/railzwaylabs/paygate/internal/capability/service"
	"go.uber.org/fx"
)

var Module = fx.Module("capability",
	fx.Provide(
		fx.Annotate(service.NewStaticFetcher, fx.As(new(capabilitydomain.Fetcher))),
	),
	fx.Provide(
		fx.Annotate(
			service.NewCachedProvider,
			fx.As(new(capabilitydomain.Provider)),
			fx.As(new(capabilitydomain.Invalidator)),
		),
	),
)
