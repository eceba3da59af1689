package config

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("config",
	fx.Provide(LoadFromEnv),
	fx.Provide(NewSettings),
	fx.Invoke(func(settings *Settings, log *zap.Logger) error {
		return Watch(os.Getenv(ConfigPathEnv), settings, log.Named("config"))
	}),
)
