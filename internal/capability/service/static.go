package service

import (
	"context"

	"github.com/railzwaylabs/paygate/internal/config"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
)

// StaticFetcher serves the capability snapshot from configuration. It stands
// in for the processor API when none is wired, and follows settings reloads.
type StaticFetcher struct {
	settings *config.Settings
}

func NewStaticFetcher(settings *config.Settings) *StaticFetcher {
	return &StaticFetcher{settings: settings}
}

func (f *StaticFetcher) FetchCapabilities(ctx context.Context, accountID string) (domain.Capabilities, error) {
	return f.settings.Capabilities(), nil
}
