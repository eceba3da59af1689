package domain

import (
	"context"
	"errors"

	paymentmethod "github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
)

var ErrAccountRequired = errors.New("account_required")

// Fetcher retrieves the capability snapshot from the processor.
type Fetcher interface {
	FetchCapabilities(ctx context.Context, accountID string) (paymentmethod.Capabilities, error)
}

// Provider returns a capability snapshot, possibly from cache.
type Provider interface {
	Capabilities(ctx context.Context, accountID string) (paymentmethod.Capabilities, error)
}

// Invalidator drops a cached snapshot after the processor reports a change.
type Invalidator interface {
	Invalidate(ctx context.Context, accountID string) error
}
