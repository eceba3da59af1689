package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// AvailabilityRequest is the cart state sent by the checkout page.
type AvailabilityRequest struct {
	Currency             string
	OrderAmount          decimal.Decimal
	CartHasRecurringItem bool
}

type Service interface {
	// AvailableMethods evaluates every registered method for the current checkout
	AvailableMethods(ctx context.Context, req AvailabilityRequest) ([]Availability, error)

	// CreatePaymentToken builds and stores a token from a completed payment
	CreatePaymentToken(ctx context.Context, userID string, record PaymentRecord) (Token, error)

	// ListPaymentTokens returns the user's stored tokens, newest first
	ListPaymentTokens(ctx context.Context, userID string) ([]Token, error)
}
