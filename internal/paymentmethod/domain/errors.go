package domain

import "errors"

var (
	ErrConfigurationMissing = errors.New("configuration_missing")
	ErrUnsupportedOperation = errors.New("unsupported_operation")
	ErrUnknownCurrency      = errors.New("unknown_currency")
	ErrUnknownPaymentMethod = errors.New("unknown_payment_method")
	ErrInvalidPaymentRecord = errors.New("invalid_payment_record")
	ErrInvalidUser          = errors.New("invalid_user")
	ErrInvalidOrderAmount   = errors.New("invalid_order_amount")
)
