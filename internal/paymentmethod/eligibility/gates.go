package eligibility

import (
	"strings"

	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"github.com/shopspring/decimal"
)

// CapabilityGate reports whether the processor account has the method's
// capability active. Methods flagged CapabilityAlwaysActive always pass.
func CapabilityGate(d domain.MethodDescriptor, caps domain.Capabilities) bool {
	if d.CapabilityAlwaysActive {
		return true
	}
	return caps.IsActive(d.CapabilityKey)
}

// CurrencyGate accepts any currency when supported is empty.
func CurrencyGate(storeCurrency string, supported []string) bool {
	if len(supported) == 0 {
		return true
	}
	for _, currency := range supported {
		if strings.EqualFold(currency, storeCurrency) {
			return true
		}
	}
	return false
}

// DomesticGate fails closed when the account currency is unknown.
func DomesticGate(restricted bool, storeCurrency, accountCurrency string) bool {
	if !restricted {
		return true
	}
	if strings.TrimSpace(accountCurrency) == "" {
		return false
	}
	return strings.EqualFold(storeCurrency, accountCurrency)
}

// AmountLimitGate checks the order amount against the method's limit table.
func AmountLimitGate(d domain.MethodDescriptor, storeCurrency string, orderAmount decimal.Decimal) bool {
	if !d.HasAmountLimits() {
		return true
	}
	return InsideCurrencyLimits(d, storeCurrency, orderAmount)
}

// InsideCurrencyLimits reports whether orderAmount (major units) fits the
// limit row for currency. A zero amount always fits. A currency without a
// row never does.
func InsideCurrencyLimits(d domain.MethodDescriptor, currency string, orderAmount decimal.Decimal) bool {
	limit, ok := d.AmountLimitFor(currency)
	if !ok {
		return false
	}
	if orderAmount.IsZero() {
		return true
	}

	amount := ToMinorUnits(currency, orderAmount)
	if limit.Min != nil && amount < *limit.Min {
		return false
	}
	if limit.Max != nil && amount > *limit.Max {
		return false
	}
	return true
}

// ReusabilityGate keeps single-use methods away from carts that will create
// a recurring billing relationship.
func ReusabilityGate(reusable, cartHasRecurringItem bool) bool {
	if !cartHasRecurringItem {
		return true
	}
	return reusable
}
