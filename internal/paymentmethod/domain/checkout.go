package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CapabilityStatus string

const (
	CapabilityActive   CapabilityStatus = "active"
	CapabilityInactive CapabilityStatus = "inactive"
)

// Capabilities is a snapshot of the processor account's capability flags,
// keyed by capability key (e.g. "sepa_debit_payments").
type Capabilities map[string]CapabilityStatus

func (c Capabilities) IsActive(key string) bool {
	return c[key] == CapabilityActive
}

// CheckoutContext carries the per-request inputs of an eligibility decision.
type CheckoutContext struct {
	StoreCurrency string `json:"store_currency"`
	// AccountCurrency is the processor account's default currency. Empty
	// means unknown.
	AccountCurrency string `json:"account_currency,omitempty"`
	// OrderAmount is expressed in major units. Zero means the cart is not
	// priced yet or the order is free.
	OrderAmount          decimal.Decimal `json:"order_amount"`
	CartHasRecurringItem bool            `json:"cart_has_recurring_item"`
}

const (
	EnabledYes = "yes"
	EnabledNo  = "no"

	CaptureYes = "yes"
	CaptureNo  = "no"
)

// PluginConfiguration is the settings snapshot loaded once per request.
type PluginConfiguration struct {
	Enabled           string     `json:"enabled"`
	AcceptedMethodIDs []MethodID `json:"accepted_method_ids"`
	TestMode          bool       `json:"test_mode"`
	CaptureMode       string     `json:"capture_mode"`
}

func (c PluginConfiguration) PluginEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(c.Enabled), EnabledYes)
}

func (c PluginConfiguration) Accepts(id MethodID) bool {
	for _, accepted := range c.AcceptedMethodIDs {
		if accepted == id {
			return true
		}
	}
	return false
}

// CaptureImmediately defaults to true when the capture option is unset.
func (c PluginConfiguration) CaptureImmediately() bool {
	return !strings.EqualFold(strings.TrimSpace(c.CaptureMode), CaptureNo)
}

// Gate names one check of the eligibility decision.
type Gate string

const (
	GateNone        Gate = ""
	GateEnabled     Gate = "method_enabled"
	GateCapability  Gate = "capability"
	GateCurrency    Gate = "currency"
	GateDomestic    Gate = "domestic_restriction"
	GateAmountLimit Gate = "amount_limit"
	GateReusability Gate = "subscription_reusability"
)

// Result is the outcome of an eligibility decision. FailedGate is the first
// gate that rejected the method, GateNone when eligible.
type Result struct {
	Eligible   bool `json:"eligible"`
	FailedGate Gate `json:"failed_gate,omitempty"`
}

// Availability pairs a method with its eligibility result.
type Availability struct {
	Method MethodDescriptor `json:"method"`
	Result Result           `json:"result"`
}
