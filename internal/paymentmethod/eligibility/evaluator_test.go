package eligibility_test

import (
	"testing"

	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/eligibility"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enabledFor(registry *domain.Registry) domain.PluginConfiguration {
	return domain.PluginConfiguration{
		Enabled:           domain.EnabledYes,
		AcceptedMethodIDs: registry.IDs(),
	}
}

func withCapabilities(registry *domain.Registry, status domain.CapabilityStatus) domain.Capabilities {
	caps := domain.Capabilities{}
	for _, d := range registry.All() {
		caps[d.CapabilityKey] = status
	}
	return caps
}

func mustGet(t *testing.T, registry *domain.Registry, id domain.MethodID) domain.MethodDescriptor {
	t.Helper()
	d, ok := registry.Get(id)
	require.True(t, ok, "method %s not registered", id)
	return d
}

func TestIsEnabled(t *testing.T) {
	registry := domain.DefaultRegistry()

	for _, d := range registry.All() {
		for _, enabled := range []string{domain.EnabledYes, domain.EnabledNo, ""} {
			for _, present := range []bool{true, false} {
				cfg := domain.PluginConfiguration{Enabled: enabled}
				if present {
					cfg.AcceptedMethodIDs = []domain.MethodID{d.ID}
				} else {
					cfg.AcceptedMethodIDs = []domain.MethodID{"some_other_method"}
				}

				expected := enabled == domain.EnabledYes && present
				assert.Equal(t, expected, eligibility.IsEnabled(cfg, d),
					"method=%s enabled=%q present=%v", d.ID, enabled, present)
			}
		}
	}
}

func TestIsEnabled_PluginDisabledOverridesMethodList(t *testing.T) {
	registry := domain.DefaultRegistry()
	cfg := domain.PluginConfiguration{Enabled: domain.EnabledNo, AcceptedMethodIDs: registry.IDs()}

	for _, d := range registry.All() {
		assert.False(t, eligibility.IsEnabled(cfg, d), d.ID)
		result := eligibility.Evaluate(d, cfg, withCapabilities(registry, domain.CapabilityActive), domain.CheckoutContext{StoreCurrency: "USD"})
		assert.Equal(t, domain.GateEnabled, result.FailedGate, d.ID)
	}
}

func TestEvaluate_CardIgnoresCapabilities(t *testing.T) {
	registry := domain.DefaultRegistry()
	card := mustGet(t, registry, domain.MethodCard)

	checkout := domain.CheckoutContext{StoreCurrency: "USD", AccountCurrency: "USD", OrderAmount: decimal.NewFromInt(150)}
	inactive := withCapabilities(registry, domain.CapabilityInactive)

	assert.True(t, eligibility.IsEnabledAtCheckout(card, enabledFor(registry), inactive, checkout))
	assert.True(t, eligibility.IsEnabledAtCheckout(card, enabledFor(registry), domain.Capabilities{}, checkout))
}

func TestEvaluate_CapabilityToggle(t *testing.T) {
	registry := domain.DefaultRegistry()
	sepa := mustGet(t, registry, domain.MethodSepaDebit)
	checkout := domain.CheckoutContext{StoreCurrency: "EUR", AccountCurrency: "EUR", OrderAmount: decimal.NewFromInt(150)}

	caps := domain.Capabilities{sepa.CapabilityKey: domain.CapabilityInactive}
	result := eligibility.Evaluate(sepa, enabledFor(registry), caps, checkout)
	assert.False(t, result.Eligible)
	assert.Equal(t, domain.GateCapability, result.FailedGate)

	caps = domain.Capabilities{sepa.CapabilityKey: domain.CapabilityActive}
	result = eligibility.Evaluate(sepa, enabledFor(registry), caps, checkout)
	assert.True(t, result.Eligible)
	assert.Equal(t, domain.GateNone, result.FailedGate)
}

func TestEvaluate_EveryNonCardMethodNeedsItsCapability(t *testing.T) {
	registry := domain.DefaultRegistry()

	for _, d := range registry.All() {
		if d.CapabilityAlwaysActive {
			continue
		}
		t.Run(string(d.ID), func(t *testing.T) {
			currency := "USD"
			if len(d.SupportedCurrencies) > 0 {
				currency = d.SupportedCurrencies[0]
			}
			checkout := domain.CheckoutContext{StoreCurrency: currency, AccountCurrency: currency}

			caps := withCapabilities(registry, domain.CapabilityActive)
			caps[d.CapabilityKey] = domain.CapabilityInactive
			assert.False(t, eligibility.IsEnabledAtCheckout(d, enabledFor(registry), caps, checkout))

			caps[d.CapabilityKey] = domain.CapabilityActive
			assert.True(t, eligibility.IsEnabledAtCheckout(d, enabledFor(registry), caps, checkout))
		})
	}
}

func TestEvaluate_Currency(t *testing.T) {
	registry := domain.DefaultRegistry()
	caps := withCapabilities(registry, domain.CapabilityActive)
	cfg := enabledFor(registry)

	card := mustGet(t, registry, domain.MethodCard)
	assert.True(t, eligibility.IsEnabledAtCheckout(card, cfg, caps, domain.CheckoutContext{StoreCurrency: "CASHMONEY"}))

	sepa := mustGet(t, registry, domain.MethodSepaDebit)
	result := eligibility.Evaluate(sepa, cfg, caps, domain.CheckoutContext{StoreCurrency: "CASHMONEY"})
	assert.False(t, result.Eligible)
	assert.Equal(t, domain.GateCurrency, result.FailedGate)

	assert.True(t, eligibility.IsEnabledAtCheckout(sepa, cfg, caps, domain.CheckoutContext{StoreCurrency: "EUR"}))
}

func TestEvaluate_BNPLDomesticRestriction(t *testing.T) {
	registry := domain.DefaultRegistry()
	caps := withCapabilities(registry, domain.CapabilityActive)
	cfg := enabledFor(registry)

	for _, id := range []domain.MethodID{domain.MethodAffirm, domain.MethodAfterpayClearpay, domain.MethodKlarna} {
		t.Run(string(id), func(t *testing.T) {
			d := mustGet(t, registry, id)

			foreign := domain.CheckoutContext{StoreCurrency: "MXN", AccountCurrency: "USD", OrderAmount: decimal.NewFromInt(150)}
			assert.False(t, eligibility.IsEnabledAtCheckout(d, cfg, caps, foreign))

			domestic := domain.CheckoutContext{StoreCurrency: "USD", AccountCurrency: "USD", OrderAmount: decimal.NewFromInt(150)}
			assert.True(t, eligibility.IsEnabledAtCheckout(d, cfg, caps, domestic))

			unknownAccount := domain.CheckoutContext{StoreCurrency: "USD", OrderAmount: decimal.NewFromInt(150)}
			assert.Equal(t, domain.GateDomestic, eligibility.Evaluate(d, cfg, caps, unknownAccount).FailedGate)
		})
	}

	// Klarna accepts MXN, so the mismatch is reported by the domestic gate.
	klarna := mustGet(t, registry, domain.MethodKlarna)
	result := eligibility.Evaluate(klarna, cfg, caps, domain.CheckoutContext{StoreCurrency: "MXN", AccountCurrency: "USD", OrderAmount: decimal.NewFromInt(150)})
	assert.Equal(t, domain.GateDomestic, result.FailedGate)
}

func TestEvaluate_BNPLAmountLimits(t *testing.T) {
	registry := domain.DefaultRegistry()
	caps := withCapabilities(registry, domain.CapabilityActive)
	cfg := enabledFor(registry)

	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected bool
	}{
		{"below minimum", decimal.RequireFromString("0.3"), false},
		{"inside limits", decimal.NewFromInt(150), true},
		{"free order", decimal.Zero, true},
	}

	for _, id := range []domain.MethodID{domain.MethodAffirm, domain.MethodAfterpayClearpay, domain.MethodKlarna} {
		d := mustGet(t, registry, id)
		for _, tt := range tests {
			t.Run(string(id)+"/"+tt.name, func(t *testing.T) {
				checkout := domain.CheckoutContext{StoreCurrency: "USD", AccountCurrency: "USD", OrderAmount: tt.amount}
				result := eligibility.Evaluate(d, cfg, caps, checkout)
				assert.Equal(t, tt.expected, result.Eligible)
				if !tt.expected {
					assert.Equal(t, domain.GateAmountLimit, result.FailedGate)
				}
			})
		}
	}
}

func TestEvaluate_RecurringCart(t *testing.T) {
	registry := domain.DefaultRegistry()
	caps := withCapabilities(registry, domain.CapabilityActive)
	cfg := enabledFor(registry)

	for _, d := range registry.All() {
		t.Run(string(d.ID), func(t *testing.T) {
			currency := "USD"
			if len(d.SupportedCurrencies) > 0 {
				currency = d.SupportedCurrencies[0]
			}
			checkout := domain.CheckoutContext{
				StoreCurrency:        currency,
				AccountCurrency:      currency,
				CartHasRecurringItem: true,
			}

			result := eligibility.Evaluate(d, cfg, caps, checkout)
			if d.Reusable {
				assert.True(t, result.Eligible)
			} else {
				assert.False(t, result.Eligible)
				assert.Equal(t, domain.GateReusability, result.FailedGate)
			}

			// Same context without a subscription keeps every method eligible.
			checkout.CartHasRecurringItem = false
			assert.True(t, eligibility.IsEnabledAtCheckout(d, cfg, caps, checkout))
		})
	}
}

func TestEvaluate_GateOrder(t *testing.T) {
	registry := domain.DefaultRegistry()
	affirm := mustGet(t, registry, domain.MethodAffirm)

	// Everything fails; the first gate in order is reported.
	checkout := domain.CheckoutContext{StoreCurrency: "EUR", OrderAmount: decimal.RequireFromString("0.3"), CartHasRecurringItem: true}
	cfg := enabledFor(registry)

	assert.Equal(t, domain.GateCapability, eligibility.Evaluate(affirm, cfg, nil, checkout).FailedGate)

	caps := withCapabilities(registry, domain.CapabilityActive)
	assert.Equal(t, domain.GateCurrency, eligibility.Evaluate(affirm, cfg, caps, checkout).FailedGate)

	checkout.StoreCurrency = "USD"
	assert.Equal(t, domain.GateDomestic, eligibility.Evaluate(affirm, cfg, caps, checkout).FailedGate)

	checkout.AccountCurrency = "USD"
	assert.Equal(t, domain.GateAmountLimit, eligibility.Evaluate(affirm, cfg, caps, checkout).FailedGate)

	checkout.OrderAmount = decimal.NewFromInt(150)
	assert.Equal(t, domain.GateReusability, eligibility.Evaluate(affirm, cfg, caps, checkout).FailedGate)

	checkout.CartHasRecurringItem = false
	assert.Equal(t, domain.Result{Eligible: true}, eligibility.Evaluate(affirm, cfg, caps, checkout))
}

func TestEvaluate_DoesNotMutateInputs(t *testing.T) {
	registry := domain.DefaultRegistry()
	caps := domain.Capabilities{"sepa_debit_payments": domain.CapabilityActive}
	sepa := mustGet(t, registry, domain.MethodSepaDebit)

	eligibility.Evaluate(sepa, enabledFor(registry), caps, domain.CheckoutContext{StoreCurrency: "EUR"})
	assert.Equal(t, domain.Capabilities{"sepa_debit_payments": domain.CapabilityActive}, caps)
}
