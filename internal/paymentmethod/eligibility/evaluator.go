package eligibility

import "github.com/railzwaylabs/paygate/internal/paymentmethod/domain"

// IsEnabled reports whether the plugin is enabled and the method is in the
// accepted list. It does not depend on checkout state.
func IsEnabled(cfg domain.PluginConfiguration, d domain.MethodDescriptor) bool {
	return cfg.PluginEnabled() && cfg.Accepts(d.ID)
}

// Evaluate runs every gate in order and stops at the first failure.
func Evaluate(
	d domain.MethodDescriptor,
	cfg domain.PluginConfiguration,
	caps domain.Capabilities,
	checkout domain.CheckoutContext,
) domain.Result {
	switch {
	case !IsEnabled(cfg, d):
		return fail(domain.GateEnabled)
	case !CapabilityGate(d, caps):
		return fail(domain.GateCapability)
	case !CurrencyGate(checkout.StoreCurrency, d.SupportedCurrencies):
		return fail(domain.GateCurrency)
	case !DomesticGate(d.DomesticRestriction, checkout.StoreCurrency, checkout.AccountCurrency):
		return fail(domain.GateDomestic)
	case !AmountLimitGate(d, checkout.StoreCurrency, checkout.OrderAmount):
		return fail(domain.GateAmountLimit)
	case !ReusabilityGate(d.Reusable, checkout.CartHasRecurringItem):
		return fail(domain.GateReusability)
	}
	return domain.Result{Eligible: true}
}

// IsEnabledAtCheckout is Evaluate reduced to its boolean.
func IsEnabledAtCheckout(
	d domain.MethodDescriptor,
	cfg domain.PluginConfiguration,
	caps domain.Capabilities,
	checkout domain.CheckoutContext,
) bool {
	return Evaluate(d, cfg, caps, checkout).Eligible
}

func fail(gate domain.Gate) domain.Result {
	return domain.Result{FailedGate: gate}
}
