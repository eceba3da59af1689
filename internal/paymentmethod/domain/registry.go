package domain

import "fmt"

// Registry holds one descriptor per method id in registration order.
// It is built once at startup and never mutated afterwards.
type Registry struct {
	order []MethodID
	byID  map[MethodID]MethodDescriptor
}

// NewRegistry panics on a duplicate or empty id.
func NewRegistry(descriptors ...MethodDescriptor) *Registry {
	r := &Registry{
		order: make([]MethodID, 0, len(descriptors)),
		byID:  make(map[MethodID]MethodDescriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if d.ID == "" {
			panic("paymentmethod: descriptor with empty id")
		}
		if _, exists := r.byID[d.ID]; exists {
			panic(fmt.Sprintf("paymentmethod: duplicate descriptor %q", d.ID))
		}
		r.order = append(r.order, d.ID)
		r.byID[d.ID] = d.Clone()
	}
	return r
}

func (r *Registry) Get(id MethodID) (MethodDescriptor, bool) {
	d, ok := r.byID[id]
	if !ok {
		return MethodDescriptor{}, false
	}
	return d.Clone(), true
}

func (r *Registry) All() []MethodDescriptor {
	out := make([]MethodDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out
}

func (r *Registry) IDs() []MethodID {
	return append([]MethodID(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }

func limit(min, max int64) AmountLimit {
	return AmountLimit{Min: &min, Max: &max}
}

func capabilityKey(id MethodID) string {
	return string(id) + "_payments"
}

// DefaultRegistry returns the descriptors for every supported method.
func DefaultRegistry() *Registry {
	return NewRegistry(
		MethodDescriptor{
			ID:                     MethodCard,
			Label:                  "Credit / Debit Card",
			Reusable:               true,
			CapabilityKey:          capabilityKey(MethodCard),
			CapabilityAlwaysActive: true,
		},
		MethodDescriptor{
			ID:                  MethodSepaDebit,
			Label:               "SEPA Direct Debit",
			Reusable:            true,
			SupportedCurrencies: []string{"EUR"},
			CapabilityKey:       capabilityKey(MethodSepaDebit),
		},
		MethodDescriptor{
			ID:                  MethodLink,
			Label:               "Link",
			Reusable:            true,
			SupportedCurrencies: []string{"USD"},
			CapabilityKey:       capabilityKey(MethodLink),
		},
		MethodDescriptor{
			ID:                  MethodCashApp,
			Label:               "Cash App Pay",
			Reusable:            true,
			SupportedCurrencies: []string{"USD"},
			CapabilityKey:       capabilityKey(MethodCashApp),
		},
		MethodDescriptor{
			ID:                  MethodAffirm,
			Label:               "Affirm",
			SupportedCurrencies: []string{"USD", "CAD"},
			DomesticRestriction: true,
			AmountLimits: map[string]AmountLimit{
				"USD": limit(5000, 3000000),
				"CAD": limit(5000, 3000000),
			},
			CapabilityKey: capabilityKey(MethodAffirm),
		},
		MethodDescriptor{
			ID:                  MethodAfterpayClearpay,
			Label:               "Afterpay / Clearpay",
			SupportedCurrencies: []string{"USD", "CAD", "GBP", "AUD", "NZD"},
			DomesticRestriction: true,
			AmountLimits: map[string]AmountLimit{
				"USD": limit(100, 400000),
				"CAD": limit(100, 200000),
				"GBP": limit(100, 120000),
				"AUD": limit(100, 400000),
				"NZD": limit(100, 400000),
			},
			CapabilityKey: capabilityKey(MethodAfterpayClearpay),
		},
		MethodDescriptor{
			ID:    MethodKlarna,
			Label: "Klarna",
			SupportedCurrencies: []string{
				"USD", "EUR", "GBP", "DKK", "NOK", "SEK", "CZK", "PLN", "CHF", "AUD", "NZD", "CAD", "MXN",
			},
			DomesticRestriction: true,
			AmountLimits: map[string]AmountLimit{
				"USD": limit(100, 1000000),
				"EUR": limit(100, 1000000),
				"GBP": limit(100, 500000),
				"DKK": limit(100, 10000000),
				"NOK": limit(100, 10000000),
				"SEK": limit(100, 15000000),
				"CZK": limit(100, 25000000),
				"PLN": limit(100, 4500000),
				"CHF": limit(100, 1000000),
				"AUD": limit(100, 1000000),
				"NZD": limit(100, 1000000),
				"CAD": limit(100, 1000000),
				"MXN": limit(100, 20000000),
			},
			CapabilityKey: capabilityKey(MethodKlarna),
		},
		MethodDescriptor{
			ID:                  MethodUSBankAccount,
			Label:               "ACH Direct Debit",
			Reusable:            true,
			SupportedCurrencies: []string{"USD"},
			DomesticRestriction: true,
			CapabilityKey:       capabilityKey(MethodUSBankAccount),
		},
		MethodDescriptor{
			ID:                  MethodBacsDebit,
			Label:               "Bacs Direct Debit",
			Reusable:            true,
			SupportedCurrencies: []string{"GBP"},
			CapabilityKey:       capabilityKey(MethodBacsDebit),
		},
		MethodDescriptor{
			ID:                  MethodAUBecsDebit,
			Label:               "BECS Direct Debit",
			Reusable:            true,
			SupportedCurrencies: []string{"AUD"},
			CapabilityKey:       capabilityKey(MethodAUBecsDebit),
		},
		MethodDescriptor{
			ID:                  MethodBancontact,
			Label:               "Bancontact",
			Reusable:            true,
			SupportedCurrencies: []string{"EUR"},
			CapabilityKey:       capabilityKey(MethodBancontact),
		},
		MethodDescriptor{
			ID:                  MethodIdeal,
			Label:               "iDEAL",
			Reusable:            true,
			SupportedCurrencies: []string{"EUR"},
			CapabilityKey:       capabilityKey(MethodIdeal),
		},
		MethodDescriptor{
			ID:                  MethodSofort,
			Label:               "Sofort",
			Reusable:            true,
			SupportedCurrencies: []string{"EUR"},
			CapabilityKey:       capabilityKey(MethodSofort),
		},
		MethodDescriptor{
			ID:                  MethodEPS,
			Label:               "EPS",
			SupportedCurrencies: []string{"EUR"},
			CapabilityKey:       capabilityKey(MethodEPS),
		},
		MethodDescriptor{
			ID:                  MethodGiropay,
			Label:               "giropay",
			SupportedCurrencies: []string{"EUR"},
			CapabilityKey:       capabilityKey(MethodGiropay),
		},
		MethodDescriptor{
			ID:                  MethodMultibanco,
			Label:               "Multibanco",
			SupportedCurrencies: []string{"EUR"},
			CapabilityKey:       capabilityKey(MethodMultibanco),
		},
		MethodDescriptor{
			ID:                  MethodP24,
			Label:               "Przelewy24",
			SupportedCurrencies: []string{"EUR", "PLN"},
			CapabilityKey:       capabilityKey(MethodP24),
		},
		MethodDescriptor{
			ID:                  MethodBlik,
			Label:               "BLIK",
			SupportedCurrencies: []string{"PLN"},
			DomesticRestriction: true,
			CapabilityKey:       capabilityKey(MethodBlik),
		},
		MethodDescriptor{
			ID:                  MethodBoleto,
			Label:               "Boleto",
			SupportedCurrencies: []string{"BRL"},
			DomesticRestriction: true,
			CapabilityKey:       capabilityKey(MethodBoleto),
		},
		MethodDescriptor{
			ID:                  MethodOxxo,
			Label:               "OXXO",
			SupportedCurrencies: []string{"MXN"},
			DomesticRestriction: true,
			AmountLimits: map[string]AmountLimit{
				"MXN": limit(1000, 1000000),
			},
			CapabilityKey: capabilityKey(MethodOxxo),
		},
		MethodDescriptor{
			ID:    MethodAlipay,
			Label: "Alipay",
			SupportedCurrencies: []string{
				"AUD", "CAD", "CNY", "EUR", "GBP", "HKD", "JPY", "MYR", "NZD", "SGD", "USD",
			},
			CapabilityKey: capabilityKey(MethodAlipay),
		},
		MethodDescriptor{
			ID:    MethodWeChatPay,
			Label: "WeChat Pay",
			SupportedCurrencies: []string{
				"AUD", "CAD", "CHF", "CNY", "DKK", "EUR", "GBP", "HKD", "JPY", "NOK", "SEK", "SGD", "USD",
			},
			CapabilityKey: capabilityKey(MethodWeChatPay),
		},
	)
}
