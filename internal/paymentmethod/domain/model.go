package domain

import "strings"

// MethodID identifies a checkout payment method.
type MethodID string

const (
	MethodCard             MethodID = "card"
	MethodSepaDebit        MethodID = "sepa_debit"
	MethodLink             MethodID = "link"
	MethodCashApp          MethodID = "cashapp"
	MethodAffirm           MethodID = "affirm"
	MethodAfterpayClearpay MethodID = "afterpay_clearpay"
	MethodKlarna           MethodID = "klarna"
	MethodUSBankAccount    MethodID = "us_bank_account"
	MethodBacsDebit        MethodID = "bacs_debit"
	MethodAUBecsDebit      MethodID = "au_becs_debit"
	MethodBancontact       MethodID = "bancontact"
	MethodIdeal            MethodID = "ideal"
	MethodSofort           MethodID = "sofort"
	MethodEPS              MethodID = "eps"
	MethodGiropay          MethodID = "giropay"
	MethodMultibanco       MethodID = "multibanco"
	MethodP24              MethodID = "p24"
	MethodBlik             MethodID = "blik"
	MethodBoleto           MethodID = "boleto"
	MethodOxxo             MethodID = "oxxo"
	MethodAlipay           MethodID = "alipay"
	MethodWeChatPay        MethodID = "wechat_pay"
)

func (id MethodID) String() string { return string(id) }

// AmountLimit bounds an order amount in the currency's minor units.
// A nil bound is unbounded.
type AmountLimit struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// MethodDescriptor is the static description of a payment method.
type MethodDescriptor struct {
	ID    MethodID `json:"id"`
	Label string   `json:"label"`

	// Reusable methods produce tokens that can be charged again without the
	// customer present. Only reusable methods may back a subscription.
	Reusable bool `json:"reusable"`

	// SupportedCurrencies lists accepted store currencies; empty accepts all.
	SupportedCurrencies []string `json:"supported_currencies,omitempty"`

	// DomesticRestriction requires the store currency to match the processor
	// account's default currency.
	DomesticRestriction bool `json:"domestic_restriction"`

	// AmountLimits is keyed by upper-case currency code. Nil means no limits.
	AmountLimits map[string]AmountLimit `json:"amount_limits,omitempty"`

	CapabilityKey string `json:"capability_key"`

	// CapabilityAlwaysActive skips the processor capability lookup.
	CapabilityAlwaysActive bool `json:"capability_always_active"`
}

// HasAmountLimits reports whether the method carries a limit table.
func (d MethodDescriptor) HasAmountLimits() bool {
	return d.AmountLimits != nil
}

// AmountLimitFor returns the limit row for currency.
func (d MethodDescriptor) AmountLimitFor(currency string) (AmountLimit, bool) {
	limit, ok := d.AmountLimits[strings.ToUpper(currency)]
	return limit, ok
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (d MethodDescriptor) Clone() MethodDescriptor {
	out := d
	if d.SupportedCurrencies != nil {
		out.SupportedCurrencies = append([]string(nil), d.SupportedCurrencies...)
	}
	if d.AmountLimits != nil {
		out.AmountLimits = make(map[string]AmountLimit, len(d.AmountLimits))
		for currency, limit := range d.AmountLimits {
			out.AmountLimits[currency] = limit
		}
	}
	return out
}
