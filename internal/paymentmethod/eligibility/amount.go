package eligibility

import (
	"strings"

	"github.com/shopspring/decimal"
)

var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {}, "KRW": {}, "MGA": {},
	"PYG": {}, "RWF": {}, "UGX": {}, "VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// IsZeroDecimal reports whether the currency has no minor unit.
func IsZeroDecimal(currency string) bool {
	_, ok := zeroDecimalCurrencies[strings.ToUpper(currency)]
	return ok
}

// ToMinorUnits converts a major-unit amount to the currency's smallest unit,
// rounding half away from zero.
func ToMinorUnits(currency string, amount decimal.Decimal) int64 {
	if IsZeroDecimal(currency) {
		return amount.Round(0).IntPart()
	}
	return amount.Shift(2).Round(0).IntPart()
}
