// Package currency formats and converts the three currencies Birikio supports.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code for a supported display currency.
type Currency string

const (
	TRY Currency = "TRY"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

var currencyOrder = []Currency{TRY, USD, EUR}

// List returns the supported currencies in display order.
func List() []Currency {
	list := make([]Currency, len(currencyOrder))
	copy(list, currencyOrder)

	return list
}

// Valid reports whether the code is one of the supported currencies.
func (c Currency) Valid() bool {
	for _, known := range currencyOrder {
		if c == known {
			return true
		}
	}

	return false
}

// Symbol returns the currency symbol, such as ₺ for TRY.
func (c Currency) Symbol() string {
	cur := money.GetCurrency(string(c))

	if cur == nil {
		return ""
	}

	return cur.Grapheme
}

// Format renders an amount with the currency symbol, two decimal digits,
// and the grouping conventions of the currency's locale.
func Format(amount decimal.Decimal, c Currency) string {
	cur := money.GetCurrency(string(c))

	if cur == nil {
		return amount.StringFixed(2)
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0)

	return cur.Formatter().Format(minor.IntPart())
}

// A static rate table. Rates are not live; they are the same fixed
// placeholder values the dashboard totals have always used.
var rates = map[Currency]map[Currency]decimal.Decimal{
	TRY: {
		USD: decimal.RequireFromString("0.031"),
		EUR: decimal.RequireFromString("0.029"),
	},
	USD: {
		TRY: decimal.RequireFromString("32.5"),
		EUR: decimal.RequireFromString("0.92"),
	},
	EUR: {
		TRY: decimal.RequireFromString("35.2"),
		USD: decimal.RequireFromString("1.09"),
	},
}

// Convert converts an amount between two supported currencies.
//
// Converting a currency to itself always returns the amount unchanged,
// as does a conversion involving an unsupported code.
func Convert(amount decimal.Decimal, from, to Currency) decimal.Decimal {
	if from == to {
		return amount
	}

	if rate, ok := rates[from][to]; ok {
		return amount.Mul(rate)
	}

	return amount
}
