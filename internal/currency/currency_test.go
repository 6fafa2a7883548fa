package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/currency"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestFormat(t *testing.T) {
	table := []struct {
		amount   string
		code     currency.Currency
		expected string
	}{
		{"1234.5", currency.TRY, "₺1.234,50"},
		{"0", currency.TRY, "₺0,00"},
		{"1234.5", currency.USD, "$1,234.50"},
		{"1234.5", currency.EUR, "€1.234,50"},
		{"-10", currency.TRY, "-₺10,00"},
	}

	for _, entry := range table {
		result := currency.Format(dec(entry.amount), entry.code)

		if result != entry.expected {
			t.Errorf(
				"Format(%s, %s): expected %q, got %q",
				entry.amount,
				entry.code,
				entry.expected,
				result,
			)
		}
	}
}

func TestFormatUnknownCurrency(t *testing.T) {
	result := currency.Format(dec("5"), currency.Currency("XXQ"))

	if result != "5.00" {
		t.Errorf("expected plain fallback 5.00, got %q", result)
	}
}

func TestSymbol(t *testing.T) {
	if symbol := currency.TRY.Symbol(); symbol != "₺" {
		t.Errorf("expected ₺, got %q", symbol)
	}
}

func TestValid(t *testing.T) {
	if !currency.TRY.Valid() {
		t.Error("expected TRY to be valid")
	}

	if currency.Currency("GBP").Valid() {
		t.Error("expected GBP to be invalid")
	}
}

func TestConvertIdentity(t *testing.T) {
	amount := dec("123.45")
	result := currency.Convert(amount, currency.TRY, currency.TRY)

	if !result.Equal(amount) {
		t.Errorf("expected identity conversion, got %s", result)
	}
}

func TestConvert(t *testing.T) {
	result := currency.Convert(dec("100"), currency.USD, currency.TRY)

	if result.String() != "3250" {
		t.Errorf("expected 3250, got %s", result)
	}
}

func TestConvertUnknownRate(t *testing.T) {
	amount := dec("100")
	result := currency.Convert(amount, currency.Currency("GBP"), currency.TRY)

	if !result.Equal(amount) {
		t.Errorf("expected amount unchanged for unknown rate, got %s", result)
	}
}
