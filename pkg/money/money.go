// Package money provides currency-safe amount handling for ledger imports.
// It combines shopspring/decimal for exact parsing and arithmetic with
// go-money for ISO-4217 currency metadata (KRW and JPY carry no decimals).
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Common currency codes (ISO-4217)
const (
	KRW = "KRW" // South Korean Won (no decimal places)
	USD = "USD" // US Dollar
	EUR = "EUR" // Euro
	GBP = "GBP" // British Pound
	JPY = "JPY" // Japanese Yen (no decimal places)
)

// currencySymbols maps symbols that appear in bank exports to currency codes.
// Checked in order so multi-rune symbols win over "$".
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"₩", KRW},
	{"€", EUR},
	{"£", GBP},
	{"¥", JPY},
	{"￦", KRW},
	{"$", USD},
}

// ParseAmount parses an export amount cell into an exact decimal value.
// It tolerates thousands separators, surrounding whitespace, a leading
// currency symbol and accounting-style parentheses for negatives. The second
// return value is the currency code hinted by a symbol, or "" when none.
func ParseAmount(s string) (decimal.Decimal, string, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return decimal.Zero, "", fmt.Errorf("empty amount")
	}

	hint := ""
	for _, cs := range currencySymbols {
		if strings.Contains(cleaned, cs.symbol) {
			hint = cs.code
			cleaned = strings.ReplaceAll(cleaned, cs.symbol, "")
			break
		}
	}

	cleaned = strings.TrimSpace(cleaned)

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "("), ")")
	}

	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, hint, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if negative {
		d = d.Neg()
	}
	return d, hint, nil
}

// CanonicalCode upper-cases and validates a currency code against the
// ISO-4217 table, falling back to KRW when the value is empty or unknown.
func CanonicalCode(code string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(code))
	if cleaned == "" {
		return KRW
	}
	if gomoney.GetCurrency(cleaned) == nil {
		return KRW
	}
	return cleaned
}

// MinorUnits converts an amount to minor units for the given currency.
// For KRW (fraction 0) the value is unchanged; for USD it is cents.
func MinorUnits(amount decimal.Decimal, code string) int64 {
	currency := gomoney.GetCurrency(CanonicalCode(code))
	fraction := 0
	if currency != nil {
		fraction = currency.Fraction
	}
	return amount.Mul(decimal.New(1, int32(fraction))).Round(0).IntPart()
}

// FromMinorUnits is the inverse of MinorUnits.
func FromMinorUnits(minor int64, code string) decimal.Decimal {
	currency := gomoney.GetCurrency(CanonicalCode(code))
	fraction := 0
	if currency != nil {
		fraction = currency.Fraction
	}
	return decimal.New(minor, -int32(fraction))
}
