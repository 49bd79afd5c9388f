package money

import (
	"strings"

	"student-lending-core/pkg/apperr"

	"github.com/shopspring/decimal"
)

// Scale is the number of fraction digits the ledger stores.
const Scale = 2

var (
	// MaxAmount is the largest single amount: 12 digits, two of them fractional.
	MaxAmount = decimal.RequireFromString("9999999999.99")
	// MaxRate is the largest percentage a decimal(5,2) column holds.
	MaxRate = decimal.RequireFromString("999.99")
	// MaxBalance is the largest value a decimal(18,2) column holds.
	MaxBalance = decimal.RequireFromString("9999999999999999.99")
)

// Parse reads a positive ledger amount such as "1000" or "12.50".
func Parse(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperr.InvalidAmount("%q is not a decimal amount", raw)
	}
	if err := Validate(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// Validate rejects amounts that are not strictly positive, exceed MaxAmount
// or carry more precision than the ledger scale.
func Validate(d decimal.Decimal) error {
	if !d.IsPositive() {
		return apperr.InvalidAmount("amount must be greater than zero, got %s", d.String())
	}
	if d.GreaterThan(MaxAmount) {
		return apperr.InvalidAmount("amount %s exceeds %s", d.String(), Format(MaxAmount))
	}
	if !fitsScale(d) {
		return apperr.InvalidAmount("amount %s has more than %d fraction digits", d.String(), Scale)
	}
	return nil
}

// ValidateRate accepts percentage rates in [0, MaxRate] with at most two fraction digits.
func ValidateRate(d decimal.Decimal) error {
	if d.IsNegative() {
		return apperr.InvalidAmount("rate must not be negative, got %s", d.String())
	}
	if d.GreaterThan(MaxRate) {
		return apperr.InvalidAmount("rate %s exceeds %s", d.String(), Format(MaxRate))
	}
	if !fitsScale(d) {
		return apperr.InvalidAmount("rate %s has more than %d fraction digits", d.String(), Scale)
	}
	return nil
}

// ParseRate is Parse for interest rates.
func ParseRate(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperr.InvalidAmount("%q is not a decimal rate", raw)
	}
	if err := ValidateRate(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// TotalRepayment is principal * (1 + rate/100), rounded to the ledger scale.
func TotalRepayment(principal, ratePct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(ratePct.Div(decimal.NewFromInt(100)))
	return principal.Mul(factor).Round(Scale)
}

// Format renders d with exactly two fraction digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

func fitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Scale))
}
