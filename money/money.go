// Package money holds peso amounts as integer centavos.
package money

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a count of centavos (minor currency unit).
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

const minorDigits = 2

// FromDecimal converts a decimal peso value, rounding half away from zero to centavos.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Round(minorDigits).Shift(minorDigits).IntPart())
}

// FromMinor wraps a centavo count.
func FromMinor(minor int64) Amount {
	return Amount(minor)
}

// Parse reads a decimal string such as "55.00" or "12.5".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// Minor returns the centavo count.
func (a Amount) Minor() int64 {
	return int64(a)
}

// Decimal returns the amount in pesos.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -minorDigits)
}

func (a Amount) Add(b Amount) Amount {
	return a + b
}

func (a Amount) Mul(n int) Amount {
	return a * Amount(n)
}

func (a Amount) IsNegative() bool {
	return a < 0
}

// String renders the amount with exactly two decimals, e.g. "110.00".
func (a Amount) String() string {
	return a.Decimal().StringFixed(minorDigits)
}

// Format renders the amount for display with a peso sign and thousand separators,
// e.g. "₱1,234.50".
func (a Amount) Format() string {
	parts := strings.SplitN(a.String(), ".", 2)
	integerPart, decimalPart := parts[0], parts[1]

	sign := ""
	if strings.HasPrefix(integerPart, "-") {
		sign = "-"
		integerPart = integerPart[1:]
	}

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + "₱" + strings.Join(groups, ",") + "." + decimalPart
}

// MarshalJSON encodes the amount as a fixed two-decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a decimal string or a JSON number in pesos.
// Values finer than a centavo are rejected.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*a = 0
		return nil
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	} else if bytes.ContainsRune(raw, '"') {
		return fmt.Errorf("parse amount %s: unbalanced quotes", data)
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("parse amount %s: %w", data, err)
	}
	if !d.Equal(d.Round(minorDigits)) {
		return fmt.Errorf("parse amount %s: more than %d decimal places", data, minorDigits)
	}
	*a = FromDecimal(d)
	return nil
}

// Sum adds amounts. Integer addition keeps the result independent of order.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, v := range amounts {
		total += v
	}
	return total
}
