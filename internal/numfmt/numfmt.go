// Package numfmt reads and writes amounts the way they are typed in Argentina:
// "." groups thousands and "," separates decimals.
package numfmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var ErrInvalidNumber = errors.New("invalid number")

var (
	thousands = money.NewFormatter(0, ",", ".", "", "1")
	pesos     = money.NewFormatter(2, ",", ".", "$", "$ 1")
	percent   = money.NewFormatter(2, ",", ".", "%", "1$")
)

// Parse accepts "100.000", "1.234,56", "2,5", "$ 105.000" and plain
// "1050.75". A single dot followed by exactly three digits is a thousands
// separator, otherwise it is taken as a decimal point.
func Parse(s string) (decimal.Decimal, error) {
	raw := strings.Map(func(r rune) rune {
		switch r {
		case '$', '%', ' ', '\u00a0', '\t':
			return -1
		}
		return r
	}, s)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidNumber)
	}

	neg := false
	if strings.HasPrefix(raw, "-") {
		neg = true
		raw = raw[1:]
	}

	intPart, fracPart := raw, ""
	switch {
	case strings.Contains(raw, ","):
		i := strings.LastIndex(raw, ",")
		intPart, fracPart = raw[:i], raw[i+1:]
		intPart = strings.ReplaceAll(intPart, ".", "")
	case strings.Count(raw, ".") == 1:
		i := strings.Index(raw, ".")
		if len(raw)-i-1 != 3 {
			intPart, fracPart = raw[:i], raw[i+1:]
		} else {
			intPart = raw[:i] + raw[i+1:]
		}
	default:
		intPart = strings.ReplaceAll(raw, ".", "")
	}

	if intPart == "" && fracPart == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !digits(intPart) || (fracPart != "" && !digits(fracPart)) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	norm := intPart
	if fracPart != "" {
		norm += "." + fracPart
	}
	out, err := decimal.NewFromString(norm)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if neg {
		out = out.Neg()
	}
	return out, nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Thousands rounds to whole units: 100000 -> "100.000".
func Thousands(d decimal.Decimal) string {
	units := d.Round(0)
	if !fitsInt64(units) {
		return units.String()
	}
	return thousands.Format(units.IntPart())
}

// Money formats pesos with two decimals: 105000 -> "$ 105.000,00".
func Money(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0)
	if !fitsInt64(cents) {
		return "$ " + d.StringFixed(2)
	}
	return pesos.Format(cents.IntPart())
}

// Percent formats a percentage with two decimals: 2.375 -> "2,38%".
func Percent(d decimal.Decimal) string {
	hundredths := d.Shift(2).Round(0)
	if !fitsInt64(hundredths) {
		return d.StringFixed(2) + "%"
	}
	return percent.Format(hundredths.IntPart())
}

// go-money counts minor units in an int64; larger values are printed plain.
func fitsInt64(d decimal.Decimal) bool {
	return d.BigInt().IsInt64()
}

// Reformat is the per-keystroke helper of the entry form: it keeps only the
// digits typed so far and regroups them.
func Reformat(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return ""
	}
	return Thousands(d)
}
