package arbitrage

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CommissionMode string

const (
	CommissionNone       CommissionMode = "none"
	CommissionPercentage CommissionMode = "percentage"
	CommissionFixedNet   CommissionMode = "fixed-net-amount"
)

// Commission is either nothing, a percentage of the gross proceeds, or the net
// amount actually received after the exchange took its cut. The zero value is
// no commission.
type Commission struct {
	mode  CommissionMode
	value decimal.Decimal
}

func NoCommission() Commission { return Commission{mode: CommissionNone} }

// Percentage deducts pct percent of the gross proceeds.
func Percentage(pct decimal.Decimal) Commission {
	return Commission{mode: CommissionPercentage, value: pct}
}

// FixedNet states the net proceeds directly; the commission is whatever is
// missing from the gross proceeds.
func FixedNet(net decimal.Decimal) Commission {
	return Commission{mode: CommissionFixedNet, value: net}
}

func (c Commission) Mode() CommissionMode {
	if c.mode == "" {
		return CommissionNone
	}
	return c.mode
}

// Value returns the payload; ok is false for CommissionNone.
func (c Commission) Value() (decimal.Decimal, bool) {
	if c.Mode() == CommissionNone {
		return decimal.Zero, false
	}
	return c.value, true
}

func (c Commission) String() string {
	switch c.Mode() {
	case CommissionPercentage:
		return "percentage(" + c.value.String() + ")"
	case CommissionFixedNet:
		return "fixed-net(" + c.value.String() + ")"
	default:
		return "none"
	}
}

// ParseCommission builds a Commission from loosely typed form or request
// input. The Spanish names used by the stored records are accepted too.
func ParseCommission(mode string, value *decimal.Decimal) (Commission, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "none", "no", "sin":
		return NoCommission(), nil
	case "percentage", "percent", "pct", "porcentaje":
		if value == nil {
			return Commission{}, invalid("commission", "percentage requires a value")
		}
		return Percentage(*value), nil
	case "fixed-net-amount", "fixed-net", "fixed", "montofinal", "monto-final":
		if value == nil {
			return Commission{}, invalid("commission", "fixed net amount requires a value")
		}
		return FixedNet(*value), nil
	default:
		return Commission{}, invalid("commission", "unknown mode "+mode)
	}
}
