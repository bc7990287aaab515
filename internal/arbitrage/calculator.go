// Package arbitrage holds the pure arithmetic of a "rulo": buy dollars with
// pesos, sell them back, optionally pay a commission. Nothing here touches the
// store, the clock or the logger.
package arbitrage

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type TransactionInput struct {
	Capital    decimal.Decimal `json:"capital"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	Commission Commission      `json:"-"`
}

type TransactionResult struct {
	UnitsAcquired    decimal.Decimal `json:"units_acquired"`
	GrossProceeds    decimal.Decimal `json:"gross_proceeds"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	// CommissionPercentage is nil without commission, and in fixed-net mode
	// when the gross proceeds are zero.
	CommissionPercentage *decimal.Decimal `json:"commission_percentage,omitempty"`
	NetProceeds          decimal.Decimal  `json:"net_proceeds"`
	Profit               decimal.Decimal  `json:"profit"`
	ProfitPercentage     decimal.Decimal  `json:"profit_percentage"`
}

func (in TransactionInput) Validate() error {
	if err := requirePositive("capital", in.Capital); err != nil {
		return err
	}
	if err := requirePositive("buy_price", in.BuyPrice); err != nil {
		return err
	}
	if err := requirePositive("sell_price", in.SellPrice); err != nil {
		return err
	}
	switch in.Commission.Mode() {
	case CommissionNone, CommissionPercentage, CommissionFixedNet:
		return nil
	default:
		return invalid("commission", "unknown mode "+string(in.Commission.Mode()))
	}
}

// Compute derives the full transaction from its inputs. Invalid input is
// rejected before any arithmetic runs.
func Compute(in TransactionInput) (TransactionResult, error) {
	if err := in.Validate(); err != nil {
		return TransactionResult{}, err
	}

	units := in.Capital.Div(in.BuyPrice)
	gross := units.Mul(in.SellPrice)

	res := TransactionResult{
		UnitsAcquired:    units,
		GrossProceeds:    gross,
		CommissionAmount: decimal.Zero,
		NetProceeds:      gross,
	}

	switch in.Commission.Mode() {
	case CommissionPercentage:
		pct := in.Commission.value
		res.CommissionAmount = gross.Mul(pct).Div(hundred)
		res.NetProceeds = gross.Sub(res.CommissionAmount)
		res.CommissionPercentage = &pct
	case CommissionFixedNet:
		res.NetProceeds = in.Commission.value
		res.CommissionAmount = gross.Sub(res.NetProceeds)
		if !gross.IsZero() {
			pct := res.CommissionAmount.Div(gross).Mul(hundred)
			res.CommissionPercentage = &pct
		}
	}

	res.Profit = res.NetProceeds.Sub(in.Capital)
	res.ProfitPercentage = res.Profit.Div(in.Capital).Mul(hundred)
	return res, nil
}
