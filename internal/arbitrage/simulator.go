package arbitrage

import (
	"github.com/shopspring/decimal"
)

type SimulationInput struct {
	InitialCapital decimal.Decimal
	BuyPrice       decimal.Decimal
	SellPrice      decimal.Decimal
	// CommissionPct is an optional flat percentage applied every cycle.
	CommissionPct *decimal.Decimal
	Reinvest      bool
	Cycles        int
}

type SimulationRow struct {
	Cycle            int             `json:"cycle"`
	CapitalUsed      decimal.Decimal `json:"capital_used"`
	UnitsAcquired    decimal.Decimal `json:"units_acquired"`
	GrossProceeds    decimal.Decimal `json:"gross_proceeds"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	NetProceeds      decimal.Decimal `json:"net_proceeds"`
	Profit           decimal.Decimal `json:"profit"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
}

type SimulationSummary struct {
	Cycles                int             `json:"cycles"`
	InitialCapital        decimal.Decimal `json:"initial_capital"`
	FinalCapital          decimal.Decimal `json:"final_capital"`
	TotalProfit           decimal.Decimal `json:"total_profit"`
	TotalProfitPercentage decimal.Decimal `json:"total_profit_percentage"`
}

func (in SimulationInput) commission() Commission {
	if in.CommissionPct == nil {
		return NoCommission()
	}
	return Percentage(*in.CommissionPct)
}

func (in SimulationInput) Validate() error {
	if in.Cycles < 1 {
		return invalid("cycles", "must be at least 1")
	}
	if err := requirePositive("capital", in.InitialCapital); err != nil {
		return err
	}
	if err := requirePositive("buy_price", in.BuyPrice); err != nil {
		return err
	}
	return requirePositive("sell_price", in.SellPrice)
}

// Simulate runs Compute once per cycle. With Reinvest the net proceeds of a
// cycle become the capital of the next one; without it every cycle starts
// again from the initial capital.
func Simulate(in SimulationInput) ([]SimulationRow, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	commission := in.commission()
	rows := make([]SimulationRow, 0, in.Cycles)
	capital := in.InitialCapital
	for cycle := 1; cycle <= in.Cycles; cycle++ {
		res, err := Compute(TransactionInput{
			Capital:    capital,
			BuyPrice:   in.BuyPrice,
			SellPrice:  in.SellPrice,
			Commission: commission,
		})
		if err != nil {
			// Reinvesting a loss-making commission can drive capital to zero.
			return nil, err
		}
		rows = append(rows, SimulationRow{
			Cycle:            cycle,
			CapitalUsed:      capital,
			UnitsAcquired:    res.UnitsAcquired,
			GrossProceeds:    res.GrossProceeds,
			CommissionAmount: res.CommissionAmount,
			NetProceeds:      res.NetProceeds,
			Profit:           res.Profit,
			ProfitPercentage: res.ProfitPercentage,
		})
		if in.Reinvest {
			capital = res.NetProceeds
		} else {
			capital = in.InitialCapital
		}
	}
	return rows, nil
}

// Summarize computes the aggregates from the first and last row.
func Summarize(rows []SimulationRow) SimulationSummary {
	if len(rows) == 0 {
		return SimulationSummary{}
	}
	first, last := rows[0], rows[len(rows)-1]
	total := last.NetProceeds.Sub(first.CapitalUsed)
	out := SimulationSummary{
		Cycles:         len(rows),
		InitialCapital: first.CapitalUsed,
		FinalCapital:   last.NetProceeds,
		TotalProfit:    total,
	}
	if !first.CapitalUsed.IsZero() {
		out.TotalProfitPercentage = total.Div(first.CapitalUsed).Mul(hundred)
	}
	return out
}
