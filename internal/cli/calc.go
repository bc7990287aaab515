package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/numfmt"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/renderer"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

// transactionFlags are the calculator inputs shared by calc and add.
type transactionFlags struct {
	capital    string
	buy        string
	sell       string
	commission string
	value      string
}

func (t *transactionFlags) register(f *flag.FlagSet) {
	f.StringVar(&t.capital, "capital", "", "Capital to invest, e.g. 100.000")
	f.StringVar(&t.buy, "buy", "", "Buy price per unit, e.g. 1.000")
	f.StringVar(&t.sell, "sell", "", "Sell price per unit, e.g. 1.050")
	f.StringVar(&t.commission, "commission", "none", "Commission mode: none, percentage or fixed-net-amount")
	f.StringVar(&t.value, "value", "", "Commission percentage (2,5) or the net amount actually received")
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, &arbitrage.InvalidInputError{Field: field, Reason: "is required"}
	}
	d, err := numfmt.Parse(s)
	if err != nil {
		return decimal.Zero, &arbitrage.InvalidInputError{Field: field, Reason: "is not a number: " + s}
	}
	return d, nil
}

func (t *transactionFlags) request() (service.RecordRequest, error) {
	var req service.RecordRequest
	var err error
	if req.Capital, err = parseAmount("capital", t.capital); err != nil {
		return req, err
	}
	if req.BuyPrice, err = parseAmount("buy_price", t.buy); err != nil {
		return req, err
	}
	if req.SellPrice, err = parseAmount("sell_price", t.sell); err != nil {
		return req, err
	}
	var value *decimal.Decimal
	if t.value != "" {
		v, err := parseAmount("commission", t.value)
		if err != nil {
			return req, err
		}
		value = &v
	}
	req.Commission, err = arbitrage.ParseCommission(t.commission, value)
	return req, err
}

type calcCmd struct {
	g  *Globals
	tx transactionFlags
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "calculate the result of one buy/sell round trip" }
func (*calcCmd) Usage() string {
	return `rulo calc -capital <amount> -buy <price> -sell <price> [-commission <mode> -value <v>]

  Computes units, proceeds, commission and profit without saving anything.
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) { c.tx.register(f) }

func (c *calcCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, err := c.tx.request()
	if err != nil {
		return c.g.usage(err)
	}
	preview, err := (&service.MovementService{}).Preview(ctx, req)
	if err != nil {
		return c.g.fail(err)
	}
	return c.g.write(preview, renderer.Preview(preview))
}
