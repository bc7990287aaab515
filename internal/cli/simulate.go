package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/renderer"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

type simulateCmd struct {
	g        *Globals
	capital  string
	buy      string
	sell     string
	pct      string
	reinvest bool
	cycles   int
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulate repeated round trips at fixed prices" }
func (*simulateCmd) Usage() string {
	return `rulo simulate -capital <amount> -buy <price> -sell <price> [-pct <commission %>] [-reinvest] [-cycles n]

  Runs n cycles. With -reinvest each cycle starts from the previous net proceeds.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.capital, "capital", "", "Initial capital")
	f.StringVar(&c.buy, "buy", "", "Buy price per unit")
	f.StringVar(&c.sell, "sell", "", "Sell price per unit")
	f.StringVar(&c.pct, "pct", "", "Commission percentage applied every cycle")
	f.BoolVar(&c.reinvest, "reinvest", false, "Reinvest the net proceeds of every cycle")
	f.IntVar(&c.cycles, "cycles", 1, "Number of cycles")
}

func (c *simulateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := arbitrage.SimulationInput{Reinvest: c.reinvest, Cycles: c.cycles}
	var err error
	if in.InitialCapital, err = parseAmount("capital", c.capital); err != nil {
		return c.g.usage(err)
	}
	if in.BuyPrice, err = parseAmount("buy_price", c.buy); err != nil {
		return c.g.usage(err)
	}
	if in.SellPrice, err = parseAmount("sell_price", c.sell); err != nil {
		return c.g.usage(err)
	}
	if c.pct != "" {
		pct, err := parseAmount("commission_pct", c.pct)
		if err != nil {
			return c.g.usage(err)
		}
		in.CommissionPct = &pct
	}
	maxCycles := 0
	if cfg, err := c.g.loadConfig(); err == nil {
		maxCycles = cfg.Simulation.MaxCycles
	}
	report, err := (&service.SimulationService{MaxCycles: maxCycles}).Run(ctx, in)
	if err != nil {
		return c.g.fail(err)
	}
	return c.g.write(report, renderer.Simulation(report))
}
