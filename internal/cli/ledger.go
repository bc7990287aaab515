package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/renderer"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
)

type addCmd struct {
	g    *Globals
	tx   transactionFlags
	date string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "calculate a round trip and save it to the ledger" }
func (*addCmd) Usage() string {
	return `rulo add -capital <amount> -buy <price> -sell <price> [-commission <mode> -value <v>] [-d YYYY-MM-DD]

  Saves the movement. The date defaults to today.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.tx.register(f)
	f.StringVar(&c.date, "d", "", "Date of the movement (defaults to today)")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, err := c.tx.request()
	if err != nil {
		return c.g.usage(err)
	}
	if c.date != "" {
		d, err := time.Parse(time.DateOnly, c.date)
		if err != nil {
			return c.g.usage(&arbitrage.InvalidInputError{Field: "date", Reason: "must be YYYY-MM-DD"})
		}
		req.Date = &d
	}
	l, err := c.g.openLedger(ctx)
	if err != nil {
		return c.g.fail(err)
	}
	defer l.Close()
	item, err := l.Movements.Record(ctx, req)
	if err != nil {
		return c.g.fail(err)
	}
	return c.g.write(item, renderer.Movement(item))
}

type listCmd struct {
	g          *Globals
	limit      int
	offset     int
	since      string
	until      string
	commission string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list saved movements, most recent first" }
func (*listCmd) Usage() string {
	return `rulo list [-n <limit>] [-offset <n>] [-s YYYY-MM-DD] [-u YYYY-MM-DD] [-commission yes|no]
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 50, "Maximum number of movements")
	f.IntVar(&c.offset, "offset", 0, "Skip the first n movements")
	f.StringVar(&c.since, "s", "", "Only movements saved on or after this date")
	f.StringVar(&c.until, "u", "", "Only movements saved before this date")
	f.StringVar(&c.commission, "commission", "", "Filter by commission: yes or no")
}

func (c *listCmd) params() (repository.ListMovementsParams, error) {
	asc := false
	p := repository.ListMovementsParams{Limit: c.limit, Offset: c.offset, OrderBy: "created_at", Asc: &asc}
	if c.since != "" {
		t, err := time.Parse(time.DateOnly, c.since)
		if err != nil {
			return p, &arbitrage.InvalidInputError{Field: "since", Reason: "must be YYYY-MM-DD"}
		}
		p.Since = &t
	}
	if c.until != "" {
		t, err := time.Parse(time.DateOnly, c.until)
		if err != nil {
			return p, &arbitrage.InvalidInputError{Field: "until", Reason: "must be YYYY-MM-DD"}
		}
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		p.Until = &t
	}
	switch strings.ToLower(c.commission) {
	case "":
	case "yes", "si", "true":
		v := true
		p.HasCommission = &v
	case "no", "false":
		v := false
		p.HasCommission = &v
	default:
		return p, &arbitrage.InvalidInputError{Field: "commission", Reason: "must be yes or no"}
	}
	return p, nil
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	params, err := c.params()
	if err != nil {
		return c.g.usage(err)
	}
	l, err := c.g.openLedger(ctx)
	if err != nil {
		return c.g.fail(err)
	}
	defer l.Close()
	items, total, err := l.Movements.List(ctx, params)
	if err != nil {
		return c.g.fail(err)
	}
	return c.g.write(items, renderer.Movements(items, total))
}

type deleteCmd struct {
	g   *Globals
	yes bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a movement from the ledger" }
func (*deleteCmd) Usage() string {
	return `rulo delete [-y] <id>

  Asks for confirmation unless -y is given.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := idArg(f)
	if err != nil {
		return c.g.usage(err)
	}
	if !c.yes && !c.confirm(id) {
		fmt.Fprintln(c.g.Stderr, "Cancelled.")
		return subcommands.ExitSuccess
	}
	l, err := c.g.openLedger(ctx)
	if err != nil {
		return c.g.fail(err)
	}
	defer l.Close()
	if err := l.Movements.Delete(ctx, id); err != nil {
		return c.g.fail(err)
	}
	return c.g.write(map[string]any{"id": id, "deleted": true}, fmt.Sprintf("Movement %d deleted.\n", id))
}

func (c *deleteCmd) confirm(id uint64) bool {
	fmt.Fprintf(c.g.Stderr, "Delete movement %d? [y/N] ", id)
	line, _ := bufio.NewReader(c.g.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "si":
		return true
	}
	return false
}

type summaryCmd struct {
	g *Globals
}

func (*summaryCmd) Name() string           { return "summary" }
func (*summaryCmd) Synopsis() string       { return "show total and average profit of the ledger" }
func (*summaryCmd) Usage() string          { return "rulo summary\n" }
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := c.g.openLedger(ctx)
	if err != nil {
		return c.g.fail(err)
	}
	defer l.Close()
	sum, err := l.Movements.Summary(ctx)
	if err != nil {
		return c.g.fail(err)
	}
	return c.g.write(sum, renderer.Summary(sum))
}

type reinvestCmd struct {
	g *Globals
}

func (*reinvestCmd) Name() string     { return "reinvest" }
func (*reinvestCmd) Synopsis() string { return "suggest the capital for the next round trip" }
func (*reinvestCmd) Usage() string {
	return `rulo reinvest <id>

  Prints the capital plus profit of the movement, rounded to whole pesos.
`
}
func (*reinvestCmd) SetFlags(*flag.FlagSet) {}

func (c *reinvestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := idArg(f)
	if err != nil {
		return c.g.usage(err)
	}
	l, err := c.g.openLedger(ctx)
	if err != nil {
		return c.g.fail(err)
	}
	defer l.Close()
	out, err := l.Movements.Reinvest(ctx, id)
	if err != nil {
		return c.g.fail(err)
	}
	return c.g.write(out, renderer.Reinvest(out))
}

func idArg(f *flag.FlagSet) (uint64, error) {
	if f.NArg() != 1 {
		return 0, &arbitrage.InvalidInputError{Field: "id", Reason: "exactly one movement id is required"}
	}
	id, err := strconv.ParseUint(f.Arg(0), 10, 64)
	if err != nil || id == 0 {
		return 0, &arbitrage.InvalidInputError{Field: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}
