// Package renderer turns ledger results into Markdown documents for the
// terminal.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/numfmt"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

// table writes a Markdown table. The first column is left aligned and the
// others, holding amounts, right aligned.
func table(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|")
	for i := range header {
		if i == 0 {
			b.WriteString(":---|")
		} else {
			b.WriteString("---:|")
		}
	}
	b.WriteString("\n")
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}

func commissionLabel(mode arbitrage.CommissionMode) string {
	switch mode {
	case arbitrage.CommissionPercentage:
		return "Percentage"
	case arbitrage.CommissionFixedNet:
		return "Fixed net amount"
	default:
		return "None"
	}
}

// Preview renders a single calculation.
func Preview(p service.Preview) string {
	var b strings.Builder
	b.WriteString("# Calculation\n\n")
	rows := [][]string{
		{"Capital", numfmt.Money(p.Capital)},
		{"Buy price", numfmt.Money(p.BuyPrice)},
		{"Units acquired", p.UnitsAcquired.StringFixed(4)},
		{"Sell price", numfmt.Money(p.SellPrice)},
		{"Gross proceeds", numfmt.Money(p.GrossProceeds)},
		{"Commission", commissionLabel(p.CommissionMode)},
	}
	if p.CommissionMode != arbitrage.CommissionNone {
		rows = append(rows, []string{"Commission amount", numfmt.Money(p.CommissionAmount)})
		if p.CommissionPercentage != nil {
			rows = append(rows, []string{"Commission %", numfmt.Percent(*p.CommissionPercentage)})
		}
	}
	rows = append(rows,
		[]string{"Net proceeds", numfmt.Money(p.NetProceeds)},
		[]string{"**Profit**", fmt.Sprintf("**%s** (%s)", numfmt.Money(p.Profit), numfmt.Percent(p.ProfitPercentage))},
	)
	table(&b, []string{"", "Value"}, rows)
	return b.String()
}

// Movements renders the ledger history, most recent first as given.
func Movements(items []models.Movement, total int64) string {
	var b strings.Builder
	b.WriteString("# Movements\n\n")
	if len(items) == 0 {
		b.WriteString("No movements recorded yet.\n")
		return b.String()
	}
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		commission := "-"
		if m.HasCommission && m.CommissionAmount != nil {
			commission = numfmt.Money(*m.CommissionAmount)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.ID),
			m.Date.Format("02/01/2006"),
			numfmt.Money(m.Capital),
			numfmt.Money(m.BuyPrice),
			numfmt.Money(m.SellPrice),
			commission,
			numfmt.Money(m.NetProceeds),
			numfmt.Money(m.Profit),
			numfmt.Percent(m.ProfitPercentage),
		})
	}
	table(&b, []string{"ID", "Date", "Capital", "Buy", "Sell", "Commission", "Net", "Profit", "%"}, rows)
	if total > int64(len(items)) {
		fmt.Fprintf(&b, "Showing %d of %d movements.\n", len(items), total)
	}
	return b.String()
}

// Movement renders one stored movement.
func Movement(m *models.Movement) string {
	res := arbitrage.TransactionResult{
		UnitsAcquired:    m.UnitsAcquired,
		GrossProceeds:    m.GrossProceeds,
		NetProceeds:      m.NetProceeds,
		Profit:           m.Profit,
		ProfitPercentage: m.ProfitPercentage,
	}
	if m.CommissionAmount != nil {
		res.CommissionAmount = *m.CommissionAmount
	}
	res.CommissionPercentage = m.CommissionPercentage
	out := Preview(service.Preview{
		Capital:           m.Capital,
		BuyPrice:          m.BuyPrice,
		SellPrice:         m.SellPrice,
		CommissionMode:    m.CommissionMode(),
		TransactionResult: res,
	})
	title := fmt.Sprintf("# Movement %d (%s)", m.ID, m.Date.Format("02/01/2006"))
	return strings.Replace(out, "# Calculation", title, 1)
}

// Simulation renders every cycle followed by the run totals.
func Simulation(r service.SimulationReport) string {
	var b strings.Builder
	b.WriteString("# Simulation\n\n")
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []string{
			fmt.Sprintf("%d", row.Cycle),
			numfmt.Money(row.CapitalUsed),
			row.UnitsAcquired.StringFixed(4),
			numfmt.Money(row.GrossProceeds),
			numfmt.Money(row.CommissionAmount),
			numfmt.Money(row.NetProceeds),
			numfmt.Money(row.Profit),
			numfmt.Percent(row.ProfitPercentage),
		})
	}
	table(&b, []string{"Cycle", "Capital", "Units", "Gross", "Commission", "Net", "Profit", "%"}, rows)
	s := r.Summary
	b.WriteString("## Totals\n\n")
	table(&b, []string{"", "Value"}, [][]string{
		{"Cycles", fmt.Sprintf("%d", s.Cycles)},
		{"Initial capital", numfmt.Money(s.InitialCapital)},
		{"Final capital", numfmt.Money(s.FinalCapital)},
		{"Total profit", fmt.Sprintf("%s (%s)", numfmt.Money(s.TotalProfit), numfmt.Percent(s.TotalProfitPercentage))},
	})
	return b.String()
}

// Summary renders the ledger totals.
func Summary(s service.Summary) string {
	var b strings.Builder
	b.WriteString("# Summary\n\n")
	table(&b, []string{"", "Value"}, [][]string{
		{"Movements", fmt.Sprintf("%d", s.Count)},
		{"Total profit", numfmt.Money(s.TotalProfit)},
		{"Average profit", numfmt.Money(s.AverageProfit)},
		{"Total invested", numfmt.Money(s.TotalInvested)},
	})
	return b.String()
}

// Reinvest renders the capital suggested for the next round trip.
func Reinvest(r service.ReinvestSuggestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Reinvest movement %d\n\n", r.MovementID)
	table(&b, []string{"", "Value"}, [][]string{
		{"Capital", "$ " + r.CapitalText},
		{"Last buy price", numfmt.Money(r.BuyPrice)},
		{"Last sell price", numfmt.Money(r.SellPrice)},
	})
	return b.String()
}
