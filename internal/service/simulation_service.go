package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
)

const defaultMaxCycles = 1000

type SimulationService struct {
	Logger *zap.Logger
	// MaxCycles bounds a single run; zero means defaultMaxCycles.
	MaxCycles int
}

type SimulationReport struct {
	Rows    []arbitrage.SimulationRow   `json:"rows"`
	Summary arbitrage.SimulationSummary `json:"summary"`
}

func (s *SimulationService) Run(_ context.Context, in arbitrage.SimulationInput) (SimulationReport, error) {
	limit := defaultMaxCycles
	if s != nil && s.MaxCycles > 0 {
		limit = s.MaxCycles
	}
	if in.Cycles > limit {
		return SimulationReport{}, &arbitrage.InvalidInputError{
			Field:  "cycles",
			Reason: "must be at most " + strconv.Itoa(limit),
		}
	}
	rows, err := arbitrage.Simulate(in)
	if err != nil {
		return SimulationReport{}, err
	}
	summary := arbitrage.Summarize(rows)
	if s != nil && s.Logger != nil {
		s.Logger.Debug("simulation finished",
			zap.Int("cycles", in.Cycles),
			zap.Bool("reinvest", in.Reinvest),
			zap.String("total_profit", summary.TotalProfit.StringFixed(2)),
		)
	}
	return SimulationReport{Rows: rows, Summary: summary}, nil
}
