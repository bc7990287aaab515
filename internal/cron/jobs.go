package cronrunner

import (
	"context"

	"go.uber.org/zap"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/numfmt"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

const SummarySnapshotJob = "summary_snapshot"

// SummarySnapshot recomputes the ledger totals, refreshing the cached copy
// served by the API, and logs them.
func SummarySnapshot(svc *service.MovementService, logger *zap.Logger) func(context.Context) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context) error {
		if svc == nil {
			return nil
		}
		sum, err := svc.RefreshSummary(ctx)
		if err != nil {
			return err
		}
		logger.Info("ledger summary",
			zap.Int64("movements", sum.Count),
			zap.String("total_profit", numfmt.Money(sum.TotalProfit)),
			zap.String("average_profit", numfmt.Money(sum.AverageProfit)),
			zap.String("total_invested", numfmt.Money(sum.TotalInvested)),
		)
		return nil
	}
}
