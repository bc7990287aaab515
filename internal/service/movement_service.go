package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/cache"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/notify"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/numfmt"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
)

var ErrNotFound = errors.New("movement not found")

const summaryCacheKey = "summary:v1"

type MovementService struct {
	Repo       repository.MovementRepository
	Cache      cache.Store
	Notifier   notify.Notifier
	Logger     *zap.Logger
	SummaryTTL time.Duration
	// Location decides which calendar day a movement without date falls on.
	Location *time.Location
	Now      func() time.Time
}

type RecordRequest struct {
	Date       *time.Time
	Capital    decimal.Decimal
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	Commission arbitrage.Commission
}

func (r RecordRequest) Input() arbitrage.TransactionInput {
	return arbitrage.TransactionInput{
		Capital:    r.Capital,
		BuyPrice:   r.BuyPrice,
		SellPrice:  r.SellPrice,
		Commission: r.Commission,
	}
}

type Preview struct {
	Capital        decimal.Decimal          `json:"capital"`
	BuyPrice       decimal.Decimal          `json:"buy_price"`
	SellPrice      decimal.Decimal          `json:"sell_price"`
	CommissionMode arbitrage.CommissionMode `json:"commission_mode"`
	arbitrage.TransactionResult
}

type Summary struct {
	Count          int64           `json:"count"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	AverageProfit  decimal.Decimal `json:"average_profit"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	TotalNetAmount decimal.Decimal `json:"total_net_amount"`
}

type ReinvestSuggestion struct {
	MovementID  uint64          `json:"movement_id"`
	Capital     decimal.Decimal `json:"capital"`
	CapitalText string          `json:"capital_text"`
	BuyPrice    decimal.Decimal `json:"last_buy_price"`
	SellPrice   decimal.Decimal `json:"last_sell_price"`
}

// Preview runs the calculator without touching the store.
func (s *MovementService) Preview(_ context.Context, req RecordRequest) (Preview, error) {
	in := req.Input()
	res, err := arbitrage.Compute(in)
	if err != nil {
		return Preview{}, err
	}
	return Preview{
		Capital:           in.Capital,
		BuyPrice:          in.BuyPrice,
		SellPrice:         in.SellPrice,
		CommissionMode:    in.Commission.Mode(),
		TransactionResult: res,
	}, nil
}

// Record computes the movement and stores it. Invalid input never reaches
// the store.
func (s *MovementService) Record(ctx context.Context, req RecordRequest) (*models.Movement, error) {
	in := req.Input()
	res, err := arbitrage.Compute(in)
	if err != nil {
		return nil, err
	}
	item := models.NewMovement(s.day(req.Date), in, res)
	if err := s.Repo.InsertMovement(ctx, item); err != nil {
		s.storeFailed(ctx, "create", err)
		return nil, err
	}
	s.invalidateSummary(ctx)
	s.notify(ctx, notify.Event{
		Name:    notify.EventMovementCreated,
		Level:   "info",
		Message: "movement recorded",
		Details: map[string]any{
			"id":                item.ID,
			"profit":            item.Profit.StringFixed(2),
			"profit_percentage": item.ProfitPercentage.StringFixed(2),
			"display":           numfmt.Money(item.Profit) + " (" + numfmt.Percent(item.ProfitPercentage) + ")",
		},
	})
	return item, nil
}

// List returns movements most recent first. A database without the
// movements table yet is an empty ledger, not an error.
func (s *MovementService) List(ctx context.Context, params repository.ListMovementsParams) ([]models.Movement, int64, error) {
	items, err := s.Repo.ListMovements(ctx, params)
	if err != nil {
		if repository.IsSchemaMissing(err) {
			s.log().Warn("movements table missing, reporting empty ledger", zap.Error(err))
			return []models.Movement{}, 0, nil
		}
		s.storeFailed(ctx, "list", err)
		return nil, 0, err
	}
	total, err := s.Repo.CountMovements(ctx, params)
	if err != nil {
		if repository.IsSchemaMissing(err) {
			return []models.Movement{}, 0, nil
		}
		s.storeFailed(ctx, "count", err)
		return nil, 0, err
	}
	if items == nil {
		items = []models.Movement{}
	}
	return items, total, nil
}

func (s *MovementService) Get(ctx context.Context, id uint64) (*models.Movement, error) {
	item, err := s.Repo.GetMovementByID(ctx, id)
	if err != nil {
		if repository.IsSchemaMissing(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *MovementService) Delete(ctx context.Context, id uint64) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.storeFailed(ctx, "delete", err)
		}
		return err
	}
	ok, err := s.Repo.DeleteMovement(ctx, id)
	if err != nil {
		s.storeFailed(ctx, "delete", err)
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.invalidateSummary(ctx)
	s.notify(ctx, notify.Event{
		Name:    notify.EventMovementDeleted,
		Level:   "info",
		Message: "movement deleted",
		Details: map[string]any{
			"id":     id,
			"profit": item.Profit.StringFixed(2),
		},
	})
	return nil
}

// Summary aggregates the whole ledger. Results are cached until the next
// write or SummaryTTL.
func (s *MovementService) Summary(ctx context.Context) (Summary, error) {
	var cached Summary
	if ok, err := cache.GetJSON(ctx, s.Cache, summaryCacheKey, &cached); err != nil {
		s.log().Debug("summary cache read failed", zap.Error(err))
	} else if ok {
		return cached, nil
	}
	return s.RefreshSummary(ctx)
}

// RefreshSummary recomputes the totals and overwrites the cached copy.
func (s *MovementService) RefreshSummary(ctx context.Context) (Summary, error) {
	totals, err := s.Repo.SumMovements(ctx)
	if err != nil {
		if repository.IsSchemaMissing(err) {
			return emptySummary(), nil
		}
		s.storeFailed(ctx, "summary", err)
		return Summary{}, err
	}
	out := Summary{
		Count:          totals.Count,
		TotalProfit:    totals.TotalProfit,
		AverageProfit:  decimal.Zero,
		TotalInvested:  totals.TotalInvested,
		TotalNetAmount: totals.TotalNetAmount,
	}
	if totals.Count > 0 {
		out.AverageProfit = totals.TotalProfit.Div(decimal.NewFromInt(totals.Count))
	}
	if err := cache.SetJSON(ctx, s.Cache, summaryCacheKey, out, s.SummaryTTL); err != nil {
		s.log().Debug("summary cache write failed", zap.Error(err))
	}
	return out, nil
}

// Reinvest proposes the capital for the next round trip: what the stored
// movement returned, rounded to whole pesos.
func (s *MovementService) Reinvest(ctx context.Context, id uint64) (ReinvestSuggestion, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return ReinvestSuggestion{}, err
	}
	capital := item.Capital.Add(item.Profit).Round(0)
	return ReinvestSuggestion{
		MovementID:  item.ID,
		Capital:     capital,
		CapitalText: numfmt.Thousands(capital),
		BuyPrice:    item.BuyPrice,
		SellPrice:   item.SellPrice,
	}, nil
}

func emptySummary() Summary {
	return Summary{
		TotalProfit:    decimal.Zero,
		AverageProfit:  decimal.Zero,
		TotalInvested:  decimal.Zero,
		TotalNetAmount: decimal.Zero,
	}
}

func (s *MovementService) day(date *time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	// An explicit date is a calendar day already, only "today" depends on loc.
	t := s.now().In(loc)
	if date != nil && !date.IsZero() {
		t = *date
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *MovementService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MovementService) invalidateSummary(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, summaryCacheKey); err != nil {
		s.log().Warn("summary cache invalidation failed", zap.Error(err))
	}
}

func (s *MovementService) storeFailed(ctx context.Context, op string, err error) {
	s.log().Error("movement store failed", zap.String("op", op), zap.Error(err))
	s.notify(ctx, notify.Event{
		Name:    notify.EventStoreFailed,
		Level:   "error",
		Message: "could not " + op + " movements",
		Details: map[string]any{"op": op, "error": err.Error()},
	})
}

func (s *MovementService) notify(ctx context.Context, ev notify.Event) {
	if s.Notifier == nil {
		return
	}
	// Notification failures never fail the ledger operation.
	if err := s.Notifier.Notify(ctx, ev); err != nil {
		s.log().Warn("notify failed", zap.String("event", ev.Name), zap.Error(err))
	}
}

func (s *MovementService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
