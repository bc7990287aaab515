package cronrunner

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/cache"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

type totalsRepo struct {
	repository.MovementRepository
	totals repository.MovementTotals
	err    error
}

func (r *totalsRepo) SumMovements(context.Context) (repository.MovementTotals, error) {
	return r.totals, r.err
}

func (r *totalsRepo) ListMovements(context.Context, repository.ListMovementsParams) ([]models.Movement, error) {
	return nil, nil
}

func TestRunner_AddValidatesSpec(t *testing.T) {
	r := New(nil, context.Background())
	if _, err := r.Add("bad", "not a spec", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
	if _, err := r.Add(SummarySnapshotJob, "@every 1h", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("add: %v", err)
	}
	if r.Entries() != 1 {
		t.Fatalf("entries=%d want 1", r.Entries())
	}
}

func TestSummarySnapshot(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	repo := &totalsRepo{}
	repo.totals.Count = 2
	repo.totals.TotalProfit = repo.totals.TotalProfit.Add(dec(t, "7375"))
	svc := &service.MovementService{Repo: repo, Cache: cache.NewMemoryStore()}

	if err := SummarySnapshot(svc, zap.New(core))(context.Background()); err != nil {
		t.Fatalf("job: %v", err)
	}
	entries := logs.FilterMessage("ledger summary").All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d want 1", len(entries))
	}
	if got := entries[0].ContextMap()["average_profit"]; got != "$ 3.687,50" {
		t.Fatalf("average_profit=%v", got)
	}
}

func TestSummarySnapshot_Error(t *testing.T) {
	repo := &totalsRepo{err: repository.Wrap("sum movements", errors.New("down"))}
	svc := &service.MovementService{Repo: repo}
	if err := SummarySnapshot(svc, nil)(context.Background()); !errors.Is(err, repository.ErrStore) {
		t.Fatalf("err=%v want store error", err)
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}
