package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
)

// MovementRepository is the record store behind the ledger.
type MovementRepository interface {
	InsertMovement(ctx context.Context, item *models.Movement) error
	GetMovementByID(ctx context.Context, id uint64) (*models.Movement, error)
	ListMovements(ctx context.Context, params ListMovementsParams) ([]models.Movement, error)
	CountMovements(ctx context.Context, params ListMovementsParams) (int64, error)
	DeleteMovement(ctx context.Context, id uint64) (bool, error)
	SumMovements(ctx context.Context) (MovementTotals, error)
}

// EventRepository keeps the audit trail of ledger writes.
type EventRepository interface {
	InsertEvent(ctx context.Context, item *models.LedgerEvent) error
	ListEvents(ctx context.Context, params ListEventsParams) ([]models.LedgerEvent, error)
}

type ListEventsParams struct {
	Limit  int
	Offset int
	Name   *string
}

// MaxPageLimit caps every list query.
const MaxPageLimit = 500

// PageLimit is the page size a store applies for a requested limit:
// fallback when limit <= 0, never above MaxPageLimit.
func PageLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

type ListMovementsParams struct {
	Limit         int
	Offset        int
	Since         *time.Time
	Until         *time.Time
	HasCommission *bool
	OrderBy       string
	Asc           *bool
}

type MovementTotals struct {
	Count          int64           `json:"count"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	TotalNetAmount decimal.Decimal `json:"total_net_amount"`
}

var ErrStore = errors.New("store error")

// StoreError wraps any failure of the backing database.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op + ": store error"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() []error { return []error{ErrStore, e.Err} }

func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// undefined_table, returned while the schema has not been provisioned yet.
const codeUndefinedTable = "42P01"

// IsSchemaMissing reports whether err means the movements table does not
// exist. Readers treat that as an empty ledger.
func IsSchemaMissing(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUndefinedTable
	}
	return false
}
