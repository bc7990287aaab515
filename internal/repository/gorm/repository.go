package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
)

type Store struct {
	db *gorm.DB
	// QueryTimeout bounds every statement; zero leaves ctx untouched.
	QueryTimeout time.Duration
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.QueryTimeout)
}

var (
	_ repository.MovementRepository = (*Store)(nil)
	_ repository.EventRepository    = (*Store)(nil)
)

var errNoDB = errors.New("database not configured")

func (s *Store) InsertMovement(ctx context.Context, item *models.Movement) error {
	if s == nil || s.db == nil {
		return repository.Wrap("insert movement", errNoDB)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if item == nil {
		return nil
	}
	return repository.Wrap("insert movement", s.db.WithContext(ctx).Create(item).Error)
}

func (s *Store) GetMovementByID(ctx context.Context, id uint64) (*models.Movement, error) {
	if s == nil || s.db == nil {
		return nil, repository.Wrap("get movement", errNoDB)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if id == 0 {
		return nil, nil
	}
	var item models.Movement
	err := s.db.WithContext(ctx).
		Model(&models.Movement{}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.Wrap("get movement", err)
	}
	return &item, nil
}

func (s *Store) ListMovements(ctx context.Context, params repository.ListMovementsParams) ([]models.Movement, error) {
	if s == nil || s.db == nil {
		return nil, repository.Wrap("list movements", errNoDB)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	query := s.filterMovements(s.db.WithContext(ctx).Model(&models.Movement{}), params)
	query = applyOrder(query, parseOrder(params.OrderBy), params.Asc, "created_at")
	limit := repository.PageLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Movement
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, repository.Wrap("list movements", err)
	}
	return items, nil
}

func (s *Store) CountMovements(ctx context.Context, params repository.ListMovementsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, repository.Wrap("count movements", errNoDB)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	query := s.filterMovements(s.db.WithContext(ctx).Model(&models.Movement{}), params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, repository.Wrap("count movements", err)
	}
	return total, nil
}

func (s *Store) DeleteMovement(ctx context.Context, id uint64) (bool, error) {
	if s == nil || s.db == nil {
		return false, repository.Wrap("delete movement", errNoDB)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if id == 0 {
		return false, nil
	}
	res := s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Movement{})
	if res.Error != nil {
		return false, repository.Wrap("delete movement", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) SumMovements(ctx context.Context) (repository.MovementTotals, error) {
	if s == nil || s.db == nil {
		return repository.MovementTotals{}, repository.Wrap("sum movements", errNoDB)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var row struct {
		Count          int64
		TotalProfit    decimal.Decimal
		TotalInvested  decimal.Decimal
		TotalNetAmount decimal.Decimal
	}
	err := s.db.WithContext(ctx).
		Model(&models.Movement{}).
		Select(`
			COUNT(*) AS count,
			COALESCE(SUM(ganancia),0) AS total_profit,
			COALESCE(SUM(capital_invertido),0) AS total_invested,
			COALESCE(SUM(monto_final),0) AS total_net_amount
		`).
		Scan(&row).Error
	if err != nil {
		return repository.MovementTotals{}, repository.Wrap("sum movements", err)
	}
	return repository.MovementTotals{
		Count:          row.Count,
		TotalProfit:    row.TotalProfit,
		TotalInvested:  row.TotalInvested,
		TotalNetAmount: row.TotalNetAmount,
	}, nil
}

func (s *Store) InsertEvent(ctx context.Context, item *models.LedgerEvent) error {
	if s == nil || s.db == nil {
		return repository.Wrap("insert event", errNoDB)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if item == nil {
		return nil
	}
	return repository.Wrap("insert event", s.db.WithContext(ctx).Create(item).Error)
}

func (s *Store) ListEvents(ctx context.Context, params repository.ListEventsParams) ([]models.LedgerEvent, error) {
	if s == nil || s.db == nil {
		return nil, repository.Wrap("list events", errNoDB)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	query := s.db.WithContext(ctx).Model(&models.LedgerEvent{})
	if params.Name != nil && strings.TrimSpace(*params.Name) != "" {
		query = query.Where("name = ?", strings.TrimSpace(*params.Name))
	}
	query = applyOrder(query, "", nil, "created_at")
	var items []models.LedgerEvent
	if err := query.Limit(repository.PageLimit(params.Limit, 100)).Offset(normalizeOffset(params.Offset)).Find(&items).Error; err != nil {
		return nil, repository.Wrap("list events", err)
	}
	return items, nil
}

func (s *Store) filterMovements(query *gorm.DB, params repository.ListMovementsParams) *gorm.DB {
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", params.Since.UTC())
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("created_at <= ?", params.Until.UTC())
	}
	if params.HasCommission != nil {
		query = query.Where("tiene_comision = ?", *params.HasCommission)
	}
	return query
}

var movementOrderColumns = map[string]string{
	"created_at": "created_at",
	"date":       "fecha",
	"profit":     "ganancia",
	"capital":    "capital_invertido",
	"percentage": "porcentaje",
}

func parseOrder(value string) string {
	key := strings.TrimSpace(strings.ToLower(value))
	if mapped, ok := movementOrderColumns[key]; ok {
		return mapped
	}
	return ""
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	// id breaks ties between rows created in the same instant.
	return query.Order(column + " " + direction).Order("id " + direction)
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
