package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/cache"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memRepo struct {
	items  []models.Movement
	nextID uint64
	err    error
}

func (r *memRepo) InsertMovement(_ context.Context, item *models.Movement) error {
	if r.err != nil {
		return repository.Wrap("insert movement", r.err)
	}
	r.nextID++
	item.ID = r.nextID
	r.items = append([]models.Movement{*item}, r.items...)
	return nil
}

func (r *memRepo) GetMovementByID(_ context.Context, id uint64) (*models.Movement, error) {
	if r.err != nil {
		return nil, repository.Wrap("get movement", r.err)
	}
	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *memRepo) ListMovements(_ context.Context, params repository.ListMovementsParams) ([]models.Movement, error) {
	if r.err != nil {
		return nil, repository.Wrap("list movements", r.err)
	}
	items := r.items
	if params.Offset >= len(items) {
		return []models.Movement{}, nil
	}
	items = items[params.Offset:]
	if params.Limit > 0 && params.Limit < len(items) {
		items = items[:params.Limit]
	}
	return items, nil
}

func (r *memRepo) CountMovements(context.Context, repository.ListMovementsParams) (int64, error) {
	if r.err != nil {
		return 0, repository.Wrap("count movements", r.err)
	}
	return int64(len(r.items)), nil
}

func (r *memRepo) DeleteMovement(_ context.Context, id uint64) (bool, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) SumMovements(context.Context) (repository.MovementTotals, error) {
	out := repository.MovementTotals{Count: int64(len(r.items))}
	for _, m := range r.items {
		out.TotalProfit = out.TotalProfit.Add(m.Profit)
		out.TotalInvested = out.TotalInvested.Add(m.Capital)
		out.TotalNetAmount = out.TotalNetAmount.Add(m.NetProceeds)
	}
	return out, nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

func newRouter(repo *memRepo) *gin.Engine {
	movements := &service.MovementService{Repo: repo, Cache: cache.NewMemoryStore()}
	r := gin.New()
	(&MovementHandler{Service: movements}).Register(r)
	(&CalculatorHandler{Movements: movements, Simulations: &service.SimulationService{MaxCycles: 10}}).Register(r)
	(&HealthHandler{}).Register(r)
	return r
}

func call(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestCreateAndList(t *testing.T) {
	repo := &memRepo{}
	r := newRouter(repo)

	w, env := call(t, r, http.MethodPost, "/api/v1/movements",
		`{"date":"2025-03-10","capital":"100.000","buy_price":1000,"sell_price":"1.050","commission":{"mode":"percentage","value":"2,5"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item models.Movement
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.True(t, item.Profit.Equal(decimalOf(t, "2375")), item.Profit.String())
	assert.Equal(t, "2025-03-10", item.Date.Format("2006-01-02"))

	call(t, r, http.MethodPost, "/api/v1/movements", `{"capital":50000,"buy_price":1000,"sell_price":1100}`)

	w, env = call(t, r, http.MethodGet, "/api/v1/movements?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Movement
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, uint64(2), items[0].ID)
	assert.Equal(t, float64(2), env.Meta["total"])
	assert.Equal(t, true, env.Meta["has_next"])
}

func TestList_ReportsAppliedLimit(t *testing.T) {
	repo := &memRepo{}
	for i := 0; i < 600; i++ {
		repo.nextID++
		repo.items = append(repo.items, models.Movement{ID: repo.nextID})
	}
	r := newRouter(repo)

	w, env := call(t, r, http.MethodGet, "/api/v1/movements?limit=1000", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Movement
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, repository.MaxPageLimit)
	assert.Equal(t, float64(repository.MaxPageLimit), env.Meta["limit"])
	assert.Equal(t, true, env.Meta["has_next"])

	w, env = call(t, r, http.MethodGet, "/api/v1/movements?limit=1000&offset=500", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 100)
	assert.Equal(t, false, env.Meta["has_next"])

	w, env = call(t, r, http.MethodGet, "/api/v1/movements?limit=0", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 50)
	assert.Equal(t, float64(50), env.Meta["limit"])
}

func TestCreate_InvalidInput(t *testing.T) {
	repo := &memRepo{}
	r := newRouter(repo)

	w, env := call(t, r, http.MethodPost, "/api/v1/movements", `{"capital":0,"buy_price":1000,"sell_price":1050}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "capital", env.Meta["field"])

	w, _ = call(t, r, http.MethodPost, "/api/v1/movements", `{"buy_price":1000,"sell_price":1050}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, r, http.MethodPost, "/api/v1/movements", `{"capital":"abc","buy_price":1000,"sell_price":1050}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, r, http.MethodPost, "/api/v1/movements", `{"capital":1,"buy_price":1,"sell_price":1,"commission":{"mode":"percentage"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.items)
}

func TestCreate_StoreError(t *testing.T) {
	r := newRouter(&memRepo{err: errors.New("connection reset")})
	w, env := call(t, r, http.MethodPost, "/api/v1/movements", `{"capital":100000,"buy_price":1000,"sell_price":1050}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, http.StatusBadGateway, env.Code)
}

func TestGetDeleteReinvest(t *testing.T) {
	repo := &memRepo{}
	r := newRouter(repo)
	call(t, r, http.MethodPost, "/api/v1/movements", `{"capital":100000,"buy_price":1000,"sell_price":1050}`)

	w, _ := call(t, r, http.MethodGet, "/api/v1/movements/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := call(t, r, http.MethodGet, "/api/v1/movements/1/reinvest", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sug service.ReinvestSuggestion
	require.NoError(t, json.Unmarshal(env.Data, &sug))
	assert.Equal(t, "105.000", sug.CapitalText)

	w, _ = call(t, r, http.MethodDelete, "/api/v1/movements/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = call(t, r, http.MethodDelete, "/api/v1/movements/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = call(t, r, http.MethodGet, "/api/v1/movements/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummary(t *testing.T) {
	r := newRouter(&memRepo{})
	call(t, r, http.MethodPost, "/api/v1/movements", `{"capital":100000,"buy_price":1000,"sell_price":1050}`)
	call(t, r, http.MethodPost, "/api/v1/movements", `{"capital":100000,"buy_price":1000,"sell_price":1000}`)

	w, env := call(t, r, http.MethodGet, "/api/v1/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sum service.Summary
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, int64(2), sum.Count)
	assert.True(t, sum.TotalProfit.Equal(decimalOf(t, "5000")))
	assert.True(t, sum.AverageProfit.Equal(decimalOf(t, "2500")))
}

func TestCalculate_DoesNotPersist(t *testing.T) {
	repo := &memRepo{}
	r := newRouter(repo)
	w, env := call(t, r, http.MethodPost, "/api/v1/calculate",
		`{"capital":100000,"buy_price":1000,"sell_price":1050,"commission":{"mode":"fixed-net-amount","value":104000}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "fixed-net-amount", out["commission_mode"])
	assert.Empty(t, repo.items)
}

func TestSimulate(t *testing.T) {
	r := newRouter(&memRepo{})
	w, env := call(t, r, http.MethodPost, "/api/v1/simulate",
		`{"capital":100000,"buy_price":1000,"sell_price":1050,"reinvest":true,"cycles":3}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report service.SimulationReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	require.Len(t, report.Rows, 3)
	assert.True(t, report.Rows[2].CapitalUsed.Equal(decimalOf(t, "110250")))

	w, _ = call(t, r, http.MethodPost, "/api/v1/simulate",
		`{"capital":100000,"buy_price":1000,"sell_price":1050,"cycles":11}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = call(t, r, http.MethodPost, "/api/v1/simulate",
		`{"capital":100000,"buy_price":1000,"sell_price":1050,"cycles":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReady_NoDB(t *testing.T) {
	r := newRouter(&memRepo{})
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"1.050,50"`), &a))
	assert.True(t, a.Set)
	assert.Equal(t, "1050.5", a.Value.String())

	require.NoError(t, json.Unmarshal([]byte(`12.25`), &a))
	assert.Equal(t, "12.25", a.Value.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &a))
	assert.False(t, a.Set)
	assert.Nil(t, a.Ptr())

	assert.Error(t, json.Unmarshal([]byte(`"x"`), &a))
}

func decimalOf(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
