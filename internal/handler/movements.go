package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

type MovementHandler struct {
	Service *service.MovementService
}

func (h *MovementHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/movements")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/reinvest", h.reinvest)
	r.GET("/api/v1/summary", h.summary)
}

type commissionRequest struct {
	Mode  string `json:"mode"`
	Value Amount `json:"value"`
}

type movementRequest struct {
	Date       string             `json:"date"`
	Capital    Amount             `json:"capital"`
	BuyPrice   Amount             `json:"buy_price"`
	SellPrice  Amount             `json:"sell_price"`
	Commission *commissionRequest `json:"commission"`
}

func (req movementRequest) toRecord() (service.RecordRequest, error) {
	out := service.RecordRequest{}
	for _, f := range []struct {
		name string
		v    Amount
	}{
		{"capital", req.Capital},
		{"buy_price", req.BuyPrice},
		{"sell_price", req.SellPrice},
	} {
		if !f.v.Set {
			return out, &arbitrage.InvalidInputError{Field: f.name, Reason: "is required"}
		}
	}
	out.Capital = req.Capital.Value
	out.BuyPrice = req.BuyPrice.Value
	out.SellPrice = req.SellPrice.Value
	if req.Commission != nil {
		c, err := arbitrage.ParseCommission(req.Commission.Mode, req.Commission.Value.Ptr())
		if err != nil {
			return out, err
		}
		out.Commission = c
	}
	if v := strings.TrimSpace(req.Date); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return out, &arbitrage.InvalidInputError{Field: "date", Reason: "must be YYYY-MM-DD"}
		}
		out.Date = &d
	}
	return out, nil
}

func bindMovement(c *gin.Context) (service.RecordRequest, bool) {
	var body movementRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return service.RecordRequest{}, false
	}
	req, err := body.toRecord()
	if err != nil {
		Fail(c, err)
		return service.RecordRequest{}, false
	}
	return req, true
}

// @Summary Record a movement
// @Tags movements
// @Accept json
// @Produce json
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 502 {object} apiResponse
// @Router /api/v1/movements [post]
func (h *MovementHandler) create(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	req, ok := bindMovement(c)
	if !ok {
		return
	}
	item, err := h.Service.Record(c.Request.Context(), req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, item)
}

// @Summary List movements, most recent first
// @Tags movements
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "offset"
// @Param since query string false "RFC3339 lower bound on created_at"
// @Param until query string false "RFC3339 upper bound on created_at"
// @Param has_commission query bool false "filter by commission"
// @Success 200 {object} apiResponse
// @Router /api/v1/movements [get]
func (h *MovementHandler) list(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	limit := repository.PageLimit(intQuery(c, "limit", 50), 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListMovementsParams{
		Limit:         limit,
		Offset:        offset,
		Since:         timeQuery(c, "since"),
		Until:         timeQuery(c, "until"),
		HasCommission: boolQueryPtr(c, "has_commission"),
		OrderBy:       "created_at",
		Asc:           boolPtr(false),
	}
	items, total, err := h.Service.List(c.Request.Context(), params)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a movement
// @Tags movements
// @Produce json
// @Param id path int true "movement id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/movements/{id} [get]
func (h *MovementHandler) get(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := uint64QueryParam(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete a movement
// @Tags movements
// @Param id path int true "movement id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/movements/{id} [delete]
func (h *MovementHandler) delete(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := uint64QueryParam(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"id": id, "deleted": true}, nil)
}

// @Summary Capital to reinvest after a movement
// @Tags movements
// @Produce json
// @Param id path int true "movement id"
// @Success 200 {object} apiResponse
// @Router /api/v1/movements/{id}/reinvest [get]
func (h *MovementHandler) reinvest(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := uint64QueryParam(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	out, err := h.Service.Reinvest(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, out, nil)
}

// @Summary Ledger totals
// @Tags movements
// @Produce json
// @Success 200 {object} apiResponse
// @Router /api/v1/summary [get]
func (h *MovementHandler) summary(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	out, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, out, nil)
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQueryPtr(c *gin.Context, key string) *bool {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
	}
	return nil
}

func timeQuery(c *gin.Context, key string) *time.Time {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, v); err == nil {
		t := ts.UTC()
		return &t
	}
	if ts, err := time.Parse(time.DateOnly, v); err == nil {
		return &ts
	}
	return nil
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}

func uint64QueryParam(c *gin.Context, key string) uint64 {
	val := strings.TrimSpace(c.Param(key))
	if val == "" {
		return 0
	}
	out, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0
	}
	return out
}

func boolPtr(v bool) *bool { return &v }
