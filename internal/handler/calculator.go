package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

// CalculatorHandler serves the stateless endpoints: nothing here touches
// the store.
type CalculatorHandler struct {
	Movements   *service.MovementService
	Simulations *service.SimulationService
}

func (h *CalculatorHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1")
	g.POST("/calculate", h.calculate)
	g.POST("/simulate", h.simulate)
}

// @Summary Preview a movement without saving it
// @Tags calculator
// @Accept json
// @Produce json
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/calculate [post]
func (h *CalculatorHandler) calculate(c *gin.Context) {
	if h.Movements == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	req, ok := bindMovement(c)
	if !ok {
		return
	}
	out, err := h.Movements.Preview(c.Request.Context(), req)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, out, nil)
}

type simulateRequest struct {
	Capital       Amount `json:"capital"`
	BuyPrice      Amount `json:"buy_price"`
	SellPrice     Amount `json:"sell_price"`
	CommissionPct Amount `json:"commission_pct"`
	Reinvest      bool   `json:"reinvest"`
	Cycles        int    `json:"cycles"`
}

// @Summary Simulate repeated cycles
// @Tags calculator
// @Accept json
// @Produce json
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/simulate [post]
func (h *CalculatorHandler) simulate(c *gin.Context) {
	if h.Simulations == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var body simulateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	out, err := h.Simulations.Run(c.Request.Context(), arbitrage.SimulationInput{
		InitialCapital: body.Capital.Value,
		BuyPrice:       body.BuyPrice.Value,
		SellPrice:      body.SellPrice.Value,
		CommissionPct:  body.CommissionPct.Ptr(),
		Reinvest:       body.Reinvest,
		Cycles:         body.Cycles,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, out, map[string]any{"cycles": len(out.Rows)})
}
