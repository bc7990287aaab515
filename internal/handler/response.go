package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/middleware"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

type apiResponse struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Data      any            `json:"data,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:      0,
		Message:   "ok",
		Data:      data,
		Meta:      meta,
		RequestID: middleware.RequestIDFrom(c),
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, apiResponse{
		Code:      0,
		Message:   "created",
		Data:      data,
		RequestID: middleware.RequestIDFrom(c),
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:      status,
		Message:   message,
		Meta:      meta,
		RequestID: middleware.RequestIDFrom(c),
	})
}

// Fail maps a service error to its HTTP status.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	var inv *arbitrage.InvalidInputError
	switch {
	case errors.As(err, &inv):
		Error(c, http.StatusBadRequest, err.Error(), map[string]any{"field": inv.Field})
	case errors.Is(err, arbitrage.ErrInvalidInput):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, repository.ErrStore):
		Error(c, http.StatusBadGateway, "movement store unavailable", nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
