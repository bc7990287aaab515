package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
)

type EventHandler struct {
	Repo repository.EventRepository
}

func (h *EventHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/events", h.list)
}

// @Summary Audit trail of ledger writes
// @Tags events
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "offset"
// @Param event query string false "event name, e.g. movement.created"
// @Success 200 {object} apiResponse
// @Router /api/v1/events [get]
func (h *EventHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := repository.PageLimit(intQuery(c, "limit", 50), 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListEventsParams{Limit: limit, Offset: offset}
	if v := strings.TrimSpace(c.Query("event")); v != "" {
		params.Name = &v
	}
	items, err := h.Repo.ListEvents(c.Request.Context(), params)
	if err != nil {
		if repository.IsSchemaMissing(err) {
			Ok(c, []any{}, map[string]any{"limit": limit, "offset": offset})
			return
		}
		Fail(c, err)
		return
	}
	Ok(c, items, map[string]any{"limit": limit, "offset": offset})
}
