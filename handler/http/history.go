package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetHistory godoc
// @Summary List logged exchanges, newest first
// @Tags history
// @Param limit query int false "Maximum number of exchanges"
// @Produce json
// @Success 200 {array} history.Exchange
// @Failure 500 {object} ErrorResponse
// @Router /history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			sendError(c, http.StatusBadRequest, errInvalidLimit)
			return
		}
		limit = parsed
	}

	exchanges, err := h.historyStore.List(c.Request.Context(), limit)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}

	sendJSON(c, http.StatusOK, exchanges)
}
