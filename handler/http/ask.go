package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealrag/src/log"
)

type askRequest struct {
	Query string `json:"query" binding:"required"`
}

// Ask godoc
// @Summary Answer a question from the indexed documents
// @Tags assistant
// @Accept json
// @Produce json
// @Param body body askRequest true "Question"
// @Success 200 {object} assistant.Answer
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ask [post]
func (h *Handler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	answer, err := h.assistantSvc.Ask(c.Request.Context(), req.Query)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}

	if _, err := h.journalSvc.Record(c.Request.Context(), answer.Query, answer.Text, answer.Sources, answer.Products); err != nil {
		// the answer is still good, the exchange just went unlogged
		log.Error(err, "failed to journal exchange", "query", req.Query)
	}

	sendJSON(c, http.StatusOK, answer)
}
