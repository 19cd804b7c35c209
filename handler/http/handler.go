package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealrag/src/core/assistant"
	"dealrag/src/infrastructure/journal"
	"dealrag/src/ollama"
	"dealrag/src/storage/history"
	"dealrag/src/storage/weaviate"
)

type Handler struct {
	assistantSvc *assistant.Service
	searchSvc    assistant.SearchService
	journalSvc   *journal.Service
	historyStore history.Store
	weaviateSDK  *weaviate.SDK
	ollamaClient *ollama.Client
}

func NewHandler(assistantSvc *assistant.Service, searchSvc assistant.SearchService, journalSvc *journal.Service, historyStore history.Store, weaviateSDK *weaviate.SDK, ollamaClient *ollama.Client) *Handler {
	return &Handler{
		assistantSvc: assistantSvc,
		searchSvc:    searchSvc,
		journalSvc:   journalSvc,
		historyStore: historyStore,
		weaviateSDK:  weaviateSDK,
		ollamaClient: ollamaClient,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.POST("/ask", h.Ask)
	v1.POST("/search", h.Search)
	v1.GET("/history", h.GetHistory)
	v1.GET("/health", h.CheckHealth)
}

// Common error response structure
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func sendError(c *gin.Context, status int, err error) {
	code := "INTERNAL_ERROR"
	if status == http.StatusBadRequest {
		code = "BAD_REQUEST"
	}

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func sendJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
