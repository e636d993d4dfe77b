package handler

import (
	"net/http"
	"strings"

	"interioai/internal/catalog"
	"interioai/internal/model"
	"interioai/internal/service"

	"github.com/gin-gonic/gin"
)

// SuggestionHandler exposes the suggestion engine for already-detected items
type SuggestionHandler struct {
	engine *service.SuggestionEngine
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(engine *service.SuggestionEngine) *SuggestionHandler {
	return &SuggestionHandler{engine: engine}
}

// Suggest handles POST /api/v1/suggestions
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var req model.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// UI labels map to their room type; anything else is forced as given
	forced := model.RoomType(strings.TrimSpace(req.RoomType))
	if rt, ok := catalog.LookupRoomLabel(req.RoomType); ok {
		forced = rt
	}
	if req.DetectedItems == nil {
		req.DetectedItems = []string{}
	}

	result := h.engine.Analyze(req.DetectedItems, forced)

	if c.Query("format") == "text" {
		c.String(http.StatusOK, service.AnalysisReport(result))
		return
	}
	c.JSON(http.StatusOK, result)
}
