package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"interioai/internal/model"
	"interioai/internal/service"

	"github.com/gin-gonic/gin"
)

// DownloadPath prefixes generated files in API responses
const DownloadPath = "/api/v1/download/"

// CatalogHandler exposes the read-only price catalog, room rules and generated files
type CatalogHandler struct {
	estimator *service.CostEstimator
	engine    *service.SuggestionEngine
	outputDir string
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(estimator *service.CostEstimator, engine *service.SuggestionEngine, outputDir string) *CatalogHandler {
	return &CatalogHandler{
		estimator: estimator,
		engine:    engine,
		outputDir: outputDir,
	}
}

// Catalog handles GET /api/v1/catalog
func (h *CatalogHandler) Catalog(c *gin.Context) {
	prices := h.estimator.Prices()
	resp := model.CatalogResponse{
		Currency:      h.estimator.Currency(),
		MatchStrategy: string(prices.Strategy()),
		Prices:        make([]model.PriceView, 0, prices.Len()),
	}
	for _, e := range prices.Entries() {
		resp.Prices = append(resp.Prices, model.PriceView{
			Name:     e.Name,
			Budget:   e.Budget,
			MidRange: e.MidRange,
			Premium:  e.Premium,
		})
	}

	rules := h.engine.Rules()
	resp.Rooms = make([]model.RoomRuleView, 0, len(rules.Rooms))
	for _, r := range rules.Rooms {
		resp.Rooms = append(resp.Rooms, model.RoomRuleView{
			RoomType:   r.Room,
			Essential:  r.Requirement.Essential,
			Common:     r.Requirement.Common,
			Luxury:     r.Requirement.Luxury,
			LayoutTips: r.LayoutTips,
		})
	}

	resp.Styles = make([]model.StyleView, 0, len(rules.Styles))
	for _, s := range rules.Styles {
		resp.Styles = append(resp.Styles, model.StyleView{
			Name:      s.Name,
			Keywords:  s.Keywords,
			Colors:    s.Colors,
			Materials: s.Materials,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Download handles GET /api/v1/download/:filename
func (h *CatalogHandler) Download(c *gin.Context) {
	name := c.Param("filename")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
		return
	}

	path := filepath.Join(h.outputDir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.FileAttachment(path, name)
}
