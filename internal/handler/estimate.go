package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"interioai/internal/export"
	"interioai/internal/model"
	"interioai/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EstimateHandler prices item lists without running the vision pipeline
type EstimateHandler struct {
	estimator   *service.CostEstimator
	conversion  service.CurrencyConversion
	defaultTier model.BudgetTier
	logger      *zap.Logger
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimator *service.CostEstimator, conversion service.CurrencyConversion, defaultTier model.BudgetTier, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimator:   estimator,
		conversion:  conversion,
		defaultTier: defaultTier,
		logger:      logger,
	}
}

// Estimate handles POST /api/v1/estimate
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req model.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	breakdown := h.conversion.Apply(h.estimator.Estimate(req.Items, budgetTier(req.BudgetLevel, h.defaultTier)))

	if c.Query("format") == "text" {
		c.String(http.StatusOK, service.CostReport(breakdown))
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// Compare handles POST /api/v1/estimate/compare
func (h *EstimateHandler) Compare(c *gin.Context) {
	var req model.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	cmp := h.compare(req.Items)

	if c.Query("format") == "text" {
		c.String(http.StatusOK, service.ComparisonReport(cmp))
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// Export handles POST /api/v1/estimate/export - XLSX workbook of every tier
func (h *EstimateHandler) Export(c *gin.Context) {
	var req model.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	data, err := export.CostWorkbook(h.compare(req.Items), budgetTier(req.BudgetLevel, h.defaultTier))
	if err != nil {
		h.logger.Error("failed to build cost workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed: " + err.Error()})
		return
	}

	filename := fmt.Sprintf("cost_estimate_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// budgetTier parses s, using fallback when the client sent nothing
func budgetTier(s string, fallback model.BudgetTier) model.BudgetTier {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return model.ParseBudgetTier(s)
}

func (h *EstimateHandler) compare(items []string) model.BudgetComparison {
	cmp := h.estimator.Compare(items)
	for tier, b := range cmp {
		cmp[tier] = h.conversion.Apply(b)
	}
	return cmp
}
