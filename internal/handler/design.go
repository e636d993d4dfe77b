package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"interioai/internal/config"
	"interioai/internal/model"
	"interioai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadField is the multipart field carrying the room photo
const UploadField = "roomPhoto"

// DesignHandler handles room photo uploads and runs the design pipeline
type DesignHandler struct {
	designService *service.DesignService
	upload        config.UploadConfig
	pipeline      config.PipelineConfig
	defaultTier   model.BudgetTier
	logger        *zap.Logger
}

// NewDesignHandler creates a new design handler
func NewDesignHandler(
	designService *service.DesignService,
	upload config.UploadConfig,
	pipeline config.PipelineConfig,
	defaultTier model.BudgetTier,
	logger *zap.Logger,
) *DesignHandler {
	return &DesignHandler{
		designService: designService,
		upload:        upload,
		pipeline:      pipeline,
		defaultTier:   defaultTier,
		logger:        logger,
	}
}

// Analyze handles POST /api/v1/analyze. ?format=text returns a plain text report.
func (h *DesignHandler) Analyze(c *gin.Context) {
	req, ok := h.bindDesignRequest(c)
	if !ok {
		return
	}

	result, err := h.designService.Analyze(c.Request.Context(), req)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"success": false, "error": "Analysis failed: " + err.Error()})
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, service.DesignReport(result))
		return
	}
	c.JSON(http.StatusOK, NewAnalyzeResponse(result))
}

// AnalyzeStream handles POST /api/v1/analyze/stream - SSE progress for the pipeline
func (h *DesignHandler) AnalyzeStream(c *gin.Context) {
	req, ok := h.bindDesignRequest(c)
	if !ok {
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Streaming not supported"})
		return
	}

	sendSSE(c, "start", map[string]any{"room_type": req.RoomLabel, "style": req.Style})
	flusher.Flush()

	result, err := h.designService.AnalyzeStream(c.Request.Context(), req, func(event string, data any) error {
		if err := c.Request.Context().Err(); err != nil {
			return err
		}
		sendSSE(c, event, data)
		flusher.Flush()
		return nil
	})

	if err != nil {
		sendSSE(c, "error", map[string]any{"error": err.Error(), "status": errorStatus(err)})
		flusher.Flush()
		return
	}

	sendSSE(c, "results", NewAnalyzeResponse(result))
	flusher.Flush()

	sendSSE(c, "done", nil)
	flusher.Flush()
}

// bindDesignRequest validates and stores the uploaded photo, then reads the
// preference fields. It writes the error response itself when it returns false.
func (h *DesignHandler) bindDesignRequest(c *gin.Context) (*model.DesignRequest, bool) {
	file, err := c.FormFile(UploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No image file uploaded"})
		return nil, false
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No selected file"})
		return nil, false
	}
	if !h.allowedFile(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid file type. Use " + strings.ToUpper(strings.Join(h.upload.AllowedExtensions, ", ")),
		})
		return nil, false
	}
	if h.upload.MaxBytes > 0 && file.Size > h.upload.MaxBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("File too large: limit is %d bytes", h.upload.MaxBytes),
		})
		return nil, false
	}

	if err := os.MkdirAll(h.upload.Dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to prepare upload directory"})
		return nil, false
	}
	name := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8],
		strings.ToLower(filepath.Ext(file.Filename)))
	path := filepath.Join(h.upload.Dir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		h.logger.Error("failed to save upload", zap.String("path", path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save upload"})
		return nil, false
	}

	req := &model.DesignRequest{
		ImagePath:          path,
		RoomLabel:          strings.TrimSpace(c.PostForm("roomType")),
		Style:              strings.TrimSpace(c.PostForm("style")),
		Palette:            strings.TrimSpace(c.PostForm("palette")),
		FurniturePrefs:     strings.TrimSpace(c.PostForm("furniture")),
		BudgetLevel:        budgetTier(c.PostForm("budget"), h.defaultTier),
		EstimateDimensions: h.pipeline.EstimateDimensions,
		GenerateDesigns:    h.pipeline.GenerateDesigns,
		EditImage:          h.pipeline.EditImage,
		CreateComparison:   h.pipeline.CreateComparison,
	}

	h.logger.Info("processing design request",
		zap.String("file", name),
		zap.String("room_type", req.RoomLabel),
		zap.String("style", req.Style),
		zap.String("palette", req.Palette),
		zap.String("budget", string(req.BudgetLevel)),
	)
	return req, true
}

func (h *DesignHandler) allowedFile(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ext != "" && slices.Contains(h.upload.AllowedExtensions, ext)
}

// NewAnalyzeResponse shapes a pipeline result for the frontend
func NewAnalyzeResponse(r *model.DesignResult) *model.AnalyzeResponse {
	resp := &model.AnalyzeResponse{
		Success:        true,
		RequestID:      r.RequestID,
		Timestamp:      time.Now().Format(time.RFC3339),
		RoomType:       r.RoomType,
		Style:          r.Style,
		Palette:        r.Preferences.Palette,
		DetectedItems:  r.DetectedItems,
		SuggestedItems: r.SuggestedItems,
		CostBreakdown:  r.CostBreakdown,
		Analysis:       r.Analysis,
		Files:          map[string]string{"original_path": filepath.Base(r.ImagePath)},
		Warnings:       r.Warnings,
	}
	if r.CostBreakdown != nil {
		resp.EstimatedCost = r.CostBreakdown.Total
	}
	if r.Dimensions != nil {
		resp.Dimensions = NewDimensionsView(r.Dimensions)
	}

	for key, name := range map[string]string{
		"edited_image":     r.Files.EditedImage,
		"comparison_image": r.Files.ComparisonImage,
		"floor_plan":       r.Files.FloorPlan,
		"visualization_3d": r.Files.Visualization3D,
	} {
		if name != "" {
			resp.Files[key] = DownloadPath + name
		}
	}
	return resp
}

// NewDimensionsView rounds dimensions for display: one decimal, whole square feet
func NewDimensionsView(d *model.RoomDimensions) *model.DimensionsView {
	return &model.DimensionsView{
		Length:     round(d.LengthM, 1),
		Width:      round(d.WidthM, 1),
		Height:     round(d.HeightM, 1),
		AreaSqm:    round(d.FloorAreaSqm(), 1),
		AreaSqft:   round(d.FloorAreaSqft(), 0),
		Confidence: d.Confidence,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// errorStatus maps pipeline errors to HTTP status codes
func errorStatus(err error) int {
	if service.IsExternalDependencyError(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// sendSSE sends a Server-Sent Event
func sendSSE(c *gin.Context, event string, data any) {
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"error\": \"JSON marshal failed\"}\n\n")
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(jsonData))
	} else {
		fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", event)
	}
}
