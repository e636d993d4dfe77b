package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"interioai/internal/config"
	"interioai/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	modelServerDependency = "model-server"
	detectConfidence      = 0.15
)

// ModelServerClient talks to the sidecar that hosts the detection, depth and
// diffusion models. It implements Detector, DimensionEstimator, Renderer and Visualizer.
type ModelServerClient struct {
	httpClient *resty.Client
	outputDir  string
	logger     *zap.Logger
}

type modelServerError struct {
	Error string `json:"error"`
}

type detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type detectResponse struct {
	Detections []detection `json:"detections"`
}

type dimensionsResponse struct {
	Dimensions *model.RoomDimensions `json:"dimensions"`
}

type renderResponse struct {
	Image      string `json:"image"`
	Comparison string `json:"comparison,omitempty"`
}

type visualizeRequest struct {
	RoomType       string                `json:"room_type"`
	CurrentItems   []string              `json:"current_items"`
	SuggestedItems []string              `json:"suggested_items"`
	Dimensions     *model.RoomDimensions `json:"dimensions,omitempty"`
}

type visualizeResponse struct {
	FloorPlan string `json:"floor_plan"`
	View3D    string `json:"view_3d"`
}

// NewModelServerClient creates a client for cfg.BaseURL that writes rendered files into outputDir
func NewModelServerClient(cfg config.ModelServerConfig, outputDir string, logger *zap.Logger) *ModelServerClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json")

	return &ModelServerClient{
		httpClient: client,
		outputDir:  outputDir,
		logger:     logger,
	}
}

var (
	_ Detector           = (*ModelServerClient)(nil)
	_ DimensionEstimator = (*ModelServerClient)(nil)
	_ Renderer           = (*ModelServerClient)(nil)
	_ Visualizer         = (*ModelServerClient)(nil)
)

// Detect uploads the photo and returns one label per detected object
func (c *ModelServerClient) Detect(ctx context.Context, imagePath string) ([]string, error) {
	var result detectResponse
	if err := c.postImage(ctx, "/detect", imagePath, map[string]string{
		"confidence": strconv.FormatFloat(detectConfidence, 'f', -1, 64),
	}, &result); err != nil {
		return nil, NewExternalDependencyError(modelServerDependency, "detect", err)
	}

	labels := make([]string, 0, len(result.Detections))
	for _, d := range result.Detections {
		if label := strings.TrimSpace(d.Label); label != "" {
			labels = append(labels, label)
		}
	}

	c.logger.Info("objects detected",
		zap.String("image", filepath.Base(imagePath)),
		zap.Int("count", len(labels)),
	)
	return labels, nil
}

// EstimateDimensions returns nil when the depth model could not produce an estimate
func (c *ModelServerClient) EstimateDimensions(ctx context.Context, imagePath string) (*model.RoomDimensions, error) {
	var result dimensionsResponse
	if err := c.postImage(ctx, "/dimensions", imagePath, nil, &result); err != nil {
		return nil, NewExternalDependencyError(modelServerDependency, "estimate dimensions", err)
	}
	return result.Dimensions, nil
}

// Render edits the photo and stores the edited image, and optionally a before/after
// comparison, in the output directory
func (c *ModelServerClient) Render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	var result renderResponse
	err := c.postImage(ctx, "/render", req.ImagePath, map[string]string{
		"prompt":          req.Prompt,
		"negative_prompt": req.NegativePrompt,
		"strength":        strconv.FormatFloat(req.Strength, 'f', 2, 64),
		"comparison":      strconv.FormatBool(req.CreateComparison),
	}, &result)
	if err != nil {
		return nil, NewExternalDependencyError(modelServerDependency, "render", err)
	}

	base := strings.TrimSuffix(filepath.Base(req.ImagePath), filepath.Ext(req.ImagePath))
	out := &RenderResult{}
	if out.EditedImage, err = c.saveImage(base+"_designed", result.Image); err != nil {
		return nil, NewExternalDependencyError("storage", "save render", err)
	}
	if req.CreateComparison && result.Comparison != "" {
		if out.ComparisonImage, err = c.saveImage(base+"_before_after", result.Comparison); err != nil {
			return nil, NewExternalDependencyError("storage", "save comparison", err)
		}
	}
	return out, nil
}

// Visualize draws a 2D floor plan and a 3D view of the suggested layout
func (c *ModelServerClient) Visualize(ctx context.Context, req VisualizeRequest) (*VisualizeResult, error) {
	body := visualizeRequest{
		RoomType:       string(req.RoomType),
		CurrentItems:   req.CurrentItems,
		SuggestedItems: req.SuggestedItems,
		Dimensions:     req.Dimensions,
	}

	var result visualizeResponse
	var apiErr modelServerError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post("/visualize")
	if err := checkResponse(resp, err, &apiErr); err != nil {
		return nil, NewExternalDependencyError(modelServerDependency, "visualize", err)
	}

	out := &VisualizeResult{}
	base := string(req.RoomType)
	if out.FloorPlan, err = c.saveImage(base+"_floor_plan", result.FloorPlan); err != nil {
		return nil, NewExternalDependencyError("storage", "save floor plan", err)
	}
	if out.Visualization3D, err = c.saveImage(base+"_3d", result.View3D); err != nil {
		return nil, NewExternalDependencyError("storage", "save 3d view", err)
	}
	return out, nil
}

func (c *ModelServerClient) postImage(ctx context.Context, path, imagePath string, form map[string]string, result any) error {
	var apiErr modelServerError
	req := c.httpClient.R().
		SetContext(ctx).
		SetFile("image", imagePath).
		SetResult(result).
		SetError(&apiErr)
	if len(form) > 0 {
		req.SetFormData(form)
	}

	resp, err := req.Post(path)
	return checkResponse(resp, err, &apiErr)
}

func checkResponse(resp *resty.Response, err error, apiErr *modelServerError) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		if apiErr.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode(), apiErr.Error)
		}
		return fmt.Errorf("status %d", resp.StatusCode())
	}
	return nil
}

// saveImage decodes a base64 PNG into the output directory and returns its file name.
// An empty payload saves nothing.
func (c *ModelServerClient) saveImage(prefix, payload string) (string, error) {
	if payload == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("invalid image payload: %w", err)
	}
	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.png", prefix, uuid.NewString()[:8])
	if err := os.WriteFile(filepath.Join(c.outputDir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}
