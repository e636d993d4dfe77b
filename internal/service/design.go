package service

import (
	"context"
	"time"

	"interioai/internal/catalog"
	"interioai/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Progress events emitted by AnalyzeStream
const (
	EventDetecting  = "detecting"
	EventDetected   = "detected"
	EventDimensions = "dimensions"
	EventAnalysis   = "analysis"
	EventRendering  = "rendering"
	EventCost       = "cost"
)

const maxRenderItems = 6

// DesignEventCallback is called for streaming pipeline events
type DesignEventCallback func(event string, data any) error

// DesignService runs the room design pipeline: detection, dimension estimation,
// suggestions, optional renders and cost. Only detection failures are fatal.
type DesignService struct {
	engine        *SuggestionEngine
	estimator     *CostEstimator
	detector      Detector
	dimensions    DimensionEstimator
	renderer      Renderer
	visualizer    Visualizer
	conversion    CurrencyConversion
	detectTimeout time.Duration
	logger        *zap.Logger
}

// DesignOption configures a DesignService
type DesignOption func(*DesignService)

func WithDimensionEstimator(d DimensionEstimator) DesignOption {
	return func(s *DesignService) { s.dimensions = d }
}

func WithRenderer(r Renderer) DesignOption {
	return func(s *DesignService) { s.renderer = r }
}

func WithVisualizer(v Visualizer) DesignOption {
	return func(s *DesignService) { s.visualizer = v }
}

// WithCurrencyConversion converts every cost breakdown before it is returned
func WithCurrencyConversion(c CurrencyConversion) DesignOption {
	return func(s *DesignService) { s.conversion = c }
}

// WithDetectTimeout bounds the detection step; zero means no extra bound
func WithDetectTimeout(d time.Duration) DesignOption {
	return func(s *DesignService) { s.detectTimeout = d }
}

// NewDesignService creates a pipeline around the core engine and estimator
func NewDesignService(
	engine *SuggestionEngine,
	estimator *CostEstimator,
	detector Detector,
	logger *zap.Logger,
	opts ...DesignOption,
) *DesignService {
	s := &DesignService{
		engine:    engine,
		estimator: estimator,
		detector:  detector,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the whole pipeline for one stored photo
func (s *DesignService) Analyze(ctx context.Context, req *model.DesignRequest) (*model.DesignResult, error) {
	return s.run(ctx, req, func(string, any) error { return nil })
}

// AnalyzeStream runs the pipeline and reports each step through callback.
// A callback error aborts the run.
func (s *DesignService) AnalyzeStream(ctx context.Context, req *model.DesignRequest, callback DesignEventCallback) (*model.DesignResult, error) {
	return s.run(ctx, req, callback)
}

func (s *DesignService) run(ctx context.Context, req *model.DesignRequest, emit DesignEventCallback) (*model.DesignResult, error) {
	startTime := time.Now()
	result := &model.DesignResult{
		RequestID: uuid.NewString(),
		ImagePath: req.ImagePath,
		Preferences: model.UserPreferences{
			RoomType:       req.RoomLabel,
			Style:          req.Style,
			Palette:        req.Palette,
			FurniturePrefs: req.FurniturePrefs,
		},
	}
	log := s.logger.With(zap.String("request_id", result.RequestID))

	// Step 1: detection and dimensions run side by side
	if err := emit(EventDetecting, map[string]any{"status": "Detecting furniture..."}); err != nil {
		return nil, err
	}
	detected, dims, dimsWarning, err := s.detectAndMeasure(ctx, req)
	if err != nil {
		log.Error("detection failed", zap.Error(err))
		return nil, err
	}
	result.DetectedItems = detected
	result.Dimensions = dims
	if dimsWarning != "" {
		log.Warn("dimension estimation failed", zap.String("error", dimsWarning))
		result.Warnings = append(result.Warnings, dimsWarning)
	}
	log.Info("detection complete", zap.Int("detected", len(detected)), zap.Bool("dimensions", dims != nil))

	if err := emit(EventDetected, map[string]any{"items": detected, "count": len(detected)}); err != nil {
		return nil, err
	}
	if dims != nil {
		if err := emit(EventDimensions, dims); err != nil {
			return nil, err
		}
	}

	// Step 2: suggestions
	var forced model.RoomType
	if req.RoomLabel != "" {
		forced = catalog.ResolveRoomLabel(req.RoomLabel)
	}
	analysis := s.engine.Analyze(detected, forced)
	result.Analysis = analysis

	result.RoomType = req.RoomLabel
	if result.RoomType == "" {
		result.RoomType = string(analysis.RoomType)
	}
	result.Style = req.Style
	if result.Style == "" {
		result.Style = string(analysis.CurrentStyle)
	}

	// Step 3: empty rooms and rooms with nothing left to add get a starter set
	suggested := analysis.Suggestions.AddItems
	if len(suggested) == 0 || len(detected) == 0 {
		suggested = s.engine.StarterSet(result.RoomType, result.Style)
		log.Info("using starter set", zap.String("room", result.RoomType), zap.String("style", result.Style))
	}
	result.SuggestedItems = suggested

	if err := emit(EventAnalysis, map[string]any{
		"room_type":       result.RoomType,
		"style":           result.Style,
		"analysis":        analysis,
		"suggested_items": suggested,
	}); err != nil {
		return nil, err
	}

	// Steps 4 and 5: diagrams and render, both best effort
	if (req.GenerateDesigns && s.visualizer != nil) || (req.EditImage && s.renderer != nil && len(suggested) > 0) {
		if err := emit(EventRendering, map[string]any{"status": "Generating designs..."}); err != nil {
			return nil, err
		}
	}
	if req.GenerateDesigns && s.visualizer != nil {
		vis, err := s.visualizer.Visualize(ctx, VisualizeRequest{
			RoomType:       analysis.RoomType,
			CurrentItems:   detected,
			SuggestedItems: suggested,
			Dimensions:     dims,
		})
		if err != nil {
			log.Warn("design generation failed", zap.Error(err))
			result.Warnings = append(result.Warnings, "design generation failed: "+err.Error())
		} else {
			result.Files.FloorPlan = vis.FloorPlan
			result.Files.Visualization3D = vis.Visualization3D
		}
	}
	if req.EditImage && s.renderer != nil && len(suggested) > 0 {
		s.render(ctx, req, result, log)
	}

	// Step 6: cost of the suggested items
	if len(suggested) > 0 {
		breakdown := s.estimator.Estimate(suggested, req.BudgetLevel)
		result.CostBreakdown = s.conversion.Apply(breakdown)
		if err := emit(EventCost, result.CostBreakdown); err != nil {
			return nil, err
		}
	}

	log.Info("design analysis complete",
		zap.String("room_type", result.RoomType),
		zap.Int("suggested", len(suggested)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("took", time.Since(startTime)),
	)
	return result, nil
}

// detectAndMeasure runs detection and dimension estimation concurrently.
// A dimension failure is returned as a warning, never as an error.
func (s *DesignService) detectAndMeasure(ctx context.Context, req *model.DesignRequest) ([]string, *model.RoomDimensions, string, error) {
	g, gctx := errgroup.WithContext(ctx)

	var detected []string
	g.Go(func() error {
		dctx := gctx
		if s.detectTimeout > 0 {
			var cancel context.CancelFunc
			dctx, cancel = context.WithTimeout(gctx, s.detectTimeout)
			defer cancel()
		}
		items, err := s.detector.Detect(dctx, req.ImagePath)
		if err != nil {
			return NewExternalDependencyError("detector", "detect", err)
		}
		detected = items
		return nil
	})

	var dims *model.RoomDimensions
	var warning string
	if req.EstimateDimensions && s.dimensions != nil {
		g.Go(func() error {
			d, err := s.dimensions.EstimateDimensions(gctx, req.ImagePath)
			if err != nil {
				warning = "dimension estimation failed: " + err.Error()
				return nil
			}
			dims = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, "", err
	}
	if detected == nil {
		detected = []string{}
	}
	return detected, dims, warning, nil
}

func (s *DesignService) render(ctx context.Context, req *model.DesignRequest, result *model.DesignResult, log *zap.Logger) {
	isEmpty := len(result.DetectedItems) == 0
	strength := catalog.EditStrength(result.RoomType)
	if isEmpty {
		strength = catalog.EmptyRoomEditStrength
	}

	suggested := result.SuggestedItems
	prompt := BuildRenderPrompt(PromptInput{
		RoomType:       result.RoomType,
		Style:          result.Style,
		Palette:        req.Palette,
		SuggestedItems: suggested[:min(maxRenderItems, len(suggested))],
		IsEmpty:        isEmpty,
	})

	rendered, err := s.renderer.Render(ctx, RenderRequest{
		ImagePath:        req.ImagePath,
		Prompt:           prompt,
		NegativePrompt:   NegativePrompt,
		Strength:         strength,
		CreateComparison: req.CreateComparison,
	})
	if err != nil {
		log.Warn("image editing failed", zap.Error(err))
		result.Warnings = append(result.Warnings, "image editing failed: "+err.Error())
		return
	}
	result.Files.EditedImage = rendered.EditedImage
	result.Files.ComparisonImage = rendered.ComparisonImage
}
