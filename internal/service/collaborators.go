package service

import (
	"context"

	"interioai/internal/model"
)

// Detector finds furniture in a room photo. Labels may repeat, one per detected object.
type Detector interface {
	Detect(ctx context.Context, imagePath string) ([]string, error)
}

// DimensionEstimator estimates room size from a photo. A nil result with a nil
// error means no estimate could be made.
type DimensionEstimator interface {
	EstimateDimensions(ctx context.Context, imagePath string) (*model.RoomDimensions, error)
}

// RenderRequest asks for a furnished version of a room photo
type RenderRequest struct {
	ImagePath        string
	Prompt           string
	NegativePrompt   string
	Strength         float64
	CreateComparison bool
}

// RenderResult names the rendered files, relative to the output directory
type RenderResult struct {
	EditedImage     string
	ComparisonImage string
}

// Renderer produces photorealistic redesigns
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) (*RenderResult, error)
}

// VisualizeRequest asks for floor plan and 3D diagrams of a room
type VisualizeRequest struct {
	RoomType       model.RoomType
	CurrentItems   []string
	SuggestedItems []string
	Dimensions     *model.RoomDimensions
}

// VisualizeResult names the diagram files, relative to the output directory
type VisualizeResult struct {
	FloorPlan       string
	Visualization3D string
}

// Visualizer draws layout diagrams
type Visualizer interface {
	Visualize(ctx context.Context, req VisualizeRequest) (*VisualizeResult, error)
}
