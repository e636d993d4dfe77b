package model

// DesignRequest carries a stored room photo and the user's preferences through the pipeline
type DesignRequest struct {
	ImagePath          string
	RoomLabel          string // UI label such as "Living Hall"; empty means classify
	Style              string
	Palette            string
	FurniturePrefs     string
	BudgetLevel        BudgetTier
	EstimateDimensions bool
	GenerateDesigns    bool
	EditImage          bool
	CreateComparison   bool
}

// UserPreferences echoes what the user asked for
type UserPreferences struct {
	RoomType       string `json:"room_type,omitempty"`
	Style          string `json:"style,omitempty"`
	Palette        string `json:"palette,omitempty"`
	FurniturePrefs string `json:"furniture_prefs,omitempty"`
}

// DesignFiles holds paths of generated artifacts, relative to the output directory
type DesignFiles struct {
	EditedImage     string `json:"edited_image,omitempty"`
	ComparisonImage string `json:"comparison_image,omitempty"`
	FloorPlan       string `json:"floor_plan,omitempty"`
	Visualization3D string `json:"visualization_3d,omitempty"`
}

// DesignResult merges the outputs of every pipeline step
type DesignResult struct {
	RequestID      string          `json:"request_id"`
	ImagePath      string          `json:"image_path"`
	RoomType       string          `json:"room_type"` // user label when given, else the analyzed room type
	Style          string          `json:"style"`     // user style when given, else the inferred style
	DetectedItems  []string        `json:"detected_items"`
	Dimensions     *RoomDimensions `json:"dimensions,omitempty"`
	Analysis       *AnalysisResult `json:"analysis"`
	SuggestedItems []string        `json:"suggested_items"`
	CostBreakdown  *CostBreakdown  `json:"cost_breakdown,omitempty"`
	Files          DesignFiles     `json:"files"`
	Preferences    UserPreferences `json:"user_preferences"`
	Warnings       []string        `json:"warnings,omitempty"`
}
