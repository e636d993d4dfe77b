package model

// SuggestionRequest asks the engine to analyze an already-detected item list
type SuggestionRequest struct {
	DetectedItems []string `json:"detected_items"`
	RoomType      string   `json:"room_type,omitempty"` // forces the room type when set
}

// EstimateRequest prices a list of items at one budget tier
type EstimateRequest struct {
	Items       []string `json:"items"`
	BudgetLevel string   `json:"budget_level,omitempty"`
}

// CompareRequest prices a list of items at every tier
type CompareRequest struct {
	Items []string `json:"items"`
}

// DimensionsView is the rounded dimension summary returned to the frontend
type DimensionsView struct {
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	AreaSqm    float64 `json:"area_sqm"`
	AreaSqft   float64 `json:"area_sqft"`
	Confidence string  `json:"confidence,omitempty"`
}

// AnalyzeResponse is the response body of POST /api/v1/analyze
type AnalyzeResponse struct {
	Success        bool              `json:"success"`
	RequestID      string            `json:"requestId"`
	Timestamp      string            `json:"timestamp"`
	RoomType       string            `json:"roomType"`
	Style          string            `json:"style"`
	Palette        string            `json:"palette"`
	DetectedItems  []string          `json:"detectedItems"`
	SuggestedItems []string          `json:"suggestedItems"`
	EstimatedCost  float64           `json:"estimatedCost"`
	CostBreakdown  *CostBreakdown    `json:"costBreakdown,omitempty"`
	Analysis       *AnalysisResult   `json:"analysis"`
	Dimensions     *DimensionsView   `json:"dimensions,omitempty"`
	Files          map[string]string `json:"files"`
	Warnings       []string          `json:"warnings,omitempty"`
}

// PriceView is one catalog row as exposed by the API
type PriceView struct {
	Name     string `json:"name"`
	Budget   int64  `json:"budget"`
	MidRange int64  `json:"mid_range"`
	Premium  int64  `json:"premium"`
}

// RoomRuleView is one room's furniture requirement as exposed by the API
type RoomRuleView struct {
	RoomType   RoomType `json:"room_type"`
	Essential  []string `json:"essential"`
	Common     []string `json:"common"`
	Luxury     []string `json:"luxury"`
	LayoutTips []string `json:"layout_tips"`
}

// StyleView is one style profile as exposed by the API
type StyleView struct {
	Name      StyleName `json:"name"`
	Keywords  []string  `json:"keywords"`
	Colors    []string  `json:"colors"`
	Materials []string  `json:"materials"`
}

// CatalogResponse is the response body of GET /api/v1/catalog
type CatalogResponse struct {
	Currency      string         `json:"currency"`
	MatchStrategy string         `json:"match_strategy"`
	Prices        []PriceView    `json:"prices"`
	Rooms         []RoomRuleView `json:"rooms"`
	Styles        []StyleView    `json:"styles"`
}
