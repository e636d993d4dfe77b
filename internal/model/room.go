package model

// RoomType names a room category with its own furniture requirements
type RoomType string

const (
	RoomLivingRoom RoomType = "living_room"
	RoomBedroom    RoomType = "bedroom"
	RoomKitchen    RoomType = "kitchen"
	RoomDiningRoom RoomType = "dining_room"
	RoomBathroom   RoomType = "bathroom"
	RoomOffice     RoomType = "office"
)

// DefaultRoomType is used when classification finds no evidence
const DefaultRoomType = RoomLivingRoom

// StyleName names an interior style profile
type StyleName string

const (
	StyleModern       StyleName = "modern"
	StyleIndian       StyleName = "indian"
	StyleMinimalist   StyleName = "minimalist"
	StyleScandinavian StyleName = "scandinavian"
	StyleItalian      StyleName = "italian"
)

// DefaultStyle is used when no style keyword matches
const DefaultStyle = StyleModern

// Suggestions groups the engine's recommendations for a room
type Suggestions struct {
	MissingEssentials []string `json:"missing_essentials"`
	AddItems          []string `json:"add_items"`
	LayoutTips        []string `json:"layout_tips"`
}

// AnalysisResult is produced fresh for every analysis and never modified afterwards
type AnalysisResult struct {
	RoomType      RoomType    `json:"room_type"`
	CurrentStyle  StyleName   `json:"current_style"`
	DetectedCount int         `json:"detected_count"`
	Suggestions   Suggestions `json:"suggestions"`
}

const (
	metersToFeet     = 3.28084
	sqMetersToSqFeet = 10.7639
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// RoomDimensions is a best-effort room size estimate in meters
type RoomDimensions struct {
	LengthM    float64 `json:"length_m"`
	WidthM     float64 `json:"width_m"`
	HeightM    float64 `json:"height_m"`
	Confidence string  `json:"confidence"`
}

func (d *RoomDimensions) LengthFt() float64 { return d.LengthM * metersToFeet }
func (d *RoomDimensions) WidthFt() float64  { return d.WidthM * metersToFeet }
func (d *RoomDimensions) HeightFt() float64 { return d.HeightM * metersToFeet }

// FloorAreaSqm returns length x width
func (d *RoomDimensions) FloorAreaSqm() float64 { return d.LengthM * d.WidthM }

func (d *RoomDimensions) FloorAreaSqft() float64 { return d.FloorAreaSqm() * sqMetersToSqFeet }

// VolumeCum returns floor area x height in cubic meters
func (d *RoomDimensions) VolumeCum() float64 { return d.FloorAreaSqm() * d.HeightM }
