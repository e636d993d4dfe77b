package service

import (
	"testing"

	"interioai/internal/catalog"
	"interioai/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine() *SuggestionEngine {
	return NewSuggestionEngine(catalog.DefaultRules(), zap.NewNop())
}

func TestSuggestionEngine_Analyze_EmptyForcedBedroom(t *testing.T) {
	e := newTestEngine()

	got := e.Analyze(nil, model.RoomBedroom)

	assert.Equal(t, model.RoomBedroom, got.RoomType)
	assert.Equal(t, 0, got.DetectedCount)
	assert.Equal(t, []string{"bed", "nightstand", "wardrobe"}, got.Suggestions.MissingEssentials)
	assert.Equal(t, []string{
		"bed", "nightstand", "wardrobe",
		"dresser", "bedside lamp", "rug",
		"vanity", "reading chair",
	}, got.Suggestions.AddItems)
	assert.Len(t, got.Suggestions.LayoutTips, 3)
}

func TestSuggestionEngine_Analyze_LivingRoomPartiallyFurnished(t *testing.T) {
	e := newTestEngine()

	got := e.Analyze([]string{"sofa", "tv stand"}, model.RoomLivingRoom)

	assert.Equal(t, []string{"coffee table"}, got.Suggestions.MissingEssentials)
	assert.NotContains(t, got.Suggestions.AddItems, "sofa")
	assert.NotContains(t, got.Suggestions.AddItems, "tv stand")
	assert.Equal(t, "coffee table", got.Suggestions.AddItems[0])
}

func TestSuggestionEngine_Analyze_BedDetectedInBedroom(t *testing.T) {
	e := newTestEngine()

	got := e.Analyze([]string{"bed"}, model.RoomBedroom)

	assert.Equal(t, []string{"nightstand", "wardrobe"}, got.Suggestions.MissingEssentials)
	// "bed" is contained in "bedside lamp", so the lamp counts as present
	assert.Equal(t, []string{
		"nightstand", "wardrobe",
		"dresser", "rug", "mirror",
		"vanity", "reading chair",
	}, got.Suggestions.AddItems)
}

func TestSuggestionEngine_Analyze_DefaultsWithoutEvidence(t *testing.T) {
	e := newTestEngine()

	got := e.Analyze([]string{}, "")
	assert.Equal(t, model.RoomLivingRoom, got.RoomType)
	assert.Equal(t, model.StyleModern, got.CurrentStyle)

	got = e.Analyze([]string{"lava lamp"}, "")
	assert.Equal(t, model.RoomLivingRoom, got.RoomType)
}

func TestSuggestionEngine_Analyze_UnknownForcedRoom(t *testing.T) {
	e := newTestEngine()

	got := e.Analyze([]string{"sofa"}, "garage")

	assert.Equal(t, model.RoomType("garage"), got.RoomType)
	assert.Empty(t, got.Suggestions.MissingEssentials)
	assert.NotNil(t, got.Suggestions.MissingEssentials)
	// living room rules stand in for the unknown room
	assert.Equal(t, []string{"coffee table", "tv stand", "armchair", "side table", "floor lamp", "ottoman", "console table"}, got.Suggestions.AddItems)
	assert.Equal(t, []string{"Ensure good traffic flow", "Balance furniture placement", "Use appropriate lighting"}, got.Suggestions.LayoutTips)
}

func TestSuggestionEngine_Analyze_BlankLabelSatisfiesEverything(t *testing.T) {
	e := newTestEngine()

	got := e.Analyze([]string{""}, model.RoomBedroom)

	assert.Equal(t, 1, got.DetectedCount)
	assert.Empty(t, got.Suggestions.MissingEssentials)
	assert.Empty(t, got.Suggestions.AddItems)
	assert.Len(t, got.Suggestions.LayoutTips, 3)
}

func TestSuggestionEngine_ClassifyRoom(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name     string
		detected []string
		want     model.RoomType
	}{
		{"bedroom", []string{"Bed", "nightstand"}, model.RoomBedroom},
		{"office beats single living item", []string{"desk", "office chair", "sofa"}, model.RoomOffice},
		{"dining", []string{"dining table", "dining chair"}, model.RoomDiningRoom},
		// sink scores for kitchen and bathroom; kitchen is scanned first
		{"tie goes to earlier indicator", []string{"sink"}, model.RoomKitchen},
		// one bedroom item and one living room item: bedroom is scanned first
		{"bedroom before living room on tie", []string{"sofa", "wardrobe"}, model.RoomBedroom},
		{"bathroom wins on count", []string{"sink", "toilet", "shower"}, model.RoomBathroom},
		{"nothing", nil, model.RoomLivingRoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ClassifyRoom(tt.detected))
		})
	}
}

func TestSuggestionEngine_ClassifyStyle(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, model.StyleModern, e.ClassifyStyle([]string{"sofa"}))
	assert.Equal(t, model.StyleIndian, e.ClassifyStyle([]string{"carved wooden chair", "traditional rug"}))
	assert.Equal(t, model.StyleItalian, e.ClassifyStyle([]string{"elegant lamp"}))
	// "simple" is a minimalist and scandinavian keyword; minimalist is declared first
	assert.Equal(t, model.StyleMinimalist, e.ClassifyStyle([]string{"simple shelf"}))
	// "minimalist" is also a modern keyword and modern is declared first
	assert.Equal(t, model.StyleModern, e.ClassifyStyle([]string{"minimalist desk"}))
}

func TestSuggestionEngine_SuggestAdditions_LengthInvariant(t *testing.T) {
	e := newTestEngine()
	rules := catalog.DefaultRules()

	inputs := [][]string{
		nil,
		{"sofa"},
		{"bed", "rug"},
		{"desk", "office chair", "bookshelf", "desk lamp"},
		{"vanity", "mirror", "towel rack"},
	}

	for _, rule := range rules.Rooms {
		for _, detected := range inputs {
			req := rule.Requirement
			want := len(absentItems(req.Essential, detected)) +
				min(3, len(absentItems(req.Common, detected))) +
				min(2, len(absentItems(req.Luxury, detected)))

			got := e.SuggestAdditions(detected, rule.Room)
			assert.Len(t, got, want, "room %s detected %v", rule.Room, detected)
		}
	}
}

func TestSuggestionEngine_Analyze_Idempotent(t *testing.T) {
	e := newTestEngine()
	detected := []string{"bed", "rug", "carved chest"}

	first := e.Analyze(detected, "")
	second := e.Analyze(detected, "")
	assert.Equal(t, first, second)
}

func TestSuggestionEngine_ResultsDoNotAliasRules(t *testing.T) {
	e := newTestEngine()

	got := e.Analyze(nil, model.RoomOffice)
	require.NotEmpty(t, got.Suggestions.AddItems)
	got.Suggestions.AddItems[0] = "hammock"
	got.Suggestions.LayoutTips[0] = "hang a hammock"
	got.Suggestions.MissingEssentials[0] = "hammock"

	again := e.Analyze(nil, model.RoomOffice)
	assert.Equal(t, "desk", again.Suggestions.AddItems[0])
	assert.Equal(t, "Position desk near natural light", again.Suggestions.LayoutTips[0])
	assert.Equal(t, "desk", again.Suggestions.MissingEssentials[0])
}

func TestSuggestionEngine_SubstitutedRules(t *testing.T) {
	rules := &catalog.Rules{
		Rooms: []catalog.RoomRule{{
			Room: model.RoomLivingRoom,
			Requirement: catalog.Requirement{
				Essential: []string{"hammock"},
				Common:    []string{"p", "q", "t", "u"},
				Luxury:    []string{"x", "y", "z"},
			},
			LayoutTips: []string{"one"},
		}},
		Indicators: []catalog.Indicator{{Room: "patio", Keywords: []string{"grill"}}},
	}
	e := NewSuggestionEngine(rules, nil)

	got := e.Analyze([]string{"gas grill"}, "")
	assert.Equal(t, model.RoomType("patio"), got.RoomType)
	assert.Equal(t, []string{"hammock", "p", "q", "t", "x", "y"}, got.Suggestions.AddItems)
	assert.Empty(t, got.Suggestions.LayoutTips)
}
