package service

import (
	"interioai/internal/catalog"
	"interioai/internal/model"
	"interioai/internal/utils"

	"go.uber.org/zap"
)

const (
	maxCommonSuggestions = 3
	maxLuxurySuggestions = 2
	maxLayoutTips        = 3
)

// SuggestionEngine classifies a room from detected furniture and recommends additions.
// It never fails: unknown rooms and empty inputs degrade to documented defaults.
type SuggestionEngine struct {
	rules  *catalog.Rules
	logger *zap.Logger
}

// NewSuggestionEngine creates an engine over rules
func NewSuggestionEngine(rules *catalog.Rules, logger *zap.Logger) *SuggestionEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionEngine{
		rules:  rules,
		logger: logger,
	}
}

// Rules returns the engine's rule tables
func (e *SuggestionEngine) Rules() *catalog.Rules {
	return e.rules
}

// Analyze builds a fresh AnalysisResult for detected. A non-empty forced room
// type is used verbatim and skips classification.
func (e *SuggestionEngine) Analyze(detected []string, forced model.RoomType) *model.AnalysisResult {
	roomType := forced
	if roomType == "" {
		roomType = e.ClassifyRoom(detected)
	}

	result := &model.AnalysisResult{
		RoomType:      roomType,
		CurrentStyle:  e.ClassifyStyle(detected),
		DetectedCount: len(detected),
		Suggestions: model.Suggestions{
			MissingEssentials: e.MissingEssentials(detected, roomType),
			AddItems:          e.SuggestAdditions(detected, roomType),
			LayoutTips:        e.LayoutTips(roomType),
		},
	}

	e.logger.Debug("room analyzed",
		zap.String("room_type", string(result.RoomType)),
		zap.Bool("forced", forced != ""),
		zap.String("style", string(result.CurrentStyle)),
		zap.Int("detected", result.DetectedCount),
		zap.Int("suggested", len(result.Suggestions.AddItems)),
	)
	return result
}

// ClassifyRoom scores each room type by how many detected items contain one of
// its indicator keywords. The highest score wins, ties go to the earlier
// indicator, and no evidence at all gives living_room.
func (e *SuggestionEngine) ClassifyRoom(detected []string) model.RoomType {
	best := model.DefaultRoomType
	bestScore := 0
	for _, ind := range e.rules.Indicators {
		score := keywordScore(detected, ind.Keywords)
		if score > bestScore {
			best, bestScore = ind.Room, score
		}
	}
	return best
}

// ClassifyStyle scores style profiles the same way as ClassifyRoom and defaults to modern
func (e *SuggestionEngine) ClassifyStyle(detected []string) model.StyleName {
	best := model.DefaultStyle
	bestScore := 0
	for _, style := range e.rules.Styles {
		score := keywordScore(detected, style.Keywords)
		if score > bestScore {
			best, bestScore = style.Name, score
		}
	}
	return best
}

func keywordScore(detected, keywords []string) int {
	score := 0
	for _, item := range detected {
		if utils.ContainsAnyKeyword(item, keywords) {
			score++
		}
	}
	return score
}

// MissingEssentials returns the room's essential items that no detected item
// matches, in rule order. Rooms without rules have no essentials.
func (e *SuggestionEngine) MissingEssentials(detected []string, room model.RoomType) []string {
	missing := []string{}
	rule, ok := e.rules.Room(room)
	if !ok {
		return missing
	}
	for _, essential := range rule.Requirement.Essential {
		if !utils.MatchesAnyItem(essential, detected) {
			missing = append(missing, essential)
		}
	}
	return missing
}

// SuggestAdditions returns every missing essential, then at most three missing
// common items, then at most two missing luxury items. Rooms without rules use
// the living room rule.
func (e *SuggestionEngine) SuggestAdditions(detected []string, room model.RoomType) []string {
	rule, ok := e.rules.Room(room)
	if !ok {
		rule, _ = e.rules.Room(model.DefaultRoomType)
	}
	req := rule.Requirement

	essential := absentItems(req.Essential, detected)
	common := absentItems(req.Common, detected)
	luxury := absentItems(req.Luxury, detected)

	out := make([]string, 0, len(essential)+maxCommonSuggestions+maxLuxurySuggestions)
	out = append(out, essential...)
	out = append(out, common[:min(maxCommonSuggestions, len(common))]...)
	return append(out, luxury[:min(maxLuxurySuggestions, len(luxury))]...)
}

func absentItems(items, detected []string) []string {
	var out []string
	for _, item := range items {
		if !utils.MatchesAnyItem(item, detected) {
			out = append(out, item)
		}
	}
	return out
}

// LayoutTips returns up to three tips for the room, or generic tips for unknown rooms
func (e *SuggestionEngine) LayoutTips(room model.RoomType) []string {
	tips := e.rules.GenericTips
	if rule, ok := e.rules.Room(room); ok {
		tips = rule.LayoutTips
	}
	tips = tips[:min(maxLayoutTips, len(tips))]

	out := make([]string, len(tips))
	copy(out, tips)
	return out
}

// StarterSet returns the fixed set used to furnish an empty room of the given
// room label and style
func (e *SuggestionEngine) StarterSet(room, style string) []string {
	return catalog.StarterSet(room, style)
}
