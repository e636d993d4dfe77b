package service

import (
	"strings"
)

const maxPromptItems = 5

// NegativePrompt lists what renders must avoid, above all an empty room
const NegativePrompt = "empty room, bare room, vacant room, no furniture, unfurnished, " +
	"bare walls, empty space, construction, unfinished, " +
	"blurry, distorted, low quality, " +
	"dark, poorly lit, " +
	"cartoon, sketch, drawing, unrealistic, " +
	"people, humans, faces, " +
	"text, watermark, logo, " +
	"broken furniture, floating objects, " +
	"cluttered, messy, damaged"

var qualityKeywords = []string{
	"professional interior design",
	"high-end furniture",
	"well-furnished room",
	"photorealistic",
	"natural lighting",
	"sharp focus",
	"architectural photography",
}

// PromptInput describes the room a render should show
type PromptInput struct {
	RoomType       string
	Style          string
	Palette        string
	SuggestedItems []string
	IsEmpty        bool
}

// BuildRenderPrompt composes the positive diffusion prompt. Empty rooms and rooms
// with suggestions get a strong furniture emphasis naming up to five items.
func BuildRenderPrompt(in PromptInput) string {
	room := strings.ReplaceAll(in.RoomType, "_", " ")
	if room == "" {
		room = "room"
	}
	style := in.Style
	if style == "" {
		style = "modern"
	}

	var parts []string
	if in.IsEmpty || len(in.SuggestedItems) > 0 {
		items := "furniture"
		if len(in.SuggestedItems) > 0 {
			items = strings.Join(in.SuggestedItems[:min(maxPromptItems, len(in.SuggestedItems))], ", ")
		}
		parts = append(parts,
			"beautifully furnished "+style+" "+room+" interior",
			"with "+items,
			"fully furnished and decorated",
			"complete furniture arrangement",
			"elegant furniture pieces",
		)
	} else {
		parts = append(parts, "furnished "+style+" "+room+" interior")
	}

	if in.Palette != "" {
		parts = append(parts, in.Palette+" color scheme")
	}
	parts = append(parts, qualityKeywords...)
	return strings.Join(parts, ", ")
}
