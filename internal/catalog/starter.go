package catalog

import (
	"strings"

	"interioai/internal/model"
	"interioai/internal/utils"
)

// maxStarterItems caps every starter set
const maxStarterItems = 6

var starterSets = map[string][]string{
	"bedroom":     {"bed", "nightstand", "dresser", "wardrobe", "reading lamp", "rug"},
	"kitchen":     {"dining table", "chairs", "bar stools", "pendant lights", "kitchen island"},
	"living_room": {"sofa", "coffee table", "armchair", "TV stand", "side table", "floor lamp"},
	"living_hall": {"sofa", "coffee table", "armchair", "TV stand", "side table", "floor lamp"},
	"bathroom":    {"vanity", "mirror", "storage cabinet", "towel rack", "bath mat"},
	"pooja_room":  {"puja shelf", "deity idols", "diya stand", "prayer mat", "incense holder"},
	"dining_room": {"dining table", "dining chairs", "sideboard", "pendant light", "centerpiece"},
	"office":      {"desk", "office chair", "bookshelf", "desk lamp", "filing cabinet"},
	"study_room":  {"study desk", "chair", "bookshelf", "desk lamp", "storage cabinet"},
}

var indianPoojaSet = []string{"wooden puja mandir", "brass diya", "prayer bells", "incense stand", "deity idols", "prayer mat"}

var indianAccents = []string{"traditional rug", "ethnic wall art"}

// StarterSet returns the fixed furniture set used to furnish an empty room.
// room may be a room type or a UI label ("Pooja Room"); unknown rooms get the
// living room set. The indian style swaps in traditional pieces.
func StarterSet(room, style string) []string {
	key := StarterKey(room)
	base, ok := starterSets[key]
	if !ok {
		base = starterSets[string(model.RoomLivingRoom)]
	}

	var out []string
	if model.StyleName(utils.NormalizeItem(style)) == model.StyleIndian {
		if strings.Contains(key, "pooja") {
			out = append(out, indianPoojaSet...)
		} else {
			out = append(out, base[:min(4, len(base))]...)
			out = append(out, indianAccents...)
		}
	} else {
		out = append(out, base...)
	}

	if len(out) > maxStarterItems {
		out = out[:maxStarterItems]
	}
	return out
}

// StarterKey turns a room type or UI label into a starter-set key: "Living Hall" -> "living_hall"
func StarterKey(room string) string {
	return strings.Join(strings.Fields(utils.NormalizeItem(room)), "_")
}
