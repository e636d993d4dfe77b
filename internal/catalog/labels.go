package catalog

import "interioai/internal/model"

var roomLabels = map[string]model.RoomType{
	"living_hall": model.RoomLivingRoom,
	"living_room": model.RoomLivingRoom,
	"bedroom":     model.RoomBedroom,
	"kitchen":     model.RoomKitchen,
	"bathroom":    model.RoomBathroom,
	"pooja_room":  model.RoomLivingRoom,
	"dining_room": model.RoomDiningRoom,
	"office":      model.RoomOffice,
	"study_room":  model.RoomOffice,
}

// ResolveRoomLabel maps a UI room label ("Living Hall", "Study Room") or a
// room type key to the room type whose rules apply. Unknown labels map to living_room.
func ResolveRoomLabel(label string) model.RoomType {
	if rt, ok := LookupRoomLabel(label); ok {
		return rt
	}
	return model.DefaultRoomType
}

// LookupRoomLabel is ResolveRoomLabel without the fallback
func LookupRoomLabel(label string) (model.RoomType, bool) {
	rt, ok := roomLabels[StarterKey(label)]
	return rt, ok
}

const (
	defaultEditStrength = 0.75
	// EmptyRoomEditStrength is used when nothing was detected in the photo
	EmptyRoomEditStrength = 0.80
)

var editStrengths = map[string]float64{
	"bedroom":     0.75,
	"kitchen":     0.70,
	"living_hall": 0.80,
	"living_room": 0.80,
	"bathroom":    0.65,
	"pooja_room":  0.75,
	"dining_room": 0.75,
	"office":      0.75,
	"study_room":  0.75,
}

// EditStrength returns how strongly the renderer may alter a photo of the given room
func EditStrength(label string) float64 {
	if s, ok := editStrengths[StarterKey(label)]; ok {
		return s
	}
	return defaultEditStrength
}
