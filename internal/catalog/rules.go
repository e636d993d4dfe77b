package catalog

import (
	"fmt"

	"interioai/internal/model"
	"interioai/internal/utils"
)

// Requirement lists a room's furniture in three priority buckets
type Requirement struct {
	Essential []string
	Common    []string
	Luxury    []string
}

// RoomRule ties a room type to its requirement and layout tips
type RoomRule struct {
	Room        model.RoomType
	Requirement Requirement
	LayoutTips  []string
}

// Indicator lists the keywords that point at a room type during classification
type Indicator struct {
	Room     model.RoomType
	Keywords []string
}

// StyleProfile describes an interior style. Only Keywords take part in inference.
type StyleProfile struct {
	Name      model.StyleName
	Keywords  []string
	Colors    []string
	Materials []string
}

// Rules is the read-only suggestion configuration. Order of Rooms, Indicators
// and Styles is significant: it breaks ties.
type Rules struct {
	Rooms       []RoomRule
	Indicators  []Indicator
	Styles      []StyleProfile
	GenericTips []string
}

// Room returns the rule for room, if any
func (r *Rules) Room(room model.RoomType) (RoomRule, bool) {
	for _, rule := range r.Rooms {
		if rule.Room == room {
			return rule, true
		}
	}
	return RoomRule{}, false
}

// Validate checks that no item appears in two buckets of the same room
// and that the default room type has a rule.
func (r *Rules) Validate() error {
	if _, ok := r.Room(model.DefaultRoomType); !ok {
		return fmt.Errorf("rules: no rule for default room type %q", model.DefaultRoomType)
	}
	for _, rule := range r.Rooms {
		seen := make(map[string]string)
		buckets := []struct {
			name  string
			items []string
		}{
			{"essential", rule.Requirement.Essential},
			{"common", rule.Requirement.Common},
			{"luxury", rule.Requirement.Luxury},
		}
		for _, b := range buckets {
			for _, item := range b.items {
				key := utils.NormalizeItem(item)
				if prev, dup := seen[key]; dup {
					return fmt.Errorf("rules: %s lists %q in both %s and %s", rule.Room, item, prev, b.name)
				}
				seen[key] = b.name
			}
		}
	}
	return nil
}

// DefaultRules returns the built-in room, indicator and style tables
func DefaultRules() *Rules {
	return &Rules{
		Rooms: []RoomRule{
			{
				Room: model.RoomLivingRoom,
				Requirement: Requirement{
					Essential: []string{"sofa", "coffee table", "tv stand"},
					Common:    []string{"armchair", "side table", "floor lamp", "rug", "bookshelf"},
					Luxury:    []string{"ottoman", "console table", "accent chair"},
				},
				LayoutTips: []string{
					"Arrange seating to encourage conversation",
					"Place TV at comfortable viewing distance",
					"Use area rug to define seating area",
				},
			},
			{
				Room: model.RoomBedroom,
				Requirement: Requirement{
					Essential: []string{"bed", "nightstand", "wardrobe"},
					Common:    []string{"dresser", "bedside lamp", "rug", "mirror"},
					Luxury:    []string{"vanity", "reading chair", "bench"},
				},
				LayoutTips: []string{
					"Position bed as focal point",
					"Ensure adequate lighting with bedside lamps",
					"Create symmetry with matching nightstands",
				},
			},
			{
				Room: model.RoomKitchen,
				Requirement: Requirement{
					Essential: []string{"dining table", "chairs"},
					Common:    []string{"bar stools", "pendant lights", "kitchen island"},
					Luxury:    []string{"wine rack", "bar cart"},
				},
				LayoutTips: []string{
					"Maintain work triangle between stove, sink, and fridge",
					"Ensure adequate counter space for prep work",
					"Add task lighting above work areas",
				},
			},
			{
				Room: model.RoomDiningRoom,
				Requirement: Requirement{
					Essential: []string{"dining table", "dining chairs"},
					Common:    []string{"sideboard", "pendant light", "centerpiece", "rug"},
					Luxury:    []string{"china cabinet", "bar cart", "wall art"},
				},
				LayoutTips: []string{
					"Center dining table in room",
					"Allow 36 inches clearance around table",
					"Hang pendant light 30-36 inches above table",
				},
			},
			{
				Room: model.RoomBathroom,
				Requirement: Requirement{
					Essential: []string{"vanity", "mirror"},
					Common:    []string{"storage cabinet", "towel rack", "bath mat"},
					Luxury:    []string{"decorative shelf", "plant stand"},
				},
				LayoutTips: []string{
					"Maximize storage with cabinets and shelves",
					"Ensure proper ventilation",
					"Use water-resistant materials",
				},
			},
			{
				Room: model.RoomOffice,
				Requirement: Requirement{
					Essential: []string{"desk", "office chair"},
					Common:    []string{"bookshelf", "desk lamp", "filing cabinet", "rug"},
					Luxury:    []string{"credenza", "reading chair", "wall shelves"},
				},
				LayoutTips: []string{
					"Position desk near natural light",
					"Ensure ergonomic chair placement",
					"Organize with adequate storage",
				},
			},
		},
		Indicators: []Indicator{
			{model.RoomBedroom, []string{"bed", "nightstand", "dresser", "wardrobe"}},
			{model.RoomLivingRoom, []string{"sofa", "tv stand", "coffee table", "armchair"}},
			{model.RoomKitchen, []string{"stove", "refrigerator", "sink", "kitchen island"}},
			{model.RoomDiningRoom, []string{"dining table", "dining chair", "sideboard"}},
			{model.RoomBathroom, []string{"toilet", "sink", "bathtub", "shower"}},
			{model.RoomOffice, []string{"desk", "office chair", "filing cabinet", "bookshelf"}},
		},
		Styles: []StyleProfile{
			{
				Name:      model.StyleModern,
				Keywords:  []string{"modern", "contemporary", "minimalist"},
				Colors:    []string{"gray", "white", "black", "navy"},
				Materials: []string{"glass", "metal", "leather"},
			},
			{
				Name:      model.StyleIndian,
				Keywords:  []string{"traditional", "ethnic", "carved", "ornate"},
				Colors:    []string{"red", "gold", "maroon", "orange"},
				Materials: []string{"wood", "brass", "silk"},
			},
			{
				Name:      model.StyleMinimalist,
				Keywords:  []string{"simple", "clean", "minimal", "functional"},
				Colors:    []string{"white", "beige", "gray"},
				Materials: []string{"wood", "concrete", "linen"},
			},
			{
				Name:      model.StyleScandinavian,
				Keywords:  []string{"light", "cozy", "natural", "simple"},
				Colors:    []string{"white", "light gray", "beige", "pastel"},
				Materials: []string{"light wood", "wool", "cotton"},
			},
			{
				Name:      model.StyleItalian,
				Keywords:  []string{"elegant", "sophisticated", "luxurious"},
				Colors:    []string{"cream", "gold", "burgundy"},
				Materials: []string{"marble", "velvet", "leather"},
			},
		},
		GenericTips: []string{
			"Ensure good traffic flow",
			"Balance furniture placement",
			"Use appropriate lighting",
		},
	}
}
