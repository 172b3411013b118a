package actor

import "github.com/Sayshal/spell-book/internal/domain/spell"

// Item types and subtypes the engine recognizes
const (
	ItemTypeConsumable = "consumable"
	ConsumableScroll   = "scroll"
)

// Item is an inventory item on an actor. Only the fields the scroll
// pipeline walks are modeled.
type Item struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	Img        string                    `json:"img"`
	Type       string                    `json:"type"`
	Subtype    string                    `json:"subtype"` // consumable kind
	Activities map[string]spell.Activity `json:"activities"`
	Effects    []ItemEffect              `json:"effects"`
}

// IsScroll reports whether the item is a spell scroll consumable
func (i *Item) IsScroll() bool {
	return i.Type == ItemTypeConsumable && i.Subtype == ConsumableScroll
}

// EffectByID returns the embedded effect with the given ID, or nil
func (i *Item) EffectByID(id string) *ItemEffect {
	for idx := range i.Effects {
		if i.Effects[idx].ID == id {
			return &i.Effects[idx]
		}
	}
	return nil
}

// Item returns the inventory item with the given ID, or nil
func (a *Actor) Item(itemID string) *Item {
	for _, item := range a.Inventory {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// Scrolls returns the actor's scroll consumables in inventory order
func (a *Actor) Scrolls() []*Item {
	var scrolls []*Item
	for _, item := range a.Inventory {
		if item.IsScroll() {
			scrolls = append(scrolls, item)
		}
	}
	return scrolls
}
