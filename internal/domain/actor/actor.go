package actor

import "encoding/json"

// OwnershipLevel mirrors the host's document permission levels
type OwnershipLevel int

const (
	OwnershipNone     OwnershipLevel = 0
	OwnershipLimited  OwnershipLevel = 1
	OwnershipObserver OwnershipLevel = 2
	OwnershipOwner    OwnershipLevel = 3
)

// SpellcastingClass is one class entry on an actor's spellcasting map
type SpellcastingClass struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Img           string `json:"img"`
	Identifier    string `json:"identifier"` // stable class key, e.g. "wizard"
	Level         int    `json:"level"`
	WizardEnabled bool   `json:"wizard_enabled"` // class keeps a durable spellbook

	// KnownSpells lists the spell UUIDs on the class's spell list that
	// the actor knows
	KnownSpells []string `json:"known_spells"`
}

// ItemEffect is an active effect embedded on an inventory item. Scroll
// effects carry the originating spell UUID in Origin.
type ItemEffect struct {
	ID     string `json:"_id"`
	Origin string `json:"origin"`
}

// Actor is the subset of the host's actor document the engine consumes
type Actor struct {
	ID        string                        `json:"id"`
	Name      string                        `json:"name"`
	Img       string                        `json:"img"`
	Ownership map[string]OwnershipLevel     `json:"ownership"` // userID -> level
	Currency  map[string]int                `json:"currency"`  // denomination -> amount
	Classes   map[string]*SpellcastingClass `json:"classes"`   // classID -> class
	Inventory []*Item                       `json:"inventory"`
	Flags     map[string]json.RawMessage    `json:"flags"`
}

// HasObserver reports whether the given user has at least observer
// permission on the actor. The host's "default" ownership entry applies
// to users with no explicit level.
func (a *Actor) HasObserver(userID string) bool {
	if level, ok := a.Ownership[userID]; ok {
		return level >= OwnershipObserver
	}
	return a.Ownership["default"] >= OwnershipObserver
}

// OwnerUserIDs returns the users with owner-level permission, excluding
// the host's "default" pseudo-user.
func (a *Actor) OwnerUserIDs() []string {
	var owners []string
	for userID, level := range a.Ownership {
		if userID == "default" {
			continue
		}
		if level >= OwnershipOwner {
			owners = append(owners, userID)
		}
	}
	return owners
}

// Class returns the spellcasting class with the given ID, or nil
func (a *Actor) Class(classID string) *SpellcastingClass {
	if a.Classes == nil {
		return nil
	}
	return a.Classes[classID]
}

// IsSpellcaster reports whether the actor has any spellcasting class
func (a *Actor) IsSpellcaster() bool {
	return len(a.Classes) > 0
}

// WizardEnabledClasses returns the classes that keep a durable spellbook
func (a *Actor) WizardEnabledClasses() []*SpellcastingClass {
	var classes []*SpellcastingClass
	for _, class := range a.Classes {
		if class.WizardEnabled {
			classes = append(classes, class)
		}
	}
	return classes
}

// GetFlag unmarshals the flag stored under key into out. It returns
// false when the flag is absent.
func (a *Actor) GetFlag(key string, out any) (bool, error) {
	raw, ok := a.Flags[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetFlag marshals value and stores it under key
func (a *Actor) SetFlag(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if a.Flags == nil {
		a.Flags = make(map[string]json.RawMessage)
	}
	a.Flags[key] = raw
	return nil
}
