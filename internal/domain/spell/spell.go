package spell

// Property is a flag carried on a spell (components and casting traits)
type Property string

const (
	PropertyVocal         Property = "vocal"
	PropertySomatic       Property = "somatic"
	PropertyMaterial      Property = "material"
	PropertyRitual        Property = "ritual"
	PropertyConcentration Property = "concentration"
)

// Activation describes how a spell is cast
type Activation struct {
	Type  string `json:"type"`  // action, bonus, reaction, minute, hour...
	Value int    `json:"value"` // count of the activation type
}

// Range describes a spell's targeting range
type Range struct {
	Units string  `json:"units"` // self, touch, ft, mi, spec
	Value float64 `json:"value"`
}

// Materials describes material component requirements
type Materials struct {
	Value    string  `json:"value"`
	Consumed bool    `json:"consumed"`
	Cost     float64 `json:"cost"`
}

// DamagePart is a single damage roll with its possible damage types
type DamagePart struct {
	Formula string   `json:"formula"`
	Types   []string `json:"types"`
}

// Duration describes how long a spell effect lasts
type Duration struct {
	Units string  `json:"units"` // inst, minute, hour, day, perm, spec
	Value float64 `json:"value"`
}

// SpellReference points at a spell document by UUID
type SpellReference struct {
	UUID string `json:"uuid"`
}

// EffectReference points at an active effect carried on the parent item
type EffectReference struct {
	ID string `json:"_id"`
}

// Activity is one usage mode of a spell or item. Scroll items reference
// their embedded spell through either Spell.UUID or an effect origin.
type Activity struct {
	ID      string            `json:"_id"`
	Type    string            `json:"type"`
	Spell   *SpellReference   `json:"spell,omitempty"`
	Effects []EffectReference `json:"effects,omitempty"`
}

// Spell is the subset of the host's spell document the engine consumes.
// Spells are read-only to the engine; they are addressed by UUID.
type Spell struct {
	UUID        string              `json:"uuid"`
	Name        string              `json:"name"`
	Img         string              `json:"img"`
	Level       int                 `json:"level"` // 0..9, 0 is a cantrip
	School      string              `json:"school"`
	Activation  Activation          `json:"activation"`
	Range       Range               `json:"range"`
	Properties  []Property          `json:"properties"`
	Materials   Materials           `json:"materials"`
	Damage      []DamagePart        `json:"damage"`
	Duration    Duration            `json:"duration"`
	SaveAbility string              `json:"save_ability"`
	Source      string              `json:"source"`
	Activities  map[string]Activity `json:"activities"`
}

// IsCantrip reports whether the spell is level 0
func (s *Spell) IsCantrip() bool {
	return s.Level == 0
}

// HasProperty reports whether the spell carries the given flag
func (s *Spell) HasProperty(p Property) bool {
	for _, prop := range s.Properties {
		if prop == p {
			return true
		}
	}
	return false
}

// IsRitual reports whether the spell can be cast as a ritual
func (s *Spell) IsRitual() bool {
	return s.HasProperty(PropertyRitual)
}

// RequiresConcentration reports whether the spell requires concentration
func (s *Spell) RequiresConcentration() bool {
	return s.HasProperty(PropertyConcentration)
}

// DamageTypes returns the distinct damage types across all damage parts
func (s *Spell) DamageTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, part := range s.Damage {
		for _, t := range part.Types {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	return types
}

// Clone returns a structural copy of the spell
func (s *Spell) Clone() *Spell {
	if s == nil {
		return nil
	}
	clone := *s

	clone.Properties = append([]Property(nil), s.Properties...)

	clone.Damage = make([]DamagePart, len(s.Damage))
	for i, part := range s.Damage {
		clone.Damage[i] = DamagePart{
			Formula: part.Formula,
			Types:   append([]string(nil), part.Types...),
		}
	}

	if s.Activities != nil {
		clone.Activities = make(map[string]Activity, len(s.Activities))
		for id, act := range s.Activities {
			actCopy := act
			if act.Spell != nil {
				ref := *act.Spell
				actCopy.Spell = &ref
			}
			actCopy.Effects = append([]EffectReference(nil), act.Effects...)
			clone.Activities[id] = actCopy
		}
	}

	return &clone
}

// Enriched is a structural clone of a Spell plus a presentation handle.
// The icon link is produced by the UI collaborator; the engine treats an
// enriched spell exactly like its source spell.
type Enriched struct {
	Spell
	IconLink string `json:"icon_link"`
}

// Enrich clones the spell and attaches the given presentation handle
func Enrich(s *Spell, iconLink string) *Enriched {
	return &Enriched{
		Spell:    *s.Clone(),
		IconLink: iconLink,
	}
}
