// Package rules resolves the effective rule record for an actor's class.
// Resolution is pure: inputs are the actor, the class ID, and any
// configured overrides; missing values fall back to module defaults.
package rules

import "github.com/Sayshal/spell-book/internal/domain/actor"

// Swapping enumerates when cantrips may be swapped
type Swapping string

const (
	SwappingNone     Swapping = "none"
	SwappingLevelUp  Swapping = "levelUp"
	SwappingLongRest Swapping = "longRest"
)

// Behavior enumerates how rule violations are handled
type Behavior string

const (
	// BehaviorEnforced blocks actions that violate the rules
	BehaviorEnforced Behavior = "enforced"

	// BehaviorAdvisory surfaces violations but allows the action
	BehaviorAdvisory Behavior = "advisory"
)

// Module-wide defaults applied when a class has no override
const (
	DefaultStartingSpells              = 6
	DefaultSpellsPerLevel              = 2
	DefaultSpellLearningCostMultiplier = 50  // base currency per spell level
	DefaultSpellLearningTimeMultiplier = 120 // minutes per spell level
)

// Record is the effective rule set for one (actor, class) pair
type Record struct {
	SpellPreparationBonus       int
	StartingSpells              int
	SpellsPerLevel              int
	SpellLearningCostMultiplier int
	SpellLearningTimeMultiplier int // minutes
	CantripSwapping             Swapping
	Behavior                    Behavior
}

// Overrides carries per-class rule configuration. Nil fields fall back
// to the defaults.
type Overrides struct {
	SpellPreparationBonus       *int      `json:"spell_preparation_bonus,omitempty"`
	StartingSpells              *int      `json:"starting_spells,omitempty"`
	SpellsPerLevel              *int      `json:"spells_per_level,omitempty"`
	SpellLearningCostMultiplier *int      `json:"spell_learning_cost_multiplier,omitempty"`
	SpellLearningTimeMultiplier *int      `json:"spell_learning_time_multiplier,omitempty"`
	CantripSwapping             *Swapping `json:"cantrip_swapping,omitempty"`
	Behavior                    *Behavior `json:"behavior,omitempty"`
}

// Defaults returns the module-wide default record
func Defaults() Record {
	return Record{
		SpellPreparationBonus:       0,
		StartingSpells:              DefaultStartingSpells,
		SpellsPerLevel:              DefaultSpellsPerLevel,
		SpellLearningCostMultiplier: DefaultSpellLearningCostMultiplier,
		SpellLearningTimeMultiplier: DefaultSpellLearningTimeMultiplier,
		CantripSwapping:             SwappingNone,
		Behavior:                    BehaviorEnforced,
	}
}

// ForClass returns the effective rule record for the actor's class. The
// actor parameter keys future per-actor dimensions; today only the class
// overrides and defaults participate. No side effects.
func ForClass(_ *actor.Actor, classID string, overrides map[string]Overrides) Record {
	record := Defaults()

	override, ok := overrides[classID]
	if !ok {
		return record
	}

	if override.SpellPreparationBonus != nil {
		record.SpellPreparationBonus = *override.SpellPreparationBonus
	}
	if override.StartingSpells != nil {
		record.StartingSpells = *override.StartingSpells
	}
	if override.SpellsPerLevel != nil {
		record.SpellsPerLevel = *override.SpellsPerLevel
	}
	if override.SpellLearningCostMultiplier != nil {
		record.SpellLearningCostMultiplier = *override.SpellLearningCostMultiplier
	}
	if override.SpellLearningTimeMultiplier != nil {
		record.SpellLearningTimeMultiplier = *override.SpellLearningTimeMultiplier
	}
	if override.CantripSwapping != nil {
		record.CantripSwapping = *override.CantripSwapping
	}
	if override.Behavior != nil {
		record.Behavior = *override.Behavior
	}

	return record
}

// MaxSpellLevel returns the highest spell level a prepared full caster
// of the given class level can learn. Cantrips are exempt from this cap.
func MaxSpellLevel(classLevel int) int {
	if classLevel < 1 {
		return 0
	}
	level := (classLevel + 1) / 2
	if level > 9 {
		level = 9
	}
	return level
}
