package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForClass_NoOverrides(t *testing.T) {
	record := ForClass(nil, "wizard", nil)
	assert.Equal(t, Defaults(), record)
}

func TestForClass_UnknownClassFallsBack(t *testing.T) {
	overrides := map[string]Overrides{
		"cleric": {StartingSpells: intPtr(4)},
	}
	record := ForClass(nil, "wizard", overrides)
	assert.Equal(t, Defaults(), record)
}

func TestForClass_PartialOverride(t *testing.T) {
	swapping := SwappingLevelUp
	overrides := map[string]Overrides{
		"wizard": {
			StartingSpells:              intPtr(10),
			SpellLearningCostMultiplier: intPtr(25),
			CantripSwapping:             &swapping,
		},
	}

	record := ForClass(nil, "wizard", overrides)

	assert.Equal(t, 10, record.StartingSpells)
	assert.Equal(t, 25, record.SpellLearningCostMultiplier)
	assert.Equal(t, SwappingLevelUp, record.CantripSwapping)

	// Untouched fields keep their defaults
	assert.Equal(t, DefaultSpellsPerLevel, record.SpellsPerLevel)
	assert.Equal(t, DefaultSpellLearningTimeMultiplier, record.SpellLearningTimeMultiplier)
	assert.Equal(t, BehaviorEnforced, record.Behavior)
}

func TestForClass_ZeroValuedOverrideApplies(t *testing.T) {
	overrides := map[string]Overrides{
		"wizard": {SpellsPerLevel: intPtr(0)},
	}
	record := ForClass(nil, "wizard", overrides)
	assert.Equal(t, 0, record.SpellsPerLevel)
}

func TestMaxSpellLevel(t *testing.T) {
	tests := []struct {
		classLevel int
		want       int
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{10, 5},
		{17, 9},
		{20, 9},
		{25, 9},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxSpellLevel(tt.classLevel), "class level %d", tt.classLevel)
	}
}

func intPtr(v int) *int { return &v }
