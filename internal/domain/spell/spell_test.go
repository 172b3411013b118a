package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpell_Properties(t *testing.T) {
	sp := &Spell{
		Level:      0,
		Properties: []Property{PropertyVocal, PropertyRitual},
	}

	assert.True(t, sp.IsCantrip())
	assert.True(t, sp.IsRitual())
	assert.True(t, sp.HasProperty(PropertyVocal))
	assert.False(t, sp.RequiresConcentration())
	assert.False(t, sp.HasProperty(PropertyMaterial))
}

func TestSpell_DamageTypes_Distinct(t *testing.T) {
	sp := &Spell{
		Damage: []DamagePart{
			{Formula: "2d6", Types: []string{"fire", "radiant"}},
			{Formula: "1d8", Types: []string{"fire"}},
		},
	}

	assert.Equal(t, []string{"fire", "radiant"}, sp.DamageTypes())
}

func TestSpell_Clone_Independent(t *testing.T) {
	sp := &Spell{
		UUID:       "uuid-1",
		Name:       "Fireball",
		Level:      3,
		Properties: []Property{PropertyVocal, PropertySomatic},
		Damage:     []DamagePart{{Formula: "8d6", Types: []string{"fire"}}},
		Activities: map[string]Activity{
			"a1": {ID: "a1", Spell: &SpellReference{UUID: "uuid-1"}},
		},
	}

	clone := sp.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, sp, clone)

	clone.Properties[0] = PropertyRitual
	clone.Damage[0].Types[0] = "cold"
	clone.Activities["a1"].Spell.UUID = "other"

	assert.Equal(t, PropertyVocal, sp.Properties[0])
	assert.Equal(t, "fire", sp.Damage[0].Types[0])
	assert.Equal(t, "uuid-1", sp.Activities["a1"].Spell.UUID)
}

func TestSpell_Clone_Nil(t *testing.T) {
	var sp *Spell
	assert.Nil(t, sp.Clone())
}

func TestEnrich(t *testing.T) {
	sp := &Spell{UUID: "uuid-1", Name: "Shield", Level: 1}

	enriched := Enrich(sp, "@UUID[uuid-1]{Shield}")

	assert.Equal(t, "Shield", enriched.Name)
	assert.Equal(t, "@UUID[uuid-1]{Shield}", enriched.IconLink)

	// The enriched spell is a clone, not an alias
	enriched.Name = "Renamed"
	assert.Equal(t, "Shield", sp.Name)
}

func TestListDescriptor_SpellUUIDs_Sorted(t *testing.T) {
	list := &ListDescriptor{
		Spells: map[string]bool{"c": true, "a": true, "b": true},
	}

	assert.Equal(t, []string{"a", "b", "c"}, list.SpellUUIDs())
	assert.True(t, list.Contains("a"))
	assert.False(t, list.Contains("z"))
}

func TestSortListsByName(t *testing.T) {
	lists := []*ListDescriptor{
		{Name: "Wizard"},
		{Name: "Cleric"},
		{Name: "Bard"},
	}

	SortListsByName(lists)

	assert.Equal(t, "Bard", lists[0].Name)
	assert.Equal(t, "Cleric", lists[1].Name)
	assert.Equal(t, "Wizard", lists[2].Name)
}
