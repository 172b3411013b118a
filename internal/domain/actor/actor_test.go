package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_HasObserver(t *testing.T) {
	a := &Actor{
		Ownership: map[string]OwnershipLevel{
			"default": OwnershipLimited,
			"alice":   OwnershipOwner,
			"bob":     OwnershipNone,
		},
	}

	assert.True(t, a.HasObserver("alice"))
	assert.False(t, a.HasObserver("bob"), "explicit level wins over default")
	assert.False(t, a.HasObserver("carol"), "falls back to default level")

	a.Ownership["default"] = OwnershipObserver
	assert.True(t, a.HasObserver("carol"))
}

func TestActor_OwnerUserIDs_ExcludesDefault(t *testing.T) {
	a := &Actor{
		Ownership: map[string]OwnershipLevel{
			"default": OwnershipOwner,
			"alice":   OwnershipOwner,
			"bob":     OwnershipObserver,
		},
	}

	assert.Equal(t, []string{"alice"}, a.OwnerUserIDs())
}

func TestActor_Classes(t *testing.T) {
	a := &Actor{}
	assert.False(t, a.IsSpellcaster())
	assert.Nil(t, a.Class("wizard"))
	assert.Empty(t, a.WizardEnabledClasses())

	a.Classes = map[string]*SpellcastingClass{
		"wizard": {ID: "wizard", Identifier: "wizard", WizardEnabled: true},
		"cleric": {ID: "cleric", Identifier: "cleric"},
	}

	assert.True(t, a.IsSpellcaster())
	require.NotNil(t, a.Class("wizard"))
	wizards := a.WizardEnabledClasses()
	require.Len(t, wizards, 1)
	assert.Equal(t, "wizard", wizards[0].ID)
}

func TestActor_Flags_RoundTrip(t *testing.T) {
	a := &Actor{}

	entries := []string{"uuid-1", "uuid-2"}
	require.NoError(t, a.SetFlag(FlagPreparedSpells, entries))

	var out []string
	ok, err := a.GetFlag(FlagPreparedSpells, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entries, out)

	ok, err = a.GetFlag("missing", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActor_SelectedFocus(t *testing.T) {
	a := &Actor{}
	assert.Empty(t, a.SelectedFocus())

	require.NoError(t, a.SetFlag(FlagSpellcastingFocus, "wand"))
	assert.Equal(t, "wand", a.SelectedFocus())

	// Explicit selection wins over the legacy flag
	require.NoError(t, a.SetFlag(FlagSelectedFocus, "orb"))
	assert.Equal(t, "orb", a.SelectedFocus())
}

func TestActor_PartyModeEnabled(t *testing.T) {
	a := &Actor{}
	assert.False(t, a.PartyModeEnabled())

	require.NoError(t, a.SetFlag(FlagPartyModeEnabled, true))
	assert.True(t, a.PartyModeEnabled())
}

func TestCopiedSpellsFlag(t *testing.T) {
	assert.Equal(t, "wizardCopiedSpells_wizard", CopiedSpellsFlag("wizard"))
}

func TestActor_Scrolls(t *testing.T) {
	a := &Actor{
		Inventory: []*Item{
			{ID: "i1", Type: ItemTypeConsumable, Subtype: ConsumableScroll},
			{ID: "i2", Type: ItemTypeConsumable, Subtype: "potion"},
			{ID: "i3", Type: "weapon"},
		},
	}

	scrolls := a.Scrolls()
	require.Len(t, scrolls, 1)
	assert.Equal(t, "i1", scrolls[0].ID)

	require.NotNil(t, a.Item("i2"))
	assert.Nil(t, a.Item("missing"))
}

func TestItem_EffectByID(t *testing.T) {
	item := &Item{
		Effects: []ItemEffect{
			{ID: "e1", Origin: "Compendium.srd.Item.abc"},
		},
	}

	effect := item.EffectByID("e1")
	require.NotNil(t, effect)
	assert.Equal(t, "Compendium.srd.Item.abc", effect.Origin)
	assert.Nil(t, item.EffectByID("e2"))
}
