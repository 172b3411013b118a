package actor

import "fmt"

// Flag keys the engine reads and writes on actors. Keys live in the
// module's flag namespace on the host document.
const (
	FlagPreparedSpells        = "preparedSpells"
	FlagPreparedSpellsByClass = "preparedSpellsByClass"
	FlagPartyModeEnabled      = "partyModeEnabled"
	FlagSpellcastingFocus     = "spellcastingFocus"
	FlagSelectedFocus         = "selectedFocus"
)

// CopiedSpellsFlag returns the flag key holding the copied-spell entries
// for the given class identifier.
func CopiedSpellsFlag(classIdentifier string) string {
	return fmt.Sprintf("wizardCopiedSpells_%s", classIdentifier)
}

// PreparedSpells returns the actor's flat prepared-spell UUID list
func (a *Actor) PreparedSpells() []string {
	var prepared []string
	if _, err := a.GetFlag(FlagPreparedSpells, &prepared); err != nil {
		return nil
	}
	return prepared
}

// PreparedSpellsByClass returns prepared spell UUIDs keyed by class identifier
func (a *Actor) PreparedSpellsByClass() map[string][]string {
	byClass := make(map[string][]string)
	if _, err := a.GetFlag(FlagPreparedSpellsByClass, &byClass); err != nil {
		return nil
	}
	return byClass
}

// SelectedFocus returns the actor's chosen spellcasting focus, preferring
// the explicit selection over the legacy focus flag.
func (a *Actor) SelectedFocus() string {
	var focus string
	if ok, err := a.GetFlag(FlagSelectedFocus, &focus); err == nil && ok && focus != "" {
		return focus
	}
	if ok, err := a.GetFlag(FlagSpellcastingFocus, &focus); err == nil && ok {
		return focus
	}
	return ""
}

// PartyModeEnabled reports whether the actor opted into party display
func (a *Actor) PartyModeEnabled() bool {
	var enabled bool
	if ok, err := a.GetFlag(FlagPartyModeEnabled, &enabled); err != nil || !ok {
		return false
	}
	return enabled
}
