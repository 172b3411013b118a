package vtt

import "github.com/Sayshal/spell-book/internal/rules"

// NotesInjection controls whether personal spell notes are injected
// into spell descriptions by the UI.
type NotesInjection string

const (
	NotesOff    NotesInjection = "off"
	NotesBefore NotesInjection = "before"
	NotesAfter  NotesInjection = "after"
)

// CurrencyDenomination is one denomination in the host system's currency
// config. The base denomination has conversion factor 1; larger factors
// are less valuable (factor 10 means ten units per base unit).
type CurrencyDenomination struct {
	Abbreviation     string  `json:"abbreviation"`
	Label            string  `json:"label"`
	ConversionFactor float64 `json:"conversion_factor"`
}

// Settings exposes the module settings the engine recognizes. Settings
// storage and registration are the host's concern.
type Settings interface {
	// IndexedCompendiums returns the packs eligible for indexing
	IndexedCompendiums() map[string]bool

	// SetupMode reports whether the GM preload runs in setup mode
	SetupMode() bool

	// DeductSpellLearningCost reports whether paid copies mutate currency
	DeductSpellLearningCost() bool

	// ConsumeScrollsWhenLearning reports whether a learned scroll is deleted
	ConsumeScrollsWhenLearning() bool

	// SpellComparisonMax caps the comparison list size
	SpellComparisonMax() int

	// PartyModeTokenLimit caps party-presence icons per row
	PartyModeTokenLimit() int

	// AvailableFocusOptions lists the configured focus descriptors
	AvailableFocusOptions() []string

	// InjectNotesIntoDescriptions returns the notes-injection mode
	InjectNotesIntoDescriptions() NotesInjection

	// CurrencyConfig returns the system's denominations. The base
	// denomination carries conversion factor 1.
	CurrencyConfig() []CurrencyDenomination

	// ClassRules returns per-class rule overrides keyed by class identifier
	ClassRules() map[string]rules.Overrides
}
