package vtt

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
	apperr "github.com/Sayshal/spell-book/internal/errors"
	"github.com/Sayshal/spell-book/internal/rules"
)

// MemorySettings is a Settings implementation backed by plain fields.
// Useful for testing and for the admin CLI, where settings come from a
// world snapshot instead of the live host.
type MemorySettings struct {
	Indexed          map[string]bool            `json:"indexed_compendiums"`
	Setup            bool                       `json:"setup_mode"`
	DeductCost       bool                       `json:"deduct_spell_learning_cost"`
	ConsumeScrolls   bool                       `json:"consume_scrolls_when_learning"`
	ComparisonMax    int                        `json:"spell_comparison_max"`
	TokenLimit       int                        `json:"party_mode_token_limit"`
	FocusOptions     []string                   `json:"available_focus_options"`
	NotesMode        NotesInjection             `json:"inject_notes_into_descriptions"`
	Currencies       []CurrencyDenomination     `json:"currencies"`
	ClassRuleRecords map[string]rules.Overrides `json:"class_rules"`
}

func (s *MemorySettings) IndexedCompendiums() map[string]bool { return s.Indexed }
func (s *MemorySettings) SetupMode() bool                     { return s.Setup }
func (s *MemorySettings) DeductSpellLearningCost() bool       { return s.DeductCost }
func (s *MemorySettings) ConsumeScrollsWhenLearning() bool    { return s.ConsumeScrolls }
func (s *MemorySettings) SpellComparisonMax() int             { return s.ComparisonMax }
func (s *MemorySettings) PartyModeTokenLimit() int            { return s.TokenLimit }
func (s *MemorySettings) AvailableFocusOptions() []string     { return s.FocusOptions }

func (s *MemorySettings) InjectNotesIntoDescriptions() NotesInjection {
	if s.NotesMode == "" {
		return NotesOff
	}
	return s.NotesMode
}

func (s *MemorySettings) CurrencyConfig() []CurrencyDenomination {
	if len(s.Currencies) == 0 {
		return DefaultCurrencyConfig()
	}
	return s.Currencies
}

func (s *MemorySettings) ClassRules() map[string]rules.Overrides { return s.ClassRuleRecords }

// DefaultCurrencyConfig returns the standard four-denomination ladder
// with gold as the base unit.
func DefaultCurrencyConfig() []CurrencyDenomination {
	return []CurrencyDenomination{
		{Abbreviation: "pp", Label: "Platinum", ConversionFactor: 0.1},
		{Abbreviation: "gp", Label: "Gold", ConversionFactor: 1},
		{Abbreviation: "sp", Label: "Silver", ConversionFactor: 10},
		{Abbreviation: "cp", Label: "Copper", ConversionFactor: 100},
	}
}

// MemoryPack is a Pack held entirely in memory
type MemoryPack struct {
	PackID    string
	PackLabel string
	PackType  PackType
	Contents  []*spell.Spell
	Lists     []*spell.ListDescriptor

	// ReadErr, when set, makes every read fail. Used to exercise the
	// preloader's skip-bad-pack behavior.
	ReadErr error
}

func (p *MemoryPack) ID() string     { return p.PackID }
func (p *MemoryPack) Label() string  { return p.PackLabel }
func (p *MemoryPack) Type() PackType { return p.PackType }

func (p *MemoryPack) Spells(_ context.Context) ([]*spell.Spell, error) {
	if p.ReadErr != nil {
		return nil, p.ReadErr
	}
	return p.Contents, nil
}

func (p *MemoryPack) SpellLists(_ context.Context) ([]*spell.ListDescriptor, error) {
	if p.ReadErr != nil {
		return nil, p.ReadErr
	}
	return p.Lists, nil
}

func (p *MemoryPack) Index(_ context.Context) ([]IndexEntry, error) {
	if p.ReadErr != nil {
		return nil, p.ReadErr
	}
	entries := make([]IndexEntry, 0, len(p.Contents))
	for _, s := range p.Contents {
		entries = append(entries, IndexEntry{
			ID:    s.UUID,
			UUID:  s.UUID,
			Name:  s.Name,
			Level: s.Level,
		})
	}
	return entries, nil
}

// RecordingNotifier captures notifications for assertions
type RecordingNotifier struct {
	mu       sync.Mutex
	Infos    []string
	Warnings []string
	Errors   []string
}

func (n *RecordingNotifier) Info(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Infos = append(n.Infos, message)
}

func (n *RecordingNotifier) Warn(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Warnings = append(n.Warnings, message)
}

func (n *RecordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, message)
}

// FuncPrompter adapts a function to the Prompter interface
type FuncPrompter func(ctx context.Context, prompt *LearnPrompt) (bool, error)

func (f FuncPrompter) ConfirmLearn(ctx context.Context, prompt *LearnPrompt) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm accepts every prompt
func AlwaysConfirm() Prompter {
	return FuncPrompter(func(context.Context, *LearnPrompt) (bool, error) {
		return true, nil
	})
}

// Memory is an in-memory Client implementation. It backs the admin CLI
// (loaded from a world snapshot) and the engine's tests.
type Memory struct {
	mu sync.RWMutex

	ActorsByID map[string]*actor.Actor
	PackList   []*MemoryPack
	Config     *MemorySettings
	Notify     *RecordingNotifier
	Confirm    Prompter

	// Write failure injection for tests
	CurrencyWriteErr error
	FlagWriteErr     error
	DeleteItemErr    error
}

// NewMemory creates an empty in-memory host
func NewMemory() *Memory {
	return &Memory{
		ActorsByID: make(map[string]*actor.Actor),
		Config:     &MemorySettings{Indexed: make(map[string]bool)},
		Notify:     &RecordingNotifier{},
		Confirm:    AlwaysConfirm(),
	}
}

// AddActor registers an actor with the host
func (m *Memory) AddActor(a *actor.Actor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ActorsByID[a.ID] = a
}

// AddPack registers a compendium pack with the host
func (m *Memory) AddPack(p *MemoryPack) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PackList = append(m.PackList, p)
}

func (m *Memory) Packs() []Pack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	packs := make([]Pack, len(m.PackList))
	for i, p := range m.PackList {
		packs[i] = p
	}
	return packs
}

func (m *Memory) Pack(id string) Pack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.PackList {
		if p.PackID == id {
			return p
		}
	}
	return nil
}

func (m *Memory) Resolver() Resolver { return m }
func (m *Memory) Settings() Settings { return m.Config }
func (m *Memory) Actors() ActorStore { return m }
func (m *Memory) Notifier() Notifier { return m.Notify }
func (m *Memory) Prompter() Prompter { return m.Confirm }

// FromUUID resolves a UUID against the host's packs
func (m *Memory) FromUUID(_ context.Context, uuid string) (*Document, error) {
	if doc := m.FromUUIDSync(uuid); doc != nil {
		return doc, nil
	}
	return nil, apperr.ResolutionFailuref("document '%s' not found", uuid)
}

// FromUUIDSync resolves a UUID without suspending. The in-memory host
// holds everything loaded, so this mirrors FromUUID.
func (m *Memory) FromUUIDSync(uuid string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.PackList {
		for _, s := range p.Contents {
			if s.UUID == uuid {
				return &Document{UUID: uuid, Kind: DocKindSpell, Name: s.Name, Spell: s}
			}
		}
		for _, l := range p.Lists {
			if l.UUID == uuid {
				return &Document{UUID: uuid, Kind: DocKindJournal, Name: l.Name}
			}
		}
	}
	return nil
}

func (m *Memory) IndexFromUUID(uuid string) (*IndexEntry, bool) {
	doc := m.FromUUIDSync(uuid)
	if doc == nil {
		return nil, false
	}
	entry := &IndexEntry{ID: doc.UUID, UUID: doc.UUID, Name: doc.Name}
	if doc.Spell != nil {
		entry.Level = doc.Spell.Level
	}
	return entry, true
}

// ParseUUID decomposes a dotted compendium UUID:
// Compendium.<collection>.<type>.<id>
func (m *Memory) ParseUUID(uuid string) (ParsedUUID, error) {
	parts := strings.Split(uuid, ".")
	if len(parts) < 4 || parts[0] != "Compendium" {
		return ParsedUUID{}, apperr.InvalidArgumentf("malformed uuid '%s'", uuid)
	}
	return ParsedUUID{
		Collection: parts[1],
		Type:       parts[len(parts)-2],
		ID:         parts[len(parts)-1],
	}, nil
}

// Actor returns the actor with the given ID
func (m *Memory) Actor(_ context.Context, actorID string) (*actor.Actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.ActorsByID[actorID]
	if !ok {
		return nil, apperr.NotFoundf("actor '%s' not found", actorID)
	}
	return a, nil
}

// PlayerActors returns actors with at least one non-default owner
func (m *Memory) PlayerActors(_ context.Context) ([]*actor.Actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var players []*actor.Actor
	for _, a := range m.ActorsByID {
		if len(a.OwnerUserIDs()) > 0 {
			players = append(players, a)
		}
	}
	return players, nil
}

// UpdateCurrency replaces the actor's currency in a single write
func (m *Memory) UpdateCurrency(_ context.Context, actorID string, currency map[string]int) error {
	if m.CurrencyWriteErr != nil {
		return m.CurrencyWriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.ActorsByID[actorID]
	if !ok {
		return apperr.NotFoundf("actor '%s' not found", actorID)
	}
	updated := make(map[string]int, len(currency))
	for denom, amount := range currency {
		updated[denom] = amount
	}
	a.Currency = updated
	return nil
}

// SetFlag writes a module flag on the actor
func (m *Memory) SetFlag(_ context.Context, actorID, key string, value any) error {
	if m.FlagWriteErr != nil {
		return m.FlagWriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.ActorsByID[actorID]
	if !ok {
		return apperr.NotFoundf("actor '%s' not found", actorID)
	}
	return a.SetFlag(key, value)
}

// DeleteItem removes an inventory item from the actor
func (m *Memory) DeleteItem(_ context.Context, actorID, itemID string) error {
	if m.DeleteItemErr != nil {
		return m.DeleteItemErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.ActorsByID[actorID]
	if !ok {
		return apperr.NotFoundf("actor '%s' not found", actorID)
	}
	for i, item := range a.Inventory {
		if item.ID == itemID {
			a.Inventory = append(a.Inventory[:i], a.Inventory[i+1:]...)
			return nil
		}
	}
	return apperr.NotFoundf("item '%s' not found on actor '%s'", itemID, actorID)
}

// SpellUUID builds a compendium UUID for a spell ID within a pack
func SpellUUID(packID, id string) string {
	return fmt.Sprintf("Compendium.%s.Item.%s", packID, id)
}
