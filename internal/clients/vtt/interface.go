// Package vtt defines the interfaces the engine consumes from its host
// virtual tabletop: compendium packs, UUID resolution, settings, actor
// writes, and user-facing prompts. The engine never reaches past these
// interfaces into host internals.
package vtt

//go:generate mockgen -destination=mock/mock_client.go -package=mockvtt . Resolver,Prompter,Notifier

import (
	"context"

	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
)

// PackType distinguishes compendium pack document classes
type PackType string

const (
	PackTypeItem    PackType = "Item"
	PackTypeJournal PackType = "JournalEntry"
)

// Document kinds returned by UUID resolution
const (
	DocKindSpell   = "spell"
	DocKindItem    = "item"
	DocKindJournal = "journal"
)

// Document is a resolved host document. Spell is set when Kind is
// DocKindSpell.
type Document struct {
	UUID  string
	Kind  string
	Name  string
	Spell *spell.Spell
}

// IndexEntry is a lightweight pack index row
type IndexEntry struct {
	ID    string
	UUID  string
	Name  string
	Level int
}

// ParsedUUID is the decomposition of a host UUID
type ParsedUUID struct {
	ID         string
	Type       string
	Collection string
}

// PageEvent describes a journal page write inside the host, used to
// decide whether the preloaded working set must be invalidated.
type PageEvent struct {
	Type     string // page type, e.g. "spells"
	Subtype  string // page subtype, e.g. "class", "other"
	PackID   string // owning compendium, empty for world journals
	PackType PackType
}

// Pack is a read-only compendium collection
type Pack interface {
	// ID returns the pack's collection identifier
	ID() string

	// Label returns the pack's display label
	Label() string

	// Type returns the pack's document class
	Type() PackType

	// Spells returns all spell documents in an item pack
	Spells(ctx context.Context) ([]*spell.Spell, error)

	// SpellLists returns all class spell list pages in a journal pack
	SpellLists(ctx context.Context) ([]*spell.ListDescriptor, error)

	// Index returns the pack's lightweight index
	Index(ctx context.Context) ([]IndexEntry, error)
}

// Resolver resolves host UUIDs to documents
type Resolver interface {
	// FromUUID resolves a UUID, loading the document if needed
	FromUUID(ctx context.Context, uuid string) (*Document, error)

	// FromUUIDSync resolves a UUID against already-loaded documents,
	// returning nil when the document is not available synchronously
	FromUUIDSync(uuid string) *Document

	// IndexFromUUID returns the index entry for a UUID without loading
	// the full document
	IndexFromUUID(uuid string) (*IndexEntry, bool)

	// ParseUUID decomposes a UUID into its parts
	ParseUUID(uuid string) (ParsedUUID, error)
}

// ActorStore reads and writes actors owned by the host. All writes are
// single-writer document updates.
type ActorStore interface {
	// Actor returns the actor with the given ID
	Actor(ctx context.Context, actorID string) (*actor.Actor, error)

	// PlayerActors returns the player-owned party actors
	PlayerActors(ctx context.Context) ([]*actor.Actor, error)

	// UpdateCurrency replaces the actor's currency amounts in a single write
	UpdateCurrency(ctx context.Context, actorID string, currency map[string]int) error

	// SetFlag writes a module flag on the actor
	SetFlag(ctx context.Context, actorID, key string, value any) error

	// DeleteItem removes an inventory item from the actor
	DeleteItem(ctx context.Context, actorID, itemID string) error
}

// Notifier surfaces user-visible messages through the host UI
type Notifier interface {
	Info(message string)
	Warn(message string)
	Error(message string)
}

// LearnPrompt is the confirmation shown before learning a spell from a
// scroll.
type LearnPrompt struct {
	ActorName string
	SpellName string
	SpellUUID string
	Cost      int
	IsFree    bool
	Time      string
}

// Prompter asks the user for confirmation through the host UI
type Prompter interface {
	// ConfirmLearn returns true when the user accepts. Cancellation
	// returns false with a nil error.
	ConfirmLearn(ctx context.Context, prompt *LearnPrompt) (bool, error)
}

// Client aggregates the host capabilities the engine consumes
type Client interface {
	// Packs returns the host's compendium packs
	Packs() []Pack

	// Pack returns the pack with the given collection ID, or nil
	Pack(id string) Pack

	// Resolver returns the host's UUID resolver
	Resolver() Resolver

	// Settings returns the module settings store
	Settings() Settings

	// Actors returns the host's actor store
	Actors() ActorStore

	// Notifier returns the host's notification surface
	Notifier() Notifier

	// Prompter returns the host's confirmation surface
	Prompter() Prompter
}
