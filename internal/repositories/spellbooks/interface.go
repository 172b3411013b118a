// Package spellbooks stores the durable spellbook records the engine
// owns: one journal-style document per (actor, class) inside the
// module's pack.
package spellbooks

//go:generate mockgen -destination=mock/mock_repository.go -package=mockspellbooks . Repository

import (
	"context"

	"github.com/Sayshal/spell-book/internal/domain/spellbook"
)

// Repository persists spellbook records. The at-most-one invariant per
// (actorID, classIdentifier) is coordinated by the wizardbook service;
// the repository enforces uniqueness of the owner index on create.
type Repository interface {
	// Create stores a new record, assigning an ID when absent
	Create(ctx context.Context, record *spellbook.Record) error

	// Get retrieves a record by ID
	Get(ctx context.Context, id string) (*spellbook.Record, error)

	// FindByOwner returns the record for (actorID, classIdentifier), or
	// a not found error
	FindByOwner(ctx context.Context, actorID, classIdentifier string) (*spellbook.Record, error)

	// List returns all records in the pack
	List(ctx context.Context) ([]*spellbook.Record, error)

	// AddSpell adds a spell UUID to the record's page set. Adding a
	// UUID already present is a no-op.
	AddSpell(ctx context.Context, id, spellUUID string) error

	// SetDescription updates the record page's description
	SetDescription(ctx context.Context, id, description string) error
}
