package spellbooks

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spellbook"
	apperr "github.com/Sayshal/spell-book/internal/errors"
	"github.com/Sayshal/spell-book/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the spellbook
// repository. Useful for testing and for hosts without a redis store.
type InMemoryRepository struct {
	mu            sync.RWMutex
	records       map[string]*spellbook.Record
	byOwner       map[string]string // ownerKey -> record ID
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records:       make(map[string]*spellbook.Record),
		byOwner:       make(map[string]string),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

func ownerKey(actorID, classIdentifier string) string {
	return fmt.Sprintf("%s:%s", actorID, classIdentifier)
}

// Create stores a new record
func (r *InMemoryRepository) Create(ctx context.Context, record *spellbook.Record) error {
	if record == nil {
		return apperr.InvalidArgument("record cannot be nil")
	}
	if record.Flags.ActorID == "" {
		return apperr.InvalidArgument("record actor ID is required")
	}
	if record.Flags.ClassIdentifier == "" {
		return apperr.InvalidArgument("record class identifier is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := ownerKey(record.Flags.ActorID, record.Flags.ClassIdentifier)
	if _, exists := r.byOwner[key]; exists {
		return apperr.AlreadyExistsf("spellbook for '%s' already exists", key).
			WithMeta("actor_id", record.Flags.ActorID).
			WithMeta("class_identifier", record.Flags.ClassIdentifier)
	}

	if record.ID == "" {
		record.ID = r.uuidGenerator.New()
	}
	if _, exists := r.records[record.ID]; exists {
		return apperr.AlreadyExistsf("spellbook record '%s' already exists", record.ID)
	}

	stored := cloneRecord(record)
	r.records[record.ID] = stored
	r.byOwner[key] = record.ID
	return nil
}

// Get retrieves a record by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*spellbook.Record, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("record ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, apperr.NotFoundf("spellbook record '%s' not found", id)
	}
	return cloneRecord(record), nil
}

// FindByOwner returns the record for (actorID, classIdentifier)
func (r *InMemoryRepository) FindByOwner(ctx context.Context, actorID, classIdentifier string) (*spellbook.Record, error) {
	if actorID == "" {
		return nil, apperr.InvalidArgument("actor ID is required")
	}
	if classIdentifier == "" {
		return nil, apperr.InvalidArgument("class identifier is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byOwner[ownerKey(actorID, classIdentifier)]
	if !exists {
		return nil, apperr.NotFoundf("no spellbook for actor '%s' class '%s'", actorID, classIdentifier)
	}
	return cloneRecord(r.records[id]), nil
}

// List returns all records
func (r *InMemoryRepository) List(ctx context.Context) ([]*spellbook.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*spellbook.Record, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, cloneRecord(record))
	}
	return records, nil
}

// AddSpell adds a spell UUID to the record's page set
func (r *InMemoryRepository) AddSpell(ctx context.Context, id, spellUUID string) error {
	if id == "" {
		return apperr.InvalidArgument("record ID is required")
	}
	if spellUUID == "" {
		return apperr.InvalidArgument("spell UUID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return apperr.NotFoundf("spellbook record '%s' not found", id)
	}
	if record.Page.Spells == nil {
		record.Page.Spells = make(map[string]bool)
	}
	record.Page.Spells[spellUUID] = true
	return nil
}

// SetDescription updates the record page's description
func (r *InMemoryRepository) SetDescription(ctx context.Context, id, description string) error {
	if id == "" {
		return apperr.InvalidArgument("record ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return apperr.NotFoundf("spellbook record '%s' not found", id)
	}
	record.Page.Description = description
	return nil
}

// cloneRecord copies a record so callers cannot mutate stored state
func cloneRecord(record *spellbook.Record) *spellbook.Record {
	clone := *record

	clone.Ownership = make(map[string]actor.OwnershipLevel, len(record.Ownership))
	for userID, level := range record.Ownership {
		clone.Ownership[userID] = level
	}

	clone.Page.Spells = make(map[string]bool, len(record.Page.Spells))
	for uuid := range record.Page.Spells {
		clone.Page.Spells[uuid] = true
	}

	return &clone
}
