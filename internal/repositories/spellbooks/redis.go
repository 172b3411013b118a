package spellbooks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spellbook"
	apperr "github.com/Sayshal/spell-book/internal/errors"
	"github.com/Sayshal/spell-book/internal/uuid"
)

// RecordData represents the serialized form of a spellbook record in
// Redis. The page is flattened; the spell set is stored as a list for
// stable serialization.
type RecordData struct {
	ID               string                          `json:"id"`
	Name             string                          `json:"name"`
	Folder           string                          `json:"folder"`
	Ownership        map[string]actor.OwnershipLevel `json:"ownership"`
	ActorID          string                          `json:"actor_id"`
	ClassIdentifier  string                          `json:"class_identifier"`
	IsActorSpellbook bool                            `json:"is_actor_spellbook"`
	CreationDate     time.Time                       `json:"creation_date"`
	PageType         string                          `json:"page_type"`
	PageIdentifier   string                          `json:"page_identifier"`
	PageSubtype      string                          `json:"page_subtype"`
	Description      string                          `json:"description"`
	Spells           []string                        `json:"spells"`
	CreatedAt        time.Time                       `json:"created_at"`
	UpdatedAt        time.Time                       `json:"updated_at"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedisRepository creates a new Redis-backed spellbook repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
	}
}

// key generates the Redis key for a record
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("spellbook:%s", id)
}

// ownerIndexKey generates the Redis key mapping (actor, class) to a record ID
func (r *redisRepo) ownerIndexKey(actorID, classIdentifier string) string {
	return fmt.Sprintf("spellbook:owner:%s:%s", actorID, classIdentifier)
}

// allRecordsKey is the set of all record IDs in the pack
func (r *redisRepo) allRecordsKey() string {
	return "spellbook:all"
}

// Create stores a new record
func (r *redisRepo) Create(ctx context.Context, record *spellbook.Record) error {
	if record == nil {
		return apperr.InvalidArgument("record cannot be nil")
	}
	if record.Flags.ActorID == "" {
		return apperr.InvalidArgument("record actor ID is required")
	}
	if record.Flags.ClassIdentifier == "" {
		return apperr.InvalidArgument("record class identifier is required")
	}

	if record.ID == "" {
		record.ID = r.uuidGenerator.New()
	}

	// Claim the owner index first so a second create for the same
	// (actor, class) fails instead of writing a duplicate record.
	indexKey := r.ownerIndexKey(record.Flags.ActorID, record.Flags.ClassIdentifier)
	claimed, err := r.client.SetNX(ctx, indexKey, record.ID, 0).Result()
	if err != nil {
		return apperr.WrapWithCode(err, apperr.CodeWriteFailure, "failed to claim spellbook owner index")
	}
	if !claimed {
		return apperr.AlreadyExistsf("spellbook for actor '%s' class '%s' already exists",
			record.Flags.ActorID, record.Flags.ClassIdentifier).
			WithMeta("actor_id", record.Flags.ActorID).
			WithMeta("class_identifier", record.Flags.ClassIdentifier)
	}

	data := r.toRecordData(record)
	data.CreatedAt = time.Now().UTC()
	data.UpdatedAt = data.CreatedAt

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal spellbook record: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(record.ID), jsonData, 0)
	pipe.SAdd(ctx, r.allRecordsKey(), record.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		// Roll the claim back so a retry can succeed
		r.client.Del(ctx, indexKey)
		return apperr.WrapWithCode(err, apperr.CodeWriteFailure, "failed to create spellbook record")
	}

	return nil
}

// Get retrieves a record by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*spellbook.Record, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("record ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, apperr.NotFoundf("spellbook record '%s' not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get spellbook record: %w", err)
	}

	var data RecordData
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal spellbook record: %w", unmarshalErr)
	}

	return r.fromRecordData(&data), nil
}

// FindByOwner returns the record for (actorID, classIdentifier)
func (r *redisRepo) FindByOwner(ctx context.Context, actorID, classIdentifier string) (*spellbook.Record, error) {
	if actorID == "" {
		return nil, apperr.InvalidArgument("actor ID is required")
	}
	if classIdentifier == "" {
		return nil, apperr.InvalidArgument("class identifier is required")
	}

	id, err := r.client.Get(ctx, r.ownerIndexKey(actorID, classIdentifier)).Result()
	if err == redis.Nil {
		return nil, apperr.NotFoundf("no spellbook for actor '%s' class '%s'", actorID, classIdentifier)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up spellbook owner index: %w", err)
	}

	return r.Get(ctx, id)
}

// List returns all records in the pack
func (r *redisRepo) List(ctx context.Context) ([]*spellbook.Record, error) {
	ids, err := r.client.SMembers(ctx, r.allRecordsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list spellbook record IDs: %w", err)
	}

	records := make([]*spellbook.Record, 0, len(ids))
	for _, id := range ids {
		record, err := r.Get(ctx, id)
		if err != nil {
			// Skip records that can't be loaded
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// AddSpell adds a spell UUID to the record's page set
func (r *redisRepo) AddSpell(ctx context.Context, id, spellUUID string) error {
	if spellUUID == "" {
		return apperr.InvalidArgument("spell UUID is required")
	}

	return r.mutate(ctx, id, func(data *RecordData) {
		for _, existing := range data.Spells {
			if existing == spellUUID {
				return
			}
		}
		data.Spells = append(data.Spells, spellUUID)
	})
}

// SetDescription updates the record page's description
func (r *redisRepo) SetDescription(ctx context.Context, id, description string) error {
	return r.mutate(ctx, id, func(data *RecordData) {
		data.Description = description
	})
}

// mutate reads a record, applies fn, and writes it back in one update
func (r *redisRepo) mutate(ctx context.Context, id string, fn func(*RecordData)) error {
	if id == "" {
		return apperr.InvalidArgument("record ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return apperr.NotFoundf("spellbook record '%s' not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get spellbook record: %w", err)
	}

	var data RecordData
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return fmt.Errorf("failed to unmarshal spellbook record: %w", unmarshalErr)
	}

	fn(&data)
	data.UpdatedAt = time.Now().UTC()

	updated, err := json.Marshal(&data)
	if err != nil {
		return fmt.Errorf("failed to marshal spellbook record: %w", err)
	}

	if err := r.client.Set(ctx, r.key(id), updated, 0).Err(); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeWriteFailure, "failed to update spellbook record")
	}
	return nil
}

// toRecordData converts a domain record to its storage form
func (r *redisRepo) toRecordData(record *spellbook.Record) *RecordData {
	return &RecordData{
		ID:               record.ID,
		Name:             record.Name,
		Folder:           record.Folder,
		Ownership:        record.Ownership,
		ActorID:          record.Flags.ActorID,
		ClassIdentifier:  record.Flags.ClassIdentifier,
		IsActorSpellbook: record.Flags.IsActorSpellbook,
		CreationDate:     record.Flags.CreationDate,
		PageType:         record.Page.Type,
		PageIdentifier:   record.Page.Identifier,
		PageSubtype:      record.Page.Subtype,
		Description:      record.Page.Description,
		Spells:           record.SpellUUIDs(),
	}
}

// fromRecordData converts a storage struct back to a domain record
func (r *redisRepo) fromRecordData(data *RecordData) *spellbook.Record {
	spells := make(map[string]bool, len(data.Spells))
	for _, uuid := range data.Spells {
		spells[uuid] = true
	}

	return &spellbook.Record{
		ID:        data.ID,
		Name:      data.Name,
		Folder:    data.Folder,
		Ownership: data.Ownership,
		Flags: spellbook.Flags{
			ActorID:          data.ActorID,
			ClassIdentifier:  data.ClassIdentifier,
			IsActorSpellbook: data.IsActorSpellbook,
			CreationDate:     data.CreationDate,
		},
		Page: spellbook.Page{
			Type:        data.PageType,
			Identifier:  data.PageIdentifier,
			Subtype:     data.PageSubtype,
			Description: data.Description,
			Spells:      spells,
		},
	}
}
