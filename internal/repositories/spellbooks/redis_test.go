package spellbooks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spellbook"
	apperr "github.com/Sayshal/spell-book/internal/errors"
	"github.com/Sayshal/spell-book/internal/uuid"
)

type RedisSuite struct {
	suite.Suite
	ctx    context.Context
	mini   *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisSuite) SetupTest() {
	s.ctx = context.Background()

	mini, err := miniredis.Run()
	s.Require().NoError(err)
	s.mini = mini

	s.client = redis.NewClient(&redis.Options{Addr: mini.Addr()})
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:        s.client,
		UUIDGenerator: uuid.NewSequentialGenerator("record"),
	})
}

func (s *RedisSuite) TearDownTest() {
	_ = s.client.Close()
	s.mini.Close()
}

func TestRedisSuite(t *testing.T) {
	suite.Run(t, new(RedisSuite))
}

func (s *RedisSuite) createTestRecord() *spellbook.Record {
	a := &actor.Actor{
		ID:   "actor-1",
		Name: "Gale Dekarios",
		Ownership: map[string]actor.OwnershipLevel{
			"player1": actor.OwnershipOwner,
		},
	}
	return spellbook.New(a, "wizard", "player1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func (s *RedisSuite) TestCreate_RoundTrip() {
	record := s.createTestRecord()
	record.Page.Spells["uuid-1"] = true

	s.Require().NoError(s.repo.Create(s.ctx, record))
	s.Equal("record-1", record.ID)

	got, err := s.repo.Get(s.ctx, "record-1")
	s.Require().NoError(err)
	s.Equal(record.Name, got.Name)
	s.Equal(spellbook.FolderName, got.Folder)
	s.Equal("actor-1", got.Flags.ActorID)
	s.Equal("wizard", got.Flags.ClassIdentifier)
	s.True(got.Flags.IsActorSpellbook)
	s.Equal(actor.OwnershipOwner, got.Ownership["player1"])
	s.True(got.Contains("uuid-1"))
}

func (s *RedisSuite) TestCreate_SecondCreateForOwnerFails() {
	s.Require().NoError(s.repo.Create(s.ctx, s.createTestRecord()))

	err := s.repo.Create(s.ctx, s.createTestRecord())
	s.Require().Error(err)
	s.True(apperr.IsAlreadyExists(err))

	// The first record is still reachable through the owner index
	got, findErr := s.repo.FindByOwner(s.ctx, "actor-1", "wizard")
	s.Require().NoError(findErr)
	s.Equal("record-1", got.ID)
}

func (s *RedisSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, "missing")
	s.Require().Error(err)
	s.True(apperr.IsNotFound(err))
}

func (s *RedisSuite) TestFindByOwner_NotFound() {
	_, err := s.repo.FindByOwner(s.ctx, "actor-1", "wizard")
	s.Require().Error(err)
	s.True(apperr.IsNotFound(err))
}

func (s *RedisSuite) TestAddSpell_Idempotent() {
	record := s.createTestRecord()
	s.Require().NoError(s.repo.Create(s.ctx, record))

	s.Require().NoError(s.repo.AddSpell(s.ctx, record.ID, "uuid-1"))
	s.Require().NoError(s.repo.AddSpell(s.ctx, record.ID, "uuid-1"))
	s.Require().NoError(s.repo.AddSpell(s.ctx, record.ID, "uuid-2"))

	got, err := s.repo.Get(s.ctx, record.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"uuid-1", "uuid-2"}, got.SpellUUIDs())
}

func (s *RedisSuite) TestSetDescription() {
	record := s.createTestRecord()
	s.Require().NoError(s.repo.Create(s.ctx, record))

	s.Require().NoError(s.repo.SetDescription(s.ctx, record.ID, "Session notes"))

	got, err := s.repo.Get(s.ctx, record.ID)
	s.Require().NoError(err)
	s.Equal("Session notes", got.Page.Description)
}

func (s *RedisSuite) TestList_SkipsCorruptEntries() {
	record := s.createTestRecord()
	s.Require().NoError(s.repo.Create(s.ctx, record))

	// A stale ID in the all-records set should not break listing
	s.Require().NoError(s.client.SAdd(s.ctx, "spellbook:all", "ghost").Err())

	records, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(record.ID, records[0].ID)
}

// Write-failure paths are driven through a command-level mock since
// miniredis cannot inject errors.
type RedisFailureSuite struct {
	suite.Suite
	ctx  context.Context
	mock redismock.ClientMock
	repo Repository
}

func (s *RedisFailureSuite) SetupTest() {
	s.ctx = context.Background()

	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:        client,
		UUIDGenerator: uuid.NewSequentialGenerator("record"),
	})
}

func (s *RedisFailureSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisFailureSuite(t *testing.T) {
	suite.Run(t, new(RedisFailureSuite))
}

func (s *RedisFailureSuite) createTestRecord() *spellbook.Record {
	a := &actor.Actor{ID: "actor-1", Name: "Gale Dekarios"}
	return spellbook.New(a, "wizard", "player1", time.Now().UTC())
}

func (s *RedisFailureSuite) TestCreate_IndexClaimConnectionFailure() {
	s.mock.ExpectSetNX("spellbook:owner:actor-1:wizard", "record-1", 0).
		SetErr(errors.New("connection reset"))

	err := s.repo.Create(s.ctx, s.createTestRecord())
	s.Require().Error(err)
	s.True(apperr.IsWriteFailure(err))
}

func (s *RedisFailureSuite) TestCreate_IndexAlreadyClaimed() {
	s.mock.ExpectSetNX("spellbook:owner:actor-1:wizard", "record-1", 0).
		SetVal(false)

	err := s.repo.Create(s.ctx, s.createTestRecord())
	s.Require().Error(err)
	s.True(apperr.IsAlreadyExists(err))
}

func (s *RedisFailureSuite) TestAddSpell_ReadFailureSurfaces() {
	s.mock.ExpectGet("spellbook:record-9").SetErr(errors.New("connection reset"))

	err := s.repo.AddSpell(s.ctx, "record-9", "uuid-1")
	s.Require().Error(err)
	s.False(apperr.IsNotFound(err))
}
