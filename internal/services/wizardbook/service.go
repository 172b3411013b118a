// Package wizardbook manages the durable per-actor, per-class wizard
// spellbooks: lazy create-or-get of the backing record, membership and
// cost queries, free-slot accounting, and the copy protocol.
package wizardbook

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Sayshal/spell-book/internal/clients/vtt"
	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spellbook"
	apperr "github.com/Sayshal/spell-book/internal/errors"
	"github.com/Sayshal/spell-book/internal/pkg/clock"
	"github.com/Sayshal/spell-book/internal/repositories/spellbooks"
)

// Service hands out spellbook handles. For any (actorID, classID) at
// most one record is ever created: concurrent callers share a single
// find-or-create flight and receive the same *Book.
type Service interface {
	// GetBook returns the spellbook for the actor's class, creating
	// the backing record on first request. creatingUserID is granted
	// owner permission on a newly created record. Repeated calls for
	// the same (actor, class) return the same handle, rebound to the
	// most recently passed actor snapshot.
	GetBook(ctx context.Context, a *actor.Actor, classID, creatingUserID string) (*Book, error)
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Client     vtt.Client            // Required
	Repository spellbooks.Repository // Required
	Clock      clock.Clock           // Optional
	Logger     zerolog.Logger
}

// service implements the Service interface
type service struct {
	client vtt.Client
	repo   spellbooks.Repository
	clock  clock.Clock
	logger zerolog.Logger

	flights singleflight.Group

	mu    sync.Mutex
	books map[string]*Book
}

// NewService creates a new wizardbook service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Client == nil {
		panic("vtt client is required")
	}
	if cfg.Repository == nil {
		panic("spellbook repository is required")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &service{
		client: cfg.Client,
		repo:   cfg.Repository,
		clock:  clk,
		logger: cfg.Logger.With().Str("component", "wizardbook").Logger(),
		books:  make(map[string]*Book),
	}
}

func bookKey(actorID, classID string) string {
	return fmt.Sprintf("%s:%s", actorID, classID)
}

func (s *service) GetBook(ctx context.Context, a *actor.Actor, classID, creatingUserID string) (*Book, error) {
	if a == nil {
		return nil, apperr.InvalidArgument("actor cannot be nil")
	}
	class := a.Class(classID)
	if class == nil {
		return nil, apperr.NotFoundf("actor '%s' has no spellcasting class '%s'", a.ID, classID)
	}

	key := bookKey(a.ID, classID)

	s.mu.Lock()
	if book, ok := s.books[key]; ok {
		s.mu.Unlock()
		// Callers may pass a freshly fetched snapshot of the same
		// actor; point the cached handle at it so currency and flag
		// reads are current.
		if book.actor != a {
			book.rebind(a, class)
		}
		return book, nil
	}
	s.mu.Unlock()

	// Single-flight the find-or-create so concurrent callers for the
	// same key observe one record. The flight releases on every exit
	// path, success or failure.
	result, err, _ := s.flights.Do(key, func() (any, error) {
		return s.findOrCreate(ctx, a, classID, creatingUserID)
	})
	if err != nil {
		return nil, err
	}
	record := result.(*spellbook.Record)

	s.mu.Lock()
	defer s.mu.Unlock()
	if book, ok := s.books[key]; ok {
		if book.actor != a {
			book.rebind(a, class)
		}
		return book, nil
	}
	book := newBook(s, a, class, record.ID)
	s.books[key] = book
	return book, nil
}

func (s *service) findOrCreate(ctx context.Context, a *actor.Actor, classID, creatingUserID string) (*spellbook.Record, error) {
	record, err := s.repo.FindByOwner(ctx, a.ID, classID)
	if err == nil {
		return record, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, apperr.Wrap(err, "failed to look up spellbook record")
	}

	record = spellbook.New(a, classID, creatingUserID, s.clock.Now().UTC())
	if createErr := s.repo.Create(ctx, record); createErr != nil {
		// A concurrent process may have created the record between the
		// find and the create; fall back to the existing document.
		if apperr.IsAlreadyExists(createErr) {
			return s.repo.FindByOwner(ctx, a.ID, classID)
		}
		return nil, apperr.WrapWithCode(createErr, apperr.CodeWriteFailure, "failed to create spellbook record")
	}

	s.logger.Info().
		Str("actor_id", a.ID).
		Str("class_id", classID).
		Str("record_id", record.ID).
		Msg("created spellbook record")

	return record, nil
}
