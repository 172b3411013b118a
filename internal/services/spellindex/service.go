// Package spellindex provides a read-through view over the host's
// compendium packs, scoped to the packs marked for indexing.
package spellindex

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Sayshal/spell-book/internal/clients/vtt"
	"github.com/Sayshal/spell-book/internal/domain/spell"
	apperr "github.com/Sayshal/spell-book/internal/errors"
)

// Service answers spell and spell list queries against indexed packs
type Service interface {
	// FetchAll returns every spell in the indexed item packs. A read
	// failure in one pack skips that pack; it never aborts the fetch.
	FetchAll(ctx context.Context) ([]*spell.Spell, error)

	// FetchSpellLists returns every class spell list in the indexed
	// journal packs, with the same per-pack failure semantics.
	FetchSpellLists(ctx context.Context) ([]*spell.ListDescriptor, error)

	// IndexByUUID returns the lightweight index entry for a spell UUID
	IndexByUUID(ctx context.Context, uuid string) (*vtt.IndexEntry, error)

	// ShouldIndex reports whether the pack participates in indexing
	ShouldIndex(pack vtt.Pack) bool

	// CheckConfigured returns a not configured error when no packs are
	// marked for indexing
	CheckConfigured() error
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Client vtt.Client // Required
	Logger zerolog.Logger
}

// service implements the Service interface
type service struct {
	client vtt.Client
	logger zerolog.Logger
}

// NewService creates a new spell index service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Client == nil {
		panic("vtt client is required")
	}

	return &service{
		client: cfg.Client,
		logger: cfg.Logger.With().Str("component", "spellindex").Logger(),
	}
}

func (s *service) CheckConfigured() error {
	for _, enabled := range s.client.Settings().IndexedCompendiums() {
		if enabled {
			return nil
		}
	}
	return apperr.NotConfigured("no compendiums are marked for indexing")
}

func (s *service) ShouldIndex(pack vtt.Pack) bool {
	if pack == nil {
		return false
	}
	return s.client.Settings().IndexedCompendiums()[pack.ID()]
}

func (s *service) FetchAll(ctx context.Context) ([]*spell.Spell, error) {
	var spells []*spell.Spell
	for _, pack := range s.client.Packs() {
		if pack.Type() != vtt.PackTypeItem || !s.ShouldIndex(pack) {
			continue
		}
		packSpells, err := pack.Spells(ctx)
		if err != nil {
			s.logger.Error().Err(err).Str("pack", pack.ID()).Msg("skipping unreadable pack")
			continue
		}
		spells = append(spells, packSpells...)
	}
	return spells, nil
}

func (s *service) FetchSpellLists(ctx context.Context) ([]*spell.ListDescriptor, error) {
	var lists []*spell.ListDescriptor
	for _, pack := range s.client.Packs() {
		if pack.Type() != vtt.PackTypeJournal || !s.ShouldIndex(pack) {
			continue
		}
		packLists, err := pack.SpellLists(ctx)
		if err != nil {
			s.logger.Error().Err(err).Str("pack", pack.ID()).Msg("skipping unreadable pack")
			continue
		}
		lists = append(lists, packLists...)
	}
	return lists, nil
}

func (s *service) IndexByUUID(ctx context.Context, uuid string) (*vtt.IndexEntry, error) {
	entry, ok := s.client.Resolver().IndexFromUUID(uuid)
	if !ok {
		return nil, apperr.ResolutionFailuref("spell '%s' not found in any index", uuid)
	}
	return entry, nil
}
