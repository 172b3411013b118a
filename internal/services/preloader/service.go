// Package preloader computes and caches the role-scoped working set of
// spells for the current viewer. The cache is process-wide and gated on
// the module version; invalidation under a GM in setup mode schedules a
// debounced re-preload.
package preloader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sayshal/spell-book/internal/cache"
	"github.com/Sayshal/spell-book/internal/clients/vtt"
	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
	"github.com/Sayshal/spell-book/internal/pkg/clock"
	"github.com/Sayshal/spell-book/internal/repositories/spellbooks"
	"github.com/Sayshal/spell-book/internal/rules"
	"github.com/Sayshal/spell-book/internal/services/spellindex"
)

// Mode is the role scope a working set was computed for
type Mode string

const (
	ModeGMSetup     Mode = "gm-setup"
	ModeGMParty     Mode = "gm-party"
	ModePlayer      Mode = "player"
	ModeNoCharacter Mode = "no-character"
)

// Viewer identifies who the working set is computed for
type Viewer struct {
	UserID string
	IsGM   bool
	Actor  *actor.Actor // nil when the user has no character
}

// WorkingSet is the preloaded spell data scoped to a viewer's role
type WorkingSet struct {
	SpellLists     []*spell.ListDescriptor
	EnrichedSpells map[string]*spell.Enriched // keyed by spell UUID
	Timestamp      time.Time
	ModuleVersion  string
	Mode           Mode
}

// Enricher produces the presentation handle attached to each spell.
// Rendering is the UI collaborator's concern.
type Enricher func(s *spell.Spell) string

// Service computes, caches, and invalidates the working set
type Service interface {
	// Preload computes the working set for the viewer and caches it
	Preload(ctx context.Context, viewer Viewer) (*WorkingSet, error)

	// Get returns the cached working set, or nil when the cache is
	// empty or was stored under a different module version
	Get() *WorkingSet

	// Invalidate clears the cache. When the last viewer was a GM in
	// setup mode, a re-preload is scheduled after a short debounce so
	// bursts of invalidations coalesce.
	Invalidate()

	// ShouldInvalidateForPage reports whether a journal page write
	// affects the working set
	ShouldInvalidateForPage(page vtt.PageEvent) bool
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Client        vtt.Client            // Required
	Index         spellindex.Service    // Required
	Spellbooks    spellbooks.Repository // Required
	ModuleVersion string                // Required
	Enricher      Enricher              // Optional, defaults to a content link
	Clock         clock.Clock           // Optional
	DebounceDelay time.Duration         // Optional, defaults to 1s
	Logger        zerolog.Logger
}

// service implements the Service interface
type service struct {
	client     vtt.Client
	index      spellindex.Service
	spellbooks spellbooks.Repository
	version    string
	enricher   Enricher
	clock      clock.Clock
	logger     zerolog.Logger

	store     cache.Versioned[WorkingSet]
	debouncer *cache.Debouncer

	mu         sync.Mutex
	lastViewer *Viewer
}

// NewService creates a new preloader service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Client == nil {
		panic("vtt client is required")
	}
	if cfg.Index == nil {
		panic("spell index service is required")
	}
	if cfg.Spellbooks == nil {
		panic("spellbook repository is required")
	}
	if cfg.ModuleVersion == "" {
		panic("module version is required")
	}

	enricher := cfg.Enricher
	if enricher == nil {
		enricher = func(s *spell.Spell) string {
			return fmt.Sprintf("@UUID[%s]{%s}", s.UUID, s.Name)
		}
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	delay := cfg.DebounceDelay
	if delay == 0 {
		delay = time.Second
	}

	return &service{
		client:     cfg.Client,
		index:      cfg.Index,
		spellbooks: cfg.Spellbooks,
		version:    cfg.ModuleVersion,
		enricher:   enricher,
		clock:      clk,
		logger:     cfg.Logger.With().Str("component", "preloader").Logger(),
		debouncer:  cache.NewDebouncer(delay),
	}
}

func (s *service) Preload(ctx context.Context, viewer Viewer) (*WorkingSet, error) {
	s.mu.Lock()
	s.lastViewer = &viewer
	s.mu.Unlock()

	mode := s.modeFor(viewer)
	ws := &WorkingSet{
		EnrichedSpells: make(map[string]*spell.Enriched),
		Timestamp:      s.clock.Now(),
		ModuleVersion:  s.version,
		Mode:           mode,
	}

	switch mode {
	case ModeGMSetup:
		if err := s.loadAll(ctx, ws); err != nil {
			return nil, err
		}
	case ModeGMParty:
		if err := s.loadParty(ctx, ws); err != nil {
			return nil, err
		}
	case ModePlayer:
		if err := s.loadActor(ctx, ws, viewer.Actor); err != nil {
			return nil, err
		}
	case ModeNoCharacter:
		// empty working set
	}

	spell.SortListsByName(ws.SpellLists)
	s.store.Put(s.version, ws)

	s.logger.Info().
		Str("mode", string(mode)).
		Int("spells", len(ws.EnrichedSpells)).
		Int("lists", len(ws.SpellLists)).
		Msg("preloaded working set")

	return ws, nil
}

func (s *service) Get() *WorkingSet {
	ws, ok := s.store.Get(s.version)
	if !ok {
		return nil
	}
	return ws
}

func (s *service) Invalidate() {
	s.store.Clear()

	s.mu.Lock()
	viewer := s.lastViewer
	s.mu.Unlock()

	if viewer == nil || !viewer.IsGM || !s.client.Settings().SetupMode() {
		return
	}

	v := *viewer
	s.debouncer.Trigger(func() {
		if _, err := s.Preload(context.Background(), v); err != nil {
			s.logger.Error().Err(err).Msg("debounced re-preload failed")
		}
	})
}

func (s *service) ShouldInvalidateForPage(page vtt.PageEvent) bool {
	if page.Type != spell.PageTypeSpells {
		return false
	}
	if page.Subtype == spell.PageSubtypeOther {
		return false
	}
	if page.PackID == "" || page.PackType != vtt.PackTypeJournal {
		return false
	}
	return s.client.Settings().IndexedCompendiums()[page.PackID]
}

func (s *service) modeFor(viewer Viewer) Mode {
	switch {
	case viewer.IsGM && s.client.Settings().SetupMode():
		return ModeGMSetup
	case viewer.IsGM:
		return ModeGMParty
	case viewer.Actor != nil:
		return ModePlayer
	default:
		return ModeNoCharacter
	}
}

// loadAll fills the working set with every indexed spell and list
func (s *service) loadAll(ctx context.Context, ws *WorkingSet) error {
	lists, err := s.index.FetchSpellLists(ctx)
	if err != nil {
		return err
	}
	ws.SpellLists = lists

	spells, err := s.index.FetchAll(ctx)
	if err != nil {
		return err
	}
	for _, sp := range spells {
		ws.EnrichedSpells[sp.UUID] = spell.Enrich(sp, s.enricher(sp))
	}
	return nil
}

// loadParty fills the working set with the union of every player
// actor's relevant spells
func (s *service) loadParty(ctx context.Context, ws *WorkingSet) error {
	players, err := s.client.Actors().PlayerActors(ctx)
	if err != nil {
		return err
	}

	uuids := make(map[string]bool)
	levels := make(map[int]bool)
	listSet := make(map[string]*spell.ListDescriptor)

	allLists, err := s.index.FetchSpellLists(ctx)
	if err != nil {
		return err
	}

	for _, player := range players {
		rel := s.relevantFor(ctx, player, allLists)
		for uuid := range rel.uuids {
			uuids[uuid] = true
		}
		for level := range rel.levels {
			levels[level] = true
		}
		for _, list := range rel.lists {
			listSet[list.UUID] = list
		}
	}

	for _, list := range listSet {
		ws.SpellLists = append(ws.SpellLists, list)
	}

	return s.fillFiltered(ctx, ws, uuids, levels)
}

// loadActor fills the working set with one actor's relevant spells
func (s *service) loadActor(ctx context.Context, ws *WorkingSet, a *actor.Actor) error {
	allLists, err := s.index.FetchSpellLists(ctx)
	if err != nil {
		return err
	}

	rel := s.relevantFor(ctx, a, allLists)
	ws.SpellLists = append(ws.SpellLists, rel.lists...)

	return s.fillFiltered(ctx, ws, rel.uuids, rel.levels)
}

// fillFiltered enriches every indexed spell passing the UUID filter and,
// when the level set is non-empty, the level filter.
func (s *service) fillFiltered(ctx context.Context, ws *WorkingSet, uuids map[string]bool, levels map[int]bool) error {
	spells, err := s.index.FetchAll(ctx)
	if err != nil {
		return err
	}
	for _, sp := range spells {
		if !uuids[sp.UUID] {
			continue
		}
		if len(levels) > 0 && !levels[sp.Level] {
			continue
		}
		ws.EnrichedSpells[sp.UUID] = spell.Enrich(sp, s.enricher(sp))
	}
	return nil
}

type relevant struct {
	uuids  map[string]bool
	levels map[int]bool
	lists  []*spell.ListDescriptor
}

// relevantFor collects the spell UUIDs, castable levels, and assigned
// lists for one actor: the lists keyed to each spellcasting class, plus
// the actor's wizard spellbook membership for wizard-enabled classes.
func (s *service) relevantFor(ctx context.Context, a *actor.Actor, allLists []*spell.ListDescriptor) relevant {
	rel := relevant{
		uuids:  make(map[string]bool),
		levels: make(map[int]bool),
	}

	for _, class := range a.Classes {
		for _, list := range allLists {
			if list.ClassIdentifier != class.Identifier {
				continue
			}
			rel.lists = append(rel.lists, list)
			for uuid := range list.Spells {
				rel.uuids[uuid] = true
			}
		}

		for level := 0; level <= rules.MaxSpellLevel(class.Level); level++ {
			rel.levels[level] = true
		}

		if class.WizardEnabled {
			record, err := s.spellbooks.FindByOwner(ctx, a.ID, class.Identifier)
			if err != nil {
				// No spellbook yet is the common case; skip silently
				continue
			}
			for _, uuid := range record.SpellUUIDs() {
				rel.uuids[uuid] = true
			}
		}
	}

	return rel
}
