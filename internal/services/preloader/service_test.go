package preloader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Sayshal/spell-book/internal/clients/vtt"
	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
	"github.com/Sayshal/spell-book/internal/domain/spellbook"
	"github.com/Sayshal/spell-book/internal/repositories/spellbooks"
	"github.com/Sayshal/spell-book/internal/services/spellindex"
)

const testVersion = "1.2.3"

type PreloaderSuite struct {
	suite.Suite
	ctx  context.Context
	host *vtt.Memory
	repo *spellbooks.InMemoryRepository
	svc  Service
}

func (s *PreloaderSuite) SetupTest() {
	s.ctx = context.Background()
	s.host = vtt.NewMemory()
	s.repo = spellbooks.NewInMemoryRepository()

	s.host.Config.Indexed = map[string]bool{
		"srd-spells": true,
		"srd-lists":  true,
	}

	s.host.AddPack(&vtt.MemoryPack{
		PackID:   "srd-spells",
		PackType: vtt.PackTypeItem,
		Contents: []*spell.Spell{
			{UUID: "u-light", Name: "Light", Level: 0},
			{UUID: "u-shield", Name: "Shield", Level: 1},
			{UUID: "u-invis", Name: "Invisibility", Level: 2},
			{UUID: "u-fire", Name: "Fireball", Level: 3},
			{UUID: "u-cure", Name: "Cure Wounds", Level: 1},
		},
	})
	s.host.AddPack(&vtt.MemoryPack{
		PackID:   "srd-lists",
		PackType: vtt.PackTypeJournal,
		Lists: []*spell.ListDescriptor{
			{
				UUID:            "u-wizard-list",
				Name:            "Wizard",
				ClassIdentifier: "wizard",
				Spells: map[string]bool{
					"u-light": true, "u-shield": true, "u-invis": true, "u-fire": true,
				},
			},
			{
				UUID:            "u-cleric-list",
				Name:            "Cleric",
				ClassIdentifier: "cleric",
				Spells:          map[string]bool{"u-cure": true},
			},
		},
	})
	s.host.AddPack(&vtt.MemoryPack{
		PackID:   "homebrew",
		PackType: vtt.PackTypeItem,
		Contents: []*spell.Spell{{UUID: "u-home", Name: "Homebrew Bolt", Level: 1}},
	})

	s.svc = s.newService(0)
}

func (s *PreloaderSuite) newService(debounce time.Duration) Service {
	return NewService(&ServiceConfig{
		Client:        s.host,
		Index:         spellindex.NewService(&spellindex.ServiceConfig{Client: s.host}),
		Spellbooks:    s.repo,
		ModuleVersion: testVersion,
		DebounceDelay: debounce,
	})
}

func TestPreloaderSuite(t *testing.T) {
	suite.Run(t, new(PreloaderSuite))
}

func (s *PreloaderSuite) createWizard(level int) *actor.Actor {
	a := &actor.Actor{
		ID:   "actor-wiz",
		Name: "Gale",
		Ownership: map[string]actor.OwnershipLevel{
			"player1": actor.OwnershipOwner,
		},
		Classes: map[string]*actor.SpellcastingClass{
			"wizard": {
				ID:            "wizard",
				Identifier:    "wizard",
				Level:         level,
				WizardEnabled: true,
			},
		},
	}
	s.host.AddActor(a)
	return a
}

func (s *PreloaderSuite) TestPreload_GMSetupLoadsEverythingIndexed() {
	s.host.Config.Setup = true

	ws, err := s.svc.Preload(s.ctx, Viewer{UserID: "gm", IsGM: true})
	s.Require().NoError(err)

	s.Equal(ModeGMSetup, ws.Mode)
	s.Equal(testVersion, ws.ModuleVersion)
	s.Len(ws.EnrichedSpells, 5, "unindexed packs are excluded")
	s.NotContains(ws.EnrichedSpells, "u-home")
	s.Len(ws.SpellLists, 2)

	// Lists come back sorted by display name
	s.Equal("Cleric", ws.SpellLists[0].Name)
	s.Equal("Wizard", ws.SpellLists[1].Name)
}

func (s *PreloaderSuite) TestPreload_GMPartyUnionsPlayerActors() {
	s.createWizard(1)

	ws, err := s.svc.Preload(s.ctx, Viewer{UserID: "gm", IsGM: true})
	s.Require().NoError(err)

	s.Equal(ModeGMParty, ws.Mode)

	// A level 1 wizard can learn levels 0 and 1 from the wizard list
	s.Contains(ws.EnrichedSpells, "u-light")
	s.Contains(ws.EnrichedSpells, "u-shield")
	s.NotContains(ws.EnrichedSpells, "u-invis")
	s.NotContains(ws.EnrichedSpells, "u-fire")
	s.NotContains(ws.EnrichedSpells, "u-cure", "cleric spells are not party relevant")

	s.Require().Len(ws.SpellLists, 1)
	s.Equal("Wizard", ws.SpellLists[0].Name)
}

func (s *PreloaderSuite) TestPreload_PlayerScopesToOwnActor() {
	a := s.createWizard(3)

	ws, err := s.svc.Preload(s.ctx, Viewer{UserID: "player1", Actor: a})
	s.Require().NoError(err)

	s.Equal(ModePlayer, ws.Mode)

	// Level 3 wizard: spell levels 0 through 2
	s.Contains(ws.EnrichedSpells, "u-light")
	s.Contains(ws.EnrichedSpells, "u-shield")
	s.Contains(ws.EnrichedSpells, "u-invis")
	s.NotContains(ws.EnrichedSpells, "u-fire")
}

func (s *PreloaderSuite) TestPreload_SpellbookMembershipIncluded() {
	a := s.createWizard(1)

	record := spellbook.New(a, "wizard", "player1", time.Now().UTC())
	s.Require().NoError(s.repo.Create(s.ctx, record))
	s.Require().NoError(s.repo.AddSpell(s.ctx, record.ID, "u-cure"))

	ws, err := s.svc.Preload(s.ctx, Viewer{UserID: "player1", Actor: a})
	s.Require().NoError(err)

	// The spellbook spell is relevant even though it is off the class list
	s.Contains(ws.EnrichedSpells, "u-cure")
}

func (s *PreloaderSuite) TestPreload_NoCharacterIsEmpty() {
	ws, err := s.svc.Preload(s.ctx, Viewer{UserID: "player2"})
	s.Require().NoError(err)

	s.Equal(ModeNoCharacter, ws.Mode)
	s.Empty(ws.EnrichedSpells)
	s.Empty(ws.SpellLists)
}

func (s *PreloaderSuite) TestPreload_SkipsUnreadablePack() {
	s.host.Config.Setup = true
	s.host.Config.Indexed["broken"] = true
	s.host.AddPack(&vtt.MemoryPack{
		PackID:   "broken",
		PackType: vtt.PackTypeItem,
		ReadErr:  errors.New("pack read failed"),
	})

	ws, err := s.svc.Preload(s.ctx, Viewer{UserID: "gm", IsGM: true})
	s.Require().NoError(err)
	s.Len(ws.EnrichedSpells, 5)
}

func (s *PreloaderSuite) TestPreload_EnrichesWithContentLinks() {
	s.host.Config.Setup = true

	ws, err := s.svc.Preload(s.ctx, Viewer{UserID: "gm", IsGM: true})
	s.Require().NoError(err)

	enriched := ws.EnrichedSpells["u-fire"]
	s.Require().NotNil(enriched)
	s.Equal("Fireball", enriched.Name)
	s.Equal("@UUID[u-fire]{Fireball}", enriched.IconLink)
}

func (s *PreloaderSuite) TestGet_ReturnsCachedSetUntilInvalidated() {
	s.Nil(s.svc.Get(), "empty before any preload")

	_, err := s.svc.Preload(s.ctx, Viewer{UserID: "player2"})
	s.Require().NoError(err)
	s.NotNil(s.svc.Get())

	s.svc.Invalidate()
	s.Nil(s.svc.Get())
}

func (s *PreloaderSuite) TestInvalidate_DebouncedRepreloadForGMSetup() {
	s.host.Config.Setup = true
	svc := s.newService(20 * time.Millisecond)

	_, err := svc.Preload(s.ctx, Viewer{UserID: "gm", IsGM: true})
	s.Require().NoError(err)

	// A burst of invalidations coalesces into one re-preload
	svc.Invalidate()
	svc.Invalidate()
	svc.Invalidate()
	s.Nil(svc.Get())

	s.Eventually(func() bool {
		return svc.Get() != nil
	}, time.Second, 5*time.Millisecond)
}

func (s *PreloaderSuite) TestInvalidate_NoRepreloadOutsideSetup() {
	svc := s.newService(10 * time.Millisecond)

	_, err := svc.Preload(s.ctx, Viewer{UserID: "gm", IsGM: true})
	s.Require().NoError(err)

	svc.Invalidate()

	time.Sleep(50 * time.Millisecond)
	s.Nil(svc.Get(), "no scheduled re-preload outside setup mode")
}

func (s *PreloaderSuite) TestShouldInvalidateForPage() {
	tests := []struct {
		name string
		page vtt.PageEvent
		want bool
	}{
		{
			name: "indexed class page",
			page: vtt.PageEvent{
				Type:     spell.PageTypeSpells,
				Subtype:  spell.PageSubtypeClass,
				PackID:   "srd-lists",
				PackType: vtt.PackTypeJournal,
			},
			want: true,
		},
		{
			name: "wrong page type",
			page: vtt.PageEvent{
				Type:     "text",
				PackID:   "srd-lists",
				PackType: vtt.PackTypeJournal,
			},
			want: false,
		},
		{
			name: "other subtype",
			page: vtt.PageEvent{
				Type:     spell.PageTypeSpells,
				Subtype:  spell.PageSubtypeOther,
				PackID:   "srd-lists",
				PackType: vtt.PackTypeJournal,
			},
			want: false,
		},
		{
			name: "world page outside any pack",
			page: vtt.PageEvent{
				Type:     spell.PageTypeSpells,
				Subtype:  spell.PageSubtypeClass,
				PackType: vtt.PackTypeJournal,
			},
			want: false,
		},
		{
			name: "unindexed pack",
			page: vtt.PageEvent{
				Type:     spell.PageTypeSpells,
				Subtype:  spell.PageSubtypeClass,
				PackID:   "homebrew-lists",
				PackType: vtt.PackTypeJournal,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, s.svc.ShouldInvalidateForPage(tt.page))
		})
	}
}
