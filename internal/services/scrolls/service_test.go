package scrolls

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Sayshal/spell-book/internal/clients/vtt"
	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
	"github.com/Sayshal/spell-book/internal/domain/spellbook"
	apperr "github.com/Sayshal/spell-book/internal/errors"
	"github.com/Sayshal/spell-book/internal/repositories/spellbooks"
	"github.com/Sayshal/spell-book/internal/rules"
	"github.com/Sayshal/spell-book/internal/services/wizardbook"
)

type ScrollsSuite struct {
	suite.Suite
	ctx   context.Context
	host  *vtt.Memory
	repo  *spellbooks.InMemoryRepository
	books wizardbook.Service
	svc   Service
}

func (s *ScrollsSuite) SetupTest() {
	s.ctx = context.Background()
	s.host = vtt.NewMemory()
	s.repo = spellbooks.NewInMemoryRepository()

	s.host.AddPack(&vtt.MemoryPack{
		PackID:   "srd-spells",
		PackType: vtt.PackTypeItem,
		Contents: []*spell.Spell{
			{UUID: "u-light", Name: "Light", Level: 0, School: "evo"},
			{UUID: "u-shield", Name: "Shield", Level: 1, School: "abj"},
			{UUID: "u-fire", Name: "Fireball", Level: 3, School: "evo"},
		},
	})

	s.books = wizardbook.NewService(&wizardbook.ServiceConfig{
		Client:     s.host,
		Repository: s.repo,
	})
	s.svc = NewService(&ServiceConfig{Client: s.host})
}

func TestScrollsSuite(t *testing.T) {
	suite.Run(t, new(ScrollsSuite))
}

func (s *ScrollsSuite) createWizard(level int, scrolls ...*actor.Item) *actor.Actor {
	a := &actor.Actor{
		ID:   "actor-wiz",
		Name: "Gale",
		Ownership: map[string]actor.OwnershipLevel{
			"player1": actor.OwnershipOwner,
		},
		Currency:  map[string]int{"gp": 1000},
		Inventory: scrolls,
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

func scrollWithSpellRef(id, spellUUID string) *actor.Item {
	return &actor.Item{
		ID:      id,
		Name:    "Spell Scroll",
		Type:    actor.ItemTypeConsumable,
		Subtype: actor.ConsumableScroll,
		Activities: map[string]spell.Activity{
			"a1": {ID: "a1", Spell: &spell.SpellReference{UUID: spellUUID}},
		},
	}
}

func scrollWithEffectOrigin(id, origin string) *actor.Item {
	return &actor.Item{
		ID:      id,
		Name:    "Spell Scroll",
		Type:    actor.ItemTypeConsumable,
		Subtype: actor.ConsumableScroll,
		Activities: map[string]spell.Activity{
			"a1": {ID: "a1", Effects: []spell.EffectReference{{ID: "e1"}}},
		},
		Effects: []actor.ItemEffect{{ID: "e1", Origin: origin}},
	}
}

// exhaustFreeBudget zeroes the free-copy allowance so costs apply
func (s *ScrollsSuite) exhaustFreeBudget() {
	zero := 0
	s.host.Config.ClassRuleRecords = map[string]rules.Overrides{
		"wizard": {StartingSpells: &zero, SpellsPerLevel: &zero},
	}
}

func (s *ScrollsSuite) getBook(a *actor.Actor) *wizardbook.Book {
	book, err := s.books.GetBook(s.ctx, a, "wizard", "player1")
	s.Require().NoError(err)
	return book
}

func (s *ScrollsSuite) TestScan_NoWizardClassIsEmpty() {
	a := &actor.Actor{
		ID: "actor-cleric",
		Classes: map[string]*actor.SpellcastingClass{
			"cleric": {ID: "cleric", Identifier: "cleric", Level: 5},
		},
		Inventory: []*actor.Item{scrollWithSpellRef("i1", "u-shield")},
	}
	s.host.AddActor(a)

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)
	s.Empty(candidates)
}

func (s *ScrollsSuite) TestScan_DirectSpellReference() {
	a := s.createWizard(3, scrollWithSpellRef("i1", "u-shield"))

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)
	s.Require().Len(candidates, 1)

	c := candidates[0]
	s.Equal("u-shield", c.SpellUUID)
	s.Equal("Shield", c.Spell.Name)
	s.Equal(1, c.Level)
	s.Equal("abj", c.Filter.School)
	s.True(c.Preparation.Disabled, "scroll spells are never preparable")
	s.Equal("scroll", c.Preparation.Mode)
}

func (s *ScrollsSuite) TestScan_EffectOriginFallback() {
	a := s.createWizard(3, scrollWithEffectOrigin("i1", "u-shield"))

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)
	s.Require().Len(candidates, 1)
	s.Equal("u-shield", candidates[0].SpellUUID)
}

func (s *ScrollsSuite) TestScan_ExcludesSpellsAboveCastableLevel() {
	a := s.createWizard(1,
		scrollWithSpellRef("i1", "u-shield"),
		scrollWithSpellRef("i2", "u-fire"),
		scrollWithSpellRef("i3", "u-light"),
	)

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)
	s.Require().Len(candidates, 2)

	var uuids []string
	for _, c := range candidates {
		uuids = append(uuids, c.SpellUUID)
	}
	s.ElementsMatch(uuids, []string{"u-shield", "u-light"})
}

func (s *ScrollsSuite) TestScan_SkipsUnresolvableReferences() {
	a := s.createWizard(3,
		scrollWithSpellRef("i1", "Compendium.gone.Item.missing"),
		&actor.Item{
			ID:      "i2",
			Name:    "Blank Scroll",
			Type:    actor.ItemTypeConsumable,
			Subtype: actor.ConsumableScroll,
		},
	)

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)
	s.Empty(candidates)
}

func (s *ScrollsSuite) TestLearn_HappyPathFreeBudget() {
	s.host.Config.ConsumeScrolls = true
	a := s.createWizard(3, scrollWithSpellRef("i1", "u-shield"))
	book := s.getBook(a)

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)
	s.Require().Len(candidates, 1)

	var prompted *vtt.LearnPrompt
	s.host.Confirm = vtt.FuncPrompter(func(_ context.Context, p *vtt.LearnPrompt) (bool, error) {
		prompted = p
		return true, nil
	})

	learned, err := s.svc.Learn(s.ctx, a, candidates[0], book)
	s.Require().NoError(err)
	s.True(learned)

	s.Require().NotNil(prompted)
	s.True(prompted.IsFree)
	s.Zero(prompted.Cost)
	s.Equal("Shield", prompted.SpellName)

	has, err := book.Has(s.ctx, "u-shield")
	s.Require().NoError(err)
	s.True(has)
	s.Equal(spellbook.SourceScroll, book.GetLearningSource("u-shield"))

	s.Nil(a.Item("i1"), "scroll consumed")
}

func (s *ScrollsSuite) TestLearn_PaidDeductsCurrency() {
	s.host.Config.DeductCost = true
	s.exhaustFreeBudget()
	a := s.createWizard(3, scrollWithSpellRef("i1", "u-shield"))
	book := s.getBook(a)

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)

	learned, err := s.svc.Learn(s.ctx, a, candidates[0], book)
	s.Require().NoError(err)
	s.True(learned)

	// Level 1 at the default 50 per level
	s.Equal(950, a.Currency["gp"])
}

func (s *ScrollsSuite) TestLearn_InsufficientFundsRefusesBeforeAnyChange() {
	s.host.Config.DeductCost = true
	s.host.Config.ConsumeScrolls = true
	s.exhaustFreeBudget()
	a := s.createWizard(3, scrollWithSpellRef("i1", "u-shield"))
	a.Currency = map[string]int{"gp": 10}
	book := s.getBook(a)

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)

	prompterCalled := false
	s.host.Confirm = vtt.FuncPrompter(func(context.Context, *vtt.LearnPrompt) (bool, error) {
		prompterCalled = true
		return true, nil
	})

	learned, err := s.svc.Learn(s.ctx, a, candidates[0], book)
	s.Require().NoError(err)
	s.False(learned)

	s.False(prompterCalled, "affordability check precedes the prompt")
	s.NotEmpty(s.host.Notify.Warnings)
	s.Equal(10, a.Currency["gp"])
	s.NotNil(a.Item("i1"), "scroll untouched")

	has, err := book.Has(s.ctx, "u-shield")
	s.Require().NoError(err)
	s.False(has)
}

func (s *ScrollsSuite) TestLearn_UserCancelLeavesEverything() {
	s.host.Config.ConsumeScrolls = true
	a := s.createWizard(3, scrollWithSpellRef("i1", "u-shield"))
	book := s.getBook(a)

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)

	s.host.Confirm = vtt.FuncPrompter(func(context.Context, *vtt.LearnPrompt) (bool, error) {
		return false, nil
	})

	learned, err := s.svc.Learn(s.ctx, a, candidates[0], book)
	s.Require().NoError(err)
	s.False(learned)

	s.NotNil(a.Item("i1"))
	has, err := book.Has(s.ctx, "u-shield")
	s.Require().NoError(err)
	s.False(has)
}

func (s *ScrollsSuite) TestLearn_ConsumeSettingOffKeepsScroll() {
	a := s.createWizard(3, scrollWithSpellRef("i1", "u-shield"))
	book := s.getBook(a)

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)

	learned, err := s.svc.Learn(s.ctx, a, candidates[0], book)
	s.Require().NoError(err)
	s.True(learned)

	s.NotNil(a.Item("i1"))
}

func (s *ScrollsSuite) TestLearn_ConsumeFailureSurfacesAfterRecording() {
	s.host.Config.ConsumeScrolls = true
	s.host.DeleteItemErr = errors.New("host rejected the delete")
	a := s.createWizard(3, scrollWithSpellRef("i1", "u-shield"))
	book := s.getBook(a)

	candidates, err := s.svc.Scan(s.ctx, a)
	s.Require().NoError(err)

	learned, err := s.svc.Learn(s.ctx, a, candidates[0], book)
	s.Require().Error(err)
	s.False(learned)
	s.True(apperr.IsWriteFailure(err))

	// The spell was durably recorded before the consume step failed
	has, hasErr := book.Has(s.ctx, "u-shield")
	s.Require().NoError(hasErr)
	s.True(has)
}

func (s *ScrollsSuite) TestLearn_NilCandidate() {
	a := s.createWizard(3)
	book := s.getBook(a)

	_, err := s.svc.Learn(s.ctx, a, nil, book)
	s.Require().Error(err)
	s.Equal(apperr.CodeInvalidArgument, apperr.GetCode(err))
}
