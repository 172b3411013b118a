// Package scrolls detects learnable spells on inventory scrolls and
// drives the confirm, pay, record, consume sequence that copies a
// scroll's spell into a wizard spellbook.
package scrolls

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/Sayshal/spell-book/internal/clients/vtt"
	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
	"github.com/Sayshal/spell-book/internal/domain/spellbook"
	apperr "github.com/Sayshal/spell-book/internal/errors"
	"github.com/Sayshal/spell-book/internal/rules"
	"github.com/Sayshal/spell-book/internal/services/wizardbook"
)

// Preparation is the fixed preparation state attached to a scroll
// candidate: a scroll spell is shown but never preparable.
type Preparation struct {
	Prepared bool   `json:"prepared"`
	Disabled bool   `json:"disabled"`
	Mode     string `json:"mode"`
	Reason   string `json:"reason"`
}

// FilterData carries the filterable attributes the UI sorts candidates by
type FilterData struct {
	Name   string `json:"name"`
	Level  int    `json:"level"`
	School string `json:"school"`
}

// Candidate is a learnable spell found on an inventory scroll
type Candidate struct {
	Scroll      *actor.Item
	Spell       *spell.Spell
	SpellUUID   string
	Level       int
	Filter      FilterData
	Preparation Preparation
}

// Service scans inventories for learnable scrolls and learns from them
type Service interface {
	// Scan returns the learnable scroll candidates on the actor. An
	// actor without a wizard-enabled class scans to an empty list.
	Scan(ctx context.Context, a *actor.Actor) ([]*Candidate, error)

	// Learn runs the confirm, pay, record, consume sequence for one
	// candidate. It returns false without side effects on insufficient
	// funds or user cancellation. Callers must not invoke Learn twice
	// for the same scroll.
	Learn(ctx context.Context, a *actor.Actor, candidate *Candidate, book *wizardbook.Book) (bool, error)
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

// NewService creates a new scroll pipeline service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Client == nil {
		panic("vtt client is required")
	}

	return &service{
		client: cfg.Client,
		logger: cfg.Logger.With().Str("component", "scrolls").Logger(),
	}
}

func (s *service) Scan(ctx context.Context, a *actor.Actor) ([]*Candidate, error) {
	if a == nil {
		return nil, apperr.InvalidArgument("actor cannot be nil")
	}

	wizardClasses := a.WizardEnabledClasses()
	if len(wizardClasses) == 0 {
		return nil, nil
	}

	maxLevel := 0
	for _, class := range wizardClasses {
		if level := rules.MaxSpellLevel(class.Level); level > maxLevel {
			maxLevel = level
		}
	}

	var candidates []*Candidate
	for _, scroll := range a.Scrolls() {
		uuid := extractSpellUUID(scroll)
		if uuid == "" {
			continue
		}

		doc, err := s.client.Resolver().FromUUID(ctx, uuid)
		if err != nil || doc.Kind != vtt.DocKindSpell || doc.Spell == nil {
			s.logger.Debug().Str("scroll", scroll.Name).Str("uuid", uuid).
				Msg("scroll reference did not resolve to a spell")
			continue
		}

		sp := doc.Spell
		if sp.Level != 0 && sp.Level > maxLevel {
			continue
		}

		candidates = append(candidates, &Candidate{
			Scroll:    scroll,
			Spell:     sp,
			SpellUUID: uuid,
			Level:     sp.Level,
			Filter: FilterData{
				Name:   sp.Name,
				Level:  sp.Level,
				School: sp.School,
			},
			Preparation: Preparation{
				Prepared: false,
				Disabled: true,
				Mode:     "scroll",
				Reason:   "not preparable",
			},
		})
	}

	return candidates, nil
}

func (s *service) Learn(ctx context.Context, a *actor.Actor, candidate *Candidate, book *wizardbook.Book) (bool, error) {
	if candidate == nil {
		return false, apperr.InvalidArgument("candidate cannot be nil")
	}
	if book == nil {
		return false, apperr.InvalidArgument("wizard book cannot be nil")
	}

	settings := s.client.Settings()

	cost, isFree, err := book.GetCopyingCost(ctx, candidate.Spell)
	if err != nil {
		return false, err
	}
	copyTime := book.GetCopyingTime(candidate.Spell)
	timeSpent := book.GetCopyingTimeMinutes(candidate.Spell)

	// Pre-check affordability without touching currency, so the learn
	// fails before anything durable happens.
	if !isFree && settings.DeductSpellLearningCost() && !book.CanAfford(cost) {
		s.client.Notifier().Warn(
			fmt.Sprintf("%s cannot afford %d to learn %s", a.Name, cost, candidate.Spell.Name))
		return false, nil
	}

	confirmed, err := s.client.Prompter().ConfirmLearn(ctx, &vtt.LearnPrompt{
		ActorName: a.Name,
		SpellName: candidate.Spell.Name,
		SpellUUID: candidate.SpellUUID,
		Cost:      cost,
		IsFree:    isFree,
		Time:      copyTime,
	})
	if err != nil {
		return false, err
	}
	if !confirmed {
		return false, nil
	}

	// Record the spell before the irreversible resource loss: the
	// durable "known" state must precede payment and consumption.
	if err := book.AddSpell(ctx, candidate.SpellUUID, spellbook.SourceScroll, &wizardbook.AddSpellMeta{
		Cost:      cost,
		TimeSpent: timeSpent,
	}); err != nil {
		return false, err
	}

	if !isFree && settings.DeductSpellLearningCost() {
		// Affordability was pre-verified; a failure here is surfaced
		if err := book.DeductCurrency(ctx, cost); err != nil {
			return false, err
		}
	}

	if settings.ConsumeScrollsWhenLearning() {
		if err := s.client.Actors().DeleteItem(ctx, a.ID, candidate.Scroll.ID); err != nil {
			return false, apperr.WrapWithCode(err, apperr.CodeWriteFailure, "failed to consume scroll")
		}
	}

	book.Invalidate()

	s.logger.Info().
		Str("actor_id", a.ID).
		Str("spell", candidate.Spell.Name).
		Int("cost", cost).
		Bool("free", isFree).
		Msg("learned spell from scroll")

	return true, nil
}

// extractSpellUUID walks a scroll's activities for the first valid
// spell reference: a direct spell UUID wins; otherwise an effect
// reference whose matching effect carries an origin is used.
func extractSpellUUID(scroll *actor.Item) string {
	ids := make([]string, 0, len(scroll.Activities))
	for id := range scroll.Activities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		activity := scroll.Activities[id]
		if activity.Spell != nil && activity.Spell.UUID != "" {
			return activity.Spell.UUID
		}
		for _, ref := range activity.Effects {
			if effect := scroll.EffectByID(ref.ID); effect != nil && effect.Origin != "" {
				return effect.Origin
			}
		}
	}
	return ""
}
