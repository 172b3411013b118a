// Package party aggregates prepared-spell state across a party of
// spellcasters into a comparison table and a synergy report.
package party

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/Sayshal/spell-book/internal/clients/vtt"
	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
	apperr "github.com/Sayshal/spell-book/internal/errors"
)

// Warning thresholds for per-actor analysis
const (
	actorConcentrationShare = 0.60
	actorRitualFloor        = 2
	actorRitualMinPrepared  = 5
	actorDamageTypeFloor    = 3
	actorDamageMinPrepared  = 8
)

// Analyzer computes party comparisons. Construct one per viewing
// session; per-actor class-spell lookups are memoized per instance so
// dropped analyzers release their caches with them.
type Analyzer struct {
	client vtt.Client
	logger zerolog.Logger

	actors       []*actor.Actor
	viewerUserID string

	// classSpells memoizes known-spell lookups keyed by actor handle.
	// The map lives and dies with the analyzer instance.
	classSpells map[*actor.Actor]map[string][]string
}

// AnalyzerConfig holds configuration for an analyzer
type AnalyzerConfig struct {
	Client vtt.Client     // Required
	Actors []*actor.Actor // Party members; non-spellcasters are filtered out
	// ViewerUserID scopes visibility. Empty means unrestricted (GM).
	ViewerUserID string
	Logger       zerolog.Logger
}

// NewAnalyzer creates an analyzer over the given party
func NewAnalyzer(cfg *AnalyzerConfig) *Analyzer {
	if cfg.Client == nil {
		panic("vtt client is required")
	}

	var casters []*actor.Actor
	for _, a := range cfg.Actors {
		if a != nil && a.IsSpellcaster() {
			casters = append(casters, a)
		}
	}

	return &Analyzer{
		client:       cfg.Client,
		logger:       cfg.Logger.With().Str("component", "party").Logger(),
		actors:       casters,
		viewerUserID: cfg.ViewerUserID,
		classSpells:  make(map[*actor.Actor]map[string][]string),
	}
}

// Compare builds the full comparison output: actor summaries, the
// per-level spell table, and the synergy report.
func (an *Analyzer) Compare(ctx context.Context) (*Comparison, error) {
	comparison := &Comparison{
		SpellsByLevel: make(map[int]map[string]*SpellStatus),
	}

	report := newSynergyReport()
	perActor := make(map[string]*actorTally)

	for _, a := range an.actors {
		if !an.visible(a) {
			comparison.Actors = append(comparison.Actors, ActorSummary{
				ActorID:       a.ID,
				Name:          a.Name,
				Img:           a.Img,
				HasPermission: false,
				Classes:       []ClassSummary{},
			})
			continue
		}

		summary := ActorSummary{
			ActorID:       a.ID,
			Name:          a.Name,
			Img:           a.Img,
			HasPermission: true,
			Focus:         a.SelectedFocus(),
		}
		if summary.Focus != "" && an.focusConfigured(summary.Focus) {
			report.Focuses[a.ID] = summary.Focus
		}

		tally := &actorTally{damageTypes: make(map[string]bool)}
		perActor[a.ID] = tally

		prepared := an.preparedByClass(a)
		for classID, known := range an.knownByClass(a) {
			class := a.Class(classID)
			classSummary := ClassSummary{
				ClassID:    classID,
				KnownCount: len(known),
			}
			if class != nil {
				classSummary.Name = class.Name
			}

			preparedSet := toSet(prepared[classIdentifier(a, classID)])
			for _, uuid := range known {
				sp := an.resolveSpell(ctx, uuid)
				if sp == nil {
					continue
				}

				status := StatusKnown
				if preparedSet[uuid] {
					status = StatusPrepared
					classSummary.PreparedCount++
					an.analyzePrepared(report, tally, a, sp)
				}
				an.recordStatus(comparison, a, classID, sp, status)
			}

			summary.Classes = append(summary.Classes, classSummary)
		}

		sort.Slice(summary.Classes, func(i, j int) bool {
			return summary.Classes[i].ClassID < summary.Classes[j].ClassID
		})
		comparison.Actors = append(comparison.Actors, summary)
	}

	an.finalize(report, perActor)
	comparison.Synergy = report
	return comparison, nil
}

// Synergy runs the analysis and returns only the report
func (an *Analyzer) Synergy(ctx context.Context) (*SynergyReport, error) {
	comparison, err := an.Compare(ctx)
	if err != nil {
		return nil, err
	}
	return comparison.Synergy, nil
}

// actorTally accumulates per-actor counters used for warnings
type actorTally struct {
	prepared      int
	concentration int
	rituals       int
	damageTypes   map[string]bool
}

func (an *Analyzer) visible(a *actor.Actor) bool {
	if an.viewerUserID == "" {
		return true
	}
	return a.HasObserver(an.viewerUserID)
}

// focusConfigured reports whether the focus is one of the configured
// options. When no options are configured, any focus counts.
func (an *Analyzer) focusConfigured(focus string) bool {
	options := an.client.Settings().AvailableFocusOptions()
	if len(options) == 0 {
		return true
	}
	for _, option := range options {
		if option == focus {
			return true
		}
	}
	return false
}

// knownByClass returns the actor's known spell UUIDs keyed by class ID,
// memoized per actor handle.
func (an *Analyzer) knownByClass(a *actor.Actor) map[string][]string {
	if cached, ok := an.classSpells[a]; ok {
		return cached
	}

	known := make(map[string][]string, len(a.Classes))
	for classID, class := range a.Classes {
		known[classID] = class.KnownSpells
	}
	an.classSpells[a] = known
	return known
}

func (an *Analyzer) preparedByClass(a *actor.Actor) map[string][]string {
	byClass := a.PreparedSpellsByClass()
	if len(byClass) > 0 {
		return byClass
	}

	// Fall back to the flat prepared mirror for actors predating the
	// per-class flag
	flat := a.PreparedSpells()
	if len(flat) == 0 {
		return nil
	}
	byClass = make(map[string][]string)
	for _, class := range a.Classes {
		byClass[class.Identifier] = flat
	}
	return byClass
}

func (an *Analyzer) resolveSpell(ctx context.Context, uuid string) *spell.Spell {
	if doc := an.client.Resolver().FromUUIDSync(uuid); doc != nil && doc.Spell != nil {
		return doc.Spell
	}
	doc, err := an.client.Resolver().FromUUID(ctx, uuid)
	if err != nil || doc.Kind != vtt.DocKindSpell {
		// Unresolvable references are skipped in aggregate contexts
		if err != nil && !apperr.IsResolutionFailure(err) {
			an.logger.Debug().Err(err).Str("uuid", uuid).Msg("spell resolution failed")
		}
		return nil
	}
	return doc.Spell
}

func (an *Analyzer) recordStatus(comparison *Comparison, a *actor.Actor, classID string, sp *spell.Spell, status string) {
	level := comparison.SpellsByLevel[sp.Level]
	if level == nil {
		level = make(map[string]*SpellStatus)
		comparison.SpellsByLevel[sp.Level] = level
	}

	entry := level[sp.Name]
	if entry == nil {
		entry = &SpellStatus{UUID: sp.UUID}
		level[sp.Name] = entry
	}
	entry.ActorStatuses = append(entry.ActorStatuses, ActorStatus{
		ActorID: a.ID,
		ClassID: classID,
		Status:  status,
	})
}

// analyzePrepared folds one prepared spell into the report
func (an *Analyzer) analyzePrepared(report *SynergyReport, tally *actorTally, a *actor.Actor, sp *spell.Spell) {
	report.TotalPreparedSpells++
	tally.prepared++

	report.Duplicates[sp.Name] = append(report.Duplicates[sp.Name], a.ID)

	if sp.RequiresConcentration() {
		report.Concentration.Count++
		report.Concentration.ByActor[a.ID] = append(report.Concentration.ByActor[a.ID], sp.Name)
		tally.concentration++
	}
	if sp.IsRitual() {
		report.Rituals.Count++
		report.Rituals.ByActor[a.ID] = append(report.Rituals.ByActor[a.ID], sp.Name)
		tally.rituals++
	}

	for _, damageType := range sp.DamageTypes() {
		an.addDamageType(report, damageType, a.ID)
		tally.damageTypes[damageType] = true
	}

	if sp.School != "" {
		report.Schools[sp.School]++
	}

	if sp.HasProperty(spell.PropertyVocal) {
		report.Components.Verbal++
	}
	if sp.HasProperty(spell.PropertySomatic) {
		report.Components.Somatic++
	}
	if sp.HasProperty(spell.PropertyMaterial) {
		report.Components.Material++
		if sp.Materials.Cost > 0 {
			report.Components.WithCost++
		}
	}

	if sp.Level >= 0 && sp.Level <= 9 {
		report.LevelHistogram[sp.Level]++
	}

	if sp.SaveAbility != "" {
		report.SaveAbilities[sp.SaveAbility]++
	}

	switch sp.Range.Units {
	case "self":
		report.Ranges.Self++
	case "touch":
		report.Ranges.Touch++
	default:
		report.Ranges.Ranged++
	}

	// Concentration wins over timed: a finite-duration concentration
	// spell is counted once, under concentration.
	switch {
	case sp.RequiresConcentration():
		report.Durations.Concentration++
	case sp.Duration.Units == "inst" || sp.Duration.Units == "":
		report.Durations.Instantaneous++
	default:
		report.Durations.Timed++
	}
}

func (an *Analyzer) addDamageType(report *SynergyReport, damageType, actorID string) {
	for i := range report.DamageTypes {
		if report.DamageTypes[i].Type == damageType {
			report.DamageTypes[i].Count++
			for _, member := range report.DamageTypes[i].Members {
				if member == actorID {
					return
				}
			}
			report.DamageTypes[i].Members = append(report.DamageTypes[i].Members, actorID)
			return
		}
	}
	report.DamageTypes = append(report.DamageTypes, DamageTypeCount{
		Type:    damageType,
		Count:   1,
		Members: []string{actorID},
	})
}

// finalize computes percentages, prunes non-duplicates, sorts the
// damage distribution, and emits warnings and recommendations.
func (an *Analyzer) finalize(report *SynergyReport, perActor map[string]*actorTally) {
	total := report.TotalPreparedSpells
	if total > 0 {
		report.Concentration.Percentage = float64(report.Concentration.Count) / float64(total) * 100
	}

	for name, actors := range report.Duplicates {
		if len(actors) < 2 {
			delete(report.Duplicates, name)
		}
	}

	sort.Slice(report.DamageTypes, func(i, j int) bool {
		return report.DamageTypes[i].Type < report.DamageTypes[j].Type
	})

	for actorID, tally := range perActor {
		var warnings []string
		if tally.prepared > 0 &&
			float64(tally.concentration)/float64(tally.prepared) > actorConcentrationShare {
			warnings = append(warnings, WarnHighConcentration)
		}
		if tally.prepared > actorRitualMinPrepared && tally.rituals < actorRitualFloor {
			warnings = append(warnings, WarnLowRitual)
		}
		if tally.prepared > actorDamageMinPrepared && len(tally.damageTypes) < actorDamageTypeFloor {
			warnings = append(warnings, WarnLimitedDamageTypes)
		}
		if len(warnings) > 0 {
			report.ActorWarnings[actorID] = warnings
		}
	}

	report.Recommendations = an.recommend(report, len(perActor))
}

func (an *Analyzer) recommend(report *SynergyReport, visibleCasters int) []string {
	var recommendations []string
	total := report.TotalPreparedSpells

	if report.Concentration.Percentage > 70 {
		recommendations = append(recommendations, RecommendHighConcentrationLoad)
	}
	if report.Rituals.Count < 3 && total > 20 {
		recommendations = append(recommendations, RecommendLowRitualCoverage)
	}
	if len(report.DamageTypes) < 4 && total > 15 {
		recommendations = append(recommendations, RecommendNarrowDamageTypes)
	}

	if visibleCasters >= 3 {
		distinct := make(map[string]bool)
		for _, focus := range report.Focuses {
			distinct[focus] = true
		}
		if len(distinct) < 3 {
			recommendations = append(recommendations, RecommendOverlappingFocuses)
		}
	}

	if len(report.Duplicates) > 0 {
		recommendations = append(recommendations, RecommendDuplicatePrepared)
	}

	if total > 0 {
		lowLevel := report.LevelHistogram[0] + report.LevelHistogram[1] + report.LevelHistogram[2]
		if float64(lowLevel)/float64(total)*100 > 70 {
			recommendations = append(recommendations, RecommendLowLevelHeavy)
		}
	}

	if total > 0 && len(report.SaveAbilities) < 3 {
		recommendations = append(recommendations, RecommendNarrowSaveCoverage)
	}

	return recommendations
}

func classIdentifier(a *actor.Actor, classID string) string {
	if class := a.Class(classID); class != nil {
		return class.Identifier
	}
	return classID
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
