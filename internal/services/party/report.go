package party

// Per-actor warning identifiers. Localization is the UI's concern.
const (
	WarnHighConcentration  = "high-concentration"
	WarnLowRitual          = "low-ritual"
	WarnLimitedDamageTypes = "limited-damage-types"
)

// Party-wide recommendation identifiers
const (
	RecommendHighConcentrationLoad = "high-concentration-load"
	RecommendLowRitualCoverage     = "low-ritual-coverage"
	RecommendNarrowDamageTypes     = "narrow-damage-types"
	RecommendOverlappingFocuses    = "overlapping-focuses"
	RecommendDuplicatePrepared     = "duplicate-prepared-spells"
	RecommendLowLevelHeavy         = "low-level-heavy"
	RecommendNarrowSaveCoverage    = "narrow-save-coverage"
)

// Spell preparation statuses in the comparison output
const (
	StatusPrepared = "prepared"
	StatusKnown    = "known"
)

// ConcentrationLoad summarizes the party's concentration exposure
type ConcentrationLoad struct {
	Count      int                 `json:"count"`
	Percentage float64             `json:"percentage"`
	ByActor    map[string][]string `json:"by_actor"` // actorID -> spell names
}

// RitualCoverage summarizes the party's ritual options
type RitualCoverage struct {
	Count   int                 `json:"count"`
	ByActor map[string][]string `json:"by_actor"` // actorID -> spell names
}

// DamageTypeCount is one damage type's spread across the party
type DamageTypeCount struct {
	Type    string   `json:"type"`
	Count   int      `json:"count"`
	Members []string `json:"members"` // actor IDs contributing the type
}

// ComponentCounts tallies component requirements over prepared spells
type ComponentCounts struct {
	Verbal   int `json:"verbal"`
	Somatic  int `json:"somatic"`
	Material int `json:"material"`
	WithCost int `json:"with_cost"`
}

// RangeBuckets buckets prepared spells by targeting range
type RangeBuckets struct {
	Self   int `json:"self"`
	Touch  int `json:"touch"`
	Ranged int `json:"ranged"`
}

// DurationBuckets buckets prepared spells by duration class. A spell
// with a finite duration that also requires concentration counts only
// as concentration.
type DurationBuckets struct {
	Instantaneous int `json:"instantaneous"`
	Concentration int `json:"concentration"`
	Timed         int `json:"timed"`
}

// SynergyReport is the aggregate analysis over the visible party. It is
// plain data: scalars, arrays, and string identifiers only.
type SynergyReport struct {
	TotalPreparedSpells int                 `json:"total_prepared_spells"`
	Concentration       ConcentrationLoad   `json:"concentration"`
	Rituals             RitualCoverage      `json:"rituals"`
	DamageTypes         []DamageTypeCount   `json:"damage_types"`
	Schools             map[string]int      `json:"schools"`
	Components          ComponentCounts     `json:"components"`
	LevelHistogram      [10]int             `json:"level_histogram"`
	SaveAbilities       map[string]int      `json:"save_abilities"`
	Ranges              RangeBuckets        `json:"ranges"`
	Durations           DurationBuckets     `json:"durations"`
	Duplicates          map[string][]string `json:"duplicates"` // spell name -> actor IDs
	Focuses             map[string]string   `json:"focuses"`    // actorID -> focus
	ActorWarnings       map[string][]string `json:"actor_warnings"`
	Recommendations     []string            `json:"recommendations"`
}

// ActorStatus marks one actor's relationship to a spell
type ActorStatus struct {
	ActorID string `json:"actor_id"`
	ClassID string `json:"class_id"`
	Status  string `json:"status"` // prepared | known
}

// SpellStatus is one spell's presence across the party
type SpellStatus struct {
	UUID          string        `json:"uuid"`
	ActorStatuses []ActorStatus `json:"actor_statuses"`
}

// ClassSummary is one spellcasting class on a compared actor
type ClassSummary struct {
	ClassID       string `json:"class_id"`
	Name          string `json:"name"`
	KnownCount    int    `json:"known_count"`
	PreparedCount int    `json:"prepared_count"`
}

// ActorSummary is one actor's row in the comparison. Actors the viewer
// cannot observe appear as placeholders with HasPermission false and an
// empty class list; they contribute nothing to aggregates.
type ActorSummary struct {
	ActorID       string         `json:"actor_id"`
	Name          string         `json:"name"`
	Img           string         `json:"img"`
	HasPermission bool           `json:"has_permission"`
	Focus         string         `json:"focus,omitempty"`
	Classes       []ClassSummary `json:"classes"`
}

// Comparison is the full party comparison output
type Comparison struct {
	Actors        []ActorSummary                  `json:"actors"`
	SpellsByLevel map[int]map[string]*SpellStatus `json:"spells_by_level"` // level -> spell name
	Synergy       *SynergyReport                  `json:"synergy"`
}

// newSynergyReport initializes an empty analysis structure
func newSynergyReport() *SynergyReport {
	return &SynergyReport{
		Concentration: ConcentrationLoad{ByActor: make(map[string][]string)},
		Rituals:       RitualCoverage{ByActor: make(map[string][]string)},
		Schools:       make(map[string]int),
		SaveAbilities: make(map[string]int),
		Duplicates:    make(map[string][]string),
		Focuses:       make(map[string]string),
		ActorWarnings: make(map[string][]string),
	}
}
