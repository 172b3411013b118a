// Package spellbook defines the durable per-actor, per-class spellbook
// documents the engine stores in its module-owned compendium pack.
package spellbook

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
)

// FolderName is the well-known folder holding actor spellbooks inside
// the module pack.
const FolderName = "Actor Spellbooks"

// PageSubtypeActorSpellbook marks a spells page as an actor spellbook
// rather than a class spell list.
const PageSubtypeActorSpellbook = "actor-spellbook"

// Flags carried on a spellbook record for lookup by owner
type Flags struct {
	ActorID          string    `json:"actor_id"`
	ClassIdentifier  string    `json:"class_identifier"`
	IsActorSpellbook bool      `json:"is_actor_spellbook"`
	CreationDate     time.Time `json:"creation_date"`
}

// Page is the single spells page inside a spellbook record
type Page struct {
	Type        string          `json:"type"` // always PageTypeSpells
	Identifier  string          `json:"identifier"`
	Subtype     string          `json:"subtype"` // always PageSubtypeActorSpellbook
	Description string          `json:"description"`
	Spells      map[string]bool `json:"spells"` // set of spell UUIDs
}

// Record is a durable spellbook document. At most one record exists for
// a given (actorID, classIdentifier).
type Record struct {
	ID        string                          `json:"id"`
	Name      string                          `json:"name"`
	Folder    string                          `json:"folder"`
	Ownership map[string]actor.OwnershipLevel `json:"ownership"`
	Flags     Flags                           `json:"flags"`
	Page      Page                            `json:"page"`
}

// Identifier builds the stable spellbook identifier for an actor+class:
// kebab-cased actor name, class ID, and a fixed suffix.
func Identifier(actorName, classID string) string {
	return fmt.Sprintf("%s-%s-spellbook", Kebab(actorName), classID)
}

// Kebab lower-cases s and collapses runs of non-alphanumerics to single
// hyphens, trimming any leading or trailing hyphen.
func Kebab(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// New assembles a record for the given actor and class. Ownership copies
// the actor's owner-level users, adds the creating user as owner, and
// defaults everyone else to none. The initial spell set is empty.
func New(a *actor.Actor, classID, creatingUserID string, createdAt time.Time) *Record {
	ownership := map[string]actor.OwnershipLevel{
		"default": actor.OwnershipNone,
	}
	for _, userID := range a.OwnerUserIDs() {
		ownership[userID] = actor.OwnershipOwner
	}
	if creatingUserID != "" {
		ownership[creatingUserID] = actor.OwnershipOwner
	}

	identifier := Identifier(a.Name, classID)
	className := classID
	if class := a.Class(classID); class != nil && class.Name != "" {
		className = class.Name
	}

	return &Record{
		Name:      fmt.Sprintf("%s - %s Spellbook", a.Name, className),
		Folder:    FolderName,
		Ownership: ownership,
		Flags: Flags{
			ActorID:          a.ID,
			ClassIdentifier:  classID,
			IsActorSpellbook: true,
			CreationDate:     createdAt,
		},
		Page: Page{
			Type:        spell.PageTypeSpells,
			Identifier:  identifier,
			Subtype:     PageSubtypeActorSpellbook,
			Description: fmt.Sprintf("Spellbook for %s", a.Name),
			Spells:      make(map[string]bool),
		},
	}
}

// SpellUUIDs returns the record's spell set as a slice. Order is not
// specified; callers needing stable order sort the result.
func (r *Record) SpellUUIDs() []string {
	uuids := make([]string, 0, len(r.Page.Spells))
	for uuid := range r.Page.Spells {
		uuids = append(uuids, uuid)
	}
	return uuids
}

// Contains reports whether the record's spell set includes the UUID
func (r *Record) Contains(uuid string) bool {
	return r.Page.Spells[uuid]
}
