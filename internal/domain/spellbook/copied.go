package spellbook

import "time"

// LearningSource describes how a spell entered a spellbook
type LearningSource string

const (
	SourceFree    LearningSource = "free"
	SourceCopied  LearningSource = "copied"
	SourceScroll  LearningSource = "scroll"
	SourceLevelUp LearningSource = "levelUp"
	SourceInitial LearningSource = "initial"
)

// CopiedSpellEntry records a paid or scroll-learned acquisition. Spells
// present in a spellbook without a matching entry are free acquisitions.
// The list is append-only; it is not reconciled against spellbook
// membership.
type CopiedSpellEntry struct {
	SpellUUID  string    `json:"spellUuid"`
	DateCopied time.Time `json:"dateCopied"`
	Cost       int       `json:"cost"`
	TimeSpent  int       `json:"timeSpent"` // minutes
	FromScroll bool      `json:"fromScroll"`
}

// HasEntry reports whether any entry in the list covers the given UUID
func HasEntry(entries []CopiedSpellEntry, uuid string) bool {
	for _, entry := range entries {
		if entry.SpellUUID == uuid {
			return true
		}
	}
	return false
}
