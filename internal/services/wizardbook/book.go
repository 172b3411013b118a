package wizardbook

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
	"github.com/Sayshal/spell-book/internal/domain/spellbook"
	apperr "github.com/Sayshal/spell-book/internal/errors"
	"github.com/Sayshal/spell-book/internal/rules"
)

// AddSpellMeta carries acquisition metadata for paid and scroll learns
type AddSpellMeta struct {
	Cost      int
	TimeSpent int // minutes
}

// Book is the spellbook handle for one (actor, class). Membership and
// budget queries are cached per instance; any mutation invalidates the
// caches.
type Book struct {
	svc      *service
	actor    *actor.Actor
	class    *actor.SpellcastingClass
	recordID string
	rules    rules.Record

	mu              sync.Mutex
	spellbookCache  []string
	maxSpellsCache  *int
	freeSpellsCache *int
}

func newBook(svc *service, a *actor.Actor, class *actor.SpellcastingClass, recordID string) *Book {
	return &Book{
		svc:      svc,
		actor:    a,
		class:    class,
		recordID: recordID,
		rules:    rules.ForClass(a, class.Identifier, svc.client.Settings().ClassRules()),
	}
}

// rebind points the handle at a fresh actor snapshot, recomputes the
// effective rules, and drops the instance caches so subsequent reads
// reflect the new document.
func (b *Book) rebind(a *actor.Actor, class *actor.SpellcastingClass) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.actor = a
	b.class = class
	b.rules = rules.ForClass(a, class.Identifier, b.svc.client.Settings().ClassRules())
	b.spellbookCache = nil
	b.maxSpellsCache = nil
	b.freeSpellsCache = nil
}

// RecordID returns the backing record's document ID
func (b *Book) RecordID() string {
	return b.recordID
}

// Rules returns the effective rule record for this book's class
func (b *Book) Rules() rules.Record {
	return b.rules
}

// GetSpells returns the spellbook's spell UUIDs, duplicates removed, in
// stable order. The result is cached until the next mutation.
func (b *Book) GetSpells(ctx context.Context) ([]string, error) {
	b.mu.Lock()
	if b.spellbookCache != nil {
		cached := append([]string(nil), b.spellbookCache...)
		b.mu.Unlock()
		return cached, nil
	}
	b.mu.Unlock()

	record, err := b.svc.repo.Get(ctx, b.recordID)
	if err != nil {
		return nil, err
	}

	uuids := record.SpellUUIDs()
	sort.Strings(uuids)

	b.mu.Lock()
	b.spellbookCache = uuids
	b.mu.Unlock()

	return append([]string(nil), uuids...), nil
}

// Has reports whether the spellbook contains the given spell UUID
func (b *Book) Has(ctx context.Context, uuid string) (bool, error) {
	uuids, err := b.GetSpells(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range uuids {
		if existing == uuid {
			return true, nil
		}
	}
	return false, nil
}

// AddSpell adds a spell to the spellbook. Sources copied and scroll
// additionally append a copied-spell entry on the actor with the given
// metadata. Duplicate additions do not grow the spellbook set but do
// append a fresh entry.
func (b *Book) AddSpell(ctx context.Context, uuid string, source spellbook.LearningSource, meta *AddSpellMeta) error {
	if uuid == "" {
		return apperr.InvalidArgument("spell UUID is required")
	}

	if err := b.svc.repo.AddSpell(ctx, b.recordID, uuid); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeWriteFailure, "failed to add spell to spellbook")
	}

	if source == spellbook.SourceCopied || source == spellbook.SourceScroll {
		entry := spellbook.CopiedSpellEntry{
			SpellUUID:  uuid,
			DateCopied: b.svc.clock.Now().UTC(),
			FromScroll: source == spellbook.SourceScroll,
		}
		if meta != nil {
			entry.Cost = meta.Cost
			entry.TimeSpent = meta.TimeSpent
		}

		entries := append(b.copiedEntries(), entry)
		flagKey := actor.CopiedSpellsFlag(b.class.Identifier)
		if err := b.svc.client.Actors().SetFlag(ctx, b.actor.ID, flagKey, entries); err != nil {
			return apperr.WrapWithCode(err, apperr.CodeWriteFailure, "failed to record copied spell entry")
		}
	}

	b.Invalidate()
	return nil
}

// CopySpell copies a spell into the spellbook, deducting currency for
// paid copies when the deduction setting is on. It returns false when
// the actor cannot afford the copy; the spellbook is left unchanged.
func (b *Book) CopySpell(ctx context.Context, uuid string, cost, timeSpent int, isFree bool) (bool, error) {
	settings := b.svc.client.Settings()

	if !isFree && settings.DeductSpellLearningCost() {
		if err := b.DeductCurrency(ctx, cost); err != nil {
			if apperr.IsInsufficientFunds(err) {
				b.svc.client.Notifier().Warn(
					fmt.Sprintf("%s cannot afford %d to copy this spell", b.actor.Name, cost))
				return false, nil
			}
			return false, err
		}
	}

	source := spellbook.SourceCopied
	if isFree {
		source = spellbook.SourceFree
	}
	if err := b.AddSpell(ctx, uuid, source, &AddSpellMeta{Cost: cost, TimeSpent: timeSpent}); err != nil {
		return false, err
	}

	b.Invalidate()
	return true, nil
}

// GetCopyingCost returns the cost in base currency to copy the spell
// and whether the copy is free. Cantrips and copies within the free
// budget cost nothing.
func (b *Book) GetCopyingCost(ctx context.Context, sp *spell.Spell) (int, bool, error) {
	if sp.Level == 0 {
		return 0, true, nil
	}
	remaining, err := b.GetRemainingFree(ctx)
	if err != nil {
		return 0, false, err
	}
	if remaining > 0 {
		return 0, true, nil
	}
	return sp.Level * b.rules.SpellLearningCostMultiplier, false, nil
}

// GetCopyingTimeMinutes returns the copy time in minutes, never below 1
func (b *Book) GetCopyingTimeMinutes(sp *spell.Spell) int {
	minutes := sp.Level * b.rules.SpellLearningTimeMultiplier
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// GetCopyingTime returns the copy time as a humanized duration
func (b *Book) GetCopyingTime(sp *spell.Spell) string {
	return FormatMinutes(b.GetCopyingTimeMinutes(sp))
}

// GetMaxAllowed returns the spellbook's spell budget:
// startingSpells + (classLevel - 1) * spellsPerLevel.
func (b *Book) GetMaxAllowed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.maxSpellsCache != nil {
		return *b.maxSpellsCache
	}

	levels := b.class.Level - 1
	if levels < 0 {
		levels = 0
	}
	max := b.rules.StartingSpells + levels*b.rules.SpellsPerLevel
	b.maxSpellsCache = &max
	return max
}

// GetTotalFree returns the free-acquisition budget. Free slots count
// against the same budget as the max-allowed formula.
func (b *Book) GetTotalFree() int {
	return b.GetMaxAllowed()
}

// GetUsedFree returns how many free slots are consumed: the number of
// spellbook members without a paid or scroll entry.
func (b *Book) GetUsedFree(ctx context.Context) (int, error) {
	uuids, err := b.GetSpells(ctx)
	if err != nil {
		return 0, err
	}
	entries := b.copiedEntries()
	used := 0
	for _, uuid := range uuids {
		if !spellbook.HasEntry(entries, uuid) {
			used++
		}
	}
	return used, nil
}

// GetRemainingFree returns the free slots still available, never below
// zero. Cached until the next mutation.
func (b *Book) GetRemainingFree(ctx context.Context) (int, error) {
	b.mu.Lock()
	if b.freeSpellsCache != nil {
		cached := *b.freeSpellsCache
		b.mu.Unlock()
		return cached, nil
	}
	b.mu.Unlock()

	used, err := b.GetUsedFree(ctx)
	if err != nil {
		return 0, err
	}

	remaining := b.GetTotalFree() - used
	if remaining < 0 {
		remaining = 0
	}

	b.mu.Lock()
	b.freeSpellsCache = &remaining
	b.mu.Unlock()

	return remaining, nil
}

// IsFree reports whether copying the spell costs nothing
func (b *Book) IsFree(ctx context.Context, sp *spell.Spell) (bool, error) {
	_, isFree, err := b.GetCopyingCost(ctx, sp)
	return isFree, err
}

// GetLearningSource reports how the given spell entered the spellbook
func (b *Book) GetLearningSource(uuid string) spellbook.LearningSource {
	for _, entry := range b.copiedEntries() {
		if entry.SpellUUID != uuid {
			continue
		}
		if entry.FromScroll {
			return spellbook.SourceScroll
		}
		return spellbook.SourceCopied
	}
	return spellbook.SourceFree
}

// Invalidate clears the instance caches. The next read returns fresh
// data from the repository.
func (b *Book) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.spellbookCache = nil
	b.maxSpellsCache = nil
	b.freeSpellsCache = nil
}

// CanAfford reports whether the actor's wealth covers cost base units
// without mutating currency.
func (b *Book) CanAfford(cost int) bool {
	return CanAfford(cost, b.actor.Currency, b.svc.client.Settings().CurrencyConfig())
}

// DeductCurrency applies the greedy ladder deduction and writes the
// result back to the actor in a single update. The local snapshot is
// refreshed only after the write succeeds.
func (b *Book) DeductCurrency(ctx context.Context, cost int) error {
	config := b.svc.client.Settings().CurrencyConfig()
	updated, err := Deduct(cost, b.actor.Currency, config)
	if err != nil {
		return err
	}

	if err := b.svc.client.Actors().UpdateCurrency(ctx, b.actor.ID, updated); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeWriteFailure, "failed to deduct currency")
	}

	b.actor.Currency = updated
	return nil
}

// copiedEntries reads the actor's copied-spell entries for this class
func (b *Book) copiedEntries() []spellbook.CopiedSpellEntry {
	var entries []spellbook.CopiedSpellEntry
	if _, err := b.actor.GetFlag(actor.CopiedSpellsFlag(b.class.Identifier), &entries); err != nil {
		return nil
	}
	return entries
}

// FormatMinutes renders a minute count as a humanized duration
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := minutes / 60
	rest := minutes % 60

	var hourPart string
	if hours == 1 {
		hourPart = "1 hour"
	} else {
		hourPart = fmt.Sprintf("%d hours", hours)
	}

	if rest == 0 {
		return hourPart
	}
	return fmt.Sprintf("%s %d minutes", hourPart, rest)
}
