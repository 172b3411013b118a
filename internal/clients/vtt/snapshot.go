package vtt

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Sayshal/spell-book/internal/domain/actor"
	"github.com/Sayshal/spell-book/internal/domain/spell"
)

// SnapshotPack is the serialized form of a compendium pack in a world
// export.
type SnapshotPack struct {
	ID     string                  `json:"id"`
	Label  string                  `json:"label"`
	Type   PackType                `json:"type"`
	Spells []*spell.Spell          `json:"spells,omitempty"`
	Lists  []*spell.ListDescriptor `json:"lists,omitempty"`
}

// Snapshot is a world export: settings, compendium packs, and actors.
// The admin CLI runs the engine against a snapshot instead of a live
// host.
type Snapshot struct {
	Settings *MemorySettings `json:"settings"`
	Packs    []SnapshotPack  `json:"packs"`
	Actors   []*actor.Actor  `json:"actors"`
}

// LoadSnapshot reads a world export file and builds an in-memory host
// from it.
func LoadSnapshot(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot builds an in-memory host from serialized snapshot data
func ParseSnapshot(data []byte) (*Memory, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	host := NewMemory()
	if snap.Settings != nil {
		if snap.Settings.Indexed == nil {
			snap.Settings.Indexed = make(map[string]bool)
		}
		host.Config = snap.Settings
	}
	for _, p := range snap.Packs {
		host.AddPack(&MemoryPack{
			PackID:    p.ID,
			PackLabel: p.Label,
			PackType:  p.Type,
			Contents:  p.Spells,
			Lists:     p.Lists,
		})
	}
	for _, a := range snap.Actors {
		host.AddActor(a)
	}
	return host, nil
}
