package inventory

import (
	"encoding/json"
	"fmt"
	"maps"

	"ponydex/internal/catalog"
)

const (
	CurrentVersion = 1
	MaxLevel       = 5
)

// Record is the per-entity ownership state. Leveled records carry a
// progress level, persisted as "stars".
type Record struct {
	Owned    bool
	Level    int
	Minigame string
	Leveled  bool
}

type recordJSON struct {
	Owned    bool    `json:"owned"`
	Stars    *int    `json:"stars,omitempty"`
	Minigame *string `json:"minigame,omitempty"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{Owned: r.Owned}
	if r.Leveled {
		level, minigame := r.Level, r.Minigame
		out.Stars = &level
		out.Minigame = &minigame
	}
	return json.Marshal(out)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Record{Owned: in.Owned}
	if in.Stars != nil {
		r.Leveled = true
		r.Level = *in.Stars
	}
	if in.Minigame != nil {
		r.Minigame = *in.Minigame
	}
	return nil
}

type PlayerInfo struct {
	JoinDate      string  `json:"join_date"`
	TotalPlaytime float64 `json:"total_playtime"`
}

type Holdings struct {
	Categories map[string]map[string]Record `json:"categories"`
}

// Snapshot is the persisted save. Its JSON layout matches the browser
// companion's localStorage save so either can read the other's data.
type Snapshot struct {
	Version    int               `json:"version"`
	PlayerInfo PlayerInfo        `json:"player_info"`
	Inventory  Holdings          `json:"inventory"`
	Notes      map[string]string `json:"notes"`
	Lists      []json.RawMessage `json:"lists"`
}

var defaultBuckets = []string{catalog.CategoryPonies, catalog.CategoryShops}

func NewSnapshot() Snapshot {
	s := Snapshot{
		Version: CurrentVersion,
		Inventory: Holdings{
			Categories: make(map[string]map[string]Record),
		},
		Notes: make(map[string]string),
		Lists: []json.RawMessage{},
	}
	for _, category := range defaultBuckets {
		s.Inventory.Categories[category] = make(map[string]Record)
	}
	return s
}

func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Version:    s.Version,
		PlayerInfo: s.PlayerInfo,
		Inventory: Holdings{
			Categories: make(map[string]map[string]Record, len(s.Inventory.Categories)),
		},
		Notes: maps.Clone(s.Notes),
		Lists: make([]json.RawMessage, len(s.Lists)),
	}
	for category, bucket := range s.Inventory.Categories {
		out.Inventory.Categories[category] = maps.Clone(bucket)
	}
	for i, list := range s.Lists {
		out.Lists[i] = append(json.RawMessage(nil), list...)
	}
	if out.Notes == nil {
		out.Notes = make(map[string]string)
	}
	return out
}

// DecodeSnapshot parses a stored save and upgrades older layouts. The
// second result reports whether anything was migrated.
func DecodeSnapshot(data []byte) (Snapshot, bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, false, fmt.Errorf("decoding save: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, false, fmt.Errorf("decoding save: %w", err)
	}

	migrated := false

	if legacy, ok := raw["total_playtime"]; ok {
		var playtime float64
		if err := json.Unmarshal(legacy, &playtime); err != nil {
			return Snapshot{}, false, fmt.Errorf("decoding legacy total_playtime: %w", err)
		}
		s.PlayerInfo = PlayerInfo{TotalPlaytime: playtime}
		migrated = true
	}

	if s.Version < CurrentVersion {
		s.Version = CurrentVersion
		migrated = true
	}
	if s.Inventory.Categories == nil {
		s.Inventory.Categories = make(map[string]map[string]Record)
		migrated = true
	}
	for _, category := range defaultBuckets {
		if s.Inventory.Categories[category] == nil {
			s.Inventory.Categories[category] = make(map[string]Record)
			migrated = true
		}
	}
	if s.Notes == nil {
		s.Notes = make(map[string]string)
		migrated = true
	}
	if s.Lists == nil {
		s.Lists = []json.RawMessage{}
		migrated = true
	}

	return s, migrated, nil
}

func (s *Snapshot) record(id string) (Record, bool) {
	for _, bucket := range s.Inventory.Categories {
		if rec, ok := bucket[id]; ok {
			return rec, true
		}
	}
	return Record{}, false
}

// setOwned applies the ownership rules: max-level entities are pinned to
// MaxLevel, an explicit level wins otherwise, and an existing level is kept
// when none is given.
func (s *Snapshot) setOwned(e *catalog.Entity, owned bool, level *int) Record {
	bucket := s.Inventory.Categories[e.Category]

	if !owned {
		if bucket != nil {
			delete(bucket, e.ID)
		}
		return Record{}
	}

	if bucket == nil {
		bucket = make(map[string]Record)
		s.Inventory.Categories[e.Category] = bucket
	}

	rec, exists := bucket[e.ID]
	if !exists && e.Leveled() {
		rec = Record{Leveled: true}
	}
	if e.Leveled() {
		rec.Leveled = true
		switch {
		case e.MaxLevel():
			rec.Level = MaxLevel
		case level != nil:
			rec.Level = *level
		}
	}
	rec.Owned = true
	bucket[e.ID] = rec
	return rec
}
