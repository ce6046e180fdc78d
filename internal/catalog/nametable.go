package catalog

import (
	"fmt"
	"sort"

	"ponydex/internal/names"
)

const (
	SkipVariant   = "variant"
	SkipDuplicate = "duplicate"
)

type NameTableOptions struct {
	IncludeUnused bool
}

type NameEntry struct {
	ID   string
	Name string
}

// Collision records a name the table could not hold.
type Collision struct {
	ID     string
	Name   string
	Alt    bool
	Reason string
}

type Match struct {
	NameEntry
	Alt bool
}

// NameTable maps canonical names of one category to ids, with every name
// owned by at most one entity.
type NameTable struct {
	Category string
	Names    map[string]NameEntry
	AltNames map[string]NameEntry
	Skipped  []Collision

	options names.Options
}

var hiddenTags = []string{"unused", "npc", "quest"}

func (c *Catalog) BuildNameTable(category string, opts NameTableOptions) (*NameTable, error) {
	ids, err := c.IDs(category)
	if err != nil {
		return nil, err
	}

	lang := c.Language()
	t := &NameTable{
		Category: category,
		Names:    make(map[string]NameEntry),
		AltNames: make(map[string]NameEntry),
		options:  c.nameOptions,
	}

	for _, id := range ids {
		e := c.entities[id]
		if !opts.IncludeUnused && hasAnyTag(e, hiddenTags) {
			continue
		}

		if !t.add(c, e, e.NameFor(lang), false) {
			continue
		}
		for _, alt := range e.AltNamesFor(lang) {
			t.add(c, e, alt, true)
		}
	}

	for _, skipped := range t.Skipped {
		c.logger.Debug("name table collision",
			"category", category,
			"id", skipped.ID,
			"name", skipped.Name,
			"alt", skipped.Alt,
			"reason", skipped.Reason,
		)
	}

	return t, nil
}

// add records name for e and reports whether it was kept. An entity whose
// primary name is dropped gets no alternate names either.
func (t *NameTable) add(c *Catalog, e *Entity, name string, alt bool) bool {
	table := t.Names
	if alt {
		table = t.AltNames
	}

	key := names.Normalize(name, t.options)
	if _, taken := table[key]; !taken {
		table[key] = NameEntry{ID: e.ID, Name: name}
		return true
	}

	if e.IsVariant() {
		t.Skipped = append(t.Skipped, Collision{ID: e.ID, Name: name, Alt: alt, Reason: SkipVariant})
		return false
	}

	qualified := fmt.Sprintf("%s (%s)", name, c.LocationName(e.Location))
	key = names.Normalize(qualified, t.options)
	if _, taken := table[key]; taken {
		t.Skipped = append(t.Skipped, Collision{ID: e.ID, Name: qualified, Alt: alt, Reason: SkipDuplicate})
		return false
	}
	table[key] = NameEntry{ID: e.ID, Name: qualified}
	return true
}

// Match looks name up by canonical form. Alternate names take precedence.
func (t *NameTable) Match(name string) (Match, bool) {
	key := names.Normalize(name, t.options)
	if entry, ok := t.AltNames[key]; ok {
		return Match{NameEntry: entry, Alt: true}, true
	}
	if entry, ok := t.Names[key]; ok {
		return Match{NameEntry: entry}, true
	}
	return Match{}, false
}

// Len returns the number of names and alternate names in the table.
func (t *NameTable) Len() int {
	return len(t.Names) + len(t.AltNames)
}

type tableKey struct {
	key   string
	entry NameEntry
}

func (t *NameTable) sortedKeys() []tableKey {
	keys := make([]tableKey, 0, t.Len())
	for key, entry := range t.Names {
		keys = append(keys, tableKey{key: key, entry: entry})
	}
	for key, entry := range t.AltNames {
		keys = append(keys, tableKey{key: key, entry: entry})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].key != keys[j].key {
			return keys[i].key < keys[j].key
		}
		return keys[i].entry.ID < keys[j].entry.ID
	})
	return keys
}

func hasAnyTag(e *Entity, tags []string) bool {
	for _, tag := range tags {
		if e.HasTag(tag) {
			return true
		}
	}
	return false
}
