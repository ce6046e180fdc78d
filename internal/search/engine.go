// Package search computes the visible, ordered id list of a catalog or
// inventory view from a text query, filter toggles and a sort choice.
package search

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"ponydex/internal/catalog"
)

type Scope int

const (
	ScopeCatalog Scope = iota
	ScopeInventory
)

type Query struct {
	Category string
	Text     string
	Filters  map[string]bool
	Sort     string
	Reverse  bool
	Scope    Scope
}

// Inventory is the part of the owned-item store the engine needs for
// inventory-scoped queries.
type Inventory interface {
	OwnedIDs(category string) []string
	DerivedHouses() []string
}

type Engine struct {
	catalog   *catalog.Catalog
	inventory Inventory
}

func NewEngine(cat *catalog.Catalog, inv Inventory) *Engine {
	return &Engine{catalog: cat, inventory: inv}
}

func (e *Engine) Filters(category string) []Filter {
	return Filters(category)
}

func (e *Engine) Sorters(category string) []Sorter {
	return Sorters(category)
}

// ComputeVisibleIDs returns the ids matching q. Entities whose sort keys
// compare equal stay in catalog order, in either direction.
func (e *Engine) ComputeVisibleIDs(q Query) ([]string, error) {
	sortKey := q.Sort
	if sortKey == "" {
		sortKey = SortIndex
	}
	if !validSort(sortKey) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSort, q.Sort)
	}

	base, err := e.baseIDs(q)
	if err != nil {
		return nil, err
	}

	matched, err := e.catalog.SearchByName(q.Text, q.Category)
	if err != nil {
		return nil, err
	}
	matchedSet := make(map[string]struct{}, len(matched))
	for _, id := range matched {
		matchedSet[id] = struct{}{}
	}

	active, filtered, err := activeFilters(q.Category, q.Filters)
	if err != nil {
		return nil, err
	}

	entities := make([]*catalog.Entity, 0, len(base))
	for _, id := range base {
		if _, ok := matchedSet[id]; !ok {
			continue
		}
		ent := e.catalog.Get(id, q.Category)
		if ent == nil {
			continue
		}
		if filtered && !anyMatch(active, ent) {
			continue
		}
		entities = append(entities, ent)
	}

	e.sortEntities(entities, sortKey, q.Reverse)

	ids := make([]string, len(entities))
	for i, ent := range entities {
		ids[i] = ent.ID
	}
	return ids, nil
}

func (e *Engine) baseIDs(q Query) ([]string, error) {
	if q.Scope == ScopeCatalog {
		return e.catalog.IDs(q.Category)
	}

	if e.inventory == nil {
		return nil, errors.New("inventory scope requires an inventory")
	}
	if !e.catalog.HasCategory(q.Category) {
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownCategory, q.Category)
	}

	var ids []string
	if q.Category == catalog.CategoryHouses {
		ids = e.inventory.DerivedHouses()
	} else {
		ids = e.inventory.OwnedIDs(q.Category)
	}

	ids = append([]string(nil), ids...)
	sort.SliceStable(ids, func(i, j int) bool {
		return e.order(ids[i]) < e.order(ids[j])
	})
	return ids, nil
}

func (e *Engine) order(id string) int {
	if ent := e.catalog.Get(id, ""); ent != nil {
		return ent.Order
	}
	return -1
}

func (e *Engine) sortEntities(entities []*catalog.Entity, key string, reverse bool) {
	direction := 1
	if reverse {
		direction = -1
	}

	var compare func(a, b *catalog.Entity) int
	switch key {
	case SortName:
		collator := collate.New(e.languageTag())
		lang := e.catalog.Language()
		compare = func(a, b *catalog.Entity) int {
			return collator.CompareString(a.NameFor(lang), b.NameFor(lang))
		}
	default:
		compare = func(a, b *catalog.Entity) int {
			return a.Index - b.Index
		}
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return direction*compare(entities[i], entities[j]) < 0
	})
}

func (e *Engine) languageTag() language.Tag {
	tag, err := language.Parse(e.catalog.LanguageCode())
	if err != nil {
		return language.English
	}
	return tag
}

func anyMatch(active []Filter, ent *catalog.Entity) bool {
	for _, f := range active {
		if f.Match(ent) {
			return true
		}
	}
	return false
}
