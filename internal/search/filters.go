package search

import (
	"errors"
	"fmt"
	"strings"

	"ponydex/internal/catalog"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrUnknownSort   = errors.New("unknown sort")
)

const (
	SortIndex = "index"
	SortName  = "name"
)

type Filter struct {
	Key     string
	Label   string
	Default bool
	Match   func(*catalog.Entity) bool
}

type Sorter struct {
	Key   string
	Label string
}

var filters = map[string][]Filter{
	catalog.CategoryPonies: {
		{Key: "playable", Label: "Playable", Default: true, Match: func(e *catalog.Entity) bool {
			return len(e.Tags) == 0
		}},
		{Key: "pro", Label: "Pro", Default: true, Match: func(e *catalog.Entity) bool {
			pony, ok := e.Pony()
			return ok && pony.Pro != ""
		}},
		{Key: "unused", Label: "Unused", Match: hasTag("unused")},
		{Key: "npc", Label: "NPC", Match: hasTag("npc")},
		{Key: "quest", Label: "Quest", Match: hasTag("quest")},
	},
	catalog.CategoryDecor: {
		{Key: "regular", Label: "Regular", Default: true, Match: func(e *catalog.Entity) bool {
			decor, ok := e.Decor()
			return ok && !decor.Pro.IsPro
		}},
		{Key: "pro", Label: "Pro", Default: true, Match: func(e *catalog.Entity) bool {
			decor, ok := e.Decor()
			return ok && decor.Pro.IsPro
		}},
	},
}

var sorters = []Sorter{
	{Key: SortIndex, Label: "Game order"},
	{Key: SortName, Label: "Alphabetically"},
}

func hasTag(tag string) func(*catalog.Entity) bool {
	return func(e *catalog.Entity) bool {
		return e.HasTag(tag)
	}
}

// Filters returns the filter vocabulary of a category. Categories without
// filters return nil.
func Filters(category string) []Filter {
	return append([]Filter(nil), filters[category]...)
}

func Sorters(string) []Sorter {
	return append([]Sorter(nil), sorters...)
}

// DefaultFilters returns the initial toggle state of a category.
func DefaultFilters(category string) map[string]bool {
	toggles := make(map[string]bool)
	for _, f := range filters[category] {
		toggles[f.Key] = f.Default
	}
	return toggles
}

// ParseFilterList turns the dotted URL form ("playable.pro") into a toggle
// map in which every filter of the category not listed is off.
func ParseFilterList(category, list string) (map[string]bool, error) {
	toggles := make(map[string]bool)
	for _, f := range filters[category] {
		toggles[f.Key] = false
	}
	for _, key := range strings.Split(list, ".") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := toggles[key]; !ok {
			return nil, fmt.Errorf("%w: %s for %s", ErrUnknownFilter, key, category)
		}
		toggles[key] = true
	}
	return toggles, nil
}

// FormatFilterList renders the enabled filters in vocabulary order.
func FormatFilterList(category string, toggles map[string]bool) string {
	var enabled []string
	for _, f := range filters[category] {
		if toggles[f.Key] {
			enabled = append(enabled, f.Key)
		}
	}
	return strings.Join(enabled, ".")
}

func activeFilters(category string, toggles map[string]bool) ([]Filter, bool, error) {
	if len(toggles) == 0 {
		return nil, false, nil
	}

	known := filters[category]
	for key := range toggles {
		if !hasFilter(known, key) {
			return nil, false, fmt.Errorf("%w: %s for %s", ErrUnknownFilter, key, category)
		}
	}

	var active []Filter
	for _, f := range known {
		if toggles[f.Key] {
			active = append(active, f)
		}
	}
	return active, true, nil
}

func hasFilter(list []Filter, key string) bool {
	for _, f := range list {
		if f.Key == key {
			return true
		}
	}
	return false
}

func validSort(key string) bool {
	for _, s := range sorters {
		if s.Key == key {
			return true
		}
	}
	return false
}
