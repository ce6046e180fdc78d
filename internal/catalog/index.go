package catalog

import (
	"fmt"
	"strings"

	"ponydex/internal/names"
)

type searchIndex struct {
	language   string
	categories map[string]*categoryIndex
}

type categoryIndex struct {
	names    map[string]string
	altNames map[string]string
	entries  []indexEntry
}

type indexEntry struct {
	id   string
	keys []string
}

func (c *Catalog) searchIndex() *searchIndex {
	c.mu.RLock()
	idx := c.index
	c.mu.RUnlock()
	if idx != nil {
		return idx
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index == nil {
		c.index = c.buildSearchIndex(c.language)
		c.logger.Debug("built search index", "language", c.language, "categories", len(c.categories))
	}
	return c.index
}

func (c *Catalog) buildSearchIndex(lang string) *searchIndex {
	idx := &searchIndex{
		language:   lang,
		categories: make(map[string]*categoryIndex, len(c.categories)),
	}
	for _, cat := range c.categories {
		ci := &categoryIndex{
			names:    make(map[string]string),
			altNames: make(map[string]string),
			entries:  make([]indexEntry, 0, len(cat.ids)),
		}
		for _, id := range cat.ids {
			e := c.entities[id]
			entry := indexEntry{id: id}

			name := names.Normalize(e.NameFor(lang), c.nameOptions)
			entry.keys = append(entry.keys, name)
			if _, taken := ci.names[name]; !taken {
				ci.names[name] = id
			}
			for _, alt := range e.AltNamesFor(lang) {
				key := names.Normalize(alt, c.nameOptions)
				entry.keys = append(entry.keys, key)
				if _, taken := ci.altNames[key]; !taken {
					ci.altNames[key] = id
				}
			}
			entry.keys = append(entry.keys, names.Normalize(id, c.nameOptions))
			ci.entries = append(ci.entries, entry)
		}
		idx.categories[cat.Key] = ci
	}
	return idx
}

// SearchByName returns the ids in category whose canonical name, alternate
// names or id contain the canonical form of query, in catalog order. An
// empty query returns every id of the category.
func (c *Catalog) SearchByName(query, category string) ([]string, error) {
	ci, ok := c.searchIndex().categories[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	needle := names.Normalize(query, c.nameOptions)
	ids := make([]string, 0, len(ci.entries))
	for _, entry := range ci.entries {
		for _, key := range entry.keys {
			if strings.Contains(key, needle) {
				ids = append(ids, entry.id)
				break
			}
		}
	}
	return ids, nil
}

// LookupName returns the id whose canonical name or alternate name equals
// the canonical form of name within category.
func (c *Catalog) LookupName(name, category string) (string, bool) {
	ci, ok := c.searchIndex().categories[category]
	if !ok {
		return "", false
	}
	key := names.Normalize(name, c.nameOptions)
	if id, ok := ci.names[key]; ok {
		return id, true
	}
	id, ok := ci.altNames[key]
	return id, ok
}
