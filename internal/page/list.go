package page

import (
	"context"
	"errors"
	"maps"
	"slices"

	"ponydex/internal/catalog"
	"ponydex/internal/search"
)

var ErrNoCategories = errors.New("no categories to list")

// ListPage is a filterable, sortable list of one category at a time.
type ListPage struct {
	catalog    *catalog.Catalog
	engine     *search.Engine
	scope      search.Scope
	categories []string

	running  bool
	category string
	queries  map[string]string
	filters  map[string]bool
	sort     string
	reverse  bool
	scroll   map[string]int
	results  []string

	// Scroll is the list offset reported by the view.
	Scroll int
}

func NewSearchPage(cat *catalog.Catalog, engine *search.Engine) *ListPage {
	var categories []string
	for _, c := range cat.Categories() {
		categories = append(categories, c.Key)
	}
	return newListPage(cat, engine, search.ScopeCatalog, categories)
}

func newListPage(cat *catalog.Catalog, engine *search.Engine, scope search.Scope, categories []string) *ListPage {
	return &ListPage{
		catalog:    cat,
		engine:     engine,
		scope:      scope,
		categories: categories,
		queries:    make(map[string]string),
		scroll:     make(map[string]int),
		sort:       search.SortIndex,
	}
}

func (p *ListPage) Load(ctx context.Context, path []string) error {
	if err := p.navigate(path); err != nil {
		return err
	}
	p.running = true
	if offset, ok := p.scroll[p.category]; ok {
		p.Scroll = offset
	} else {
		p.Scroll = 0
	}
	return p.refresh()
}

func (p *ListPage) Reload(ctx context.Context, path []string) error {
	return p.refresh()
}

func (p *ListPage) Update(ctx context.Context, path []string) error {
	previous := p.category
	if err := p.navigate(path); err != nil {
		return err
	}
	if p.category != previous {
		p.Scroll = p.scroll[p.category]
	}
	return p.refresh()
}

// Unload keeps the scroll offset only when leaving for a profile in the
// same category, so returning from it restores the list position.
func (p *ListPage) Unload(ctx context.Context, path []string) error {
	p.running = false
	if len(path) == 2 && path[0] == p.category {
		p.scroll[p.category] = p.Scroll
	} else {
		delete(p.scroll, p.category)
	}
	return nil
}

// navigate selects the category named by path. Unknown categories fall
// back to ponies, or to the first category when there are no ponies.
func (p *ListPage) navigate(path []string) error {
	var category string
	switch {
	case len(path) > 1 && slices.Contains(p.categories, path[1]):
		category = path[1]
	case slices.Contains(p.categories, catalog.CategoryPonies):
		category = catalog.CategoryPonies
	case len(p.categories) > 0:
		category = p.categories[0]
	default:
		return ErrNoCategories
	}
	if category != p.category {
		p.category = category
		p.filters = search.DefaultFilters(category)
		p.sort = search.SortIndex
		p.reverse = false
	}
	return nil
}

func (p *ListPage) refresh() error {
	if !p.running {
		return nil
	}
	ids, err := p.engine.ComputeVisibleIDs(search.Query{
		Category: p.category,
		Text:     p.queries[p.category],
		Filters:  p.filters,
		Sort:     p.sort,
		Reverse:  p.reverse,
		Scope:    p.scope,
	})
	if err != nil {
		return err
	}
	p.results = ids
	return nil
}

func (p *ListPage) Running() bool        { return p.running }
func (p *ListPage) Category() string     { return p.category }
func (p *ListPage) Categories() []string { return append([]string(nil), p.categories...) }
func (p *ListPage) Query() string        { return p.queries[p.category] }
func (p *ListPage) Results() []string    { return append([]string(nil), p.results...) }
func (p *ListPage) Sort() (string, bool) { return p.sort, p.reverse }

func (p *ListPage) Filters() map[string]bool {
	return maps.Clone(p.filters)
}

// SetQuery stores text as the search for the current category.
func (p *ListPage) SetQuery(text string) error {
	p.queries[p.category] = text
	return p.refresh()
}

func (p *ListPage) ToggleFilter(key string) error {
	next := maps.Clone(p.filters)
	next[key] = !next[key]
	if _, err := p.engine.ComputeVisibleIDs(search.Query{Category: p.category, Filters: next, Scope: p.scope}); err != nil {
		return err
	}
	p.filters = next
	return p.refresh()
}

func (p *ListPage) SetSort(key string, reverse bool) error {
	previous, previousReverse := p.sort, p.reverse
	p.sort, p.reverse = key, reverse
	if err := p.refresh(); err != nil {
		p.sort, p.reverse = previous, previousReverse
		return err
	}
	return nil
}

// NextCategory cycles to the following category and returns its path.
func (p *ListPage) NextCategory(prefix string) []string {
	if len(p.categories) == 0 {
		return []string{prefix}
	}
	i := slices.Index(p.categories, p.category)
	return []string{prefix, p.categories[(i+1)%len(p.categories)]}
}
