package page

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"ponydex/internal/catalog"
	"ponydex/internal/catalog/catalogtest"
	"ponydex/internal/inventory"
	"ponydex/internal/search"
	"ponydex/internal/store"
)

type recordingPage struct {
	name  string
	calls *[]string
}

func (p *recordingPage) record(hook string, path []string) error {
	*p.calls = append(*p.calls, p.name+"."+hook+":"+joinPath(path))
	return nil
}

func (p *recordingPage) Load(ctx context.Context, path []string) error   { return p.record("load", path) }
func (p *recordingPage) Reload(ctx context.Context, path []string) error { return p.record("reload", path) }
func (p *recordingPage) Update(ctx context.Context, path []string) error { return p.record("update", path) }
func (p *recordingPage) Unload(ctx context.Context, path []string) error { return p.record("unload", path) }

func joinPath(path []string) string {
	out := ""
	for i, part := range path {
		if i > 0 {
			out += "/"
		}
		out += part
	}
	return out
}

func TestParsePath(t *testing.T) {
	tests := map[string][]string{
		"search/ponies/":      {"search", "ponies"},
		"/ponies/Pony_Rarity": {"ponies", "Pony_Rarity"},
		"":                    nil,
		"guesser":             {"guesser"},
	}
	for input, want := range tests {
		if got := ParsePath(input); !slices.Equal(got, want) {
			t.Errorf("ParsePath(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRouter(t *testing.T) {
	ctx := context.Background()
	var calls []string
	router := &Router{}
	router.Handle(Prefix("search"), &recordingPage{name: "search", calls: &calls})
	router.Handle(Prefix("ponies", "houses"), &recordingPage{name: "profile", calls: &calls})

	steps := [][]string{
		{"search", "ponies"},
		{"search", "decor"},
		{"ponies", "Pony_Rarity"},
		{"search", "ponies"},
	}
	for _, path := range steps {
		if err := router.Navigate(ctx, path); err != nil {
			t.Fatalf("navigate %v: %v", path, err)
		}
	}
	if err := router.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	want := []string{
		"search.load:search/ponies",
		"search.update:search/decor",
		"search.unload:ponies/Pony_Rarity",
		"profile.load:ponies/Pony_Rarity",
		"profile.unload:search/ponies",
		"search.load:search/ponies",
		"search.reload:search/ponies",
	}
	if !slices.Equal(calls, want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}

	if err := router.Navigate(ctx, []string{"nowhere"}); !errors.Is(err, ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}

func TestSearchPage(t *testing.T) {
	ctx := context.Background()
	cat := catalogtest.Load(t)
	p := NewSearchPage(cat, search.NewEngine(cat, nil))

	t.Run("unknown category falls back to ponies", func(t *testing.T) {
		if err := p.Load(ctx, []string{"search", "vehicles"}); err != nil {
			t.Fatalf("load: %v", err)
		}
		if p.Category() != catalog.CategoryPonies {
			t.Fatalf("expected ponies, got %q", p.Category())
		}
		if len(p.Results()) != 8 {
			t.Fatalf("expected default-filtered ponies, got %v", p.Results())
		}
	})

	t.Run("query kept per category", func(t *testing.T) {
		if err := p.SetQuery("apple"); err != nil {
			t.Fatalf("set query: %v", err)
		}
		if len(p.Results()) != 4 {
			t.Fatalf("expected 4 apple ponies, got %v", p.Results())
		}
		if err := p.Update(ctx, []string{"search", "decor"}); err != nil {
			t.Fatalf("update: %v", err)
		}
		if p.Query() != "" {
			t.Fatalf("expected empty decor query, got %q", p.Query())
		}
		if f := p.Filters(); !f["regular"] || !f["pro"] {
			t.Fatalf("expected decor default filters, got %v", f)
		}
		if err := p.Update(ctx, []string{"search", "ponies"}); err != nil {
			t.Fatalf("update: %v", err)
		}
		if p.Query() != "apple" {
			t.Fatalf("expected pony query restored, got %q", p.Query())
		}
	})

	t.Run("toggle filter", func(t *testing.T) {
		if err := p.SetQuery(""); err != nil {
			t.Fatalf("set query: %v", err)
		}
		if err := p.ToggleFilter("unused"); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if !slices.Contains(p.Results(), "Pony_Derpy") {
			t.Fatalf("expected unused pony visible, got %v", p.Results())
		}
		if err := p.ToggleFilter("flying"); !errors.Is(err, search.ErrUnknownFilter) {
			t.Fatalf("expected ErrUnknownFilter, got %v", err)
		}
		if _, ok := p.Filters()["flying"]; ok {
			t.Fatalf("expected filters unchanged after error")
		}
	})

	t.Run("sort", func(t *testing.T) {
		if err := p.SetSort("price", false); !errors.Is(err, search.ErrUnknownSort) {
			t.Fatalf("expected ErrUnknownSort, got %v", err)
		}
		if key, _ := p.Sort(); key != search.SortIndex {
			t.Fatalf("expected sort unchanged, got %q", key)
		}
		if err := p.SetSort(search.SortIndex, true); err != nil {
			t.Fatalf("set sort: %v", err)
		}
		if p.Results()[0] != "Pony_Pinkie_Pie" {
			t.Fatalf("expected reversed order, got %v", p.Results())
		}
	})

	t.Run("scroll remembered for own profile only", func(t *testing.T) {
		p.Scroll = 40
		if err := p.Unload(ctx, []string{"ponies", "Pony_Rarity"}); err != nil {
			t.Fatalf("unload: %v", err)
		}
		if err := p.Load(ctx, []string{"search", "ponies"}); err != nil {
			t.Fatalf("load: %v", err)
		}
		if p.Scroll != 40 {
			t.Fatalf("expected scroll restored, got %d", p.Scroll)
		}

		if err := p.Unload(ctx, []string{"guesser"}); err != nil {
			t.Fatalf("unload: %v", err)
		}
		if err := p.Load(ctx, []string{"search", "ponies"}); err != nil {
			t.Fatalf("load: %v", err)
		}
		if p.Scroll != 0 {
			t.Fatalf("expected scroll reset, got %d", p.Scroll)
		}
	})

	t.Run("next category cycles", func(t *testing.T) {
		if got := p.NextCategory("search"); !slices.Equal(got, []string{"search", "houses"}) {
			t.Fatalf("unexpected next category %v", got)
		}
	})
}

func TestSearchPageFallbackCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("ponies even when not first", func(t *testing.T) {
		data := `{"categories": {
			"decor": {"objects": {"Decor_Bench": {"name": {"english": "Bench"}, "index": 1}}},
			"ponies": {"objects": {"Pony_Rarity": {"name": {"english": "Rarity"}, "index": 1, "tags": []}}}
		}}`
		cat, err := catalog.Parse([]byte(data))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		p := NewSearchPage(cat, search.NewEngine(cat, nil))
		if err := p.Load(ctx, []string{"search", "nope"}); err != nil {
			t.Fatalf("load: %v", err)
		}
		if p.Category() != catalog.CategoryPonies {
			t.Fatalf("expected ponies, got %q", p.Category())
		}
	})

	t.Run("first category without ponies", func(t *testing.T) {
		data := `{"categories": {
			"decor": {"objects": {"Decor_Bench": {"name": {"english": "Bench"}, "index": 1}}},
			"houses": {"objects": {"House_Farm": {"name": {"english": "Farm"}, "index": 1}}}
		}}`
		cat, err := catalog.Parse([]byte(data))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		p := NewSearchPage(cat, search.NewEngine(cat, nil))
		if err := p.Load(ctx, []string{"search"}); err != nil {
			t.Fatalf("load: %v", err)
		}
		if p.Category() != catalog.CategoryDecor {
			t.Fatalf("expected decor, got %q", p.Category())
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		cat, err := catalog.Parse([]byte(`{"categories": {}}`))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		p := NewSearchPage(cat, search.NewEngine(cat, nil))
		if err := p.Load(ctx, []string{"search", "ponies"}); !errors.Is(err, ErrNoCategories) {
			t.Fatalf("expected ErrNoCategories, got %v", err)
		}
		if p.Running() {
			t.Fatalf("expected page not running after failed load")
		}
		if got := p.NextCategory("search"); !slices.Equal(got, []string{"search"}) {
			t.Fatalf("expected bare prefix, got %v", got)
		}
	})
}

func TestInventoryPage(t *testing.T) {
	ctx := context.Background()
	cat := catalogtest.Load(t)
	inv, err := inventory.Open(ctx, store.NewMemory(), cat, inventory.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("open inventory: %v", err)
	}

	p := NewInventoryPage(cat, inv)
	if err := p.Load(ctx, []string{"inventory", "decor"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Category() != catalog.CategoryPonies {
		t.Fatalf("expected decor to fall back to ponies, got %q", p.Category())
	}
	if len(p.Results()) != 0 {
		t.Fatalf("expected empty inventory, got %v", p.Results())
	}

	if err := inv.SetOwned(ctx, "Pony_Rarity", true, nil); err != nil {
		t.Fatalf("set owned: %v", err)
	}
	if !slices.Equal(p.Results(), []string{"Pony_Rarity"}) {
		t.Fatalf("expected page refreshed by inventory event, got %v", p.Results())
	}
	if p.Stats().Ponies != 1 {
		t.Fatalf("expected stats from inventory")
	}

	if err := p.Update(ctx, []string{"inventory", "houses"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !slices.Equal(p.Results(), []string{"House_Boutique"}) {
		t.Fatalf("expected derived house, got %v", p.Results())
	}

	if err := p.Unload(ctx, []string{"search", "ponies"}); err != nil {
		t.Fatalf("unload: %v", err)
	}
	if err := inv.SetOwned(ctx, "Pony_Applejack", true, nil); err != nil {
		t.Fatalf("set owned: %v", err)
	}
	if !slices.Equal(p.Results(), []string{"House_Boutique"}) {
		t.Fatalf("expected unloaded page not refreshed, got %v", p.Results())
	}
}

func TestProfilePage(t *testing.T) {
	ctx := context.Background()
	cat := catalogtest.Load(t)
	p := NewProfilePage(cat, nil)

	if err := p.Load(ctx, []string{"houses", "House_Farm"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.NotFound() || p.Entity().ID != "House_Farm" {
		t.Fatalf("expected House_Farm")
	}
	var related []string
	for _, e := range p.Related() {
		related = append(related, e.ID)
	}
	if !slices.Equal(related, []string{"Pony_Applejack", "Pony_Apple_Bloom"}) {
		t.Fatalf("unexpected residents %v", related)
	}

	if err := p.Update(ctx, []string{"houses", "Pony_Rarity"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !p.NotFound() || p.Entity() != nil {
		t.Fatalf("expected category mismatch to be not found")
	}
	if _, ok := p.Record(); ok {
		t.Fatalf("expected no record without entity")
	}
}

func TestGuesserPage(t *testing.T) {
	ctx := context.Background()
	p := NewGuesserPage(catalogtest.Load(t))
	if p.Game() != nil {
		t.Fatalf("expected no game before load")
	}
	if err := p.Load(ctx, []string{"guesser"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Game().Start()
	if !p.Game().Running() {
		t.Fatalf("expected running game")
	}
	if err := p.Unload(ctx, []string{"search"}); err != nil {
		t.Fatalf("unload: %v", err)
	}
	if p.Game().Running() {
		t.Fatalf("expected unload to stop the game")
	}
}
