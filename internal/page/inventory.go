package page

import (
	"context"

	"ponydex/internal/catalog"
	"ponydex/internal/inventory"
	"ponydex/internal/search"
)

var inventoryCategories = []string{catalog.CategoryPonies, catalog.CategoryHouses, catalog.CategoryShops}

// InventoryPage lists owned entities and refreshes itself when the
// inventory changes.
type InventoryPage struct {
	*ListPage
	inventory *inventory.Manager
	cancel    func()
}

func NewInventoryPage(cat *catalog.Catalog, inv *inventory.Manager) *InventoryPage {
	engine := search.NewEngine(cat, inv)
	return &InventoryPage{
		ListPage:  newListPage(cat, engine, search.ScopeInventory, inventoryCategories),
		inventory: inv,
	}
}

func (p *InventoryPage) Load(ctx context.Context, path []string) error {
	if p.cancel == nil {
		p.cancel = p.inventory.Subscribe(func(ev inventory.Event) {
			if ev.Kind != inventory.EventPersistFailed {
				_ = p.refresh()
			}
		})
	}
	return p.ListPage.Load(ctx, path)
}

func (p *InventoryPage) Unload(ctx context.Context, path []string) error {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	return p.ListPage.Unload(ctx, path)
}

func (p *InventoryPage) Stats() inventory.Stats {
	return p.inventory.Stats()
}
