package page

import (
	"context"

	"ponydex/internal/catalog"
	"ponydex/internal/inventory"
)

// ProfilePage shows one entity, addressed as <category>/<id>.
type ProfilePage struct {
	catalog   *catalog.Catalog
	inventory *inventory.Manager

	running  bool
	entity   *catalog.Entity
	notFound bool
}

func NewProfilePage(cat *catalog.Catalog, inv *inventory.Manager) *ProfilePage {
	return &ProfilePage{catalog: cat, inventory: inv}
}

func (p *ProfilePage) Load(ctx context.Context, path []string) error {
	p.running = true
	p.resolve(path)
	return nil
}

func (p *ProfilePage) Reload(ctx context.Context, path []string) error {
	p.resolve(path)
	return nil
}

func (p *ProfilePage) Update(ctx context.Context, path []string) error {
	p.resolve(path)
	return nil
}

func (p *ProfilePage) Unload(ctx context.Context, path []string) error {
	p.running = false
	return nil
}

func (p *ProfilePage) resolve(path []string) {
	p.entity = nil
	if len(path) == 2 {
		p.entity = p.catalog.Get(path[1], path[0])
	}
	p.notFound = p.entity == nil
}

func (p *ProfilePage) Entity() *catalog.Entity { return p.entity }

// NotFound reports whether the path named no entity of its category.
func (p *ProfilePage) NotFound() bool { return p.notFound }

func (p *ProfilePage) Record() (inventory.Record, bool) {
	if p.entity == nil || p.inventory == nil {
		return inventory.Record{}, false
	}
	return p.inventory.GetInfo(p.entity.ID)
}

func (p *ProfilePage) Note() string {
	if p.entity == nil || p.inventory == nil {
		return ""
	}
	return p.inventory.Note(p.entity.ID)
}

// Related returns the entities linked to the shown one: a pony's house,
// or the residents of a house or shop.
func (p *ProfilePage) Related() []*catalog.Entity {
	if p.entity == nil {
		return nil
	}

	var ids []string
	switch attrs := p.entity.Attributes.(type) {
	case *catalog.PonyAttributes:
		if attrs.House != "" {
			ids = append(ids, attrs.House)
		}
	case *catalog.HouseAttributes:
		ids = attrs.Residents
	case *catalog.ShopAttributes:
		ids = attrs.Residents
	}

	var related []*catalog.Entity
	for _, id := range ids {
		if e := p.catalog.Get(id, ""); e != nil {
			related = append(related, e)
		}
	}
	return related
}
