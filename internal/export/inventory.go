package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"ponydex/internal/catalog"
	"ponydex/internal/inventory"
)

var ErrUnsupportedCategory = errors.New("category cannot be exported")

var headers = map[string][]string{
	catalog.CategoryPonies: {"ID", "Name", "Location", "House", "Stars", "Pro", "Changeling"},
	catalog.CategoryHouses: {"ID", "Name", "Location"},
	catalog.CategoryShops:  {"ID", "Name", "Location"},
}

// Source is the read side of the inventory used for exports.
type Source interface {
	OwnedIDs(category string) []string
	DerivedHouses() []string
	GetInfo(id string) (inventory.Record, bool)
}

type Snapshotter interface {
	MarshalSnapshot() ([]byte, error)
}

// InventoryCSV writes the owned entities of category, in catalog order.
func InventoryCSV(w io.Writer, cat *catalog.Catalog, inv Source, category string, dialect Dialect) error {
	header, ok := headers[category]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedCategory, category)
	}

	rows := [][]string{header}
	switch category {
	case catalog.CategoryPonies:
		for _, id := range inv.OwnedIDs(category) {
			rows = append(rows, ponyRow(cat, inv, cat.Get(id, category)))
		}
	case catalog.CategoryHouses:
		for _, id := range inv.DerivedHouses() {
			if e := cat.Get(id, category); e != nil {
				rows = append(rows, placeRow(cat, e))
			}
		}
	default:
		for _, id := range inv.OwnedIDs(category) {
			rows = append(rows, placeRow(cat, cat.Get(id, category)))
		}
	}

	return NewWriter(w, dialect).WriteAll(rows)
}

func InventoryJSON(w io.Writer, inv Snapshotter) error {
	data, err := inv.MarshalSnapshot()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func ponyRow(cat *catalog.Catalog, inv Source, e *catalog.Entity) []string {
	rec, _ := inv.GetInfo(e.ID)
	row := []string{
		e.ID,
		cat.DisplayName(e),
		cat.LocationName(e.Location),
		"",
		strconv.Itoa(rec.Level),
		"",
		"",
	}

	pony, ok := e.Pony()
	if !ok {
		return row
	}
	if house := cat.Get(pony.House, catalog.CategoryHouses); house != nil {
		row[3] = cat.DisplayName(house)
	}
	switch {
	case pony.Pro == "random":
		row[5] = pony.Pro
	case pony.Pro != "":
		row[5] = cat.QuestName(pony.Pro)
	}
	if pony.Changeling.IsChangeling {
		if target := cat.Get(pony.Changeling.ID, catalog.CategoryPonies); target != nil {
			row[6] = cat.DisplayName(target)
		}
	}
	return row
}

func placeRow(cat *catalog.Catalog, e *catalog.Entity) []string {
	return []string{e.ID, cat.DisplayName(e), cat.LocationName(e.Location)}
}
