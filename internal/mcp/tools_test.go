package mcp

import (
	"context"
	"errors"
	"testing"

	"ponydex/internal/catalog"
	"ponydex/internal/catalog/catalogtest"
	"ponydex/internal/inventory"
)

type mockInventory struct {
	records map[string]inventory.Record
	notes   map[string]string
	setErr  error

	lastSetID    string
	lastSetOwned bool
	lastSetLevel *int
}

func newMockInventory() *mockInventory {
	return &mockInventory{
		records: map[string]inventory.Record{},
		notes:   map[string]string{},
	}
}

func (m *mockInventory) OwnedIDs(category string) []string {
	var ids []string
	for _, id := range []string{"Pony_Applejack", "Pony_Rarity", "Shop_Sugarcube"} {
		if rec, ok := m.records[id]; ok && rec.Owned && categoryOf(id) == category {
			ids = append(ids, id)
		}
	}
	return ids
}

func (m *mockInventory) DerivedHouses() []string {
	if m.records["Pony_Rarity"].Owned {
		return []string{"House_Boutique"}
	}
	return nil
}

func (m *mockInventory) GetInfo(id string) (inventory.Record, bool) {
	rec, ok := m.records[id]
	return rec, ok
}

func (m *mockInventory) Note(id string) string { return m.notes[id] }

func (m *mockInventory) SetOwned(ctx context.Context, id string, owned bool, level *int) error {
	m.lastSetID = id
	m.lastSetOwned = owned
	m.lastSetLevel = level
	if m.setErr != nil {
		return m.setErr
	}
	rec := inventory.Record{Owned: owned}
	if level != nil {
		rec.Level = *level
	}
	m.records[id] = rec
	return nil
}

func (m *mockInventory) Stats() inventory.Stats {
	return inventory.Stats{Ponies: len(m.OwnedIDs(catalog.CategoryPonies)), PoniesTotal: 11, JoinDate: "2020-05-01"}
}

func categoryOf(id string) string {
	if len(id) > 5 && id[:5] == "Shop_" {
		return catalog.CategoryShops
	}
	return catalog.CategoryPonies
}

func TestSearchCatalog(t *testing.T) {
	server := NewServer(catalogtest.Load(t), nil, "test")

	_, output, err := server.handleSearchCatalog(context.Background(), nil, SearchCatalogInput{Category: "ponies", Query: "apple", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Total != 4 || len(output.Results) != 2 {
		t.Fatalf("unexpected search output: %+v", output)
	}
	if output.Results[0].ID != "Pony_Applejack" || output.Results[0].Name != "Applejack" {
		t.Fatalf("unexpected first result: %+v", output.Results[0])
	}

	_, output, err = server.handleSearchCatalog(context.Background(), nil, SearchCatalogInput{Category: "ponies", Filters: "unused", Sort: "name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Results) != 1 || output.Results[0].ID != "Pony_Derpy" {
		t.Fatalf("unexpected filtered output: %+v", output)
	}

	if _, _, err := server.handleSearchCatalog(context.Background(), nil, SearchCatalogInput{Category: "ponies", Filters: "flying"}); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
	if _, _, err := server.handleSearchCatalog(context.Background(), nil, SearchCatalogInput{}); err == nil {
		t.Fatalf("expected error without category")
	}
}

func TestGetEntity(t *testing.T) {
	inv := newMockInventory()
	inv.records["Pony_Rarity"] = inventory.Record{Owned: true, Level: 3}
	inv.notes["Pony_Rarity"] = "needs gems"
	server := NewServer(catalogtest.Load(t), inv, "test")

	_, output, err := server.handleGetEntity(context.Background(), nil, GetEntityInput{ID: "Pony_Rarity"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Owned || output.Level != 3 || output.Note != "needs gems" {
		t.Fatalf("unexpected ownership: %+v", output)
	}
	if output.Category != catalog.CategoryPonies || output.Location != "Ponyville" {
		t.Fatalf("unexpected entity output: %+v", output)
	}
	if _, ok := output.Attributes.(*catalog.PonyAttributes); !ok {
		t.Fatalf("expected pony attributes, got %T", output.Attributes)
	}
}

func TestGetEntity_NotFound(t *testing.T) {
	server := NewServer(catalogtest.Load(t), nil, "test")

	if _, _, err := server.handleGetEntity(context.Background(), nil, GetEntityInput{ID: "Pony_Missing"}); err == nil {
		t.Fatalf("expected error")
	}
	if _, _, err := server.handleGetEntity(context.Background(), nil, GetEntityInput{ID: "Pony_Rarity", Category: "houses"}); err == nil {
		t.Fatalf("expected error for category mismatch")
	}
}

func TestMatchName(t *testing.T) {
	server := NewServer(catalogtest.Load(t), nil, "test")

	_, output, err := server.handleMatchName(context.Background(), nil, MatchNameInput{Name: "aj"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Matched || output.ID != "Pony_Applejack" || !output.Alt {
		t.Fatalf("unexpected match: %+v", output)
	}

	_, output, err = server.handleMatchName(context.Background(), nil, MatchNameInput{Name: "Rarty"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Matched || len(output.Suggestions) == 0 || output.Suggestions[0].ID != "Pony_Rarity" {
		t.Fatalf("unexpected suggestions: %+v", output)
	}
}

func TestInventoryTools(t *testing.T) {
	inv := newMockInventory()
	server := NewServer(catalogtest.Load(t), inv, "test")
	ctx := context.Background()

	level := 4
	_, set, err := server.handleSetOwned(ctx, nil, SetOwnedInput{ID: "Pony_Rarity", Owned: true, Level: &level})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Level != 4 || !set.Owned {
		t.Fatalf("unexpected set output: %+v", set)
	}
	if inv.lastSetID != "Pony_Rarity" || !inv.lastSetOwned || inv.lastSetLevel == nil || *inv.lastSetLevel != 4 {
		t.Fatalf("unexpected set params")
	}

	_, list, err := server.handleListInventory(ctx, nil, ListInventoryInput{Category: "houses"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Entities) != 1 || list.Entities[0].ID != "House_Boutique" {
		t.Fatalf("unexpected inventory output: %+v", list)
	}

	_, stats, err := server.handleGetStats(ctx, nil, GetStatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Ponies != 1 || stats.JoinDate != "2020-05-01" {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	inv.setErr = inventory.ErrUnknownEntity
	if _, _, err := server.handleSetOwned(ctx, nil, SetOwnedInput{ID: "Pony_Missing", Owned: true}); !errors.Is(err, inventory.ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestInventoryTools_WithoutInventory(t *testing.T) {
	server := NewServer(catalogtest.Load(t), nil, "test")

	if _, _, err := server.handleListInventory(context.Background(), nil, ListInventoryInput{}); !errors.Is(err, errNoInventory) {
		t.Fatalf("expected errNoInventory, got %v", err)
	}
	if _, _, err := server.handleGetStats(context.Background(), nil, GetStatsInput{}); !errors.Is(err, errNoInventory) {
		t.Fatalf("expected errNoInventory, got %v", err)
	}
}
