package cloudsync

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"ponydex/internal/catalog/catalogtest"
	"ponydex/internal/inventory"
	"ponydex/internal/saveapi"
	"ponydex/internal/store"
)

type mockFetcher struct {
	save     *saveapi.Save
	err      error
	gotCode  string
	requests int
}

func (m *mockFetcher) GetSave(ctx context.Context, friendCode string) (*saveapi.Save, error) {
	m.requests++
	m.gotCode = friendCode
	return m.save, m.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededInventory(t *testing.T) *inventory.Manager {
	t.Helper()
	ctx := context.Background()
	inv, err := inventory.Open(ctx, store.NewMemory(), catalogtest.Load(t), inventory.Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("opening inventory: %v", err)
	}
	level := 2
	if err := inv.SetOwned(ctx, "Pony_Twilight_Sparkle", true, &level); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	if err := inv.SetNote(ctx, "Pony_Twilight_Sparkle", "local only"); err != nil {
		t.Fatalf("seeding note: %v", err)
	}
	return inv
}

func TestImportRejectedLeavesStateUntouched(t *testing.T) {
	inv := seededInventory(t)
	before, err := inv.MarshalSnapshot()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	fetcher := &mockFetcher{err: &saveapi.RejectedError{Status: 404, Detail: "not found"}}
	_, err = NewImporter(fetcher, inv, quietLogger()).Import(context.Background(), "  ABC123 ")
	if !errors.Is(err, saveapi.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	var rejected *saveapi.RejectedError
	if !errors.As(err, &rejected) || rejected.Detail != "not found" {
		t.Fatalf("expected server message verbatim, got %v", err)
	}
	if err.Error() != "not found" {
		t.Fatalf("expected error text to be the server message, got %q", err.Error())
	}

	after, _ := inv.MarshalSnapshot()
	if !bytes.Equal(before, after) {
		t.Fatalf("expected snapshot byte-identical after failed import\nbefore: %s\nafter: %s", before, after)
	}
}

func TestImportTransportFailureLeavesStateUntouched(t *testing.T) {
	inv := seededInventory(t)
	before, _ := inv.MarshalSnapshot()

	fetcher := &mockFetcher{err: &saveapi.TransportError{URL: "http://x", Err: errors.New("connection refused")}}
	_, err := NewImporter(fetcher, inv, quietLogger()).Import(context.Background(), "abc")
	if !errors.Is(err, saveapi.ErrTransport) || errors.Is(err, saveapi.ErrRejected) {
		t.Fatalf("expected transport failure, got %v", err)
	}

	after, _ := inv.MarshalSnapshot()
	if !bytes.Equal(before, after) {
		t.Fatalf("expected snapshot unchanged")
	}
}

func TestImportReplacesInventory(t *testing.T) {
	inv := seededInventory(t)
	fetcher := &mockFetcher{save: &saveapi.Save{
		PlayerInfo: saveapi.PlayerInfo{JoinDate: "2020-05-01", TotalPlaytime: 7200},
		Inventory: saveapi.SaveInventory{
			Ponies: []saveapi.PonyEntry{{ID: "Pony_Applejack", Level: 4}},
			Shops:  []string{"Shop_Sugarcube"},
		},
	}}

	result, err := NewImporter(fetcher, inv, quietLogger()).Import(context.Background(), "  ABC123 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fetcher.gotCode != "abc123" {
		t.Fatalf("expected normalized friend code, got %q", fetcher.gotCode)
	}
	if result.Ponies != 1 || result.Shops != 1 {
		t.Fatalf("unexpected result %+v", result)
	}

	rec, ok := inv.GetInfo("Pony_Applejack")
	if !ok || !rec.Owned || rec.Level != 4 {
		t.Fatalf("expected Pony_Applejack owned at level 4, got %+v", rec)
	}
	shop, ok := inv.GetInfo("Shop_Sugarcube")
	if !ok || !shop.Owned || shop.Leveled {
		t.Fatalf("expected shop owned without level, got %+v", shop)
	}

	if !slices.Equal(inv.OwnedIDs("ponies"), []string{"Pony_Applejack"}) {
		t.Fatalf("expected local-only ownership dropped, got %v", inv.OwnedIDs("ponies"))
	}
	if inv.Note("Pony_Twilight_Sparkle") != "" {
		t.Fatalf("expected notes reset")
	}
	if info := inv.PlayerInfo(); info.JoinDate != "2020-05-01" || info.TotalPlaytime != 7200 {
		t.Fatalf("unexpected player info %+v", info)
	}
}

func TestImportSkipsAndClamps(t *testing.T) {
	inv := seededInventory(t)
	fetcher := &mockFetcher{save: &saveapi.Save{
		Inventory: saveapi.SaveInventory{
			Ponies: []saveapi.PonyEntry{
				{ID: "Pony_Applejack", Level: 9},
				{ID: "Pony_From_The_Future", Level: 1},
				{ID: "Pony_Apple_Bloom", Level: -2},
			},
			Shops: []string{"Shop_Unknown", "Pony_Rarity"},
		},
	}}

	result, err := NewImporter(fetcher, inv, quietLogger()).Import(context.Background(), "abc")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !slices.Equal(result.Skipped, []string{"Pony_From_The_Future", "Shop_Unknown", "Pony_Rarity"}) {
		t.Fatalf("unexpected skipped %v", result.Skipped)
	}
	if !slices.Equal(result.Clamped, []string{"Pony_Applejack", "Pony_Apple_Bloom"}) {
		t.Fatalf("unexpected clamped %v", result.Clamped)
	}
	if rec, _ := inv.GetInfo("Pony_Applejack"); rec.Level != inventory.MaxLevel {
		t.Fatalf("expected level clamped to max, got %d", rec.Level)
	}
	if rec, _ := inv.GetInfo("Pony_Apple_Bloom"); rec.Level != 0 {
		t.Fatalf("expected level clamped to 0, got %d", rec.Level)
	}
}

func TestImportFriendCodeValidation(t *testing.T) {
	inv := seededInventory(t)
	fetcher := &mockFetcher{}
	im := NewImporter(fetcher, inv, quietLogger())

	if _, err := im.Import(context.Background(), "   "); !errors.Is(err, ErrEmptyFriendCode) {
		t.Fatalf("expected ErrEmptyFriendCode, got %v", err)
	}
	for _, code := range []string{"abc/../admin", "..", " . ", "abc?x=1", "abc#frag"} {
		if _, err := im.Import(context.Background(), code); !errors.Is(err, ErrInvalidFriendCode) {
			t.Fatalf("%q: expected ErrInvalidFriendCode, got %v", code, err)
		}
	}
	if fetcher.requests != 0 {
		t.Fatalf("expected no requests for invalid codes")
	}
}
