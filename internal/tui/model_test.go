package tui

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ponydex/internal/catalog/catalogtest"
	"ponydex/internal/inventory"
	"ponydex/internal/store"
)

func newTestModel(t *testing.T, withInventory bool) model {
	t.Helper()
	ctx := context.Background()
	cat := catalogtest.Load(t)
	var inv *inventory.Manager
	if withInventory {
		var err error
		inv, err = inventory.Open(ctx, store.NewMemory(), cat, inventory.Options{
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		if err != nil {
			t.Fatalf("open inventory: %v", err)
		}
	}
	m, err := NewModel(ctx, cat, inv, nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func press(t *testing.T, m model, msgs ...tea.KeyMsg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestOpenProfileAndBack(t *testing.T) {
	m := newTestModel(t, false)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.router.Current() != m.profile {
		t.Fatalf("expected profile page")
	}
	if got := m.profile.Entity().ID; got != "Pony_Twilight_Sparkle" {
		t.Fatalf("expected second pony, got %s", got)
	}
	if !strings.Contains(m.View(), "Twilight Sparkle") {
		t.Fatalf("expected profile to render the name")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.router.Current() != m.search {
		t.Fatalf("expected search page after esc")
	}
	if m.cursor != 1 {
		t.Fatalf("expected cursor restored to 1, got %d", m.cursor)
	}
}

func TestTypingFiltersResults(t *testing.T) {
	m := newTestModel(t, false)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("rar")})
	if got := m.search.Results(); !slices.Equal(got, []string{"Pony_Rarity"}) {
		t.Fatalf("expected only Rarity, got %v", got)
	}
	if m.search.Query() != "rar" {
		t.Fatalf("expected query stored, got %q", m.search.Query())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.search.Category() != "houses" {
		t.Fatalf("expected houses after tab, got %q", m.search.Category())
	}
	if m.textInput.Value() != "" {
		t.Fatalf("expected empty input for houses, got %q", m.textInput.Value())
	}
}

func TestSortToggle(t *testing.T) {
	m := newTestModel(t, false)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if got := m.search.Results(); got[0] != "Pony_Pinkie_Pie" {
		t.Fatalf("expected reversed index order, got %v", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if key, reverse := m.search.Sort(); key != "name" || !reverse {
		t.Fatalf("expected reversed name sort, got %s %v", key, reverse)
	}
}

func TestToggleOwnedFromProfile(t *testing.T) {
	m := newTestModel(t, true)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyCtrlO})
	if !m.inventory.IsOwned("Pony_Applejack") {
		t.Fatalf("expected Applejack owned")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.router.Current() != m.owned {
		t.Fatalf("expected inventory page")
	}
	if got := m.owned.Results(); !slices.Equal(got, []string{"Pony_Applejack"}) {
		t.Fatalf("unexpected inventory %v", got)
	}
	if !strings.Contains(m.View(), "Inventory") {
		t.Fatalf("expected inventory title")
	}
}

func TestGuesserMode(t *testing.T) {
	m := newTestModel(t, false)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if m.router.Current() != m.guesser || !m.guesser.Game().Running() {
		t.Fatalf("expected running guesser")
	}

	current := m.guesser.Game().Current()
	name := m.catalog.DisplayName(current)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}, tea.KeyMsg{Type: tea.KeyEnter})
	if guessed, _ := m.guesser.Game().Progress(); guessed != 1 {
		t.Fatalf("expected one pony guessed, got %d", guessed)
	}
	if m.status != "Correct!" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.router.Current() != m.search {
		t.Fatalf("expected search page after leaving the game")
	}
	if m.guesser.Game().Running() {
		t.Fatalf("expected game stopped on leave")
	}
}
