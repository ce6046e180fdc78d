package guesser

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"ponydex/internal/catalog/catalogtest"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return New(catalogtest.Load(t),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
}

func TestPool(t *testing.T) {
	var ids []string
	for _, e := range Pool(catalogtest.Load(t)) {
		ids = append(ids, e.ID)
	}
	want := []string{
		"Pony_Twilight_Sparkle", "Pony_Applejack", "Pony_Applejack_Canterlot", "Pony_Changeling_Applejack",
		"Pony_Derpy", "Pony_Rarity", "Pony_Apple_Bloom", "Pony_Pinkie_Pie",
	}
	if !slices.Equal(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
}

func TestPlayThrough(t *testing.T) {
	g := newTestGame(t)
	if g.Current() != nil {
		t.Fatalf("expected no pony before start")
	}

	g.Start()
	_, total := g.Progress()
	if total != 8 {
		t.Fatalf("expected pool of 8, got %d", total)
	}

	for i := 0; i < total; i++ {
		current := g.Current()
		if current == nil {
			t.Fatalf("expected a pony at round %d", i)
		}
		if g.Guess("definitely not a pony") {
			t.Fatalf("expected wrong guess rejected")
		}
		if !g.Guess(strings.ToUpper(g.catalog.DisplayName(current))) {
			t.Fatalf("expected guess of %s accepted", current.ID)
		}
		if slices.Contains(g.Guessed()[:len(g.Guessed())-1], current.ID) {
			t.Fatalf("pony %s asked twice", current.ID)
		}
	}

	if !g.Done() || g.Running() {
		t.Fatalf("expected finished game")
	}
	if guessed, _ := g.Progress(); guessed != 8 {
		t.Fatalf("expected 8 guessed, got %d", guessed)
	}
	if g.Elapsed() <= 0 {
		t.Fatalf("expected elapsed time recorded")
	}
}

func TestGuessAltName(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	for g.Current() != nil && g.Current().ID != "Pony_Twilight_Sparkle" {
		g.Skip()
	}
	if !g.Guess("princess twilight") {
		t.Fatalf("expected alternate name accepted")
	}
}

func TestSkipDoesNotCount(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	revealed := g.Skip()
	if revealed == nil {
		t.Fatalf("expected a revealed pony")
	}
	if guessed, _ := g.Progress(); guessed != 0 {
		t.Fatalf("expected skip not counted, got %d", guessed)
	}
	if g.Done() {
		t.Fatalf("expected game to continue")
	}
}

func TestHint(t *testing.T) {
	cat := catalogtest.Load(t)
	hint := hintFor(cat, cat.Get("Pony_Twilight_Sparkle", ""))
	if hint != "____ loves books." {
		t.Fatalf("unexpected hint %q", hint)
	}
	if hint := hintFor(cat, cat.Get("Pony_Derpy", "")); hint != "" {
		t.Fatalf("expected empty hint without description, got %q", hint)
	}
}

func TestStopClearsCurrent(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	g.Stop()
	if g.Current() != nil || g.Guess("Applejack") {
		t.Fatalf("expected stopped game to ignore guesses")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: 0, want: "0:00"},
		{d: 65 * time.Second, want: "1:05"},
		{d: time.Hour + 2*time.Minute + 3*time.Second, want: "1:02:03"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
