// Package guesser implements the name-guessing minigame: a random pony is
// shown as a silhouette and the player types its name.
package guesser

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"ponydex/internal/catalog"
	"ponydex/internal/names"
)

const hintBlank = "____"

type Game struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
	now     func() time.Time

	pool     []*catalog.Entity
	guessed  []string
	isGuess  map[string]bool
	current  *catalog.Entity
	started  time.Time
	finished time.Time
	running  bool
}

type Option func(*Game)

func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

func New(cat *catalog.Catalog, opts ...Option) *Game {
	g := &Game{
		catalog: cat,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Pool returns the ponies that can be asked: everything except NPCs, quest
// ponies and the leaders of pony groups.
func Pool(cat *catalog.Catalog) []*catalog.Entity {
	ids, err := cat.IDs(catalog.CategoryPonies)
	if err != nil {
		return nil
	}
	var pool []*catalog.Entity
	for _, id := range ids {
		e := cat.Get(id, catalog.CategoryPonies)
		if e.HasTag("npc") || e.HasTag("quest") {
			continue
		}
		if pony, ok := e.Pony(); ok && len(pony.Group) > 0 && pony.GroupMaster {
			continue
		}
		pool = append(pool, e)
	}
	return pool
}

func (g *Game) Start() {
	g.pool = Pool(g.catalog)
	g.guessed = nil
	g.isGuess = make(map[string]bool)
	g.started = g.now()
	g.finished = time.Time{}
	g.running = true
	g.next()
}

func (g *Game) Stop() {
	if g.running {
		g.running = false
		g.finished = g.now()
	}
}

func (g *Game) Running() bool {
	return g.running
}

// Current is the pony to guess, nil when the game is not running.
func (g *Game) Current() *catalog.Entity {
	if !g.running {
		return nil
	}
	return g.current
}

// Guess checks text against the current pony's localized name and
// alternate names. A correct guess records the pony and moves on.
func (g *Game) Guess(text string) bool {
	if !g.running || g.current == nil {
		return false
	}
	opts := g.catalog.NameOptions()
	guess := names.Normalize(text, opts)
	if guess == "" {
		return false
	}

	lang := g.catalog.Language()
	candidates := append([]string{g.current.NameFor(lang)}, g.current.AltNamesFor(lang)...)
	for _, candidate := range candidates {
		if names.Normalize(candidate, opts) == guess {
			g.guessed = append(g.guessed, g.current.ID)
			g.isGuess[g.current.ID] = true
			g.next()
			return true
		}
	}
	return false
}

// Skip reveals the current pony without counting it and picks another.
func (g *Game) Skip() *catalog.Entity {
	if !g.running || g.current == nil {
		return nil
	}
	revealed := g.current
	g.next()
	return revealed
}

// Hint returns the current pony's description with its name blanked out.
func (g *Game) Hint() string {
	if g.Current() == nil {
		return ""
	}
	return hintFor(g.catalog, g.current)
}

func hintFor(cat *catalog.Catalog, e *catalog.Entity) string {
	lang := cat.Language()
	description := e.DescriptionFor(lang)
	name := e.NameFor(lang)
	if name == "" {
		return description
	}
	return strings.ReplaceAll(description, name, hintBlank)
}

func (g *Game) Progress() (guessed, total int) {
	return len(g.guessed), len(g.pool)
}

func (g *Game) Guessed() []string {
	return append([]string(nil), g.guessed...)
}

// Done reports whether every pony in the pool has been guessed.
func (g *Game) Done() bool {
	return g.pool != nil && len(g.guessed) >= len(g.pool)
}

func (g *Game) Elapsed() time.Duration {
	if g.started.IsZero() {
		return 0
	}
	if !g.running {
		return g.finished.Sub(g.started)
	}
	return g.now().Sub(g.started)
}

func (g *Game) next() {
	var remaining []*catalog.Entity
	for _, e := range g.pool {
		if !g.isGuess[e.ID] {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == 0 {
		g.current = nil
		g.Stop()
		return
	}
	g.current = remaining[g.rng.IntN(len(remaining))]
}

// FormatElapsed renders d as m:ss, or h:mm:ss past the hour.
func FormatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	hours, minutes, seconds := total/3600, total/60%60, total%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
