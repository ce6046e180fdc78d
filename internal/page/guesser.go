package page

import (
	"context"

	"ponydex/internal/catalog"
	"ponydex/internal/guesser"
)

type GuesserPage struct {
	catalog *catalog.Catalog
	options []guesser.Option
	game    *guesser.Game
}

func NewGuesserPage(cat *catalog.Catalog, opts ...guesser.Option) *GuesserPage {
	return &GuesserPage{catalog: cat, options: opts}
}

func (p *GuesserPage) Load(ctx context.Context, path []string) error {
	p.game = guesser.New(p.catalog, p.options...)
	return nil
}

func (p *GuesserPage) Reload(ctx context.Context, path []string) error { return nil }

func (p *GuesserPage) Update(ctx context.Context, path []string) error { return nil }

// Unload stops a running game.
func (p *GuesserPage) Unload(ctx context.Context, path []string) error {
	if p.game != nil {
		p.game.Stop()
	}
	return nil
}

// Game is nil until the page is loaded.
func (p *GuesserPage) Game() *guesser.Game {
	return p.game
}
