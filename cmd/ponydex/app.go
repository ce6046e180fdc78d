package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ponydex/internal/catalog"
	"ponydex/internal/config"
	"ponydex/internal/inventory"
	"ponydex/internal/store"
)

// app holds what a command needs: the config, the catalog and, when
// requested, the inventory and the store behind it.
type app struct {
	cfg       *config.ProjectConfig
	logger    *slog.Logger
	catalog   *catalog.Catalog
	store     store.Store
	inventory *inventory.Manager
}

func openApp(ctx context.Context, opts *rootOptions, withInventory bool) (*app, error) {
	cfg, err := config.LoadProjectConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: slog.Default()}

	lang := cfg.Catalog.Language
	if opts.language != "" {
		lang = opts.language
	}
	a.catalog, err = catalog.Load(cfg.Catalog.Path,
		catalog.WithLogger(a.logger),
		catalog.WithLanguage(lang),
	)
	if err != nil {
		return nil, err
	}

	if !withInventory {
		return a, nil
	}

	a.store, err = openStore(ctx, cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}
	a.inventory, err = inventory.Open(ctx, a.store, a.catalog, inventory.Options{
		Key:    cfg.Storage.Key,
		Logger: a.logger,
	})
	if err != nil {
		a.store.Close(ctx)
		return nil, fmt.Errorf("%w (run `ponydex reset` to discard it)", err)
	}
	return a, nil
}

func (a *app) Close(ctx context.Context) {
	if a.store != nil {
		a.store.Close(ctx)
	}
}

var ownableCategories = []string{catalog.CategoryPonies, catalog.CategoryShops, catalog.CategoryHouses, catalog.CategoryDecor}

// resolveEntity accepts an id or a name as a player would type it. An
// empty category searches every category, ponies first.
func (a *app) resolveEntity(arg, category string) (*catalog.Entity, error) {
	if e := a.catalog.Get(arg, category); e != nil {
		return e, nil
	}

	categories := ownableCategories
	if category != "" {
		if !a.catalog.HasCategory(category) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownCategory, category)
		}
		categories = []string{category}
	}

	var suggestions []string
	for _, c := range categories {
		if !a.catalog.HasCategory(c) {
			continue
		}
		table, err := a.catalog.BuildNameTable(c, catalog.NameTableOptions{IncludeUnused: true})
		if err != nil {
			return nil, err
		}
		if m, ok := table.Match(arg); ok {
			return a.catalog.Get(m.ID, c), nil
		}
		for _, s := range table.Suggest(arg, 3) {
			suggestions = append(suggestions, fmt.Sprintf("%s (%s)", s.Name, s.ID))
		}
	}

	if len(suggestions) > 0 {
		return nil, fmt.Errorf("no entity named %q, did you mean: %s", arg, strings.Join(suggestions, ", "))
	}
	return nil, fmt.Errorf("no entity named %q", arg)
}
