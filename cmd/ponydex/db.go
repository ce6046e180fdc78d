package main

import (
	"context"
	"fmt"

	"ponydex/internal/store"
	"ponydex/internal/store/postgres"
	"ponydex/internal/store/sqlite"
)

func openStore(ctx context.Context, dsn string) (store.Store, error) {
	scheme, err := store.Scheme(dsn)
	if err != nil {
		return nil, err
	}

	var st store.Store
	switch scheme {
	case "sqlite":
		st, err = sqlite.New(ctx, dsn)
	case "postgres", "postgresql":
		st, err = postgres.New(ctx, dsn)
	case "memory":
		st = store.NewMemory()
	default:
		return nil, fmt.Errorf("unsupported storage scheme %q", scheme)
	}
	if err != nil {
		return nil, err
	}

	if err := st.EnsureSchema(ctx); err != nil {
		st.Close(ctx)
		return nil, err
	}
	return st, nil
}
