// Package catalogtest provides a small game-data catalog for tests.
package catalogtest

import (
	_ "embed"
	"testing"

	"ponydex/internal/catalog"
)

//go:embed game-data.json
var GameData []byte

func Load(tb testing.TB) *catalog.Catalog {
	tb.Helper()
	cat, err := catalog.Parse(GameData)
	if err != nil {
		tb.Fatalf("parsing test catalog: %v", err)
	}
	return cat
}
