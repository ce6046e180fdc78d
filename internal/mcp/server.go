package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ponydex/internal/catalog"
	"ponydex/internal/inventory"
	"ponydex/internal/search"
)

// Inventory is the part of the inventory manager the tools read and write.
type Inventory interface {
	search.Inventory
	GetInfo(id string) (inventory.Record, bool)
	Note(id string) string
	SetOwned(ctx context.Context, id string, owned bool, level *int) error
	Stats() inventory.Stats
}

type Server struct {
	catalog   *catalog.Catalog
	engine    *search.Engine
	inventory Inventory
	mcp       *sdk.Server
}

// NewServer exposes cat and, when inv is not nil, the player's inventory.
func NewServer(cat *catalog.Catalog, inv Inventory, version string) *Server {
	var searchInv search.Inventory
	if inv != nil {
		searchInv = inv
	}
	s := &Server{
		catalog:   cat,
		engine:    search.NewEngine(cat, searchInv),
		inventory: inv,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "ponydex",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
