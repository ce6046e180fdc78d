package mcp

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ponydex/internal/catalog"
	"ponydex/internal/search"
)

const defaultSuggestions = 5

var errNoInventory = errors.New("inventory is not available")

type SearchCatalogInput struct {
	Category string `json:"category" jsonschema:"ponies, houses, shops or decor"`
	Query    string `json:"query,omitempty" jsonschema:"text matched against names and alternate names"`
	Filters  string `json:"filters,omitempty" jsonschema:"dot separated filters to enable, e.g. playable.pro"`
	Sort     string `json:"sort,omitempty" jsonschema:"index or name"`
	Reverse  bool   `json:"reverse,omitempty" jsonschema:"reverse the sort order"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
}

type GetEntityInput struct {
	ID       string `json:"id" jsonschema:"entity id, e.g. Pony_Rarity"`
	Category string `json:"category,omitempty" jsonschema:"optional category the entity must belong to"`
}

type MatchNameInput struct {
	Name     string `json:"name" jsonschema:"name as a player would type it"`
	Category string `json:"category,omitempty" jsonschema:"category to match in, defaults to ponies"`
}

type ListInventoryInput struct {
	Category string `json:"category,omitempty" jsonschema:"ponies, houses or shops, defaults to ponies"`
}

type SetOwnedInput struct {
	ID    string `json:"id" jsonschema:"entity id"`
	Owned bool   `json:"owned" jsonschema:"whether the player owns the entity"`
	Level *int   `json:"level,omitempty" jsonschema:"star level from 0 to 5, ponies only"`
}

type GetStatsInput struct{}

type EntitySummaryOutput struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Index    int      `json:"index"`
	Tags     []string `json:"tags"`
}

type EntityOutput struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	AltNames    []string `json:"alt_names"`
	Description string   `json:"description,omitempty"`
	Index       int      `json:"index"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location,omitempty"`
	Image       string   `json:"image,omitempty"`
	Attributes  any      `json:"attributes,omitempty"`
	Owned       bool     `json:"owned"`
	Level       int      `json:"level,omitempty"`
	Note        string   `json:"note,omitempty"`
}

type SearchCatalogOutput struct {
	Results []EntitySummaryOutput `json:"results"`
	Total   int                   `json:"total"`
}

type SuggestionOutput struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type MatchNameOutput struct {
	Matched     bool               `json:"matched"`
	ID          string             `json:"id,omitempty"`
	Name        string             `json:"name,omitempty"`
	Alt         bool               `json:"alt,omitempty"`
	Suggestions []SuggestionOutput `json:"suggestions,omitempty"`
}

type ListInventoryOutput struct {
	Category string                `json:"category"`
	Entities []EntitySummaryOutput `json:"entities"`
}

type SetOwnedOutput struct {
	ID    string `json:"id"`
	Owned bool   `json:"owned"`
	Level int    `json:"level"`
}

type StatsOutput struct {
	Ponies         int     `json:"ponies"`
	PoniesTotal    int     `json:"ponies_total"`
	MaxLevelPonies int     `json:"max_level_ponies"`
	Houses         int     `json:"houses"`
	HousesTotal    int     `json:"houses_total"`
	Shops          int     `json:"shops"`
	ShopsTotal     int     `json:"shops_total"`
	TotalPlaytime  float64 `json:"total_playtime"`
	JoinDate       string  `json:"join_date,omitempty"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_catalog",
		Description: "Search one category of the game catalog by name with filters and sorting",
	}, s.handleSearchCatalog)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_entity",
		Description: "Retrieve a catalog entity with its attributes and ownership",
	}, s.handleGetEntity)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "match_name",
		Description: "Resolve a typed name to an entity id, with suggestions when nothing matches",
	}, s.handleMatchName)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_inventory",
		Description: "List the entities the player owns in a category",
	}, s.handleListInventory)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "set_owned",
		Description: "Mark an entity as owned or not owned, optionally with a star level",
	}, s.handleSetOwned)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_stats",
		Description: "Summarize the player's collection",
	}, s.handleGetStats)
}

func (s *Server) handleSearchCatalog(ctx context.Context, req *sdk.CallToolRequest, input SearchCatalogInput) (*sdk.CallToolResult, SearchCatalogOutput, error) {
	if input.Category == "" {
		return nil, SearchCatalogOutput{}, fmt.Errorf("category is required")
	}

	filters := search.DefaultFilters(input.Category)
	if input.Filters != "" {
		parsed, err := search.ParseFilterList(input.Category, input.Filters)
		if err != nil {
			return nil, SearchCatalogOutput{}, err
		}
		filters = parsed
	}

	ids, err := s.engine.ComputeVisibleIDs(search.Query{
		Category: input.Category,
		Text:     input.Query,
		Filters:  filters,
		Sort:     input.Sort,
		Reverse:  input.Reverse,
	})
	if err != nil {
		return nil, SearchCatalogOutput{}, err
	}

	total := len(ids)
	if input.Limit > 0 && len(ids) > input.Limit {
		ids = ids[:input.Limit]
	}
	return nil, SearchCatalogOutput{Results: s.summaries(ids), Total: total}, nil
}

func (s *Server) handleGetEntity(ctx context.Context, req *sdk.CallToolRequest, input GetEntityInput) (*sdk.CallToolResult, EntityOutput, error) {
	if input.ID == "" {
		return nil, EntityOutput{}, fmt.Errorf("id is required")
	}
	entity := s.catalog.Get(input.ID, input.Category)
	if entity == nil {
		return nil, EntityOutput{}, fmt.Errorf("entity not found")
	}

	out := s.entityOutput(entity)
	if s.inventory != nil {
		if rec, ok := s.inventory.GetInfo(entity.ID); ok {
			out.Owned = rec.Owned
			out.Level = rec.Level
		}
		out.Note = s.inventory.Note(entity.ID)
	}
	return nil, out, nil
}

func (s *Server) handleMatchName(ctx context.Context, req *sdk.CallToolRequest, input MatchNameInput) (*sdk.CallToolResult, MatchNameOutput, error) {
	if input.Name == "" {
		return nil, MatchNameOutput{}, fmt.Errorf("name is required")
	}
	category := input.Category
	if category == "" {
		category = catalog.CategoryPonies
	}

	table, err := s.catalog.BuildNameTable(category, catalog.NameTableOptions{})
	if err != nil {
		return nil, MatchNameOutput{}, err
	}
	if m, ok := table.Match(input.Name); ok {
		return nil, MatchNameOutput{Matched: true, ID: m.ID, Name: m.Name, Alt: m.Alt}, nil
	}

	out := MatchNameOutput{}
	for _, suggestion := range table.Suggest(input.Name, defaultSuggestions) {
		out.Suggestions = append(out.Suggestions, SuggestionOutput{
			ID:    suggestion.ID,
			Name:  suggestion.Name,
			Score: suggestion.Score,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListInventory(ctx context.Context, req *sdk.CallToolRequest, input ListInventoryInput) (*sdk.CallToolResult, ListInventoryOutput, error) {
	if s.inventory == nil {
		return nil, ListInventoryOutput{}, errNoInventory
	}
	category := input.Category
	if category == "" {
		category = catalog.CategoryPonies
	}

	ids, err := s.engine.ComputeVisibleIDs(search.Query{Category: category, Scope: search.ScopeInventory})
	if err != nil {
		return nil, ListInventoryOutput{}, err
	}
	return nil, ListInventoryOutput{Category: category, Entities: s.summaries(ids)}, nil
}

func (s *Server) handleSetOwned(ctx context.Context, req *sdk.CallToolRequest, input SetOwnedInput) (*sdk.CallToolResult, SetOwnedOutput, error) {
	if s.inventory == nil {
		return nil, SetOwnedOutput{}, errNoInventory
	}
	if input.ID == "" {
		return nil, SetOwnedOutput{}, fmt.Errorf("id is required")
	}
	if err := s.inventory.SetOwned(ctx, input.ID, input.Owned, input.Level); err != nil {
		return nil, SetOwnedOutput{}, err
	}

	out := SetOwnedOutput{ID: input.ID}
	if rec, ok := s.inventory.GetInfo(input.ID); ok {
		out.Owned = rec.Owned
		out.Level = rec.Level
	}
	return nil, out, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *sdk.CallToolRequest, input GetStatsInput) (*sdk.CallToolResult, StatsOutput, error) {
	if s.inventory == nil {
		return nil, StatsOutput{}, errNoInventory
	}
	stats := s.inventory.Stats()
	return nil, StatsOutput{
		Ponies:         stats.Ponies,
		PoniesTotal:    stats.PoniesTotal,
		MaxLevelPonies: stats.MaxLevelPonies,
		Houses:         stats.Houses,
		HousesTotal:    stats.HousesTotal,
		Shops:          stats.Shops,
		ShopsTotal:     stats.ShopsTotal,
		TotalPlaytime:  stats.TotalPlaytime,
		JoinDate:       stats.JoinDate,
	}, nil
}

func (s *Server) summaries(ids []string) []EntitySummaryOutput {
	out := make([]EntitySummaryOutput, 0, len(ids))
	for _, id := range ids {
		entity := s.catalog.Get(id, "")
		if entity == nil {
			continue
		}
		out = append(out, EntitySummaryOutput{
			ID:       entity.ID,
			Category: entity.Category,
			Name:     s.catalog.DisplayName(entity),
			Index:    entity.Index,
			Tags:     append([]string{}, entity.Tags...),
		})
	}
	return out
}

func (s *Server) entityOutput(entity *catalog.Entity) EntityOutput {
	lang := s.catalog.Language()
	out := EntityOutput{
		ID:          entity.ID,
		Category:    entity.Category,
		Name:        s.catalog.DisplayName(entity),
		AltNames:    append([]string{}, entity.AltNamesFor(lang)...),
		Description: entity.DescriptionFor(lang),
		Index:       entity.Index,
		Tags:        append([]string{}, entity.Tags...),
		Image:       entity.Image.Full,
	}
	if entity.Location != "" {
		out.Location = s.catalog.LocationName(entity.Location)
	}
	if _, generic := entity.Attributes.(*catalog.GenericAttributes); !generic {
		out.Attributes = entity.Attributes
	}
	return out
}
