package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ponydex/internal/catalog"
	"ponydex/internal/export"
	"ponydex/internal/inventory"
	"ponydex/internal/search"
)

type categoryResponse struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type entitySummary struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Index    int      `json:"index"`
	Tags     []string `json:"tags"`
	Owned    bool     `json:"owned"`
}

type entityResponse struct {
	entitySummary
	AltNames    []string `json:"alt_names"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Image       string   `json:"image,omitempty"`
	Attributes  any      `json:"attributes,omitempty"`
	Level       int      `json:"level,omitempty"`
	Note        string   `json:"note,omitempty"`
}

type listResponse struct {
	Category string          `json:"category"`
	Results  []entitySummary `json:"results"`
}

type setOwnedRequest struct {
	Owned *bool `json:"owned"`
	Level *int  `json:"level"`
}

type setNoteRequest struct {
	Note string `json:"note"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	var out []categoryResponse
	for _, c := range s.catalog.Categories() {
		ids, _ := s.catalog.IDs(c.Key)
		out = append(out, categoryResponse{Key: c.Key, Name: s.catalog.CategoryName(c.Key), Count: len(ids)})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	q := r.URL.Query()

	filters := search.DefaultFilters(category)
	if q.Has("filters") {
		parsed, err := search.ParseFilterList(category, q.Get("filters"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		filters = parsed
	}
	reverse, _ := strconv.ParseBool(q.Get("reverse"))

	ids, err := s.engine.ComputeVisibleIDs(search.Query{
		Category: category,
		Text:     q.Get("q"),
		Filters:  filters,
		Sort:     q.Get("sort"),
		Reverse:  reverse,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listResponse{Category: category, Results: s.summaries(ids)})
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	e := s.catalog.Get(chi.URLParam(r, "id"), r.URL.Query().Get("category"))
	if e == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "entity not found"})
		return
	}

	lang := s.catalog.Language()
	out := entityResponse{
		entitySummary: s.summary(e),
		AltNames:      append([]string{}, e.AltNamesFor(lang)...),
		Description:   e.DescriptionFor(lang),
		Image:         e.Image.Full,
	}
	if e.Location != "" {
		out.Location = s.catalog.LocationName(e.Location)
	}
	if _, generic := e.Attributes.(*catalog.GenericAttributes); !generic {
		out.Attributes = e.Attributes
	}
	if s.inventory != nil {
		if rec, ok := s.inventory.GetInfo(e.ID); ok {
			out.Level = rec.Level
		}
		out.Note = s.inventory.Note(e.ID)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	ids, err := s.engine.ComputeVisibleIDs(search.Query{Category: category, Scope: search.ScopeInventory})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listResponse{Category: category, Results: s.summaries(ids)})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", category+".csv"))
	if err := export.InventoryCSV(w, s.catalog, s.inventory, category, export.DefaultDialect); err != nil {
		w.Header().Del("Content-Disposition")
		s.writeError(w, err)
	}
}

func (s *Server) handleSetOwned(w http.ResponseWriter, r *http.Request) {
	var req setOwnedRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	}
	owned := req.Owned == nil || *req.Owned
	s.setOwned(w, r, owned, req.Level)
}

func (s *Server) handleDisown(w http.ResponseWriter, r *http.Request) {
	s.setOwned(w, r, false, nil)
}

func (s *Server) setOwned(w http.ResponseWriter, r *http.Request, owned bool, level *int) {
	id := chi.URLParam(r, "id")
	if err := s.inventory.SetOwned(r.Context(), id, owned, level); err != nil {
		s.writeError(w, err)
		return
	}
	e := s.catalog.Get(id, "")
	out := entityResponse{entitySummary: s.summary(e)}
	if rec, ok := s.inventory.GetInfo(id); ok {
		out.Level = rec.Level
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetNote(w http.ResponseWriter, r *http.Request) {
	var req setNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.inventory.SetNote(r.Context(), id, req.Note); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.inventory.Stats())
}

func (s *Server) summaries(ids []string) []entitySummary {
	out := make([]entitySummary, 0, len(ids))
	for _, id := range ids {
		if e := s.catalog.Get(id, ""); e != nil {
			out = append(out, s.summary(e))
		}
	}
	return out
}

func (s *Server) summary(e *catalog.Entity) entitySummary {
	out := entitySummary{
		ID:       e.ID,
		Category: e.Category,
		Name:     s.catalog.DisplayName(e),
		Index:    e.Index,
		Tags:     append([]string{}, e.Tags...),
	}
	if s.inventory != nil {
		out.Owned = isOwned(s.inventory, e)
	}
	return out
}

func isOwned(inv Inventory, e *catalog.Entity) bool {
	if e.Category == catalog.CategoryHouses {
		for _, id := range inv.DerivedHouses() {
			if id == e.ID {
				return true
			}
		}
		return false
	}
	rec, ok := inv.GetInfo(e.ID)
	return ok && rec.Owned
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("writing response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrUnknownCategory), errors.Is(err, inventory.ErrUnknownEntity):
		status = http.StatusNotFound
	case errors.Is(err, search.ErrUnknownFilter),
		errors.Is(err, search.ErrUnknownSort),
		errors.Is(err, inventory.ErrInvalidLevel),
		errors.Is(err, export.ErrUnsupportedCategory):
		status = http.StatusBadRequest
	default:
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
