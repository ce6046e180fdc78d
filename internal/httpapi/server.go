// Package httpapi serves the catalog and the player's inventory as JSON
// over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ponydex/internal/catalog"
	"ponydex/internal/inventory"
	"ponydex/internal/search"
)

type Inventory interface {
	search.Inventory
	GetInfo(id string) (inventory.Record, bool)
	SetOwned(ctx context.Context, id string, owned bool, level *int) error
	Note(id string) string
	SetNote(ctx context.Context, id, text string) error
	Stats() inventory.Stats
}

type Server struct {
	catalog   *catalog.Catalog
	engine    *search.Engine
	inventory Inventory
	logger    *slog.Logger
}

// NewServer serves cat. The inventory routes are only mounted when inv is
// not nil.
func NewServer(cat *catalog.Catalog, inv Inventory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	var searchInv search.Inventory
	if inv != nil {
		searchInv = inv
	}
	return &Server{
		catalog:   cat,
		engine:    search.NewEngine(cat, searchInv),
		inventory: inv,
		logger:    logger,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/catalog", s.handleCategories)
	r.Get("/catalog/{category}", s.handleCatalog)
	r.Get("/entities/{id}", s.handleEntity)

	if s.inventory != nil {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/{category}", s.handleInventory)
			r.Get("/{category}/export", s.handleExport)
			r.Put("/{id}", s.handleSetOwned)
			r.Delete("/{id}", s.handleDisown)
		})
		r.Put("/notes/{id}", s.handleSetNote)
		r.Get("/stats", s.handleStats)
	}

	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
