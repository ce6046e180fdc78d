// Package inventory tracks which catalog entities a player owns, at what
// level, with free-form notes, and writes every change through to a store.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"ponydex/internal/catalog"
	"ponydex/internal/store"
)

var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrInvalidLevel  = errors.New("invalid level")
	ErrCorruptSave   = errors.New("corrupt save")
)

const DefaultKey = "save"

type Options struct {
	Key    string
	Logger *slog.Logger
}

type Manager struct {
	catalog *catalog.Catalog
	key     string
	logger  *slog.Logger

	mu       sync.Mutex
	store    store.Store
	data     Snapshot
	degraded bool

	subsMu      sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
}

// Open loads the save stored under opts.Key. A missing save starts empty;
// a store that cannot be read is logged and also starts empty. A save that
// needed migrating is written back immediately.
func Open(ctx context.Context, st store.Store, cat *catalog.Catalog, opts Options) (*Manager, error) {
	if st == nil {
		return nil, errors.New("opening inventory: store is required")
	}
	if cat == nil {
		return nil, errors.New("opening inventory: catalog is required")
	}

	m := &Manager{
		catalog:     cat,
		key:         opts.Key,
		logger:      opts.Logger,
		store:       st,
		data:        NewSnapshot(),
		subscribers: make(map[int]func(Event)),
	}
	if m.key == "" {
		m.key = DefaultKey
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	blob, err := st.Load(ctx, m.key)
	if err != nil {
		m.logger.Warn("reading save failed, starting empty", "key", m.key, "error", err)
		return m, nil
	}
	if blob == nil {
		return m, nil
	}

	snap, migrated, err := DecodeSnapshot(blob)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrCorruptSave, m.key, err)
	}
	m.data = snap

	if migrated {
		m.logger.Info("migrated save", "key", m.key, "version", snap.Version)
		m.persistLocked(ctx)
	}

	return m, nil
}

func (m *Manager) Key() string {
	return m.key
}

// Degraded reports whether writes have fallen back to memory after a
// persistence failure.
func (m *Manager) Degraded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.degraded
}

func (m *Manager) IsOwned(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.data.record(id)
	return ok && rec.Owned
}

// GetInfo returns a copy of the record for id.
func (m *Manager) GetInfo(id string) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.record(id)
}

// SetOwned marks id owned or not. Disowning deletes the record. level may
// be nil to keep the current level.
func (m *Manager) SetOwned(ctx context.Context, id string, owned bool, level *int) error {
	e, err := m.entity(id)
	if err != nil {
		return err
	}
	if err := checkLevel(level); err != nil {
		return err
	}

	m.mu.Lock()
	rec := m.data.setOwned(e, owned, level)
	kind := EventOwned
	if !owned {
		kind = EventDisowned
	}
	events := []Event{{Kind: kind, ID: id, Category: e.Category, Record: rec}}
	events = m.persistLocked(ctx, events...)
	m.mu.Unlock()

	m.emit(events)
	return nil
}

func (m *Manager) Note(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Notes[id]
}

// SetNote stores text as the note for id. Blank text removes the note.
func (m *Manager) SetNote(ctx context.Context, id, text string) error {
	e, err := m.entity(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if strings.TrimSpace(text) == "" {
		delete(m.data.Notes, id)
	} else {
		m.data.Notes[id] = text
	}
	events := m.persistLocked(ctx, Event{Kind: EventNote, ID: id, Category: e.Category})
	m.mu.Unlock()

	m.emit(events)
	return nil
}

func (m *Manager) PlayerInfo() PlayerInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.PlayerInfo
}

func (m *Manager) SetPlayerInfo(ctx context.Context, info PlayerInfo) error {
	m.mu.Lock()
	m.data.PlayerInfo = info
	events := m.persistLocked(ctx, Event{Kind: EventPlayerInfo})
	m.mu.Unlock()

	m.emit(events)
	return nil
}

func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	m.data = NewSnapshot()
	events := m.persistLocked(ctx, Event{Kind: EventReset})
	m.mu.Unlock()

	m.emit(events)
	return nil
}

// OwnedIDs returns the owned ids of category in catalog order. Records
// for ids the catalog no longer knows are left out.
func (m *Manager) OwnedIDs(category string) []string {
	m.mu.Lock()
	bucket := m.data.Inventory.Categories[category]
	ids := make([]string, 0, len(bucket))
	for id, rec := range bucket {
		if rec.Owned && m.catalog.Get(id, category) != nil {
			ids = append(ids, id)
		}
	}
	m.mu.Unlock()

	m.sortByOrder(ids)
	return ids
}

// DerivedHouses returns the houses of owned ponies, each once, in the
// catalog order of the ponies that live in them.
func (m *Manager) DerivedHouses() []string {
	var houses []string
	seen := make(map[string]bool)
	for _, id := range m.OwnedIDs(catalog.CategoryPonies) {
		pony, ok := m.catalog.Get(id, catalog.CategoryPonies).Pony()
		if !ok || pony.House == "" || seen[pony.House] {
			continue
		}
		seen[pony.House] = true
		houses = append(houses, pony.House)
	}
	return houses
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Clone()
}

func (m *Manager) MarshalSnapshot() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return json.MarshalIndent(m.data, "", "  ")
}

func (m *Manager) entity(id string) (*catalog.Entity, error) {
	e := m.catalog.Get(id, "")
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	return e, nil
}

func (m *Manager) sortByOrder(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return m.catalog.Get(ids[i], "").Order < m.catalog.Get(ids[j], "").Order
	})
}

// persistLocked writes the snapshot through to the store. On failure the
// manager keeps working against an in-memory store for the rest of the
// session and a persist_failed event is appended.
func (m *Manager) persistLocked(ctx context.Context, events ...Event) []Event {
	data, err := json.Marshal(m.data)
	if err == nil {
		err = m.store.Save(ctx, m.key, data)
	}
	if err == nil {
		return events
	}

	m.logger.Error("persisting save failed, keeping changes in memory", "key", m.key, "error", err)
	if !m.degraded {
		m.degraded = true
		m.store = store.NewMemory()
		if data != nil {
			_ = m.store.Save(ctx, m.key, data)
		}
	}
	return append(events, Event{Kind: EventPersistFailed, Err: err})
}

func checkLevel(level *int) error {
	if level != nil && (*level < 0 || *level > MaxLevel) {
		return fmt.Errorf("%w: %d not in 0..%d", ErrInvalidLevel, *level, MaxLevel)
	}
	return nil
}
