package inventory

import (
	"context"

	"ponydex/internal/catalog"
)

// Batch stages several mutations against a working copy of the snapshot.
type Batch struct {
	m      *Manager
	data   Snapshot
	events []Event
}

func (b *Batch) Reset() {
	b.data = NewSnapshot()
	b.events = append(b.events, Event{Kind: EventReset})
}

func (b *Batch) SetPlayerInfo(info PlayerInfo) {
	b.data.PlayerInfo = info
	b.events = append(b.events, Event{Kind: EventPlayerInfo})
}

func (b *Batch) SetOwned(id string, owned bool, level *int) error {
	e, err := b.m.entity(id)
	if err != nil {
		return err
	}
	if err := checkLevel(level); err != nil {
		return err
	}
	rec := b.data.setOwned(e, owned, level)
	kind := EventOwned
	if !owned {
		kind = EventDisowned
	}
	b.events = append(b.events, Event{Kind: kind, ID: id, Category: e.Category, Record: rec})
	return nil
}

func (b *Batch) Entity(id string) *catalog.Entity {
	return b.m.catalog.Get(id, "")
}

// Update runs fn against a copy of the snapshot. If fn returns an error
// nothing changes; otherwise the copy replaces the snapshot and is
// persisted once. fn must not call other Manager methods.
func (m *Manager) Update(ctx context.Context, fn func(b *Batch) error) error {
	m.mu.Lock()
	b := &Batch{m: m, data: m.data.Clone()}
	if err := fn(b); err != nil {
		m.mu.Unlock()
		return err
	}
	m.data = b.data
	events := m.persistLocked(ctx, b.events...)
	m.mu.Unlock()

	m.emit(events)
	return nil
}
