package inventory

type EventKind string

const (
	EventOwned         EventKind = "owned"
	EventDisowned      EventKind = "disowned"
	EventNote          EventKind = "note"
	EventReset         EventKind = "reset"
	EventPlayerInfo    EventKind = "player_info"
	EventPersistFailed EventKind = "persist_failed"
)

type Event struct {
	Kind     EventKind
	ID       string
	Category string
	Record   Record
	Err      error
}

// Subscribe registers fn for every mutation event. Callbacks run on the
// mutating goroutine after the manager's lock is released.
func (m *Manager) Subscribe(fn func(Event)) (cancel func()) {
	m.subsMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn
	m.subsMu.Unlock()

	return func() {
		m.subsMu.Lock()
		delete(m.subscribers, id)
		m.subsMu.Unlock()
	}
}

func (m *Manager) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	m.subsMu.Lock()
	subs := make([]func(Event), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.subsMu.Unlock()

	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}
