// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package presence

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/danielhkuo/live-poll/realtime"
)

// Tracker maps connection ids to student names. One name may own several
// connections (e.g. two tabs); the roster lists it once.
type Tracker struct {
	mu        sync.Mutex
	conns     map[string]string
	publisher realtime.Publisher
}

func NewTracker(publisher realtime.Publisher) *Tracker {
	return &Tracker{
		conns:     make(map[string]string),
		publisher: publisher,
	}
}

// Join registers connID under name and broadcasts the roster.
func (t *Tracker) Join(connID, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.conns[connID] = name
	slog.Info("student joined", "conn_id", connID, "name", name)
	t.publishRoster()
}

// Disconnect forgets connID. The roster is broadcast only when the
// connection belonged to a student.
func (t *Tracker) Disconnect(connID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	name, ok := t.conns[connID]
	if !ok {
		return false
	}
	delete(t.conns, connID)
	slog.Info("student left", "conn_id", connID, "name", name)
	t.publishRoster()
	return true
}

// Kick broadcasts student:kicked with the bare name as data, drops every connection mapped to name, and
// broadcasts the roster. Connections stay open; the client is expected to
// leave on its own. Returns the number of connections removed.
func (t *Tracker) Kick(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.publisher.Publish(realtime.Event{Name: realtime.EventKicked, Data: name})

	removed := 0
	for id, n := range t.conns {
		if n == name {
			delete(t.conns, id)
			removed++
		}
	}
	slog.Info("student kicked", "name", name, "connections", removed)

	t.publishRoster()
	return removed
}

// Roster returns the distinct connected names, sorted.
func (t *Tracker) Roster() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.roster()
}

func (t *Tracker) roster() []string {
	seen := make(map[string]struct{}, len(t.conns))
	names := make([]string, 0, len(t.conns))
	for _, name := range t.conns {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// publishRoster must be called with mu held.
func (t *Tracker) publishRoster() {
	t.publisher.Publish(realtime.Event{Name: realtime.EventParticipants, Data: t.roster()})
}
