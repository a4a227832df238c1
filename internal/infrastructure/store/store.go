// Package store is an in-memory record host implementing ports.DataService.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/progressbar/internal/logger"
	"github.com/alexisbeaulieu97/progressbar/internal/ports"
)

// ErrRecordNotFound is returned when writing to an unknown record.
var ErrRecordNotFound = errors.New("record not found")

// Record is a live reference to a stored record. Attribute reads always go
// through the store, so a Record never holds stale values.
type Record struct {
	id string
}

// ID implements ports.Record.
func (r Record) ID() string { return r.id }

// Store keeps records and their subscribers. Notifications are delivered
// synchronously on the writer's goroutine, after the lock is released.
type Store struct {
	mu      sync.RWMutex
	records map[string]map[string]any
	subs    map[ports.Handle]ports.Subscription
	nextID  ports.Handle
	log     *logger.Logger
}

var _ ports.DataService = (*Store)(nil)

// New creates an empty store.
func New(log *logger.Logger) *Store {
	return &Store{
		records: make(map[string]map[string]any),
		subs:    make(map[ports.Handle]ports.Subscription),
		log:     log,
	}
}

// Create adds or replaces a record. An empty id gets a generated UUID.
func (s *Store) Create(id string, attrs map[string]any) Record {
	if id == "" {
		id = uuid.NewString()
	}

	values := make(map[string]any, len(attrs))
	for k, v := range attrs {
		values[k] = v
	}

	s.mu.Lock()
	_, existed := s.records[id]
	s.records[id] = values
	s.mu.Unlock()

	if existed {
		s.notify(id, keys(values))
	}
	return Record{id: id}
}

// Get returns a reference to an existing record.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return Record{id: id}, ok
}

// Snapshot copies the current attributes of a record.
func (s *Store) Snapshot(id string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, ok := s.records[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out, true
}

// Attribute implements ports.DataService.
func (s *Store) Attribute(record ports.Record, name string) (any, bool) {
	if record == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, ok := s.records[record.ID()]
	if !ok {
		return nil, false
	}
	v, ok := values[name]
	return v, ok
}

// Set writes one attribute and notifies subscribers.
func (s *Store) Set(id, attr string, value any) error {
	return s.Commit(id, map[string]any{attr: value})
}

// Commit writes several attributes at once. Record-level subscribers are
// notified once; attribute subscribers once per changed attribute.
func (s *Store) Commit(id string, values map[string]any) error {
	s.mu.Lock()
	record, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("commit %s: %w", id, ErrRecordNotFound)
	}
	for k, v := range values {
		record[k] = v
	}
	s.mu.Unlock()

	s.log.WithFields(map[string]any{"record": id, "attributes": len(values)}).Debug("record committed")
	s.notify(id, keys(values))
	return nil
}

// Remove deletes a record and notifies its record-level subscribers.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	_, ok := s.records[id]
	delete(s.records, id)
	s.mu.Unlock()

	if ok {
		s.notify(id, nil)
	}
}

// Subscribe implements ports.DataService.
func (s *Store) Subscribe(sub ports.Subscription) ports.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.subs[s.nextID] = sub
	return s.nextID
}

// Unsubscribe implements ports.DataService. Unknown handles are ignored.
func (s *Store) Unsubscribe(handle ports.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, handle)
}

// Active returns the number of live subscriptions.
func (s *Store) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Store) notify(id string, attrs []string) {
	changed := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		changed[a] = struct{}{}
	}

	s.mu.RLock()
	handles := make([]ports.Handle, 0, len(s.subs))
	for h, sub := range s.subs {
		if sub.RecordID != id {
			continue
		}
		if sub.Attribute != "" {
			if _, ok := changed[sub.Attribute]; !ok {
				continue
			}
		}
		handles = append(handles, h)
	}
	s.mu.RUnlock()

	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		// an earlier callback may have released this handle
		s.mu.RLock()
		sub, live := s.subs[h]
		s.mu.RUnlock()
		if !live || sub.Callback == nil {
			continue
		}
		sub.Callback()
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
