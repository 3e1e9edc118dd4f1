// Package registry provides the in-memory monitor registry. It is a pure
// data structure: it knows nothing about the remote system-of-record and is
// only ever mutated by the monitor service after remote confirmation.
package registry

import (
	"sync"

	"github.com/bonial-oss/monitor-registry/pkg/models"
)

// Store is an ordered collection of monitors, newest first, keyed uniquely
// by monitor ID. All methods are safe for concurrent use; mutations are
// serialized relative to each other.
type Store struct {
	mu       sync.RWMutex
	monitors []*models.Monitor
}

// NewStore creates an empty *Store.
func NewStore() *Store {
	return &Store{}
}

// List returns a snapshot of all monitors, newest first. The returned slice
// holds copies, so callers cannot alias the internal state.
func (s *Store) List() []*models.Monitor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	monitors := make([]*models.Monitor, len(s.monitors))
	for i, monitor := range s.monitors {
		copied := *monitor
		monitors[i] = &copied
	}

	return monitors
}

// Len returns the number of registered monitors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.monitors)
}

// Insert prepends monitor to the collection. It returns a
// *models.DuplicateIDError if a monitor with the same ID is already
// registered. This is unreachable with random IDs but guarded regardless.
func (s *Store) Insert(monitor *models.Monitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.monitors {
		if existing.ID == monitor.ID {
			return &models.DuplicateIDError{ID: monitor.ID}
		}
	}

	copied := *monitor
	s.monitors = append([]*models.Monitor{&copied}, s.monitors...)

	return nil
}

// Remove deletes the monitor with the given ID if present and reports
// whether a removal occurred. Removing an absent ID is not an error.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, monitor := range s.monitors {
		if monitor.ID == id {
			s.monitors = append(s.monitors[:i], s.monitors[i+1:]...)
			return true
		}
	}

	return false
}

// Replace swaps the entire collection for monitors, preserving the given
// order. Used by refresh to adopt the remote state wholesale.
func (s *Store) Replace(monitors []*models.Monitor) {
	copied := make([]*models.Monitor, len(monitors))
	for i, monitor := range monitors {
		m := *monitor
		copied[i] = &m
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.monitors = copied
}
