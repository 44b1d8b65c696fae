// Package league holds the in-memory league registry and the season runner.
// The per-league mutex here is the caller-side re-entrancy guard the
// simulation core relies on: only one advance is ever in flight per league.
package league

import (
	"errors"
	"sync"

	"github.com/XavierBriggs/gridiron/pkg/models"
)

var (
	// ErrNotFound means no league is registered under that ID
	ErrNotFound = errors.New("league: not found")

	// ErrExists means the ID is already taken
	ErrExists = errors.New("league: already exists")
)

type entry struct {
	mu sync.Mutex // serializes advances for this league
	lg *models.League
}

// Registry is the in-memory store of loaded leagues
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds a league under its ID
func (r *Registry) Register(lg *models.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[lg.ID]; ok {
		return ErrExists
	}
	r.entries[lg.ID] = &entry{lg: lg}
	return nil
}

// With runs fn while holding the league's advance lock. All simulation and
// phase transitions go through here so concurrent HTTP calls can never
// double-advance the same league.
func (r *Registry) With(id string, fn func(lg *models.League) error) error {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.lg)
}

// IDs lists registered league IDs
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for id := range r.entries {
		out = append(out, id)
	}
	return out
}
