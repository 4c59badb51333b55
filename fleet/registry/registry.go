package registry

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/harbormaster/fleet/fleet/ship"
)

var ErrShipNotFound = errors.New("ship not found")

// Registry holds every live ship, keyed by ID.
type Registry struct {
	ships map[string]*ship.Ship
	mu    sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		ships: make(map[string]*ship.Ship),
	}
}

// Insert stores a new ship under a freshly generated UUID and returns a
// snapshot of the stored record. The caller's struct is not retained.
func (r *Registry) Insert(s ship.Ship) *ship.Ship {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = uuid.NewString()
	stored := s
	r.ships[stored.ID] = &stored

	snap := stored
	return &snap
}

// Get returns a snapshot of the ship with the given ID.
func (r *Registry) Get(id string) (*ship.Ship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.ships[id]
	if !ok {
		return nil, ErrShipNotFound
	}

	snap := *s
	return &snap, nil
}

// List returns snapshots of all live ships. Order is unspecified.
func (r *Registry) List() []*ship.Ship {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*ship.Ship, 0, len(r.ships))
	for _, s := range r.ships {
		snap := *s
		result = append(result, &snap)
	}

	return result
}

// Update applies mutate to the stored ship under the write lock, making the
// read-modify-write atomic with respect to every other registry operation.
// The mutation runs against a working copy: if mutate returns an error the
// stored ship is left untouched.
func (r *Registry) Update(id string, mutate func(*ship.Ship) error) (*ship.Ship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.ships[id]
	if !ok {
		return nil, ErrShipNotFound
	}

	next := *cur
	if err := mutate(&next); err != nil {
		return nil, err
	}
	next.ID = cur.ID // the ID is immutable
	r.ships[id] = &next

	snap := next
	return &snap, nil
}

// Delete removes a ship. Deleting an absent ID fails with ErrShipNotFound.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ships[id]; !ok {
		return ErrShipNotFound
	}
	delete(r.ships, id)

	return nil
}

// Count returns the number of live ships.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ships)
}
