package gameplay

import (
	"errors"
	"fmt"

	"boulder-smash/internal/ecs"
)

var (
	// ErrEntityNotFound is returned for names with no live entity.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrDuplicateName is returned when a live entity already holds the name.
	ErrDuplicateName = errors.New("entity name in use")
	// ErrNotAttached is returned for entities that have no GameObject.
	ErrNotAttached = errors.New("entity not attached to a GameObject")
)

type namedEntity struct {
	name   string
	id     ecs.EntityID
	entity *Entity
}

// EntityManager is a name index over gameplay entities. It does not own
// them: every lookup is checked against the registry, and entries whose
// GameObject has been swept are dropped.
type EntityManager struct {
	registry *ecs.Registry
	entries  []namedEntity
}

// NewEntityManager creates an empty index over r.
func NewEntityManager(r *ecs.Registry) *EntityManager {
	return &EntityManager{registry: r}
}

// RegisterEntity indexes e under e.Name.
func (m *EntityManager) RegisterEntity(e *Entity) error {
	g := e.GameObject()
	if g == nil {
		return fmt.Errorf("register %q: %w", e.Name, ErrNotAttached)
	}
	m.prune()
	for _, n := range m.entries {
		if n.name == e.Name {
			return fmt.Errorf("register %q: %w", e.Name, ErrDuplicateName)
		}
	}
	m.entries = append(m.entries, namedEntity{name: e.Name, id: g.ID(), entity: e})
	return nil
}

// GetEntity returns the live entity registered as name. An entity destroyed
// earlier in the pass is reported missing although its slot is not yet swept.
func (m *EntityManager) GetEntity(name string) (*Entity, error) {
	for i, n := range m.entries {
		if n.name != name {
			continue
		}
		if m.registry.Alive(n.id) {
			if g := n.entity.GameObject(); g == nil || !g.IsActive() {
				break
			}
			return n.entity, nil
		}
		m.entries = append(m.entries[:i], m.entries[i+1:]...)
		break
	}
	return nil, fmt.Errorf("%w: %q", ErrEntityNotFound, name)
}

// Unregister drops name from the index and reports whether it was present.
func (m *EntityManager) Unregister(name string) bool {
	for i, n := range m.entries {
		if n.name == name {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the names of live entries in registration order.
func (m *EntityManager) Names() []string {
	m.prune()
	names := make([]string, len(m.entries))
	for i, n := range m.entries {
		names[i] = n.name
	}
	return names
}

// Len returns the number of live entries.
func (m *EntityManager) Len() int {
	m.prune()
	return len(m.entries)
}

func (m *EntityManager) prune() {
	kept := m.entries[:0]
	for _, n := range m.entries {
		if m.registry.Alive(n.id) {
			kept = append(kept, n)
		}
	}
	clear(m.entries[len(kept):])
	m.entries = kept
}
