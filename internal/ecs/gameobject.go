package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"time"

	"boulder-smash/internal/transform"
)

// ErrComponentNotFound is returned when a GameObject is queried for a
// component type it does not own.
var ErrComponentNotFound = errors.New("component not found")

// GameObject owns an ordered, type-indexed set of components and one Transform.
// GameObjects are created by Registry.AddGameObject and reclaimed only by the
// registry sweep.
type GameObject struct {
	Transform transform.Transform

	id         EntityID
	active     bool
	components []Component // attachment order
	index      [MaxComponents]Component
	mask       Mask
}

func newGameObject(id EntityID) *GameObject {
	return &GameObject{
		Transform:  transform.Identity(),
		id:         id,
		active:     true,
		components: make([]Component, 0, 4),
	}
}

// ID returns the registry handle of this GameObject.
func (g *GameObject) ID() EntityID { return g.id }

// IsActive reports whether Destroy has not been called yet.
func (g *GameObject) IsActive() bool { return g.active }

// Destroy flags the GameObject for removal at the next registry sweep.
func (g *GameObject) Destroy() { g.active = false }

// Mask returns a copy of the presence bitset.
func (g *GameObject) Mask() Mask { return g.mask }

// Len returns the number of attached components.
func (g *GameObject) Len() int { return len(g.components) }

// Components returns the attached components in attachment order.
func (g *GameObject) Components() []Component {
	return slices.Clone(g.components)
}

// Update calls Update on every component, in attachment order.
func (g *GameObject) Update(dt time.Duration) {
	for _, c := range g.components {
		if u, ok := c.(Updater); ok {
			u.Update(dt)
		}
	}
}

// Render calls Render on every component that contributes draw state.
func (g *GameObject) Render() {
	for _, c := range g.components {
		if r, ok := c.(Renderer); ok {
			r.Render()
		}
	}
}

// AddComponent constructs a zero-valued T, attaches it and returns it.
func AddComponent[T any, PT interface {
	*T
	Component
}](g *GameObject) PT {
	return Attach(g, PT(new(T)))
}

// Attach adds a caller-constructed component. If a component of the same
// concrete type is already attached it is detached first (OnDestroy runs and
// its back-reference is cleared), and c takes its place at the end of the
// attachment order. Start runs after c is indexed, so it may query siblings.
func Attach[C Component](g *GameObject, c C) C {
	id := idFor(reflect.TypeOf(c))
	if old := g.index[id]; old != nil {
		if old == Component(c) {
			return c
		}
		g.detach(id, old)
	}
	c.bind(g)
	g.components = append(g.components, c)
	g.index[id] = c
	g.mask.Set(id)
	if s, ok := any(c).(Starter); ok {
		s.Start()
	}
	return c
}

// HasComponent reports whether a T is attached.
func HasComponent[T any](g *GameObject) bool {
	id, ok := lookupID(reflect.TypeOf((*T)(nil)))
	return ok && g.mask.Has(id)
}

// GetComponent returns the attached *T, or ErrComponentNotFound.
func GetComponent[T any](g *GameObject) (*T, error) {
	t := reflect.TypeOf((*T)(nil))
	if id, ok := lookupID(t); ok && g.mask.Has(id) {
		if c, ok := any(g.index[id]).(*T); ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s on entity %d", ErrComponentNotFound, t.Elem(), g.id.Index())
}

// MustGetComponent is GetComponent for callers that own the invariant.
// It panics when T is absent.
func MustGetComponent[T any](g *GameObject) *T {
	c, err := GetComponent[T](g)
	if err != nil {
		panic(err)
	}
	return c
}

// RemoveComponent detaches T if present and reports whether it was.
func RemoveComponent[T any](g *GameObject) bool {
	id, ok := lookupID(reflect.TypeOf((*T)(nil)))
	if !ok || !g.mask.Has(id) {
		return false
	}
	g.detach(id, g.index[id])
	return true
}

func (g *GameObject) detach(id ComponentID, c Component) {
	if i := slices.Index(g.components, c); i >= 0 {
		g.components = slices.Delete(g.components, i, i+1)
	}
	g.index[id] = nil
	g.mask.Clear(id)
	if d, ok := c.(Destroyer); ok {
		d.OnDestroy()
	}
	c.bind(nil)
}

// teardown runs OnDestroy on every component and drops all references.
// Only the registry sweep calls it.
func (g *GameObject) teardown() {
	for _, c := range g.components {
		if d, ok := c.(Destroyer); ok {
			d.OnDestroy()
		}
		c.bind(nil)
	}
	g.components = nil
	g.index = [MaxComponents]Component{}
	g.mask = Mask{}
}
