package ecs

import "time"

// Registry is the sole owner of every GameObject. Inactive GameObjects are
// reclaimed only by Refresh, which UpdateAll runs before the update pass.
type Registry struct {
	pool    *entityPool
	objects []*GameObject // registry order
	slots   []*GameObject // by EntityID index, for handle lookup
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		pool:    newEntityPool(),
		objects: make([]*GameObject, 0, 64),
	}
}

// AddGameObject allocates a new active GameObject. The pointer stays valid
// until the GameObject is destroyed and swept; hold its ID to outlive that.
func (r *Registry) AddGameObject() *GameObject {
	id := r.pool.create()
	g := newGameObject(id)
	idx := int(id.Index())
	for len(r.slots) <= idx {
		r.slots = append(r.slots, nil)
	}
	r.slots[idx] = g
	r.objects = append(r.objects, g)
	return g
}

// Len returns the number of GameObjects currently owned, swept or not.
func (r *Registry) Len() int { return len(r.objects) }

// Alive reports whether id refers to a GameObject that has not been swept.
// A destroyed but not yet swept GameObject is still alive.
func (r *Registry) Alive(id EntityID) bool {
	return r.pool.alive(id)
}

// Lookup resolves a handle. It fails for stale or nil handles.
func (r *Registry) Lookup(id EntityID) (*GameObject, bool) {
	if !r.pool.alive(id) {
		return nil, false
	}
	return r.slots[id.Index()], true
}

// Each visits every owned GameObject in registry order.
func (r *Registry) Each(fn func(*GameObject)) {
	for _, g := range r.objects {
		fn(g)
	}
}

// Refresh erases every inactive GameObject, preserving the order of the
// survivors, and returns how many were removed.
func (r *Registry) Refresh() int {
	kept := r.objects[:0]
	removed := 0
	for _, g := range r.objects {
		if g.active {
			kept = append(kept, g)
			continue
		}
		g.teardown()
		r.slots[g.id.Index()] = nil
		r.pool.release(g.id)
		removed++
	}
	clear(r.objects[len(kept):])
	r.objects = kept
	return removed
}

// UpdateAll sweeps inactive GameObjects and then updates the survivors in
// registry order. GameObjects added during the pass first update on the next
// pass; GameObjects destroyed during the pass are skipped for its remainder.
func (r *Registry) UpdateAll(dt time.Duration) {
	r.Refresh()
	n := len(r.objects)
	for i := 0; i < n; i++ {
		if g := r.objects[i]; g.active {
			g.Update(dt)
		}
	}
}

// RenderAll runs Render hooks on every active GameObject.
func (r *Registry) RenderAll() {
	for _, g := range r.objects {
		if g.active {
			g.Render()
		}
	}
}
