package ecs

import (
	"fmt"
	"math/bits"
	"reflect"
	"sync"
	"time"
)

// MaxComponents bounds the number of distinct component types in a process.
const MaxComponents = 128

// ComponentID is the dense per-type index used by GameObject lookups.
type ComponentID uint8

// Component is implemented by every pointer type that embeds BaseComponent.
// The unexported method keeps the back-reference wiring inside this package.
type Component interface {
	GameObject() *GameObject
	bind(g *GameObject)
}

// Starter runs once, right after the component is attached.
type Starter interface {
	Start()
}

// Updater runs once per registry update pass while the owner is active.
type Updater interface {
	Update(dt time.Duration)
}

// Renderer runs once per render pass, before the frame is submitted.
type Renderer interface {
	Render()
}

// Destroyer runs when the component is replaced, removed, or its owner is swept.
type Destroyer interface {
	OnDestroy()
}

// BaseComponent carries the non-owning back-reference to the owning GameObject.
// Embed it by value in every component struct.
type BaseComponent struct {
	owner *GameObject
}

// GameObject returns the owner, or nil before attachment and after removal.
func (b *BaseComponent) GameObject() *GameObject { return b.owner }

func (b *BaseComponent) bind(g *GameObject) { b.owner = g }

// typeRegistry assigns ComponentIDs on first use. Lookups happen from the
// frame loop only, but tests run in parallel so it is guarded anyway.
var typeRegistry = struct {
	sync.RWMutex
	ids   map[reflect.Type]ComponentID
	names []string
}{ids: make(map[reflect.Type]ComponentID)}

// RegisterComponent assigns T its ComponentID eagerly. Calling it at startup
// for every component type makes IDs independent of first-use order.
func RegisterComponent[T any]() ComponentID {
	return idFor(reflect.TypeOf((*T)(nil)))
}

// ComponentTypeName returns the Go type name registered under id.
func ComponentTypeName(id ComponentID) string {
	typeRegistry.RLock()
	defer typeRegistry.RUnlock()
	if int(id) >= len(typeRegistry.names) {
		return fmt.Sprintf("component#%d", id)
	}
	return typeRegistry.names[id]
}

func lookupID(t reflect.Type) (ComponentID, bool) {
	typeRegistry.RLock()
	id, ok := typeRegistry.ids[t]
	typeRegistry.RUnlock()
	return id, ok
}

func idFor(t reflect.Type) ComponentID {
	if id, ok := lookupID(t); ok {
		return id
	}
	typeRegistry.Lock()
	defer typeRegistry.Unlock()
	if id, ok := typeRegistry.ids[t]; ok {
		return id
	}
	n := len(typeRegistry.names)
	if n >= MaxComponents {
		panic(fmt.Sprintf("ecs: more than %d component types registered (adding %s)", MaxComponents, t))
	}
	id := ComponentID(n)
	typeRegistry.ids[t] = id
	typeRegistry.names = append(typeRegistry.names, t.Elem().String())
	return id
}

// Mask is the per-GameObject presence bitset, one bit per ComponentID.
type Mask [MaxComponents / 64]uint64

func (m *Mask) Set(id ComponentID)   { m[id/64] |= 1 << (id % 64) }
func (m *Mask) Clear(id ComponentID) { m[id/64] &^= 1 << (id % 64) }

func (m Mask) Has(id ComponentID) bool {
	return m[id/64]&(1<<(id%64)) != 0
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}
