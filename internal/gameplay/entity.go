package gameplay

import (
	"time"

	"boulder-smash/internal/component"
	"boulder-smash/internal/ecs"
)

// DefaultMaxHealth is used when an Entity is started with MaxHealth unset.
const DefaultMaxHealth = 20

// Behavior is the per-kind hook set an Entity drives. Concrete entities
// embed Entity and implement Behavior, then forward their component hooks
// through Begin and Tick so the shared bookkeeping runs around them.
type Behavior interface {
	StartEntity()
	UpdateEntity(dt time.Duration)
}

// Entity is the gameplay base: a name, health, and transform sync for the
// sibling collider and model.
type Entity struct {
	ecs.BaseComponent

	Name          string
	MaxHealth     int
	CurrentHealth int
}

// Begin resets health and runs b.StartEntity.
func (e *Entity) Begin(b Behavior) {
	if e.MaxHealth <= 0 {
		e.MaxHealth = DefaultMaxHealth
	}
	e.CurrentHealth = e.MaxHealth
	b.StartEntity()
}

// Tick runs b.UpdateEntity and then copies the GameObject transform into
// the sibling BoxCollider and Model, when present.
func (e *Entity) Tick(b Behavior, dt time.Duration) {
	b.UpdateEntity(dt)
	e.syncSiblings()
}

func (e *Entity) syncSiblings() {
	g := e.GameObject()
	if g == nil {
		return
	}
	if c, err := ecs.GetComponent[component.BoxCollider](g); err == nil {
		c.Sync(g.Transform)
	}
	if m, err := ecs.GetComponent[component.Model](g); err == nil {
		m.Sync()
	}
}

// Damage subtracts amount from the current health. Health may go negative.
func (e *Entity) Damage(amount int) { e.CurrentHealth -= amount }

// Heal adds amount, capped at MaxHealth.
func (e *Entity) Heal(amount int) {
	e.CurrentHealth = min(e.CurrentHealth+amount, e.MaxHealth)
}

// Dead reports whether health has run out.
func (e *Entity) Dead() bool { return e.CurrentHealth <= 0 }
