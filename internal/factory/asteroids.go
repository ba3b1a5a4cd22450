package factory

import (
	"fmt"

	"boulder-smash/internal/config"
	"boulder-smash/internal/ecs"
	"boulder-smash/internal/gameplay"

	"go.uber.org/zap"
)

// AsteroidManager spawns asteroids and keeps track of the ones still alive.
type AsteroidManager struct {
	registry *ecs.Registry
	entities *gameplay.EntityManager
	log      *zap.Logger
	spawned  []ecs.EntityID
}

func NewAsteroidManager(r *ecs.Registry, entities *gameplay.EntityManager, log *zap.Logger) *AsteroidManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &AsteroidManager{registry: r, entities: entities, log: log}
}

// SpawnAsteroid builds an asteroid and registers it by name. On a name
// clash the new GameObject is destroyed again and the error returned.
func (m *AsteroidManager) SpawnAsteroid(def config.AsteroidDef) (*gameplay.Asteroid, error) {
	a := NewAsteroid(m.registry, def)
	if err := m.entities.RegisterEntity(&a.Entity); err != nil {
		a.GameObject().Destroy()
		return nil, fmt.Errorf("spawn asteroid: %w", err)
	}
	m.spawned = append(m.spawned, a.GameObject().ID())
	m.log.Info("asteroid spawned",
		zap.String("name", def.Name),
		zap.Float32s("position", def.Position[:]),
		zap.Int("health", a.MaxHealth))
	return a, nil
}

// Spawned returns the live asteroids in spawn order.
func (m *AsteroidManager) Spawned() []*gameplay.Asteroid {
	out := make([]*gameplay.Asteroid, 0, len(m.spawned))
	kept := m.spawned[:0]
	for _, id := range m.spawned {
		g, ok := m.registry.Lookup(id)
		if !ok {
			continue
		}
		kept = append(kept, id)
		if a, err := ecs.GetComponent[gameplay.Asteroid](g); err == nil {
			out = append(out, a)
		}
	}
	m.spawned = kept
	return out
}
