package factory

import (
	"boulder-smash/internal/audio"
	"boulder-smash/internal/component"
	"boulder-smash/internal/config"
	"boulder-smash/internal/ecs"
	"boulder-smash/internal/gameplay"
	"boulder-smash/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// NewAsteroid creates an asteroid GameObject from a scene entry. The
// collider follows the GameObject so it stays put while the rock spins.
func NewAsteroid(r *ecs.Registry, def config.AsteroidDef) *gameplay.Asteroid {
	g := r.AddGameObject()
	g.Transform = transform.At(def.Position[0], def.Position[1], def.Position[2])

	axis := mgl32.Vec3(def.SpinAxis)
	if axis.Len() == 0 {
		axis = transform.WorldUp
	}
	a := ecs.Attach(g, &gameplay.Asteroid{
		Entity:   gameplay.Entity{Name: def.Name, MaxHealth: def.Health},
		Radius:   def.Radius,
		SpinRate: def.Spin,
		SpinAxis: axis,
		Seed:     def.Seed,
	})

	size := mgl32.Vec3(def.Collider)
	if size == (mgl32.Vec3{}) {
		d := 2 * max(def.Radius, 1)
		size = mgl32.Vec3{d, d, d}
	}
	ecs.Attach(g, &component.BoxCollider{Size: size, Local: g.Transform, FollowOwner: true})
	ecs.AddComponent[component.TagObstacle](g)
	return a
}

// CameraProxyDef configures the GameObject that stands in for the camera.
type CameraProxyDef struct {
	Position mgl32.Vec3
	Collider float32
	Sensor   config.SensorDef
}

// NewCameraProxy creates the camera stand-in: a collider that follows the
// camera and a sensor that plays an effect on contact with the target.
func NewCameraProxy(r *ecs.Registry, entities *gameplay.EntityManager, player audio.EffectPlayer, log *zap.Logger, def CameraProxyDef) *ecs.GameObject {
	g := r.AddGameObject()
	g.Transform = transform.At(def.Position.X(), def.Position.Y(), def.Position.Z())
	size := def.Collider
	if size <= 0 {
		size = 1.2
	}
	ecs.Attach(g, &component.BoxCollider{Size: mgl32.Vec3{size, size, size}, FollowOwner: true})
	ecs.AddComponent[component.TagCameraProxy](g)
	if def.Sensor.Target != "" {
		ecs.Attach(g, &gameplay.CollisionSensor{
			Target:   def.Sensor.Target,
			Effect:   def.Sensor.Effect,
			Entities: entities,
			Audio:    player,
			Log:      log,
		})
	}
	return g
}
