package factory

import (
	"testing"
	"time"

	"boulder-smash/internal/component"
	"boulder-smash/internal/config"
	"boulder-smash/internal/ecs"
	"boulder-smash/internal/gameplay"

	"github.com/go-gl/mathgl/mgl32"
)

type recorder struct {
	effects []string
}

func (r *recorder) PlayEffect(name string) { r.effects = append(r.effects, name) }

func asteroidDef(name string) config.AsteroidDef {
	return config.AsteroidDef{
		Name:     name,
		Position: [3]float32{0, 0, 10},
		Collider: [3]float32{10, 10, 10},
		Radius:   5,
		Health:   20,
	}
}

func TestNewAsteroidComponents(t *testing.T) {
	r := ecs.NewRegistry()
	a := NewAsteroid(r, asteroidDef("asteroid"))
	g := a.GameObject()

	if g.Transform.Position != (mgl32.Vec3{0, 0, 10}) {
		t.Fatalf("position = %v", g.Transform.Position)
	}
	if a.Name != "asteroid" || a.CurrentHealth != 20 {
		t.Fatalf("entity = %q hp %d", a.Name, a.CurrentHealth)
	}
	c, err := ecs.GetComponent[component.BoxCollider](g)
	if err != nil {
		t.Fatalf("collider: %v", err)
	}
	if c.Size != (mgl32.Vec3{10, 10, 10}) || !c.FollowOwner {
		t.Fatalf("collider = %+v", c)
	}
	if !ecs.HasComponent[component.Model](g) {
		t.Fatal("expected Model component")
	}
	if !ecs.HasComponent[component.TagObstacle](g) {
		t.Fatal("expected TagObstacle component")
	}
	if a.SpinAxis != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("zero spin axis should default to up, got %v", a.SpinAxis)
	}
}

func TestNewAsteroidColliderFromRadius(t *testing.T) {
	r := ecs.NewRegistry()
	def := asteroidDef("rock")
	def.Collider = [3]float32{}
	def.Radius = 3
	c := ecs.MustGetComponent[component.BoxCollider](NewAsteroid(r, def).GameObject())
	if c.Size != (mgl32.Vec3{6, 6, 6}) {
		t.Fatalf("collider size = %v; want 6", c.Size)
	}
}

func TestNewCameraProxyComponents(t *testing.T) {
	r := ecs.NewRegistry()
	em := gameplay.NewEntityManager(r)
	g := NewCameraProxy(r, em, &recorder{}, nil, CameraProxyDef{
		Position: mgl32.Vec3{0, 0, -1.5},
		Collider: 1.2,
		Sensor:   config.SensorDef{Target: "asteroid", Effect: "explosion"},
	})

	c, err := ecs.GetComponent[component.BoxCollider](g)
	if err != nil {
		t.Fatalf("collider: %v", err)
	}
	if c.Size != (mgl32.Vec3{1.2, 1.2, 1.2}) || !c.FollowOwner {
		t.Fatalf("collider = %+v", c)
	}
	if !ecs.HasComponent[gameplay.CollisionSensor](g) {
		t.Fatal("expected CollisionSensor")
	}
	if got, ok := component.FindTagged[component.TagCameraProxy](r); !ok || got != g {
		t.Fatal("proxy not tagged")
	}
}

func TestNewCameraProxyWithoutSensor(t *testing.T) {
	r := ecs.NewRegistry()
	g := NewCameraProxy(r, gameplay.NewEntityManager(r), nil, nil, CameraProxyDef{})
	if ecs.HasComponent[gameplay.CollisionSensor](g) {
		t.Fatal("no target means no sensor")
	}
	if c := ecs.MustGetComponent[component.BoxCollider](g); c.Size.X() != 1.2 {
		t.Fatalf("default collider = %v", c.Size)
	}
}

func TestSpawnAsteroidRegistersName(t *testing.T) {
	r := ecs.NewRegistry()
	em := gameplay.NewEntityManager(r)
	m := NewAsteroidManager(r, em, nil)

	a, err := m.SpawnAsteroid(asteroidDef("asteroid"))
	if err != nil {
		t.Fatalf("SpawnAsteroid: %v", err)
	}
	got, err := em.GetEntity("asteroid")
	if err != nil || got != &a.Entity {
		t.Fatalf("GetEntity = %v, %v", got, err)
	}
	if n := len(m.Spawned()); n != 1 {
		t.Fatalf("spawned = %d; want 1", n)
	}
}

func TestSpawnAsteroidDuplicateName(t *testing.T) {
	r := ecs.NewRegistry()
	em := gameplay.NewEntityManager(r)
	m := NewAsteroidManager(r, em, nil)
	if _, err := m.SpawnAsteroid(asteroidDef("rock")); err != nil {
		t.Fatalf("first spawn: %v", err)
	}
	if _, err := m.SpawnAsteroid(asteroidDef("rock")); err == nil {
		t.Fatal("second spawn with the same name should fail")
	}
	r.Refresh()
	if r.Len() != 1 || len(m.Spawned()) != 1 {
		t.Fatalf("registry=%d spawned=%d; want 1/1", r.Len(), len(m.Spawned()))
	}
}

func TestSpawnedDropsDestroyedAsteroids(t *testing.T) {
	r := ecs.NewRegistry()
	m := NewAsteroidManager(r, gameplay.NewEntityManager(r), nil)
	a, _ := m.SpawnAsteroid(asteroidDef("a"))
	m.SpawnAsteroid(asteroidDef("b"))

	a.Damage(100)
	r.UpdateAll(time.Millisecond)
	r.UpdateAll(time.Millisecond)

	spawned := m.Spawned()
	if len(spawned) != 1 || spawned[0].Name != "b" {
		t.Fatalf("spawned = %d; want only b", len(spawned))
	}
}

// The camera flies into the asteroid: one explosion, however long it stays.
func TestCameraProxyHitsAsteroidOnce(t *testing.T) {
	r := ecs.NewRegistry()
	em := gameplay.NewEntityManager(r)
	rec := &recorder{}
	m := NewAsteroidManager(r, em, nil)
	if _, err := m.SpawnAsteroid(asteroidDef("asteroid")); err != nil {
		t.Fatalf("SpawnAsteroid: %v", err)
	}
	proxy := NewCameraProxy(r, em, rec, nil, CameraProxyDef{
		Position: mgl32.Vec3{0, 0, -1.5},
		Collider: 1.2,
		Sensor:   config.SensorDef{Target: "asteroid", Effect: "explosion"},
	})

	// Box spans z in [5,15]; step the proxy forward half a unit per frame.
	for z := float32(-1.5); z <= 12; z += 0.5 {
		proxy.Transform.Position = mgl32.Vec3{0, 0, z}
		r.UpdateAll(16 * time.Millisecond)
	}
	if len(rec.effects) != 1 || rec.effects[0] != "explosion" {
		t.Fatalf("effects = %v; want exactly one explosion", rec.effects)
	}
}
