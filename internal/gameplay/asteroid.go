package gameplay

import (
	"time"

	"boulder-smash/internal/component"
	"boulder-smash/internal/ecs"
	"boulder-smash/internal/render"

	"github.com/go-gl/mathgl/mgl32"
)

// Asteroid is a spinning rock. Starting it attaches a Model sibling with a
// procedural rock mesh; it destroys its GameObject once health runs out.
type Asteroid struct {
	Entity

	Radius   float32
	SpinRate float32 // degrees per second
	SpinAxis mgl32.Vec3
	Seed     int64
}

func (a *Asteroid) Start() { a.Begin(a) }
func (a *Asteroid) Update(dt time.Duration) { a.Tick(a, dt) }

func (a *Asteroid) StartEntity() {
	radius := a.Radius
	if radius <= 0 {
		radius = 1
	}
	ecs.Attach(a.GameObject(), &component.Model{Object: render.Object{
		Name:   a.Name,
		Mesh:   render.Rock(radius, 2, a.Seed),
		Shader: render.DefaultShader,
		Lit:    true,
	}})
}

func (a *Asteroid) UpdateEntity(dt time.Duration) {
	g := a.GameObject()
	if a.Dead() {
		g.Destroy()
		return
	}
	if a.SpinRate != 0 {
		g.Transform.Rotate(mgl32.DegToRad(a.SpinRate*float32(dt.Seconds())), a.SpinAxis)
	}
}
