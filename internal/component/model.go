package component

import (
	"boulder-smash/internal/ecs"
	"boulder-smash/internal/render"
)

// Model makes its GameObject drawable. The render object's transform is
// copied from the owner on Start and on every Render pass.
type Model struct {
	ecs.BaseComponent

	Object render.Object
}

func (m *Model) Start() {
	if m.Object.Shader == "" {
		m.Object.Shader = render.DefaultShader
	}
	m.Sync()
}

func (m *Model) Render() { m.Sync() }

// Sync copies the owner's transform into the render object.
func (m *Model) Sync() {
	if g := m.GameObject(); g != nil {
		m.Object.Transform = g.Transform
	}
}

// CollectModels appends the render object of every active GameObject that
// carries a Model, in registry order.
func CollectModels(r *ecs.Registry, dst []*render.Object) []*render.Object {
	r.Each(func(g *ecs.GameObject) {
		if !g.IsActive() {
			return
		}
		if m, err := ecs.GetComponent[Model](g); err == nil {
			dst = append(dst, &m.Object)
		}
	})
	return dst
}
