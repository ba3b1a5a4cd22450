package lighting

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrLightNotFound is returned by Rig.Get for an unknown point light.
	ErrLightNotFound = errors.New("light not found")
	// ErrDuplicateLight is returned by Rig.Register when the name is taken.
	ErrDuplicateLight = errors.New("light already registered")
)

// DirectionalLight lights every surface from one direction, like the sun.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// PointLight radiates from Position with quadratic attenuation.
type PointLight struct {
	Name      string
	Position  mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

// NewPointLight returns a white point light with the usual 50-unit falloff.
func NewPointLight(name string, pos mgl32.Vec3) *PointLight {
	return &PointLight{
		Name:      name,
		Position:  pos,
		Ambient:   mgl32.Vec3{0.05, 0.05, 0.05},
		Diffuse:   mgl32.Vec3{0.8, 0.8, 0.8},
		Specular:  mgl32.Vec3{1, 1, 1},
		Constant:  1,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

func (p *PointLight) attenuation(pos mgl32.Vec3) float32 {
	d := p.Position.Sub(pos).Len()
	den := p.Constant + p.Linear*d + p.Quadratic*d*d
	if den <= 0 {
		return 1
	}
	return 1 / den
}

// SpotLight is a point light restricted to a cone. CutOff and OuterCutOff
// hold cosines; intensity fades linearly between them.
type SpotLight struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	Ambient     mgl32.Vec3
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	Constant    float32
	Linear      float32
	Quadratic   float32
	CutOff      float32
	OuterCutOff float32
}

// NewFlashlight returns the camera-mounted spot light: 12.5° inner cone,
// 17° outer cone.
func NewFlashlight() *SpotLight {
	return &SpotLight{
		Direction:   mgl32.Vec3{0, 0, -1},
		Diffuse:     mgl32.Vec3{1, 1, 1},
		Specular:    mgl32.Vec3{1, 1, 1},
		Constant:    1,
		Linear:      0.09,
		Quadratic:   0.032,
		CutOff:      cosDeg(12.5),
		OuterCutOff: cosDeg(17),
	}
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

// Rig is the set of lights shading one frame.
type Rig struct {
	Directional *DirectionalLight
	Spot        *SpotLight
	points      []*PointLight
}

// NewRig returns a rig with a dim default directional light and nothing else.
func NewRig() *Rig {
	return &Rig{
		Directional: &DirectionalLight{
			Direction: mgl32.Vec3{-0.2, -1, -0.3},
			Ambient:   mgl32.Vec3{0.05, 0.05, 0.05},
			Diffuse:   mgl32.Vec3{0.4, 0.4, 0.4},
			Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
		},
	}
}

// Register adds a point light. Names must be unique.
func (r *Rig) Register(p *PointLight) error {
	for _, q := range r.points {
		if q.Name == p.Name {
			return fmt.Errorf("%w: %q", ErrDuplicateLight, p.Name)
		}
	}
	r.points = append(r.points, p)
	return nil
}

// Remove drops the named point light and reports whether it existed.
func (r *Rig) Remove(name string) bool {
	for i, p := range r.points {
		if p.Name == name {
			r.points = append(r.points[:i], r.points[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the named point light.
func (r *Rig) Get(name string) (*PointLight, error) {
	for _, p := range r.points {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrLightNotFound, name)
}

// Points returns the registered point lights in registration order.
// The slice is shared; do not modify it.
func (r *Rig) Points() []*PointLight { return r.points }

// Shade evaluates the Phong model at a surface point for a white material
// and returns the per-channel intensity.
func (r *Rig) Shade(pos, normal, viewPos mgl32.Vec3, shininess float32) mgl32.Vec3 {
	n := safeNormalize(normal)
	view := safeNormalize(viewPos.Sub(pos))
	var out mgl32.Vec3

	if d := r.Directional; d != nil {
		out = out.Add(phong(safeNormalize(d.Direction.Mul(-1)), n, view, shininess,
			d.Ambient, d.Diffuse, d.Specular))
	}
	for _, p := range r.points {
		c := phong(safeNormalize(p.Position.Sub(pos)), n, view, shininess,
			p.Ambient, p.Diffuse, p.Specular)
		out = out.Add(c.Mul(p.attenuation(pos)))
	}
	if s := r.Spot; s != nil {
		lightDir := safeNormalize(s.Position.Sub(pos))
		theta := lightDir.Dot(safeNormalize(s.Direction.Mul(-1)))
		eps := s.CutOff - s.OuterCutOff
		intensity := float32(1)
		if eps > 0 {
			intensity = mgl32.Clamp((theta-s.OuterCutOff)/eps, 0, 1)
		}
		att := (&PointLight{Position: s.Position, Constant: s.Constant, Linear: s.Linear, Quadratic: s.Quadratic}).attenuation(pos)
		amb := s.Ambient.Mul(att)
		dif := s.Diffuse.Mul(att * intensity)
		spec := s.Specular.Mul(att * intensity)
		out = out.Add(phong(lightDir, n, view, shininess, amb, dif, spec))
	}
	return out
}

// phong returns ambient + diffuse + specular for one light direction.
func phong(lightDir, normal, view mgl32.Vec3, shininess float32, amb, dif, spec mgl32.Vec3) mgl32.Vec3 {
	diff := max(normal.Dot(lightDir), 0)
	reflect := lightDir.Mul(-1).Sub(normal.Mul(2 * normal.Dot(lightDir.Mul(-1))))
	s := float32(math.Pow(float64(max(view.Dot(reflect), 0)), float64(shininess)))
	if diff == 0 {
		s = 0
	}
	return amb.Add(dif.Mul(diff)).Add(spec.Mul(s))
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
