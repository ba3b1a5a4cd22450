// Package transform holds the spatial state shared by game objects, colliders,
// render objects and the camera.
package transform

import "github.com/go-gl/mathgl/mgl32"

// WorldUp is the default up vector.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Transform is a position, an orientation and an up vector.
// The zero value is not normalized; use Identity or At.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Up       mgl32.Vec3
}

// Identity returns a transform at the origin with no rotation.
func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Up: WorldUp}
}

// At returns an unrotated transform placed at (x, y, z).
func At(x, y, z float32) Transform {
	t := Identity()
	t.Position = mgl32.Vec3{x, y, z}
	return t
}

// Translate moves the transform by v in world space.
func (t *Transform) Translate(v mgl32.Vec3) {
	t.Position = t.Position.Add(v)
}

// Rotate composes a rotation of angle radians around axis onto the current
// orientation. A zero axis is ignored.
func (t *Transform) Rotate(angle float32, axis mgl32.Vec3) {
	if axis.Len() == 0 {
		return
	}
	r := mgl32.QuatRotate(angle, axis.Normalize())
	t.Rotation = r.Mul(t.orientation()).Normalize()
}

// Forward is the direction the transform faces (-Z rotated by Rotation).
func (t Transform) Forward() mgl32.Vec3 {
	return t.orientation().Rotate(mgl32.Vec3{0, 0, -1})
}

// Right is the normalized cross product of Forward and Up.
func (t Transform) Right() mgl32.Vec3 {
	r := t.Forward().Cross(t.up())
	if r.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

// Matrix returns the model matrix (translate * rotate).
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.orientation().Mat4())
}

// orientation treats a zero quaternion as identity so zero-value transforms
// stay usable.
func (t Transform) orientation() mgl32.Quat {
	if t.Rotation.W == 0 && t.Rotation.V.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return t.Rotation
}

func (t Transform) up() mgl32.Vec3 {
	if t.Up.Len() == 0 {
		return WorldUp
	}
	return t.Up
}
