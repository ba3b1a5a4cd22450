package component

import (
	"boulder-smash/internal/ecs"
	"boulder-smash/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned box given by its two extreme corners.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Overlaps reports whether a and b share interior volume on all three axes.
// Boxes that only touch do not overlap.
func Overlaps(a, b AABB) bool {
	for i := 0; i < 3; i++ {
		if !(a.Min[i] < b.Max[i] && a.Max[i] > b.Min[i]) {
			return false
		}
	}
	return true
}

// BoxCollider is an axis-aligned box centred on a transform. Rotation is
// ignored. With FollowOwner set the box tracks the owning GameObject's
// Transform directly; otherwise it uses Local, which Sync keeps up to date.
type BoxCollider struct {
	ecs.BaseComponent

	Size        mgl32.Vec3
	Local       transform.Transform
	FollowOwner bool
}

// Center returns the world-space centre of the box.
func (c *BoxCollider) Center() mgl32.Vec3 {
	if c.FollowOwner {
		if g := c.GameObject(); g != nil {
			return g.Transform.Position
		}
	}
	return c.Local.Position
}

// Bounds returns the box corners.
func (c *BoxCollider) Bounds() AABB {
	center := c.Center()
	half := c.Size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// IsCollidingWith reports strict overlap with other.
func (c *BoxCollider) IsCollidingWith(other *BoxCollider) bool {
	if other == nil {
		return false
	}
	return Overlaps(c.Bounds(), other.Bounds())
}

// Sync copies t into the collider's local transform.
func (c *BoxCollider) Sync(t transform.Transform) { c.Local = t }
