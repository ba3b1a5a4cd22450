package component

import "boulder-smash/internal/ecs"

// TagCameraProxy marks the GameObject that mirrors the camera transform.
type TagCameraProxy struct {
	ecs.BaseComponent
}

// TagObstacle marks GameObjects the camera can collide with.
type TagObstacle struct {
	ecs.BaseComponent
}

// FindTagged returns the first active GameObject carrying T.
func FindTagged[T any](r *ecs.Registry) (*ecs.GameObject, bool) {
	var found *ecs.GameObject
	r.Each(func(g *ecs.GameObject) {
		if found == nil && g.IsActive() && ecs.HasComponent[T](g) {
			found = g
		}
	})
	return found, found != nil
}
