package gameplay

import (
	"time"

	"boulder-smash/internal/audio"
	"boulder-smash/internal/component"
	"boulder-smash/internal/ecs"

	"go.uber.org/zap"
)

// CollisionSensor watches for its sibling BoxCollider entering the collider
// of a named target and requests Effect once per contact. Only targets
// tagged as obstacles can be hit.
type CollisionSensor struct {
	ecs.BaseComponent

	Target   string
	Effect   string
	Entities *EntityManager
	Audio    audio.EffectPlayer
	Log      *zap.Logger

	colliding bool
	contacts  int
	missing   bool
}

func (s *CollisionSensor) Start() {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
}

func (s *CollisionSensor) Update(time.Duration) {
	own, err := ecs.GetComponent[component.BoxCollider](s.GameObject())
	if err != nil {
		s.Log.Debug("sensor has no collider", zap.Error(err))
		return
	}
	target, err := s.Entities.GetEntity(s.Target)
	if err != nil {
		if !s.missing {
			s.missing = true
			s.Log.Debug("sensor target missing", zap.String("target", s.Target), zap.Error(err))
		}
		s.colliding = false
		return
	}
	s.missing = false
	if !ecs.HasComponent[component.TagObstacle](target.GameObject()) {
		s.colliding = false
		return
	}
	other, err := ecs.GetComponent[component.BoxCollider](target.GameObject())
	if err != nil {
		s.colliding = false
		return
	}

	now := own.IsCollidingWith(other)
	if now && !s.colliding {
		s.contacts++
		s.Log.Info("collision", zap.String("target", s.Target), zap.String("effect", s.Effect))
		if s.Audio != nil {
			s.Audio.PlayEffect(s.Effect)
		}
	}
	s.colliding = now
}

// Colliding reports the overlap state seen by the last update.
func (s *CollisionSensor) Colliding() bool { return s.colliding }

// Contacts counts rising edges so far.
func (s *CollisionSensor) Contacts() int { return s.contacts }
