package assets

import (
	"testing"

	"boulder-smash/internal/config"
)

func TestDefaultSceneParses(t *testing.T) {
	s, err := config.ParseScene(DefaultScene)
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	if len(s.Asteroids) == 0 {
		t.Fatal("default scene has no asteroids")
	}
	if s.Sensor.Target == "" {
		t.Fatal("default scene has no sensor target")
	}
	found := false
	for _, a := range s.Asteroids {
		if a.Name == s.Sensor.Target {
			found = true
		}
	}
	if !found {
		t.Fatalf("sensor target %q is not an asteroid in the scene", s.Sensor.Target)
	}
}
