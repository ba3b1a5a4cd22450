package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scene describes the world loaded at startup.
type Scene struct {
	Lights    LightsDef     `yaml:"lights"`
	Asteroids []AsteroidDef `yaml:"asteroids"`
	Sounds    []SoundDef    `yaml:"sounds"`
	Sensor    SensorDef     `yaml:"sensor"`
}

type LightsDef struct {
	Directional *DirectionalDef `yaml:"directional"`
	Points      []PointDef      `yaml:"points"`
	Flashlight  bool            `yaml:"flashlight"`
}

type DirectionalDef struct {
	Direction [3]float32 `yaml:"direction"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
}

type PointDef struct {
	Name         string     `yaml:"name"`
	Position     [3]float32 `yaml:"position"`
	FollowCamera bool       `yaml:"follow_camera"`
}

type AsteroidDef struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Collider [3]float32 `yaml:"collider"`
	Radius   float32    `yaml:"radius"`
	Health   int        `yaml:"health"`
	Spin     float32    `yaml:"spin"` // degrees per second
	SpinAxis [3]float32 `yaml:"spin_axis"`
	Seed     int64      `yaml:"seed"`
}

type SoundDef struct {
	Name      string        `yaml:"name"`
	Path      string        `yaml:"path"`  // wav file; wins over Synth when readable
	Synth     string        `yaml:"synth"` // "explosion" or "tone"
	Frequency float64       `yaml:"frequency"`
	Duration  time.Duration `yaml:"duration"`
	Volume    float64       `yaml:"volume"`
}

// SensorDef wires the camera's collision sensor.
type SensorDef struct {
	Target string `yaml:"target"`
	Effect string `yaml:"effect"`
}

// LoadScene reads and parses a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a YAML scene and validates it.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) validate() error {
	var errs []error
	seen := make(map[string]bool, len(s.Asteroids))
	for i, a := range s.Asteroids {
		switch {
		case a.Name == "":
			errs = append(errs, fmt.Errorf("asteroid %d: missing name", i))
		case seen[a.Name]:
			errs = append(errs, fmt.Errorf("asteroid %d: duplicate name %q", i, a.Name))
		}
		seen[a.Name] = true
	}
	for i, snd := range s.Sounds {
		if snd.Name == "" {
			errs = append(errs, fmt.Errorf("sound %d: missing name", i))
		}
		if snd.Path == "" && snd.Synth == "" {
			errs = append(errs, fmt.Errorf("sound %q: needs a path or a synth", snd.Name))
		}
	}
	return errors.Join(errs...)
}
