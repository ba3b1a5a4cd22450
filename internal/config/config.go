package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Camera  CameraConfig  `toml:"camera"`
	Render  RenderConfig  `toml:"render"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
	Scene   SceneConfig   `toml:"scene"`
}

type WindowConfig struct {
	Title      string        `toml:"title"`
	MaxFPS     int           `toml:"max_fps"`
	KeyHold    time.Duration `toml:"key_hold"` // how long a key stays down after its last repeat
	Background [3]float32    `toml:"background"`
}

type CameraConfig struct {
	FOV         float32    `toml:"fov"` // degrees
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
	Speed       float32    `toml:"speed"`
	Boost       float32    `toml:"boost"`
	Sensitivity float32    `toml:"sensitivity"`
	LookSpeed   float32    `toml:"look_speed"`
	Position    [3]float32 `toml:"position"`
	Collider    float32    `toml:"collider"` // edge of the camera's collision box
}

type RenderConfig struct {
	CellAspect float32 `toml:"cell_aspect"` // cell width / cell height
	ShowFPS    bool    `toml:"show_fps"`
}

type AudioConfig struct {
	Enabled    bool          `toml:"enabled"`
	SampleRate int           `toml:"sample_rate"`
	BufferSize time.Duration `toml:"buffer_size"`
	Volume     float64       `toml:"volume"` // exponent in base 2; 0 is unchanged
	Preload    int           `toml:"preload"` // concurrent decoders
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
	File   string `toml:"file"`
}

type SceneConfig struct {
	Path string `toml:"path"` // empty uses the embedded default scene
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "Boulder Smash",
			MaxFPS:  60,
			KeyHold: 300 * time.Millisecond,
		},
		Camera: CameraConfig{
			FOV:         45,
			Near:        0.01,
			Far:         100,
			Speed:       2.5,
			Boost:       3,
			Sensitivity: 1,
			LookSpeed:   90,
			Position:    [3]float32{0, 0, -1.5},
			Collider:    1.2,
		},
		Render: RenderConfig{
			CellAspect: 0.5,
			ShowFPS:    true,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			BufferSize: 100 * time.Millisecond,
			Preload:    4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "boulder-smash.log",
		},
	}
}
