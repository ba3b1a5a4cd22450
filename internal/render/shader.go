package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Shader names registered by NewShaderLibrary.
const (
	DefaultShader     = "default"
	LightShader       = "light"
	TransparentShader = "transparent"
)

// Shader decides how a shaded cell is drawn. Ramp maps brightness 0..1 to
// glyphs, darkest first. Transparent shaders draw behind nothing: they are
// depth tested but never write depth.
type Shader struct {
	Name        string
	Ramp        []rune
	Tint        mgl32.Vec3
	Transparent bool
	Unlit       bool
}

// Glyph picks the ramp glyph for a brightness in [0,1].
func (s *Shader) Glyph(brightness float32) rune {
	if len(s.Ramp) == 0 {
		return ' '
	}
	i := int(mgl32.Clamp(brightness, 0, 1) * float32(len(s.Ramp)-1))
	return s.Ramp[i]
}

// Color converts a linear RGB intensity to a terminal colour.
func (s *Shader) Color(c mgl32.Vec3) tcell.Color {
	c = mgl32.Vec3{c.X() * s.Tint.X(), c.Y() * s.Tint.Y(), c.Z() * s.Tint.Z()}
	return tcell.NewRGBColor(channel(c.X()), channel(c.Y()), channel(c.Z()))
}

func channel(v float32) int32 {
	return int32(mgl32.Clamp(v, 0, 1) * 255)
}

// ShaderLibrary resolves shader names. Unknown names fall back to the
// default shader with a warning, once per name.
type ShaderLibrary struct {
	shaders map[string]*Shader
	warned  map[string]bool
	log     *zap.Logger
}

// NewShaderLibrary returns a library holding the three built-in shaders.
func NewShaderLibrary(log *zap.Logger) *ShaderLibrary {
	if log == nil {
		log = zap.NewNop()
	}
	l := &ShaderLibrary{
		shaders: make(map[string]*Shader),
		warned:  make(map[string]bool),
		log:     log,
	}
	l.Register(&Shader{
		Name: DefaultShader,
		Ramp: []rune(".,:;ox%#@"),
		Tint: mgl32.Vec3{0.85, 0.75, 0.65},
	})
	l.Register(&Shader{
		Name:  LightShader,
		Ramp:  []rune("*"),
		Tint:  mgl32.Vec3{1, 1, 0.8},
		Unlit: true,
	})
	l.Register(&Shader{
		Name:        TransparentShader,
		Ramp:        []rune(" .:"),
		Tint:        mgl32.Vec3{0.6, 0.8, 1},
		Transparent: true,
	})
	return l
}

// Register adds or replaces a shader.
func (l *ShaderLibrary) Register(s *Shader) {
	l.shaders[s.Name] = s
}

// Get returns the named shader, or the default one.
func (l *ShaderLibrary) Get(name string) *Shader {
	if s, ok := l.shaders[name]; ok {
		return s
	}
	if !l.warned[name] {
		l.warned[name] = true
		l.log.Warn("unknown shader, using default", zap.String("shader", name))
	}
	return l.shaders[DefaultShader]
}
