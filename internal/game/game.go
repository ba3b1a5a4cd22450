package game

import (
	"context"
	"fmt"
	"time"

	"boulder-smash/internal/audio"
	"boulder-smash/internal/component"
	"boulder-smash/internal/config"
	"boulder-smash/internal/ecs"
	"boulder-smash/internal/factory"
	"boulder-smash/internal/gameplay"
	"boulder-smash/internal/input"
	"boulder-smash/internal/lighting"
	"boulder-smash/internal/render"
	"boulder-smash/internal/transform"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Options carries everything New needs. Window and Audio are owned by the
// caller; Game never closes them.
type Options struct {
	Config *config.Config
	Scene  *config.Scene
	Log    *zap.Logger
	Window input.Window
	Audio  audio.EffectPlayer

	// Renderer overrides the terminal renderer.
	Renderer render.Renderer
}

// Game is the top-level orchestrator: one Frame polls input, moves the
// camera, updates and renders the registry and presents the result.
type Game struct {
	cfg    *config.Config
	log    *zap.Logger
	window input.Window

	registry  *ecs.Registry
	entities  *gameplay.EntityManager
	asteroids *factory.AsteroidManager
	proxy     ecs.EntityID

	camera   *render.Camera
	lights   *lighting.Rig
	follow   []*lighting.PointLight
	markers  []*render.Object
	renderer render.Renderer
	overlay  *render.Overlay
	objects  []*render.Object

	hotkeys hotkeys
	session SessionLog
	now     func() time.Time
}

// New builds the world described by opts.Scene.
func New(opts Options) (*Game, error) {
	if opts.Config == nil {
		opts.Config = config.Defaults()
	}
	if opts.Scene == nil {
		opts.Scene = &config.Scene{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Window == nil {
		return nil, fmt.Errorf("new game: no window")
	}
	cfg := opts.Config

	g := &Game{
		cfg:     cfg,
		log:     opts.Log,
		window:  opts.Window,
		overlay: render.NewOverlay(),
		now:     time.Now,
	}
	g.overlay.Visible = cfg.Render.ShowFPS

	g.registry = ecs.NewRegistry()
	g.entities = gameplay.NewEntityManager(g.registry)
	g.asteroids = factory.NewAsteroidManager(g.registry, g.entities, g.log.Named("asteroids"))
	for _, def := range opts.Scene.Asteroids {
		if _, err := g.asteroids.SpawnAsteroid(def); err != nil {
			g.log.Warn("scene asteroid skipped", zap.String("name", def.Name), zap.Error(err))
		}
	}

	w, h := g.window.Size()
	g.camera = render.NewCamera(cameraSettings(cfg), w, h)
	g.lights = g.buildLights(opts.Scene.Lights)

	proxy := factory.NewCameraProxy(g.registry, g.entities, opts.Audio, g.log.Named("sensor"), factory.CameraProxyDef{
		Position: g.camera.Transform.Position,
		Collider: cfg.Camera.Collider,
		Sensor:   opts.Scene.Sensor,
	})
	g.proxy = proxy.ID()

	g.renderer = opts.Renderer
	if g.renderer == nil {
		bg := cfg.Window.Background
		g.renderer = render.NewTerminalRenderer(g.window.Screen(), render.NewShaderLibrary(g.log.Named("render")),
			tcell.NewRGBColor(int32(bg[0]*255), int32(bg[1]*255), int32(bg[2]*255)))
	}

	g.log.Info("scene ready",
		zap.Int("gameObjects", g.registry.Len()),
		zap.Strings("entities", g.entities.Names()),
		zap.Int("pointLights", len(g.lights.Points())))
	return g, nil
}

func cameraSettings(cfg *config.Config) render.CameraSettings {
	s := render.DefaultCameraSettings()
	c := cfg.Camera
	s.FOV, s.Near, s.Far = c.FOV, c.Near, c.Far
	s.Speed, s.Boost = c.Speed, c.Boost
	s.Sensitivity, s.LookSpeed = c.Sensitivity, c.LookSpeed
	s.Position = mgl32.Vec3(c.Position)
	if cfg.Render.CellAspect > 0 {
		s.CellAspect = cfg.Render.CellAspect
	}
	return s
}

func (g *Game) buildLights(def config.LightsDef) *lighting.Rig {
	rig := lighting.NewRig()
	if d := def.Directional; d != nil {
		rig.Directional = &lighting.DirectionalLight{
			Direction: mgl32.Vec3(d.Direction),
			Ambient:   mgl32.Vec3(d.Ambient),
			Diffuse:   mgl32.Vec3(d.Diffuse),
			Specular:  mgl32.Vec3(d.Specular),
		}
	}
	for _, p := range def.Points {
		light := lighting.NewPointLight(p.Name, mgl32.Vec3(p.Position))
		if err := rig.Register(light); err != nil {
			g.log.Warn("scene light skipped", zap.Error(err))
			continue
		}
		if p.FollowCamera {
			g.follow = append(g.follow, light)
			continue
		}
		g.markers = append(g.markers, &render.Object{
			Name:      "light:" + p.Name,
			Mesh:      render.Cube(0.2),
			Transform: transform.At(p.Position[0], p.Position[1], p.Position[2]),
			Shader:    render.LightShader,
		})
	}
	if def.Flashlight {
		rig.Spot = lighting.NewFlashlight()
	}
	return rig
}

// Registry exposes the world for inspection.
func (g *Game) Registry() *ecs.Registry { return g.registry }

// Entities exposes the name index.
func (g *Game) Entities() *gameplay.EntityManager { return g.entities }

// Camera returns the player camera.
func (g *Game) Camera() *render.Camera { return g.camera }

// Lights returns the lighting rig.
func (g *Game) Lights() *lighting.Rig { return g.lights }

// Frame advances the game by dt and presents one frame.
func (g *Game) Frame(dt time.Duration) {
	g.window.Poll()
	g.handleHotkeys()

	g.camera.Update(dt, g.window)
	g.followCamera()

	g.registry.UpdateAll(dt)
	g.registry.RenderAll()

	g.objects = component.CollectModels(g.registry, g.objects[:0])
	g.objects = append(g.objects, g.markers...)
	g.renderer.Render(render.Submission{
		Projection: g.camera.Projection(),
		ViewPos:    g.camera.Transform.Position,
		Objects:    g.objects,
		Lights:     g.lights,
	})

	if screen := g.window.Screen(); screen != nil {
		g.overlay.Tick(g.now())
		g.overlay.Draw(screen)
	}
	g.window.Present()
	g.session.Frames++
}

// followCamera moves camera-bound lights and the camera proxy to the
// camera's current transform.
func (g *Game) followCamera() {
	pos := g.camera.Transform.Position
	for _, l := range g.follow {
		l.Position = pos
	}
	if s := g.lights.Spot; s != nil {
		s.Position = pos
		s.Direction = g.camera.Transform.Forward()
	}
	if p, ok := g.registry.Lookup(g.proxy); ok {
		p.Transform = g.camera.Transform
	}
}

// Run drives Frame at the configured rate until the window asks to close
// or ctx is cancelled, then appends the session summary to the run log.
func (g *Game) Run(ctx context.Context) {
	maxFPS := g.cfg.Window.MaxFPS
	if maxFPS <= 0 {
		maxFPS = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(maxFPS))
	defer ticker.Stop()

	g.window.SetCursorLocked(true)
	start := g.now()
	last := start
	g.session.Started = start

	reason := "window closed"
loop:
	for !g.window.ShouldClose() {
		select {
		case <-ctx.Done():
			reason = "interrupted"
			break loop
		case <-ticker.C:
		}
		now := g.now()
		g.Frame(now.Sub(last))
		last = now
	}

	g.session.Duration = g.now().Sub(start)
	g.session.Contacts = g.contacts()
	g.session.AsteroidsLeft = len(g.asteroids.Spawned())
	g.log.Info("game stopped",
		zap.String("reason", reason),
		zap.Uint64("frames", g.session.Frames),
		zap.Duration("duration", g.session.Duration),
		zap.Int("contacts", g.session.Contacts))
	if err := saveSessionLog(g.session); err != nil {
		g.log.Warn("session log not written", zap.Error(err))
	}
}

func (g *Game) contacts() int {
	p, ok := g.registry.Lookup(g.proxy)
	if !ok {
		return 0
	}
	s, err := ecs.GetComponent[gameplay.CollisionSensor](p)
	if err != nil {
		return 0
	}
	return s.Contacts()
}
