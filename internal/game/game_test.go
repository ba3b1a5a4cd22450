package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"boulder-smash/internal/config"
	"boulder-smash/internal/input"
	"boulder-smash/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// scriptWindow is an input.Window driven by the test. closeAfter > 0 makes
// ShouldClose report true once that many polls have happened.
type scriptWindow struct {
	keys       map[input.Key]bool
	locked     bool
	screen     tcell.Screen
	polls      int
	presents   int
	closeAfter int
}

func newScriptWindow() *scriptWindow {
	return &scriptWindow{keys: map[input.Key]bool{}}
}

func (w *scriptWindow) Poll() { w.polls++ }
func (w *scriptWindow) KeyDown(k input.Key) bool { return w.keys[k] }
func (w *scriptWindow) KeyUp(k input.Key) bool { return !w.keys[k] }
func (w *scriptWindow) MouseButtonDown(input.Button) bool { return false }
func (w *scriptWindow) MouseButtonUp(input.Button) bool { return true }
func (w *scriptWindow) MousePosition() mgl32.Vec2 { return mgl32.Vec2{} }
func (w *scriptWindow) SetCursorLocked(l bool) { w.locked = l }
func (w *scriptWindow) CursorLocked() bool { return w.locked }
func (w *scriptWindow) Size() (int, int) { return 80, 24 }
func (w *scriptWindow) ConsumeResized() bool { return false }
func (w *scriptWindow) Close() {}
func (w *scriptWindow) Screen() tcell.Screen { return w.screen }
func (w *scriptWindow) Present() { w.presents++ }
func (w *scriptWindow) ShouldClose() bool {
	return w.closeAfter > 0 && w.polls >= w.closeAfter
}

type captureRenderer struct {
	last   render.Submission
	frames int
}

func (c *captureRenderer) Render(s render.Submission) {
	c.last = s
	c.frames++
}

type recorder struct {
	effects []string
}

func (r *recorder) PlayEffect(name string) { r.effects = append(r.effects, name) }

func testScene() *config.Scene {
	return &config.Scene{
		Lights: config.LightsDef{
			Directional: &config.DirectionalDef{Direction: [3]float32{-0.2, -1, -0.3}, Ambient: [3]float32{0.1, 0.1, 0.1}},
			Points: []config.PointDef{
				{Name: "lantern", FollowCamera: true},
				{Name: "beacon", Position: [3]float32{3, 3, 3}},
			},
			Flashlight: true,
		},
		Asteroids: []config.AsteroidDef{
			{Name: "asteroid", Position: [3]float32{0, 0, 10}, Collider: [3]float32{10, 10, 10}, Radius: 5, Health: 20},
			{Name: "boulder", Position: [3]float32{4, 1, -14}, Radius: 1},
		},
		Sensor: config.SensorDef{Target: "asteroid", Effect: "explosion"},
	}
}

func newTestGame(t *testing.T, w *scriptWindow, rec *recorder) (*Game, *captureRenderer) {
	t.Helper()
	cr := &captureRenderer{}
	g, err := New(Options{Scene: testScene(), Window: w, Audio: rec, Renderer: cr})
	require.NoError(t, err)
	return g, cr
}

func TestNewRequiresWindow(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNewBuildsScene(t *testing.T) {
	g, _ := newTestGame(t, newScriptWindow(), &recorder{})

	// Two asteroids plus the camera proxy.
	assert.Equal(t, 3, g.Registry().Len())
	assert.Equal(t, []string{"asteroid", "boulder"}, g.Entities().Names())
	assert.Len(t, g.Lights().Points(), 2)
	assert.NotNil(t, g.Lights().Spot)
	assert.Equal(t, mgl32.Vec3{0, 0, -1.5}, g.Camera().Transform.Position)
}

func TestNewSkipsDuplicateAsteroid(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	scene := testScene()
	scene.Asteroids = append(scene.Asteroids, scene.Asteroids[0])

	g, err := New(Options{Scene: scene, Window: newScriptWindow(), Log: zap.New(core), Renderer: &captureRenderer{}})
	require.NoError(t, err)
	g.Registry().Refresh()

	assert.Equal(t, 3, g.Registry().Len())
	assert.Equal(t, 1, logs.FilterMessage("scene asteroid skipped").Len())
}

func TestFrameSubmitsModelsAndLightMarkers(t *testing.T) {
	w := newScriptWindow()
	g, cr := newTestGame(t, w, &recorder{})

	g.Frame(16 * time.Millisecond)

	require.Equal(t, 1, cr.frames)
	// Two asteroid models and one marker for the fixed beacon.
	assert.Len(t, cr.last.Objects, 3)
	assert.Same(t, g.Lights(), cr.last.Lights)
	assert.Equal(t, g.Camera().Transform.Position, cr.last.ViewPos)
	assert.Equal(t, 1, w.presents)
	assert.Equal(t, uint64(1), g.session.Frames)
}

func TestFrameMovesCameraBoundLights(t *testing.T) {
	w := newScriptWindow()
	g, _ := newTestGame(t, w, &recorder{})

	w.keys[input.KeyS] = true
	g.Frame(time.Second)

	pos := g.Camera().Transform.Position
	assert.InDelta(t, 1.0, pos.Z(), 1e-4)

	lantern, err := g.Lights().Get("lantern")
	require.NoError(t, err)
	assert.Equal(t, pos, lantern.Position)
	assert.Equal(t, pos, g.Lights().Spot.Position)
	assert.InDelta(t, 0, g.Lights().Spot.Direction.Sub(mgl32.Vec3{0, 0, -1}).Len(), 1e-4)

	beacon, err := g.Lights().Get("beacon")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{3, 3, 3}, beacon.Position)
}

func TestFlyingIntoAsteroidPlaysOneExplosion(t *testing.T) {
	w := newScriptWindow()
	rec := &recorder{}
	g, _ := newTestGame(t, w, rec)

	// Backing up moves toward +Z at 2.5 units per second.
	w.keys[input.KeyS] = true
	for i := 0; i < 12; i++ {
		g.Frame(500 * time.Millisecond)
	}

	assert.Greater(t, g.Camera().Transform.Position.Z(), float32(5))
	assert.Equal(t, []string{"explosion"}, rec.effects)
	assert.Equal(t, 1, g.contacts())
}

func TestHotkeyTogglesOverlayOnPress(t *testing.T) {
	w := newScriptWindow()
	g, _ := newTestGame(t, w, &recorder{})
	require.True(t, g.overlay.Visible)

	w.keys[input.KeyF] = true
	g.Frame(16 * time.Millisecond)
	assert.False(t, g.overlay.Visible)

	// Holding the key does not toggle again.
	g.Frame(16 * time.Millisecond)
	assert.False(t, g.overlay.Visible)

	w.keys[input.KeyF] = false
	g.Frame(16 * time.Millisecond)
	w.keys[input.KeyF] = true
	g.Frame(16 * time.Millisecond)
	assert.True(t, g.overlay.Visible)
}

func TestFrameDrawsOverlayOnScreen(t *testing.T) {
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	ss.SetSize(80, 24)
	t.Cleanup(ss.Fini)

	w := newScriptWindow()
	w.screen = ss
	g, err := New(Options{Scene: testScene(), Window: w})
	require.NoError(t, err)

	g.Frame(16 * time.Millisecond)

	for i, want := range "FPS: 0" {
		r, _, _, _ := ss.GetContent(1+i, 0)
		assert.Equal(t, want, r, "column %d", 1+i)
	}
}

func TestRunStopsWhenWindowClosesAndSavesSession(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	w := newScriptWindow()
	w.closeAfter = 3
	g, cr := newTestGame(t, w, &recorder{})
	g.cfg.Window.MaxFPS = 1000

	done := make(chan struct{})
	go func() {
		g.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the window closed")
	}

	assert.True(t, w.locked)
	assert.Equal(t, 3, cr.frames)
	data, err := os.ReadFile(filepath.Join(tmp, "boulder-smash", "sessions.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"frames":3`)
	assert.Contains(t, string(data), `"asteroids_left":2`)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	w := newScriptWindow()
	g, _ := newTestGame(t, w, &recorder{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run ignored a cancelled context")
	}
}
