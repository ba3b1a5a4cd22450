package render

import (
	"time"

	"boulder-smash/internal/input"
	"boulder-smash/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraSettings tunes the perspective camera.
type CameraSettings struct {
	FOV         float32 // vertical, degrees
	Near, Far   float32
	Speed       float32 // units per second
	Boost       float32 // speed multiplier while Shift is held
	Sensitivity float32 // degrees per cell of mouse motion
	LookSpeed   float32 // degrees per second for arrow-key look
	CellAspect  float32 // cell width / cell height
	Position    mgl32.Vec3
}

// DefaultCameraSettings matches the desktop defaults, with mouse sensitivity
// scaled for cell-sized motion.
func DefaultCameraSettings() CameraSettings {
	return CameraSettings{
		FOV:         45,
		Near:        0.01,
		Far:         100,
		Speed:       2.5,
		Boost:       3,
		Sensitivity: 1,
		LookSpeed:   90,
		CellAspect:  0.5,
		Position:    mgl32.Vec3{0, 0, -1.5},
	}
}

// Camera is a first-person perspective camera. Yaw starts at -90 so that it
// looks down -Z; pitch is clamped to ±89 degrees.
type Camera struct {
	Transform transform.Transform

	settings   CameraSettings
	yaw, pitch float32
	lastMouse  mgl32.Vec2
	haveMouse  bool
	paused     bool
	escHeld    bool

	view, projection mgl32.Mat4
}

// NewCamera places a camera and builds its projection for a width×height
// cell viewport.
func NewCamera(s CameraSettings, width, height int) *Camera {
	c := &Camera{
		Transform: transform.At(s.Position.X(), s.Position.Y(), s.Position.Z()),
		settings:  s,
		yaw:       -90,
	}
	c.applyOrientation()
	c.Resize(width, height)
	c.refreshView()
	return c
}

// Resize rebuilds the projection for a new viewport size.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) * c.settings.CellAspect / float32(height)
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.settings.FOV), aspect, c.settings.Near, c.settings.Far)
}

// Update applies one frame of input: pause toggle, movement, look, and a
// projection refresh when the window was resized.
func (c *Camera) Update(dt time.Duration, w input.Window) {
	if w.ConsumeResized() {
		c.Resize(w.Size())
	}

	esc := w.KeyDown(input.KeyEscape)
	if esc && !c.escHeld {
		c.paused = !c.paused
		w.SetCursorLocked(!c.paused)
		c.haveMouse = false
	}
	c.escHeld = esc

	if !c.paused {
		c.move(dt, w)
		c.look(dt, w)
	}
	c.refreshView()
}

func (c *Camera) move(dt time.Duration, w input.Window) {
	speed := c.settings.Speed * float32(dt.Seconds())
	if w.KeyDown(input.KeyShift) {
		speed *= c.settings.Boost
	}
	front := c.Transform.Forward()
	right := c.Transform.Right()
	if w.KeyDown(input.KeyW) {
		c.Transform.Translate(front.Mul(speed))
	}
	if w.KeyDown(input.KeyS) {
		c.Transform.Translate(front.Mul(-speed))
	}
	if w.KeyDown(input.KeyA) {
		c.Transform.Translate(right.Mul(-speed))
	}
	if w.KeyDown(input.KeyD) {
		c.Transform.Translate(right.Mul(speed))
	}
}

func (c *Camera) look(dt time.Duration, w input.Window) {
	var dYaw, dPitch float32
	step := c.settings.LookSpeed * float32(dt.Seconds())
	if w.KeyDown(input.KeyLeft) {
		dYaw -= step
	}
	if w.KeyDown(input.KeyRight) {
		dYaw += step
	}
	if w.KeyDown(input.KeyUp) {
		dPitch += step
	}
	if w.KeyDown(input.KeyDown) {
		dPitch -= step
	}

	if w.CursorLocked() {
		pos := w.MousePosition()
		if c.haveMouse {
			delta := pos.Sub(c.lastMouse)
			dYaw += delta.X() * c.settings.Sensitivity
			dPitch -= delta.Y() * c.settings.Sensitivity
		}
		c.lastMouse = pos
		c.haveMouse = true
	}

	if dYaw != 0 || dPitch != 0 {
		c.Turn(dYaw, dPitch)
	}
}

// Turn adds yaw and pitch in degrees. Pitch is clamped to ±89.
func (c *Camera) Turn(dYaw, dPitch float32) {
	c.yaw += dYaw
	c.pitch = mgl32.Clamp(c.pitch+dPitch, -89, 89)
	c.applyOrientation()
}

func (c *Camera) applyOrientation() {
	yaw := mgl32.QuatRotate(mgl32.DegToRad(-(c.yaw + 90)), mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(c.pitch), mgl32.Vec3{1, 0, 0})
	c.Transform.Rotation = yaw.Mul(pitch).Normalize()
}

func (c *Camera) refreshView() {
	pos := c.Transform.Position
	c.view = mgl32.LookAtV(pos, pos.Add(c.Transform.Forward()), transform.WorldUp)
}

// Yaw and Pitch are in degrees.
func (c *Camera) Yaw() float32   { return c.yaw }
func (c *Camera) Pitch() float32 { return c.pitch }

// Paused reports whether Esc froze the camera.
func (c *Camera) Paused() bool { return c.paused }

// Projection returns the matrices for the current frame.
func (c *Camera) Projection() Projection {
	return Projection{View: c.view, Projection: c.projection}
}
