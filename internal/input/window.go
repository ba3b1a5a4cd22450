package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Key identifies a keyboard key the runtime reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyF
	KeySpace
	KeyEscape
	KeyShift
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Window is the windowing and input surface the frame loop drives.
// All methods are called from the frame loop goroutine.
type Window interface {
	// Poll drains pending input events.
	Poll()
	KeyDown(k Key) bool
	KeyUp(k Key) bool
	MouseButtonDown(b Button) bool
	MouseButtonUp(b Button) bool
	// MousePosition is in cell coordinates.
	MousePosition() mgl32.Vec2
	SetCursorLocked(locked bool)
	CursorLocked() bool
	// Size is in cells.
	Size() (width, height int)
	// ConsumeResized reports whether the window was resized since the last
	// call and clears the flag.
	ConsumeResized() bool
	ShouldClose() bool
	Close()
	Screen() tcell.Screen
	Present()
}
