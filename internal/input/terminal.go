package input

import (
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// DefaultKeyHold is how long a key counts as held after its last press or
// repeat event. Terminals report presses, never releases.
const DefaultKeyHold = 300 * time.Millisecond

// TerminalWindow implements Window over a tcell screen.
type TerminalWindow struct {
	screen tcell.Screen
	log    *zap.Logger
	events chan tcell.Event
	quit   chan struct{}

	held    map[Key]time.Time
	hold    time.Duration
	buttons tcell.ButtonMask
	mouse   mgl32.Vec2

	width, height int
	resized       bool
	locked        bool
	closing       bool
	closed        bool

	now func() time.Time
}

// NewTerminalWindow initialises screen and starts its event pump.
func NewTerminalWindow(screen tcell.Screen, hold time.Duration, log *zap.Logger) (*TerminalWindow, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	w := newTerminalWindow(screen, hold, log)
	go screen.ChannelEvents(w.events, w.quit)
	return w, nil
}

func newTerminalWindow(screen tcell.Screen, hold time.Duration, log *zap.Logger) *TerminalWindow {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	if log == nil {
		log = zap.NewNop()
	}
	screen.HideCursor()
	w, h := screen.Size()
	return &TerminalWindow{
		screen: screen,
		log:    log,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		held:   make(map[Key]time.Time),
		hold:   hold,
		width:  w,
		height: h,
		now:    time.Now,
	}
}

// Poll drains every queued event without blocking.
func (w *TerminalWindow) Poll() {
	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				w.closing = true
				return
			}
			w.handle(ev)
		default:
			return
		}
	}
}

func (w *TerminalWindow) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w.width, w.height = ev.Size()
		w.resized = true
		w.screen.Sync()
		w.log.Debug("window resized", zap.Int("width", w.width), zap.Int("height", w.height))
	case *tcell.EventKey:
		w.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		w.mouse = mgl32.Vec2{float32(x), float32(y)}
		w.buttons = ev.Buttons()
	}
}

func (w *TerminalWindow) handleKey(ev *tcell.EventKey) {
	now := w.now()
	if ev.Modifiers()&tcell.ModShift != 0 {
		w.held[KeyShift] = now
	}
	switch ev.Key() {
	case tcell.KeyCtrlC:
		w.closing = true
		return
	case tcell.KeyEscape:
		w.held[KeyEscape] = now
		return
	case tcell.KeyUp:
		w.held[KeyUp] = now
		return
	case tcell.KeyDown:
		w.held[KeyDown] = now
		return
	case tcell.KeyLeft:
		w.held[KeyLeft] = now
		return
	case tcell.KeyRight:
		w.held[KeyRight] = now
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	if unicode.IsUpper(r) {
		w.held[KeyShift] = now
	}
	switch unicode.ToLower(r) {
	case 'w':
		w.held[KeyW] = now
	case 'a':
		w.held[KeyA] = now
	case 's':
		w.held[KeyS] = now
	case 'd':
		w.held[KeyD] = now
	case 'f':
		w.held[KeyF] = now
	case ' ':
		w.held[KeySpace] = now
	case 'q':
		w.held[KeyQ] = now
		w.closing = true
	}
}

func (w *TerminalWindow) KeyDown(k Key) bool {
	t, ok := w.held[k]
	return ok && w.now().Sub(t) < w.hold
}

func (w *TerminalWindow) KeyUp(k Key) bool { return !w.KeyDown(k) }

func (w *TerminalWindow) MouseButtonDown(b Button) bool {
	var mask tcell.ButtonMask
	switch b {
	case ButtonLeft:
		mask = tcell.Button1
	case ButtonMiddle:
		mask = tcell.Button3
	case ButtonRight:
		mask = tcell.Button2
	}
	return w.buttons&mask != 0
}

func (w *TerminalWindow) MouseButtonUp(b Button) bool { return !w.MouseButtonDown(b) }

func (w *TerminalWindow) MousePosition() mgl32.Vec2 { return w.mouse }

// SetCursorLocked captures mouse motion while locked. Unlocking releases
// the mouse so the terminal's own selection works again.
func (w *TerminalWindow) SetCursorLocked(locked bool) {
	if locked == w.locked {
		return
	}
	w.locked = locked
	if locked {
		w.screen.EnableMouse(tcell.MouseMotionEvents)
	} else {
		w.screen.DisableMouse()
	}
}

func (w *TerminalWindow) CursorLocked() bool { return w.locked }

func (w *TerminalWindow) Size() (int, int) { return w.width, w.height }

func (w *TerminalWindow) ConsumeResized() bool {
	r := w.resized
	w.resized = false
	return r
}

func (w *TerminalWindow) ShouldClose() bool { return w.closing }

// Close stops the event pump and restores the terminal. Safe to call twice.
func (w *TerminalWindow) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.closing = true
	close(w.quit)
	w.screen.Fini()
}

func (w *TerminalWindow) Screen() tcell.Screen { return w.screen }

func (w *TerminalWindow) Present() { w.screen.Show() }
