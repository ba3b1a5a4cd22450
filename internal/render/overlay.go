package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Overlay draws the frame counter in the top-left corner. The FPS figure is
// recomputed once per second.
type Overlay struct {
	Visible bool

	frames int
	since  time.Time
	text   string
}

// NewOverlay returns a visible overlay showing "FPS: 0" until the first
// second has elapsed.
func NewOverlay() *Overlay {
	return &Overlay{Visible: true, text: "FPS: 0"}
}

// Tick counts one frame ending at now.
func (o *Overlay) Tick(now time.Time) {
	if o.since.IsZero() {
		o.since = now
		return
	}
	o.frames++
	if elapsed := now.Sub(o.since); elapsed >= time.Second {
		fps := float64(o.frames) / elapsed.Seconds()
		o.text = fmt.Sprintf("FPS: %d", int(fps+0.5))
		o.frames = 0
		o.since = now
	}
}

// Text returns the current overlay line.
func (o *Overlay) Text() string { return o.text }

// Draw writes the overlay onto screen.
func (o *Overlay) Draw(screen tcell.Screen) {
	if !o.Visible {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	drawText(screen, 1, 0, o.text, style)
}

// drawText writes a string starting at column x, advancing by each rune's
// display width.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
