package game

import (
	"boulder-smash/internal/input"

	"go.uber.org/zap"
)

// hotkeys turns held keys into one-shot toggles. The terminal only reports
// presses, so a toggle fires on the frame a key goes from up to down.
type hotkeys struct {
	held map[input.Key]bool
}

// pressed reports whether k went down since the previous call.
func (h *hotkeys) pressed(w input.Window, k input.Key) bool {
	if h.held == nil {
		h.held = make(map[input.Key]bool)
	}
	down := w.KeyDown(k)
	was := h.held[k]
	h.held[k] = down
	return down && !was
}

func (g *Game) handleHotkeys() {
	if g.hotkeys.pressed(g.window, input.KeyF) {
		g.overlay.Visible = !g.overlay.Visible
		g.log.Debug("fps overlay toggled", zap.Bool("visible", g.overlay.Visible))
	}
}
