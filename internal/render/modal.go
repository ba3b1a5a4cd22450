package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawModal draws a centred, bordered message box and shows it.
func DrawModal(screen tcell.Screen, title, msg string) {
	sw, sh := screen.Size()
	lines := strings.Split(msg, "\n")
	inner := runewidth.StringWidth(title)
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l))
	}
	hint := "press any key"
	inner = max(inner, runewidth.StringWidth(hint))

	boxW := inner + 4
	boxH := len(lines) + 4
	x0 := max((sw-boxW)/2, 0)
	y0 := max((sh-boxH)/2, 0)

	frame := tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	body := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			ch := ' '
			switch {
			case (y == y0 || y == y0+boxH-1) && (x == x0 || x == x0+boxW-1):
				ch = '+'
			case y == y0 || y == y0+boxH-1:
				ch = '-'
			case x == x0 || x == x0+boxW-1:
				ch = '|'
			}
			st := body
			if ch != ' ' {
				st = frame
			}
			screen.SetContent(x, y, ch, nil, st)
		}
	}
	drawText(screen, x0+2, y0, " "+title+" ", frame)
	for i, l := range lines {
		drawText(screen, x0+2, y0+2+i, l, body)
	}
	drawText(screen, x0+boxW-2-runewidth.StringWidth(hint), y0+boxH-1, hint, frame)
	screen.Show()
}

// ShowFatal draws a modal and blocks until a key is pressed or the screen
// stops delivering events.
func ShowFatal(screen tcell.Screen, title, msg string) {
	DrawModal(screen, title, msg)
	for {
		switch screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		}
	}
}
