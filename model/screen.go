package model

import (
	"github.com/gdamore/tcell/v2"
)

// ScreenRenderer draws generations on a full-screen tcell terminal.
// The screen must already be initialised; the caller owns Fini.
type ScreenRenderer struct {
	screen     tcell.Screen
	aliveGlyph []rune
	deadGlyph  []rune
	aliveStyle tcell.Style
	deadStyle  tcell.Style
}

func NewScreenRenderer(screen tcell.Screen, aliveGlyph, deadGlyph string) *ScreenRenderer {
	return &ScreenRenderer{
		screen:     screen,
		aliveGlyph: []rune(aliveGlyph),
		deadGlyph:  []rune(deadGlyph),
		aliveStyle: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		deadStyle:  tcell.StyleDefault,
	}
}

// Screen exposes the underlying screen so input can be read from it
func (r *ScreenRenderer) Screen() tcell.Screen {
	return r.screen
}

// Clear blanks the back buffer; nothing is visible until the next Show
func (r *ScreenRenderer) Clear() error {
	r.screen.Clear()
	return nil
}

// Display draws every cell then shows the frame at once
func (r *ScreenRenderer) Display(v View) error {
	cellWidth := max(len(r.aliveGlyph), len(r.deadGlyph))
	for y := range v.GetHeight() {
		for x := range v.GetWidth() {
			glyph, style := r.deadGlyph, r.deadStyle
			if v.Get(x, y) == Alive {
				glyph, style = r.aliveGlyph, r.aliveStyle
			}
			for i := range cellWidth {
				ch := ' '
				if i < len(glyph) {
					ch = glyph[i]
				}
				r.screen.SetContent(x*cellWidth+i, y, ch, nil, style)
			}
		}
	}
	r.screen.Show()
	return nil
}
