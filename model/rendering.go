package model

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "■ "
	gridPosEmpty = "  "

	// cursor home followed by erase display
	ansiClear = "\x1b[1;1H\x1b[2J"
)

// Renderer draws complete generations. Implementations never mutate the grid.
type Renderer interface {
	Clear() error
	Display(v View) error
}

// TerminalRenderer writes one glyph per cell and a line break per row
type TerminalRenderer struct {
	Out        io.Writer
	AliveGlyph string
	DeadGlyph  string
}

// NewTerminalRenderer returns a renderer using the default glyphs
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{Out: out, AliveGlyph: gridPosBlock, DeadGlyph: gridPosEmpty}
}

// Display renders the grid as a single write so a frame is never split
func (r *TerminalRenderer) Display(v View) error {
	var b strings.Builder
	for y := range v.GetHeight() {
		for x := range v.GetWidth() {
			if v.Get(x, y) == Alive {
				b.WriteString(r.AliveGlyph)
			} else {
				b.WriteString(r.DeadGlyph)
			}
		}
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(r.Out, b.String()); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Display] failed to write frame")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	if _, err := io.WriteString(r.Out, ansiClear); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Clear] failed to clear terminal")
	}
	return nil
}

// DebugRenderer dumps raw cell values, "0 " or "1 " per cell
type DebugRenderer struct {
	Out io.Writer
}

func (r *DebugRenderer) Display(v View) error {
	var b strings.Builder
	for y := range v.GetHeight() {
		for x := range v.GetWidth() {
			b.WriteString(strconv.Itoa(int(v.Get(x, y))))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(r.Out, b.String()); err != nil {
		return errors.Wrap(err, "[DebugRenderer.Display] failed to write frame")
	}
	return nil
}

// Clear clears the terminal screen before each dump
func (r *DebugRenderer) Clear() error {
	if _, err := io.WriteString(r.Out, ansiClear); err != nil {
		return errors.Wrap(err, "[DebugRenderer.Clear] failed to clear terminal")
	}
	return nil
}
