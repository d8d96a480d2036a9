// Package line reconstructs the single display-width line shown in
// follow mode from the stream of characters written to the foreground
// terminal.
package line

import (
	"github.com/hnimtadd/braillio/braille"
	"github.com/hnimtadd/braillio/utils"
)

// Buffer owns the current display line, the write cursor, and the
// pending-newline flag. It consumes the terminal output one character at
// a time; it never looks at the terminal grid itself.
//
// The cursor is the index of the next write position, in [0, Width].
// Once it reaches Width the line becomes a sliding window: each new
// character drops the leftmost cell instead of wrapping.
type Buffer struct {
	cells  braille.Line
	cursor int

	// newline defers the clear caused by a line terminator until the
	// next printable character, so the finished line stays readable on
	// the display until there is something new to show.
	newline bool
}

func NewBuffer() *Buffer {
	// The first printable character ever written starts a fresh line.
	return &Buffer{newline: true}
}

// OnChar consumes one character of terminal output and reports whether
// the visible line changed.
func (b *Buffer) OnChar(c braille.CodePoint) bool {
	switch c {
	case 0x08, 0x7F: // backspace, delete
		if b.cursor == 0 {
			return false
		}
		b.cursor--
		b.cells[b.cursor] = ' '
		return true

	case '\n', '\v', '\f', '\r':
		b.newline = true
		return false

	case '\t':
		// A tab becomes a single space; the display has no tab stops.
		c = ' '
		fallthrough

	default:
		if c < 0x20 {
			// Remaining control characters carry no glyph.
			return false
		}
		if b.newline {
			b.cells = braille.Line{}
			b.cursor = 0
			b.newline = false
		}
		if b.cursor == braille.Width {
			copy(b.cells[:], b.cells[1:])
		} else {
			b.cursor++
		}
		utils.Assert(b.cursor >= 1 && b.cursor <= braille.Width, "cursor out of range")
		b.cells[b.cursor-1] = c
		return true
	}
}

// Reset clears the line and the cursor. Used when the foreground
// terminal switches, so two terminals' output never mixes on the
// display. The pending-newline flag is left alone.
func (b *Buffer) Reset() {
	b.cells = braille.Line{}
	b.cursor = 0
}

// Line returns the current display line. The pointer stays valid for the
// lifetime of the buffer; the encoder copies what it needs.
func (b *Buffer) Line() *braille.Line {
	return &b.cells
}

// Cursor returns the next write position.
func (b *Buffer) Cursor() int {
	return b.cursor
}
