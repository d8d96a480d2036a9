// Package view tracks the browse-mode viewport: the top-left anchor of
// the display-width window panned over the virtual terminal grid.
package view

import "github.com/hnimtadd/braillio/braille"

// Grid is the part of the terminal surface the viewport needs: current
// dimensions and the live cursor. Both are read per operation, the grid
// may resize between calls.
type Grid interface {
	Size() (cols, rows int)
	Cursor() (x, y int)
}

// Cue is the audible outcome of a pan operation. Blocked pans are not
// errors; the cue is the only signal the operator gets.
type Cue uint8

const (
	CueNone    Cue = iota // moved within the row, silent
	CueWrap               // wrapped to the adjacent row
	CueBlocked            // already at the edge, nothing moved
)

// View is the viewport anchor plus the last observed terminal cursor,
// kept so "home" can recompute the default window.
//
// X is only ever clamped at zero. The upper bound is enforced by the
// step comparisons themselves (x+Width < cols, strictly), which is what
// keeps panning stable on grids whose width is not a multiple of the
// display width. Do not tighten these comparisons.
type View struct {
	X, Y int

	// LastX, LastY is the terminal cursor as of the last FollowCursor.
	LastX, LastY int
}

// FollowCursor aligns the viewport on the display-width column page
// containing the cursor and records the cursor position.
func (v *View) FollowCursor(g Grid) {
	cx, cy := g.Cursor()
	v.X = cx - cx%braille.Width
	v.Y = cy
	v.LastX, v.LastY = cx, cy
}

// PanLeft moves one page left, wrapping to the rightmost page of the
// previous row at the start of a row.
func (v *View) PanLeft(g Grid) Cue {
	cols, _ := g.Size()
	switch {
	case v.X > 0:
		v.X -= braille.Width
		if v.X < 0 {
			v.X = 0
		}
		return CueNone
	case v.Y >= 1:
		v.Y--
		v.X = cols - braille.Width
		return CueWrap
	default:
		return CueBlocked
	}
}

// PanRight moves one page right, wrapping to the start of the next row
// at the end of a row.
func (v *View) PanRight(g Grid) Cue {
	cols, rows := g.Size()
	switch {
	case v.X+braille.Width < cols:
		v.X += braille.Width
		return CueNone
	case v.Y+1 < rows:
		v.Y++
		v.X = 0
		return CueWrap
	default:
		return CueBlocked
	}
}

// PanUp moves one row up. X is untouched.
func (v *View) PanUp(g Grid) Cue {
	if v.Y >= 1 {
		v.Y--
		return CueNone
	}
	return CueBlocked
}

// PanDown moves one row down. X is untouched.
func (v *View) PanDown(g Grid) Cue {
	_, rows := g.Size()
	if v.Y+1 < rows {
		v.Y++
		return CueNone
	}
	return CueBlocked
}

// JumpTop moves to the top-left of the grid.
func (v *View) JumpTop() {
	v.X, v.Y = 0, 0
}

// JumpBottom moves to the start of the last row.
func (v *View) JumpBottom(g Grid) {
	_, rows := g.Size()
	v.X, v.Y = 0, rows-1
}
