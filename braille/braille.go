// Package braille holds the types shared by every component of the
// display core: the cell code point, the fixed display width, and the
// interface of the virtual terminal surface being mirrored.
package braille

// Width is the number of cells on the display. Every frame sent to the
// device carries exactly this many characters.
const Width = 40

// CodePoint is one display cell. The device is an 8-bit serial display;
// values above 0xFF cannot be represented and are substituted during
// encoding. 0x00 is the blank cell.
type CodePoint uint16

// Line is the full display-width line of cells. It is a value type on
// purpose: comparing and copying lines is how change detection works.
type Line [Width]CodePoint

// Terminal is the virtual terminal surface collaborator. The core never
// looks inside the grid; it only needs the dimensions, the live cursor,
// and the two redraw entry points invoked after viewport changes.
type Terminal interface {
	// ID identifies the surface. Used to detect foreground switches.
	ID() int

	// Size returns the grid dimensions in cells.
	Size() (cols, rows int)

	// Cursor returns the current cursor position on the grid.
	Cursor() (x, y int)

	// CursorMoved recomputes and shows the cursor position.
	CursorMoved()

	// Refresh redraws the visible region.
	Refresh()
}
