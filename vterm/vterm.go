// Package vterm is a minimal virtual terminal grid implementing the
// braille.Terminal collaborator. It exists for the simulator and the
// tests; a real integration mirrors whatever terminal subsystem it runs
// inside.
//
// The grid understands just enough of a terminal to be useful to browse
// over: printable characters, wide runes, newline, carriage return,
// backspace and tabs. Escape sequences are not parsed.
package vterm

import (
	"github.com/hnimtadd/braillio/logger"
	"github.com/hnimtadd/braillio/utils"
	dw "github.com/mattn/go-runewidth"
	"github.com/mitchellh/hashstructure/v2"
)

const tabInterval = 8

// Options configures a Grid.
type Options struct {
	// ID identifies this surface to the display core.
	ID int

	Cols, Rows int

	// OnCursor is called by CursorMoved with the recomputed cursor.
	OnCursor func(x, y int)

	// OnRefresh is called by Refresh when the visible content actually
	// changed since the last refresh.
	OnRefresh func()

	Logger logger.Logger
}

// Grid is one terminal surface.
type Grid struct {
	id         int
	cols, rows int
	cells      [][]rune
	x, y       int

	// lastHash remembers the content identity of the last delivered
	// refresh so redundant redraw callbacks are skipped.
	lastHash uint64

	onCursor  func(x, y int)
	onRefresh func()
	logger    logger.Logger
}

func NewGrid(opts Options) *Grid {
	log := opts.Logger
	if log == nil {
		log = logger.DefaultLogger
	}
	cells := make([][]rune, opts.Rows)
	for i := range cells {
		cells[i] = make([]rune, opts.Cols)
	}
	return &Grid{
		id:        opts.ID,
		cols:      opts.Cols,
		rows:      opts.Rows,
		cells:     cells,
		onCursor:  opts.OnCursor,
		onRefresh: opts.OnRefresh,
		logger:    log,
	}
}

func (g *Grid) ID() int { return g.id }

func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

func (g *Grid) Cursor() (x, y int) { return g.x, g.y }

// CursorMoved recomputes and shows the cursor position.
func (g *Grid) CursorMoved() {
	if g.onCursor != nil {
		g.onCursor(g.x, g.y)
	}
}

// Refresh redraws the visible region, unless nothing changed since the
// last delivered refresh. The identity check hashes the cell contents
// and the cursor.
func (g *Grid) Refresh() {
	hashed, err := hashstructure.Hash(struct {
		Cells [][]rune
		X, Y  int
	}{g.cells, g.x, g.y}, hashstructure.FormatV2, nil)
	if err != nil {
		// Hashing a slice of runes cannot fail; redraw unconditionally
		// if it somehow does.
		g.logger.Warn("refresh hash failed", "err", err)
		hashed = g.lastHash + 1
	}
	if hashed == g.lastHash {
		return
	}
	g.lastHash = hashed
	if g.onRefresh != nil {
		g.onRefresh()
	}
}

// Write consumes one byte of terminal output.
func (g *Grid) Write(c byte) {
	switch c {
	case '\n', '\v', '\f':
		g.newline()
	case '\r':
		g.x = 0
	case 0x08, 0x7F:
		if g.x > 0 {
			g.x--
			g.cells[g.y][g.x] = 0
		}
	case '\t':
		g.x += tabInterval - g.x%tabInterval
		if g.x >= g.cols {
			g.newline()
		}
	default:
		if c < 0x20 {
			return
		}
		g.WriteRune(rune(c))
	}
}

// WriteRune places one printable rune at the cursor, handling wide runes
// the way a real grid does: the rune occupies its first cell and the
// second cell holds a zero spacer.
func (g *Grid) WriteRune(r rune) {
	width := dw.RuneWidth(r)
	if width == 0 {
		// Grapheme clusters and combining marks are not supported.
		g.logger.Debug("zero-width rune ignored", "rune", r)
		return
	}
	utils.Assert(width <= 2)
	if g.x+width > g.cols {
		g.newline()
	}
	g.cells[g.y][g.x] = r
	if width == 2 {
		g.cells[g.y][g.x+1] = 0
	}
	g.x += width
}

// WriteString consumes a string rune by rune. Convenience for tests and
// the simulator.
func (g *Grid) WriteString(s string) {
	for _, r := range s {
		if r < 0x80 {
			g.Write(byte(r))
		} else {
			g.WriteRune(r)
		}
	}
}

// Cell returns the rune at (x, y), zero when blank or out of range.
func (g *Grid) Cell(x, y int) rune {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return 0
	}
	return g.cells[y][x]
}

// Window returns w cells starting at (x, y). Out-of-range cells are
// blank, so a viewport anchored near the right edge of a narrow grid
// still yields a full window.
func (g *Grid) Window(x, y, w int) []rune {
	win := make([]rune, w)
	for i := range win {
		win[i] = g.Cell(x+i, y)
	}
	return win
}

func (g *Grid) newline() {
	g.x = 0
	g.y++
	if g.y == g.rows {
		// Scroll one row.
		copy(g.cells, g.cells[1:])
		g.cells[g.rows-1] = make([]rune, g.cols)
		g.y = g.rows - 1
	}
}
