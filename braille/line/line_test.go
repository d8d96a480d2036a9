package line

import (
	"testing"

	"github.com/hnimtadd/braillio/braille"
	"github.com/stretchr/testify/assert"
)

func feed(b *Buffer, s string) {
	for _, r := range s {
		b.OnChar(braille.CodePoint(r))
	}
}

func TestBufferBasicWrite(t *testing.T) {
	b := NewBuffer()
	feed(b, "hello")

	assert.Equal(t, 5, b.Cursor())
	l := b.Line()
	assert.EqualValues(t, 'h', l[0])
	assert.EqualValues(t, 'o', l[4])
	assert.EqualValues(t, 0, l[5])
}

func TestBufferSlidingWindow(t *testing.T) {
	b := NewBuffer()

	// Width+1 printable characters, no terminator: the first one falls
	// off the left edge and the cursor pins at Width.
	input := make([]braille.CodePoint, braille.Width+1)
	for i := range input {
		input[i] = braille.CodePoint('A' + i%26)
	}
	for _, c := range input {
		b.OnChar(c)
	}

	assert.Equal(t, braille.Width, b.Cursor())
	l := b.Line()
	for i := range braille.Width {
		assert.Equal(t, input[i+1], l[i], "cell %d", i)
	}
}

func TestBufferNewlineLazyClear(t *testing.T) {
	b := NewBuffer()
	feed(b, "AB")

	// The terminator alone must not clear anything: the finished line
	// stays on the display.
	changed := b.OnChar('\n')
	assert.False(t, changed)
	assert.Equal(t, 2, b.Cursor())
	assert.EqualValues(t, 'A', b.Line()[0])

	// The next printable character performs the clear.
	feed(b, "C")
	assert.Equal(t, 1, b.Cursor())
	l := b.Line()
	assert.EqualValues(t, 'C', l[0])
	for i := 1; i < braille.Width; i++ {
		assert.EqualValues(t, 0, l[i], "cell %d must be blank", i)
	}
}

func TestBufferLineTerminators(t *testing.T) {
	for _, c := range []braille.CodePoint{'\n', '\v', '\f', '\r'} {
		b := NewBuffer()
		feed(b, "X")
		b.OnChar(c)
		feed(b, "Y")
		assert.EqualValues(t, 'Y', b.Line()[0], "terminator %#x", c)
		assert.Equal(t, 1, b.Cursor())
	}
}

func TestBufferBackspace(t *testing.T) {
	b := NewBuffer()
	feed(b, "AB")

	assert.True(t, b.OnChar(0x08))
	assert.Equal(t, 1, b.Cursor())
	assert.EqualValues(t, ' ', b.Line()[1], "backspace blanks the cell")

	assert.True(t, b.OnChar(0x7F), "delete behaves like backspace")
	assert.Equal(t, 0, b.Cursor())

	// No-op at the left edge.
	assert.False(t, b.OnChar(0x08))
	assert.Equal(t, 0, b.Cursor())
}

func TestBufferTabBecomesSpace(t *testing.T) {
	b := NewBuffer()
	feed(b, "A\tB")

	assert.Equal(t, 3, b.Cursor())
	l := b.Line()
	assert.EqualValues(t, 'A', l[0])
	assert.EqualValues(t, ' ', l[1], "tab collapses to one space, no tab stops")
	assert.EqualValues(t, 'B', l[2])
}

func TestBufferIgnoresOtherControlCharacters(t *testing.T) {
	b := NewBuffer()
	feed(b, "A")

	for _, c := range []braille.CodePoint{0x00, 0x01, 0x07, 0x1B, 0x1F} {
		assert.False(t, b.OnChar(c), "control %#x must be ignored", c)
	}
	assert.Equal(t, 1, b.Cursor())
	assert.EqualValues(t, 'A', b.Line()[0])
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer()
	feed(b, "AB")

	b.Reset()
	assert.Equal(t, 0, b.Cursor())
	assert.Equal(t, &braille.Line{}, b.Line())

	// Reset does not arm the newline flag: the next character appends
	// to the cleared line rather than clearing again.
	feed(b, "Z")
	assert.Equal(t, 1, b.Cursor())
	assert.EqualValues(t, 'Z', b.Line()[0])
}

func TestBufferChangeReporting(t *testing.T) {
	b := NewBuffer()

	assert.True(t, b.OnChar('A'))
	assert.False(t, b.OnChar('\r'), "terminator changes nothing visible yet")
	assert.False(t, b.OnChar(0x03), "ignored control reports no change")
	assert.True(t, b.OnChar('B'), "printable after terminator clears and writes")
}
