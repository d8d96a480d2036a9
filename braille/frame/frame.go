// Package frame encodes display lines into the wire frames the serial
// braille device understands.
//
// A frame is STX '>' followed by the forty character bytes, an XOR
// checksum and ETX. Data bytes that collide with the protocol control
// codes (0x01..0x05) are escaped with an SOH prefix and moved out of the
// control range by setting bit 0x40. The checksum is computed over the
// pre-escape values.
package frame

import (
	"github.com/hnimtadd/braillio/braille"
	"github.com/hnimtadd/braillio/device"
	"golang.org/x/text/encoding/charmap"
)

// Protocol control bytes.
const (
	SOH byte = 0x01 // escape prefix
	STX byte = 0x02 // frame start
	ETX byte = 0x03 // frame end
	EOT byte = 0x04
	ENQ byte = 0x05
)

// cmdDisplay is the command byte for "display this line".
const cmdDisplay byte = '>'

// substitute replaces cells the 8-bit device cannot show.
const substitute byte = '?'

// Encoder turns lines into frames for one bound device. It remembers the
// last line it sent and drops byte-identical repeats, so callers can
// hand it the current line after every single character without flooding
// the serial link.
//
// The comparison buffer starts out all-blank, which means the very first
// all-blank line is also dropped. That matches the device starting out
// cleared.
type Encoder struct {
	dev  device.Device
	last braille.Line
}

func NewEncoder(dev device.Device) *Encoder {
	return &Encoder{dev: dev}
}

// Send encodes line and writes the frame to the device in one call.
// A line equal to the previously sent one is a no-op.
func (e *Encoder) Send(line *braille.Line) {
	if e.last == *line {
		return
	}
	e.last = *line

	// Worst case every character and the checksum need escaping.
	data := make([]byte, 0, 2+2*braille.Width+2+1)
	data = append(data, STX, cmdDisplay)
	csum := cmdDisplay

	for _, cp := range line {
		var b byte
		switch {
		case cp == 0:
			b = ' '
		default:
			// The device speaks Latin-1; anything the charmap cannot
			// encode gets the substitute glyph.
			enc, ok := charmap.ISO8859_1.EncodeRune(rune(cp))
			if !ok {
				enc = substitute
			}
			b = enc
		}
		csum ^= b

		if b <= ENQ {
			data = append(data, SOH)
			b |= 0x40
		}
		data = append(data, b)
	}

	if csum <= ENQ {
		data = append(data, SOH)
		csum |= 0x40
	}
	data = append(data, csum, ETX)

	e.dev.Write(data)
}
