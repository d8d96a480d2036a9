// Package device declares the transport collaborator the frame encoder
// writes to, plus an io.Writer-backed implementation with serial-style
// option parsing for simulators and tests.
package device

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hnimtadd/braillio/logger"
)

// DefaultOptions is the device option string applied when the caller
// registers a device without one: 57600 baud, odd parity, 8 data bits.
const DefaultOptions = "57600o8"

// Device is the transport collaborator. Setup applies the device option
// string once at bind time; Write ships one complete frame. Write has no
// return value consulted by the core: transport failures are the
// implementation's concern, the core cannot retry a frame anyway.
type Device interface {
	Setup(options string) error
	Write(data []byte)
}

// Options is a parsed serial option string of the form "<baud><parity><bits>",
// e.g. "57600o8".
type Options struct {
	Baud   int
	Parity byte // 'n', 'o' or 'e'
	Bits   int
}

// ParseOptions parses a serial option string. The format follows the
// usual serial console convention: decimal baud rate, a single parity
// letter, and the number of data bits.
func ParseOptions(s string) (Options, error) {
	var opts Options
	if s == "" {
		return opts, fmt.Errorf("empty device options")
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return opts, fmt.Errorf("device options %q: missing baud rate", s)
	}
	baud, err := strconv.Atoi(s[:i])
	if err != nil || baud <= 0 {
		return opts, fmt.Errorf("device options %q: bad baud rate", s)
	}
	opts.Baud = baud

	if i >= len(s) {
		return opts, fmt.Errorf("device options %q: missing parity", s)
	}
	switch s[i] {
	case 'n', 'o', 'e':
		opts.Parity = s[i]
	default:
		return opts, fmt.Errorf("device options %q: bad parity %q", s, s[i])
	}
	i++

	if i >= len(s) {
		return opts, fmt.Errorf("device options %q: missing data bits", s)
	}
	bits, err := strconv.Atoi(s[i:])
	if err != nil || bits < 5 || bits > 8 {
		return opts, fmt.Errorf("device options %q: bad data bits", s)
	}
	opts.Bits = bits

	return opts, nil
}

// Writer is a Device over any io.Writer. The simulator points it at a
// pty or a capture file; tests point it at a bytes.Buffer.
type Writer struct {
	out    io.Writer
	opts   Options
	logger logger.Logger
}

var _ Device = (*Writer)(nil)

func NewWriter(out io.Writer, log logger.Logger) *Writer {
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Writer{out: out, logger: log}
}

// Setup validates and records the option string. The io.Writer carries
// no line discipline, so the parsed options are informational here; a
// real serial device applies them to the port.
func (w *Writer) Setup(options string) error {
	opts, err := ParseOptions(options)
	if err != nil {
		return err
	}
	w.opts = opts
	w.logger.Debug("device setup", "baud", opts.Baud, "parity", string(opts.Parity), "bits", opts.Bits)
	return nil
}

// Options returns the options recorded by Setup.
func (w *Writer) Options() Options {
	return w.opts
}

func (w *Writer) Write(data []byte) {
	if _, err := w.out.Write(data); err != nil {
		// Nothing to report upstream; the frame is simply lost.
		w.logger.Warn("device write failed", "err", err)
	}
}
