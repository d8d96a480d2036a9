// Command braillio-sim runs the display core against a simulated
// terminal so the panning and follow behavior can be exercised without
// braille hardware.
//
// The screen shows the virtual terminal on top and a 40-cell "display"
// strip at the bottom: what a connected device would currently show.
// Typed characters go to the terminal; Insert toggles browse mode;
// Ctrl+C quits. Frames can be captured to a file with --capture.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/hnimtadd/braillio"
	"github.com/hnimtadd/braillio/braille"
	"github.com/hnimtadd/braillio/braille/control"
	"github.com/hnimtadd/braillio/braille/key"
	"github.com/hnimtadd/braillio/device"
	"github.com/hnimtadd/braillio/logger"
	"github.com/hnimtadd/braillio/notify"
	"github.com/hnimtadd/braillio/tone"
	"github.com/hnimtadd/braillio/vterm"
)

var (
	flagCols    int
	flagRows    int
	flagSound   bool
	flagOptions string
	flagCapture string
)

func main() {
	cmd := &cobra.Command{
		Use:   "braillio-sim",
		Short: "simulate a braille display mirroring a virtual terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	cmd.Flags().IntVar(&flagCols, "cols", 80, "virtual terminal columns")
	cmd.Flags().IntVar(&flagRows, "rows", 25, "virtual terminal rows")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "emit audible cues")
	cmd.Flags().StringVar(&flagOptions, "device-options", "", "serial option string (default "+device.DefaultOptions+")")
	cmd.Flags().StringVar(&flagCapture, "capture", "", "append raw frames to this file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.New(logger.Options{Output: os.Stderr, Level: logger.WarnLevel})

	capture, err := newCapture(flagCapture)
	if err != nil {
		return err
	}
	defer capture.Close()

	keyboard := &notify.Keyboard{}
	terminals := &notify.Terminals{}
	grid := vterm.NewGrid(vterm.Options{
		ID:     1,
		Cols:   flagCols,
		Rows:   flagRows,
		Logger: log,
	})

	var beeper control.Beeper = tone.Nop{}
	if flagSound {
		beeper = tone.NewSpeaker(log)
	}

	binder := braillio.NewBinder(braillio.Options{
		Keyboard: keyboard,
		Terminal: terminals,
		Beeper:   beeper,
		Sound:    flagSound,
		Logger:   log,
	})
	dev := device.NewWriter(capture, log)
	if err := binder.Register(dev, 0, flagOptions, ""); err != nil {
		return err
	}
	defer binder.Unregister(dev)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	write := func(c byte) {
		grid.Write(c)
		terminals.Dispatch(notify.TerminalEvent{
			Kind:       notify.TerminalWrite,
			Char:       c,
			Terminal:   grid,
			Foreground: true,
		})
	}

	// Announce the surface once so follow mode starts from a clean line.
	terminals.Dispatch(notify.TerminalEvent{
		Kind:     notify.TerminalUpdate,
		Terminal: grid,
	})

	for {
		draw(screen, grid, binder.Controller(), capture)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			k, r := mapKey(ev)
			consumed := keyboard.Key(notify.KeyEvent{
				Key:      k,
				Down:     true,
				Terminal: grid,
			})
			if consumed {
				continue
			}
			// Default key action: type into the virtual terminal.
			switch {
			case k == key.Rune && r < 0x80:
				write(byte(r))
			case ev.Key() == tcell.KeyEnter:
				write('\n')
			case ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2:
				write(0x08)
			case ev.Key() == tcell.KeyTab:
				write('\t')
			}
		}
	}
}

// mapKey translates a tcell key event into the core's key codes.
func mapKey(ev *tcell.EventKey) (key.Key, rune) {
	switch ev.Key() {
	case tcell.KeyRune:
		return key.Rune, ev.Rune()
	case tcell.KeyUp:
		return key.Up, 0
	case tcell.KeyDown:
		return key.Down, 0
	case tcell.KeyLeft:
		return key.Left, 0
	case tcell.KeyRight:
		return key.Right, 0
	case tcell.KeyHome:
		return key.Home, 0
	case tcell.KeyEnd:
		return key.End, 0
	case tcell.KeyPgUp:
		return key.PageUp, 0
	case tcell.KeyPgDn:
		return key.PageDown, 0
	case tcell.KeyInsert:
		return key.Insert, 0
	case tcell.KeyDelete:
		return key.Delete, 0
	default:
		return key.Other, 0
	}
}

func draw(screen tcell.Screen, grid *vterm.Grid, ctl *control.Controller, capture *captureWriter) {
	screen.Clear()
	cols, rows := grid.Size()

	// Virtual terminal.
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r := grid.Cell(x, y)
			if r == 0 {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
	}
	cx, cy := grid.Cursor()
	screen.ShowCursor(cx, cy)

	if ctl == nil {
		return
	}

	// Display strip: the line a connected device would show.
	var cells []rune
	if ctl.Mode() == control.Following {
		cells = make([]rune, 0, braille.Width)
		for _, cp := range ctl.Line() {
			if cp == 0 {
				cp = ' '
			}
			cells = append(cells, rune(cp))
		}
	} else {
		v := ctl.View()
		cells = grid.Window(v.X, v.Y, braille.Width)
		for i, r := range cells {
			if r == 0 {
				cells[i] = ' '
			}
		}
	}

	status := fmt.Sprintf("[%s]", ctl.Mode())
	stripStyle := tcell.StyleDefault.Reverse(true)
	for i, r := range cells {
		screen.SetContent(i, rows+1, r, nil, stripStyle)
	}
	for i, r := range status {
		screen.SetContent(braille.Width+2+i, rows+1, r, nil, tcell.StyleDefault)
	}

	// Last frame, hex-dumped, for protocol debugging.
	frame := capture.Last()
	for i := 0; i < len(frame) && 3*i < cols-3; i++ {
		for j, r := range fmt.Sprintf("%02x ", frame[i]) {
			screen.SetContent(3*i+j, rows+3, r, nil, tcell.StyleDefault)
		}
	}
}
