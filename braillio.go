// Package braillio mirrors a character terminal onto a 40-cell serial
// braille display.
//
// By default the display follows live terminal output. The trigger key
// (Insert unless configured otherwise) switches to browsing, where the
// arrow and paging keys pan a display-width viewport over the virtual
// terminal grid.
//
// The package owns none of the collaborators it drives: the keyboard and
// terminal event sources, the terminal grid, the transport and the
// beeper all arrive through narrow interfaces. Register binds the core
// to one display device; Unregister tears it down.
package braillio

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hnimtadd/braillio/braille/control"
	"github.com/hnimtadd/braillio/braille/key"
	"github.com/hnimtadd/braillio/device"
	"github.com/hnimtadd/braillio/logger"
	"github.com/hnimtadd/braillio/notify"
)

var (
	// ErrAlreadyBound is returned by Register while a device is bound.
	ErrAlreadyBound = errors.New("braillio: a display device is already bound")

	// ErrNotBound is returned by Unregister when the passed device is
	// not the currently bound one.
	ErrNotBound = errors.New("braillio: device is not the bound display device")
)

// Options configures a Binder.
type Options struct {
	// Keyboard and Terminal are the two external event sources the
	// binder attaches the controller to. Both are required.
	Keyboard notify.KeyboardSource
	Terminal notify.TerminalSource

	// Beeper receives audible cues. Optional.
	Beeper control.Beeper

	// Sound enables the audible cues. Off by default; the "sound"
	// feature option on Register also turns it on.
	Sound bool

	// Trigger overrides the mode-switch key. Defaults to key.Insert.
	Trigger key.Key

	Logger logger.Logger
}

// Binder attaches the display core to the event sources and to exactly
// one display device at a time. All event handling runs under its mutex:
// the core's state transitions assume whole-update atomicity, so entries
// are serialized rather than locked field by field.
type Binder struct {
	mu   sync.Mutex
	opts Options

	bound *binding

	logger logger.Logger
}

// binding is the record of the one bound device.
type binding struct {
	device  device.Device
	index   int
	enabled bool
	ctl     *control.Controller
}

func NewBinder(opts Options) *Binder {
	log := opts.Logger
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Binder{opts: opts, logger: log}
}

// Register binds dev as the display device at the given index.
//
// deviceOptions defaults to device.DefaultOptions when empty and is
// handed to the device's Setup; a setup failure aborts the registration
// with nothing bound. featureOptions is a comma-separated flag list;
// "sound" is the only recognized flag. A second Register while a device
// is bound fails with ErrAlreadyBound.
func (b *Binder) Register(dev device.Device, index int, deviceOptions, featureOptions string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bound != nil {
		return ErrAlreadyBound
	}

	if deviceOptions == "" {
		deviceOptions = device.DefaultOptions
	}
	if err := dev.Setup(deviceOptions); err != nil {
		return fmt.Errorf("braillio: device setup: %w", err)
	}

	sound := b.opts.Sound
	for _, f := range strings.Split(featureOptions, ",") {
		if strings.TrimSpace(f) == "sound" {
			sound = true
		}
	}

	ctl := control.NewController(control.Options{
		Device:  dev,
		Trigger: b.opts.Trigger,
		Beeper:  b.opts.Beeper,
		Sound:   sound,
		Logger:  b.logger,
	})

	b.bound = &binding{
		device:  dev,
		index:   index,
		enabled: true,
		ctl:     ctl,
	}
	b.opts.Keyboard.RegisterKeyboard(b)
	b.opts.Terminal.RegisterTerminal(b)

	b.logger.Info("display device bound", "index", index, "options", deviceOptions)
	return nil
}

// Unregister detaches the core from the event sources and releases the
// binding. The caller must present the bound device.
func (b *Binder) Unregister(dev device.Device) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bound == nil || b.bound.device != dev {
		return ErrNotBound
	}

	b.opts.Keyboard.UnregisterKeyboard(b)
	b.opts.Terminal.UnregisterTerminal(b)
	b.bound = nil

	b.logger.Info("display device unbound")
	return nil
}

// Bound reports whether a device is currently bound.
func (b *Binder) Bound() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bound != nil
}

// Controller returns the active controller, or nil when unbound. Exposed
// for rendering the browse viewport; mutate nothing through it outside
// the event handlers.
func (b *Binder) Controller() *control.Controller {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bound == nil {
		return nil
	}
	return b.bound.ctl
}

// HandleKey implements notify.KeyHandler. Events arriving after the
// device is unbound are not consumed.
func (b *Binder) HandleKey(ev notify.KeyEvent) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bound == nil {
		return false
	}
	return b.bound.ctl.HandleKey(ev)
}

// HandleLock implements notify.KeyHandler.
func (b *Binder) HandleLock(ev notify.LockEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bound == nil {
		return
	}
	b.bound.ctl.HandleLock(ev)
}

// HandleTerminal implements notify.TerminalHandler.
func (b *Binder) HandleTerminal(ev notify.TerminalEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bound == nil {
		return
	}
	b.bound.ctl.HandleTerminal(ev)
}
