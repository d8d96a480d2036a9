// Package control implements the two-mode input state machine driving
// the display.
//
// In Following mode the display mirrors the line buffer live and the
// controller keeps its hands off the keyboard except for the trigger
// key. In Browsing mode the same keys pan the viewport over the terminal
// grid, the line buffer keeps accumulating silently underneath, and
// every key the controller recognizes is swallowed.
package control

import (
	"time"

	"github.com/hnimtadd/braillio/braille"
	"github.com/hnimtadd/braillio/braille/frame"
	"github.com/hnimtadd/braillio/braille/key"
	"github.com/hnimtadd/braillio/braille/line"
	"github.com/hnimtadd/braillio/braille/view"
	"github.com/hnimtadd/braillio/device"
	"github.com/hnimtadd/braillio/logger"
	"github.com/hnimtadd/braillio/notify"
)

// Mode is the state of the input state machine.
type Mode uint8

const (
	// Following mirrors live terminal output onto the display.
	Following Mode = iota

	// Browsing mirrors the operator-panned viewport instead.
	Browsing
)

func (m Mode) String() string {
	if m == Browsing {
		return "browsing"
	}
	return "following"
}

// Cue frequencies, in Hz.
const (
	BeepHigh = 880
	BeepMed  = 440
	BeepLow  = 220
)

// BeepDuration is the length of every cue.
const BeepDuration = 100 * time.Millisecond

// Beeper is the audible-feedback collaborator.
type Beeper interface {
	Beep(freq int, d time.Duration)
}

// noTerminal marks the last-terminal tracking as unset, forcing the next
// terminal update to resend the display line.
const noTerminal = -1

// Options configures a Controller.
type Options struct {
	// Device is the transport the encoder writes frames to.
	Device device.Device

	// Trigger is the key that flips between Following and Browsing.
	// Defaults to key.Insert.
	Trigger key.Key

	// Beeper receives the audible cues. Ignored unless Sound is set.
	Beeper Beeper

	// Sound gates every audible cue. Off by default.
	Sound bool

	Logger logger.Logger
}

// Controller owns the whole mutable state bundle: mode, line buffer,
// viewport, encoder and last-terminal tracking. It is not safe for
// concurrent use; the session binder serializes every handler entry.
type Controller struct {
	mode     Mode
	buf      *line.Buffer
	view     *view.View
	enc      *frame.Encoder
	lastTerm int

	trigger key.Key
	beeper  Beeper
	sound   bool
	logger  logger.Logger
}

var (
	_ notify.KeyHandler      = (*Controller)(nil)
	_ notify.TerminalHandler = (*Controller)(nil)
)

func NewController(opts Options) *Controller {
	trigger := opts.Trigger
	if trigger == key.None {
		trigger = key.Insert
	}
	log := opts.Logger
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Controller{
		mode:     Following,
		buf:      line.NewBuffer(),
		view:     &view.View{},
		enc:      frame.NewEncoder(opts.Device),
		lastTerm: noTerminal,
		trigger:  trigger,
		beeper:   opts.Beeper,
		sound:    opts.Sound,
		logger:   log,
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// View returns the viewport anchor, for rendering the browse window.
func (c *Controller) View() *view.View {
	return c.view
}

// Line returns the current display line.
func (c *Controller) Line() *braille.Line {
	return c.buf.Line()
}

// HandleKey dispatches one key event. Key releases are ignored. The
// return value reports whether the key was consumed; unconsumed keys
// fall through to the keyboard source's default action.
func (c *Controller) HandleKey(ev notify.KeyEvent) bool {
	if !ev.Down {
		return false
	}
	if c.mode == Following {
		return c.followKey(ev)
	}
	return c.browseKey(ev)
}

func (c *Controller) followKey(ev notify.KeyEvent) bool {
	if ev.Key != c.trigger {
		// Never intercept normal typing while following.
		return false
	}
	c.mode = Browsing
	c.logger.Debug("mode switch", "mode", c.mode)
	c.beep(BeepHigh)
	c.view.FollowCursor(ev.Terminal)
	refreshTerminal(ev.Terminal)
	return true
}

func (c *Controller) browseKey(ev notify.KeyEvent) bool {
	t := ev.Terminal
	handled := true

	switch ev.Key {
	case c.trigger:
		c.beep(BeepMed)
		c.mode = Following
		c.logger.Debug("mode switch", "mode", c.mode)
		// Forget the last surface so the next terminal update resends,
		// and show the line accumulated while browsing right away.
		c.lastTerm = noTerminal
		c.enc.Send(c.buf.Line())
	case key.Left:
		c.cue(c.view.PanLeft(t))
	case key.Right:
		c.cue(c.view.PanRight(t))
	case key.Down:
		c.cue(c.view.PanDown(t))
	case key.Up:
		c.cue(c.view.PanUp(t))
	case key.Home:
		c.view.FollowCursor(t)
	case key.PageUp:
		c.view.JumpTop()
	case key.PageDown:
		c.view.JumpBottom(t)
	default:
		handled = false
	}

	// Even unhandled keys refresh: the default key action may have
	// moved the cursor or scrolled the surface.
	refreshTerminal(t)
	return handled
}

// HandleLock emits the lock-indicator cues, independent of mode.
func (c *Controller) HandleLock(ev notify.LockEvent) {
	if ev.On {
		c.beep(BeepHigh)
	} else {
		c.beep(BeepMed)
	}
}

// HandleTerminal dispatches one terminal event.
func (c *Controller) HandleTerminal(ev notify.TerminalEvent) {
	switch ev.Kind {
	case notify.TerminalWrite:
		if !ev.Foreground {
			// Background output never reaches the display line.
			return
		}
		c.buf.OnChar(braille.CodePoint(ev.Char))
		if c.mode == Following {
			// The encoder deduplicates, so this is cheap even for
			// characters that did not change the line.
			c.enc.Send(c.buf.Line())
		} else {
			refreshTerminal(ev.Terminal)
		}

	case notify.TerminalUpdate:
		if c.mode != Following {
			refreshTerminal(ev.Terminal)
			return
		}
		if id := ev.Terminal.ID(); id != c.lastTerm {
			// Foreground switch: never mix two terminals' text.
			c.lastTerm = id
			c.buf.Reset()
			c.enc.Send(c.buf.Line())
		}
	}
}

func (c *Controller) cue(cue view.Cue) {
	switch cue {
	case view.CueWrap:
		c.beep(BeepHigh)
	case view.CueBlocked:
		c.beep(BeepLow)
	}
}

func (c *Controller) beep(freq int) {
	if !c.sound || c.beeper == nil {
		return
	}
	c.beeper.Beep(freq, BeepDuration)
}

func refreshTerminal(t braille.Terminal) {
	t.CursorMoved()
	t.Refresh()
}
