// Package notify carries the two event streams the display core reacts
// to: keyboard events and terminal-write events. Events are typed
// variants dispatched with an explicit switch in the consumer, rather
// than opaque integer codes.
package notify

import (
	"github.com/hnimtadd/braillio/braille"
	"github.com/hnimtadd/braillio/braille/key"
)

// KeyEvent is one key transition on the keyboard source. Key-up events
// are delivered too; consumers that only care about presses check Down.
type KeyEvent struct {
	Key  key.Key
	Down bool

	// Terminal is the surface that currently has the keyboard focus.
	Terminal braille.Terminal
}

// LockEvent reports a lock-indicator toggle (caps/num/scroll).
type LockEvent struct {
	Lock key.Lock
	On   bool
}

// TerminalEventKind discriminates the terminal event variants.
type TerminalEventKind uint8

const (
	// TerminalWrite is one character written to a terminal surface.
	TerminalWrite TerminalEventKind = iota

	// TerminalUpdate signals that the foreground surface changed or
	// requested a redraw.
	TerminalUpdate
)

// TerminalEvent is one notification from the terminal-write source.
type TerminalEvent struct {
	Kind TerminalEventKind

	// Char is the written character. Valid for TerminalWrite only.
	Char byte

	// Terminal is the originating surface.
	Terminal braille.Terminal

	// Foreground reports whether the originating surface is the
	// foreground one. Valid for TerminalWrite only; updates always
	// concern the foreground surface.
	Foreground bool
}

// KeyHandler consumes keyboard events. HandleKey reports whether the
// event was consumed; the source uses that to decide whether to also run
// its own default action for the key.
type KeyHandler interface {
	HandleKey(ev KeyEvent) bool
	HandleLock(ev LockEvent)
}

// TerminalHandler consumes terminal events.
type TerminalHandler interface {
	HandleTerminal(ev TerminalEvent)
}

// KeyboardSource is the external keyboard event source the session
// binder attaches to.
type KeyboardSource interface {
	RegisterKeyboard(h KeyHandler)
	UnregisterKeyboard(h KeyHandler)
}

// TerminalSource is the external terminal-write event source.
type TerminalSource interface {
	RegisterTerminal(h TerminalHandler)
	UnregisterTerminal(h TerminalHandler)
}
