package notify

import "slices"

// Keyboard is a concrete KeyboardSource that fans events out to the
// registered handlers in registration order. It is what the simulator
// and the tests drive; a real integration may implement KeyboardSource
// over whatever input subsystem it has.
type Keyboard struct {
	handlers []KeyHandler
}

var _ KeyboardSource = (*Keyboard)(nil)

func (k *Keyboard) RegisterKeyboard(h KeyHandler) {
	k.handlers = append(k.handlers, h)
}

func (k *Keyboard) UnregisterKeyboard(h KeyHandler) {
	k.handlers = slices.DeleteFunc(k.handlers, func(r KeyHandler) bool {
		return r == h
	})
}

// Key delivers one key event and reports whether any handler consumed
// it. Delivery stops at the first consumer, mirroring a notifier chain.
func (k *Keyboard) Key(ev KeyEvent) bool {
	for _, h := range k.handlers {
		if h.HandleKey(ev) {
			return true
		}
	}
	return false
}

// Lock delivers one lock-indicator toggle to every handler.
func (k *Keyboard) Lock(ev LockEvent) {
	for _, h := range k.handlers {
		h.HandleLock(ev)
	}
}

// Terminals is a concrete TerminalSource fanning terminal events out to
// the registered handlers.
type Terminals struct {
	handlers []TerminalHandler
}

var _ TerminalSource = (*Terminals)(nil)

func (t *Terminals) RegisterTerminal(h TerminalHandler) {
	t.handlers = append(t.handlers, h)
}

func (t *Terminals) UnregisterTerminal(h TerminalHandler) {
	t.handlers = slices.DeleteFunc(t.handlers, func(r TerminalHandler) bool {
		return r == h
	})
}

// Dispatch delivers one terminal event to every handler.
func (t *Terminals) Dispatch(ev TerminalEvent) {
	for _, h := range t.handlers {
		h.HandleTerminal(ev)
	}
}
