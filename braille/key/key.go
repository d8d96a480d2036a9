// Package key defines the input key and lock-indicator codes consumed by
// the mode controller. The set is deliberately small: only the keys the
// controller dispatches on get a name, everything else arrives as Other.
package key

// Key represents a parsed input key.
type Key uint16

// Key constants - designed for expansion
const (
	None Key = iota
	Rune     // Printable character, not dispatched on

	// Navigation
	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Insert
	Delete

	// Anything the controller has no use for
	Other
)

func (k Key) String() string {
	switch k {
	case None:
		return "none"
	case Rune:
		return "rune"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Home:
		return "home"
	case End:
		return "end"
	case PageUp:
		return "pageup"
	case PageDown:
		return "pagedown"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "other"
	}
}

// Lock identifies a keyboard lock indicator.
type Lock uint8

const (
	LockCaps Lock = iota
	LockNum
	LockScroll
)

func (l Lock) String() string {
	switch l {
	case LockCaps:
		return "caps"
	case LockNum:
		return "num"
	case LockScroll:
		return "scroll"
	default:
		return "unknown"
	}
}
