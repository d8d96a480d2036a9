package utils

// Assert panics when an internal invariant is violated. The display
// core's state transitions are small and total; a failed assertion here
// is a programming error, not a runtime condition to handle.
func Assert(condition bool, message ...string) {
	if condition {
		return
	}
	if len(message) == 1 {
		panic("braillio: " + message[0])
	}
	panic("braillio: failed assertion")
}
