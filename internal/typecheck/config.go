package typecheck

import "sync/atomic"

var disabled atomic.Bool

// SetEnabled switches checking on or off for every subsequent checked call
// in the process. Checking is on by default. While off, checked calls
// forward their arguments unchanged and return the raw result.
//
// Intended to be set once at startup or toggled explicitly by tests and
// tools; it is never read from the environment.
func SetEnabled(enabled bool) {
	disabled.Store(!enabled)
}

// Enabled reports whether checked calls validate and annotate.
func Enabled() bool {
	return !disabled.Load()
}
