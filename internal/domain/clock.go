package domain

import "github.com/jonboulle/clockwork"

// clock is the package-level time source behind alert timestamps and advisory
// dates. Production code uses the real clock; tests inject a fake one.
var clock = clockwork.NewRealClock()

// SetClock swaps the package time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
