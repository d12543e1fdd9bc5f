package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the time source for frame ticks and timestamps.
// clockwork's fake clock satisfies it in tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) clockwork.Ticker
}

// New returns a Clock backed by the system clock
func New() Clock {
	return clockwork.NewRealClock()
}
