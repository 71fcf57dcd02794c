package dio

import (
	"time"

	"github.com/gantrylab/catchpoint/internal/monitoring"
	"github.com/gantrylab/catchpoint/internal/timeutil"
)

// DefaultPollInterval is the gap between sensor polls. Gate transits last a
// few milliseconds, so polling much slower than this loses timing accuracy.
const DefaultPollInterval = time.Millisecond

// Token is a read-only view of the shutdown flag, checked on every poll so a
// wait never has to run out its timeout once shutdown is requested.
type Token interface {
	Requested() bool
}

// Monitor polls inputs until they trigger, time out, or are cancelled.
type Monitor struct {
	clock    timeutil.Clock
	interval time.Duration
}

// NewMonitor returns a Monitor polling on the given clock. A non-positive
// interval falls back to DefaultPollInterval.
func NewMonitor(clock timeutil.Clock, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{clock: clock, interval: interval}
}

// WaitForTrigger polls in until it reads true, timeout elapses, or cancel is
// set. A read error is logged and counts as a non-trigger for that poll; the
// retry budget is the timeout itself. The returned Reading carries the
// trigger timestamp on success.
func (m *Monitor) WaitForTrigger(name string, in Input, timeout time.Duration, cancel Token) Reading {
	start := m.clock.Now()
	for {
		if cancel != nil && cancel.Requested() {
			return Reading{Outcome: Cancelled}
		}
		if m.clock.Since(start) >= timeout {
			return Reading{Outcome: TimedOut}
		}

		triggered, err := in.Read()
		if err != nil {
			monitoring.Logf("sensor %s read failed, retrying: %v", name, err)
		} else if triggered {
			return Reading{Outcome: Triggered, At: m.clock.Now()}
		}

		m.clock.Sleep(m.interval)
	}
}
