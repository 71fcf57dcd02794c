// Package dio provides the digital-input abstraction and the timing monitor
// that turns a gate sensor's boolean state into an event timestamp.
package dio

import "time"

// Input is one boolean hardware input. Reads are fallible: electrical noise
// or a bus hiccup surfaces as an error, which the monitor treats as a
// non-trigger for that poll.
type Input interface {
	Read() (bool, error)
}

// Outcome states why a wait ended.
type Outcome int

const (
	// Triggered means the input went true within the timeout.
	Triggered Outcome = iota
	// TimedOut means the timeout elapsed with no trigger. Terminal for the
	// wait: the caller decides whether to re-issue it, never this package.
	TimedOut
	// Cancelled means shutdown was requested mid-wait.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Triggered:
		return "triggered"
	case TimedOut:
		return "timed out"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Reading is the result of one wait. At is only meaningful when the outcome
// is Triggered; a zero At with TimedOut or Cancelled is the "no timestamp"
// case, distinct from a legitimate non-trigger mid-poll.
type Reading struct {
	Outcome Outcome
	At      time.Time
}
