// Package cancel provides the process-wide cooperative shutdown token.
//
// The token is written from an asynchronous context (signal handler
// goroutine) and read at every point the sequencer may block, so it is a
// single atomic flag: set once, never reset. Requesting shutdown also fires
// an immediate best-effort emergency disable, independent of how quickly the
// sequencer observes the flag.
package cancel

import (
	"sync"
	"sync/atomic"

	"github.com/gantrylab/catchpoint/internal/monitoring"
)

// Controller is the shutdown token plus the emergency-disable hook.
type Controller struct {
	requested atomic.Bool
	once      sync.Once
	disable   func() error
}

// New returns a Controller that will invoke disable exactly once on the
// first shutdown request. The hook is the minimal capability the controller
// needs (typically motion.Set.DisableAll); it never holds actuator handles
// itself. A nil disable is allowed.
func New(disable func() error) *Controller {
	return &Controller{disable: disable}
}

// RequestShutdown sets the token and fires the emergency disable. Safe to
// call from any goroutine, concurrently with token reads and with actuator
// commands in flight; repeated calls are no-ops beyond the first.
func (c *Controller) RequestShutdown() {
	c.requested.Store(true)
	c.once.Do(func() {
		if c.disable == nil {
			return
		}
		if err := c.disable(); err != nil {
			monitoring.Logf("emergency disable: %v", err)
		}
	})
}

// Requested reports whether shutdown has been requested. Cheap and
// non-blocking; usable from any component.
func (c *Controller) Requested() bool {
	return c.requested.Load()
}
