package motion

import (
	"fmt"
	"sync"
)

// Command is one recorded controller call, kept by the Recorder for
// assertions in tests.
type Command struct {
	Op      string // "move", "enable", "disable", "setpos", "configure", "close"
	Axis    AxisID
	Profile Profile
	Pos     float64
}

// Recorder is an in-memory Controller that records every call. It is safe
// for concurrent use so tests can exercise the command/emergency-disable
// race. Failures are scriptable per operation name.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
	failOps  map[string]error
	closed   bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{failOps: make(map[string]error)}
}

// FailOn makes every subsequent call of the named op return err.
func (r *Recorder) FailOn(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failOps[op] = err
}

func (r *Recorder) record(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, c)
	if err, ok := r.failOps[c.Op]; ok {
		return err
	}
	return nil
}

// Move records an S-curve move.
func (r *Recorder) Move(axis AxisID, p Profile) error {
	return r.record(Command{Op: "move", Axis: axis, Profile: p, Pos: p.Target})
}

// SetEnabled records an amplifier state change.
func (r *Recorder) SetEnabled(axis AxisID, on bool) error {
	op := "enable"
	if !on {
		op = "disable"
	}
	return r.record(Command{Op: op, Axis: axis})
}

// SetCommandPosition records a command-position overwrite.
func (r *Recorder) SetCommandPosition(axis AxisID, pos float64) error {
	return r.record(Command{Op: "setpos", Axis: axis, Pos: pos})
}

// Configure records the one-time axis setup.
func (r *Recorder) Configure(axis AxisID, cfg AxisConfig) error {
	return r.record(Command{Op: "configure", Axis: axis})
}

// Close marks the controller released.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("controller already closed")
	}
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Commands returns a copy of everything recorded so far.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// CommandsFor returns the recorded calls for one axis.
func (r *Recorder) CommandsFor(axis AxisID) []Command {
	var out []Command
	for _, c := range r.Commands() {
		if c.Axis == axis {
			out = append(out, c)
		}
	}
	return out
}

// Moves returns just the recorded move targets for one axis, in order.
func (r *Recorder) Moves(axis AxisID) []float64 {
	var out []float64
	for _, c := range r.CommandsFor(axis) {
		if c.Op == "move" {
			out = append(out, c.Pos)
		}
	}
	return out
}
