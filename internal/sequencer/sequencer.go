// Package sequencer drives a full launch-and-catch cycle: tilt the ramp,
// gate the object through the door, time it across the two gate sensors,
// and slide the catcher to the computed landing point before it arrives.
package sequencer

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gantrylab/catchpoint/internal/cancel"
	"github.com/gantrylab/catchpoint/internal/config"
	"github.com/gantrylab/catchpoint/internal/dio"
	"github.com/gantrylab/catchpoint/internal/monitoring"
	"github.com/gantrylab/catchpoint/internal/motion"
	"github.com/gantrylab/catchpoint/internal/operator"
	"github.com/gantrylab/catchpoint/internal/physics"
	"github.com/gantrylab/catchpoint/internal/timeutil"
	"github.com/gantrylab/catchpoint/internal/units"
)

// State is one step of the launch cycle.
type State int

const (
	StateAwaitAngle State = iota
	StatePositionRamp
	StateWaitSensor1
	StateOpenDoor
	StateWaitSensor2
	StateCloseDoor
	StateComputePhysics
	StatePositionCatcher
	StateCooldown
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateAwaitAngle:
		return "await-angle"
	case StatePositionRamp:
		return "position-ramp"
	case StateWaitSensor1:
		return "wait-sensor-1"
	case StateOpenDoor:
		return "open-door"
	case StateWaitSensor2:
		return "wait-sensor-2"
	case StateCloseDoor:
		return "close-door"
	case StateComputePhysics:
		return "compute-physics"
	case StatePositionCatcher:
		return "position-catcher"
	case StateCooldown:
		return "cooldown"
	case StateShutdown:
		return "shutdown"
	default:
		return "invalid"
	}
}

// Cycle accumulates one pass through the state machine. Trigger times are
// seconds since the cycle's ramp command; LandingOffset is the clamped value
// actually sent to the catcher. Cycles are logged and discarded, never
// persisted.
type Cycle struct {
	ID            uuid.UUID
	RampAngleDeg  float64
	T1            float64
	T2            float64
	Speed         float64
	LandingOffset float64

	start time.Time
}

// Params wires a Sequencer. All fields are required except Config, which
// defaults to the compiled rig constants.
type Params struct {
	Controller motion.Controller
	Actuators  *motion.Set
	Monitor    *dio.Monitor
	Gate1      dio.Input
	Gate2      dio.Input
	Angles     operator.AngleSource
	Cancel     *cancel.Controller
	Clock      timeutil.Clock
	Config     *config.RigConfig
}

// Sequencer runs launch cycles until the operator enters the shutdown
// sentinel, the input source closes, or cancellation fires. One logical
// thread: no two actuator commands or sensor waits are ever in flight at
// once from here.
type Sequencer struct {
	ctrl      motion.Controller
	actuators *motion.Set
	monitor   *dio.Monitor
	gate1     dio.Input
	gate2     dio.Input
	angles    operator.AngleSource
	cancel    *cancel.Controller
	clock     timeutil.Clock
	cfg       *config.RigConfig
}

// New builds a Sequencer from Params.
func New(p Params) *Sequencer {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Empty()
	}
	return &Sequencer{
		ctrl:      p.Controller,
		actuators: p.Actuators,
		monitor:   p.Monitor,
		gate1:     p.Gate1,
		gate2:     p.Gate2,
		angles:    p.Angles,
		cancel:    p.Cancel,
		clock:     p.Clock,
		cfg:       cfg,
	}
}

// Run drives the state machine until it reaches StateShutdown. It always
// disables the actuators and releases the controller on the way out.
func (s *Sequencer) Run() error {
	defer s.teardown()

	state := StateAwaitAngle
	var cyc *Cycle

	for {
		// Cancellation is observed at every transition boundary. The
		// emergency-disable path has already dropped the amplifiers by the
		// time we get here; this just stops issuing new commands.
		if state != StateShutdown && s.cancel.Requested() {
			monitoring.Logf("shutdown requested, abandoning %s", state)
			state = StateShutdown
		}

		switch state {
		case StateAwaitAngle:
			angle, err := s.angles.NextAngle()
			if err != nil {
				if !errors.Is(err, operator.ErrClosed) {
					monitoring.Logf("operator input failed: %v", err)
				}
				state = StateShutdown
				continue
			}
			if angle == operator.ShutdownAngle {
				monitoring.Logf("operator requested shutdown")
				state = StateShutdown
				continue
			}
			cyc = &Cycle{ID: uuid.New(), RampAngleDeg: angle}
			monitoring.Logf("cycle %s: ramp angle %.2f deg", cyc.ID, angle)
			state = StatePositionRamp

		case StatePositionRamp:
			cyc.start = s.clock.Now()
			s.command(cyc, s.actuators.Ramp, cyc.RampAngleDeg)
			s.command(cyc, s.actuators.Door, s.cfg.GetDoorClosedPosition())
			state = StateWaitSensor1

		case StateWaitSensor1:
			next, ok := s.await(cyc, "gate1", s.gate1, func(at time.Time) {
				cyc.T1 = at.Sub(cyc.start).Seconds()
			})
			if !ok {
				state = next
				continue
			}
			state = StateOpenDoor

		case StateOpenDoor:
			// The open position tracks the ramp angle so the door clears the
			// rolling object at steep tilts.
			s.command(cyc, s.actuators.Door, 100-cyc.RampAngleDeg)
			state = StateWaitSensor2

		case StateWaitSensor2:
			next, ok := s.await(cyc, "gate2", s.gate2, func(at time.Time) {
				cyc.T2 = at.Sub(cyc.start).Seconds()
			})
			if !ok {
				state = next
				continue
			}
			state = StateCloseDoor

		case StateCloseDoor:
			s.command(cyc, s.actuators.Door, s.cfg.GetDoorClosedPosition())
			state = StateComputePhysics

		case StateComputePhysics:
			cyc.Speed = physics.Speed(cyc.T1, cyc.T2, s.cfg.GetSensorDistance())
			raw := physics.LandingOffset(
				cyc.Speed, cyc.RampAngleDeg, s.cfg.GetGravity(), s.cfg.GetRampHeight())
			cyc.LandingOffset = clamp(raw, 0, s.cfg.GetMaxCatcherPosition())

			displayUnits := s.cfg.GetSpeedUnits()
			monitoring.Logf("cycle %s: t1=%.4fs t2=%.4fs speed=%.3f %s landing=%.4fm (raw %.4fm)",
				cyc.ID, cyc.T1, cyc.T2,
				units.ConvertSpeed(cyc.Speed, displayUnits), displayUnits,
				cyc.LandingOffset, raw)
			state = StatePositionCatcher

		case StatePositionCatcher:
			s.command(cyc, s.actuators.Catcher, cyc.LandingOffset)
			state = StateCooldown

		case StateCooldown:
			// Let the mechanism settle before prompting for the next run.
			s.clock.Sleep(s.cfg.GetCooldown())
			cyc = nil
			state = StateAwaitAngle

		case StateShutdown:
			return nil
		}
	}
}

// await runs one bounded sensor wait. On a trigger it invokes record and
// returns ok=true. Otherwise it returns the state to move to: a timeout
// abandons the cycle and goes back to the operator prompt (never a silent
// re-wait); cancellation heads straight for shutdown.
func (s *Sequencer) await(cyc *Cycle, name string, in dio.Input, record func(time.Time)) (State, bool) {
	r := s.monitor.WaitForTrigger(name, in, s.cfg.GetSensorTimeout(), s.cancel)
	switch r.Outcome {
	case dio.Triggered:
		record(r.At)
		return 0, true
	case dio.TimedOut:
		monitoring.Logf("cycle %s: %s %s after %v, abandoning cycle",
			cyc.ID, name, r.Outcome, s.cfg.GetSensorTimeout())
		return StateAwaitAngle, false
	default:
		return StateShutdown, false
	}
}

// command issues one actuator move. Failures are logged and the cycle
// continues best effort; nothing downstream assumes the move completed.
func (s *Sequencer) command(cyc *Cycle, a motion.Actuator, target float64) {
	if err := a.Move(target); err != nil {
		monitoring.Logf("cycle %s: %v", cyc.ID, err)
	}
}

// teardown is the terminal state's work: amplifiers off, controller
// released.
func (s *Sequencer) teardown() {
	s.actuators.DisableAll()
	if s.ctrl != nil {
		if err := s.ctrl.Close(); err != nil {
			monitoring.Logf("release controller: %v", err)
		}
	}
	monitoring.Logf("sequencer stopped")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
