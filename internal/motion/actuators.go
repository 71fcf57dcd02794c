package motion

import (
	"errors"
	"fmt"

	"github.com/gantrylab/catchpoint/internal/monitoring"
	"github.com/gantrylab/catchpoint/internal/units"
)

// Actuator binds a role to its controller axis. The role tag travels with
// the handle so callers never infer behaviour from handle identity.
type Actuator struct {
	Role Role
	Axis AxisID
	ctrl Controller
}

// NewActuator binds role and axis to a controller.
func NewActuator(role Role, axis AxisID, ctrl Controller) Actuator {
	return Actuator{Role: role, Axis: axis, ctrl: ctrl}
}

// Move issues an S-curve move to target using the role's kinematic profile.
func (a Actuator) Move(target float64) error {
	if a.ctrl == nil {
		return fmt.Errorf("%s actuator has no controller", a.Role)
	}
	if err := a.ctrl.Move(a.Axis, ProfileFor(a.Role, target)); err != nil {
		return fmt.Errorf("%s move to %v: %w", a.Role, target, err)
	}
	return nil
}

// Enable switches the actuator's amplifier on or off.
func (a Actuator) Enable(on bool) error {
	if a.ctrl == nil {
		return fmt.Errorf("%s actuator has no controller", a.Role)
	}
	return a.ctrl.SetEnabled(a.Axis, on)
}

// Init applies the one-time axis bring-up: unit scaling, limit behaviour,
// amplifier on, command position zeroed.
func (a Actuator) Init() error {
	if a.ctrl == nil {
		return fmt.Errorf("%s actuator has no controller", a.Role)
	}
	cfg := AxisConfig{
		CountsPerUnit:        units.CountsPerUserUnit,
		ErrorLimitTrigger:    0.5,
		DisableOnErrorLimit:  false,
		LimitTriggerState:    1,
		LimitDurationSamples: 2,
	}
	if err := a.ctrl.Configure(a.Axis, cfg); err != nil {
		return fmt.Errorf("configure %s axis: %w", a.Role, err)
	}
	if err := a.ctrl.SetEnabled(a.Axis, true); err != nil {
		return fmt.Errorf("enable %s axis: %w", a.Role, err)
	}
	if err := a.ctrl.SetCommandPosition(a.Axis, 0); err != nil {
		return fmt.Errorf("zero %s axis: %w", a.Role, err)
	}
	return nil
}

// Set groups the rig's three actuators. The sequencer owns the set and hands
// the cancellation controller only the DisableAll capability.
type Set struct {
	Ramp    Actuator
	Door    Actuator
	Catcher Actuator
}

// NewSet builds the standard rig actuator set on one controller using the
// conventional axis assignment (0 ramp, 1 door, 2 catcher).
func NewSet(ctrl Controller) *Set {
	return &Set{
		Ramp:    NewActuator(RoleRamp, 0, ctrl),
		Door:    NewActuator(RoleDoor, 1, ctrl),
		Catcher: NewActuator(RoleCatcher, 2, ctrl),
	}
}

// All returns the actuators in axis order.
func (s *Set) All() []Actuator {
	return []Actuator{s.Ramp, s.Door, s.Catcher}
}

// InitAll brings up every axis; the first failure aborts since a partially
// initialized rig must not run.
func (s *Set) InitAll() error {
	for _, a := range s.All() {
		if err := a.Init(); err != nil {
			return err
		}
	}
	return nil
}

// DisableAll drops every amplifier, best effort: a failure on one actuator
// never stops the attempt on the others. Errors are logged and aggregated.
func (s *Set) DisableAll() error {
	var errs []error
	for _, a := range s.All() {
		if err := a.Enable(false); err != nil {
			monitoring.Logf("disable %s actuator: %v", a.Role, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
