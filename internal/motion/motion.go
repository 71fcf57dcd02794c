// Package motion defines the narrow interface the sequencing core uses to
// command the rig's three actuators, plus the per-role kinematic profiles.
//
// The motion controller itself (network bring-up, amplifier faults, S-curve
// execution) lives behind the Controller interface; this package only shapes
// commands and routes them to the right axis.
package motion

import "fmt"

// AxisID identifies an axis slot on the motion controller.
type AxisID int

// Role identifies which mechanism an actuator drives. Dispatch on motion
// constants is by Role, never by comparing handle identity.
type Role int

const (
	// RoleRamp tilts the launch ramp to the commanded angle.
	RoleRamp Role = iota
	// RoleDoor gates the object at the top of the ramp.
	RoleDoor
	// RoleCatcher slides the catch platform along the landing rail.
	RoleCatcher
)

func (r Role) String() string {
	switch r {
	case RoleRamp:
		return "ramp"
	case RoleDoor:
		return "door"
	case RoleCatcher:
		return "catcher"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Profile is one kinematic command: a target position plus the velocity,
// acceleration, deceleration, and jerk shaping to reach it. Profiles are
// immutable once built; a fresh one is derived per command because the
// target varies each call.
type Profile struct {
	Target      float64
	Velocity    float64
	Accel       float64
	Decel       float64
	JerkPercent float64
}

// AxisConfig carries the one-time axis setup issued at startup, mirroring
// the drive bridge's init sequence: unit scaling, soft error limit handling,
// and hardware limit behaviour.
type AxisConfig struct {
	CountsPerUnit        int64
	ErrorLimitTrigger    float64
	DisableOnErrorLimit  bool
	LimitTriggerState    int
	LimitDurationSamples int
}

// Controller is the motion-controller abstraction the core commands axes
// through. Implementations must be safe for concurrent use: an emergency
// disable may race a command in flight on the same axis, and last writer
// wins on the amplifier-enable state.
type Controller interface {
	// Move starts an S-curve move on the axis described by the profile.
	Move(axis AxisID, p Profile) error

	// SetEnabled switches the axis amplifier on or off.
	SetEnabled(axis AxisID, on bool) error

	// SetCommandPosition overwrites the axis command position, used to zero
	// axes during bring-up.
	SetCommandPosition(axis AxisID, pos float64) error

	// Configure applies the one-time axis setup.
	Configure(axis AxisID, cfg AxisConfig) error

	// Close releases the controller resource.
	Close() error
}
