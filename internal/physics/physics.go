// Package physics computes launch kinematics from gate-sensor timestamps.
//
// All functions are pure: they never clamp to mechanical travel limits and
// never touch hardware, so callers own the mapping onto the physical rig.
package physics

import (
	"math"

	"github.com/gantrylab/catchpoint/internal/units"
)

// Speed returns the object's speed through the gate in m/s given the two
// sensor trigger times (seconds) and the distance between the sensors
// (metres). A non-increasing time pair yields 0 rather than a nonsense or
// infinite speed.
func Speed(t1, t2, sensorDistance float64) float64 {
	if t2 <= t1 {
		return 0
	}
	return sensorDistance / (t2 - t1)
}

// LandingOffset returns the horizontal distance from the ramp exit at which
// the object lands, treating the ramp exit as the origin. rampHeight is the
// vertical drop from the ramp line down to the catcher rail. Air resistance
// is ignored.
func LandingOffset(speed, launchAngleDeg, gravity, rampHeight float64) float64 {
	angle := units.DegToRad(launchAngleDeg)
	vx := speed * math.Cos(angle)
	vy := speed * math.Sin(angle)

	timeUp := vy / gravity
	maxHeight := vy*timeUp + 0.5*gravity*timeUp*timeUp
	timeDown := math.Sqrt(2 * (maxHeight + rampHeight) / gravity)

	return vx * (timeUp + timeDown)
}
