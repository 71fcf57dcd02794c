// Package units provides shared unit conversions for angles, drive
// positions, and display speeds.
package units

import "math"

// CountsPerUserUnit is the drive bridge encoder scaling: the number of raw
// encoder counts that make up one user unit on an axis.
const CountsPerUserUnit = 67108864

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// UserUnitsToCounts converts an axis position in user units to raw encoder
// counts, rounded to the nearest count.
func UserUnitsToCounts(units float64) int64 {
	return int64(math.Round(units * CountsPerUserUnit))
}

// CountsToUserUnits converts raw encoder counts to axis user units.
func CountsToUserUnits(counts int64) float64 {
	return float64(counts) / CountsPerUserUnit
}
