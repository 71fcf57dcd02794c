package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestAngleRoundTrip(t *testing.T) {
	t.Parallel()

	assert.True(t, scalar.EqualWithinAbs(DegToRad(180), math.Pi, 1e-12))
	assert.True(t, scalar.EqualWithinAbs(RadToDeg(math.Pi/2), 90, 1e-12))

	for _, deg := range []float64{0, 12.5, 30, 45, 100, 359.9} {
		assert.True(t, scalar.EqualWithinAbs(RadToDeg(DegToRad(deg)), deg, 1e-9),
			"round trip for %v degrees", deg)
	}
}

func TestUserUnitScaling(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(CountsPerUserUnit), UserUnitsToCounts(1))
	assert.Equal(t, int64(0), UserUnitsToCounts(0))
	assert.Equal(t, int64(-CountsPerUserUnit/2), UserUnitsToCounts(-0.5))

	assert.True(t, scalar.EqualWithinAbs(CountsToUserUnits(CountsPerUserUnit*3), 3, 1e-12))
}

func TestConvertSpeed(t *testing.T) {
	t.Parallel()

	assert.True(t, scalar.EqualWithinAbs(ConvertSpeed(10, MPS), 10, 1e-12))
	assert.True(t, scalar.EqualWithinAbs(ConvertSpeed(10, KMPH), 36, 1e-12))
	assert.True(t, scalar.EqualWithinAbs(ConvertSpeed(10, MPH), 22.369362920544, 1e-9))
	assert.True(t, scalar.EqualWithinAbs(ConvertSpeed(10, "furlongs"), 10, 1e-12),
		"unknown units fall back to m/s")
}
