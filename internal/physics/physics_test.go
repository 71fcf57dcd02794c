package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestSpeed(t *testing.T) {
	t.Parallel()

	t.Run("positive interval", func(t *testing.T) {
		t.Parallel()
		assert.True(t, scalar.EqualWithinAbs(Speed(0, 0.010, 0.1), 10, 1e-9))
		assert.True(t, scalar.EqualWithinAbs(Speed(1.5, 2.5, 0.1), 0.1, 1e-9))
		assert.True(t, scalar.EqualWithinAbs(Speed(0.002, 0.004, 0.2), 100, 1e-9))
	})

	t.Run("non-increasing timestamps yield zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, Speed(1.0, 1.0, 0.1))
		assert.Zero(t, Speed(2.0, 1.0, 0.1))
		assert.Zero(t, Speed(0, 0, 0.1))
	})
}

func TestLandingOffsetReference(t *testing.T) {
	t.Parallel()

	// Gate speed 10 m/s at 30 degrees, g=9.81, 0.23 m drop to the rail.
	// Worked by hand: vx=8.660254, vy=5, timeUp=0.509684, maxHeight=3.822630,
	// timeDown=0.908969, offset=12.28589.
	got := LandingOffset(10, 30, 9.81, 0.23)
	assert.True(t, scalar.EqualWithinAbs(got, 12.28589, 1e-4), "got %v", got)
}

func TestLandingOffsetDeterministic(t *testing.T) {
	t.Parallel()

	first := LandingOffset(3.7, 22.5, 9.81, 0.23)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, LandingOffset(3.7, 22.5, 9.81, 0.23))
	}
}

func TestLandingOffsetBoundaries(t *testing.T) {
	t.Parallel()

	t.Run("zero speed lands at origin", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, LandingOffset(0, 30, 9.81, 0.23))
	})

	t.Run("vertical launch has no horizontal travel", func(t *testing.T) {
		t.Parallel()
		got := LandingOffset(10, 90, 9.81, 0.23)
		assert.True(t, scalar.EqualWithinAbs(got, 0, 1e-9), "got %v", got)
	})

	t.Run("flat launch still falls the ramp height", func(t *testing.T) {
		t.Parallel()
		// No vertical velocity: time of flight is just the drop time.
		got := LandingOffset(2, 0, 9.81, 0.23)
		drop := 0.21655 // sqrt(2*0.23/9.81)
		assert.True(t, scalar.EqualWithinAbs(got, 2*drop, 1e-4), "got %v", got)
	})

	t.Run("faster launches land farther", func(t *testing.T) {
		t.Parallel()
		prev := 0.0
		for _, speed := range []float64{1, 2, 5, 10, 20} {
			got := LandingOffset(speed, 30, 9.81, 0.23)
			assert.Greater(t, got, prev, "speed %v", speed)
			prev = got
		}
	})
}
