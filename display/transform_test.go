package display

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAngleDegreesAnchors(t *testing.T) {
	tests := []struct {
		score int
		want  float64
	}{
		{-100, -90},
		{-50, -45},
		{0, 0},
		{50, 45},
		{100, 90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AngleDegrees(tt.score), "score %d", tt.score)
	}
}

func TestAngleDegreesMonotonic(t *testing.T) {
	prev := AngleDegrees(MinScore)
	for s := MinScore + 1; s <= MaxScore; s++ {
		got := AngleDegrees(s)
		assert.GreaterOrEqual(t, got, prev, "score %d", s)
		prev = got
	}
}

func TestAngleDegreesClampsOutOfRange(t *testing.T) {
	for _, s := range []int{-101, -1000, math.MinInt, 101, 1000, math.MaxInt} {
		got := AngleDegrees(s)
		assert.False(t, math.IsNaN(got), "score %d", s)
		assert.GreaterOrEqual(t, got, MinAngle, "score %d", s)
		assert.LessOrEqual(t, got, MaxAngle, "score %d", s)
	}
	assert.Equal(t, -90.0, AngleDegrees(-250))
	assert.Equal(t, 90.0, AngleDegrees(250))
}

func TestMarkerPercent(t *testing.T) {
	assert.Equal(t, 0.0, MarkerPercent(-100))
	assert.Equal(t, 50.0, MarkerPercent(0))
	assert.Equal(t, 100.0, MarkerPercent(100))
	assert.InDelta(t, 25.0, MarkerPercent(-50), 1e-9)
	assert.InDelta(t, 75.0, MarkerPercent(50), 1e-9)

	assert.Equal(t, 0.0, MarkerPercent(-300))
	assert.Equal(t, 100.0, MarkerPercent(300))
}

func TestFactorWidthPercentIsIdentity(t *testing.T) {
	for f := MinPercent; f <= MaxPercent; f++ {
		assert.Equal(t, float64(f), FactorWidthPercent(f))
	}
	assert.Equal(t, 0.0, FactorWidthPercent(-5))
	assert.Equal(t, 100.0, FactorWidthPercent(140))
}

// The two bar transforms agree only where the signed and unsigned domains
// happen to coincide; everywhere else they must differ.
func TestMarkerAndFactorAreNotInterchangeable(t *testing.T) {
	assert.NotEqual(t, MarkerPercent(0), FactorWidthPercent(0))
	assert.NotEqual(t, MarkerPercent(40), FactorWidthPercent(40))
	assert.Equal(t, MarkerPercent(100), FactorWidthPercent(100))
}

func TestTransformsArePure(t *testing.T) {
	for v := -150; v <= 150; v++ {
		assert.Equal(t, math.Float64bits(AngleDegrees(v)), math.Float64bits(AngleDegrees(v)))
		assert.Equal(t, math.Float64bits(MarkerPercent(v)), math.Float64bits(MarkerPercent(v)))
		assert.Equal(t, math.Float64bits(FactorWidthPercent(v)), math.Float64bits(FactorWidthPercent(v)))
		assert.Equal(t, LayoutModeFor(v*10), LayoutModeFor(v*10))
	}
}
