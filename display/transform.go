// Package display converts team metrics into the numbers the render shells
// paint: needle angles, bar widths, marker offsets and layout choices. Every
// shell calls these functions instead of repeating the arithmetic, so web,
// mobile and terminal output stay identical.
package display

// Domains of the values carried by a team record.
const (
	MinScore   = -100
	MaxScore   = 100
	MinPercent = 0
	MaxPercent = 100

	// MinAngle and MaxAngle bound the gauge needle, in degrees from vertical.
	MinAngle = -90.0
	MaxAngle = 90.0
)

// ClampScore limits v to [MinScore, MaxScore].
func ClampScore(v int) int {
	return min(max(v, MinScore), MaxScore)
}

// ClampPercent limits v to [MinPercent, MaxPercent].
func ClampPercent(v int) int {
	return min(max(v, MinPercent), MaxPercent)
}

// AngleDegrees maps a vibe score onto the gauge: -100 is -90°, 0 is upright
// and 100 is +90°. Scores outside the domain pin the needle to the edge.
func AngleDegrees(score int) float64 {
	s := ClampScore(score)
	raw := (float64(s-MinScore)/float64(MaxScore-MinScore))*(MaxAngle-MinAngle) + MinAngle
	return min(max(raw, MinAngle), MaxAngle)
}

// MarkerPercent maps a signed KPI value onto [0, 100]. The same result is used
// for the bar fill width and the marker's left offset so the marker tip
// always sits on the fill edge.
func MarkerPercent(value int) float64 {
	v := ClampScore(value)
	return float64(v-MinScore) / float64(MaxScore-MinScore) * 100
}

// FactorWidthPercent is the fill width for a factor bar. Factors are already
// percentages, so this is the clamped identity; it deliberately does not
// share code with MarkerPercent, whose domain is signed.
func FactorWidthPercent(value int) float64 {
	return float64(ClampPercent(value))
}
