package display

import "vibe-insights/teams"

// Gauge is the vibe score needle.
type Gauge struct {
	Score int     `json:"score"`
	Angle float64 `json:"angle_degrees"`
}

// KPIBar is a signed KPI with the position shared by its fill and marker.
type KPIBar struct {
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Color   string  `json:"color"`
	Percent float64 `json:"percent"`
}

// FactorBar is one card of the factor analysis grid.
type FactorBar struct {
	Name  string  `json:"name"`
	Value int     `json:"value"`
	Color string  `json:"color"`
	Width float64 `json:"width_percent"`
}

// HistoryDot is a point on the score history chart, positioned in percent
// of the plot area from its left and top edges.
type HistoryDot struct {
	Month string  `json:"month"`
	Score int     `json:"score"`
	Left  float64 `json:"left_percent"`
	Top   float64 `json:"top_percent"`
}

// Dashboard is everything the dashboard screen needs for one team.
type Dashboard struct {
	Team               teams.Team   `json:"team"`
	Gauge              Gauge        `json:"gauge"`
	OverallVibe        string       `json:"overall_vibe"`
	Participation      int          `json:"participation"`
	MonthlyActiveUsers int          `json:"monthly_active_users"`
	KPIs               []KPIBar     `json:"kpis"`
	History            []HistoryDot `json:"history"`
	Layout             Layout       `json:"layout"`
}

// FactorGrid is the factor analysis screen for one team.
type FactorGrid struct {
	Team    teams.Team  `json:"team"`
	Factors []FactorBar `json:"factors"`
}

// NewGauge positions the needle for score.
func NewGauge(score int) Gauge {
	return Gauge{Score: ClampScore(score), Angle: AngleDegrees(score)}
}

// NewKPIBar derives the fill and marker position for k.
func NewKPIBar(k teams.KPI) KPIBar {
	return KPIBar{Label: k.Label, Value: ClampScore(k.Value), Color: k.Color, Percent: MarkerPercent(k.Value)}
}

// NewFactorBar derives the fill width for f.
func NewFactorBar(f teams.Factor) FactorBar {
	return FactorBar{Name: f.Name, Value: ClampPercent(f.Value), Color: f.Color, Width: FactorWidthPercent(f.Value)}
}

// HistoryDots spreads points evenly across the chart; point i of n sits at
// (i+0.5)/n of the width. Higher scores sit closer to the top.
func HistoryDots(points []teams.HistoryPoint) []HistoryDot {
	dots := make([]HistoryDot, len(points))
	n := float64(len(points))
	for i, p := range points {
		dots[i] = HistoryDot{
			Month: p.Month,
			Score: ClampScore(p.Score),
			Left:  (float64(i) + 0.5) / n * 100,
			Top:   100 - MarkerPercent(p.Score),
		}
	}
	return dots
}

// NewDashboard builds the dashboard view of m for a viewport width.
func NewDashboard(m teams.TeamMetrics, viewportWidthPx int) Dashboard {
	kpis := make([]KPIBar, len(m.KPIs))
	for i, k := range m.KPIs {
		kpis[i] = NewKPIBar(k)
	}
	return Dashboard{
		Team:               m.Team,
		Gauge:              NewGauge(m.VibeScore),
		OverallVibe:        m.OverallVibe,
		Participation:      ClampPercent(m.Participation),
		MonthlyActiveUsers: ClampPercent(m.MonthlyActiveUsers),
		KPIs:               kpis,
		History:            HistoryDots(m.History),
		Layout:             LayoutFor(viewportWidthPx),
	}
}

// NewFactorGrid builds the factor analysis view of m.
func NewFactorGrid(m teams.TeamMetrics) FactorGrid {
	factors := make([]FactorBar, len(m.Factors))
	for i, f := range m.Factors {
		factors[i] = NewFactorBar(f)
	}
	return FactorGrid{Team: m.Team, Factors: factors}
}
