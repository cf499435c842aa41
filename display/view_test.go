package display

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-insights/teams"
)

func TestLayoutModeBoundary(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{0, SingleColumn},
		{375, SingleColumn},
		{800, SingleColumn},
		{801, TwoColumn},
		{1440, TwoColumn},
		{-20, SingleColumn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LayoutModeFor(tt.width), "width %d", tt.width)
	}
}

func TestLayoutFor(t *testing.T) {
	wide := LayoutFor(1024)
	assert.Equal(t, TwoColumn, wide.Mode)
	assert.Equal(t, 48.0, wide.KPIWidthPercent)
	assert.True(t, wide.SideBySide)
	assert.Equal(t, 2*wide.GaugeWeight, wide.HistoryWeight)
	assert.Equal(t, 2, wide.KPIsPerRow())

	narrow := LayoutFor(390)
	assert.Equal(t, SingleColumn, narrow.Mode)
	assert.Equal(t, 100.0, narrow.KPIWidthPercent)
	assert.False(t, narrow.SideBySide)
	assert.Equal(t, 1, narrow.KPIsPerRow())
}

func TestSingleColumnMaxWidth(t *testing.T) {
	assert.Equal(t, SingleColumn, LayoutModeFor(SingleColumnMaxWidth))
	assert.Equal(t, TwoColumn, LayoutModeFor(SingleColumnMaxWidth+1))

	_, hi := SingleColumn.WidthRange()
	assert.Equal(t, SingleColumnMaxWidth, hi)
}

func TestWidthRange(t *testing.T) {
	lo, hi := SingleColumn.WidthRange()
	assert.Equal(t, SingleColumn, LayoutModeFor(lo))
	assert.Equal(t, SingleColumn, LayoutModeFor(hi))
	assert.Equal(t, TwoColumn, LayoutModeFor(hi+1))

	lo, hi = TwoColumn.WidthRange()
	assert.Equal(t, -1, hi)
	assert.Equal(t, TwoColumn, LayoutModeFor(lo))
	assert.Equal(t, SingleColumn, LayoutModeFor(lo-1))
}

func TestLayoutModeJSON(t *testing.T) {
	b, err := json.Marshal(LayoutFor(801))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"mode":"TWO_COLUMN"`)
	assert.Equal(t, "LayoutMode(7)", LayoutMode(7).String())

	var back Layout
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, LayoutFor(801), back)

	var mode LayoutMode
	assert.Error(t, mode.UnmarshalText([]byte("THREE_COLUMN")))
}

func TestNewDashboard(t *testing.T) {
	m := teams.TeamMetrics{
		Team:               teams.Sales,
		VibeScore:          140,
		OverallVibe:        "Upbeat",
		Participation:      120,
		MonthlyActiveUsers: -3,
		KPIs: []teams.KPI{
			{Label: "Wellbeing", Value: -100, Color: "#f00"},
			{Label: "Recognition", Value: 0, Color: "#0f0"},
			{Label: "Workload", Value: 300, Color: "#00f"},
		},
		History: []teams.HistoryPoint{
			{Month: "Feb", Score: -20},
			{Month: "Apr", Score: 20},
			{Month: "Jun", Score: -40},
			{Month: "Aug", Score: 40},
			{Month: "Oct", Score: 0},
		},
	}

	d := NewDashboard(m, 1200)

	assert.Equal(t, teams.Sales, d.Team)
	assert.Equal(t, Gauge{Score: 100, Angle: 90}, d.Gauge)
	assert.Equal(t, 100, d.Participation)
	assert.Equal(t, 0, d.MonthlyActiveUsers)
	assert.Equal(t, TwoColumn, d.Layout.Mode)

	require.Len(t, d.KPIs, 3)
	assert.Equal(t, []string{"Wellbeing", "Recognition", "Workload"},
		[]string{d.KPIs[0].Label, d.KPIs[1].Label, d.KPIs[2].Label})
	assert.Equal(t, 0.0, d.KPIs[0].Percent)
	assert.Equal(t, 50.0, d.KPIs[1].Percent)
	assert.Equal(t, 100, d.KPIs[2].Value)
	assert.Equal(t, 100.0, d.KPIs[2].Percent)

	wantLeft := []float64{10, 30, 50, 70, 90}
	wantTop := []float64{60, 40, 70, 30, 50}
	require.Len(t, d.History, 5)
	for i, dot := range d.History {
		assert.InDelta(t, wantLeft[i], dot.Left, 1e-9, "dot %d", i)
		assert.InDelta(t, wantTop[i], dot.Top, 1e-9, "dot %d", i)
	}
}

// A KPI's fill edge and marker must come from one number.
func TestKPIMarkerAlignsWithFill(t *testing.T) {
	for v := -120; v <= 120; v += 7 {
		bar := NewKPIBar(teams.KPI{Label: "k", Value: v})
		assert.Equal(t, MarkerPercent(v), bar.Percent)
	}
}

func TestNewFactorGrid(t *testing.T) {
	m := teams.TeamMetrics{
		Team: teams.Marketing,
		Factors: []teams.Factor{
			{Name: "Autonomy", Value: 72, Color: "#3b82f6"},
			{Name: "Growth", Value: 0, Color: "#10b981"},
			{Name: "Workload", Value: 130, Color: "#f59e0b"},
		},
	}
	g := NewFactorGrid(m)
	assert.Equal(t, teams.Marketing, g.Team)
	assert.Equal(t, []FactorBar{
		{Name: "Autonomy", Value: 72, Color: "#3b82f6", Width: 72},
		{Name: "Growth", Value: 0, Color: "#10b981", Width: 0},
		{Name: "Workload", Value: 100, Color: "#f59e0b", Width: 100},
	}, g.Factors)
}

func TestHistoryDotsEmpty(t *testing.T) {
	assert.Empty(t, HistoryDots(nil))
}
