package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-insights/display"
	"vibe-insights/teams"
)

func TestMeter(t *testing.T) {
	assert.Equal(t, "▼"+strings.Repeat("·", meterCells), meter(0))
	assert.Equal(t, strings.Repeat("█", meterCells)+"▼", meter(100))
	assert.Equal(t, strings.Repeat("█", 10)+"▼"+strings.Repeat("·", 10), meter(50))
	assert.Equal(t, meter(100), meter(250))
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("·", 15), factorMeter(25))
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+42", signed(42, false))
	assert.Equal(t, "-5", signed(-5, false))
	assert.Equal(t, "0", signed(0, false))
}

func lineWith(t *testing.T, out, needle string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	t.Fatalf("no line contains %q in:\n%s", needle, out)
	return ""
}

func TestWriteDashboard(t *testing.T) {
	catalog, err := teams.Builtin()
	require.NoError(t, err)
	m, err := catalog.Lookup(t.Context(), teams.Sales)
	require.NoError(t, err)

	t.Run("wide", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDashboard(&buf, display.NewDashboard(m, 1280), false))
		out := buf.String()

		assert.Contains(t, out, "Insights dashboard: Sales (layout TWO_COLUMN)")
		assert.Contains(t, out, "+42")
		assert.Contains(t, out, "37.8°")
		assert.Contains(t, out, "Upbeat")
		assert.Contains(t, out, "91%")
		// Wellbeing 30 sits at 65% of the bar.
		assert.Contains(t, out, strings.Repeat("█", 13)+"▼")
		assert.Contains(t, lineWith(t, out, "Wellbeing"), "Recognition")
		assert.Contains(t, lineWith(t, out, "Oct"), "+42")
	})

	t.Run("narrow", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDashboard(&buf, display.NewDashboard(m, 390), false))
		out := buf.String()

		assert.Contains(t, out, "(layout SINGLE_COLUMN)")
		assert.NotContains(t, lineWith(t, out, "Wellbeing"), "Recognition")
	})
}

// Scale headers carry their own punctuation and must print as written.
func TestRenderTableKeepsHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, []string{"KPI", "Value", "-100 … 100"}, [][]string{{"Wellbeing", "+30", meter(65)}}))
	out := buf.String()

	assert.Contains(t, out, "-100 … 100")
	assert.Contains(t, out, "Value")
	assert.NotContains(t, out, "VALUE")
}

func TestWriteFactors(t *testing.T) {
	catalog, err := teams.Builtin()
	require.NoError(t, err)
	m, err := catalog.Lookup(t.Context(), teams.Marketing)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeFactors(&buf, display.NewFactorGrid(m), false))
	out := buf.String()

	assert.Contains(t, out, "Factor analysis: Marketing")
	assert.Contains(t, out, "0 … 100")
	line := lineWith(t, out, "Autonomy")
	assert.Contains(t, line, "81%")
	assert.Contains(t, line, strings.Repeat("█", 16)+strings.Repeat("·", 4))
}

func TestWriteTeams(t *testing.T) {
	var buf bytes.Buffer
	names := []teams.Team{teams.EngineeringProduct, teams.Sales}
	require.NoError(t, writeTeams(&buf, names, teams.DefaultTeam))

	assert.Contains(t, lineWith(t, buf.String(), "Engineering Product"), "default")
	assert.NotContains(t, lineWith(t, buf.String(), "Sales"), "default")
}
