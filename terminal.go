package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"vibe-insights/display"
	"vibe-insights/teams"
)

// meterCells is the width of a terminal bar.
const meterCells = 20

// meter draws percent as a bar with a ▼ marker at the fill edge.
func meter(percent float64) string {
	filled := int(math.Round(percent / 100 * meterCells))
	filled = min(max(filled, 0), meterCells)
	return strings.Repeat("█", filled) + "▼" + strings.Repeat("·", meterCells-filled)
}

// factorMeter draws a factor bar. Factors carry no marker.
func factorMeter(width float64) string {
	filled := int(math.Round(width / 100 * meterCells))
	filled = min(max(filled, 0), meterCells)
	return strings.Repeat("█", filled) + strings.Repeat("·", meterCells-filled)
}

func colorFuncs(useColors bool) (red, green, yellow func(...any) string) {
	if !useColors {
		return fmt.Sprint, fmt.Sprint, fmt.Sprint
	}
	return color.New(color.FgRed).SprintFunc(), color.New(color.FgGreen).SprintFunc(), color.New(color.FgYellow).SprintFunc()
}

func signed(v int, useColors bool) string {
	red, green, yellow := colorFuncs(useColors)
	switch {
	case v > 0:
		return green(fmt.Sprintf("+%d", v))
	case v < 0:
		return red(strconv.Itoa(v))
	default:
		return yellow("0")
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeDashboard prints the dashboard. KPI bars are laid out as many per row
// as the layout allows.
func writeDashboard(w io.Writer, d display.Dashboard, useColors bool) error {
	if _, err := fmt.Fprintf(w, "Insights dashboard: %s (layout %s)\n\n", d.Team, d.Layout.Mode); err != nil {
		return err
	}

	if err := renderTable(w,
		[]string{"Vibe score", "Needle", "Overall vibe", "Participation", "Monthly active users"},
		[][]string{{
			signed(d.Gauge.Score, useColors),
			fmtFloat(d.Gauge.Angle) + "°",
			d.OverallVibe,
			strconv.Itoa(d.Participation) + "%",
			strconv.Itoa(d.MonthlyActiveUsers) + "%",
		}},
	); err != nil {
		return err
	}

	perRow := d.Layout.KPIsPerRow()
	var headers []string
	for range perRow {
		headers = append(headers, "KPI", "Value", "-100 … 100")
	}
	var rows [][]string
	for i := 0; i < len(d.KPIs); i += perRow {
		var row []string
		for j := i; j < i+perRow; j++ {
			if j >= len(d.KPIs) {
				row = append(row, "", "", "")
				continue
			}
			k := d.KPIs[j]
			row = append(row, k.Label, signed(k.Value, useColors), meter(k.Percent))
		}
		rows = append(rows, row)
	}
	if _, err := fmt.Fprintln(w, "\nKey performance metrics"); err != nil {
		return err
	}
	if err := renderTable(w, headers, rows); err != nil {
		return err
	}

	var history [][]string
	for _, p := range d.History {
		history = append(history, []string{p.Month, signed(p.Score, useColors)})
	}
	if _, err := fmt.Fprintln(w, "\nScore history"); err != nil {
		return err
	}
	return renderTable(w, []string{"Month", "Score"}, history)
}

func writeFactors(w io.Writer, g display.FactorGrid, useColors bool) error {
	if _, err := fmt.Fprintf(w, "Factor analysis: %s\n\n", g.Team); err != nil {
		return err
	}
	_, _, yellow := colorFuncs(useColors)
	var rows [][]string
	for _, f := range g.Factors {
		rows = append(rows, []string{f.Name, yellow(strconv.Itoa(f.Value) + "%"), factorMeter(f.Width)})
	}
	return renderTable(w, []string{"Factor", "Value", "0 … 100"}, rows)
}

func writeTeams(w io.Writer, names []teams.Team, def teams.Team) error {
	var rows [][]string
	for i, n := range names {
		mark := ""
		if n == def {
			mark = "default"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), string(n), mark})
	}
	return renderTable(w, []string{"#", "Team", ""}, rows)
}
