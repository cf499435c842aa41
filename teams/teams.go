// Package teams holds the per-team engagement dataset behind the insights
// dashboard and the lookup contract every render shell reads it through.
package teams

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Team is a key from the closed set of organisational team names.
type Team string

// Teams known to the built-in dataset.
const (
	EngineeringProduct Team = "Engineering Product"
	Sales              Team = "Sales"
	Marketing          Team = "Marketing"
	CustomerSuccess    Team = "Customer Success"
	Operations         Team = "Operations"
)

// DefaultTeam is selected on first render and whenever a key does not resolve.
const DefaultTeam = EngineeringProduct

// ErrUnknownTeam is returned by a Source for keys outside its team set.
var ErrUnknownTeam = errors.New("unknown team")

// KPI is a signed metric in [-100, 100] drawn as a bar with a marker.
type KPI struct {
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
	Color string `json:"color" yaml:"color"`
}

// Factor is an unsigned percentage in [0, 100].
type Factor struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
	Color string `json:"color" yaml:"color"`
}

// HistoryPoint is one month of the score history chart.
type HistoryPoint struct {
	Month string `json:"month" yaml:"month"`
	Score int    `json:"score" yaml:"score"`
}

// TeamMetrics is the full record for one team. Slice order is display order.
type TeamMetrics struct {
	Team               Team           `json:"team" yaml:"team"`
	VibeScore          int            `json:"vibe_score" yaml:"vibe_score"`
	OverallVibe        string         `json:"overall_vibe" yaml:"overall_vibe"`
	Participation      int            `json:"participation" yaml:"participation"`
	MonthlyActiveUsers int            `json:"monthly_active_users" yaml:"monthly_active_users"`
	KPIs               []KPI          `json:"kpis" yaml:"kpis"`
	Factors            []Factor       `json:"factors" yaml:"factors"`
	History            []HistoryPoint `json:"history" yaml:"history"`
}

// Clone returns a copy that shares no backing arrays with m.
func (m TeamMetrics) Clone() TeamMetrics {
	m.KPIs = slices.Clone(m.KPIs)
	m.Factors = slices.Clone(m.Factors)
	m.History = slices.Clone(m.History)
	return m
}

// Source resolves team keys to metrics. The built-in Catalog and the SQLite
// store both satisfy it; a networked store would too.
type Source interface {
	// Teams lists the closed team set in display order.
	Teams(ctx context.Context) ([]Team, error)
	// Lookup returns the record for team, or an error wrapping ErrUnknownTeam.
	Lookup(ctx context.Context, team Team) (TeamMetrics, error)
}

// Resolve looks up key and falls back to DefaultTeam when the key is not
// part of the team set. Only storage failures are returned as errors.
func Resolve(ctx context.Context, src Source, key string) (TeamMetrics, error) {
	m, err := src.Lookup(ctx, Team(key))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrUnknownTeam) {
		return TeamMetrics{}, fmt.Errorf("lookup %q: %w", key, err)
	}
	m, err = src.Lookup(ctx, DefaultTeam)
	if err != nil {
		return TeamMetrics{}, fmt.Errorf("lookup default team: %w", err)
	}
	return m, nil
}
