package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"vibe-insights/teams"
)

// sqlStore serves team metrics from an in-memory SQLite database seeded once
// at startup. Nothing is written after seeding and nothing touches disk.
type sqlStore struct {
	db *sql.DB
}

var sqlSchema = []string{
	`CREATE TABLE teams (
	name TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	vibe_score INTEGER NOT NULL,
	overall_vibe TEXT NOT NULL,
	participation INTEGER NOT NULL,
	monthly_active_users INTEGER NOT NULL
)`,
	`CREATE TABLE kpis (
	team TEXT NOT NULL REFERENCES teams(name),
	position INTEGER NOT NULL,
	label TEXT NOT NULL,
	value INTEGER NOT NULL,
	color TEXT NOT NULL,
	PRIMARY KEY (team, position)
)`,
	`CREATE TABLE factors (
	team TEXT NOT NULL REFERENCES teams(name),
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	value INTEGER NOT NULL,
	color TEXT NOT NULL,
	PRIMARY KEY (team, position)
)`,
	`CREATE TABLE score_history (
	team TEXT NOT NULL REFERENCES teams(name),
	position INTEGER NOT NULL,
	month TEXT NOT NULL,
	score INTEGER NOT NULL,
	PRIMARY KEY (team, position)
)`,
}

func openSQLStore(ctx context.Context, records []teams.TeamMetrics) (*sqlStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &sqlStore{db: db}
	if err := s.seed(ctx, records); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *sqlStore) seed(ctx context.Context, records []teams.TeamMetrics) (err error) {
	for _, stmt := range sqlSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, m := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO teams (name, position, vibe_score, overall_vibe, participation, monthly_active_users) VALUES (?, ?, ?, ?, ?, ?)`,
			string(m.Team), i, m.VibeScore, m.OverallVibe, m.Participation, m.MonthlyActiveUsers); err != nil {
			return fmt.Errorf("seed team %q: %w", m.Team, err)
		}
		for j, k := range m.KPIs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO kpis (team, position, label, value, color) VALUES (?, ?, ?, ?, ?)`,
				string(m.Team), j, k.Label, k.Value, k.Color); err != nil {
				return fmt.Errorf("seed kpi %q/%q: %w", m.Team, k.Label, err)
			}
		}
		for j, f := range m.Factors {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO factors (team, position, name, value, color) VALUES (?, ?, ?, ?, ?)`,
				string(m.Team), j, f.Name, f.Value, f.Color); err != nil {
				return fmt.Errorf("seed factor %q/%q: %w", m.Team, f.Name, err)
			}
		}
		for j, p := range m.History {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO score_history (team, position, month, score) VALUES (?, ?, ?, ?)`,
				string(m.Team), j, p.Month, p.Score); err != nil {
				return fmt.Errorf("seed history %q/%q: %w", m.Team, p.Month, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

// Teams implements teams.Source.
func (s *sqlStore) Teams(ctx context.Context) ([]teams.Team, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM teams ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var out []teams.Team
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, teams.Team(name))
	}
	return out, rows.Err()
}

// Lookup implements teams.Source.
func (s *sqlStore) Lookup(ctx context.Context, team teams.Team) (teams.TeamMetrics, error) {
	m := teams.TeamMetrics{Team: team}
	err := s.db.QueryRowContext(ctx,
		`SELECT vibe_score, overall_vibe, participation, monthly_active_users FROM teams WHERE name = ?`, string(team)).
		Scan(&m.VibeScore, &m.OverallVibe, &m.Participation, &m.MonthlyActiveUsers)
	if errors.Is(err, sql.ErrNoRows) {
		return teams.TeamMetrics{}, fmt.Errorf("%w: %q", teams.ErrUnknownTeam, team)
	}
	if err != nil {
		return teams.TeamMetrics{}, fmt.Errorf("query team %q: %w", team, err)
	}

	if err := s.each(ctx, `SELECT label, value, color FROM kpis WHERE team = ? ORDER BY position`, team, func(rows *sql.Rows) error {
		var k teams.KPI
		if err := rows.Scan(&k.Label, &k.Value, &k.Color); err != nil {
			return err
		}
		m.KPIs = append(m.KPIs, k)
		return nil
	}); err != nil {
		return teams.TeamMetrics{}, fmt.Errorf("query kpis %q: %w", team, err)
	}

	if err := s.each(ctx, `SELECT name, value, color FROM factors WHERE team = ? ORDER BY position`, team, func(rows *sql.Rows) error {
		var f teams.Factor
		if err := rows.Scan(&f.Name, &f.Value, &f.Color); err != nil {
			return err
		}
		m.Factors = append(m.Factors, f)
		return nil
	}); err != nil {
		return teams.TeamMetrics{}, fmt.Errorf("query factors %q: %w", team, err)
	}

	if err := s.each(ctx, `SELECT month, score FROM score_history WHERE team = ? ORDER BY position`, team, func(rows *sql.Rows) error {
		var p teams.HistoryPoint
		if err := rows.Scan(&p.Month, &p.Score); err != nil {
			return err
		}
		m.History = append(m.History, p)
		return nil
	}); err != nil {
		return teams.TeamMetrics{}, fmt.Errorf("query history %q: %w", team, err)
	}
	return m, nil
}

func (s *sqlStore) each(ctx context.Context, query string, team teams.Team, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query, string(team))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
