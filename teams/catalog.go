package teams

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed teams.yaml
var builtinYAML []byte

// Catalog is an immutable in-memory dataset loaded once from YAML.
type Catalog struct {
	order   []Team
	records map[Team]TeamMetrics
}

type catalogFile struct {
	Teams []TeamMetrics `yaml:"teams"`
}

// Load parses a YAML catalogue. The team set must be non-empty, names must
// be unique and non-blank, and DefaultTeam must be present so that Resolve
// is total.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(file.Teams) == 0 {
		return nil, errors.New("catalog has no teams")
	}

	c := &Catalog{records: make(map[Team]TeamMetrics, len(file.Teams))}
	for i, rec := range file.Teams {
		if strings.TrimSpace(string(rec.Team)) == "" {
			return nil, fmt.Errorf("catalog entry %d: empty team name", i)
		}
		if _, dup := c.records[rec.Team]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate team %q", i, rec.Team)
		}
		c.order = append(c.order, rec.Team)
		c.records[rec.Team] = rec.Clone()
	}
	if _, ok := c.records[DefaultTeam]; !ok {
		return nil, fmt.Errorf("catalog is missing default team %q", DefaultTeam)
	}
	return c, nil
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	return Load(builtinYAML)
})

// Builtin returns the embedded dataset. It is parsed on first use and shared
// for the lifetime of the process.
func Builtin() (*Catalog, error) {
	return builtin()
}

// Teams implements Source.
func (c *Catalog) Teams(context.Context) ([]Team, error) {
	return slices.Clone(c.order), nil
}

// Lookup implements Source.
func (c *Catalog) Lookup(_ context.Context, team Team) (TeamMetrics, error) {
	rec, ok := c.records[team]
	if !ok {
		return TeamMetrics{}, fmt.Errorf("%w: %q", ErrUnknownTeam, team)
	}
	return rec.Clone(), nil
}

// Records returns every record in display order.
func (c *Catalog) Records() []TeamMetrics {
	out := make([]TeamMetrics, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.records[t].Clone())
	}
	return out
}
