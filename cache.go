package main

import (
	"context"
	"slices"
	"sync"
	"time"

	"vibe-insights/teams"
)

type cacheEntry struct {
	metrics teams.TeamMetrics
	time    time.Time
}

// cachedSource keeps lookups from a slower Source for ttl. Records never
// change, so the cache only saves round trips.
type cachedSource struct {
	src teams.Source
	ttl time.Duration
	now func() time.Time

	mu          sync.Mutex
	entries     map[teams.Team]cacheEntry
	names       []teams.Team
	namesLoaded time.Time
}

func newCachedSource(src teams.Source, ttl time.Duration) *cachedSource {
	return &cachedSource{
		src:     src,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[teams.Team]cacheEntry),
	}
}

func (c *cachedSource) Teams(ctx context.Context) ([]teams.Team, error) {
	c.mu.Lock()
	if c.names != nil && c.now().Sub(c.namesLoaded) < c.ttl {
		names := slices.Clone(c.names)
		c.mu.Unlock()
		return names, nil
	}
	c.mu.Unlock()

	// The source is called unlocked; concurrent misses may both fetch.
	names, err := c.src.Teams(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.names = slices.Clone(names)
	c.namesLoaded = c.now()
	c.mu.Unlock()
	return names, nil
}

// Lookup does not cache failures, so unknown teams always reach the source.
func (c *cachedSource) Lookup(ctx context.Context, team teams.Team) (teams.TeamMetrics, error) {
	c.mu.Lock()
	if e, ok := c.entries[team]; ok && c.now().Sub(e.time) < c.ttl {
		m := e.metrics.Clone()
		c.mu.Unlock()
		return m, nil
	}
	c.mu.Unlock()

	m, err := c.src.Lookup(ctx, team)
	if err != nil {
		return teams.TeamMetrics{}, err
	}

	c.mu.Lock()
	c.entries[team] = cacheEntry{metrics: m.Clone(), time: c.now()}
	c.mu.Unlock()
	return m, nil
}
