package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-insights/teams"
)

type countingSource struct {
	inner   teams.Source
	lookups int
	lists   int
}

func (c *countingSource) Teams(ctx context.Context) ([]teams.Team, error) {
	c.lists++
	return c.inner.Teams(ctx)
}

func (c *countingSource) Lookup(ctx context.Context, team teams.Team) (teams.TeamMetrics, error) {
	c.lookups++
	return c.inner.Lookup(ctx, team)
}

func TestCachedSource(t *testing.T) {
	ctx := context.Background()
	catalog, err := teams.Builtin()
	require.NoError(t, err)

	inner := &countingSource{inner: catalog}
	c := newCachedSource(inner, time.Minute)
	now := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	first, err := c.Lookup(ctx, teams.Sales)
	require.NoError(t, err)
	first.KPIs[0].Value = -99

	second, err := c.Lookup(ctx, teams.Sales)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.lookups)
	assert.NotEqual(t, -99, second.KPIs[0].Value, "cached record must not be shared with callers")

	now = now.Add(2 * time.Minute)
	_, err = c.Lookup(ctx, teams.Sales)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.lookups, "expired entry is refetched")

	for range 3 {
		_, err = c.Teams(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.lists)
}

func TestCachedSourceDoesNotCacheMisses(t *testing.T) {
	ctx := context.Background()
	catalog, err := teams.Builtin()
	require.NoError(t, err)

	inner := &countingSource{inner: catalog}
	c := newCachedSource(inner, time.Minute)

	for range 2 {
		_, err := c.Lookup(ctx, "NoSuchTeam")
		assert.True(t, errors.Is(err, teams.ErrUnknownTeam))
	}
	assert.Equal(t, 2, inner.lookups)
}

// blockingSource parks lookups of one team until release is closed.
type blockingSource struct {
	teams.Source
	team    teams.Team
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSource) Lookup(ctx context.Context, team teams.Team) (teams.TeamMetrics, error) {
	if team == b.team {
		close(b.entered)
		<-b.release
	}
	return b.Source.Lookup(ctx, team)
}

func TestCachedSourceServesHitsDuringSlowFetch(t *testing.T) {
	ctx := context.Background()
	catalog, err := teams.Builtin()
	require.NoError(t, err)

	src := &blockingSource{
		Source:  catalog,
		team:    teams.Marketing,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := newCachedSource(src, time.Minute)
	_, err = c.Lookup(ctx, teams.Sales)
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() {
		_, err := c.Lookup(ctx, teams.Marketing)
		slow <- err
	}()
	<-src.entered

	hit := make(chan error, 1)
	go func() {
		_, err := c.Lookup(ctx, teams.Sales)
		if err == nil {
			_, err = c.Teams(ctx)
		}
		hit <- err
	}()
	select {
	case err := <-hit:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("cached lookup waited on an unrelated fetch")
	}

	close(src.release)
	assert.NoError(t, <-slow)
}
