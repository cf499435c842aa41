package main

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-insights/teams"
)

func TestSQLStoreMatchesCatalog(t *testing.T) {
	ctx := context.Background()
	catalog, err := teams.Builtin()
	require.NoError(t, err)

	store, err := openSQLStore(ctx, catalog.Records())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	wantNames, err := catalog.Teams(ctx)
	require.NoError(t, err)
	gotNames, err := store.Teams(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantNames, gotNames)

	for _, name := range wantNames {
		want, err := catalog.Lookup(ctx, name)
		require.NoError(t, err)
		got, err := store.Lookup(ctx, name)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Lookup(%q) mismatch (-catalog +sqlite):\n%s", name, diff)
		}
	}
}

func TestSQLStoreUnknownTeam(t *testing.T) {
	ctx := context.Background()
	catalog, err := teams.Builtin()
	require.NoError(t, err)
	store, err := openSQLStore(ctx, catalog.Records())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.Lookup(ctx, "NoSuchTeam")
	assert.True(t, errors.Is(err, teams.ErrUnknownTeam))

	m, err := teams.Resolve(ctx, store, "NoSuchTeam")
	require.NoError(t, err)
	assert.Equal(t, teams.DefaultTeam, m.Team)
}

func TestSQLStoreRejectsDuplicateSeed(t *testing.T) {
	recs := []teams.TeamMetrics{{Team: teams.Sales}, {Team: teams.Sales}}
	_, err := openSQLStore(context.Background(), recs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed team")
}
