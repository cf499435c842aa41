package teams

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBuiltinCatalog(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	again, err := Builtin()
	require.NoError(t, err)
	assert.Same(t, c, again, "builtin catalog should be loaded once")

	names, err := c.Teams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Team{EngineeringProduct, Sales, Marketing, CustomerSuccess, Operations}, names)

	for _, name := range names {
		rec, err := c.Lookup(context.Background(), name)
		require.NoError(t, err, name)
		assert.Equal(t, name, rec.Team)
		assert.NotEmpty(t, rec.KPIs, name)
		assert.NotEmpty(t, rec.Factors, name)
		assert.NotEmpty(t, rec.History, name)
	}
}

func TestLookupUnknownTeam(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	_, err = c.Lookup(context.Background(), "NoSuchTeam")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTeam))
}

func TestResolveFallsBackToDefault(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	ctx := context.Background()

	want, err := c.Lookup(ctx, DefaultTeam)
	require.NoError(t, err)

	for _, key := range []string{"NoSuchTeam", "", "engineering product"} {
		got, err := Resolve(ctx, c, key)
		require.NoError(t, err, key)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", key, diff)
		}
	}
}

type failingSource struct{}

func (failingSource) Teams(context.Context) ([]Team, error) { return nil, errors.New("boom") }
func (failingSource) Lookup(context.Context, Team) (TeamMetrics, error) {
	return TeamMetrics{}, errors.New("boom")
}

func TestResolvePropagatesStorageErrors(t *testing.T) {
	_, err := Resolve(context.Background(), failingSource{}, "Sales")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnknownTeam))
}

func TestSwitchingTeamsDoesNotLeak(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	ctx := context.Background()

	first, err := Resolve(ctx, c, string(EngineeringProduct))
	require.NoError(t, err)

	// Scribble over what callers got back; the catalogue must not notice.
	first.KPIs[0].Value = 99
	first.Factors[0].Name = "changed"
	first.History = append(first.History[:0], HistoryPoint{Month: "x"})

	_, err = Resolve(ctx, c, string(Sales))
	require.NoError(t, err)

	again, err := Resolve(ctx, c, string(EngineeringProduct))
	require.NoError(t, err)

	pristine, err := Load(builtinYAML)
	require.NoError(t, err)
	want, err := pristine.Lookup(ctx, EngineeringProduct)
	require.NoError(t, err)
	if diff := cmp.Diff(want, again); diff != "" {
		t.Errorf("record changed between selections (-want +got):\n%s", diff)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no teams",
			yaml: "teams: []\n",
			want: "no teams",
		},
		{
			name: "blank name",
			yaml: "teams:\n  - team: \"  \"\n",
			want: "empty team name",
		},
		{
			name: "duplicate",
			yaml: "teams:\n  - team: Engineering Product\n  - team: Engineering Product\n",
			want: "duplicate team",
		},
		{
			name: "missing default",
			yaml: "teams:\n  - team: Sales\n",
			want: "missing default team",
		},
		{
			name: "unknown field",
			yaml: "teams:\n  - team: Engineering Product\n    mood: great\n",
			want: "decode catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRecordsAreCopies(t *testing.T) {
	c, err := Load([]byte("teams:\n  - team: Engineering Product\n    kpis:\n      - { label: A, value: 1, color: red }\n"))
	require.NoError(t, err)

	recs := c.Records()
	require.Len(t, recs, 1)
	recs[0].KPIs[0].Value = 50

	rec, err := c.Lookup(context.Background(), EngineeringProduct)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.KPIs[0].Value)
}
