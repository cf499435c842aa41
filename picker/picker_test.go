package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"vibe-insights/teams"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInitialState(t *testing.T) {
	p := New()
	assert.Equal(t, Closed, p.State)
	assert.Equal(t, teams.EngineeringProduct, p.Selected)
}

func TestToggle(t *testing.T) {
	p := New()
	opened := p.Toggle()
	assert.Equal(t, Open, opened.State)
	assert.Equal(t, Closed, opened.Toggle().State)
	assert.Equal(t, Closed, p.State, "receiver must not change")
}

func TestSelect(t *testing.T) {
	p := New().Toggle().Select(teams.Sales)
	assert.Equal(t, Picker{State: Closed, Selected: teams.Sales}, p)

	ignored := New().Select(teams.Sales)
	assert.Equal(t, New(), ignored, "select while closed is ignored")
}

func TestClickOutside(t *testing.T) {
	p := New().Toggle().Select(teams.Marketing).Toggle()
	assert.Equal(t, Open, p.State)

	closed := p.ClickOutside()
	assert.Equal(t, Picker{State: Closed, Selected: teams.Marketing}, closed)
	assert.Equal(t, closed, closed.ClickOutside())
}

func TestSelectionRoundTrip(t *testing.T) {
	p := New().
		Toggle().Select(teams.Sales).
		Toggle().Select(teams.EngineeringProduct)
	assert.Equal(t, New(), p)
}

func TestParseState(t *testing.T) {
	assert.Equal(t, Open, ParseState("open"))
	assert.Equal(t, Closed, ParseState("closed"))
	assert.Equal(t, Closed, ParseState(""))
	assert.Equal(t, Closed, ParseState("OPEN"))
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "closed", Closed.String())
}
