package templates

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-insights/action"
	"vibe-insights/display"
	"vibe-insights/teams"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestGaugeRotation(t *testing.T) {
	out := render(t, Gauge(display.NewGauge(-50)))
	assert.Contains(t, out, `data-angle="-45"`)
	assert.Contains(t, out, `rotate(-45deg)`)
	assert.Contains(t, out, `>-50</div>`)
}

func TestProgressBarMarkerMatchesFill(t *testing.T) {
	out := render(t, ProgressBar(display.NewKPIBar(teams.KPI{Label: "Wellbeing <3", Value: 0, Color: "#f87171"})))
	assert.Contains(t, out, `style="width: 50%;background-color:#f87171;"`)
	assert.Contains(t, out, `left: 50%`)
	assert.Contains(t, out, "Wellbeing &lt;3")
	assert.NotContains(t, out, "Wellbeing <3")
}

func TestFactorCard(t *testing.T) {
	out := render(t, FactorCard(display.NewFactorBar(teams.Factor{Name: "Autonomy", Value: 72, Color: "#3b82f6"})))
	assert.Contains(t, out, `width: 72%`)
	assert.Contains(t, out, `>72%</div>`)
}

func TestFactorCardRejectsUnsafeColor(t *testing.T) {
	out := render(t, FactorCard(display.NewFactorBar(teams.Factor{Name: "Autonomy", Value: 10, Color: "red;background:url(x)"})))
	assert.NotContains(t, out, "url(x)")
	assert.Contains(t, out, "zTemplUnsafeCSSPropertyValue")
}

func TestNavMarksActiveLink(t *testing.T) {
	out := render(t, Nav([]NavLink{{Label: "Dashboard", Href: "/", Active: true}, {Label: "Factors", Href: "/factors"}}))
	assert.Contains(t, out, `<a href="/" class="font-medium transition-colors text-blue-600">Dashboard</a>`)
	assert.Contains(t, out, `class="font-medium transition-colors text-gray-700 hover:text-blue-600">Factors</a>`)
}

func TestTeamPicker(t *testing.T) {
	closed := render(t, TeamPicker(PickerData{Selected: "Sales", ToggleHref: "/?picker=open&team=Sales"}))
	assert.Contains(t, closed, `href="/?picker=open&amp;team=Sales"`)
	assert.NotContains(t, closed, "fixed inset-0")

	open := render(t, TeamPicker(PickerData{
		Selected:  "Sales",
		Open:      true,
		CloseHref: "/?team=Sales",
		Options:   []TeamOption{{Name: "Sales", Href: "/?team=Sales", Selected: true}, {Name: "Marketing", Href: "/?team=Marketing"}},
	}))
	assert.Contains(t, open, "fixed inset-0")
	assert.Contains(t, open, "Marketing")
}

func TestDashboardPageLayout(t *testing.T) {
	m := teams.TeamMetrics{
		Team:      teams.Sales,
		VibeScore: 42,
		KPIs:      []teams.KPI{{Label: "Wellbeing", Value: 30}},
	}
	wide := render(t, DashboardPage(DashboardPageData{
		Page: PageData{Title: "Insights", Layout: display.LayoutFor(1200)},
		View: display.NewDashboard(m, 1200),
	}))
	assert.Contains(t, wide, `data-layout="TWO_COLUMN"`)
	assert.Contains(t, wide, `data-width-min="801" data-width-max="-1"`)
	assert.Contains(t, wide, "flex-row")
	assert.Contains(t, wide, "flex-[2]")
	assert.Contains(t, wide, `style="width: 48%;"`)
	assert.NotContains(t, wide, "Give shoutout")

	narrow := render(t, DashboardPage(DashboardPageData{
		Page: PageData{Title: "Insights", Layout: display.LayoutFor(400)},
		View: display.NewDashboard(m, 400),
	}))
	assert.Contains(t, narrow, `data-layout="SINGLE_COLUMN"`)
	assert.Contains(t, narrow, "flex-col")
	assert.Contains(t, narrow, `style="width: 100%;"`)
}

func TestTakeActionModal(t *testing.T) {
	f := action.NewForm().WithMedia("poll")
	f.Impact = `"quoted" & <b>bold</b>`
	out := render(t, TakeActionModal(ModalData{
		Visible:     true,
		Form:        f,
		Tabs:        []TabLink{{Label: "Vibe", Href: "/a", Active: true}, {Label: "Connect", Href: "/b"}},
		SubmitURL:   "/take-action",
		SubmitLabel: f.SubmitLabel(),
	}))
	assert.Contains(t, out, `action="/take-action"`)
	assert.Contains(t, out, `name="media" value="poll"`)
	assert.Contains(t, out, "Create poll")
	assert.Contains(t, out, "&#34;quoted&#34; &amp; &lt;b&gt;bold&lt;/b&gt;")

	assert.Empty(t, render(t, TakeActionModal(ModalData{})))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderStopsOnWriteError(t *testing.T) {
	err := FactorAnalysisPage(FactorPageData{}).Render(context.Background(), failingWriter{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "closed"))
}
