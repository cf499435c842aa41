package main

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"vibe-insights/action"
	"vibe-insights/display"
	"vibe-insights/picker"
	"vibe-insights/teams"
	"vibe-insights/templates"
)

const (
	dashboardPath      = "/"
	factorAnalysisPath = "/factor-analysis"
	takeActionPath     = "/take-action"

	viewportHintHeader = "Sec-CH-Viewport-Width"
)

// webState is the UI state the browser carries in the query string. Every
// link on a page is the URL of the state that clicking it leads to.
type webState struct {
	picker picker.Picker
	modal  bool
	form   action.Form
	// vw is the viewport width reported by the page script, 0 when unknown.
	vw int
}

func parseWebState(q url.Values, team teams.Team) webState {
	s := webState{
		picker: picker.Picker{State: picker.ParseState(q.Get("picker")), Selected: team},
		modal:  q.Get("action") == "open",
		form:   action.NewForm().WithTab(q.Get("tab")).WithMedia(q.Get("media")),
	}
	if w, err := strconv.Atoi(q.Get("vw")); err == nil && w > 0 {
		s.vw = w
	}
	return s
}

func (s webState) url(path string) string {
	q := url.Values{}
	q.Set("team", string(s.picker.Selected))
	if s.picker.State == picker.Open {
		q.Set("picker", picker.Open.String())
	}
	if s.modal {
		q.Set("action", "open")
		q.Set("tab", string(s.form.Tab))
		q.Set("media", string(s.form.Media))
	}
	if s.vw > 0 {
		q.Set("vw", strconv.Itoa(s.vw))
	}
	return path + "?" + q.Encode()
}

// viewportWidth prefers the width reported by the page, then the client
// hint, then the configured default.
func viewportWidth(r *http.Request, param string, fallback int) int {
	for _, v := range []string{r.URL.Query().Get(param), r.Header.Get(viewportHintHeader)} {
		if w, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func (a *app) navLinks(active string, s webState) []templates.NavLink {
	s.modal = false
	s.picker = s.picker.ClickOutside()
	return []templates.NavLink{
		{Label: "Dashboard", Href: s.url(dashboardPath), Active: active == dashboardPath},
		{Label: "Factor analysis", Href: s.url(factorAnalysisPath), Active: active == factorAnalysisPath},
	}
}

func (a *app) pickerData(r *http.Request, path string, s webState) (templates.PickerData, error) {
	names, err := a.source.Teams(r.Context())
	if err != nil {
		return templates.PickerData{}, err
	}

	next := func(p picker.Picker) string {
		n := s
		n.picker = p
		return n.url(path)
	}
	data := templates.PickerData{
		Selected:   string(s.picker.Selected),
		Open:       s.picker.State == picker.Open,
		ToggleHref: next(s.picker.Toggle()),
		CloseHref:  next(s.picker.ClickOutside()),
	}
	for _, name := range names {
		data.Options = append(data.Options, templates.TeamOption{
			Name:     string(name),
			Href:     next(s.picker.Select(name)),
			Selected: name == s.picker.Selected,
		})
	}
	return data, nil
}

func (a *app) modalData(s webState) templates.ModalData {
	closed := s
	closed.modal = false

	m := templates.ModalData{
		Visible:     s.modal,
		Form:        s.form,
		CloseHref:   closed.url(dashboardPath),
		SubmitURL:   takeActionPath,
		SubmitLabel: s.form.SubmitLabel(),
		ReturnTo:    closed.url(dashboardPath),
	}
	for _, tab := range action.Tabs {
		n := s
		n.form = s.form.WithTab(string(tab))
		m.Tabs = append(m.Tabs, templates.TabLink{Label: string(tab), Href: n.url(dashboardPath), Active: tab == s.form.Tab})
	}
	for _, opt := range action.MediaOptions {
		n := s
		n.form = s.form.WithMedia(string(opt.ID))
		m.Media = append(m.Media, templates.MediaLink{Icon: opt.Icon, Label: opt.Label, Href: n.url(dashboardPath), Active: opt.ID == s.form.Media})
	}
	return m
}

func (a *app) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	metrics, err := teams.Resolve(r.Context(), a.source, r.URL.Query().Get("team"))
	if err != nil {
		a.logger.Error("resolve team", zap.Error(err))
		http.Error(w, "Could not load team metrics", http.StatusInternalServerError)
		return
	}

	s := parseWebState(r.URL.Query(), metrics.Team)
	width := viewportWidth(r, "vw", a.cfg.DefaultWidth)
	view := display.NewDashboard(metrics, width)

	pickerData, err := a.pickerData(r, dashboardPath, s)
	if err != nil {
		a.logger.Error("list teams", zap.Error(err))
		http.Error(w, "Could not load teams", http.StatusInternalServerError)
		return
	}

	openModal := s
	openModal.modal = true
	openModal.form = action.NewForm()
	openModal.picker = s.picker.ClickOutside()

	data := templates.DashboardPageData{
		Page: templates.PageData{
			Title:  "Insights dashboard",
			Nav:    a.navLinks(dashboardPath, s),
			Layout: view.Layout,
		},
		Picker:     pickerData,
		View:       view,
		ActionHref: openModal.url(dashboardPath),
		Modal:      a.modalData(s),
	}
	a.metrics.observeRender("web", view.Layout.Mode)
	w.Header().Set("Accept-CH", viewportHintHeader)
	templ.Handler(templates.DashboardPage(data)).ServeHTTP(w, r)
}

func (a *app) factorAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	metrics, err := teams.Resolve(r.Context(), a.source, r.URL.Query().Get("team"))
	if err != nil {
		a.logger.Error("resolve team", zap.Error(err))
		http.Error(w, "Could not load team metrics", http.StatusInternalServerError)
		return
	}

	s := parseWebState(r.URL.Query(), metrics.Team)
	s.modal = false
	pickerData, err := a.pickerData(r, factorAnalysisPath, s)
	if err != nil {
		a.logger.Error("list teams", zap.Error(err))
		http.Error(w, "Could not load teams", http.StatusInternalServerError)
		return
	}

	data := templates.FactorPageData{
		Page: templates.PageData{
			Title:  "Factor analysis",
			Nav:    a.navLinks(factorAnalysisPath, s),
			Layout: display.LayoutFor(viewportWidth(r, "vw", a.cfg.DefaultWidth)),
		},
		Picker: pickerData,
		Grid:   display.NewFactorGrid(metrics),
	}
	w.Header().Set("Accept-CH", viewportHintHeader)
	templ.Handler(templates.FactorAnalysisPage(data)).ServeHTTP(w, r)
}

func (a *app) takeActionHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	a.actions.Submit(action.Form{
		Tab:           action.Tab(r.PostFormValue("tab")),
		Media:         action.Media(r.PostFormValue("media")),
		User:          r.PostFormValue("user"),
		CompanyValues: r.PostFormValue("company_values"),
		Impact:        r.PostFormValue("impact"),
		Team:          r.PostFormValue("team"),
	})
	http.Redirect(w, r, safeReturn(r.PostFormValue("return_to")), http.StatusSeeOther)
}

// safeReturn only allows redirects back into this site.
func safeReturn(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return dashboardPath
	}
	return target
}
