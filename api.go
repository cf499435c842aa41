package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"vibe-insights/action"
	"vibe-insights/display"
	"vibe-insights/teams"
)

type teamsResponse struct {
	Teams   []teams.Team `json:"teams"`
	Default teams.Team   `json:"default"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (a *app) listTeamsHandler(w http.ResponseWriter, r *http.Request) {
	names, err := a.source.Teams(r.Context())
	if err != nil {
		a.logger.Error("list teams", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list teams")
		return
	}
	writeJSON(w, http.StatusOK, teamsResponse{Teams: names, Default: teams.DefaultTeam})
}

// resolveTeam reads {team} from the path. Unknown teams resolve to the
// default team; the payload names the team actually served.
func (a *app) resolveTeam(w http.ResponseWriter, r *http.Request) (teams.TeamMetrics, bool) {
	m, err := teams.Resolve(r.Context(), a.source, mux.Vars(r)["team"])
	if err != nil {
		a.logger.Error("resolve team", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load team metrics")
		return teams.TeamMetrics{}, false
	}
	return m, true
}

func (a *app) teamDashboardHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := a.resolveTeam(w, r)
	if !ok {
		return
	}
	view := display.NewDashboard(m, viewportWidth(r, "width", a.cfg.DefaultWidth))
	a.metrics.observeRender("mobile", view.Layout.Mode)
	writeJSON(w, http.StatusOK, view)
}

func (a *app) teamFactorsHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := a.resolveTeam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, display.NewFactorGrid(m))
}

func (a *app) layoutHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, display.LayoutFor(viewportWidth(r, "width", a.cfg.DefaultWidth)))
}

func (a *app) apiTakeActionHandler(w http.ResponseWriter, r *http.Request) {
	var f action.Form
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, "invalid take action payload")
		return
	}
	writeJSON(w, http.StatusCreated, a.actions.Submit(f))
}
