package ui

import (
	"net/http"
	"strconv"

	"attrilens/app"
	"attrilens/domain/attrition"
	"attrilens/domain/core"
	"attrilens/domain/dataset"
)

// pageData is the envelope every template receives.
type pageData struct {
	Title  string
	Notice string
	Data   interface{}
}

// filterFromRequest builds the row filter from form/query values, mirroring
// the sidebar controls of the dashboard.
func filterFromRequest(r *http.Request) dataset.Filter {
	q := r.URL.Query()
	filter := dataset.NewFilter()

	if departments := q["department"]; len(departments) > 0 {
		filter = filter.With(dataset.In(attrition.ColDepartment, departments...))
	}
	if roles := q["jobRole"]; len(roles) > 0 {
		filter = filter.With(dataset.In(attrition.ColJobRole, roles...))
	}
	if gender := q.Get("gender"); gender != "" && gender != "All" {
		filter = filter.With(dataset.Equal(attrition.ColGender, gender))
	}
	minAge, errMin := strconv.ParseFloat(q.Get("minAge"), 64)
	maxAge, errMax := strconv.ParseFloat(q.Get("maxAge"), 64)
	if errMin == nil || errMax == nil {
		if errMin != nil {
			minAge = 0
		}
		if errMax != nil {
			maxAge = 200
		}
		filter = filter.With(dataset.Between(attrition.ColAge, minAge, maxAge))
	}
	return filter
}

// handleSummary renders the dashboard summary page.
func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	data, err := a.svc.Dashboard(r.Context(), filterFromRequest(r))
	if err != nil {
		a.renderError(w, "summary.html", "Dashboard Summary", err)
		return
	}
	a.render(w, "summary.html", pageData{Title: "Dashboard Summary", Data: data})
}

// handleAnalysis renders the detailed attrition-rate analysis page.
func (a *App) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	data, err := a.svc.Dashboard(r.Context(), filterFromRequest(r))
	if err != nil {
		a.renderError(w, "analysis.html", "Detailed Analysis", err)
		return
	}
	a.render(w, "analysis.html", pageData{Title: "Detailed Analysis", Data: data})
}

// driversView bundles the key-driver payload with the early-career dive and
// the rendered findings text.
type driversView struct {
	Dashboard   *app.DashboardData
	EarlyCareer *app.EarlyCareerData
	Findings    interface{}
}

// handleDrivers renders the key-driver analysis page.
func (a *App) handleDrivers(w http.ResponseWriter, r *http.Request) {
	filter := filterFromRequest(r)
	data, err := a.svc.Dashboard(r.Context(), filter)
	if err != nil {
		a.renderError(w, "drivers.html", "Key Driver Analysis", err)
		return
	}

	view := driversView{Dashboard: data, Findings: FindingsHTML()}
	early, err := a.svc.EarlyCareerDeepDive(r.Context(), filter)
	if err == nil {
		view.EarlyCareer = early
	} else if !core.IsEmptyResult(err) {
		a.renderError(w, "drivers.html", "Key Driver Analysis", err)
		return
	}
	a.render(w, "drivers.html", pageData{Title: "Key Driver Analysis", Data: view})
}

// salesView bundles the sales deep dive with its findings text.
type salesView struct {
	Dive     *app.SalesDiveData
	Findings interface{}
}

// handleSales renders the sales deep-dive page (full dataset, unfiltered).
func (a *App) handleSales(w http.ResponseWriter, r *http.Request) {
	data, err := a.svc.SalesDeepDive(r.Context())
	if err != nil {
		a.renderError(w, "sales.html", "Sales Deep Dive", err)
		return
	}
	a.render(w, "sales.html", pageData{
		Title: "Sales Deep Dive",
		Data:  salesView{Dive: data, Findings: SalesFindingsHTML()},
	})
}

// handleExplorer renders the raw-data search page.
func (a *App) handleExplorer(w http.ResponseWriter, r *http.Request) {
	result, err := a.svc.Search(r.Context(), filterFromRequest(r), r.URL.Query().Get("q"), 100)
	if err != nil {
		a.renderError(w, "explorer.html", "Data Explorer", err)
		return
	}
	a.render(w, "explorer.html", pageData{Title: "Data Explorer", Data: result})
}

// renderError turns recoverable domain errors into an in-page notice and
// everything else into a 500. The session survives either way.
func (a *App) renderError(w http.ResponseWriter, name, title string, err error) {
	switch {
	case core.IsEmptyResult(err), core.IsDataNotFound(err), core.IsSchemaInvalid(err):
		a.render(w, name, pageData{Title: title, Notice: err.Error()})
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
