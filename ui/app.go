package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"attrilens/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	svc       *app.DashboardService
	templates *template.Template
	port      string
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(svc *app.DashboardService, config Config) (*App, error) {
	funcMap := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
		"f1":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"f2":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"money": func(v float64) string {
			return fmt.Sprintf("$%.0f", v)
		},
		"deref": func(p *float64) float64 {
			if p == nil {
				return 0
			}
			return *p
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		svc:       svc,
		templates: templates,
		port:      config.Port,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleSummary)
	a.router.Get("/analysis", a.handleAnalysis)
	a.router.Get("/drivers", a.handleDrivers)
	a.router.Get("/sales", a.handleSales)
	a.router.Get("/explorer", a.handleExplorer)
}

// Start runs the HTTP server.
func (a *App) Start() error {
	addr := ":" + a.port
	log.Printf("[UI] Listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Handler returns the underlying HTTP handler, for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// render writes one page template, falling back to a plain 500 on template
// failure so a broken view never takes the whole session down.
func (a *App) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[UI] template %s failed: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
