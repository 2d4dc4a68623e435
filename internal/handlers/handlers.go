package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"ruo.dev/internal/config"
	"ruo.dev/internal/filter"
	"ruo.dev/internal/middleware"
	"ruo.dev/internal/models"
	"ruo.dev/internal/services"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, portfolio *models.Portfolio) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)

	// Initialize services
	bootcamp := filter.NewBootcampSet(slices.Concat(portfolio.Filters.BootcampIDs, cfg.BootcampIDs)...)
	profileService := services.NewProfileService(portfolio.Profile, nil)
	timelineService := services.NewTimelineService(portfolio.Timeline, bootcamp)
	projectService := services.NewProjectService(portfolio.Projects)

	// Diagrams are optional; the rest of the site works without them
	diagramService, err := services.NewDiagramService(cfg.DiagramDir)
	if err != nil {
		slog.Warn("architecture diagrams disabled", "dir", cfg.DiagramDir, "error", err)
	}

	// Initialize handlers
	profileHandler := NewProfileHandler(profileService)
	timelineHandler := NewTimelineHandler(timelineService)
	projectHandler := NewProjectHandler(projectService)
	layoutHandler := NewLayoutHandler()
	var diagramHandler *DiagramHandler
	if diagramService != nil {
		diagramHandler = NewDiagramHandler(projectService, diagramService)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))
		r.Use(middleware.Language(cfg.Lang()))

		r.Get("/profile", profileHandler.GetProfile)

		// Timeline endpoints
		r.Get("/timeline", timelineHandler.ListEntries)
		r.Get("/timeline/filters", timelineHandler.ListFilters)

		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		if diagramHandler != nil {
			r.Get("/projects/{id}/diagrams/{tab}", diagramHandler.GetDiagram)
		}

		// Scroll tracking for clients that delegate the geometry
		r.Post("/layout", layoutHandler.Recompute)
		r.Post("/layout/scroll-to", layoutHandler.ScrollTo)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Static files
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	// Serve index.html at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticDir, "index.html"))
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
