package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"diaglistapp/internal/domain"

	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	r := s.router

	// Static files with cache headers
	r.Handle("/static/*", s.staticHandler())

	// Health check endpoint
	r.Get("/health", s.handleHealth)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/", s.handleRolePicker)
		r.Post("/role", s.handleSelectRole)
		r.Get("/logout", s.handleLogout)
	})

	// Manager routes
	r.Group(func(r chi.Router) {
		r.Use(s.roleMiddleware(domain.RoleManager))

		r.Get("/manager", s.handleManagerDashboard)
		r.Post("/manager/orders", s.handleCreateOrder)
		r.Get("/manager/completed", s.handleCompletedOrders)
		r.Get("/manager/orders/{id}/print", s.handlePrintSheet)
	})

	// Executor routes
	r.Group(func(r chi.Router) {
		r.Use(s.roleMiddleware(domain.RoleExecutor))

		r.Get("/executor", s.handleExecutorDashboard)
		r.Post("/executor/orders/{id}/claim", s.handleClaimOrder)
		r.Get("/executor/orders/{id}/diag", s.handleDiagForm)
		r.Post("/executor/orders/{id}/diag", s.handleSubmitDiag)
	})

	// History is visible to both roles
	r.Group(func(r chi.Router) {
		r.Use(s.roleMiddleware(domain.RoleManager, domain.RoleExecutor))

		r.Get("/history", s.handleHistory)
	})

	// API routes (for AJAX calls)
	r.Route("/api", func(r chi.Router) {
		r.Use(s.roleMiddleware(domain.RoleManager, domain.RoleExecutor))

		// New-item notifications for the current role
		r.Get("/alerts", s.apiAlerts)

		// VIN decoding
		r.Get("/vin/{vin}", s.apiDecodeVIN)

		// Car catalog (for cascading dropdowns and autocomplete)
		r.Get("/cars/search", s.apiSearchCars)
		r.Get("/cars/makes", s.apiGetMakes)
		r.Get("/cars/makes/{make}/models", s.apiGetModelsByMake)
		r.Post("/cars", s.apiAddCar)
	})
}

// staticHandler serves static files with caching
func (s *Server) staticHandler() http.Handler {
	// Validate and clean static directory path
	staticDir := filepath.Clean("./static")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract the file path from the URL
		urlPath := strings.TrimPrefix(r.URL.Path, "/static/")

		// Clean and validate the path to prevent directory traversal
		cleanPath := filepath.Clean(urlPath)
		if strings.Contains(cleanPath, "..") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		// Full path to the file
		fullPath := filepath.Join(staticDir, cleanPath)

		// Verify the file is within the static directory
		absStaticDir, _ := filepath.Abs(staticDir)
		absFullPath, _ := filepath.Abs(fullPath)
		if !strings.HasPrefix(absFullPath, absStaticDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		// Check if file exists
		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		// Set cache headers for static assets (1 week in production)
		if !s.config.Debug {
			w.Header().Set("Cache-Control", "public, max-age=604800")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}

		http.ServeFile(w, r, fullPath)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}
