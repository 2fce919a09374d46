package server

import (
	"net/http"
	"time"

	"diaglistapp/internal/domain"
)

// PageData holds common data for all page templates
type PageData struct {
	Title  string
	Config interface{}
	Year   int
	Role   string
	Flash  *FlashMessage
	Data   interface{}
}

// FlashMessage represents a flash message
type FlashMessage struct {
	Type    string // success, error, warning, info
	Message string
}

// newPageData creates a new PageData with common fields
func (s *Server) newPageData(r *http.Request, title string) *PageData {
	return &PageData{
		Title:  title,
		Config: s.config,
		Year:   time.Now().Year(),
		Role:   currentRole(r),
	}
}

// render renders a template with the given data
func (s *Server) render(w http.ResponseWriter, r *http.Request, template string, data *PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.templates.Render(w, template, data); err != nil {
		s.log.WithError(err).WithField("template", template).Error("render failed")
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

// handleRolePicker renders the role selection page
func (s *Server) handleRolePicker(w http.ResponseWriter, r *http.Request) {
	// An existing session goes straight to its dashboard
	if claims := s.parseRoleCookie(r); claims != nil {
		http.Redirect(w, r, dashboardPath(claims.Role), http.StatusSeeOther)
		return
	}

	data := s.newPageData(r, "Выбор роли")
	s.render(w, r, "pages/public/role.html", data)
}

// handleSelectRole issues a role session and opens the dashboard
func (s *Server) handleSelectRole(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	role := r.FormValue("role")
	if role != domain.RoleManager && role != domain.RoleExecutor {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token, err := s.generateToken(role)
	if err != nil {
		s.log.WithError(err).Error("failed to generate role token")
		http.Error(w, "Error generating session", http.StatusInternalServerError)
		return
	}

	maxAge := s.config.Session.ExpirationHours * 3600
	s.setRoleCookie(w, token, maxAge)
	http.Redirect(w, r, dashboardPath(role), http.StatusSeeOther)
}

// handleLogout clears the role session
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearRoleCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func dashboardPath(role string) string {
	if role == domain.RoleManager {
		return "/manager"
	}
	return "/executor"
}
