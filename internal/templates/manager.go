// Package templates provides a template manager with dynamic reload support.
package templates

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"diaglistapp/internal/catalog"
	"diaglistapp/internal/domain"
)

// Manager handles template loading and caching
type Manager struct {
	dir     string
	debug   bool
	cache   map[string]*template.Template
	mu      sync.RWMutex
	funcMap template.FuncMap
}

// NewManager creates a new template manager
// If debug is true, templates are reloaded on every request
// If debug is false, templates are cached in memory
func NewManager(dir string, debug bool) (*Manager, error) {
	// Validate and clean the directory path
	cleanDir := filepath.Clean(dir)
	if _, err := os.Stat(cleanDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("template directory does not exist: %s", cleanDir)
	}

	m := &Manager{
		dir:   cleanDir,
		debug: debug,
		cache: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"formatDate":      formatDate,
			"formatDateTime":  formatDateTime,
			"dateLabel":       dateLabel,
			"statusLabel":     domain.StatusLabel,
			"statusBadge":     statusBadge,
			"stateLabel":      domain.StateLabel,
			"stateBadge":      stateBadge,
			"suspensionLabel": catalog.SuspensionLabel,
			"safeHTML":        safeHTML,
			"add":             add,
			"sub":             sub,
		},
	}

	// If not in debug mode, pre-load all templates
	if !debug {
		if err := m.loadTemplates(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// loadTemplates loads all templates from the directory
func (m *Manager) loadTemplates() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Walk through the pages directory and parse each page with the layout
	pagesDir := filepath.Join(m.dir, "pages")
	return filepath.Walk(pagesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories and non-HTML files
		if info.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}

		// Validate path for security
		cleanPath := filepath.Clean(path)
		if !isSubPath(m.dir, cleanPath) {
			return fmt.Errorf("invalid template path detected: %s", path)
		}

		// Get relative path for template name (e.g., "pages/manager/orders.html")
		relPath, err := filepath.Rel(m.dir, cleanPath)
		if err != nil {
			return err
		}
		templateName := filepath.ToSlash(relPath)

		tmpl, err := m.buildTemplate(cleanPath, templateName)
		if err != nil {
			return err
		}
		m.cache[templateName] = tmpl
		return nil
	})
}

// buildTemplate parses the shared layout followed by one page.
func (m *Manager) buildTemplate(pagePath, name string) (*template.Template, error) {
	layoutContent, err := os.ReadFile(filepath.Join(m.dir, "layouts", "base.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	pageContent, err := os.ReadFile(pagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl := template.New("base").Funcs(m.funcMap)
	if _, err := tmpl.Parse(string(layoutContent)); err != nil {
		return nil, fmt.Errorf("failed to parse layout for %s: %w", name, err)
	}
	if _, err := tmpl.Parse(string(pageContent)); err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// Render renders a template with the given data
func (m *Manager) Render(w io.Writer, name string, data interface{}) error {
	if m.debug {
		// In debug mode, reload template on every request
		if err := m.loadSingle(name); err != nil {
			return fmt.Errorf("failed to reload templates: %w", err)
		}
	}

	m.mu.RLock()
	tmpl, ok := m.cache[name]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	return tmpl.ExecuteTemplate(w, "base", data)
}

// loadSingle loads a single template (used in debug mode)
func (m *Manager) loadSingle(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tmpl, err := m.buildTemplate(filepath.Join(m.dir, name), name)
	if err != nil {
		return err
	}
	m.cache[name] = tmpl
	return nil
}

// isSubPath checks if child is a subpath of parent
func isSubPath(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	// Check that the relative path doesn't escape the parent directory
	return !filepath.IsAbs(rel) && rel != ".." && len(rel) > 0 && rel[0] != '.'
}

// Template helper functions

// formatDate and formatDateTime take either time.Time or *time.Time,
// since completion and update stamps are optional
func formatDate(v interface{}) string {
	t := timeValue(v)
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}

func formatDateTime(v interface{}) string {
	t := timeValue(v)
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006 15:04")
}

func timeValue(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	}
	return time.Time{}
}

// dateLabel reformats the yyyy-mm-dd string a date input produces
func dateLabel(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02.01.2006")
}

func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

func add(a, b int) int {
	return a + b
}

func sub(a, b int) int {
	return a - b
}

func statusBadge(status string) string {
	badges := map[string]string{
		domain.StatusPending:    "secondary",
		domain.StatusInProgress: "warning",
		domain.StatusCompleted:  "success",
	}
	if badge, ok := badges[status]; ok {
		return badge
	}
	return "secondary"
}

func stateBadge(state string) string {
	badges := map[string]string{
		domain.StateOK:        "success",
		domain.StateRecommend: "warning",
		domain.StateReplace:   "error",
	}
	if badge, ok := badges[state]; ok {
		return badge
	}
	return "secondary"
}
