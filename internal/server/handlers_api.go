package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"diaglistapp/internal/catalog"
	"diaglistapp/internal/domain"
	"diaglistapp/internal/notify"
	"diaglistapp/internal/vin"

	"github.com/go-chi/chi/v5"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.WithError(err).Error("failed to encode json response")
	}
}

// apiAlerts returns the new-item alert state for the caller's role
func (s *Server) apiAlerts(w http.ResponseWriter, r *http.Request) {
	poller, ok := s.pollers[currentRole(r)]
	if !ok {
		s.respondJSON(w, http.StatusOK, notify.Alert{Tones: []notify.Tone{}})
		return
	}
	s.respondJSON(w, http.StatusOK, poller.Alert())
}

// apiDecodeVIN proxies VIN decoding so the browser never talks to the
// external service directly
func (s *Server) apiDecodeVIN(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "vin")

	info, err := s.vin.Decode(r.Context(), number)
	if err != nil {
		switch {
		case errors.Is(err, vin.ErrTooShort):
			s.respondJSON(w, http.StatusBadRequest, map[string]string{
				"error": "Введите корректный VIN (минимум 10 символов)",
			})
		case errors.Is(err, vin.ErrNoMatch):
			s.respondJSON(w, http.StatusNotFound, map[string]string{
				"error": "Данные по VIN не найдены",
			})
		default:
			s.log.WithError(err).Warn("vin decode failed")
			s.respondJSON(w, http.StatusBadGateway, map[string]string{
				"error": "Ошибка запроса к VIN API",
			})
		}
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{
		"car":                 info.Car(),
		"make":                info.Make,
		"model":               info.Model,
		"frontSuspensionType": info.FrontSuspension,
		"rearSuspensionType":  info.RearSuspension,
	})
}

// apiSearchCars searches the catalog for the autocomplete field
func (s *Server) apiSearchCars(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	s.respondJSON(w, http.StatusOK, s.catalog.Search(query, limit))
}

// apiGetMakes returns all known makes
func (s *Server) apiGetMakes(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.catalog.Makes())
}

// apiGetModelsByMake returns models for cascading dropdowns
func (s *Server) apiGetModelsByMake(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.catalog.ModelsByMake(chi.URLParam(r, "make")))
}

// apiAddCar registers a model missing from the catalog. Managers only:
// executors work with whatever the order says.
func (s *Server) apiAddCar(w http.ResponseWriter, r *http.Request) {
	if currentRole(r) != domain.RoleManager {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var entry catalog.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	if entry.Make == "" || entry.Model == "" {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "make and model are required"})
		return
	}

	s.catalog.Add(entry)
	s.respondJSON(w, http.StatusCreated, entry)
}
