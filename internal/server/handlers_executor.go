package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"diaglistapp/internal/domain"
	"diaglistapp/internal/orders"

	"github.com/go-chi/chi/v5"
)

// handleExecutorDashboard lists the orders waiting for work
func (s *Server) handleExecutorDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := s.orders.List(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load orders")
		http.Error(w, "Error loading orders", http.StatusInternalServerError)
		return
	}

	var pending, inProgress, completed []domain.Order
	for _, order := range all {
		switch order.Status {
		case domain.StatusPending:
			pending = append(pending, order)
		case domain.StatusInProgress:
			inProgress = append(inProgress, order)
		case domain.StatusCompleted:
			completed = append(completed, order)
		}
	}

	data := s.newPageData(r, "Очередь диагностики")
	data.Data = map[string]interface{}{
		"Pending":    pending,
		"InProgress": inProgress,
		"Completed":  completed,
	}
	s.render(w, r, "pages/executor/dashboard.html", data)
}

// handleClaimOrder takes a pending order into work and opens its form
func (s *Server) handleClaimOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.orders.Claim(r.Context(), id); err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.WithError(err).Error("failed to claim order")
		http.Error(w, "Error claiming order", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/executor/orders/"+id+"/diag", http.StatusSeeOther)
}

// handleDiagForm renders the inspection sheet form. For a completed
// order the form opens in edit mode, prefilled from the stored record.
func (s *Server) handleDiagForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.WithError(err).Error("failed to load order")
		http.Error(w, "Error loading order", http.StatusInternalServerError)
		return
	}

	editing := order.Status == domain.StatusCompleted
	var rec domain.DiagRecord
	if editing {
		if _, err := s.orders.ReopenForEdit(ctx, id); err != nil {
			http.Error(w, "Error reopening order", http.StatusInternalServerError)
			return
		}
		found := false
		rec, found, err = s.diags.Find(ctx, order.Client, order.Car, order.OrderNumber)
		if err != nil {
			s.log.WithError(err).Error("failed to load diagnostic record")
			http.Error(w, "Error loading diagnostic record", http.StatusInternalServerError)
			return
		}
		editing = found
	}

	data := s.newPageData(r, "Диагностическая карта")
	data.Data = map[string]interface{}{
		"Order":       order,
		"Record":      rec,
		"Editing":     editing,
		"FrontRows":   domain.Rows(domain.FrontParams, rec.Front),
		"RearRows":    domain.Rows(domain.RearParams, rec.Rear),
		"StateValues": []string{domain.StateOK, domain.StateRecommend, domain.StateReplace},
	}
	s.render(w, r, "pages/executor/diag_form.html", data)
}

// handleSubmitDiag stores the filled sheet and completes the order
func (s *Server) handleSubmitDiag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.WithError(err).Error("failed to load order")
		http.Error(w, "Error loading order", http.StatusInternalServerError)
		return
	}

	rec := domain.DiagRecord{
		Date:                order.Date,
		Client:              order.Client,
		Contacts:            order.Contacts,
		Car:                 order.Car,
		VIN:                 r.FormValue("vin"),
		RegNum:              r.FormValue("regnum"),
		Executor:            order.Executor,
		Order:               order.OrderNumber,
		FrontSuspensionType: r.FormValue("frontSuspensionType"),
		RearSuspensionType:  r.FormValue("rearSuspensionType"),
		Front:               parseCheckRows(r, "front", len(domain.FrontParams)),
		Rear:                parseCheckRows(r, "rear", len(domain.RearParams)),
		Oil:                 r.FormValue("oil") != "",
		Brake:               r.FormValue("brake") != "",
		GUR:                 r.FormValue("gur") != "",
		Antifreeze:          r.FormValue("antifreeze") != "",
		SpecialNotes:        r.FormValue("special_notes"),
		Signature:           r.FormValue("signature"),
		Created:             time.Now(),
	}

	editing := r.FormValue("editing") == "1"
	if err := s.diags.Submit(ctx, rec, editing); err != nil {
		s.log.WithError(err).Error("failed to store diagnostic record")
		http.Error(w, "Error storing diagnostic record", http.StatusInternalServerError)
		return
	}

	if _, err := s.orders.Complete(ctx, id); err != nil {
		s.log.WithError(err).Error("failed to complete order")
		http.Error(w, "Error completing order", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/executor", http.StatusSeeOther)
}

// parseCheckRows collects the indexed inspection fields of one axle,
// e.g. front_left_0, front_right_0, front_comment_0.
func parseCheckRows(r *http.Request, prefix string, count int) []domain.CheckRow {
	rows := make([]domain.CheckRow, count)
	for i := range rows {
		rows[i] = domain.CheckRow{
			Left:    r.FormValue(fmt.Sprintf("%s_left_%d", prefix, i)),
			Right:   r.FormValue(fmt.Sprintf("%s_right_%d", prefix, i)),
			Comment: r.FormValue(fmt.Sprintf("%s_comment_%d", prefix, i)),
		}
	}
	return rows
}

// handleHistory renders the searchable diagnostic history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	records, err := s.diags.Search(ctx, query, 100)
	if err != nil {
		s.log.WithError(err).Error("failed to search history")
		http.Error(w, "Error loading history", http.StatusInternalServerError)
		return
	}

	data := s.newPageData(r, "История диагностик")
	data.Data = map[string]interface{}{
		"Records": records,
		"Query":   query,
	}
	s.render(w, r, "pages/shared/history.html", data)
}
