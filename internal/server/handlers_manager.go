package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"diaglistapp/internal/catalog"
	"diaglistapp/internal/domain"
	"diaglistapp/internal/orders"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// handleManagerDashboard renders the new-order form and the order list
func (s *Server) handleManagerDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderManagerDashboard(w, r, nil, nil)
}

func (s *Server) renderManagerDashboard(w http.ResponseWriter, r *http.Request, flash *FlashMessage, form map[string]string) {
	ctx := r.Context()

	all, err := s.orders.List(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load orders")
		http.Error(w, "Error loading orders", http.StatusInternalServerError)
		return
	}

	data := s.newPageData(r, "Заказ-наряды")
	data.Flash = flash
	data.Data = map[string]interface{}{
		"Orders":               all,
		"Executors":            s.config.Workshop.Executors,
		"Makes":                s.catalog.Makes(),
		"FrontSuspensionTypes": catalog.FrontSuspensionTypes,
		"RearSuspensionTypes":  catalog.RearSuspensionTypes,
		"Form":                 form,
	}
	s.render(w, r, "pages/manager/dashboard.html", data)
}

// handleCreateOrder processes the new-order form
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	in := orders.CreateInput{
		Date:                r.FormValue("date"),
		Client:              r.FormValue("client"),
		Contacts:            r.FormValue("contacts"),
		Car:                 r.FormValue("car"),
		VIN:                 r.FormValue("vin"),
		RegNum:              r.FormValue("regnum"),
		Executor:            r.FormValue("executor"),
		OrderNumber:         r.FormValue("orderNumber"),
		FrontSuspensionType: r.FormValue("frontSuspensionType"),
		RearSuspensionType:  r.FormValue("rearSuspensionType"),
	}

	if _, err := s.orders.Create(r.Context(), in); err != nil {
		var verr *orders.ValidationError
		if errors.As(err, &verr) {
			flash := &FlashMessage{Type: "error", Message: "Заполните обязательное поле: " + fieldLabel(verr.Field)}
			s.renderManagerDashboard(w, r, flash, formValues(r))
			return
		}
		s.log.WithError(err).Error("failed to create order")
		http.Error(w, "Error creating order", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/manager", http.StatusSeeOther)
}

// handleCompletedOrders lists completed orders with their diagnostic
// results
func (s *Server) handleCompletedOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := s.orders.List(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load orders")
		http.Error(w, "Error loading orders", http.StatusInternalServerError)
		return
	}

	completed := make([]domain.Order, 0, len(all))
	for _, order := range all {
		if order.Status == domain.StatusCompleted {
			completed = append(completed, order)
		}
	}

	data := s.newPageData(r, "Завершенные заказы")
	data.Data = map[string]interface{}{
		"Orders": completed,
	}
	s.render(w, r, "pages/manager/completed.html", data)
}

// handlePrintSheet renders the printable diagnostic sheet for a
// completed order, with a QR code linking back to it
func (s *Server) handlePrintSheet(w http.ResponseWriter, r *http.Request) {
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

	rec, found, err := s.diags.FindByClientCar(ctx, order.Client, order.Car)
	if err != nil {
		s.log.WithError(err).Error("failed to load diagnostic record")
		http.Error(w, "Error loading diagnostic record", http.StatusInternalServerError)
		return
	}

	// QR code pointing back to this sheet, for the paper copy
	sheetURL := fmt.Sprintf("http://%s/manager/orders/%s/print", r.Host, order.ID)
	var qrBase64 string
	if png, err := qrcode.Encode(sheetURL, qrcode.Medium, 256); err == nil {
		qrBase64 = base64.StdEncoding.EncodeToString(png)
	} else {
		s.log.WithError(err).Warn("failed to generate qr code")
	}

	data := s.newPageData(r, "Диагностическая карта")
	data.Data = map[string]interface{}{
		"Order":     order,
		"Record":    rec,
		"HasRecord": found,
		"FrontRows": domain.Rows(domain.FrontParams, rec.Front),
		"RearRows":  domain.Rows(domain.RearParams, rec.Rear),
		"QRCode":    qrBase64,
	}
	s.render(w, r, "pages/manager/print.html", data)
}

// fieldLabel translates form field names for flash messages
func fieldLabel(field string) string {
	labels := map[string]string{
		"date":        "Дата",
		"client":      "ФИО клиента",
		"contacts":    "Контакты",
		"executor":    "Исполнитель",
		"orderNumber": "Номер заказа",
	}
	if label, ok := labels[field]; ok {
		return label
	}
	return field
}

// formValues echoes submitted values back into the form after a
// validation failure
func formValues(r *http.Request) map[string]string {
	fields := []string{
		"date", "client", "contacts", "car", "vin", "regnum",
		"executor", "orderNumber", "frontSuspensionType", "rearSuspensionType",
	}
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = r.FormValue(f)
	}
	return values
}
