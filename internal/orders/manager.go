// Package orders implements the service-order workflow: managers
// create orders, executors claim and complete them.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"diaglistapp/internal/domain"
	"diaglistapp/internal/repository"
)

var (
	// ErrNotFound is returned when no order has the requested id.
	ErrNotFound = errors.New("order not found")

	// ErrNotCompleted is returned when an edit is requested on an
	// order that has not been completed yet.
	ErrNotCompleted = errors.New("order is not completed")
)

// ValidationError reports a missing or invalid order field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s is required", e.Field)
}

// CreateInput carries the fields of the manager's new-order form.
type CreateInput struct {
	Date                string
	Client              string
	Contacts            string
	Car                 string
	VIN                 string
	RegNum              string
	Executor            string
	OrderNumber         string
	FrontSuspensionType string
	RearSuspensionType  string
}

// Manager owns the orders collection. All mutations go through the
// mutex so concurrent requests never interleave a load with a save.
type Manager struct {
	store repository.OrderCollection

	mu  sync.Mutex
	seq atomic.Int64
}

// NewManager creates an order manager over the given collection.
func NewManager(store repository.OrderCollection) *Manager {
	return &Manager{store: store}
}

// nextID builds a process-unique order id from the current time and a
// monotonic counter.
func (m *Manager) nextID() string {
	return fmt.Sprintf("%d-%04d", time.Now().UnixMilli(), m.seq.Add(1))
}

// Create validates the input, appends a new pending order and persists
// the collection. Returns the stored order.
func (m *Manager) Create(ctx context.Context, in CreateInput) (domain.Order, error) {
	required := []struct{ field, value string }{
		{"date", in.Date},
		{"client", in.Client},
		{"contacts", in.Contacts},
		{"executor", in.Executor},
		{"orderNumber", in.OrderNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.Order{}, &ValidationError{Field: r.field}
		}
	}

	order := domain.Order{
		ID:                  m.nextID(),
		Date:                strings.TrimSpace(in.Date),
		Client:              strings.TrimSpace(in.Client),
		Contacts:            strings.TrimSpace(in.Contacts),
		Car:                 strings.TrimSpace(in.Car),
		VIN:                 strings.TrimSpace(in.VIN),
		RegNum:              strings.TrimSpace(in.RegNum),
		Executor:            strings.TrimSpace(in.Executor),
		OrderNumber:         strings.TrimSpace(in.OrderNumber),
		FrontSuspensionType: in.FrontSuspensionType,
		RearSuspensionType:  in.RearSuspensionType,
		Status:              domain.StatusPending,
		Created:             time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.store.Load(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	all = append(all, order)
	if err := m.store.Save(ctx, all); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// List returns all orders, newest first.
func (m *Manager) List(ctx context.Context) ([]domain.Order, error) {
	all, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	// Stored oldest-first, shown newest-first
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

// Get returns the order with the given id.
func (m *Manager) Get(ctx context.Context, id string) (domain.Order, error) {
	all, err := m.store.Load(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for _, order := range all {
		if order.ID == id {
			return order, nil
		}
	}
	return domain.Order{}, ErrNotFound
}

// Claim moves a pending order to in_progress. Claiming an order that
// is already in progress or completed changes nothing.
func (m *Manager) Claim(ctx context.Context, id string) (domain.Order, error) {
	return m.update(ctx, id, func(order *domain.Order) {
		if order.Status == domain.StatusPending {
			order.Status = domain.StatusInProgress
		}
	})
}

// Complete marks an order completed and stamps completedAt. Completing
// an already completed order keeps its original completedAt.
func (m *Manager) Complete(ctx context.Context, id string) (domain.Order, error) {
	return m.update(ctx, id, func(order *domain.Order) {
		if order.Status == domain.StatusCompleted {
			return
		}
		order.Status = domain.StatusCompleted
		now := time.Now()
		order.CompletedAt = &now
	})
}

// ReopenForEdit checks that the order is completed and may be edited.
// The order itself is not mutated: status and completedAt survive the
// edit so the history stays truthful.
func (m *Manager) ReopenForEdit(ctx context.Context, id string) (domain.Order, error) {
	order, err := m.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Status != domain.StatusCompleted {
		return domain.Order{}, ErrNotCompleted
	}
	return order, nil
}

// CountByStatus returns how many orders currently have the status.
func (m *Manager) CountByStatus(ctx context.Context, status string) (int, error) {
	all, err := m.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, order := range all {
		if order.Status == status {
			count++
		}
	}
	return count, nil
}

// update applies fn to the order with the given id under the mutation
// lock and persists the whole collection.
func (m *Manager) update(ctx context.Context, id string, fn func(*domain.Order)) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.store.Load(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		fn(&all[i])
		if err := m.store.Save(ctx, all); err != nil {
			return domain.Order{}, err
		}
		return all[i], nil
	}
	return domain.Order{}, ErrNotFound
}
