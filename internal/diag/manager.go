// Package diag maintains the diagnostic history: completed inspection
// sheets, searchable and editable after the fact.
package diag

import (
	"context"
	"strings"
	"sync"
	"time"

	"diaglistapp/internal/domain"
	"diaglistapp/internal/repository"
)

// Manager owns the diagnostic history collection.
type Manager struct {
	store repository.DiagCollection

	mu sync.Mutex
}

// NewManager creates a diagnostic history manager over the given
// collection.
func NewManager(store repository.DiagCollection) *Manager {
	return &Manager{store: store}
}

// matches reports whether the stored record belongs to the same sheet
// as the (client, car, order) tuple. There is no stored record id, the
// tuple is the identity.
func matches(rec domain.DiagRecord, client, car, orderNum string) bool {
	return rec.Client == client && rec.Car == car && rec.Order == orderNum
}

// Submit stores a finished diagnostic sheet. When editing, the first
// record matching the sheet's (client, car, order) tuple is replaced
// in place, keeping its original creation time; an edit that matches
// nothing falls back to appending. A fresh submission always appends,
// even when an identical tuple already exists.
func (m *Manager) Submit(ctx context.Context, rec domain.DiagRecord, editing bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	if editing {
		for i := range all {
			if !matches(all[i], rec.Client, rec.Car, rec.Order) {
				continue
			}
			rec.Created = all[i].Created
			now := time.Now()
			rec.Updated = &now
			all[i] = rec
			return m.store.Save(ctx, all)
		}
	}

	if rec.Created.IsZero() {
		rec.Created = time.Now()
	}
	all = append(all, rec)
	return m.store.Save(ctx, all)
}

// Find returns the first record for the (client, car, order) tuple,
// used to prefill the form when an order is reopened for editing.
func (m *Manager) Find(ctx context.Context, client, car, orderNum string) (domain.DiagRecord, bool, error) {
	all, err := m.store.Load(ctx)
	if err != nil {
		return domain.DiagRecord{}, false, err
	}
	for _, rec := range all {
		if matches(rec, client, car, orderNum) {
			return rec, true, nil
		}
	}
	return domain.DiagRecord{}, false, nil
}

// FindByClientCar returns the first record for a (client, car) pair.
// When several records share the pair only the first one is visible
// through this path; the weak identity is deliberate, printing keys
// off descriptive fields just like the rest of the workflow.
func (m *Manager) FindByClientCar(ctx context.Context, client, car string) (domain.DiagRecord, bool, error) {
	all, err := m.store.Load(ctx)
	if err != nil {
		return domain.DiagRecord{}, false, err
	}
	for _, rec := range all {
		if rec.Client == client && rec.Car == car {
			return rec, true, nil
		}
	}
	return domain.DiagRecord{}, false, nil
}

// List returns the whole history, newest first.
func (m *Manager) List(ctx context.Context) ([]domain.DiagRecord, error) {
	all, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	reverse(all)
	return all, nil
}

// Search filters the history by client name or registration number,
// case-insensitive substring match, newest first. limit <= 0 means no
// cap.
func (m *Manager) Search(ctx context.Context, query string, limit int) ([]domain.DiagRecord, error) {
	all, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	reverse(all)

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if limit > 0 && len(all) > limit {
			all = all[:limit]
		}
		return all, nil
	}

	matched := make([]domain.DiagRecord, 0, len(all))
	for _, rec := range all {
		if strings.Contains(strings.ToLower(rec.Client), query) ||
			strings.Contains(strings.ToLower(rec.RegNum), query) {
			matched = append(matched, rec)
			if limit > 0 && len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

func reverse(records []domain.DiagRecord) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}
