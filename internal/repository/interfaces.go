// Package repository defines interfaces for data persistence
package repository

import (
	"context"

	"diaglistapp/internal/domain"
)

// Storage keys. The names are preserved exactly for compatibility
// with data exported from the original local-storage based tool.
const (
	OrdersKey      = "orders"
	DiagHistoryKey = "diag_history"
)

// BlobStore persists whole collections as text blobs under fixed
// keys. Load returns the empty string when the key has never been
// written. There are no partial updates: Save overwrites the blob.
type BlobStore interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}

// OrderCollection loads and saves the full orders collection.
// Malformed or absent stored text loads as the empty collection,
// never as an error.
type OrderCollection interface {
	Load(ctx context.Context) ([]domain.Order, error)
	Save(ctx context.Context, orders []domain.Order) error
}

// DiagCollection loads and saves the full diagnostic history.
// Same parse-failure contract as OrderCollection.
type DiagCollection interface {
	Load(ctx context.Context) ([]domain.DiagRecord, error)
	Save(ctx context.Context, records []domain.DiagRecord) error
}

// Repositories bundles all repository interfaces
type Repositories struct {
	Orders OrderCollection
	Diags  DiagCollection
}
