package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"diaglistapp/internal/domain"
)

// orderCollection serializes the orders collection as one JSON blob.
type orderCollection struct {
	store BlobStore
}

// NewOrderCollection creates an OrderCollection over the given store.
func NewOrderCollection(store BlobStore) OrderCollection {
	return &orderCollection{store: store}
}

func (c *orderCollection) Load(ctx context.Context) ([]domain.Order, error) {
	raw, err := c.store.Load(ctx, OrdersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", OrdersKey, err)
	}

	var orders []domain.Order
	if !decode(raw, &orders) {
		return []domain.Order{}, nil
	}
	return orders, nil
}

func (c *orderCollection) Save(ctx context.Context, orders []domain.Order) error {
	return save(ctx, c.store, OrdersKey, orders)
}

// diagCollection serializes the diagnostic history as one JSON blob.
type diagCollection struct {
	store BlobStore
}

// NewDiagCollection creates a DiagCollection over the given store.
func NewDiagCollection(store BlobStore) DiagCollection {
	return &diagCollection{store: store}
}

func (c *diagCollection) Load(ctx context.Context) ([]domain.DiagRecord, error) {
	raw, err := c.store.Load(ctx, DiagHistoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", DiagHistoryKey, err)
	}

	var records []domain.DiagRecord
	if !decode(raw, &records) {
		return []domain.DiagRecord{}, nil
	}
	return records, nil
}

func (c *diagCollection) Save(ctx context.Context, records []domain.DiagRecord) error {
	return save(ctx, c.store, DiagHistoryKey, records)
}

// decode parses a stored blob into dst. Absent or malformed text is
// reported as false so callers fall back to the empty collection; a
// broken blob must never take the workflow down.
func decode(raw string, dst interface{}) bool {
	if raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

func save(ctx context.Context, store BlobStore, key string, collection interface{}) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Save(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
