package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Collection is a typed view over one kind of a Store. Mutate serialises
// load-modify-save cycles of the same Collection value; callers share one
// Collection per kind to avoid lost updates.
type Collection[T any] struct {
	mu    sync.Mutex
	store Store
	kind  Kind
}

func NewCollection[T any](s Store, kind Kind) *Collection[T] {
	return &Collection[T]{store: s, kind: kind}
}

func (c *Collection[T]) Kind() Kind {
	return c.kind
}

// All loads every record of the collection. An unwritten collection yields an
// empty, non-nil slice.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	data, err := c.store.Load(ctx, c.kind)
	if err != nil {
		return nil, err
	}

	records := []T{}
	if len(data) == 0 {
		return records, nil
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, storageError(c.kind, "decode", err)
	}

	if records == nil {
		records = []T{}
	}

	return records, nil
}

// Replace overwrites the collection with records.
func (c *Collection[T]) Replace(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return storageError(c.kind, "encode", err)
	}

	return c.store.Save(ctx, c.kind, data)
}

// Mutate loads the collection, hands it to fn and saves what fn returns. If fn
// returns an error nothing is saved. The collection lock is held throughout.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.All(ctx)
	if err != nil {
		return err
	}

	records, err = fn(records)
	if err != nil {
		return err
	}

	return c.Replace(ctx, records)
}
