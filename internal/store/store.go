// Package store persists whole collections of records as JSON documents.
//
// Every read loads the full collection and every write replaces it; there is
// no indexing and no partial update.
package store

import (
	"context"
	"fmt"
)

// Kind names a top-level collection.
type Kind string

const (
	KindBlogPosts Kind = "blogPosts"
	KindAuthors   Kind = "authors"
)

// Store loads and saves the raw JSON document of a collection. Load returns a
// nil slice when the collection has never been written.
type Store interface {
	Load(ctx context.Context, kind Kind) ([]byte, error)
	Save(ctx context.Context, kind Kind, data []byte) error
}

// StorageError wraps an I/O or decoding failure of a collection.
type StorageError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Kind: kind, Op: op, Err: err}
}
