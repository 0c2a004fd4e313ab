package store

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresStore keeps each collection as one JSONB row of the collections table.
// JSONB normalises key order and whitespace, so Load returns a document equal
// to the saved one as JSON but not byte for byte.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context, kind Kind) ([]byte, error) {
	query := `
		SELECT records
		FROM collections
		WHERE kind = $1`

	var data []byte
	err := s.db.QueryRowContext(ctx, query, string(kind)).Scan(&data)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, storageError(kind, "load", err)
		}
	}

	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, kind Kind, data []byte) error {
	query := `
		INSERT INTO collections (kind, records, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (kind) DO UPDATE
		SET records = EXCLUDED.records, updated_at = NOW()`

	_, err := s.db.ExecContext(ctx, query, string(kind), string(data))
	return storageError(kind, "save", err)
}
