package rewards

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PostgresStore keeps each ledger as a JSONB row, one per user key.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, userKey string) ([]byte, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw,
		`SELECT records FROM rewards_ledgers WHERE user_key = $1`, userKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

func (s *PostgresStore) Set(ctx context.Context, userKey string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rewards_ledgers (user_key, records)
		VALUES ($1, $2)
		ON CONFLICT (user_key)
		DO UPDATE SET records = EXCLUDED.records, updated_at = NOW()
	`, userKey, value)
	return err
}
