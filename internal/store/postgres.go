package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"connectdemo/internal/model"
)

// PostgresStore keeps status records in the account_statuses table. Each Put
// is a single upsert, so concurrent writers for one account never interleave.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (s *PostgresStore) Get(ctx context.Context, accountID string) (model.StatusRecord, bool, error) {
	var (
		derived []byte
		rec     model.StatusRecord
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT derived, observed_at, last_updated FROM account_statuses WHERE account_id = $1`,
		accountID,
	).Scan(&derived, &rec.ObservedAt, &rec.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.StatusRecord{}, false, nil
		}
		return model.StatusRecord{}, false, fmt.Errorf("%w: get status: %v", ErrStoreUnavailable, err)
	}

	if err := json.Unmarshal(derived, &rec.DerivedStatus); err != nil {
		return model.StatusRecord{}, false, fmt.Errorf("decode status for %s: %w", accountID, err)
	}
	rec.AccountID = accountID
	return rec, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, accountID string, status model.DerivedStatus, observedAt time.Time) (model.StatusRecord, error) {
	derived, err := json.Marshal(status)
	if err != nil {
		return model.StatusRecord{}, fmt.Errorf("encode status: %w", err)
	}

	rec := newRecord(accountID, status, observedAt, s.now().UTC(), nil)
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO account_statuses (account_id, status, derived, observed_at, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id) DO UPDATE SET
			status = EXCLUDED.status,
			derived = EXCLUDED.derived,
			observed_at = EXCLUDED.observed_at,
			last_updated = GREATEST(account_statuses.last_updated, EXCLUDED.last_updated)
		RETURNING observed_at, last_updated
	`, accountID, string(status.Status), string(derived), rec.ObservedAt, rec.LastUpdated,
	).Scan(&rec.ObservedAt, &rec.LastUpdated)
	if err != nil {
		return model.StatusRecord{}, fmt.Errorf("%w: put status: %v", ErrStoreUnavailable, err)
	}

	return rec, nil
}
