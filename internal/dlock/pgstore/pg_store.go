// internal/dlock/pgstore/pg_store.go
package pgstore

import (
	"context"
	"errors"
	"time"

	"brain/internal/dlock"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE postgres reports for a duplicate primary key.
const uniqueViolation = "23505"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS locks (
	id TEXT PRIMARY KEY,
	acquired_at TIMESTAMPTZ NOT NULL,
	locked_by TEXT NOT NULL
);
`

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresStore implements dlock.Store on the locks table. The primary key on
// id is what makes TryInsert exclusive.
type postgresStore struct {
	db DB
}

// NewPostgresStore creates a lease store on db
func NewPostgresStore(db DB) *postgresStore {
	return &postgresStore{db: db}
}

// Migrate creates the locks table if it does not exist
func (s *postgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

func (s *postgresStore) TryInsert(ctx context.Context, lease dlock.Lease) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO locks (id, acquired_at, locked_by) VALUES ($1, $2, $3)`,
		lease.ResourceID, lease.AcquiredAt, lease.OwnerToken,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return dlock.ErrLeaseExists
	}
	return err
}

func (s *postgresStore) Get(ctx context.Context, resourceID string) (dlock.Lease, bool, error) {
	var (
		acquiredAt time.Time
		lockedBy   string
	)
	err := s.db.QueryRow(ctx,
		`SELECT acquired_at, locked_by FROM locks WHERE id = $1`,
		resourceID,
	).Scan(&acquiredAt, &lockedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return dlock.Lease{}, false, nil
	}
	if err != nil {
		return dlock.Lease{}, false, err
	}
	return dlock.Lease{
		ResourceID: resourceID,
		AcquiredAt: acquiredAt.UTC(),
		OwnerToken: lockedBy,
	}, true, nil
}

func (s *postgresStore) DeleteIfOwned(ctx context.Context, resourceID, ownerToken string) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM locks WHERE id = $1 AND locked_by = $2`,
		resourceID, ownerToken,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *postgresStore) DeleteUnconditional(ctx context.Context, resourceID string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM locks WHERE id = $1`, resourceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
