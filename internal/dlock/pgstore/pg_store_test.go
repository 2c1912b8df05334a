package pgstore

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"brain/internal/database"
	"brain/internal/database/postgrestest"
	"brain/internal/dlock"
	"brain/internal/dlock/dlocktest"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresStoreTestSuite runs the lease store contract against a real postgres
type PostgresStoreTestSuite struct {
	dlocktest.StoreSuite
	ctx       context.Context
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *postgresStore
}

// SetupSuite starts the postgres container and creates the locks table
func (s *PostgresStoreTestSuite) SetupSuite() {
	s.ctx = context.Background()

	var (
		url string
		err error
	)
	s.container, url, err = postgrestest.Run(s.ctx)
	s.Require().NoError(err, "Failed to start postgres container")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s.pool, err = database.NewPostgresPool(s.ctx, logger, url)
	s.Require().NoError(err, "Failed to connect to postgres")

	s.store = NewPostgresStore(s.pool)
	s.Require().NoError(s.store.Migrate(s.ctx), "Failed to create locks table")
	s.Require().NoError(s.store.Migrate(s.ctx), "Migrate should be idempotent")
	s.Store = s.store
}

// TearDownSuite stops the postgres container
func (s *PostgresStoreTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx), "Failed to terminate postgres container")
	}
}

// TestLeaseRowLayout checks the row written for a lease
func (s *PostgresStoreTestSuite) TestLeaseRowLayout() {
	acquired := time.UnixMilli(1700000000123).UTC()
	err := s.store.TryInsert(s.ctx, dlock.Lease{
		ResourceID: "layout_lock",
		AcquiredAt: acquired,
		OwnerToken: "host-1-1700000000123-abc",
	})
	s.Require().NoError(err)

	var (
		lockedBy   string
		acquiredAt time.Time
	)
	err = s.pool.QueryRow(s.ctx, `SELECT locked_by, acquired_at FROM locks WHERE id = 'layout_lock'`).Scan(&lockedBy, &acquiredAt)
	s.Require().NoError(err)
	s.Equal("host-1-1700000000123-abc", lockedBy)
	s.True(acquired.Equal(acquiredAt))
}

// TestManagerOverPostgres runs a full acquire/release cycle through the manager
func (s *PostgresStoreTestSuite) TestManagerOverPostgres() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	manager, err := dlock.NewLeaseManager(logger, s.store, "manager_lock")
	s.Require().NoError(err)

	executed := false
	err = manager.WithLock(s.ctx, func(ctx context.Context) error {
		executed = true
		_, found, err := s.store.Get(ctx, "manager_lock")
		s.Require().NoError(err)
		s.True(found)
		return nil
	})
	s.Require().NoError(err)
	s.True(executed)

	_, found, err := s.store.Get(s.ctx, "manager_lock")
	s.Require().NoError(err)
	s.False(found)
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container suite in short mode")
	}
	suite.Run(t, new(PostgresStoreTestSuite))
}
