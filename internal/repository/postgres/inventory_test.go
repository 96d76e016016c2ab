package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/auroraair/aerogo/internal/domain"
	"github.com/auroraair/aerogo/internal/repository"
)

// stubDB satisfies DB for the conditional-UPDATE paths: Exec returns a
// canned CommandTag and QueryRow serves the follow-up state lookup.
type stubDB struct {
	execTag pgconn.CommandTag
	execErr error
	scan    func(dest ...any) error
}

func (d *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return d.execTag, d.execErr
}

func (d *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (d *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return stubRow{scan: d.scan}
}

func (d *stubDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	return r.scan(dest...)
}

func scanState(state domain.SeatState) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*domain.SeatState)) = state
		return nil
	}
}

func TestInventoryRepoRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("reserved seat released", func(t *testing.T) {
		repo := (&InventoryRepo{}).With(&stubDB{
			execTag: pgconn.NewCommandTag("UPDATE 1"),
		})

		assert.NoError(t, repo.Release(ctx, 7))
	})

	t.Run("available seat is a no-op", func(t *testing.T) {
		repo := (&InventoryRepo{}).With(&stubDB{
			execTag: pgconn.NewCommandTag("UPDATE 0"),
			scan:    scanState(domain.SeatAvailable),
		})

		assert.NoError(t, repo.Release(ctx, 7))
	})

	t.Run("maintenance seat rejected", func(t *testing.T) {
		repo := (&InventoryRepo{}).With(&stubDB{
			execTag: pgconn.NewCommandTag("UPDATE 0"),
			scan:    scanState(domain.SeatMaintenance),
		})

		assert.ErrorIs(t, repo.Release(ctx, 7), repository.ErrInvalidTransition)
	})

	t.Run("missing seat", func(t *testing.T) {
		repo := (&InventoryRepo{}).With(&stubDB{
			execTag: pgconn.NewCommandTag("UPDATE 0"),
			scan:    func(dest ...any) error { return pgx.ErrNoRows },
		})

		assert.ErrorIs(t, repo.Release(ctx, 7), repository.ErrNotFound)
	})
}

func TestInventoryRepoReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("available seat reserved", func(t *testing.T) {
		repo := (&InventoryRepo{}).With(&stubDB{
			execTag: pgconn.NewCommandTag("UPDATE 1"),
		})

		assert.NoError(t, repo.Reserve(ctx, 7))
	})

	t.Run("held seat rejected", func(t *testing.T) {
		repo := (&InventoryRepo{}).With(&stubDB{
			execTag: pgconn.NewCommandTag("UPDATE 0"),
			scan:    scanState(domain.SeatReserved),
		})

		assert.ErrorIs(t, repo.Reserve(ctx, 7), repository.ErrSeatUnavailable)
	})

	t.Run("missing seat", func(t *testing.T) {
		repo := (&InventoryRepo{}).With(&stubDB{
			execTag: pgconn.NewCommandTag("UPDATE 0"),
			scan:    func(dest ...any) error { return pgx.ErrNoRows },
		})

		assert.ErrorIs(t, repo.Reserve(ctx, 7), repository.ErrNotFound)
	})
}
