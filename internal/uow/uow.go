package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	postgres "github.com/auroraair/aerogo/internal/repository/postgres"
)

// AfterCommit runs once the transaction has committed. Services queue
// cache invalidation and flight-changed publishes here so side effects
// never fire for a rolled-back reservation.
type AfterCommit func(ctx context.Context)

// UoW groups repository writes into a single transaction and collects the
// after-commit hooks queued along the way.
type UoW struct {
	store *postgres.Store
}

func NewUoW(store *postgres.Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn in the store's default transaction (serializable) and, on
// commit, fires the queued hooks in the order they were added.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error,
) error {
	return u.DoWithOpts(ctx, nil, fn)
}

// DoWithOpts is Do with explicit transaction options.
func (u *UoW) DoWithOpts(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error,
) error {
	var queued []AfterCommit

	err := u.store.RunTx(ctx, opts, func(ctx context.Context, tx postgres.DB) error {
		return fn(ctx, tx, func(h AfterCommit) {
			queued = append(queued, h)
		})
	})
	if err != nil {
		return err
	}

	for _, h := range queued {
		h(ctx)
	}

	return nil
}
