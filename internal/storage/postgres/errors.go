package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sipas-org/sipas-api/internal/storage"
)

// wrapErr prefixes err with op and maps constraint violations onto the
// storage sentinels.
func wrapErr(op storage.Op, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return storage.Wrap(op, fmt.Errorf("%w: %s", storage.ErrAlreadyExists, pgErr.Message))
		case pgerrcode.ForeignKeyViolation:
			return storage.Wrap(op, fmt.Errorf("%w: %s", storage.ErrInvalidReference, pgErr.Message))
		}
	}
	return storage.Wrap(op, err)
}

func withinTransaction(ctx context.Context, db querier, op func(pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return storage.Wrap(storage.OpBegin, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if err = op(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return wrapErr(storage.OpCommit, err)
	}
	return nil
}
