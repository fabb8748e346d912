package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sipas-org/sipas-api/internal/models"
	"github.com/sipas-org/sipas-api/internal/storage"
)

var _ storage.Table[models.Unit] = (*Table[models.Unit])(nil)

// Table runs the generic queries for one table against the pool, or against
// a transaction inside InTx. Rows scan into T by `db` tag.
type Table[T any] struct {
	db   querier
	desc storage.Descriptor
}

// NewTable binds desc to the store's pool.
func NewTable[T any](s *Store, desc storage.Descriptor) *Table[T] {
	return &Table[T]{db: s.pool, desc: desc}
}

func (t *Table[T]) Descriptor() storage.Descriptor { return t.desc }

func (t *Table[T]) Select(ctx context.Context, opts storage.Options) ([]T, error) {
	sql, args, err := buildSelect(t.desc, opts)
	if err != nil {
		return nil, storage.Wrap(storage.OpSelect, err)
	}
	return t.collect(ctx, storage.OpSelect, sql, args)
}

// SelectWithCount returns one page of rows and the number of rows matching
// the same filters, sent together in a single batch.
func (t *Table[T]) SelectWithCount(ctx context.Context, opts storage.Options) (items []T, total int64, err error) {
	selectSQL, selectArgs, err := buildSelect(t.desc, opts)
	if err != nil {
		return nil, 0, storage.Wrap(storage.OpSelect, err)
	}
	countSQL, countArgs, err := buildCount(t.desc, opts)
	if err != nil {
		return nil, 0, storage.Wrap(storage.OpCount, err)
	}

	batch := &pgx.Batch{}
	batch.Queue(selectSQL, selectArgs...)
	batch.Queue(countSQL, countArgs...)
	results := t.db.SendBatch(ctx, batch)
	defer func() {
		if cerr := results.Close(); cerr != nil && err == nil {
			err = wrapErr(storage.OpSelect, cerr)
		}
	}()

	rows, err := results.Query()
	if err != nil {
		return nil, 0, wrapErr(storage.OpSelect, err)
	}
	items, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, 0, wrapErr(storage.OpSelect, err)
	}
	if err = results.QueryRow().Scan(&total); err != nil {
		return nil, 0, wrapErr(storage.OpCount, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}

func (t *Table[T]) Insert(ctx context.Context, rec storage.Record) ([]T, error) {
	sql, args, err := buildInsert(t.desc, rec)
	if err != nil {
		return nil, storage.Wrap(storage.OpInsert, err)
	}
	return t.collect(ctx, storage.OpInsert, sql, args)
}

func (t *Table[T]) Update(ctx context.Context, filters []storage.Filter, rec storage.Record) ([]T, error) {
	sql, args, err := buildUpdate(t.desc, filters, rec)
	if err != nil {
		return nil, storage.Wrap(storage.OpUpdate, err)
	}
	return t.collect(ctx, storage.OpUpdate, sql, args)
}

func (t *Table[T]) Delete(ctx context.Context, filters []storage.Filter) (int64, error) {
	sql, args, err := buildDelete(t.desc, filters)
	if err != nil {
		return 0, storage.Wrap(storage.OpDelete, err)
	}
	tag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, wrapErr(storage.OpDelete, err)
	}
	return tag.RowsAffected(), nil
}

func (t *Table[T]) Count(ctx context.Context, filters []storage.Filter) (int64, error) {
	sql, args, err := buildCount(t.desc, storage.Options{Filters: filters})
	if err != nil {
		return 0, storage.Wrap(storage.OpCount, err)
	}
	var n int64
	if err := t.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, wrapErr(storage.OpCount, err)
	}
	return n, nil
}

func (t *Table[T]) InTx(ctx context.Context, fn func(storage.Table[T]) error) error {
	return withinTransaction(ctx, t.db, func(tx pgx.Tx) error {
		return fn(&Table[T]{db: tx, desc: t.desc})
	})
}

func (t *Table[T]) collect(ctx context.Context, op storage.Op, sql string, args []any) ([]T, error) {
	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, wrapErr(op, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
