// Package crud implements find-all, find-one, create, update, remove and
// count for any table described by a storage.Descriptor.
package crud

import (
	"context"

	"github.com/sipas-org/sipas-api/internal/pagination"
	"github.com/sipas-org/sipas-api/internal/storage"
	"github.com/sipas-org/sipas-api/internal/transcode"
)

// PrepareFunc rewrites a storage-named record before it is written, for
// example to hash a password.
type PrepareFunc func(ctx context.Context, rec storage.Record) error

type Option func(*options)

type options struct {
	prepare PrepareFunc
}

// WithPrepare runs fn on every create and update record.
func WithPrepare(fn PrepareFunc) Option {
	return func(o *options) { o.prepare = fn }
}

// Service is the CRUD engine for one table.
type Service[T any] struct {
	table storage.Table[T]
	desc  storage.Descriptor
	opts  options
}

func New[T any](table storage.Table[T], opts ...Option) *Service[T] {
	s := &Service[T]{table: table, desc: table.Descriptor()}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// FindAll returns one page of rows. A search term is matched against the
// table's searchable columns.
func (s *Service[T]) FindAll(ctx context.Context, req pagination.Request) (pagination.Response[T], error) {
	req = req.Normalize()
	opts := storage.Options{
		SortBy:     req.SortBy,
		Descending: req.Descending(),
		Limit:      req.Limit(),
		Offset:     req.Offset(),
	}
	if req.Search != "" && len(s.desc.Searchable) > 0 {
		opts.Search = req.Search
		opts.SearchColumns = s.desc.Searchable
	}
	items, total, err := s.table.SelectWithCount(ctx, opts)
	if err != nil {
		return pagination.Response[T]{}, err
	}
	return pagination.NewResponse(items, total, req), nil
}

func (s *Service[T]) FindOne(ctx context.Context, id int64) (T, error) {
	return s.findOne(ctx, s.table, id, false)
}

// Create inserts input, whose keys use API naming. Unique keys are checked
// inside the same transaction as the insert.
func (s *Service[T]) Create(ctx context.Context, input map[string]any) (T, error) {
	var created T
	rec, err := s.record(ctx, input)
	if err != nil {
		return created, err
	}
	err = s.table.InTx(ctx, func(tx storage.Table[T]) error {
		if err := s.checkUnique(ctx, tx, rec, 0); err != nil {
			return err
		}
		rows, err := tx.Insert(ctx, rec)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrCreateFailed
		}
		created = rows[0]
		return nil
	})
	return created, err
}

// Update locks the row, fails with NotFoundError if it is gone, then applies
// input. An input without writable fields is rejected only once the row is
// known to exist.
func (s *Service[T]) Update(ctx context.Context, id int64, input map[string]any) (T, error) {
	var updated T
	rec, err := s.writable(ctx, input)
	if err != nil {
		return updated, err
	}
	err = s.table.InTx(ctx, func(tx storage.Table[T]) error {
		if _, err := s.findOne(ctx, tx, id, true); err != nil {
			return err
		}
		if len(rec) == 0 {
			return errNoWritableFields
		}
		if err := s.checkUnique(ctx, tx, rec, id); err != nil {
			return err
		}
		rows, err := tx.Update(ctx, []storage.Filter{storage.Eq("id", id)}, rec)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrUpdateFailed
		}
		updated = rows[0]
		return nil
	})
	return updated, err
}

func (s *Service[T]) Remove(ctx context.Context, id int64) error {
	return s.table.InTx(ctx, func(tx storage.Table[T]) error {
		if _, err := s.findOne(ctx, tx, id, true); err != nil {
			return err
		}
		_, err := tx.Delete(ctx, []storage.Filter{storage.Eq("id", id)})
		return err
	})
}

func (s *Service[T]) Count(ctx context.Context) (int64, error) {
	return s.table.Count(ctx, nil)
}

func (s *Service[T]) findOne(ctx context.Context, table storage.Table[T], id int64, lock bool) (T, error) {
	var zero T
	rows, err := table.Select(ctx, storage.Options{
		Filters:   []storage.Filter{storage.Eq("id", id)},
		Limit:     1,
		ForUpdate: lock,
	})
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, &NotFoundError{Resource: s.desc.Resource, ID: id}
	}
	return rows[0], nil
}

// record is writable, rejecting an input left with no columns.
func (s *Service[T]) record(ctx context.Context, input map[string]any) (storage.Record, error) {
	rec, err := s.writable(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, errNoWritableFields
	}
	return rec, nil
}

// writable converts input to storage naming, runs the prepare hook and drops
// columns the descriptor does not allow writing.
func (s *Service[T]) writable(ctx context.Context, input map[string]any) (storage.Record, error) {
	rec := storage.Record(transcode.KeysToSnake(input))
	if rec == nil {
		rec = storage.Record{}
	}
	if s.opts.prepare != nil {
		if err := s.opts.prepare(ctx, rec); err != nil {
			return nil, err
		}
	}
	for col := range rec {
		if !s.desc.CanWrite(col) {
			delete(rec, col)
		}
	}
	return rec, nil
}

// checkUnique counts rows sharing each unique key fully present in rec,
// ignoring the row being updated.
func (s *Service[T]) checkUnique(ctx context.Context, tx storage.Table[T], rec storage.Record, id int64) error {
	for _, key := range s.desc.Unique {
		filters := make([]storage.Filter, 0, len(key))
		for _, col := range key {
			v, ok := rec[col]
			if !ok {
				break
			}
			filters = append(filters, storage.Eq(col, v))
		}
		if len(filters) != len(key) {
			continue
		}
		opts := storage.Options{Filters: filters, Limit: 1}
		if id != 0 {
			opts.Exclude = []storage.Filter{storage.Eq("id", id)}
		}
		rows, err := tx.Select(ctx, opts)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			return &ConflictError{Resource: s.desc.Resource, Fields: key}
		}
	}
	return nil
}
