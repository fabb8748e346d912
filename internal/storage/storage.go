package storage

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidReference indicates a write pointed at a row that does not exist.
var ErrInvalidReference = errors.New("referenced record does not exist")

// Op names a data store operation for error reporting.
type Op string

const (
	OpSelect Op = "select"
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpCount  Op = "count"
	OpRPC    Op = "rpc"
	OpBegin  Op = "begin"
	OpCommit Op = "commit"
)

// OpError wraps a failure returned by the data store with the operation that
// produced it.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("database %s error: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Wrap returns err wrapped in an *OpError, or nil when err is nil.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// Filter is a single column predicate. Filters in a list are ANDed.
type Filter struct {
	Column string
	Value  any
}

// Eq is shorthand for an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Record maps storage column names to values for writes.
type Record map[string]any

// Columns returns the record's keys in sorted order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for c := range r {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols
}

// Options controls a select. A zero Limit means no limit.
type Options struct {
	Filters       []Filter
	Exclude       []Filter
	Search        string
	SearchColumns []string
	SortBy        string
	Descending    bool
	Limit         int
	Offset        int
	ForUpdate     bool
}

// Descriptor describes one table: its projection, which columns may be
// written, which are searched, and which column sets are unique.
type Descriptor struct {
	Name        string
	Resource    string
	Columns     []string
	Writable    []string
	Searchable  []string
	Unique      [][]string
	DefaultSort string
}

// HasColumn reports whether col is part of the projection.
func (d Descriptor) HasColumn(col string) bool {
	return slices.Contains(d.Columns, col)
}

// CanWrite reports whether col may be written.
func (d Descriptor) CanWrite(col string) bool {
	return slices.Contains(d.Writable, col)
}

// Table is the query wrapper for a single table whose rows scan into T.
type Table[T any] interface {
	Descriptor() Descriptor
	Select(ctx context.Context, opts Options) ([]T, error)
	SelectWithCount(ctx context.Context, opts Options) ([]T, int64, error)
	Insert(ctx context.Context, rec Record) ([]T, error)
	Update(ctx context.Context, filters []Filter, rec Record) ([]T, error)
	Delete(ctx context.Context, filters []Filter) (int64, error)
	Count(ctx context.Context, filters []Filter) (int64, error)
	// InTx runs fn against a copy of the table bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Table[T]) error) error
}

// ColumnsOf lists the `db` tag names of T's exported fields, in field order.
// Fields tagged `db:"-"` are skipped and untagged fields use their lowercased
// name.
func ColumnsOf[T any]() []string {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}
	cols := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		cols = append(cols, name)
	}
	return cols
}
