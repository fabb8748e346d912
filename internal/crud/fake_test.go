package crud

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/sipas-org/sipas-api/internal/storage"
)

type widget struct {
	ID        int64     `db:"id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

var widgetDescriptor = storage.Descriptor{
	Name:        "widgets",
	Resource:    "widget",
	Columns:     storage.ColumnsOf[widget](),
	Writable:    []string{"code", "name"},
	Searchable:  []string{"name"},
	Unique:      [][]string{{"code"}},
	DefaultSort: "id",
}

// memTable is an in-memory storage.Table[widget].
type memTable struct {
	rows   []widget
	nextID int64

	failInsertEmpty bool
	selectErr       error
	lastOptions     storage.Options
	txCount         int
}

func (m *memTable) Descriptor() storage.Descriptor { return widgetDescriptor }

func field(w widget, col string) any {
	switch col {
	case "id":
		return w.ID
	case "code":
		return w.Code
	case "name":
		return w.Name
	case "created_at":
		return w.CreatedAt
	}
	return nil
}

func (m *memTable) match(w widget, opts storage.Options) bool {
	for _, f := range opts.Filters {
		if field(w, f.Column) != f.Value {
			return false
		}
	}
	for _, f := range opts.Exclude {
		if field(w, f.Column) == f.Value {
			return false
		}
	}
	if opts.Search != "" {
		hit := false
		for _, c := range opts.SearchColumns {
			if s, ok := field(w, c).(string); ok && strings.Contains(strings.ToLower(s), strings.ToLower(opts.Search)) {
				hit = true
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func (m *memTable) Select(_ context.Context, opts storage.Options) ([]widget, error) {
	m.lastOptions = opts
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	out := []widget{}
	for _, w := range m.rows {
		if m.match(w, opts) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if opts.Descending {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []widget{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memTable) SelectWithCount(ctx context.Context, opts storage.Options) ([]widget, int64, error) {
	items, err := m.Select(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	all := opts
	all.Limit, all.Offset = 0, 0
	matched, _ := m.Select(ctx, all)
	m.lastOptions = opts
	return items, int64(len(matched)), nil
}

func (m *memTable) Insert(_ context.Context, rec storage.Record) ([]widget, error) {
	if m.failInsertEmpty {
		return []widget{}, nil
	}
	for _, w := range m.rows {
		if w.Code == rec["code"] {
			return nil, storage.Wrap(storage.OpInsert, storage.ErrAlreadyExists)
		}
	}
	m.nextID++
	w := widget{ID: m.nextID, CreatedAt: time.Now()}
	apply(&w, rec)
	m.rows = append(m.rows, w)
	return []widget{w}, nil
}

func apply(w *widget, rec storage.Record) {
	if v, ok := rec["code"].(string); ok {
		w.Code = v
	}
	if v, ok := rec["name"].(string); ok {
		w.Name = v
	}
}

func (m *memTable) Update(_ context.Context, filters []storage.Filter, rec storage.Record) ([]widget, error) {
	out := []widget{}
	for i := range m.rows {
		if m.match(m.rows[i], storage.Options{Filters: filters}) {
			apply(&m.rows[i], rec)
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memTable) Delete(_ context.Context, filters []storage.Filter) (int64, error) {
	before := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, func(w widget) bool {
		return m.match(w, storage.Options{Filters: filters})
	})
	return int64(before - len(m.rows)), nil
}

func (m *memTable) Count(ctx context.Context, filters []storage.Filter) (int64, error) {
	rows, err := m.Select(ctx, storage.Options{Filters: filters})
	return int64(len(rows)), err
}

// InTx snapshots the rows and restores them when fn fails.
func (m *memTable) InTx(_ context.Context, fn func(storage.Table[widget]) error) error {
	m.txCount++
	snapshot := slices.Clone(m.rows)
	nextID := m.nextID
	if err := fn(m); err != nil {
		m.rows = snapshot
		m.nextID = nextID
		return err
	}
	return nil
}

var errBoom = errors.New("boom")
