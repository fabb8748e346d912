package postgres

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sipas-org/sipas-api/internal/storage"
	"github.com/sipas-org/sipas-api/internal/transcode"
)

var (
	errNoColumns = errors.New("no writable columns in record")
	errNoFilters = errors.New("refusing to modify rows without a filter")
)

// args accumulates positional parameters.
type args []any

func (a *args) add(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func projection(desc storage.Descriptor) string {
	cols := make([]string, len(desc.Columns))
	for i, c := range desc.Columns {
		cols[i] = ident(c)
	}
	return strings.Join(cols, ", ")
}

// sortColumn resolves the requested sort field to a projected column. API
// names are accepted; unknown fields fall back to the default sort.
func sortColumn(desc storage.Descriptor, sortBy string) string {
	if sortBy != "" {
		if col := transcode.ToSnake(sortBy); desc.HasColumn(col) {
			return col
		}
	}
	if desc.DefaultSort != "" && desc.HasColumn(desc.DefaultSort) {
		return desc.DefaultSort
	}
	return "id"
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func buildWhere(desc storage.Descriptor, opts storage.Options, a *args) (string, error) {
	var conds []string
	for _, f := range opts.Filters {
		if !desc.HasColumn(f.Column) {
			return "", fmt.Errorf("unknown filter column %q on %s", f.Column, desc.Name)
		}
		if f.Value == nil {
			conds = append(conds, ident(f.Column)+" IS NULL")
			continue
		}
		conds = append(conds, ident(f.Column)+" = "+a.add(f.Value))
	}
	for _, f := range opts.Exclude {
		if !desc.HasColumn(f.Column) {
			return "", fmt.Errorf("unknown exclude column %q on %s", f.Column, desc.Name)
		}
		conds = append(conds, ident(f.Column)+" IS DISTINCT FROM "+a.add(f.Value))
	}
	if search := strings.TrimSpace(opts.Search); search != "" && len(opts.SearchColumns) > 0 {
		p := a.add("%" + escapeLike(search) + "%")
		ors := make([]string, 0, len(opts.SearchColumns))
		for _, c := range opts.SearchColumns {
			if !desc.HasColumn(c) {
				return "", fmt.Errorf("unknown search column %q on %s", c, desc.Name)
			}
			ors = append(ors, ident(c)+"::text ILIKE "+p)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), nil
}

func buildSelect(desc storage.Descriptor, opts storage.Options) (string, []any, error) {
	var a args
	where, err := buildWhere(desc, opts, &a)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(projection(desc))
	b.WriteString(" FROM ")
	b.WriteString(ident(desc.Name))
	b.WriteString(where)

	dir := " ASC"
	if opts.Descending {
		dir = " DESC"
	}
	col := sortColumn(desc, opts.SortBy)
	b.WriteString(" ORDER BY ")
	b.WriteString(ident(col))
	b.WriteString(dir)
	if col != "id" && desc.HasColumn("id") {
		b.WriteString(", ")
		b.WriteString(ident("id"))
		b.WriteString(dir)
	}

	if opts.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(a.add(opts.Limit))
	}
	if opts.Offset > 0 {
		b.WriteString(" OFFSET ")
		b.WriteString(a.add(opts.Offset))
	}
	if opts.ForUpdate {
		b.WriteString(" FOR UPDATE")
	}
	return b.String(), a, nil
}

func buildCount(desc storage.Descriptor, opts storage.Options) (string, []any, error) {
	var a args
	where, err := buildWhere(desc, storage.Options{
		Filters:       opts.Filters,
		Exclude:       opts.Exclude,
		Search:        opts.Search,
		SearchColumns: opts.SearchColumns,
	}, &a)
	if err != nil {
		return "", nil, err
	}
	return "SELECT count(*) FROM " + ident(desc.Name) + where, a, nil
}

func writableColumns(desc storage.Descriptor, rec storage.Record) ([]string, error) {
	cols := rec.Columns()
	for _, c := range cols {
		if !desc.CanWrite(c) {
			return nil, fmt.Errorf("column %q is not writable on %s", c, desc.Name)
		}
	}
	if len(cols) == 0 {
		return nil, errNoColumns
	}
	return cols, nil
}

func buildInsert(desc storage.Descriptor, rec storage.Record) (string, []any, error) {
	cols, err := writableColumns(desc, rec)
	if err != nil {
		return "", nil, err
	}
	var a args
	names := make([]string, len(cols))
	values := make([]string, len(cols))
	for i, c := range cols {
		names[i] = ident(c)
		values[i] = a.add(rec[c])
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		ident(desc.Name), strings.Join(names, ", "), strings.Join(values, ", "), projection(desc))
	return sql, a, nil
}

func buildUpdate(desc storage.Descriptor, filters []storage.Filter, rec storage.Record) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, errNoFilters
	}
	cols, err := writableColumns(desc, rec)
	if err != nil {
		return "", nil, err
	}
	var a args
	sets := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, ident(c)+" = "+a.add(rec[c]))
	}
	if desc.HasColumn("updated_at") {
		if _, ok := rec["updated_at"]; !ok {
			sets = append(sets, ident("updated_at")+" = now()")
		}
	}
	where, err := buildWhere(desc, storage.Options{Filters: filters}, &a)
	if err != nil {
		return "", nil, err
	}
	sql := fmt.Sprintf("UPDATE %s SET %s%s RETURNING %s",
		ident(desc.Name), strings.Join(sets, ", "), where, projection(desc))
	return sql, a, nil
}

func buildDelete(desc storage.Descriptor, filters []storage.Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, errNoFilters
	}
	var a args
	where, err := buildWhere(desc, storage.Options{Filters: filters}, &a)
	if err != nil {
		return "", nil, err
	}
	return "DELETE FROM " + ident(desc.Name) + where, a, nil
}

// buildCall renders a call to a database function returning a single value.
func buildCall(function string, n int) string {
	parts := strings.Split(function, ".")
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	return "SELECT " + pgx.Identifier(parts).Sanitize() + "(" + strings.Join(placeholders, ", ") + ")"
}
