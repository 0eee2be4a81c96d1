package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and its positional arguments ($1, $2, ...).
type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) bind(value any) string {
	w.args = append(w.args, value)
	return "$" + strconv.Itoa(len(w.args))
}

// expr copies a raw fragment, binding each '?' to the next value.
func (w *writer) expr(fragment string, values []any) {
	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(values) {
			w.buf.WriteString(w.bind(values[next]))
			next++
			continue
		}
		w.buf.WriteByte(fragment[i])
	}
}

func (w *writer) where(conditions []Condition) {
	for i, cond := range conditions {
		if i == 0 {
			w.buf.WriteString(" WHERE ")
		} else {
			w.buf.WriteString(" AND ")
		}
		cond(w)
	}
}

// Condition renders one predicate of a WHERE clause. Conditions are joined with AND.
type Condition func(w *writer)

func Eq(column string, value any) Condition {
	return func(w *writer) {
		w.buf.WriteString(column + " = " + w.bind(value))
	}
}

func IsNull(column string) Condition {
	return func(w *writer) {
		w.buf.WriteString(column + " IS NULL")
	}
}

// Expr is a raw predicate with '?' placeholders.
func Expr(fragment string, values ...any) Condition {
	return func(w *writer) {
		w.expr(fragment, values)
	}
}

// HasPrefix matches rows whose column starts with prefix. LIKE wildcards in prefix are escaped.
func HasPrefix(column, prefix string) Condition {
	return func(w *writer) {
		w.buf.WriteString(column + " LIKE " + w.bind(likeEscaper.Replace(prefix)+"%"))
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w writer
	w.buf.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.buf.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.buf.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}
	return w.buf.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row; call it once per row for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, e.g. ON CONFLICT or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w writer
	w.args = make([]any, 0, len(b.rows)*len(b.columns))
	w.buf.WriteString("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.buf.WriteString(", ")
		}
		placeholders := make([]string, len(row))
		for i, value := range row {
			placeholders[i] = w.bind(value)
		}
		w.buf.WriteString("(" + strings.Join(placeholders, ", ") + ")")
	}
	if b.suffix != "" {
		w.buf.WriteString(" " + b.suffix)
	}
	return w.buf.String(), w.args, nil
}

type assignment struct {
	column   string
	fragment string
	values   []any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	return b.SetExpr(column, "?", value)
}

// SetExpr assigns a raw expression with '?' placeholders, e.g. NOW().
func (b *UpdateBuilder) SetExpr(column, fragment string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, fragment: fragment, values: values})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w writer
	w.buf.WriteString("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(set.column + " = ")
		w.expr(set.fragment, set.values)
	}
	w.where(b.where)
	return w.buf.String(), w.args, nil
}
