// Package querybuilder assembles Postgres statements with positional ($n)
// placeholders for the repository layer.
package querybuilder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type args struct {
	values []any
}

func (a *args) bind(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// Condition renders one predicate of a WHERE clause.
type Condition func(a *args) string

func Eq(column string, value any) Condition {
	return func(a *args) string {
		return column + " = " + a.bind(value)
	}
}

func IsNull(column string) Condition {
	return func(*args) string {
		return column + " IS NULL"
	}
}

// In renders a false predicate for an empty value list.
func In[T any](column string, values []T) Condition {
	return func(a *args) string {
		if len(values) == 0 {
			return "1=0"
		}
		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, a.bind(v))
		}
		return column + " IN (" + strings.Join(parts, ", ") + ")"
	}
}

// Expr binds each '?' in expr to the next value.
func Expr(expr string, values ...any) Condition {
	return func(a *args) string {
		if len(values) == 0 {
			return expr
		}
		var out strings.Builder
		next := 0
		for i := 0; i < len(expr); i++ {
			if expr[i] == '?' && next < len(values) {
				out.WriteString(a.bind(values[next]))
				next++
				continue
			}
			out.WriteByte(expr[i])
		}
		return out.String()
	}
}

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

// Where appends conditions joined with AND. Nil conditions are skipped so
// callers can pass optional filters inline.
func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	for _, c := range conditions {
		if c != nil {
			b.where = append(b.where, c)
		}
	}
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

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)
	for i, c := range b.where {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(c(&a))
	}
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(b.limit))
	}
	return buf.String(), a.values, nil
}

// InsertModel builds a single-row INSERT from the `db` tags of a struct.
// suffix is appended verbatim, typically an ON CONFLICT clause.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	cols, vals, err := columnsOf(model)
	if err != nil {
		return "", nil, err
	}

	var a args
	placeholders := make([]string, 0, len(vals))
	for _, v := range vals {
		placeholders = append(placeholders, a.bind(v))
	}

	query := "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		query += " " + suffix
	}
	return query, a.values, nil
}

func columnsOf(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
