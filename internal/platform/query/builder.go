// Package query builds parameterized WHERE clauses for list and search
// endpoints. Clauses accumulate with AND; ILikeAny produces a single OR
// group across several columns. Values are always bound positionally,
// never interpolated into the SQL text.
package query

import (
	"fmt"
	"strings"
	"time"
)

// Builder accumulates predicates for one SELECT over one table.
type Builder struct {
	table   string
	cols    string
	joins   []string
	where   []string
	args    []interface{}
	idx     int
	orderBy string
}

// New creates a builder selecting cols from table.
func New(table, cols string) *Builder {
	return &Builder{table: table, cols: cols, idx: 1}
}

// Join appends a JOIN clause verbatim. Join text never contains values.
func (b *Builder) Join(clause string) *Builder {
	b.joins = append(b.joins, clause)
	return b
}

// Eq adds "col = $n".
func (b *Builder) Eq(col string, value interface{}) *Builder {
	b.where = append(b.where, fmt.Sprintf("%s = $%d", col, b.idx))
	b.args = append(b.args, value)
	b.idx++
	return b
}

// ILikeAny adds a case-insensitive substring match of term against any of
// the given columns: (a ILIKE $n OR b ILIKE $n ...). All columns share one
// bound parameter.
func (b *Builder) ILikeAny(term string, cols ...string) *Builder {
	if len(cols) == 0 {
		return b
	}
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, b.idx)
	}
	b.where = append(b.where, "("+strings.Join(parts, " OR ")+")")
	b.args = append(b.args, "%"+term+"%")
	b.idx++
	return b
}

// TimeRange adds "col >= $n AND col < $n+1" for the half-open window
// [from, to). Windows are computed by the caller in server-local time so
// the database's clock never enters date arithmetic.
func (b *Builder) TimeRange(col string, from, to time.Time) *Builder {
	b.where = append(b.where, fmt.Sprintf("%s >= $%d AND %s < $%d", col, b.idx, col, b.idx+1))
	b.args = append(b.args, from, to)
	b.idx += 2
	return b
}

// DateOn restricts col to the calendar day starting at dayStart (local).
func (b *Builder) DateOn(col string, dayStart time.Time) *Builder {
	return b.TimeRange(col, dayStart, dayStart.AddDate(0, 0, 1))
}

// OrderBy sets the ORDER BY clause (column list only, no values).
func (b *Builder) OrderBy(clause string) *Builder {
	b.orderBy = clause
	return b
}

func (b *Builder) fromClause() string {
	from := b.table
	for _, j := range b.joins {
		from += " " + j
	}
	return from
}

func (b *Builder) whereClause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

// CountSQL returns the total-count query for the accumulated predicates.
func (b *Builder) CountSQL() string {
	return "SELECT COUNT(*) FROM " + b.fromClause() + b.whereClause()
}

// CountArgs returns the bound arguments for CountSQL.
func (b *Builder) CountArgs() []interface{} {
	return b.args
}

// DataSQL returns the row query with ORDER BY, LIMIT and OFFSET appended.
func (b *Builder) DataSQL(limit, offset int) string {
	sql := "SELECT " + b.cols + " FROM " + b.fromClause() + b.whereClause()
	if b.orderBy != "" {
		sql += " ORDER BY " + b.orderBy
	}
	sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", b.idx, b.idx+1)
	return sql
}

// DataArgs returns the bound arguments for DataSQL, including limit and
// offset as the trailing parameters.
func (b *Builder) DataArgs(limit, offset int) []interface{} {
	out := make([]interface{}, 0, len(b.args)+2)
	out = append(out, b.args...)
	return append(out, limit, offset)
}
