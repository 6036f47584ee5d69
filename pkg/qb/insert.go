package qb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/quill/pkg/core"
)

// InsertQuery assembles an INSERT statement. Rows come either from an
// explicit Columns/Values pairing or from Set maps; the two styles cannot be
// mixed on one statement.
type InsertQuery struct {
	b       *Builder
	table   string
	columns []string
	rows    [][]any
	set     map[string]any
	err     error
}

// Columns declares the column list for subsequent Values calls.
func (q *InsertQuery) Columns(columns ...string) *InsertQuery {
	if q.err != nil {
		return q
	}
	if q.set != nil {
		q.err = fmt.Errorf("%w: Columns cannot follow Set on the same statement", core.ErrInvalidGroupSpec)
		return q
	}
	q.columns = append(q.columns, columns...)
	return q
}

// Values appends one row. The argument count must match the declared column
// count; scalars bind as parameters, *core.Expr and nested statements render
// inline.
func (q *InsertQuery) Values(values ...any) *InsertQuery {
	if q.err != nil {
		return q
	}
	if q.set != nil {
		q.err = fmt.Errorf("%w: Values cannot follow Set on the same statement", core.ErrInvalidGroupSpec)
		return q
	}
	if len(q.columns) == 0 {
		q.err = fmt.Errorf("%w: Values requires a prior Columns call", core.ErrInvalidGroupSpec)
		return q
	}
	if len(values) != len(q.columns) {
		q.err = fmt.Errorf("%w: %d values for %d columns", core.ErrArityMismatch, len(values), len(q.columns))
		return q
	}
	row := make([]any, len(values))
	for i, v := range values {
		w, err := wrapValue(q.b, false, v)
		if err != nil {
			q.err = err
			return q
		}
		row[i] = w
	}
	q.rows = append(q.rows, row)
	return q
}

// Set merges column/value pairs for a single-row insert. Keys render in
// sorted order; later calls overwrite earlier keys.
func (q *InsertQuery) Set(values M) *InsertQuery {
	if q.err != nil {
		return q
	}
	if len(q.columns) > 0 {
		q.err = fmt.Errorf("%w: Set cannot follow Columns on the same statement", core.ErrInvalidGroupSpec)
		return q
	}
	if q.set == nil {
		q.set = make(map[string]any, len(values))
	}
	for k, v := range values {
		if strings.TrimSpace(k) == "" {
			q.err = fmt.Errorf("%w: blank column name in Set", core.ErrEmptyIdentifier)
			return q
		}
		w, err := wrapValue(q.b, false, v)
		if err != nil {
			q.err = err
			return q
		}
		q.set[k] = w
	}
	return q
}

// Err returns the first compile error recorded on the statement.
func (q *InsertQuery) Err() error { return q.err }

// Build renders the statement and its ordered parameters.
func (q *InsertQuery) Build() (string, []core.BoundValue, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	columns, rows := q.columns, q.rows
	if q.set != nil {
		columns = make([]string, 0, len(q.set))
		for k := range q.set {
			columns = append(columns, k)
		}
		sort.Strings(columns)
		row := make([]any, len(columns))
		for i, k := range columns {
			row[i] = q.set[k]
		}
		rows = [][]any{row}
	}
	if len(rows) == 0 {
		return "", nil, fmt.Errorf("%w: INSERT without rows", core.ErrInvalidGroupSpec)
	}

	ctx := newRenderCtx(q.b, nil)
	ref, err := ctx.tableRef(q.table, "")
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(ref)
	sb.WriteString(" (")
	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		if strings.TrimSpace(col) == "" {
			return "", nil, fmt.Errorf("%w: blank column name", core.ErrEmptyIdentifier)
		}
		sb.WriteString(ctx.dialect().QuoteIdentifier(col))
	}
	sb.WriteString(") VALUES ")

	for ri, row := range rows {
		if ri > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for vi, v := range row {
			if vi > 0 {
				sb.WriteString(", ")
			}
			rendered, err := renderValueOperand(ctx, v)
			if err != nil {
				return "", nil, err
			}
			sb.WriteString(rendered)
		}
		sb.WriteString(")")
	}

	return sb.String(), ctx.registry.BoundValues(), nil
}
