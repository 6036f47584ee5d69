package qb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/quill/pkg/core"
)

// UpdateQuery assembles an UPDATE statement.
type UpdateQuery struct {
	b       *Builder
	table   string
	set     map[string]any
	where   *core.Group
	orderBy []orderItem
	limit   *int64
	err     error
}

// Set merges column/value assignments. Keys render in sorted order; later
// calls overwrite earlier keys. Values may be scalars, parameter cells,
// *core.Expr (for assignments like "count = count + 1"), or nested
// statements.
func (q *UpdateQuery) Set(values M) *UpdateQuery {
	if q.err != nil {
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

// SetColumn assigns a single column.
func (q *UpdateQuery) SetColumn(column string, value any) *UpdateQuery {
	return q.Set(M{column: value})
}

// Where appends a filter condition joined with AND.
func (q *UpdateQuery) Where(args ...any) *UpdateQuery {
	return q.addWhere(core.LogicAnd, args)
}

// AndWhere is an explicit alias of Where.
func (q *UpdateQuery) AndWhere(args ...any) *UpdateQuery {
	return q.addWhere(core.LogicAnd, args)
}

// OrWhere appends a filter condition joined with OR.
func (q *UpdateQuery) OrWhere(args ...any) *UpdateQuery {
	return q.addWhere(core.LogicOr, args)
}

func (q *UpdateQuery) addWhere(logic core.Logic, args []any) *UpdateQuery {
	if q.err != nil {
		return q
	}
	if q.where == nil {
		q.where = &core.Group{Logic: core.LogicAnd}
	}
	q.err = compileInto(q.b, q.where, logic, false, args)
	return q
}

// OrderBy appends an ORDER BY term; some engines honor it with LIMIT.
func (q *UpdateQuery) OrderBy(column any, direction ...string) *UpdateQuery {
	if q.err != nil {
		return q
	}
	item := orderItem{column: column}
	if len(direction) > 0 && strings.EqualFold(strings.TrimSpace(direction[0]), "DESC") {
		item.desc = true
	}
	q.orderBy = append(q.orderBy, item)
	return q
}

// Limit caps the number of affected rows.
func (q *UpdateQuery) Limit(n int64) *UpdateQuery {
	q.limit = &n
	return q
}

// Err returns the first compile error recorded on the statement.
func (q *UpdateQuery) Err() error { return q.err }

// Build renders the statement and its ordered parameters. Assignment
// placeholders precede WHERE placeholders, matching their position in the
// text.
func (q *UpdateQuery) Build() (string, []core.BoundValue, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(q.set) == 0 {
		return "", nil, fmt.Errorf("%w: UPDATE without assignments", core.ErrInvalidGroupSpec)
	}

	ctx := newRenderCtx(q.b, nil)
	ref, err := ctx.tableRef(q.table, "")
	if err != nil {
		return "", nil, err
	}

	columns := make([]string, 0, len(q.set))
	for k := range q.set {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(ref)
	sb.WriteString(" SET ")
	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		rendered, err := renderValueOperand(ctx, q.set[col])
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(ctx.dialect().QuoteIdentifier(col))
		sb.WriteString(" = ")
		sb.WriteString(rendered)
	}

	if q.where != nil && !q.where.Empty() {
		cond, err := renderGroup(ctx, q.where, true)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(cond)
	}

	if err := renderOrderBy(ctx, &sb, q.orderBy); err != nil {
		return "", nil, err
	}
	renderLimitOffset(&sb, q.limit, nil)

	return sb.String(), ctx.registry.BoundValues(), nil
}
