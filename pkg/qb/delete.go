package qb

import (
	"strings"

	"github.com/leapstack-labs/quill/pkg/core"
)

// DeleteQuery assembles a DELETE statement.
type DeleteQuery struct {
	b       *Builder
	table   string
	where   *core.Group
	orderBy []orderItem
	limit   *int64
	err     error
}

// Where appends a filter condition joined with AND.
func (q *DeleteQuery) Where(args ...any) *DeleteQuery {
	return q.addWhere(core.LogicAnd, args)
}

// AndWhere is an explicit alias of Where.
func (q *DeleteQuery) AndWhere(args ...any) *DeleteQuery {
	return q.addWhere(core.LogicAnd, args)
}

// OrWhere appends a filter condition joined with OR.
func (q *DeleteQuery) OrWhere(args ...any) *DeleteQuery {
	return q.addWhere(core.LogicOr, args)
}

func (q *DeleteQuery) addWhere(logic core.Logic, args []any) *DeleteQuery {
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
func (q *DeleteQuery) OrderBy(column any, direction ...string) *DeleteQuery {
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
func (q *DeleteQuery) Limit(n int64) *DeleteQuery {
	q.limit = &n
	return q
}

// Err returns the first compile error recorded on the statement.
func (q *DeleteQuery) Err() error { return q.err }

// Build renders the statement and its ordered parameters.
func (q *DeleteQuery) Build() (string, []core.BoundValue, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	ctx := newRenderCtx(q.b, nil)
	ref, err := ctx.tableRef(q.table, "")
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(ref)

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
