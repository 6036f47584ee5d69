package qb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/quill/pkg/core"
)

type orderItem struct {
	column any
	desc   bool
}

// SelectQuery assembles a SELECT statement.
type SelectQuery struct {
	b        *Builder
	distinct bool
	columns  []any
	table    string
	alias    string
	joins    []*joinClause
	where    *core.Group
	groupBy  []string
	having   *core.Group
	orderBy  []orderItem
	limit    *int64
	offset   *int64
	err      error
}

// Distinct adds the DISTINCT qualifier.
func (q *SelectQuery) Distinct() *SelectQuery {
	q.distinct = true
	return q
}

// Columns appends projection columns. Inputs follow the same rules as
// Builder.Select.
func (q *SelectQuery) Columns(columns ...any) *SelectQuery {
	q.columns = append(q.columns, columns...)
	return q
}

// From sets the source table. A second token after whitespace registers an
// alias, so From("users u") is equivalent to From("users").As("u").
func (q *SelectQuery) From(table string) *SelectQuery {
	name, alias := splitTableAlias(table)
	if name == "" && q.err == nil {
		q.err = fmt.Errorf("%w: blank table name", core.ErrEmptyIdentifier)
		return q
	}
	q.table = name
	if alias != "" {
		q.alias = alias
	}
	return q
}

// As registers an alias for the source table.
func (q *SelectQuery) As(alias string) *SelectQuery {
	q.alias = alias
	return q
}

// Where appends a filter condition joined with AND.
func (q *SelectQuery) Where(args ...any) *SelectQuery {
	return q.addWhere(core.LogicAnd, args)
}

// AndWhere is an explicit alias of Where.
func (q *SelectQuery) AndWhere(args ...any) *SelectQuery {
	return q.addWhere(core.LogicAnd, args)
}

// OrWhere appends a filter condition joined with OR.
func (q *SelectQuery) OrWhere(args ...any) *SelectQuery {
	return q.addWhere(core.LogicOr, args)
}

func (q *SelectQuery) addWhere(logic core.Logic, args []any) *SelectQuery {
	if q.err != nil {
		return q
	}
	if q.where == nil {
		q.where = &core.Group{Logic: core.LogicAnd}
	}
	q.err = compileInto(q.b, q.where, logic, false, args)
	return q
}

// GroupBy appends GROUP BY columns.
func (q *SelectQuery) GroupBy(columns ...string) *SelectQuery {
	q.groupBy = append(q.groupBy, columns...)
	return q
}

// Having appends a HAVING condition joined with AND. Having accepts the same
// input shapes as Where.
func (q *SelectQuery) Having(args ...any) *SelectQuery {
	return q.addHaving(core.LogicAnd, args)
}

// OrHaving appends a HAVING condition joined with OR.
func (q *SelectQuery) OrHaving(args ...any) *SelectQuery {
	return q.addHaving(core.LogicOr, args)
}

func (q *SelectQuery) addHaving(logic core.Logic, args []any) *SelectQuery {
	if q.err != nil {
		return q
	}
	if q.having == nil {
		q.having = &core.Group{Logic: core.LogicAnd}
	}
	q.err = compileInto(q.b, q.having, logic, false, args)
	return q
}

// OrderBy appends an ORDER BY term. The column may be a name, *core.Expr or
// *core.Frag; direction is "asc" or "desc" (default asc).
func (q *SelectQuery) OrderBy(column any, direction ...string) *SelectQuery {
	if q.err != nil {
		return q
	}
	item := orderItem{column: column}
	if len(direction) > 0 {
		switch strings.ToUpper(strings.TrimSpace(direction[0])) {
		case "", "ASC":
		case "DESC":
			item.desc = true
		default:
			q.err = fmt.Errorf("%w: order direction must be ASC or DESC, got %q", core.ErrInvalidGroupSpec, direction[0])
			return q
		}
	}
	q.orderBy = append(q.orderBy, item)
	return q
}

// Limit caps the number of returned rows.
func (q *SelectQuery) Limit(n int64) *SelectQuery {
	q.limit = &n
	return q
}

// Offset skips the first n rows.
func (q *SelectQuery) Offset(n int64) *SelectQuery {
	q.offset = &n
	return q
}

// Err returns the first compile error recorded on the statement.
func (q *SelectQuery) Err() error { return q.err }

// Build renders the statement. Each call performs a fresh render pass, so
// parameter cells mutated since the last call serialize with their current
// values.
func (q *SelectQuery) Build() (string, []core.BoundValue, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	ctx := newRenderCtx(q.b, q.aliasScope())
	sql, err := q.render(ctx)
	if err != nil {
		return "", nil, err
	}
	return sql, ctx.registry.BoundValues(), nil
}

// aliasScope collects the aliases visible inside this statement.
func (q *SelectQuery) aliasScope() map[string]string {
	scope := make(map[string]string, len(q.joins)+1)
	if q.alias != "" {
		scope[q.alias] = q.table
	}
	for _, j := range q.joins {
		if j.alias != "" {
			scope[j.alias] = j.table
		}
	}
	return scope
}

func (q *SelectQuery) render(ctx *renderCtx) (string, error) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if q.distinct {
		sb.WriteString("DISTINCT ")
	}

	if len(q.columns) == 0 {
		sb.WriteString("*")
	} else {
		for i, col := range q.columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			rendered, err := renderColumnOperand(ctx, col)
			if err != nil {
				return "", err
			}
			sb.WriteString(rendered)
		}
	}

	if q.table != "" {
		ref, err := ctx.tableRef(q.table, q.alias)
		if err != nil {
			return "", err
		}
		sb.WriteString(" FROM ")
		sb.WriteString(ref)
	}

	for _, j := range q.joins {
		clause, err := j.render(ctx)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ")
		sb.WriteString(clause)
	}

	if q.where != nil && !q.where.Empty() {
		cond, err := renderGroup(ctx, q.where, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(cond)
	}

	if len(q.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		for i, col := range q.groupBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			rendered, err := ctx.column(col)
			if err != nil {
				return "", err
			}
			sb.WriteString(rendered)
		}
	}

	if q.having != nil && !q.having.Empty() {
		cond, err := renderGroup(ctx, q.having, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(" HAVING ")
		sb.WriteString(cond)
	}

	if err := renderOrderBy(ctx, &sb, q.orderBy); err != nil {
		return "", err
	}
	renderLimitOffset(&sb, q.limit, q.offset)

	return sb.String(), nil
}

func renderOrderBy(ctx *renderCtx, sb *strings.Builder, items []orderItem) error {
	if len(items) == 0 {
		return nil
	}
	sb.WriteString(" ORDER BY ")
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		rendered, err := renderColumnOperand(ctx, item.column)
		if err != nil {
			return err
		}
		sb.WriteString(rendered)
		if item.desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}
	return nil
}

func renderLimitOffset(sb *strings.Builder, limit, offset *int64) {
	if limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.FormatInt(*limit, 10))
	}
	if offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.FormatInt(*offset, 10))
	}
}

// splitTableAlias separates "table alias" shorthand, tolerating an optional
// AS keyword between the tokens.
func splitTableAlias(s string) (table, alias string) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	case 2:
		return fields[0], fields[1]
	default:
		if strings.EqualFold(fields[1], "AS") {
			return fields[0], fields[2]
		}
		return fields[0], fields[1]
	}
}
