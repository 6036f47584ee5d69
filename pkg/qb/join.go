package qb

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/quill/pkg/core"
)

type joinKind string

const (
	joinInner joinKind = "INNER JOIN"
	joinLeft  joinKind = "LEFT JOIN"
	joinRight joinKind = "RIGHT JOIN"
	joinFull  joinKind = "FULL JOIN"
	joinCross joinKind = "CROSS JOIN"
)

// joinClause is one JOIN with its ON condition tree. ON conditions compile
// with identifier-mode binding: bare string values name columns, so
// On("u.id", "o.user_id") compares two columns instead of binding a value.
type joinClause struct {
	kind  joinKind
	table string
	alias string
	on    *core.Group
}

// Join appends an INNER JOIN. Trailing arguments, when present, form the
// first ON condition.
func (q *SelectQuery) Join(table string, on ...any) *SelectQuery {
	return q.addJoin(joinInner, table, on)
}

// LeftJoin appends a LEFT JOIN.
func (q *SelectQuery) LeftJoin(table string, on ...any) *SelectQuery {
	return q.addJoin(joinLeft, table, on)
}

// RightJoin appends a RIGHT JOIN.
func (q *SelectQuery) RightJoin(table string, on ...any) *SelectQuery {
	return q.addJoin(joinRight, table, on)
}

// FullJoin appends a FULL JOIN.
func (q *SelectQuery) FullJoin(table string, on ...any) *SelectQuery {
	return q.addJoin(joinFull, table, on)
}

// CrossJoin appends a CROSS JOIN, which carries no ON clause.
func (q *SelectQuery) CrossJoin(table string) *SelectQuery {
	return q.addJoin(joinCross, table, nil)
}

func (q *SelectQuery) addJoin(kind joinKind, table string, on []any) *SelectQuery {
	if q.err != nil {
		return q
	}
	name, alias := splitTableAlias(table)
	j := &joinClause{
		kind:  kind,
		table: name,
		alias: alias,
		on:    &core.Group{Logic: core.LogicAnd},
	}
	q.joins = append(q.joins, j)
	if len(on) > 0 {
		q.err = compileInto(q.b, j.on, core.LogicAnd, true, on)
	}
	return q
}

// On appends an ON condition to the most recent join, joined with AND. Bare
// string values are column references; wrap with qb.Param to bind a value.
func (q *SelectQuery) On(args ...any) *SelectQuery {
	return q.addOn(core.LogicAnd, true, args)
}

// OrOn appends an ON condition to the most recent join, joined with OR.
func (q *SelectQuery) OrOn(args ...any) *SelectQuery {
	return q.addOn(core.LogicOr, true, args)
}

// OnWhere appends an ON condition with value-mode binding: bare values bind
// as parameters, as in WHERE. Useful for constant filters inside the join.
func (q *SelectQuery) OnWhere(args ...any) *SelectQuery {
	return q.addOn(core.LogicAnd, false, args)
}

// OrOnWhere is OnWhere joined with OR.
func (q *SelectQuery) OrOnWhere(args ...any) *SelectQuery {
	return q.addOn(core.LogicOr, false, args)
}

func (q *SelectQuery) addOn(logic core.Logic, identMode bool, args []any) *SelectQuery {
	if q.err != nil {
		return q
	}
	if len(q.joins) == 0 {
		q.err = fmt.Errorf("%w: ON condition without a preceding join", core.ErrInvalidGroupSpec)
		return q
	}
	j := q.joins[len(q.joins)-1]
	if j.kind == joinCross {
		q.err = fmt.Errorf("%w: CROSS JOIN takes no ON condition", core.ErrInvalidGroupSpec)
		return q
	}
	q.err = compileInto(q.b, j.on, logic, identMode, args)
	return q
}

func (j *joinClause) render(ctx *renderCtx) (string, error) {
	ref, err := ctx.tableRef(j.table, j.alias)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(string(j.kind))
	sb.WriteString(" ")
	sb.WriteString(ref)
	if j.kind != joinCross && !j.on.Empty() {
		cond, err := renderGroup(ctx, j.on, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ON (")
		sb.WriteString(cond)
		sb.WriteString(")")
	}
	return sb.String(), nil
}
