package qb

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/quill/pkg/core"
	"github.com/leapstack-labs/quill/pkg/dialect"
)

// renderCtx carries the state of one Build pass: the dialect being rendered
// against, the parameter registry collecting cells in placeholder order, and
// the alias scope of the statement. A fresh context is created per Build so
// statements can be re-rendered after parameter cells mutate.
type renderCtx struct {
	b        *Builder
	registry *core.Registry
	aliases  map[string]string // alias -> logical table name
}

func newRenderCtx(b *Builder, aliases map[string]string) *renderCtx {
	return &renderCtx{b: b, registry: &core.Registry{}, aliases: aliases}
}

func (ctx *renderCtx) dialect() *dialect.Dialect { return ctx.b.dialect }

// placeholder registers a parameter cell and returns its dialect placeholder.
// Registration order defines placeholder order; this is the only place cells
// enter the registry.
func (ctx *renderCtx) placeholder(p *core.Param) string {
	return ctx.dialect().FormatPlaceholder(ctx.registry.Add(p))
}

// resolveTable maps a logical table token to its physical name. Registered
// aliases stay untouched; real table names receive the builder's prefix.
func (ctx *renderCtx) resolveTable(name string) string {
	if _, ok := ctx.aliases[name]; ok {
		return name
	}
	return ctx.b.prefix + name
}

// column quotes a possibly dotted column reference, prefixing the table part.
func (ctx *renderCtx) column(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: blank column reference", core.ErrEmptyIdentifier)
	}
	d := ctx.dialect()
	table, col, ok := strings.Cut(name, ".")
	if !ok {
		return d.QuoteIdentifier(name), nil
	}
	if strings.TrimSpace(table) == "" || strings.TrimSpace(col) == "" {
		return "", fmt.Errorf("%w: malformed column reference %q", core.ErrEmptyIdentifier, name)
	}
	return d.QuoteIdentifier(ctx.resolveTable(table)) + "." + d.QuoteIdentifier(col), nil
}

// tableRef renders a FROM/JOIN table reference with its optional alias.
// Dotted names are treated as schema.table; the prefix applies to the table
// segment only.
func (ctx *renderCtx) tableRef(table, alias string) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", fmt.Errorf("%w: blank table name", core.ErrEmptyIdentifier)
	}
	d := ctx.dialect()
	var ref string
	if schema, name, ok := strings.Cut(table, "."); ok {
		ref = d.QuoteIdentifier(schema) + "." + d.QuoteIdentifier(ctx.b.prefix+name)
	} else {
		ref = d.QuoteIdentifier(ctx.b.prefix + table)
	}
	if alias != "" {
		ref += " AS " + d.QuoteIdentifier(alias)
	}
	return ref, nil
}

// renderGroup renders a group's children joined by each child's own logic.
// The root group never parenthesizes, and neither does a group with a single
// child; every other group wraps itself.
func renderGroup(ctx *renderCtx, g *core.Group, root bool) (string, error) {
	var sb strings.Builder
	for i, n := range g.Nodes {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(string(nodeLogic(n)))
			sb.WriteString(" ")
		}
		frag, err := renderNode(ctx, n)
		if err != nil {
			return "", err
		}
		sb.WriteString(frag)
	}
	if root || len(g.Nodes) <= 1 {
		return sb.String(), nil
	}
	return "(" + sb.String() + ")", nil
}

func renderNode(ctx *renderCtx, n core.CondNode) (string, error) {
	switch node := n.(type) {
	case *core.Comparison:
		return renderComparison(ctx, node)
	case *core.Group:
		return renderGroup(ctx, node, false)
	case *core.Raw:
		return renderRaw(ctx, node)
	default:
		return "", fmt.Errorf("%w: unknown condition node %T", core.ErrInvalidGroupSpec, n)
	}
}

func renderComparison(ctx *renderCtx, c *core.Comparison) (string, error) {
	left, err := renderColumnOperand(ctx, c.Column)
	if err != nil {
		return "", err
	}

	// NULL normalizes equality to IS / IS NOT.
	if c.Value == nil && !c.Op.IsSet() && !c.Op.IsRange() {
		switch c.Op {
		case core.OpEq, core.OpIs:
			return left + " IS NULL", nil
		case core.OpNotEq, core.OpIsNot:
			return left + " IS NOT NULL", nil
		default:
			return "", fmt.Errorf("%w: NULL is only comparable with =, !=, IS or IS NOT", core.ErrArityMismatch)
		}
	}

	switch {
	case c.Op == core.OpIs || c.Op == core.OpIsNot:
		b, ok := c.Value.(bool)
		if !ok {
			return "", fmt.Errorf("%w: %s requires NULL or a boolean", core.ErrArityMismatch, c.Op)
		}
		lit := "FALSE"
		if b {
			lit = "TRUE"
		}
		return left + " " + c.Op.String() + " " + lit, nil

	case c.Op.IsRange():
		pair, ok := c.Value.([]any)
		if !ok || len(pair) != 2 {
			return "", fmt.Errorf("%w: %s requires exactly two bounds", core.ErrArityMismatch, c.Op)
		}
		lo, err := renderValueOperand(ctx, pair[0])
		if err != nil {
			return "", err
		}
		hi, err := renderValueOperand(ctx, pair[1])
		if err != nil {
			return "", err
		}
		return left + " " + c.Op.String() + " " + lo + " AND " + hi, nil

	case c.Op.IsSet():
		if sub, ok := c.Value.(*SelectQuery); ok {
			inner, err := renderSub(ctx, sub)
			if err != nil {
				return "", err
			}
			return left + " " + c.Op.String() + " " + inner, nil
		}
		elems, ok := c.Value.([]any)
		if !ok || len(elems) == 0 {
			return "", fmt.Errorf("%w: %s requires a non-empty sequence", core.ErrArityMismatch, c.Op)
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			if parts[i], err = renderValueOperand(ctx, e); err != nil {
				return "", err
			}
		}
		return left + " " + c.Op.String() + " (" + strings.Join(parts, ", ") + ")", nil

	default:
		right, err := renderValueOperand(ctx, c.Value)
		if err != nil {
			return "", err
		}
		return left + " " + c.Op.String() + " " + right, nil
	}
}

// renderColumnOperand renders the left side of a comparison.
func renderColumnOperand(ctx *renderCtx, column any) (string, error) {
	switch col := column.(type) {
	case string:
		return ctx.column(col)
	case core.Ident:
		return ctx.column(string(col))
	case *core.Expr:
		return renderRaw(ctx, &core.Raw{SQL: col.SQL, QuoteIdents: true, Values: col.Values})
	case *core.Frag:
		return col.SQL, nil
	case *SelectQuery:
		return renderSub(ctx, col)
	default:
		return "", fmt.Errorf("%w: unsupported column operand %T", core.ErrInvalidGroupSpec, column)
	}
}

// renderValueOperand renders the right side of a comparison.
func renderValueOperand(ctx *renderCtx, v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case *core.Param:
		return ctx.placeholder(val), nil
	case core.Ident:
		return ctx.column(string(val))
	case *core.Expr:
		return renderRaw(ctx, &core.Raw{SQL: val.SQL, QuoteIdents: true, Values: val.Values})
	case *core.Frag:
		return val.SQL, nil
	case *SelectQuery:
		return renderSub(ctx, val)
	default:
		return ctx.placeholder(core.NewParam(val)), nil
	}
}

// renderRaw emits raw SQL: optional identifier quoting first, then each ?
// marker replaced with a dialect placeholder bound to the next value. The
// marker count must match the value count exactly. Fragment text (no quoting,
// no values) passes through verbatim, so a literal ? survives in operators
// like Postgres ?|.
func renderRaw(ctx *renderCtx, r *core.Raw) (string, error) {
	if !r.QuoteIdents && len(r.Values) == 0 {
		return r.SQL, nil
	}
	sql := r.SQL
	if r.QuoteIdents {
		sql = ctx.dialect().QuoteExprIdents(sql, ctx.resolveTable)
	}

	var sb strings.Builder
	sb.Grow(len(sql))
	bound := 0
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch ch {
		case '\'':
			// Copy string literals untouched, honoring '' escapes.
			sb.WriteByte(ch)
			for i++; i < len(sql); i++ {
				sb.WriteByte(sql[i])
				if sql[i] == '\'' {
					if i+1 < len(sql) && sql[i+1] == '\'' {
						i++
						sb.WriteByte(sql[i])
						continue
					}
					break
				}
			}
		case '?':
			if bound >= len(r.Values) {
				return "", fmt.Errorf("%w: expression %q has more ? markers than values", core.ErrArityMismatch, r.SQL)
			}
			sb.WriteString(ctx.placeholder(r.Values[bound]))
			bound++
		default:
			sb.WriteByte(ch)
		}
	}
	if bound != len(r.Values) {
		return "", fmt.Errorf("%w: expression %q binds %d of %d values", core.ErrArityMismatch, r.SQL, bound, len(r.Values))
	}
	return sb.String(), nil
}

// renderSub renders a nested statement in place, parenthesized, appending its
// parameters to the parent registry at the position they appear in the text.
func renderSub(ctx *renderCtx, sub *SelectQuery) (string, error) {
	if sub.err != nil {
		return "", sub.err
	}
	if !ctx.b.sameDatabase(sub.b) {
		return "", fmt.Errorf("%w: nested statement belongs to database %q, parent is %q",
			core.ErrCrossDatabaseNesting, sub.b.database, ctx.b.database)
	}
	subCtx := &renderCtx{b: sub.b, registry: ctx.registry, aliases: sub.aliasScope()}
	inner, err := sub.render(subCtx)
	if err != nil {
		return "", err
	}
	return "(" + inner + ")", nil
}

func nodeLogic(n core.CondNode) core.Logic {
	switch node := n.(type) {
	case *core.Comparison:
		return node.Logic
	case *core.Group:
		return node.Logic
	case *core.Raw:
		return node.Logic
	}
	return core.LogicAnd
}
