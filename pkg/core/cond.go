package core

// Logic joins a condition node to its preceding sibling.
type Logic string

// Logic constants for combining sibling condition nodes.
const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// ---------- Condition Tree ----------

// CondNode is one node of a predicate tree (WHERE/HAVING/ON). It is a closed
// union: Comparison, Group, or Raw. Every non-root node carries the Logic
// keyword that attaches it to the sibling before it; the first child's Logic
// is ignored at render time.
type CondNode interface {
	condNode()
}

// Comparison is a single column/operator/value test. Column is an Identifier
// (dotted string), an *Expr, or a nested statement; Value is a *Param, an
// Identifier, an *Expr, a *Frag, a nested statement, or a sequence of values
// for IN/BETWEEN.
type Comparison struct {
	Logic  Logic
	Column any
	Op     Operator
	Value  any
}

func (*Comparison) condNode() {}

// Group is an ordered sequence of condition nodes. A materialized Group is
// never empty; empty input groups are dropped before they reach the tree.
type Group struct {
	Logic Logic
	Nodes []CondNode
}

func (*Group) condNode() {}

// Add appends a node to the group.
func (g *Group) Add(n CondNode) { g.Nodes = append(g.Nodes, n) }

// Empty returns true if the group has no children.
func (g *Group) Empty() bool { return len(g.Nodes) == 0 }

// Raw is caller-supplied SQL text. When QuoteIdents is true (Expr input) the
// renderer quotes dotted identifiers inside the text; when false (Frag input)
// the text is emitted verbatim. Values bind to the text's ? markers in order.
type Raw struct {
	Logic       Logic
	SQL         string
	QuoteIdents bool
	Values      []*Param
}

func (*Raw) condNode() {}

// ---------- Raw expression inputs ----------

// Ident is a dotted identifier (table.column or alias.column). Resolution
// against the active table prefix and alias map happens at render time, so a
// tree built once renders correctly under any dialect.
type Ident string

// Expr is raw SQL whose embedded identifiers are quoted at render time.
// Trailing values bind to the text's ? markers in order.
type Expr struct {
	SQL    string
	Values []*Param
}

// NewExpr creates a raw expression. Each value is wrapped into its own
// parameter cell unless it already is one.
func NewExpr(sql string, values ...any) *Expr {
	e := &Expr{SQL: sql}
	for _, v := range values {
		if p, ok := v.(*Param); ok {
			e.Values = append(e.Values, p)
			continue
		}
		e.Values = append(e.Values, NewParam(v))
	}
	return e
}

// Frag is raw SQL emitted verbatim, never quoted.
type Frag struct {
	SQL string
}

// NewFrag creates a verbatim SQL fragment.
func NewFrag(sql string) *Frag {
	return &Frag{SQL: sql}
}
