package qb

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/leapstack-labs/quill/pkg/core"
)

// Cond assembles one boolean group of a predicate tree. It is handed to
// closure-shaped condition inputs so callers can express explicit grouping:
//
//	q.Where(func(w *qb.Cond) {
//	    w.Where("status", "active").OrWhere("role", "admin")
//	})
type Cond struct {
	b         *Builder
	group     *core.Group
	identMode bool
	err       error
}

func newCond(b *Builder, identMode bool) *Cond {
	return &Cond{b: b, group: &core.Group{Logic: core.LogicAnd}, identMode: identMode}
}

// Where appends a condition joined with AND.
func (c *Cond) Where(args ...any) *Cond { return c.add(core.LogicAnd, args) }

// AndWhere is an explicit alias of Where.
func (c *Cond) AndWhere(args ...any) *Cond { return c.add(core.LogicAnd, args) }

// OrWhere appends a condition joined with OR.
func (c *Cond) OrWhere(args ...any) *Cond { return c.add(core.LogicOr, args) }

// Err returns the first compile error recorded on this group.
func (c *Cond) Err() error { return c.err }

func (c *Cond) add(logic core.Logic, args []any) *Cond {
	if c.err != nil {
		return c
	}
	if err := compileInto(c.b, c.group, logic, c.identMode, args); err != nil {
		c.err = err
	}
	return c
}

// compileInto translates one Where-style argument list into condition nodes
// appended to dst. logic is the joiner binding the new node to its preceding
// sibling. identMode treats bare string values as column references, which is
// the default inside JOIN ... ON clauses.
func compileInto(b *Builder, dst *core.Group, logic core.Logic, identMode bool, args []any) error {
	if len(args) == 0 {
		return nil
	}
	switch first := args[0].(type) {
	case string:
		return compileColumn(b, dst, logic, identMode, first, args[1:])
	case core.Ident:
		return compileColumn(b, dst, logic, identMode, string(first), args[1:])
	case M:
		if len(args) > 1 {
			return fmt.Errorf("%w: unexpected arguments after condition map", core.ErrInvalidGroupSpec)
		}
		return compileMap(b, dst, logic, identMode, first)
	case map[string]any:
		if len(args) > 1 {
			return fmt.Errorf("%w: unexpected arguments after condition map", core.ErrInvalidGroupSpec)
		}
		return compileMap(b, dst, logic, identMode, first)
	case func(*Cond):
		sub := newCond(b, identMode)
		first(sub)
		if sub.err != nil {
			return sub.err
		}
		if !sub.group.Empty() {
			sub.group.Logic = logic
			dst.Add(sub.group)
		}
		return nil
	case *core.Expr:
		dst.Add(&core.Raw{Logic: logic, SQL: first.SQL, QuoteIdents: true, Values: first.Values})
		return nil
	case *core.Frag:
		dst.Add(&core.Raw{Logic: logic, SQL: first.SQL})
		return nil
	case *SelectQuery:
		if len(args) < 2 {
			return fmt.Errorf("%w: nested statement used as a column needs an operator and value", core.ErrInvalidGroupSpec)
		}
		return compileColumn(b, dst, logic, identMode, first, args[1:])
	case nil:
		return fmt.Errorf("%w: nil condition", core.ErrInvalidGroupSpec)
	default:
		return fmt.Errorf("%w: unsupported condition input %T", core.ErrInvalidGroupSpec, first)
	}
}

// compileColumn handles the positional forms:
//
//	(column, value)                  =
//	(column, operator, value)
//	(column, operator, low, high)    BETWEEN / NOT BETWEEN only
func compileColumn(b *Builder, dst *core.Group, logic core.Logic, identMode bool, column any, rest []any) error {
	if s, ok := column.(string); ok && strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: blank column name", core.ErrEmptyIdentifier)
	}
	if sub, ok := column.(*SelectQuery); ok {
		if err := checkNested(b, sub); err != nil {
			return err
		}
	}

	var (
		op    core.Operator
		value any
		err   error
	)
	switch len(rest) {
	case 0:
		return fmt.Errorf("%w: missing value for column %v", core.ErrArityMismatch, column)
	case 1:
		op, value = core.OpEq, rest[0]
	case 2:
		if op, err = parseOperatorArg(rest[0]); err != nil {
			return err
		}
		value = rest[1]
	case 3:
		if op, err = parseOperatorArg(rest[0]); err != nil {
			return err
		}
		if !op.IsRange() {
			return fmt.Errorf("%w: four-argument form is only valid for BETWEEN, got %s", core.ErrArityMismatch, op)
		}
		value = []any{rest[1], rest[2]}
	default:
		return fmt.Errorf("%w: too many arguments for column %v", core.ErrArityMismatch, column)
	}

	node, err := makeComparison(b, logic, identMode, column, op, value)
	if err != nil {
		return err
	}
	dst.Add(node)
	return nil
}

// compileMap translates a map specification. Entries are processed in sorted
// key order; map shape never influences the emitted SQL.
func compileMap(b *Builder, dst *core.Group, logic core.Logic, identMode bool, m map[string]any) error {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	inner := &core.Group{Logic: logic}
	for _, key := range keys {
		switch key {
		case Or, And:
			childLogic := core.LogicOr
			if key == And {
				childLogic = core.LogicAnd
			}
			specs, ok := toSlice(m[key])
			if !ok {
				return fmt.Errorf("%w: %s payload must be a sequence of sub-specifications", core.ErrInvalidGroupSpec, key)
			}
			sub := &core.Group{Logic: core.LogicAnd}
			for _, spec := range specs {
				if err := compileInto(b, sub, childLogic, identMode, []any{spec}); err != nil {
					return err
				}
			}
			if !sub.Empty() {
				inner.Add(sub)
			}
		default:
			if strings.TrimSpace(key) == "" {
				return fmt.Errorf("%w: blank column name in condition map", core.ErrEmptyIdentifier)
			}
			if err := compileMapEntry(b, inner, identMode, key, m[key]); err != nil {
				return err
			}
		}
	}

	switch len(inner.Nodes) {
	case 0:
		return nil
	case 1:
		// A one-entry map adds no grouping of its own.
		setLogic(inner.Nodes[0], logic)
		dst.Add(inner.Nodes[0])
	default:
		dst.Add(inner)
	}
	return nil
}

func compileMapEntry(b *Builder, dst *core.Group, identMode bool, column string, spec any) error {
	switch v := spec.(type) {
	case M:
		return compileOperatorMap(b, dst, identMode, column, v)
	case map[string]any:
		return compileOperatorMap(b, dst, identMode, column, v)
	default:
		if _, isSeq := toSlice(spec); isSeq {
			return fmt.Errorf("%w: sequence value for column %s needs an explicit IN or BETWEEN operator", core.ErrInvalidGroupSpec, column)
		}
		node, err := makeComparison(b, core.LogicAnd, identMode, column, core.OpEq, spec)
		if err != nil {
			return err
		}
		dst.Add(node)
		return nil
	}
}

// compileOperatorMap handles the {"column": {">": 10, "<=": 20}} shape.
// Multiple operators on one column join with AND.
func compileOperatorMap(b *Builder, dst *core.Group, identMode bool, column string, ops map[string]any) error {
	if len(ops) == 0 {
		return fmt.Errorf("%w: empty operator map for column %s", core.ErrInvalidGroupSpec, column)
	}
	tokens := make([]string, 0, len(ops))
	for tok := range ops {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	for _, tok := range tokens {
		op, err := core.ParseOperator(tok)
		if err != nil {
			return err
		}
		node, err := makeComparison(b, core.LogicAnd, identMode, column, op, ops[tok])
		if err != nil {
			return err
		}
		dst.Add(node)
	}
	return nil
}

// makeComparison validates operator/value arity and wraps the value per the
// binding rules, producing the canonical comparison node.
func makeComparison(b *Builder, logic core.Logic, identMode bool, column any, op core.Operator, value any) (*core.Comparison, error) {
	switch {
	case op == core.OpIs || op == core.OpIsNot:
		switch value.(type) {
		case nil, bool:
		default:
			return nil, fmt.Errorf("%w: %s requires NULL or a boolean, got %T", core.ErrArityMismatch, op, value)
		}
		return &core.Comparison{Logic: logic, Column: column, Op: op, Value: value}, nil

	case op.IsRange():
		pair, ok := toSlice(value)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("%w: %s requires exactly two bounds", core.ErrArityMismatch, op)
		}
		wrapped := make([]any, 2)
		for i, bound := range pair {
			w, err := wrapValue(b, identMode, bound)
			if err != nil {
				return nil, err
			}
			wrapped[i] = w
		}
		return &core.Comparison{Logic: logic, Column: column, Op: op, Value: wrapped}, nil

	case op.IsSet():
		if sub, ok := value.(*SelectQuery); ok {
			if err := checkNested(b, sub); err != nil {
				return nil, err
			}
			return &core.Comparison{Logic: logic, Column: column, Op: op, Value: sub}, nil
		}
		elems, ok := toSlice(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires a sequence or a nested statement", core.ErrArityMismatch, op)
		}
		if len(elems) == 0 {
			return nil, fmt.Errorf("%w: %s requires a non-empty sequence", core.ErrArityMismatch, op)
		}
		wrapped := make([]any, len(elems))
		for i, e := range elems {
			w, err := wrapValue(b, identMode, e)
			if err != nil {
				return nil, err
			}
			wrapped[i] = w
		}
		return &core.Comparison{Logic: logic, Column: column, Op: op, Value: wrapped}, nil

	default:
		if value == nil {
			// NULL comparisons normalize at render time (= becomes IS).
			return &core.Comparison{Logic: logic, Column: column, Op: op, Value: nil}, nil
		}
		if _, isSeq := toSlice(value); isSeq {
			return nil, fmt.Errorf("%w: sequence value for column %v needs an explicit IN or BETWEEN operator", core.ErrInvalidGroupSpec, column)
		}
		w, err := wrapValue(b, identMode, value)
		if err != nil {
			return nil, err
		}
		return &core.Comparison{Logic: logic, Column: column, Op: op, Value: w}, nil
	}
}

// wrapValue applies the binding rules: scalars become fresh parameter cells,
// existing cells and expression inputs pass through, and in identMode bare
// strings become column references.
func wrapValue(b *Builder, identMode bool, v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *core.Param, core.Ident, *core.Expr, *core.Frag:
		return x, nil
	case *SelectQuery:
		if err := checkNested(b, x); err != nil {
			return nil, err
		}
		return x, nil
	default:
		if identMode {
			if s, ok := x.(string); ok {
				return core.Ident(s), nil
			}
		}
		return core.NewParam(x), nil
	}
}

func checkNested(b *Builder, sub *SelectQuery) error {
	if sub == nil {
		return fmt.Errorf("%w: nil nested statement", core.ErrInvalidGroupSpec)
	}
	if !b.sameDatabase(sub.b) {
		return fmt.Errorf("%w: nested statement belongs to database %q, parent is %q",
			core.ErrCrossDatabaseNesting, sub.b.database, b.database)
	}
	return nil
}

func parseOperatorArg(arg any) (core.Operator, error) {
	switch v := arg.(type) {
	case core.Operator:
		return core.ParseOperator(string(v))
	case string:
		return core.ParseOperator(v)
	default:
		return "", fmt.Errorf("%w: operator must be a string, got %T", core.ErrUnsupportedOperator, arg)
	}
}

func setLogic(n core.CondNode, logic core.Logic) {
	switch node := n.(type) {
	case *core.Comparison:
		node.Logic = logic
	case *core.Group:
		node.Logic = logic
	case *core.Raw:
		node.Logic = logic
	}
}

// toSlice reports whether v is a sequence and returns its elements. Strings
// and byte slices are scalars, not sequences.
func toSlice(v any) ([]any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case []any:
		return x, true
	case []byte, string:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
