package core

// Param is a single mutable value cell bound to one placeholder position.
// Identity matters, not just value: the same *Param can be shared between
// statements or mutated after a statement is configured, so the condition
// tree holds the cell itself and renderers read its current value only at
// final serialization.
type Param struct {
	value    any
	typeHint string
}

// NewParam creates a parameter cell holding v.
func NewParam(v any) *Param {
	return &Param{value: v}
}

// TypedParam creates a parameter cell with a declared data-type hint.
// The hint is carried through to the execution boundary untouched.
func TypedParam(v any, typeHint string) *Param {
	return &Param{value: v, typeHint: typeHint}
}

// Set replaces the current value. Safe to call between builds; the next
// render reflects the new value.
func (p *Param) Set(v any) { p.value = v }

// Value returns the current value.
func (p *Param) Value() any { return p.value }

// TypeHint returns the declared data-type hint, or "" if none was given.
func (p *Param) TypeHint() string { return p.typeHint }

// BoundValue is one entry of a compiled statement's parameter list: the
// value read at render time plus its optional type hint. The Nth placeholder
// in the rendered SQL corresponds to the Nth BoundValue.
type BoundValue struct {
	Value    any
	TypeHint string
}

// Registry owns the ordered parameter cells touched by one statement render.
// Cells are appended in placeholder order as clauses are serialized.
type Registry struct {
	params []*Param
}

// Add appends a cell and returns its 1-based placeholder index.
func (r *Registry) Add(p *Param) int {
	r.params = append(r.params, p)
	return len(r.params)
}

// Len returns the number of registered cells.
func (r *Registry) Len() int { return len(r.params) }

// Params returns the registered cells in placeholder order.
func (r *Registry) Params() []*Param { return r.params }

// BoundValues reads every cell's current value, in placeholder order.
// This is the final-serialization read: mutations to a cell after the
// statement was configured are visible here.
func (r *Registry) BoundValues() []BoundValue {
	out := make([]BoundValue, len(r.params))
	for i, p := range r.params {
		out[i] = BoundValue{Value: p.Value(), TypeHint: p.TypeHint()}
	}
	return out
}

// Values extracts the plain values of a bound-value list, in order. This is
// the shape prepared-statement APIs consume.
func Values(bvs []BoundValue) []any {
	out := make([]any, len(bvs))
	for i, bv := range bvs {
		out[i] = bv.Value
	}
	return out
}
