// Package qb provides Quill's statement builders: programmatic construction
// of SELECT/INSERT/UPDATE/DELETE statements across SQL dialects.
//
// A Builder is bound to one logical database (a dialect plus table-prefix
// rules). Statements are configured through chained calls and compiled with
// Build(), which returns the SQL text and the ordered parameter list; the Nth
// placeholder in the text always corresponds to the Nth parameter.
//
// Predicates (WHERE/HAVING/ON) accept several input shapes:
//
//	q.Where("status", "active")                         // column, value («=» implied)
//	q.Where("id", ">", 10)                              // column, operator, value
//	q.Where("id", "between", 10, 20)                    // four-argument BETWEEN form
//	q.Where(qb.M{"status": "active", "id": qb.M{">": 10}})
//	q.Where(qb.M{qb.Or: []any{qb.M{"id": 1}, qb.M{"id": 2}}})
//	q.Where(func(w *qb.Cond) { w.Where("a", 1).OrWhere("b", 2) })
//	q.Where(qb.Expr("price * ? > total", 2))
//	q.Where("id", "in", subQuery)
package qb

import (
	"log/slog"

	"github.com/leapstack-labs/quill/pkg/core"
	"github.com/leapstack-labs/quill/pkg/dialect"
)

// M is a map-shaped condition specification. Plain keys are column names
// whose values are either a scalar (compared with =), a nested M of
// operator→value pairs, or a parameter/expression/nested statement. The
// special keys Or and And introduce a named sub-group whose payload is a
// sequence of sub-specifications.
//
// Map entries are compiled in sorted key order so the same M always produces
// byte-identical SQL.
type M map[string]any

// Special M keys introducing a named boolean group.
const (
	Or  = "@or"
	And = "@and"
)

// Statement is any compiled statement: SQL text plus the ordered parameter
// list consumable by a prepared-statement API.
type Statement interface {
	Build() (sql string, params []core.BoundValue, err error)
}

// Builder constructs statements against one logical database.
type Builder struct {
	dialect  *dialect.Dialect
	prefix   string
	database string
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithTablePrefix sets a physical table-name prefix applied to every table
// reference at render time. Registered aliases are never prefixed.
func WithTablePrefix(prefix string) Option {
	return func(b *Builder) { b.prefix = prefix }
}

// WithDatabase names the logical database this builder belongs to. Nested
// statements must come from the same logical database as their parent;
// mixing databases is a compile-time error.
func WithDatabase(name string) Option {
	return func(b *Builder) { b.database = name }
}

// WithLogger sets the logger used for debug output (nil uses a discard logger).
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a Builder for the given dialect. A nil dialect selects the
// registered default (ANSI).
func New(d *dialect.Dialect, opts ...Option) *Builder {
	if d == nil {
		d = dialect.Default()
	}
	b := &Builder{
		dialect: d,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Dialect returns the dialect this builder renders against.
func (b *Builder) Dialect() *dialect.Dialect { return b.dialect }

// TablePrefix returns the configured physical table prefix.
func (b *Builder) TablePrefix() string { return b.prefix }

// Database returns the logical database name ("" if unnamed).
func (b *Builder) Database() string { return b.database }

// Select starts a SELECT statement. Columns may be column names, Ident,
// *core.Expr, *core.Frag, or nested *SelectQuery values; no columns means *.
func (b *Builder) Select(columns ...any) *SelectQuery {
	return &SelectQuery{b: b, columns: columns}
}

// Insert starts an INSERT statement for the given table.
func (b *Builder) Insert(table string) *InsertQuery {
	return &InsertQuery{b: b, table: table}
}

// Update starts an UPDATE statement for the given table.
func (b *Builder) Update(table string) *UpdateQuery {
	return &UpdateQuery{b: b, table: table}
}

// Delete starts a DELETE statement for the given table.
func (b *Builder) Delete(table string) *DeleteQuery {
	return &DeleteQuery{b: b, table: table}
}

// sameDatabase reports whether a nested statement's builder belongs to the
// same logical database as this one. Builders compare by identity first,
// then by database name, so two unnamed builders are considered the same
// logical database.
func (b *Builder) sameDatabase(other *Builder) bool {
	if b == other || other == nil {
		return true
	}
	return b.database == other.database
}

// ---------- Input constructors ----------

// Expr creates raw SQL whose embedded table.column identifiers are quoted at
// render time. Trailing values bind to the text's ? markers in order.
func Expr(sql string, values ...any) *core.Expr {
	return core.NewExpr(sql, values...)
}

// Frag creates raw SQL emitted verbatim, never quoted.
func Frag(sql string) *core.Frag {
	return core.NewFrag(sql)
}

// Param creates a mutable parameter cell. The cell can be mutated after the
// statement is configured; renders read its value at serialization time.
func Param(v any) *core.Param {
	return core.NewParam(v)
}

// TypedParam creates a parameter cell carrying a data-type hint.
func TypedParam(v any, typeHint string) *core.Param {
	return core.TypedParam(v, typeHint)
}

// Ident marks a string as a column reference instead of a bound value.
func Ident(name string) core.Ident {
	return core.Ident(name)
}
