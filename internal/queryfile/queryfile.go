// Package queryfile translates declarative YAML query descriptions into
// statements. It backs the render and exec commands, letting queries live in
// version-controlled files:
//
//	select:
//	  from: users u
//	  columns: [u.id, u.name]
//	  joins:
//	    - kind: left
//	      table: orders o
//	      on: [{left: u.id, right: o.user_id}]
//	  where:
//	    - {column: status, op: "=", value: active}
//	    - or:
//	        - {column: role, op: "=", value: admin}
//	        - {column: id, op: in, values: [1, 2, 3]}
//	  order_by: [{column: u.created_at, dir: desc}]
//	  limit: 10
package queryfile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/quill/pkg/qb"
)

// File is one parsed query file. Exactly one statement section must be set.
type File struct {
	Select *SelectSpec `yaml:"select"`
	Insert *InsertSpec `yaml:"insert"`
	Update *UpdateSpec `yaml:"update"`
	Delete *DeleteSpec `yaml:"delete"`
}

// CondSpec is one predicate entry. Exactly one of Column, Expr, Or, or And
// is expected. Logic sets the joiner to the preceding entry (default and).
type CondSpec struct {
	Logic  string `yaml:"logic"`
	Column string `yaml:"column"`
	Op     string `yaml:"op"`
	Value  any    `yaml:"value"`
	Values []any  `yaml:"values"`

	Expr     string `yaml:"expr"`
	ExprArgs []any  `yaml:"args"`

	Or  []CondSpec `yaml:"or"`
	And []CondSpec `yaml:"and"`
}

// OnSpec is one JOIN condition: two column references, or a column and a
// bound value.
type OnSpec struct {
	Logic string `yaml:"logic"`
	Left  string `yaml:"left"`
	Op    string `yaml:"op"`
	Right string `yaml:"right"`
	Value any    `yaml:"value"`
}

// JoinSpec is one JOIN clause.
type JoinSpec struct {
	Kind  string   `yaml:"kind"`
	Table string   `yaml:"table"`
	On    []OnSpec `yaml:"on"`
}

// OrderSpec is one ORDER BY term.
type OrderSpec struct {
	Column string `yaml:"column"`
	Dir    string `yaml:"dir"`
}

// SelectSpec describes a SELECT statement.
type SelectSpec struct {
	From     string      `yaml:"from"`
	Distinct bool        `yaml:"distinct"`
	Columns  []string    `yaml:"columns"`
	Joins    []JoinSpec  `yaml:"joins"`
	Where    []CondSpec  `yaml:"where"`
	GroupBy  []string    `yaml:"group_by"`
	Having   []CondSpec  `yaml:"having"`
	OrderBy  []OrderSpec `yaml:"order_by"`
	Limit    *int64      `yaml:"limit"`
	Offset   *int64      `yaml:"offset"`
}

// InsertSpec describes an INSERT statement.
type InsertSpec struct {
	Table string           `yaml:"table"`
	Set   map[string]any   `yaml:"set"`
	Rows  []map[string]any `yaml:"rows"`
}

// UpdateSpec describes an UPDATE statement.
type UpdateSpec struct {
	Table string         `yaml:"table"`
	Set   map[string]any `yaml:"set"`
	Where []CondSpec     `yaml:"where"`
	Limit *int64         `yaml:"limit"`
}

// DeleteSpec describes a DELETE statement.
type DeleteSpec struct {
	Table string     `yaml:"table"`
	Where []CondSpec `yaml:"where"`
	Limit *int64     `yaml:"limit"`
}

// Parse decodes one query file.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse query file: %w", err)
	}
	sections := 0
	for _, set := range []bool{f.Select != nil, f.Insert != nil, f.Update != nil, f.Delete != nil} {
		if set {
			sections++
		}
	}
	if sections != 1 {
		return nil, fmt.Errorf("query file must contain exactly one of select, insert, update or delete")
	}
	return &f, nil
}

// ParseFile reads and decodes a query file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}
	return Parse(data)
}

// Statement translates the file into a buildable statement on b.
func (f *File) Statement(b *qb.Builder) (qb.Statement, error) {
	switch {
	case f.Select != nil:
		return f.Select.statement(b)
	case f.Insert != nil:
		return f.Insert.statement(b)
	case f.Update != nil:
		return f.Update.statement(b)
	case f.Delete != nil:
		return f.Delete.statement(b)
	}
	return nil, fmt.Errorf("query file contains no statement")
}

func (s *SelectSpec) statement(b *qb.Builder) (qb.Statement, error) {
	cols := make([]any, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c
	}
	q := b.Select(cols...).From(s.From)
	if s.Distinct {
		q.Distinct()
	}
	for _, j := range s.Joins {
		if err := applyJoin(q, j); err != nil {
			return nil, err
		}
	}
	applyConds(s.Where, func(args ...any) { q.Where(args...) }, func(args ...any) { q.OrWhere(args...) })
	if len(s.GroupBy) > 0 {
		q.GroupBy(s.GroupBy...)
	}
	applyConds(s.Having, func(args ...any) { q.Having(args...) }, func(args ...any) { q.OrHaving(args...) })
	for _, o := range s.OrderBy {
		q.OrderBy(o.Column, o.Dir)
	}
	if s.Limit != nil {
		q.Limit(*s.Limit)
	}
	if s.Offset != nil {
		q.Offset(*s.Offset)
	}
	return q, q.Err()
}

func applyJoin(q *qb.SelectQuery, j JoinSpec) error {
	switch strings.ToLower(strings.TrimSpace(j.Kind)) {
	case "", "inner":
		q.Join(j.Table)
	case "left":
		q.LeftJoin(j.Table)
	case "right":
		q.RightJoin(j.Table)
	case "full":
		q.FullJoin(j.Table)
	case "cross":
		q.CrossJoin(j.Table)
		if len(j.On) > 0 {
			return fmt.Errorf("cross join %q takes no on conditions", j.Table)
		}
		return nil
	default:
		return fmt.Errorf("unknown join kind %q", j.Kind)
	}
	for _, on := range j.On {
		op := on.Op
		if op == "" {
			op = "="
		}
		or := strings.EqualFold(on.Logic, "or")
		switch {
		case on.Right != "":
			if or {
				q.OrOn(on.Left, op, on.Right)
			} else {
				q.On(on.Left, op, on.Right)
			}
		default:
			if or {
				q.OrOnWhere(on.Left, op, on.Value)
			} else {
				q.OnWhere(on.Left, op, on.Value)
			}
		}
	}
	return nil
}

func (s *InsertSpec) statement(b *qb.Builder) (qb.Statement, error) {
	q := b.Insert(s.Table)
	switch {
	case len(s.Rows) > 0:
		if len(s.Set) > 0 {
			return nil, fmt.Errorf("insert takes either set or rows, not both")
		}
		// All rows share the sorted column set of the first row.
		columns := sortedKeys(s.Rows[0])
		q.Columns(columns...)
		for _, row := range s.Rows {
			values := make([]any, len(columns))
			for i, col := range columns {
				v, ok := row[col]
				if !ok {
					return nil, fmt.Errorf("insert row missing column %q", col)
				}
				values[i] = v
			}
			q.Values(values...)
		}
	case len(s.Set) > 0:
		q.Set(qb.M(s.Set))
	default:
		return nil, fmt.Errorf("insert requires set or rows")
	}
	return q, q.Err()
}

func (s *UpdateSpec) statement(b *qb.Builder) (qb.Statement, error) {
	q := b.Update(s.Table).Set(qb.M(s.Set))
	applyConds(s.Where, func(args ...any) { q.Where(args...) }, func(args ...any) { q.OrWhere(args...) })
	if s.Limit != nil {
		q.Limit(*s.Limit)
	}
	return q, q.Err()
}

func (s *DeleteSpec) statement(b *qb.Builder) (qb.Statement, error) {
	q := b.Delete(s.Table)
	applyConds(s.Where, func(args ...any) { q.Where(args...) }, func(args ...any) { q.OrWhere(args...) })
	if s.Limit != nil {
		q.Limit(*s.Limit)
	}
	return q, q.Err()
}

// applyConds feeds each spec into the statement through the and/or entry
// points. Builders record the first error internally, so no error plumbing
// is needed here.
func applyConds(specs []CondSpec, and func(args ...any), or func(args ...any)) {
	for _, spec := range specs {
		args := spec.args()
		if strings.EqualFold(spec.Logic, "or") {
			or(args...)
		} else {
			and(args...)
		}
	}
}

// args converts one spec into Where-style arguments.
func (c CondSpec) args() []any {
	switch {
	case len(c.Or) > 0:
		return []any{groupClosure(c.Or, true)}
	case len(c.And) > 0:
		return []any{groupClosure(c.And, false)}
	case c.Expr != "":
		return []any{qb.Expr(c.Expr, c.ExprArgs...)}
	default:
		op := c.Op
		if op == "" {
			op = "="
		}
		if len(c.Values) > 0 {
			return []any{c.Column, op, c.Values}
		}
		return []any{c.Column, op, c.Value}
	}
}

// groupClosure wraps specs in an explicit group. defaultOr sets the joiner
// used between entries that do not name one themselves.
func groupClosure(specs []CondSpec, defaultOr bool) func(*qb.Cond) {
	return func(w *qb.Cond) {
		for i, spec := range specs {
			args := spec.args()
			or := defaultOr && i > 0
			if spec.Logic != "" {
				or = strings.EqualFold(spec.Logic, "or")
			}
			if or {
				w.OrWhere(args...)
			} else {
				w.Where(args...)
			}
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
