package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/quill/pkg/core"
)

// buildErr asserts the statement fails to build with the given sentinel.
func buildErr(t *testing.T, stmt Statement, sentinel error) {
	t.Helper()
	_, _, err := stmt.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestUnsupportedOperator(t *testing.T) {
	b := New(ansi(t))

	buildErr(t, b.Select("id").From("users").Where("age", "~", 1), core.ErrUnsupportedOperator)
	buildErr(t, b.Select("id").From("users").Where("age", "REGEXP", "x"), core.ErrUnsupportedOperator)
	buildErr(t, b.Select("id").From("users").Where(M{"age": M{"!!": 1}}), core.ErrUnsupportedOperator)
}

func TestArityMismatch(t *testing.T) {
	b := New(ansi(t))

	// Missing value.
	buildErr(t, b.Select("id").From("users").Where("age"), core.ErrArityMismatch)
	// Four-argument form with a non-range operator.
	buildErr(t, b.Select("id").From("users").Where("age", ">", 1, 2), core.ErrArityMismatch)
	// BETWEEN without two bounds.
	buildErr(t, b.Select("id").From("users").Where("age", "between", 18), core.ErrArityMismatch)
	buildErr(t, b.Select("id").From("users").Where("age", "between", []any{1, 2, 3}), core.ErrArityMismatch)
	// IN with an empty sequence.
	buildErr(t, b.Select("id").From("users").Where("role", "in", []any{}), core.ErrArityMismatch)
	// IN with a scalar.
	buildErr(t, b.Select("id").From("users").Where("role", "in", "admin"), core.ErrArityMismatch)
	// NULL with an ordering operator.
	buildErr(t, b.Select("id").From("users").Where("age", ">", nil), core.ErrArityMismatch)
	// IS with a non-boolean.
	buildErr(t, b.Select("id").From("users").Where("age", "is", 5), core.ErrArityMismatch)
}

func TestEmptyIdentifier(t *testing.T) {
	b := New(ansi(t))

	buildErr(t, b.Select("id").From("users").Where("", 1), core.ErrEmptyIdentifier)
	buildErr(t, b.Select("id").From("users").Where("  ", ">", 1), core.ErrEmptyIdentifier)
	buildErr(t, b.Select("id").From("users").Where(M{"": 1}), core.ErrEmptyIdentifier)
	buildErr(t, b.Select("id").From(""), core.ErrEmptyIdentifier)
}

func TestInvalidGroupSpec(t *testing.T) {
	b := New(ansi(t))

	// Named group payload must be a sequence.
	buildErr(t, b.Select("id").From("users").Where(M{Or: 5}), core.ErrInvalidGroupSpec)
	// Unsupported condition input.
	buildErr(t, b.Select("id").From("users").Where(42), core.ErrInvalidGroupSpec)
	// Raw sequence value needs an explicit operator.
	buildErr(t, b.Select("id").From("users").Where(M{"role": []any{"a", "b"}}), core.ErrInvalidGroupSpec)
	// Same rule through the positional forms: a sequence never binds as one cell.
	buildErr(t, b.Select("id").From("users").Where("role", []string{"a", "b"}), core.ErrInvalidGroupSpec)
	buildErr(t, b.Select("id").From("users").Where("role", "=", []int{1, 2}), core.ErrInvalidGroupSpec)
	// Empty operator map.
	buildErr(t, b.Select("id").From("users").Where(M{"age": M{}}), core.ErrInvalidGroupSpec)
	// Trailing arguments after a condition map.
	buildErr(t, b.Select("id").From("users").Where(M{"a": 1}, "b"), core.ErrInvalidGroupSpec)
}

func TestCrossDatabaseNesting(t *testing.T) {
	main := New(ansi(t), WithDatabase("main"))
	analytics := New(ansi(t), WithDatabase("analytics"))

	sub := analytics.Select("id").From("events")
	buildErr(t, main.Select("id").From("users").Where("id", "in", sub), core.ErrCrossDatabaseNesting)

	// Same logical database is fine even across builder instances.
	alsoMain := New(ansi(t), WithDatabase("main"))
	sub2 := alsoMain.Select("id").From("events")
	_, _, err := main.Select("id").From("users").Where("id", "in", sub2).Build()
	require.NoError(t, err)
}

func TestFirstErrorWins(t *testing.T) {
	b := New(ansi(t))

	q := b.Select("id").From("users").
		Where("age", "~", 1). // first error: unsupported operator
		Where("")             // would be empty identifier

	_, _, err := q.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedOperator)
	assert.NotErrorIs(t, err, core.ErrEmptyIdentifier)
}

func TestCondErrSurfaces(t *testing.T) {
	b := New(ansi(t))

	buildErr(t, b.Select("id").From("users").Where(func(w *Cond) {
		w.Where("age", "bogus", 1)
	}), core.ErrUnsupportedOperator)
}

func TestExprPlaceholderCountMismatch(t *testing.T) {
	b := New(ansi(t))

	// More markers than values.
	buildErr(t, b.Select("id").From("t").Where(Expr("a = ? AND b = ?", 1)), core.ErrArityMismatch)
	// More values than markers.
	buildErr(t, b.Select("id").From("t").Where(Expr("a = ?", 1, 2)), core.ErrArityMismatch)
}

func TestExprMarkersInsideLiteralsIgnored(t *testing.T) {
	b := New(ansi(t))

	sqlStr, params := build(t, b.Select("id").
		From("t").
		Where(Expr("note = 'what?' AND a = ?", 1)))

	assert.Equal(t, `SELECT "id" FROM "t" WHERE note = 'what?' AND a = ?`, sqlStr)
	assert.Equal(t, []any{1}, params)
}

func TestOperatorArgTypes(t *testing.T) {
	b := New(ansi(t))

	// core.Operator values are accepted directly.
	sqlStr, _ := build(t, b.Select("id").From("t").Where("a", core.OpGtEq, 1))
	assert.Equal(t, `SELECT "id" FROM "t" WHERE "a" >= ?`, sqlStr)

	// Anything else is rejected.
	buildErr(t, b.Select("id").From("t").Where("a", 42, 1), core.ErrUnsupportedOperator)
}

func TestTypedSlicesAccepted(t *testing.T) {
	b := New(ansi(t))

	sqlStr, params := build(t, b.Select("id").
		From("t").
		Where("n", "in", []int{1, 2, 3}))

	assert.Equal(t, `SELECT "id" FROM "t" WHERE "n" IN (?, ?, ?)`, sqlStr)
	assert.Equal(t, []any{1, 2, 3}, params)
}

func TestByteSliceIsScalar(t *testing.T) {
	b := New(ansi(t))

	blob := []byte{0x01, 0x02}
	sqlStr, params := build(t, b.Select("id").From("t").Where("payload", blob))

	assert.Equal(t, `SELECT "id" FROM "t" WHERE "payload" = ?`, sqlStr)
	require.Len(t, params, 1)
	assert.Equal(t, blob, params[0])
}
