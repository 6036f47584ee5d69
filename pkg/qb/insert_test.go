package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/quill/pkg/core"
)

func TestInsertColumnsValues(t *testing.T) {
	b := New(ansi(t))

	sqlStr, params := build(t, b.Insert("users").
		Columns("id", "name").
		Values(1, "ada").
		Values(2, "grace"))

	assert.Equal(t, `INSERT INTO "users" ("id", "name") VALUES (?, ?), (?, ?)`, sqlStr)
	assert.Equal(t, []any{1, "ada", 2, "grace"}, params)
}

func TestInsertSet(t *testing.T) {
	b := New(ansi(t))

	sqlStr, params := build(t, b.Insert("users").
		Set(M{"name": "ada", "age": 36}))

	// Set columns render in sorted order.
	assert.Equal(t, `INSERT INTO "users" ("age", "name") VALUES (?, ?)`, sqlStr)
	assert.Equal(t, []any{36, "ada"}, params)
}

func TestInsertSetMerges(t *testing.T) {
	b := New(ansi(t))

	sqlStr, params := build(t, b.Insert("users").
		Set(M{"name": "ada"}).
		Set(M{"name": "grace", "age": 36}))

	assert.Equal(t, `INSERT INTO "users" ("age", "name") VALUES (?, ?)`, sqlStr)
	assert.Equal(t, []any{36, "grace"}, params)
}

func TestInsertExprValue(t *testing.T) {
	b := New(ansi(t))

	sqlStr, params := build(t, b.Insert("events").
		Columns("name", "created_at").
		Values("signup", Frag("CURRENT_TIMESTAMP")))

	assert.Equal(t, `INSERT INTO "events" ("name", "created_at") VALUES (?, CURRENT_TIMESTAMP)`, sqlStr)
	assert.Equal(t, []any{"signup"}, params)
}

func TestInsertErrors(t *testing.T) {
	b := New(ansi(t))

	// Row width must match the column list.
	buildErr(t, b.Insert("users").Columns("id", "name").Values(1), core.ErrArityMismatch)
	// Values before Columns.
	buildErr(t, b.Insert("users").Values(1), core.ErrInvalidGroupSpec)
	// Mixing Set with Columns.
	buildErr(t, b.Insert("users").Columns("id").Set(M{"id": 1}), core.ErrInvalidGroupSpec)
	// No rows at all.
	buildErr(t, b.Insert("users"), core.ErrInvalidGroupSpec)
	// Blank table.
	buildErr(t, b.Insert("").Set(M{"id": 1}), core.ErrEmptyIdentifier)
}

func TestInsertWithPostgresPlaceholders(t *testing.T) {
	d := dollarDialect()
	b := New(d)

	sqlStr, params := build(t, b.Insert("users").
		Columns("id", "name").
		Values(1, "ada"))

	assert.Equal(t, `INSERT INTO "users" ("id", "name") VALUES ($1, $2)`, sqlStr)
	assert.Equal(t, []any{1, "ada"}, params)
}
