package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDialect() *Dialect {
	return NewDialect("test").
		WithReservedWords("order", "user", "is", "null", "left").
		Build()
}

func backtickDialect() *Dialect {
	return NewDialect("backtick").
		Identifiers("`", "`", "``", NormCaseSensitive).
		Build()
}

func TestQuoteIdentifier(t *testing.T) {
	d := testDialect()

	assert.Equal(t, `"users"`, d.QuoteIdentifier("users"))
	assert.Equal(t, "*", d.QuoteIdentifier("*"))
	// Embedded quote characters are escaped by doubling.
	assert.Equal(t, `"we""ird"`, d.QuoteIdentifier(`we"ird`))

	b := backtickDialect()
	assert.Equal(t, "`users`", b.QuoteIdentifier("users"))
}

func TestQuoteColumn(t *testing.T) {
	d := testDialect()

	assert.Equal(t, `"id"`, d.QuoteColumn("id"))
	assert.Equal(t, `"users"."id"`, d.QuoteColumn("users.id"))
	assert.Equal(t, `"u".*`, d.QuoteColumn("u.*"))
}

func TestFormatPlaceholder(t *testing.T) {
	question := testDialect()
	assert.Equal(t, "?", question.FormatPlaceholder(1))
	assert.Equal(t, "?", question.FormatPlaceholder(9))

	dollar := NewDialect("dollar").PlaceholderStyle(PlaceholderDollar).Build()
	assert.Equal(t, "$1", dollar.FormatPlaceholder(1))
	assert.Equal(t, "$12", dollar.FormatPlaceholder(12))
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		norm NormalizationStrategy
		in   string
		want string
	}{
		{NormLowercase, "MixedCase", "mixedcase"},
		{NormUppercase, "MixedCase", "MIXEDCASE"},
		{NormCaseSensitive, "MixedCase", "MixedCase"},
		{NormCaseInsensitive, "MixedCase", "mixedcase"},
	}
	for _, tt := range tests {
		d := NewDialect("n").Identifiers(`"`, `"`, `""`, tt.norm).Build()
		assert.Equal(t, tt.want, d.NormalizeName(tt.in))
	}
}

func TestIsReservedWord(t *testing.T) {
	d := testDialect()
	assert.True(t, d.IsReservedWord("order"))
	assert.True(t, d.IsReservedWord("ORDER"))
	assert.False(t, d.IsReservedWord("customers"))
}

func TestQuoteExprIdents(t *testing.T) {
	d := testDialect()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "dotted token quoted",
			in:   "users.age > 10",
			want: `"users"."age" > 10`,
		},
		{
			name: "bare words left alone",
			in:   "COUNT(id) > 5",
			want: "COUNT(id) > 5",
		},
		{
			name: "string literal untouched",
			in:   "name = 'users.id'",
			want: "name = 'users.id'",
		},
		{
			name: "escaped quote inside literal",
			in:   "note = 'it''s users.id' AND orders.total > 0",
			want: `note = 'it''s users.id' AND "orders"."total" > 0`,
		},
		{
			name: "function call not treated as table",
			in:   "LOWER(users.name) = 'bob'",
			want: `LOWER("users"."name") = 'bob'`,
		},
		{
			name: "placeholders preserved",
			in:   "orders.total * ? > orders.tax",
			want: `"orders"."total" * ? > "orders"."tax"`,
		},
		{
			name: "reserved bare word quoted",
			in:   "order + 1 > user",
			want: `"order" + 1 > "user"`,
		},
		{
			name: "reserved word normalized before quoting",
			in:   "ORDER > 10",
			want: `"order" > 10`,
		},
		{
			name: "grammar keywords pass through even when reserved",
			in:   "deleted_at IS NULL",
			want: "deleted_at IS NULL",
		},
		{
			name: "reserved word as function call untouched",
			in:   "left(name, 1) = 'a'",
			want: "left(name, 1) = 'a'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.QuoteExprIdents(tt.in, nil))
		})
	}
}

func TestQuoteExprIdentsResolve(t *testing.T) {
	d := testDialect()

	got := d.QuoteExprIdents("users.age > 10", func(table string) string {
		return "app_" + table
	})
	assert.Equal(t, `"app_users"."age" > 10`, got)
}

func TestRegistry(t *testing.T) {
	d, ok := Get("ansi")
	require.True(t, ok)
	assert.Equal(t, "ansi", d.GetName())

	_, ok = Get("no-such-dialect")
	assert.False(t, ok)

	assert.Contains(t, List(), "ansi")
	require.NotNil(t, Default())
}
