package qb

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/quill/pkg/dialect"

	// Register the engine dialects under test.
	_ "github.com/leapstack-labs/quill/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/quill/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/quill/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/quill/pkg/dialects/sqlite"
)

// complexQuery assembles one statement touching every rendering rule:
// joins, nested groups, a subquery, an operator map, raw expressions,
// grouping and pagination.
func complexQuery(b *Builder) *SelectQuery {
	sub := b.Select("user_id").From("orders").Where("total", ">", 100)
	return b.Select("u.id", "u.name", "r.label").
		From("users u").
		LeftJoin("roles r").On("r.id", "u.role_id").
		Where("u.status", "active").
		OrWhere(func(w *Cond) {
			w.Where("u.vip", "is", true).Where("u.id", "in", sub)
		}).
		Where(M{"u.age": M{"<": 65, ">=": 18}}).
		GroupBy("u.id", "u.name", "r.label").
		Having(Expr("COUNT(*) > ?", 1)).
		OrderBy("u.name").
		Limit(50).
		Offset(10)
}

func TestComplexQueryPerDialect(t *testing.T) {
	for _, name := range []string{"ansi", "postgres", "mysql", "sqlite", "duckdb"} {
		t.Run(name, func(t *testing.T) {
			d, ok := dialect.Get(name)
			require.True(t, ok)

			sqlStr, params, err := complexQuery(New(d)).Build()
			require.NoError(t, err)

			var buf bytes.Buffer
			fmt.Fprintln(&buf, sqlStr)
			fmt.Fprintln(&buf, "-- params:")
			for i, p := range params {
				fmt.Fprintf(&buf, "--   %d: %v\n", i+1, p.Value)
			}

			g := goldie.New(t)
			g.Assert(t, "complex_"+name, buf.Bytes())
		})
	}
}
