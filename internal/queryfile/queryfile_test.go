package queryfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/quill/pkg/core"
	"github.com/leapstack-labs/quill/pkg/qb"
)

func buildFile(t *testing.T, src string) (string, []any) {
	t.Helper()
	f, err := Parse([]byte(src))
	require.NoError(t, err)
	stmt, err := f.Statement(qb.New(nil))
	require.NoError(t, err)
	sqlStr, params, err := stmt.Build()
	require.NoError(t, err)
	return sqlStr, core.Values(params)
}

func TestSelectFile(t *testing.T) {
	sqlStr, params := buildFile(t, `
select:
  from: users u
  columns: [u.id, u.name]
  joins:
    - kind: left
      table: orders o
      on:
        - {left: u.id, right: o.user_id}
  where:
    - {column: u.status, value: active}
    - logic: or
      or:
        - {column: u.role, value: admin}
        - {column: u.id, op: in, values: [1, 2, 3]}
  order_by:
    - {column: u.created_at, dir: desc}
  limit: 10
  offset: 5
`)
	assert.Equal(t,
		`SELECT "u"."id", "u"."name" FROM "users" AS "u" LEFT JOIN "orders" AS "o" ON ("u"."id" = "o"."user_id") WHERE "u"."status" = ? OR ("u"."role" = ? OR "u"."id" IN (?, ?, ?)) ORDER BY "u"."created_at" DESC LIMIT 10 OFFSET 5`,
		sqlStr)
	assert.Equal(t, []any{"active", "admin", 1, 2, 3}, params)
}

func TestSelectFileExprAndGrouping(t *testing.T) {
	sqlStr, params := buildFile(t, `
select:
  from: events
  columns: [kind]
  group_by: [kind]
  having:
    - {expr: "COUNT(*) > ?", args: [5]}
  where:
    - and:
        - {column: seen, op: is, value: false}
        - {column: kind, op: "!=", value: noise}
`)
	assert.Equal(t,
		`SELECT "kind" FROM "events" WHERE ("seen" IS FALSE AND "kind" != ?) GROUP BY "kind" HAVING COUNT(*) > ?`,
		sqlStr)
	assert.Equal(t, []any{"noise", 5}, params)
}

func TestInsertFileRows(t *testing.T) {
	sqlStr, params := buildFile(t, `
insert:
  table: users
  rows:
    - {name: ada, role: admin}
    - {name: grace, role: member}
`)
	assert.Equal(t, `INSERT INTO "users" ("name", "role") VALUES (?, ?), (?, ?)`, sqlStr)
	assert.Equal(t, []any{"ada", "admin", "grace", "member"}, params)
}

func TestInsertFileSet(t *testing.T) {
	sqlStr, params := buildFile(t, `
insert:
  table: users
  set:
    name: ada
    role: admin
`)
	assert.Equal(t, `INSERT INTO "users" ("name", "role") VALUES (?, ?)`, sqlStr)
	assert.Equal(t, []any{"ada", "admin"}, params)
}

func TestUpdateFile(t *testing.T) {
	sqlStr, params := buildFile(t, `
update:
  table: users
  set:
    status: archived
  where:
    - {column: last_seen, op: "<", value: 2020}
  limit: 100
`)
	assert.Equal(t, `UPDATE "users" SET "status" = ? WHERE "last_seen" < ? LIMIT 100`, sqlStr)
	assert.Equal(t, []any{"archived", 2020}, params)
}

func TestDeleteFile(t *testing.T) {
	sqlStr, params := buildFile(t, `
delete:
  table: sessions
  where:
    - {column: expires_at, op: "<", value: 1700000000}
`)
	assert.Equal(t, `DELETE FROM "sessions" WHERE "expires_at" < ?`, sqlStr)
	assert.Equal(t, []any{1700000000}, params)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("select:\n  from: a\ndelete:\n  table: b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")

	_, err = Parse([]byte("{}\n"))
	require.Error(t, err)

	_, err = Parse([]byte("select:\n  frum: users\n"))
	require.Error(t, err)
}

func TestStatementErrors(t *testing.T) {
	f, err := Parse([]byte(`
select:
  from: a
  joins:
    - {kind: cross, table: b, on: [{left: a.id, right: b.id}]}
`))
	require.NoError(t, err)
	_, err = f.Statement(qb.New(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "takes no on conditions")

	f, err = Parse([]byte(`
select:
  from: a
  joins:
    - {kind: sideways, table: b}
`))
	require.NoError(t, err)
	_, err = f.Statement(qb.New(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown join kind")

	f, err = Parse([]byte(`
insert:
  table: users
  rows:
    - {name: ada, role: admin}
    - {name: grace}
`))
	require.NoError(t, err)
	_, err = f.Statement(qb.New(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")

	f, err = Parse([]byte("insert:\n  table: users\n"))
	require.NoError(t, err)
	_, err = f.Statement(qb.New(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set or rows")
}
