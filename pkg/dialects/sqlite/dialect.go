// Package sqlite provides the SQLite SQL dialect definition.
package sqlite

import (
	"github.com/leapstack-labs/quill/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

var sqliteReservedWords = []string{
	"abort", "add", "all", "alter", "and", "as", "asc", "attach", "autoincrement",
	"between", "by", "case", "cast", "check", "collate", "column", "commit",
	"conflict", "constraint", "create", "cross", "current_date", "current_time",
	"current_timestamp", "default", "deferrable", "delete", "desc", "detach",
	"distinct", "drop", "else", "end", "escape", "except", "exists", "foreign",
	"from", "full", "group", "having", "if", "in", "index", "inner", "insert",
	"intersect", "into", "is", "isnull", "join", "left", "like", "limit",
	"match", "natural", "not", "notnull", "null", "offset", "on", "or",
	"order", "outer", "pragma", "primary", "references", "regexp", "reindex",
	"replace", "right", "rollback", "select", "set", "table", "temporary",
	"then", "to", "transaction", "trigger", "union", "unique", "update",
	"using", "vacuum", "values", "view", "when", "where", "with", "without",
}

// SQLite is the SQLite dialect configuration: double-quote identifier
// quoting, ? placeholders, "main" default schema.
var SQLite = dialect.NewDialect("sqlite").
	Identifiers(`"`, `"`, `""`, dialect.NormCaseInsensitive).
	DefaultSchema("main").
	PlaceholderStyle(dialect.PlaceholderQuestion).
	WithReservedWords(sqliteReservedWords...).
	Build()
