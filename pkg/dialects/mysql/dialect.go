// Package mysql provides the MySQL/MariaDB SQL dialect definition.
package mysql

import (
	"github.com/leapstack-labs/quill/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// mysqlReservedWords contains common MySQL reserved words that trip up
// unquoted identifiers.
var mysqlReservedWords = []string{
	"add", "all", "alter", "and", "as", "asc", "before", "between", "by",
	"case", "change", "check", "collate", "column", "condition", "constraint",
	"create", "cross", "current_date", "current_time", "current_timestamp",
	"database", "default", "delete", "desc", "distinct", "div", "drop",
	"else", "exists", "false", "for", "foreign", "from", "full", "group",
	"having", "if", "ignore", "in", "index", "inner", "insert", "interval",
	"into", "is", "join", "key", "keys", "kill", "leading", "left", "like",
	"limit", "lock", "match", "natural", "not", "null", "offset", "on",
	"option", "or", "order", "outer", "primary", "range", "references",
	"regexp", "rename", "replace", "right", "schema", "select", "set",
	"show", "table", "then", "to", "trailing", "true", "union", "unique",
	"update", "usage", "use", "using", "values", "when", "where", "with",
}

// MySQL is the MySQL dialect configuration: backtick identifier quoting,
// ? placeholders, case-sensitive identifiers.
var MySQL = dialect.NewDialect("mysql").
	Identifiers("`", "`", "``", dialect.NormCaseSensitive).
	PlaceholderStyle(dialect.PlaceholderQuestion).
	WithReservedWords(mysqlReservedWords...).
	Build()
