// Package duckdb provides the DuckDB SQL dialect definition.
package duckdb

import (
	"github.com/leapstack-labs/quill/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

//go:generate go run ../../../scripts/genkeywords -out=keywords.go

// DuckDB is the DuckDB dialect configuration: double-quote identifier
// quoting, ? placeholders, case-insensitive identifiers, "main" schema.
var DuckDB = dialect.NewDialect("duckdb").
	Identifiers(`"`, `"`, `""`, dialect.NormCaseInsensitive).
	DefaultSchema("main").
	PlaceholderStyle(dialect.PlaceholderQuestion).
	WithReservedWords(duckdbReservedWords...).
	Build()
