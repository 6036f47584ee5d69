// This file registers the DuckDB adapter with the adapter registry.
// Import this package with a blank identifier to make it available:
//
//	import _ "github.com/leapstack-labs/quill/pkg/adapters/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/quill/pkg/adapter"
)

func init() {
	adapter.Register("duckdb", func(l *slog.Logger) adapter.Adapter { return New(l) })
}
