// This file registers the PostgreSQL adapter with the adapter registry.
// Import this package with a blank identifier to make it available:
//
//	import _ "github.com/leapstack-labs/quill/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/quill/pkg/adapter"
)

func init() {
	adapter.Register("postgres", func(l *slog.Logger) adapter.Adapter { return New(l) })
}
