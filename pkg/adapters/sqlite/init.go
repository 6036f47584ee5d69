// This file registers the SQLite adapter with the adapter registry.
// Import this package with a blank identifier to make it available:
//
//	import _ "github.com/leapstack-labs/quill/pkg/adapters/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/quill/pkg/adapter"
)

func init() {
	adapter.Register("sqlite", func(l *slog.Logger) adapter.Adapter { return New(l) })
}
