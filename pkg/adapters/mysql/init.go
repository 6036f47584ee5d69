// This file registers the MySQL adapter with the adapter registry.
// Import this package with a blank identifier to make it available:
//
//	import _ "github.com/leapstack-labs/quill/pkg/adapters/mysql"
package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/quill/pkg/adapter"
)

func init() {
	adapter.Register("mysql", func(l *slog.Logger) adapter.Adapter { return New(l) })
}
