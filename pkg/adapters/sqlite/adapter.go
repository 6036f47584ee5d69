// Package sqlite provides the SQLite adapter, connecting through the
// cgo-free modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // sqlite database/sql driver

	"github.com/leapstack-labs/quill/pkg/adapter"
	"github.com/leapstack-labs/quill/pkg/dialect"
	litedialect "github.com/leapstack-labs/quill/pkg/dialects/sqlite"
)

// Adapter implements adapter.Adapter for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a SQLite adapter. A nil logger discards debug output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQLite dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return litedialect.SQLite
}

// Connect opens the database file, or an in-memory database when no path is
// configured.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = cfg.Path
	}
	if dsn == "" {
		dsn = ":memory:"
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", dsn))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	// In-memory databases vanish per connection; pin the pool to one.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

var _ adapter.Adapter = (*Adapter)(nil)
