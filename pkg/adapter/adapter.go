// Package adapter defines the execution boundary between built statements
// and real database engines.
//
// This package holds the public contract every engine adapter implements.
// Concrete implementations live in pkg/adapters/ subdirectories and register
// themselves by name; importing one for side effects makes it available:
//
//	import _ "github.com/leapstack-labs/quill/pkg/adapters/postgres"
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/quill/pkg/dialect"
)

// Config carries everything an adapter needs to open a connection.
type Config struct {
	// Type selects the registered adapter ("postgres", "mysql", ...).
	Type string `koanf:"type"`

	// DSN is the engine-native connection string. When set it wins over the
	// discrete fields below.
	DSN string `koanf:"dsn"`

	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Path is the database file for embedded engines (sqlite, duckdb).
	Path string `koanf:"path"`

	// Options holds engine-specific connection options.
	Options map[string]string `koanf:"options"`
}

// Rows wraps *sql.Rows so callers outside database/sql-land get column names
// alongside the cursor.
type Rows struct {
	*sql.Rows
}

// Adapter is the contract between built statements and a database engine.
// Exec and Query take the SQL text and the ordered parameter values produced
// by a statement's Build, in the same order.
type Adapter interface {
	// Connect establishes a connection using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close releases the connection and its resources.
	Close() error

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sql string, args ...any) (rowsAffected int64, err error)

	// Query runs a statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// Dialect returns the SQL dialect this adapter's engine speaks. Builders
	// targeting this adapter must render with the same dialect so that
	// placeholder styles line up.
	Dialect() *dialect.Dialect
}
