// Package main provides the Quill command-line interface.
package main

import (
	"os"

	"github.com/leapstack-labs/quill/internal/cli"

	// Register the built-in adapters and their dialects.
	_ "github.com/leapstack-labs/quill/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/quill/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/quill/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/quill/pkg/adapters/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
