// Package main provides a generator that extracts the reserved keyword list
// from an in-memory DuckDB instance and writes the Go source consumed by the
// duckdb dialect.
//
// Usage:
//
//	go run ./scripts/genkeywords -out=pkg/dialects/duckdb/keywords.go
package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"sort"

	_ "github.com/marcboeker/go-duckdb"
)

var outFlag = flag.String("out", "", "output file path (required)")

func main() {
	flag.Parse()

	if *outFlag == "" {
		log.Fatal("--out flag is required")
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		log.Fatalf("failed to open duckdb: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	var version string
	if err := db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		log.Fatalf("failed to query version: %v", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT keyword_name
		FROM duckdb_keywords()
		WHERE keyword_category = 'reserved'
		ORDER BY keyword_name`)
	if err != nil {
		log.Fatalf("failed to query keywords: %v", err)
	}
	defer func() { _ = rows.Close() }()

	var keywords []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			log.Fatalf("failed to scan keyword: %v", err)
		}
		keywords = append(keywords, kw)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("keyword iteration failed: %v", err)
	}
	sort.Strings(keywords)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by scripts/genkeywords from DuckDB %s. DO NOT EDIT.\n\n", version)
	fmt.Fprintf(&buf, "package duckdb\n\n")
	fmt.Fprintf(&buf, "var duckdbReservedWords = []string{\n")
	for _, kw := range keywords {
		fmt.Fprintf(&buf, "\t%q,\n", kw)
	}
	fmt.Fprintf(&buf, "}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatalf("failed to format generated source: %v", err)
	}
	if err := os.WriteFile(*outFlag, src, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *outFlag, err)
	}
	log.Printf("wrote %d keywords to %s", len(keywords), *outFlag)
}
