package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/quill/pkg/core"
)

// Statement is any buildable statement: SQL text plus ordered parameters.
// Satisfied by the pkg/qb builders.
type Statement interface {
	Build() (sql string, params []core.BoundValue, err error)
}

// Executor runs built statements against an adapter, tagging each run with a
// unique id for log correlation.
type Executor struct {
	adapter Adapter
	logger  *slog.Logger
}

// NewExecutor wraps an adapter. A nil logger discards debug output.
func NewExecutor(a Adapter, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{adapter: a, logger: logger}
}

// Adapter returns the wrapped adapter.
func (e *Executor) Adapter() Adapter { return e.adapter }

// Exec builds the statement and runs it, returning the affected row count.
func (e *Executor) Exec(ctx context.Context, stmt Statement) (int64, error) {
	sqlStr, params, id, err := e.prepare(stmt)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	affected, err := e.adapter.Exec(ctx, sqlStr, core.Values(params)...)
	if err != nil {
		// Adapter errors propagate untouched; the query id lives in the log.
		e.logger.Error("statement failed", "query_id", id, "error", err)
		return 0, err
	}
	e.logger.Debug("statement executed",
		"query_id", id, "rows_affected", affected, "duration", time.Since(start))
	return affected, nil
}

// Query builds the statement and runs it, returning the result cursor.
func (e *Executor) Query(ctx context.Context, stmt Statement) (*Rows, error) {
	sqlStr, params, id, err := e.prepare(stmt)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := e.adapter.Query(ctx, sqlStr, core.Values(params)...)
	if err != nil {
		e.logger.Error("query failed", "query_id", id, "error", err)
		return nil, err
	}
	e.logger.Debug("query executed", "query_id", id, "duration", time.Since(start))
	return rows, nil
}

func (e *Executor) prepare(stmt Statement) (string, []core.BoundValue, string, error) {
	sqlStr, params, err := stmt.Build()
	if err != nil {
		return "", nil, "", fmt.Errorf("build statement: %w", err)
	}
	id := uuid.NewString()
	e.logger.Debug("statement built", "query_id", id, "sql", sqlStr, "params", len(params))
	return sqlStr, params, id, nil
}
