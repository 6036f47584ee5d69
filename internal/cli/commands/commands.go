// Package commands implements the Quill CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/quill/internal/cli/config"
	"github.com/leapstack-labs/quill/pkg/adapter"
	"github.com/leapstack-labs/quill/pkg/dialect"
	"github.com/leapstack-labs/quill/pkg/qb"
)

// ConfigFunc retrieves the loaded configuration from the command context.
type ConfigFunc func(context.Context) *config.Config

// LoggerFunc retrieves the logger from the command context.
type LoggerFunc func(context.Context) *slog.Logger

// newBuilder creates a statement builder matching the dialect of the given
// target.
func newBuilder(cfg *config.Config, target adapter.Config) (*qb.Builder, error) {
	d, ok := dialect.Get(target.Type)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %v)", target.Type, dialect.List())
	}
	opts := []qb.Option{qb.WithDatabase(cfg.Database)}
	if cfg.TablePrefix != "" {
		opts = append(opts, qb.WithTablePrefix(cfg.TablePrefix))
	}
	return qb.New(d, opts...), nil
}

// connect opens the configured target and returns the live adapter.
func connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (adapter.Adapter, adapter.Config, error) {
	target, err := cfg.CurrentTarget()
	if err != nil {
		return nil, adapter.Config{}, err
	}
	a, err := adapter.New(target, logger)
	if err != nil {
		return nil, adapter.Config{}, err
	}
	if err := a.Connect(ctx, target); err != nil {
		return nil, adapter.Config{}, err
	}
	return a, target, nil
}
