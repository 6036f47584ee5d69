package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/quill/internal/queryfile"
	"github.com/leapstack-labs/quill/pkg/adapter"
)

// NewExecCommand creates the exec command: run a query file (or --sql text)
// against the configured target.
func NewExecCommand(getConfig ConfigFunc, getLogger LoggerFunc) *cobra.Command {
	var rawSQL string

	cmd := &cobra.Command{
		Use:   "exec [query-file]",
		Short: "Execute a query file against the target database",
		Long: `Exec compiles a query file and runs it against the selected target.
SELECT results print in the configured output format; other statements report
the affected row count. Use --sql to run raw SQL instead of a file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (rawSQL == "") == (len(args) == 0) {
				return fmt.Errorf("provide a query file or --sql, not both")
			}

			ctx := cmd.Context()
			cfg := getConfig(ctx)
			logger := getLogger(ctx)

			a, target, err := connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if rawSQL != "" {
				return execRaw(cmd, a, rawSQL, cfg.Output)
			}

			b, err := newBuilder(cfg, target)
			if err != nil {
				return err
			}
			f, err := queryfile.ParseFile(args[0])
			if err != nil {
				return err
			}
			stmt, err := f.Statement(b)
			if err != nil {
				return err
			}

			exec := adapter.NewExecutor(a, logger)
			if f.Select != nil {
				rows, err := exec.Query(ctx, stmt)
				if err != nil {
					return err
				}
				defer func() { _ = rows.Close() }()
				return renderResults(cmd.OutOrStdout(), rows.Rows, cfg.Output)
			}

			affected, err := exec.Exec(ctx, stmt)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "(%d rows affected)\n", affected)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawSQL, "sql", "", "Raw SQL to execute instead of a query file")
	return cmd
}

func execRaw(cmd *cobra.Command, a adapter.Adapter, sqlStr, format string) error {
	ctx := cmd.Context()
	if isQueryStatement(sqlStr) {
		rows, err := a.Query(ctx, sqlStr)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()
		return renderResults(cmd.OutOrStdout(), rows.Rows, format)
	}
	affected, err := a.Exec(ctx, sqlStr)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "(%d rows affected)\n", affected)
	return nil
}

// isQueryStatement reports whether raw SQL looks like a row-returning
// statement.
func isQueryStatement(sqlStr string) bool {
	head := strings.ToUpper(strings.TrimSpace(sqlStr))
	for _, kw := range []string{"SELECT", "WITH", "SHOW", "DESCRIBE", "EXPLAIN", "PRAGMA"} {
		if strings.HasPrefix(head, kw) {
			return true
		}
	}
	return false
}
