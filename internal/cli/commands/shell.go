package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/quill/pkg/adapter"
	"github.com/leapstack-labs/quill/pkg/dialect"
)

// NewShellCommand creates the shell command: an interactive SQL prompt
// against the configured target.
func NewShellCommand(getConfig ConfigFunc, getLogger LoggerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive SQL shell against the target database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := getConfig(ctx)
			logger := getLogger(ctx)

			a, target, err := connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return runShell(cmd, a, target, cfg.Output)
		},
	}
}

func runShell(cmd *cobra.Command, a adapter.Adapter, target adapter.Config, format string) error {
	historyFile := filepath.Join(historyDir(), "quill_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "quill> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Quill shell (%s)\n", target.Type)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt("quill> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			quit := handleDotCommand(cmd, a, line, &format)
			if quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until a terminating semicolon.
		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString(" ")
			rl.SetPrompt("  ...> ")
			continue
		}
		rl.SetPrompt("quill> ")

		sqlStr := strings.TrimSuffix(buf.String(), ";")
		buf.Reset()

		if err := runShellStatement(cmd, a, sqlStr, format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(out)
	}
	return nil
}

func runShellStatement(cmd *cobra.Command, a adapter.Adapter, sqlStr, format string) error {
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
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "(%d rows affected)\n", affected)
	return nil
}

// handleDotCommand runs a shell dot-command. Returns true to exit the shell.
func handleDotCommand(cmd *cobra.Command, a adapter.Adapter, line string, format *string) bool {
	parts := strings.Fields(line)
	out := cmd.OutOrStdout()

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(out)

	case ".format":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(out, "Current format: %s\n", *format)
			return false
		}
		switch parts[1] {
		case "table", "json", "csv", "md", "markdown":
			*format = parts[1]
			_, _ = fmt.Fprintf(out, "Format set to %s\n", *format)
		default:
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown format %q (want table, json, csv or md)\n", parts[1])
		}

	case ".dialect":
		d := a.Dialect()
		_, _ = fmt.Fprintf(out, "%s (quote %s%s, placeholder %s)\n",
			d.GetName(), d.Identifiers.Quote, d.Identifiers.QuoteEnd, placeholderName(d))

	case ".columns":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .columns <table>")
			return false
		}
		if err := showColumns(cmd, a, parts[1], *format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command %s (try .help)\n", parts[0])
	}
	return false
}

func showColumns(cmd *cobra.Command, a adapter.Adapter, tableName, format string) error {
	// information_schema is the portable path; engines without it reject the
	// query and the error surfaces to the user.
	d := a.Dialect()
	sqlStr := fmt.Sprintf(`SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_name = %s ORDER BY ordinal_position`, d.FormatPlaceholder(1))
	rows, err := a.Query(cmd.Context(), sqlStr, tableName)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	return renderResults(cmd.OutOrStdout(), rows.Rows, format)
}

func printShellHelp(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Commands:")
	_, _ = fmt.Fprintln(w, "  .help              Show this help")
	_, _ = fmt.Fprintln(w, "  .quit, .exit       Exit the shell")
	_, _ = fmt.Fprintln(w, "  .format [fmt]      Show or set output format (table|json|csv|md)")
	_, _ = fmt.Fprintln(w, "  .dialect           Show the target's dialect settings")
	_, _ = fmt.Fprintln(w, "  .columns <table>   Show a table's columns")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "End SQL statements with ; to execute. Multi-line input is supported.")
}

func placeholderName(d *dialect.Dialect) string {
	if d.Placeholder == dialect.PlaceholderDollar {
		return "$N"
	}
	return "?"
}

func historyDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		sub := filepath.Join(dir, "quill")
		if err := os.MkdirAll(sub, 0o750); err == nil {
			return sub
		}
	}
	return os.TempDir()
}
