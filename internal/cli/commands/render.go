package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/quill/internal/queryfile"
	"github.com/leapstack-labs/quill/pkg/dialect"
	"github.com/leapstack-labs/quill/pkg/qb"
)

// NewRenderCommand creates the render command: compile a query file to SQL
// without touching a database.
func NewRenderCommand(getConfig ConfigFunc) *cobra.Command {
	var dialectFlag string

	cmd := &cobra.Command{
		Use:   "render <query-file>",
		Short: "Render a query file to SQL and parameters",
		Long: `Render compiles a declarative YAML query file into SQL text and its
ordered parameter list. The dialect comes from the selected target, or can be
overridden with --dialect to preview another engine's rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())

			var b *qb.Builder
			if dialectFlag != "" {
				d, ok := dialect.Get(dialectFlag)
				if !ok {
					return fmt.Errorf("unknown dialect %q (available: %v)", dialectFlag, dialect.List())
				}
				opts := []qb.Option{qb.WithDatabase(cfg.Database)}
				if cfg.TablePrefix != "" {
					opts = append(opts, qb.WithTablePrefix(cfg.TablePrefix))
				}
				b = qb.New(d, opts...)
			} else {
				target, err := cfg.CurrentTarget()
				if err != nil {
					return err
				}
				if b, err = newBuilder(cfg, target); err != nil {
					return err
				}
			}

			f, err := queryfile.ParseFile(args[0])
			if err != nil {
				return err
			}
			stmt, err := f.Statement(b)
			if err != nil {
				return err
			}
			sqlStr, params, err := stmt.Build()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sqlStr)
			if len(params) > 0 {
				fmt.Fprintln(out, "-- parameters:")
				for i, p := range params {
					hint := ""
					if p.TypeHint != "" {
						hint = " (" + p.TypeHint + ")"
					}
					fmt.Fprintf(out, "--   %d: %v%s\n", i+1, p.Value, hint)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dialectFlag, "dialect", "d", "", "Render for a specific dialect instead of the target's")
	_ = cmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
