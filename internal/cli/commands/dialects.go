package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/quill/pkg/adapter"
	"github.com/leapstack-labs/quill/pkg/dialect"
)

// NewDialectsCommand creates the dialects command, listing every registered
// dialect and whether an execution adapter is available for it.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered SQL dialects",
		Run: func(cmd *cobra.Command, _ []string) {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Dialect", "Placeholders", "Quote", "Adapter"})

			for _, name := range dialect.List() {
				d, _ := dialect.Get(name)
				style := "?"
				if d.Placeholder == dialect.PlaceholderDollar {
					style = "$N"
				}
				hasAdapter := "no"
				if adapter.IsRegistered(name) {
					hasAdapter = "yes"
				}
				t.AppendRow(table.Row{name, style, d.Identifiers.Quote + d.Identifiers.QuoteEnd, hasAdapter})
			}
			t.Render()
		},
	}
}
