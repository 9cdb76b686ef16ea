package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/contabilizador/internal/domain/tax"
)

// newCategoriasCommand lista las etiquetas que acepta --categoria con su cuenta y tarifa.
func newCategoriasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categorias",
		Short: "Lista las categorías de retención en la fuente reconocidas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORÍA\tCUENTA\tTARIFA")
			for _, c := range tax.Categories() {
				rule, _ := c.Rule()
				fmt.Fprintf(tw, "%s\t%s\t%s%%\n", rule.Key, rule.Account, rule.Rate.Shift(2).String())
			}
			return tw.Flush()
		},
	}
}
