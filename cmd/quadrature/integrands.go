package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/GriffinCanCode/quadrature/internal/integrands"
	"github.com/spf13/cobra"
)

func newIntegrandsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "integrands",
		Short: "List the named integrands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := integrands.All()
			return a.write(cmd.OutOrStdout(), all, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tEXPRESSION\tDESCRIPTION")
				for _, in := range all {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", in.Name, in.Expr, in.Description)
				}
				return tw.Flush()
			})
		},
	}
}
