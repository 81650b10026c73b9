package main

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func newSampleCmd(a *app) *cobra.Command {
	var (
		name      string
		low, high float64
		n         int
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample a named function on a uniform grid (x,y pairs for plotting)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := a.svc.Sample(name, low, high, n)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), points, func(w io.Writer) error {
				cw := csv.NewWriter(w)
				if err := cw.Write([]string{"x", "y"}); err != nil {
					return err
				}
				for _, p := range points {
					row := []string{
						strconv.FormatFloat(p.X, 'g', -1, 64),
						strconv.FormatFloat(p.Y, 'g', -1, 64),
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				cw.Flush()
				return cw.Error()
			})
		},
	}

	cmd.Flags().StringVarP(&name, "integrand", "f", "oscillatory", "Integrand name")
	cmd.Flags().Float64Var(&low, "low", 1, "Lower bound")
	cmd.Flags().Float64Var(&high, "high", 3, "Upper bound")
	cmd.Flags().IntVarP(&n, "samples", "n", 0, "Grid size (default QUAD_SAMPLES)")
	return cmd
}
