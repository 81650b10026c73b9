package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/GriffinCanCode/quadrature/internal/batch"
	"github.com/spf13/cobra"
)

func newBatchCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <jobs.toml|jobs.yaml>",
		Short: "Run integration jobs from a TOML or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := batch.Load(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Batch.Workers
			}

			outcomes, err := batch.NewRunner(a.svc, workers).Run(cmd.Context(), jobs)
			if err != nil {
				return err
			}

			if err := a.write(cmd.OutOrStdout(), outcomes, func(w io.Writer) error {
				return writeOutcomesText(w, outcomes)
			}); err != nil {
				return err
			}

			failed := 0
			for _, out := range outcomes {
				if out.Failed() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent jobs (default QUAD_WORKERS)")
	return cmd
}

func writeOutcomesText(w io.Writer, outcomes []batch.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tINTEGRAND\tINTERVAL\tRESULT\tEVALS\tDEPTH EXCEEDED\tERROR")
	for _, out := range outcomes {
		if out.Failed() {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t%s\n", out.Job, out.Error)
			continue
		}
		r := out.Response
		fmt.Fprintf(tw, "%s\t%s\t[%g, %g]\t%.12g\t%d\t%d\t\n",
			out.Job, r.Integrand, r.Low, r.High, r.Result.Value, r.Result.Evaluations, r.Result.DepthExceeded)
	}
	return tw.Flush()
}
