package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/GriffinCanCode/quadrature/internal/providers/quadrature"
	"github.com/GriffinCanCode/quadrature/internal/shared/id"
	"github.com/GriffinCanCode/quadrature/internal/types"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newToolCmd(a *app) *cobra.Command {
	var (
		params string
		caller string
	)

	cmd := &cobra.Command{
		Use:   "tool <id>",
		Short: "Execute a provider tool such as math.integrate",
		Long: `Executes one tool of the quadrature provider with JSON parameters, e.g.

  quadrature tool math.integrate --params '{"integrand":"square","low":0,"high":1}'

Run "quadrature tool list" to print the tool definitions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := quadrature.NewProvider(a.svc)
			if args[0] == "list" {
				def := provider.Definition()
				return a.write(cmd.OutOrStdout(), def, func(w io.Writer) error {
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "TOOL\tDESCRIPTION")
					for _, tool := range def.Tools {
						fmt.Fprintf(tw, "%s\t%s\n", tool.ID, tool.Description)
					}
					return tw.Flush()
				})
			}

			decoded := map[string]interface{}{}
			if err := sonic.UnmarshalString(params, &decoded); err != nil {
				return fmt.Errorf("invalid --params: %w", err)
			}

			requestID := id.NewRequestID().String()
			appCtx := &types.Context{Caller: &caller, RequestID: &requestID}
			a.logger.Debug("executing tool", zap.String("tool", args[0]), zap.String("request_id", requestID))

			result, err := provider.Execute(cmd.Context(), args[0], decoded, appCtx)
			if err != nil {
				return err
			}
			if err := a.write(cmd.OutOrStdout(), result, func(w io.Writer) error {
				return writeResultText(w, result)
			}); err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("%s: %s", args[0], *result.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&params, "params", "p", "{}", "Tool parameters as a JSON object")
	cmd.Flags().StringVar(&caller, "caller", "cli", "Caller recorded in the result")
	return cmd
}

func writeResultText(w io.Writer, result *types.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if !result.Success {
		fmt.Fprintf(tw, "error\t%s\n", *result.Error)
	}
	keys := make([]string, 0, len(result.Data))
	for k := range result.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", k, result.Data[k])
	}
	return tw.Flush()
}
