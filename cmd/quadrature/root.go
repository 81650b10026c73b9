package main

import (
	"fmt"
	"io"

	"github.com/GriffinCanCode/quadrature/internal/config"
	"github.com/GriffinCanCode/quadrature/internal/integration"
	"github.com/GriffinCanCode/quadrature/internal/logging"
	"github.com/GriffinCanCode/quadrature/internal/monitoring"
	"github.com/spf13/cobra"
)

// app carries state shared by all subcommands.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
	svc     *integration.Service

	showMetrics bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		logLevel string
		dev      bool
		output   string
	)

	root := &cobra.Command{
		Use:          "quadrature",
		Short:        "Adaptive Simpson numerical integration",
		Long:         `Integrates named one-dimensional functions with adaptive Simpson quadrature and Richardson correction.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if cmd.Flags().Changed("dev") {
				cfg.Logging.Development = dev
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Format = output
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logCfg := logging.DefaultConfig()
			if cfg.Logging.Development {
				logCfg = logging.DevelopmentConfig()
			}
			logCfg.Level = cfg.Logging.Level
			logger, err := logging.New(logCfg)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
			}

			a.cfg = cfg
			a.logger = logger
			a.metrics = monitoring.NewMetrics()
			a.svc = integration.NewService(cfg.Quadrature, logger, a.metrics)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
			if a.showMetrics && a.metrics != nil {
				return a.metrics.WriteText(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&dev, "dev", false, "Development logging (coloured console)")
	root.PersistentFlags().StringVarP(&output, "output", "o", config.OutputText, "Output format (text, json, yaml)")
	root.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "Print Prometheus metrics to stderr on exit")

	root.AddCommand(
		newIntegrateCmd(a),
		newSampleCmd(a),
		newBatchCmd(a),
		newIntegrandsCmd(a),
		newToolCmd(a),
	)
	return root
}

func (a *app) write(w io.Writer, v interface{}, text func(io.Writer) error) error {
	return encode(w, a.cfg.Output.Format, v, text)
}
