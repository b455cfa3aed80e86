package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidsentiment/internal/analysis"
	"vidsentiment/internal/api"
	"vidsentiment/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			rt, err := analysis.NewRuntime(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("initialise analysis: %w", err)
			}
			defer func() {
				if err := rt.Close(); err != nil {
					logger.Warn("runtime close failed", logging.Error(err))
				}
			}()

			opts := api.OptionsFromConfig(cfg)
			if trimmed := strings.TrimSpace(bind); trimmed != "" {
				opts.Bind = trimmed
			}
			srv, err := api.New(opts, api.RuntimeAnalyzer(rt), logger)
			if err != nil {
				return err
			}
			if err := srv.Run(cmd.Context()); err != nil {
				return err
			}
			logger.Info("vidsentiment server shutting down")
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides server.bind)")
	return cmd
}
