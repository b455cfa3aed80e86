package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vidsentiment/internal/logging"
	"vidsentiment/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var filter logs.Filter

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the vidsentiment log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			out := cmd.OutOrStdout()

			recent, offset, err := logs.Last(path, lines, filter)
			if err != nil {
				return err
			}
			for _, line := range recent {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, offset, logs.DefaultPollInterval, filter, func(line string) error {
				_, err := fmt.Fprintln(out, line)
				return err
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of recent lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep streaming new lines")
	cmd.Flags().StringVar(&filter.RequestID, "request-id", "", "Only show lines for this request ID")
	cmd.Flags().StringVar(&filter.VideoURL, "video-url", "", "Only show lines for this video URL")
	cmd.Flags().StringVar(&filter.EventType, "event-type", "", "Only show lines with this event_type")
	cmd.Flags().StringVar(&filter.Component, "component", "", "Only show lines from this component")
	return cmd
}
