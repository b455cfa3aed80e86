package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vidsentiment/internal/analysis"
	"vidsentiment/internal/logging"
	"vidsentiment/internal/services"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var contentAnalysis bool
	var noContentAnalysis bool
	var format string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a video URL and print a sentiment report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != formatJSON && format != formatTable {
				return fmt.Errorf("unsupported --format %q (want json or table)", format)
			}
			if noContentAnalysis {
				contentAnalysis = false
			}
			videoURL := strings.TrimSpace(args[0])

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			out := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprintf(out, "Starting analysis for URL: %s\n", videoURL)
				fmt.Fprintf(out, "Content analysis enabled: %t\n", contentAnalysis)
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

			runCtx := services.WithRequestID(cmd.Context(), uuid.NewString())
			result, err := analysis.New(rt).Analyze(runCtx, videoURL, contentAnalysis)
			if err != nil {
				return fmt.Errorf("error during analysis: %w", err)
			}

			if !quiet {
				fmt.Fprintln(out, "\n--- Analysis Report ---")
			}
			switch format {
			case formatTable:
				fmt.Fprint(out, renderReport(result))
			default:
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			}
			if !quiet {
				fmt.Fprintln(out, "\nAnalysis complete.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&contentAnalysis, "content-analysis", true, "Download and transcribe the video to score its content")
	cmd.Flags().BoolVar(&noContentAnalysis, "no-content-analysis", false, "Skip video content analysis")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Report format: json or table")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the report")
	cmd.MarkFlagsMutuallyExclusive("content-analysis", "no-content-analysis")
	return cmd
}
