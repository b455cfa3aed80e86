package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidsentiment/internal/deps"
	"vidsentiment/internal/preflight"
)

type depsReport struct {
	Dependencies []deps.Status      `json:"dependencies"`
	Services     []preflight.Result `json:"services"`
}

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var skipServices bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check external tools, directories, and configured services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result := depsReport{Dependencies: deps.CheckSystem(cfg), Services: []preflight.Result{}}
			if !skipServices {
				result.Services = append(result.Services, preflight.RunAll(cmd.Context(), cfg)...)
			}

			missing := 0
			for _, status := range result.Dependencies {
				if !status.Available && !status.Optional {
					missing++
				}
			}
			failed := 0
			for _, check := range result.Services {
				if !check.Passed {
					failed++
				}
			}

			if asJSON {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				renderDeps(cmd, result)
			}

			switch {
			case missing > 0:
				return fmt.Errorf("%d required dependencies missing", missing)
			case failed > 0:
				return fmt.Errorf("%d service checks failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit dependency status as JSON")
	cmd.Flags().BoolVar(&skipServices, "skip-services", false, "Only check local binaries and directories")
	return cmd
}

func renderDeps(cmd *cobra.Command, result depsReport) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(result.Dependencies))
	for _, status := range result.Dependencies {
		rows = append(rows, []string{
			status.Name,
			yesNo(status.Available),
			yesNo(status.Optional),
			status.Command,
			status.Detail,
		})
	}
	fmt.Fprintln(out, renderTable("Dependencies", []string{"Name", "Available", "Optional", "Command", "Detail"}, rows, nil))

	if len(result.Services) == 0 {
		return
	}
	rows = rows[:0]
	for _, check := range result.Services {
		rows = append(rows, []string{check.Name, yesNo(check.Passed), check.Detail})
	}
	fmt.Fprintln(out, renderTable("Services", []string{"Service", "Ready", "Detail"}, rows, nil))
}
