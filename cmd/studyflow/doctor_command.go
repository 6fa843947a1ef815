package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studyflow/internal/deps"
	"studyflow/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the study repository and the external tools studyflow needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			checks := preflight.RunAll(cfg)
			statuses := preflight.CheckSystemDeps(cfg)

			rep := &report{colorize: colorize}
			rep.section("Configuration")
			source := ctx.configPath
			if !ctx.configExists {
				source = "defaults (no file at " + source + ")"
			}
			rep.line("Config", statusInfo, source)
			rep.line("Repository root", statusInfo, cfg.Paths.RepoRoot)
			rep.section("Repository")
			rep.add(checkLines(checks, colorize)...)
			rep.section("Dependencies")
			rep.add(dependencyLines(statuses, colorize)...)
			rep.writeTo(out)

			failed := len(deps.Missing(statuses))
			for _, c := range checks {
				if !c.Passed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}
