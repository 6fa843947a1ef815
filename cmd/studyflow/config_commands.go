package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"studyflow/internal/config"
	"studyflow/internal/fileutil"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the studyflow configuration",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool
	var project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented sample configuration",
		Long: `Write the sample configuration to ~/.config/studyflow/config.toml, or with
--project to ./` + config.ProjectConfigName + ` so the study repository carries its own
book and session settings.`,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configInitTarget(targetPath, project)
			if err != nil {
				return err
			}
			if !overwrite {
				exists, err := fileutil.Exists(target)
				if err != nil {
					return fmt.Errorf("check config path: %w", err)
				}
				if exists {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit reference_document to point at your book before running studyflow start.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "Write "+config.ProjectConfigName+" in the current directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

// configInitTarget picks the destination: an explicit path, the project
// file, or the per-user default, in that order.
func configInitTarget(path string, project bool) (string, error) {
	if path = strings.TrimSpace(path); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return "", fmt.Errorf("resolve config path: %w", err)
		}
		return expanded, nil
	}
	if project {
		return filepath.Abs(config.ProjectConfigName)
	}
	return config.DefaultConfigPath()
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report the resolved paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			source := ctx.configPath
			if !ctx.configExists {
				source += " (absent, defaults used)"
			}
			rep := &report{colorize: shouldColorize(cmd.OutOrStdout())}
			rep.section("Configuration")
			rep.line("Config", statusInfo, source)
			rep.line("Repository root", statusInfo, cfg.Paths.RepoRoot)
			rep.line("Reference document", statusInfo, cfg.Paths.ReferenceDocument)
			rep.line("Chapters", statusInfo, cfg.Paths.ChaptersDir)
			rep.line("Session prefix", statusInfo, cfg.Session.Prefix)
			rep.line("Result", statusOK, "configuration valid")
			rep.writeTo(cmd.OutOrStdout())
			return nil
		},
	}
}
