package controllers

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/poetryupdater/internal/domain/commands"
	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	"github.com/rios0rios0/poetryupdater/internal/report"
)

// UpdateController handles the "update" subcommand, also run by the root command.
type UpdateController struct {
	command commands.Update
	loader  entities.SettingsLoader
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update, loader entities.SettingsLoader) *UpdateController {
	return &UpdateController{command: command, loader: loader}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update [paths...]",
		Short: "Update the Python dependencies of every Poetry project",
		Long: `Find every pyproject.toml below the given paths (default: the configured
paths, or the current directory), order the Poetry projects so local path
dependencies come first, then bump each outdated dependency to its latest
version and regenerate the lock files.

Versions pinned with "==" are never touched.`,
	}
}

// Execute runs the update and prints a summary of the changes.
func (it *UpdateController) Execute(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	skipMajor, _ := cmd.Flags().GetBool("skip-major")
	requireClean, _ := cmd.Flags().GetBool("require-clean")
	changelog, _ := cmd.Flags().GetBool("changelog")

	settings, err := loadSettings(cmd, it.loader)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dryRun {
		logger.Info("[DRY RUN] Manifests and lock files will not be modified")
	}

	runReport, err := it.command.Execute(context.Background(), settings, commands.UpdateOptions{
		Paths:        args,
		DryRun:       dryRun,
		Verbose:      verbose,
		SkipMajor:    skipMajor,
		RequireClean: requireClean,
		Changelog:    changelog,
	})
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	base, _ := os.Getwd()
	return report.Changes(cmd.OutOrStdout(), runReport, base)
}

// AddFlags adds the update-specific flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip-major", false, "Do not apply major version updates")
	cmd.Flags().Bool("require-clean", false,
		"Refuse to run when a pyproject.toml has uncommitted changes")
	cmd.Flags().Bool("changelog", false,
		"Record applied updates under [Unreleased] in each project's CHANGELOG.md")
}
