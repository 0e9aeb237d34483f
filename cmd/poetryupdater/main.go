package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/poetryupdater/internal"
	"github.com/rios0rios0/poetryupdater/internal/infrastructure/controllers"
)

func buildRootCommand(updateController *controllers.UpdateController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "poetryupdater [paths...]",
		Short: "Update the dependencies of a Poetry monorepo in dependency order",
		Long: `Walks a directory tree for pyproject.toml files, links the Poetry projects
through their local path dependencies and updates them one by one, so that
every project is locked against already-updated siblings.

Usage modes:
  poetryupdater                Update every project below the current directory
  poetryupdater libs apps      Update every project below the given paths
  poetryupdater order          Print the processing order only`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         updateController.Execute,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes (projects without a lock file are skipped)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	updateController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:          bind.Use,
			Short:        bind.Short,
			Long:         bind.Long,
			SilenceUsage: true,
			RunE:         controller.Execute,
		}

		// Add controller-specific flags
		controller.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	container := newContainer()
	cobraRoot := buildRootCommand(injectUpdateController(container))

	// Add all subcommands
	addSubcommands(cobraRoot, injectAppContext(container))

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'poetryupdater': %s", err)
	}
}
