package controllers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/poetryupdater/internal/domain/commands"
	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	"github.com/rios0rios0/poetryupdater/internal/report"
)

// OrderController handles the "order" subcommand.
type OrderController struct {
	command commands.Order
	loader  entities.SettingsLoader
}

// NewOrderController creates a new OrderController.
func NewOrderController(command commands.Order, loader entities.SettingsLoader) *OrderController {
	return &OrderController{command: command, loader: loader}
}

// GetBind returns the Cobra command metadata for the order controller.
func (it *OrderController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "order [paths...]",
		Short: "Print the order in which Poetry projects would be updated",
		Long: `Discover the Poetry projects below the given paths and print them
dependencies first, without running poetry or modifying any file.`,
	}
}

// Execute prints the processing order.
func (it *OrderController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.loader)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	plan, err := it.command.Execute(settings, args)
	if err != nil {
		return err
	}

	base, _ := os.Getwd()
	return report.Order(cmd.OutOrStdout(), plan, base)
}

// AddFlags is a no-op: order only uses the global flags.
func (it *OrderController) AddFlags(_ *cobra.Command) {}
