package commands

import (
	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
)

// Order is the interface for the order command.
type Order interface {
	Execute(settings *entities.Settings, paths []string) (*entities.Plan, error)
}

// OrderCommand prints the update order without touching any project.
type OrderCommand struct {
	planner *Planner
}

// NewOrderCommand creates a new OrderCommand.
func NewOrderCommand(planner *Planner) *OrderCommand {
	return &OrderCommand{planner: planner}
}

// Execute returns the plan of the discovered manifests, dependencies first.
func (it *OrderCommand) Execute(settings *entities.Settings, paths []string) (*entities.Plan, error) {
	return it.planner.Plan(resolvePaths(settings, paths), settings.ExcludeDirs)
}
