package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Settings depend on a path only known once flags are parsed, so the
	// loader is provided instead of the settings themselves.
	return container.Provide(func() SettingsLoader {
		return NewSettings
	})
}
