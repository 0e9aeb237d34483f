package main

import (
	"github.com/rios0rios0/poetryupdater/internal"
	"github.com/rios0rios0/poetryupdater/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func newContainer() *dig.Container {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	return container
}

func injectAppContext(container *dig.Container) *internal.AppInternal {
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectUpdateController(container *dig.Container) *controllers.UpdateController {
	var updateController *controllers.UpdateController
	if err := container.Invoke(func(uc *controllers.UpdateController) {
		updateController = uc
	}); err != nil {
		panic(err)
	}

	return updateController
}
