package repositories

import (
	domainRepos "github.com/rios0rios0/poetryupdater/internal/domain/repositories"
	fsRepo "github.com/rios0rios0/poetryupdater/internal/infrastructure/repositories/filesystem"
	gitRepo "github.com/rios0rios0/poetryupdater/internal/infrastructure/repositories/git"
	poetryRepo "github.com/rios0rios0/poetryupdater/internal/infrastructure/repositories/poetry"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register package manager registry with all package manager factories
	if err := container.Provide(func() *PackageManagerRegistry {
		reg := NewPackageManagerRegistry()
		reg.Register("poetry", poetryRepo.NewPackageManagerRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.ManifestRepository {
		return fsRepo.NewManifestRepository()
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.WorktreeRepository {
		return gitRepo.NewWorktreeRepository()
	}); err != nil {
		return err
	}

	return nil
}
