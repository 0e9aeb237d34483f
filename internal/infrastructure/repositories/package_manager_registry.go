package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	domainRepos "github.com/rios0rios0/poetryupdater/internal/domain/repositories"
)

// PackageManagerFactory creates a PackageManagerRepository from its settings.
type PackageManagerFactory func(settings entities.PackageManagerSettings) domainRepos.PackageManagerRepository

// PackageManagerRegistry manages all registered package manager implementations.
type PackageManagerRegistry struct {
	factories map[string]PackageManagerFactory
}

// NewPackageManagerRegistry creates an empty package manager registry.
func NewPackageManagerRegistry() *PackageManagerRegistry {
	return &PackageManagerRegistry{
		factories: make(map[string]PackageManagerFactory),
	}
}

// Register adds a package manager factory under the given name (e.g. "poetry").
func (r *PackageManagerRegistry) Register(name string, factory PackageManagerFactory) {
	r.factories[name] = factory
}

// Get returns a package manager configured with settings, looked up by settings.Name.
func (r *PackageManagerRegistry) Get(
	settings entities.PackageManagerSettings,
) (domainRepos.PackageManagerRepository, error) {
	factory, ok := r.factories[settings.Name]
	if !ok {
		return nil, fmt.Errorf(
			"unknown package manager: %q (registered: %s)",
			settings.Name, strings.Join(r.Names(), ", "),
		)
	}
	return factory(settings), nil
}

// Names returns the sorted list of registered package manager names.
func (r *PackageManagerRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
