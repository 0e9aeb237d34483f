//go:build unit

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	"github.com/rios0rios0/poetryupdater/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/poetryupdater/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/poetryupdater/test/infrastructure/repositorydoubles"
)

func TestPackageManagerRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build the package manager registered under the settings name", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyPackageManagerRepository{ManagerName: "poetry"}
		var received entities.PackageManagerSettings
		reg := infraRepos.NewPackageManagerRegistry()
		reg.Register("poetry", func(settings entities.PackageManagerSettings) repositories.PackageManagerRepository {
			received = settings
			return spy
		})
		settings := entities.DefaultSettings().PackageManager

		// when
		pm, err := reg.Get(settings)

		// then
		require.NoError(t, err)
		assert.Same(t, spy, pm)
		assert.Equal(t, settings, received)
	})

	t.Run("should fail for an unknown package manager", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewPackageManagerRegistry()
		reg.Register("poetry", func(_ entities.PackageManagerSettings) repositories.PackageManagerRepository {
			return &doubles.SpyPackageManagerRepository{}
		})

		// when
		pm, err := reg.Get(entities.PackageManagerSettings{Name: "pdm"})

		// then
		require.Error(t, err)
		assert.Nil(t, pm)
		assert.Contains(t, err.Error(), `"pdm"`)
		assert.Contains(t, err.Error(), "registered: poetry")
	})

	t.Run("should list registered names sorted", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewPackageManagerRegistry()
		factory := func(_ entities.PackageManagerSettings) repositories.PackageManagerRepository {
			return &doubles.SpyPackageManagerRepository{}
		}
		reg.Register("poetry", factory)
		reg.Register("pdm", factory)

		// when
		names := reg.Names()

		// then
		assert.Equal(t, []string{"pdm", "poetry"}, names)
	})
}
