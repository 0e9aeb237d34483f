//go:build unit

package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/poetryupdater/internal/domain/commands"
	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	"github.com/rios0rios0/poetryupdater/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/poetryupdater/internal/infrastructure/repositories"
	"github.com/rios0rios0/poetryupdater/internal/infrastructure/repositories/filesystem"
	"github.com/rios0rios0/poetryupdater/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/poetryupdater/test/infrastructure/repositorydoubles"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// newMonorepo lays out outer -> inner_1 -> inner_2, each depending on the next
// through a local path dependency.
func newMonorepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "outer", "pyproject.toml"), entitybuilders.NewPyprojectBuilder().
		WithName("outer").
		WithDependency("shpyx", "0.0.13").
		WithPathDependency("inner_1", "../libs/inner_1").
		BuildContent())
	writeFile(t, filepath.Join(root, "libs", "inner_1", "pyproject.toml"), entitybuilders.NewPyprojectBuilder().
		WithName("inner_1").
		WithPathDependency("inner_2", "../inner_2").
		WithGroupDependency("docs", "mkdocs", "1.5.0").
		BuildContent())
	writeFile(t, filepath.Join(root, "libs", "inner_2", "pyproject.toml"), entitybuilders.NewPyprojectBuilder().
		WithName("inner_2").
		WithDependency("Requests", "2.31.0").
		BuildContent())

	return root
}

func newUpdateCommand(
	spy *doubles.SpyPackageManagerRepository,
	worktree *doubles.StubWorktreeRepository,
) *commands.UpdateCommand {
	registry := infraRepos.NewPackageManagerRegistry()
	registry.Register("poetry", func(_ entities.PackageManagerSettings) repositories.PackageManagerRepository {
		return spy
	})
	manifests := filesystem.NewManifestRepository()
	return commands.NewUpdateCommand(commands.NewPlanner(manifests), registry, manifests, worktree)
}
