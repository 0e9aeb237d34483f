//go:build unit

package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/poetryupdater/internal/infrastructure/repositories/filesystem"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestManifestRepositoryLocate(t *testing.T) {
	t.Parallel()

	t.Run("should find nested manifests sorted and skip excluded directories", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "outer", "pyproject.toml"), "")
		writeFile(t, filepath.Join(root, "libs", "inner_1", "pyproject.toml"), "")
		writeFile(t, filepath.Join(root, "libs", "inner_2", "pyproject.toml"), "")
		writeFile(t, filepath.Join(root, "outer", ".venv", "lib", "pyproject.toml"), "")
		writeFile(t, filepath.Join(root, "outer", "setup.cfg"), "")
		repo := filesystem.NewManifestRepository()

		// when
		paths, err := repo.Locate(root, []string{".venv"})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "libs", "inner_1", "pyproject.toml"),
			filepath.Join(root, "libs", "inner_2", "pyproject.toml"),
			filepath.Join(root, "outer", "pyproject.toml"),
		}, paths)
	})

	t.Run("should return absolute paths for a relative root", func(t *testing.T) {
		t.Parallel()

		// given
		repo := filesystem.NewManifestRepository()

		// when
		paths, err := repo.Locate(".", nil)

		// then
		require.NoError(t, err)
		for _, path := range paths {
			assert.True(t, filepath.IsAbs(path))
		}
	})

	t.Run("should follow a symlinked root", func(t *testing.T) {
		t.Parallel()

		// given
		base := t.TempDir()
		realRoot := filepath.Join(base, "monorepo")
		writeFile(t, filepath.Join(realRoot, "a", "pyproject.toml"), "")
		link := filepath.Join(base, "link")
		if err := os.Symlink(realRoot, link); err != nil {
			t.Skipf("symlinks are not supported: %v", err)
		}
		repo := filesystem.NewManifestRepository()

		// when
		paths, err := repo.Locate(link, nil)

		// then
		require.NoError(t, err)
		resolved, evalErr := filepath.EvalSymlinks(realRoot)
		require.NoError(t, evalErr)
		assert.Equal(t, []string{filepath.Join(resolved, "a", "pyproject.toml")}, paths)
	})

	t.Run("should fail for a missing root", func(t *testing.T) {
		t.Parallel()

		// given
		repo := filesystem.NewManifestRepository()

		// when
		_, err := repo.Locate(filepath.Join(t.TempDir(), "missing"), nil)

		// then
		require.Error(t, err)
	})
}

func TestManifestRepositoryWrite(t *testing.T) {
	t.Parallel()

	t.Run("should replace the content and keep the file mode", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "pyproject.toml")
		writeFile(t, path, "old")
		require.NoError(t, os.Chmod(path, 0o600))
		repo := filesystem.NewManifestRepository()

		// when
		err := repo.Write(path, []byte("new"))

		// then
		require.NoError(t, err)
		data, readErr := repo.Read(path)
		require.NoError(t, readErr)
		assert.Equal(t, "new", string(data))
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("should refuse to create a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "pyproject.toml")
		repo := filesystem.NewManifestRepository()

		// when
		err := repo.Write(path, []byte("new"))

		// then
		require.Error(t, err)
		assert.False(t, repo.Exists(path))
	})
}

func TestManifestRepositoryExists(t *testing.T) {
	t.Parallel()

	t.Run("should only report regular files", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		file := filepath.Join(dir, "CHANGELOG.md")
		writeFile(t, file, "# Changelog\n")
		repo := filesystem.NewManifestRepository()

		// when
		fileExists := repo.Exists(file)
		dirExists := repo.Exists(dir)

		// then
		assert.True(t, fileExists)
		assert.False(t, dirExists)
	})
}
