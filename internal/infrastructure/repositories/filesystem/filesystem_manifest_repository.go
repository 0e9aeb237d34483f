package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/poetryupdater/internal/domain/repositories"
	"github.com/rios0rios0/poetryupdater/internal/pyproject"
)

// ManifestRepository implements repositories.ManifestRepository on the local filesystem.
type ManifestRepository struct{}

// NewManifestRepository creates a filesystem-backed manifest repository.
func NewManifestRepository() repositories.ManifestRepository {
	return &ManifestRepository{}
}

// Locate walks root recursively and returns every pyproject.toml found.
// Paths are returned with the symlinks of root resolved.
func (r *ManifestRepository) Locate(root string, excludeDirs []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", root, err)
	}
	// WalkDir does not descend into a root that is itself a symlink
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", root, err)
	}

	excluded := make(map[string]bool, len(excludeDirs))
	for _, dir := range excludeDirs {
		excluded[dir] = true
	}

	var manifests []string
	walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != absRoot && excluded[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Name() == pyproject.FileName && entry.Type().IsRegular() {
			manifests = append(manifests, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", absRoot, walkErr)
	}

	sort.Strings(manifests)
	logger.Debugf("Found %d manifest(s) below %s", len(manifests), absRoot)
	return manifests, nil
}

// Read returns the content of path.
func (r *ManifestRepository) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return data, nil
}

// Write replaces the content of path, keeping its permissions.
func (r *ManifestRepository) Write(path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if writeErr := os.WriteFile(path, content, info.Mode().Perm()); writeErr != nil {
		return fmt.Errorf("failed to write %q: %w", path, writeErr)
	}
	return nil
}

// Exists reports whether path is a regular file.
func (r *ManifestRepository) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf("Failed to stat %q: %v", path, err)
		}
		return false
	}
	return info.Mode().IsRegular()
}
