//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	"github.com/rios0rios0/poetryupdater/internal/domain/repositories"
)

// SpyPackageManagerRepository implements repositories.PackageManagerRepository
// as a configurable spy. Calls are recorded as "<operation>:<dir base name>".
type SpyPackageManagerRepository struct {
	mu sync.Mutex

	// --- identity ---
	ManagerName string

	// --- ListOutdated ---
	Outdated    map[string][]entities.PackageUpdate // dir base name -> updates
	OutdatedErr error
	// spy: groups requested per dir base name
	Groups map[string][]string

	// --- EnsureLock / WriteLock ---
	EnsureLockErr error
	WriteLockErr  error

	// spy: every call in order
	Calls []string
}

var _ repositories.PackageManagerRepository = (*SpyPackageManagerRepository)(nil)

func (s *SpyPackageManagerRepository) Name() string {
	if s.ManagerName == "" {
		return "poetry"
	}
	return s.ManagerName
}

func (s *SpyPackageManagerRepository) EnsureLock(_ context.Context, dir string) error {
	s.record("ensure-lock", dir)
	return s.EnsureLockErr
}

func (s *SpyPackageManagerRepository) ListOutdated(
	_ context.Context, dir string, groups []string,
) ([]entities.PackageUpdate, error) {
	s.record("list-outdated", dir)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Groups == nil {
		s.Groups = make(map[string][]string)
	}
	s.Groups[filepath.Base(dir)] = groups

	if s.OutdatedErr != nil {
		return nil, s.OutdatedErr
	}
	return s.Outdated[filepath.Base(dir)], nil
}

func (s *SpyPackageManagerRepository) WriteLock(_ context.Context, dir string) error {
	s.record("write-lock", dir)
	return s.WriteLockErr
}

func (s *SpyPackageManagerRepository) record(operation, dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, operation+":"+filepath.Base(dir))
}
