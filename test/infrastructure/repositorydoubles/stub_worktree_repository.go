//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/poetryupdater/internal/domain/repositories"
)

// StubWorktreeRepository implements repositories.WorktreeRepository with a fixed answer.
type StubWorktreeRepository struct {
	Dirty    []string
	DirtyErr error
	// spy: paths checked on the last call
	Checked []string
}

var _ repositories.WorktreeRepository = (*StubWorktreeRepository)(nil)

func (s *StubWorktreeRepository) DirtyFiles(_ context.Context, paths []string) ([]string, error) {
	s.Checked = paths
	return s.Dirty, s.DirtyErr
}
