package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/poetryupdater/internal/domain/repositories"
)

// WorktreeRepository implements repositories.WorktreeRepository with go-git.
type WorktreeRepository struct{}

// NewWorktreeRepository creates a go-git backed worktree inspector.
func NewWorktreeRepository() repositories.WorktreeRepository {
	return &WorktreeRepository{}
}

type worktreeState struct {
	root   string
	status gogit.Status
}

// DirtyFiles opens the repository enclosing each path (once per repository)
// and reports the paths that are modified, staged or untracked.
func (r *WorktreeRepository) DirtyFiles(ctx context.Context, paths []string) ([]string, error) {
	states := make(map[string]*worktreeState)

	var dirty []string
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state, err := r.stateFor(filepath.Dir(path), states)
		if err != nil {
			return nil, err
		}
		if state == nil {
			continue
		}

		rel, err := filepath.Rel(state.root, path)
		if err != nil {
			return nil, fmt.Errorf("failed to relate %q to %q: %w", path, state.root, err)
		}

		fileStatus, listed := state.status[filepath.ToSlash(rel)]
		if !listed {
			continue
		}
		if fileStatus.Worktree != gogit.Unmodified || fileStatus.Staging != gogit.Unmodified {
			dirty = append(dirty, path)
		}
	}

	return dirty, nil
}

func (r *WorktreeRepository) stateFor(dir string, states map[string]*worktreeState) (*worktreeState, error) {
	if state, ok := states[dir]; ok {
		return state, nil
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		logger.Debugf("%s is not inside a git repository", dir)
		states[dir] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository for %q: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree for %q: %w", dir, err)
	}

	root := worktree.Filesystem.Root()
	for _, state := range states {
		if state != nil && state.root == root {
			states[dir] = state
			return state, nil
		}
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read git status of %q: %w", root, err)
	}

	state := &worktreeState{root: root, status: status}
	states[dir] = state
	return state, nil
}
