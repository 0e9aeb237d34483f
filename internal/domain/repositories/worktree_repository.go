package repositories

import "context"

// WorktreeRepository inspects the version control state of project files.
type WorktreeRepository interface {
	// DirtyFiles returns the subset of paths with uncommitted changes. Files
	// outside of any repository are never reported.
	DirtyFiles(ctx context.Context, paths []string) ([]string, error)
}
