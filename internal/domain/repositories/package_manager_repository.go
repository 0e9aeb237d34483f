package repositories

import (
	"context"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
)

// PackageManagerRepository abstracts the package manager binary that owns the
// lock file and knows which packages are outdated. Every call blocks until the
// underlying process exits; a failing process is reported as an error.
type PackageManagerRepository interface {
	// Name returns the package manager identifier (e.g. "poetry").
	Name() string

	// EnsureLock creates or refreshes the lock file of the project in dir.
	EnsureLock(ctx context.Context, dir string) error

	// ListOutdated returns the packages of the project in dir that have a newer
	// version available, including the given optional dependency groups.
	ListOutdated(ctx context.Context, dir string, groups []string) ([]entities.PackageUpdate, error)

	// WriteLock regenerates the lock file after the manifest changed.
	WriteLock(ctx context.Context, dir string) error
}
