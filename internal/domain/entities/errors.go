package entities

import "errors"

// ErrDirtyWorktree is returned when manifests have uncommitted changes and a
// clean worktree is required.
var ErrDirtyWorktree = errors.New("manifests have uncommitted changes")
