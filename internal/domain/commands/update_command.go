package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	"github.com/rios0rios0/poetryupdater/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/poetryupdater/internal/infrastructure/repositories"
	"github.com/rios0rios0/poetryupdater/internal/pyproject"
)

// Update is the interface for the update command.
type Update interface {
	Execute(ctx context.Context, settings *entities.Settings, opts UpdateOptions) (*entities.RunReport, error)
}

// UpdateOptions holds the CLI overrides of a single run.
type UpdateOptions struct {
	Paths        []string // If empty, settings.Paths are used
	DryRun       bool
	Verbose      bool
	SkipMajor    bool
	RequireClean bool
	Changelog    bool
}

// UpdateCommand orchestrates a full run:
// discover -> build graph -> order -> lock every project -> update each project in order.
type UpdateCommand struct {
	planner   *Planner
	registry  *infraRepos.PackageManagerRegistry
	manifests repositories.ManifestRepository
	worktree  repositories.WorktreeRepository
}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand(
	planner *Planner,
	registry *infraRepos.PackageManagerRegistry,
	manifests repositories.ManifestRepository,
	worktree repositories.WorktreeRepository,
) *UpdateCommand {
	return &UpdateCommand{
		planner:   planner,
		registry:  registry,
		manifests: manifests,
		worktree:  worktree,
	}
}

// Execute runs the update. Any failure aborts the run: projects later in the
// order may depend on the state the failing one should have produced.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts UpdateOptions,
) (*entities.RunReport, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	packageManager, err := it.registry.Get(settings.PackageManager)
	if err != nil {
		return nil, err
	}

	plan, err := it.planner.Plan(resolvePaths(settings, opts.Paths), settings.ExcludeDirs)
	if err != nil {
		return nil, err
	}
	logger.Infof("Found %d %s project(s)", len(plan.Manifests), packageManager.Name())
	for i, manifest := range plan.Manifests {
		logger.Debugf("  %d. %s", i+1, manifest.Path)
	}

	if opts.RequireClean || settings.RequireClean {
		if cleanErr := it.ensureClean(ctx, plan); cleanErr != nil {
			return nil, cleanErr
		}
	}

	report := &entities.RunReport{Projects: plan.Manifests}
	if len(plan.Manifests) == 0 {
		return report, nil
	}

	if !opts.DryRun {
		for _, manifest := range plan.Manifests {
			logger.Infof("[%s] Locking %s", packageManager.Name(), manifest.Dir)
			if lockErr := packageManager.EnsureLock(ctx, manifest.Dir); lockErr != nil {
				return nil, lockErr
			}
		}
	}

	policy := pyproject.Policy{SkipMajor: opts.SkipMajor || settings.SkipMajor}
	for _, manifest := range plan.Manifests {
		changes, updateErr := it.updateProject(ctx, packageManager, manifest, policy, opts, settings)
		if updateErr != nil {
			return nil, updateErr
		}
		report.Changes = append(report.Changes, changes...)
	}

	logger.Infof(
		"Run complete: %d projects processed, %d versions changed",
		len(report.Projects), report.AppliedCount(),
	)
	return report, nil
}

// updateProject re-reads the manifest (a dependency may just have changed the
// lock state), rewrites the outdated versions and regenerates the lock file.
func (it *UpdateCommand) updateProject(
	ctx context.Context,
	packageManager repositories.PackageManagerRepository,
	manifest entities.Manifest,
	policy pyproject.Policy,
	opts UpdateOptions,
	settings *entities.Settings,
) ([]entities.Change, error) {
	name := packageManager.Name()

	data, err := it.manifests.Read(manifest.Path)
	if err != nil {
		return nil, err
	}
	doc, err := pyproject.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifest.Path, err)
	}

	// without a lock file the outdated listing fails, and a dry run may not create one
	if opts.DryRun && !it.hasLockFile(manifest, settings) {
		logger.Warnf(
			"[%s] [DRY RUN] Skipping %s: no %s, run without --dry-run to create it",
			name, manifest.Dir, settings.PackageManager.LockFile,
		)
		return nil, nil
	}

	updates, err := packageManager.ListOutdated(ctx, manifest.Dir, doc.Groups())
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		logger.Infof("[%s] %s is up to date", name, manifest.Dir)
		return nil, nil
	}

	changes, err := pyproject.ApplyUpdates(doc, updates, policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifest.Path, err)
	}
	for i := range changes {
		changes[i].Manifest = manifest.Path
	}

	if !doc.Changed() {
		logger.Infof("[%s] No declared version of %s needs a change", name, manifest.Dir)
		return changes, nil
	}

	if opts.DryRun {
		for i := range changes {
			if changes[i].Status == entities.StatusUpdated {
				changes[i].Status = entities.StatusPlanned
			}
		}
		logger.Infof("[%s] [DRY RUN] Would rewrite %s", name, manifest.Path)
		return changes, nil
	}

	if writeErr := it.manifests.Write(manifest.Path, doc.Bytes()); writeErr != nil {
		return nil, writeErr
	}
	logger.Infof("[%s] Rewrote %s", name, manifest.Path)

	if opts.Changelog || settings.Changelog {
		if changelogErr := it.recordChangelog(manifest, changes); changelogErr != nil {
			return nil, changelogErr
		}
	}

	logger.Infof("[%s] Regenerating lock file in %s", name, manifest.Dir)
	if lockErr := packageManager.WriteLock(ctx, manifest.Dir); lockErr != nil {
		return nil, lockErr
	}

	return changes, nil
}

func (it *UpdateCommand) hasLockFile(manifest entities.Manifest, settings *entities.Settings) bool {
	return it.manifests.Exists(filepath.Join(manifest.Dir, settings.PackageManager.LockFile))
}

// recordChangelog adds the applied changes to the project's CHANGELOG.md, if any.
func (it *UpdateCommand) recordChangelog(manifest entities.Manifest, changes []entities.Change) error {
	path := filepath.Join(manifest.Dir, entities.ChangelogFileName)
	if !it.manifests.Exists(path) {
		return nil
	}

	content, err := it.manifests.Read(path)
	if err != nil {
		return err
	}

	modified := entities.InsertChangelogEntry(string(content), entities.ChangelogEntries(changes))
	if modified == string(content) {
		logger.Debugf("No [Unreleased] section in %s, leaving it untouched", path)
		return nil
	}

	return it.manifests.Write(path, []byte(modified))
}

// ensureClean refuses to run when a manifest of the plan has uncommitted changes.
func (it *UpdateCommand) ensureClean(ctx context.Context, plan *entities.Plan) error {
	paths := make([]string, 0, len(plan.Manifests))
	for _, manifest := range plan.Manifests {
		paths = append(paths, manifest.Path)
	}

	dirty, err := it.worktree.DirtyFiles(ctx, paths)
	if err != nil {
		return err
	}
	if len(dirty) > 0 {
		return fmt.Errorf("%w: %s", entities.ErrDirtyWorktree, strings.Join(dirty, ", "))
	}
	return nil
}

// resolvePaths picks the roots of a run: CLI paths, then configured paths,
// then the current directory. The result is always a fresh slice.
func resolvePaths(settings *entities.Settings, paths []string) []string {
	switch {
	case len(paths) > 0:
		return append([]string(nil), paths...)
	case settings != nil && len(settings.Paths) > 0:
		return append([]string(nil), settings.Paths...)
	default:
		return []string{"."}
	}
}
