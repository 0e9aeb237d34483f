package commands

import (
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	"github.com/rios0rios0/poetryupdater/internal/domain/repositories"
	"github.com/rios0rios0/poetryupdater/internal/pyproject"
)

// Planner discovers Poetry projects, links them through their local path
// dependencies and sorts them so dependencies come first.
type Planner struct {
	manifests repositories.ManifestRepository
}

// NewPlanner creates a Planner reading manifests from the given repository.
func NewPlanner(manifests repositories.ManifestRepository) *Planner {
	return &Planner{manifests: manifests}
}

// Plan locates every manifest below roots, builds the dependency graph and
// orders it. Manifests without [tool.poetry] are left out of the plan.
func (it *Planner) Plan(roots []string, excludeDirs []string) (*entities.Plan, error) {
	graph := entities.NewDependencyGraph()
	byPath := make(map[string]entities.Manifest)

	for _, root := range roots {
		paths, err := it.manifests.Locate(root, excludeDirs)
		if err != nil {
			return nil, err
		}

		for _, path := range paths {
			if _, seen := byPath[path]; seen {
				continue
			}

			manifest, ok, loadErr := it.load(path)
			if loadErr != nil {
				return nil, loadErr
			}
			if !ok {
				continue
			}

			byPath[path] = *manifest
			graph.AddManifest(path)
			for _, dep := range manifest.Dependencies {
				graph.AddDependency(path, dep)
			}
		}
	}

	order, err := graph.Order()
	if err != nil {
		return nil, err
	}

	plan := &entities.Plan{Graph: graph, Manifests: make([]entities.Manifest, 0, len(order))}
	for _, path := range order {
		plan.Manifests = append(plan.Manifests, byPath[path])
	}
	return plan, nil
}

// load reads a manifest; ok is false when it is not a Poetry project.
func (it *Planner) load(path string) (*entities.Manifest, bool, error) {
	data, err := it.manifests.Read(path)
	if err != nil {
		return nil, false, err
	}

	project, err := pyproject.Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	if !project.Poetry {
		logger.Debugf("Skipping %s: no [tool.poetry] section", path)
		return nil, false, nil
	}

	doc, err := pyproject.Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	manifest := &entities.Manifest{
		Path:    path,
		Dir:     dir,
		Name:    project.Name,
		Version: project.Version,
		Groups:  doc.Groups(),
	}
	for _, rel := range doc.PathDependencies() {
		dep := resolveManifestPath(dir, rel)
		if dep == path {
			continue
		}
		manifest.Dependencies = append(manifest.Dependencies, dep)
	}

	logger.Debugf("Loaded %s (%s) with %d local dependencies", path, project.Name, len(manifest.Dependencies))
	return manifest, true, nil
}

// resolveManifestPath turns the path attribute of a declaration into the
// absolute path of the manifest it points to.
func resolveManifestPath(dir, rel string) string {
	target := filepath.FromSlash(rel)
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	if filepath.Base(target) != pyproject.FileName {
		target = filepath.Join(target, pyproject.FileName)
	}
	return filepath.Clean(target)
}
