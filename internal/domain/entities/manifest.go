package entities

// Manifest is a Poetry project found while scanning, identified by the
// absolute path of its pyproject.toml.
type Manifest struct {
	Path    string
	Dir     string
	Name    string
	Version string
	// Dependencies holds the absolute manifest paths of local path dependencies.
	Dependencies []string
	// Groups holds the dependency group names declared by the project.
	Groups []string
}

// Plan is the processing order computed for a run.
type Plan struct {
	Graph     *DependencyGraph
	Manifests []Manifest
}

// RunReport summarizes a finished run.
type RunReport struct {
	Projects []Manifest
	Changes  []Change
}

// AppliedCount returns how many changes modified (or would modify) a manifest.
func (r *RunReport) AppliedCount() int {
	count := 0
	for _, change := range r.Changes {
		if change.Applied() {
			count++
		}
	}
	return count
}
