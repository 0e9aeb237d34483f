package entities

import (
	"errors"
	"sort"
	"strings"
)

// ErrDependencyCycle is wrapped by every CycleError.
var ErrDependencyCycle = errors.New("dependency cycle detected")

// CycleError names the manifests forming a cycle, first one repeated at the end.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return ErrDependencyCycle.Error() + ": " + strings.Join(e.Cycle, " -> ")
}

func (e *CycleError) Unwrap() error {
	return ErrDependencyCycle
}

// DependencyGraph maps each manifest path to the manifest paths it depends on
// through local path dependencies.
type DependencyGraph struct {
	edges map[string]map[string]struct{}
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		edges: make(map[string]map[string]struct{}),
	}
}

// AddManifest registers a manifest as a node of the graph.
func (g *DependencyGraph) AddManifest(path string) {
	if _, ok := g.edges[path]; !ok {
		g.edges[path] = make(map[string]struct{})
	}
}

// AddDependency records that dependent must be processed after dependency.
// Self references are dropped. The dependency does not become a node: only
// manifests added with AddManifest take part in the order.
func (g *DependencyGraph) AddDependency(dependent, dependency string) {
	if dependent == dependency {
		return
	}
	g.AddManifest(dependent)
	g.edges[dependent][dependency] = struct{}{}
}

// Has reports whether path is a node of the graph.
func (g *DependencyGraph) Has(path string) bool {
	_, ok := g.edges[path]
	return ok
}

// Manifests returns every node, sorted.
func (g *DependencyGraph) Manifests() []string {
	paths := make([]string, 0, len(g.edges))
	for path := range g.edges {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Dependencies returns the recorded dependencies of path, sorted.
func (g *DependencyGraph) Dependencies(path string) []string {
	deps := make([]string, 0, len(g.edges[path]))
	for dep := range g.edges[path] {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// Order returns every node so that each one comes after all the nodes it
// depends on. Ties are broken lexically, so the result only depends on the
// graph content. Edges to unknown nodes are ignored.
//
// A cycle yields a *CycleError.
func (g *DependencyGraph) Order() ([]string, error) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.edges))
	order := make([]string, 0, len(g.edges))
	var stack []string

	var visit func(node string) error
	visit = func(node string) error {
		color[node] = gray
		stack = append(stack, node)

		for _, dep := range g.Dependencies(node) {
			if !g.Has(dep) {
				continue
			}
			switch color[dep] {
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			case gray:
				return &CycleError{Cycle: cycleFrom(stack, dep)}
			}
		}

		stack = stack[:len(stack)-1]
		color[node] = black
		order = append(order, node)
		return nil
	}

	for _, node := range g.Manifests() {
		if color[node] != white {
			continue
		}
		if err := visit(node); err != nil {
			return nil, err
		}
	}

	return order, nil
}

func cycleFrom(stack []string, start string) []string {
	for i, node := range stack {
		if node == start {
			cycle := make([]string, 0, len(stack)-i+1)
			cycle = append(cycle, stack[i:]...)
			return append(cycle, start)
		}
	}
	return []string{start, start}
}
