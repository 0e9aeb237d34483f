//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"
	"strings"

	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PyprojectBuilder helps create pyproject.toml contents of Poetry projects.
type PyprojectBuilder struct {
	*testkit.BaseBuilder
	name         string
	dependencies []string
	groups       map[string][]string
	groupOrder   []string
}

// NewPyprojectBuilder creates a new pyproject builder for a project with no dependencies.
func NewPyprojectBuilder() *PyprojectBuilder {
	return &PyprojectBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "test-project",
		groups:      make(map[string][]string),
	}
}

// WithName sets the project name.
func (b *PyprojectBuilder) WithName(name string) *PyprojectBuilder {
	b.name = name
	return b
}

// WithDependency adds a `name = "version"` line to [tool.poetry.dependencies].
func (b *PyprojectBuilder) WithDependency(name, version string) *PyprojectBuilder {
	b.dependencies = append(b.dependencies, fmt.Sprintf("%s = %q", name, version))
	return b
}

// WithPathDependency adds a local path dependency to [tool.poetry.dependencies].
func (b *PyprojectBuilder) WithPathDependency(name, path string) *PyprojectBuilder {
	b.dependencies = append(b.dependencies, fmt.Sprintf("%s = { path = %q, develop = true }", name, path))
	return b
}

// WithGroupDependency adds a `name = "version"` line to [tool.poetry.group.<group>.dependencies].
func (b *PyprojectBuilder) WithGroupDependency(group, name, version string) *PyprojectBuilder {
	if _, ok := b.groups[group]; !ok {
		b.groupOrder = append(b.groupOrder, group)
	}
	b.groups[group] = append(b.groups[group], fmt.Sprintf("%s = %q", name, version))
	return b
}

// Build creates the file content (satisfies testkit.Builder interface).
func (b *PyprojectBuilder) Build() interface{} {
	return b.BuildContent()
}

// BuildContent creates the file content with a concrete return type.
func (b *PyprojectBuilder) BuildContent() string {
	var sb strings.Builder
	sb.WriteString("[tool.poetry]\n")
	fmt.Fprintf(&sb, "name = %q\n", b.name)
	sb.WriteString("version = \"0.1.0\"\n\n")

	sb.WriteString("[tool.poetry.dependencies]\n")
	sb.WriteString("python = \"^3.11\"\n")
	for _, line := range b.dependencies {
		sb.WriteString(line + "\n")
	}

	for _, group := range b.groupOrder {
		fmt.Fprintf(&sb, "\n[tool.poetry.group.%s.dependencies]\n", group)
		for _, line := range b.groups[group] {
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n[build-system]\n")
	sb.WriteString("requires = [\"poetry-core\"]\n")
	sb.WriteString("build-backend = \"poetry.core.masonry.api\"\n")
	return sb.String()
}

// Reset clears the builder state, allowing it to be reused.
func (b *PyprojectBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-project"
	b.dependencies = nil
	b.groups = make(map[string][]string)
	b.groupOrder = nil
	return b
}

// Clone creates a deep copy of the PyprojectBuilder.
func (b *PyprojectBuilder) Clone() testkit.Builder {
	groups := make(map[string][]string, len(b.groups))
	for group, lines := range b.groups {
		groups[group] = append([]string(nil), lines...)
	}
	return &PyprojectBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		dependencies: append([]string(nil), b.dependencies...),
		groups:       groups,
		groupOrder:   append([]string(nil), b.groupOrder...),
	}
}
