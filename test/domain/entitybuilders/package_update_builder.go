//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PackageUpdateBuilder helps create test package updates with a fluent interface.
type PackageUpdateBuilder struct {
	*testkit.BaseBuilder
	name      string
	installed string
	latest    string
}

// NewPackageUpdateBuilder creates a new package update builder with sensible defaults.
func NewPackageUpdateBuilder() *PackageUpdateBuilder {
	return &PackageUpdateBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "requests",
		installed:   "2.31.0",
		latest:      "2.32.3",
	}
}

// WithName sets the package name.
func (b *PackageUpdateBuilder) WithName(name string) *PackageUpdateBuilder {
	b.name = name
	return b
}

// WithInstalled sets the installed version.
func (b *PackageUpdateBuilder) WithInstalled(version string) *PackageUpdateBuilder {
	b.installed = version
	return b
}

// WithLatest sets the latest version.
func (b *PackageUpdateBuilder) WithLatest(version string) *PackageUpdateBuilder {
	b.latest = version
	return b
}

// Build creates the package update (satisfies testkit.Builder interface).
func (b *PackageUpdateBuilder) Build() interface{} {
	return b.BuildPackageUpdate()
}

// BuildPackageUpdate creates the package update with a concrete return type.
func (b *PackageUpdateBuilder) BuildPackageUpdate() entities.PackageUpdate {
	return entities.PackageUpdate{
		Name:      b.name,
		Installed: b.installed,
		Latest:    b.latest,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageUpdateBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "requests"
	b.installed = "2.31.0"
	b.latest = "2.32.3"
	return b
}

// Clone creates a deep copy of the PackageUpdateBuilder.
func (b *PackageUpdateBuilder) Clone() testkit.Builder {
	return &PackageUpdateBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		installed:   b.installed,
		latest:      b.latest,
	}
}
