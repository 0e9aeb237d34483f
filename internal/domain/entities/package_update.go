package entities

import (
	"strings"

	"golang.org/x/mod/semver"
)

// PackageUpdate is one outdated package as reported by the package manager.
type PackageUpdate struct {
	Name      string
	Installed string
	Latest    string
}

// UpdateKind is the size of a version jump.
type UpdateKind string

const (
	UpdateMajor   UpdateKind = "major"
	UpdateMinor   UpdateKind = "minor"
	UpdatePatch   UpdateKind = "patch"
	UpdateUnknown UpdateKind = "unknown"
)

// Kind classifies the jump from the installed to the latest version.
func (u PackageUpdate) Kind() UpdateKind {
	return ClassifyUpdate(u.Installed, u.Latest)
}

// ClassifyUpdate determines whether moving from current to latest is a major,
// minor or patch update. Versions that are not semver-shaped (PEP 440
// pre-releases, post-releases, ...) are reported as UpdateUnknown.
func ClassifyUpdate(current, latest string) UpdateKind {
	currentNorm := normalizeVersion(current)
	latestNorm := normalizeVersion(latest)

	if !semver.IsValid(currentNorm) || !semver.IsValid(latestNorm) {
		return UpdateUnknown
	}

	switch {
	case semver.Major(currentNorm) != semver.Major(latestNorm):
		return UpdateMajor
	case semver.MajorMinor(currentNorm) != semver.MajorMinor(latestNorm):
		return UpdateMinor
	default:
		return UpdatePatch
	}
}

// normalizeVersion ensures version has the 'v' prefix semver expects.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
