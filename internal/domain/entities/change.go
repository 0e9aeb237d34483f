package entities

// ChangeStatus tells what happened to a matched declaration.
type ChangeStatus string

const (
	// StatusUpdated means the version was rewritten in the manifest.
	StatusUpdated ChangeStatus = "updated"
	// StatusPlanned means the version would be rewritten outside of a dry run.
	StatusPlanned ChangeStatus = "planned"
	// StatusLocked means the declaration is pinned with "==" and was left alone.
	StatusLocked ChangeStatus = "locked"
	// StatusSkippedMajor means a major update was refused by policy.
	StatusSkippedMajor ChangeStatus = "skipped-major"
	// StatusNoVersion means the declaration carries no version to rewrite.
	StatusNoVersion ChangeStatus = "no-version"
)

// Change records the outcome for one declaration of one outdated package.
type Change struct {
	Manifest string
	Section  string
	// Package is the name as declared in the manifest.
	Package string
	From    string
	To      string
	Kind    UpdateKind
	Status  ChangeStatus
}

// Applied reports whether the change modifies (or would modify) the manifest.
func (c Change) Applied() bool {
	return c.Status == StatusUpdated || c.Status == StatusPlanned
}
