package pyproject

import (
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
)

// lockedPrefix marks a declaration pinned to an exact version.
const lockedPrefix = "=="

// Policy restricts which updates are written.
type Policy struct {
	SkipMajor bool
}

// ApplyUpdates rewrites the version of every declaration matching an outdated
// package, in every dependency section of doc. Only version tokens change;
// declaration names keep their casing. Packages not declared in doc are
// ignored. The returned changes carry Section, Package, From, To, Kind and
// Status; the caller fills Manifest.
func ApplyUpdates(doc *Document, updates []entities.PackageUpdate, policy Policy) ([]entities.Change, error) {
	sections := doc.Sections()

	var changes []entities.Change
	for _, update := range updates {
		for _, section := range sections {
			declaration, found := section.Find(update.Name)
			if !found {
				continue
			}

			change, err := applyUpdate(doc, declaration, update, policy)
			if err != nil {
				return nil, err
			}
			if change != nil {
				changes = append(changes, *change)
			}
		}
	}

	return changes, nil
}

func applyUpdate(
	doc *Document,
	declaration Declaration,
	update entities.PackageUpdate,
	policy Policy,
) (*entities.Change, error) {
	change := &entities.Change{
		Section: declaration.Section.Name(),
		Package: declaration.Name,
		To:      update.Latest,
		Kind:    update.Kind(),
	}

	version, ok := declaration.VersionValue()
	if !ok {
		logger.Debugf("Skipping %s in %s: no version to update", declaration.Name, change.Section)
		change.Status = entities.StatusNoVersion
		return change, nil
	}
	change.From = version.Str

	switch {
	case strings.HasPrefix(strings.TrimSpace(version.Str), lockedPrefix):
		logger.Infof("Skipping %s: version is locked (%s)", declaration.Name, version.Str)
		change.Status = entities.StatusLocked
		return change, nil
	case policy.SkipMajor && change.Kind == entities.UpdateMajor:
		logger.Infof("Skipping %s: %s -> %s is a major update", declaration.Name, update.Installed, update.Latest)
		change.Status = entities.StatusSkippedMajor
		return change, nil
	case version.Str == update.Latest:
		return nil, nil
	}

	logger.Infof("Updating %s: %s -> %s", declaration.Name, version.Str, update.Latest)
	if err := doc.SetString(version, update.Latest); err != nil {
		return nil, err
	}
	change.Status = entities.StatusUpdated
	return change, nil
}
