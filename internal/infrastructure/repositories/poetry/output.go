package poetry

import (
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
)

// notInstalledMarker flags packages declared in the lock file but not installed.
const notInstalledMarker = "(!)"

// ParseOutdated reads the output of `poetry show --outdated --no-ansi`: one
// package per line, name, installed and latest version being the first three
// columns. Lines without those columns are ignored.
func ParseOutdated(output string) []entities.PackageUpdate {
	var updates []entities.PackageUpdate
	for _, line := range strings.Split(output, "\n") {
		fields := make([]string, 0, 4)
		for _, field := range strings.Fields(line) {
			if field != notInstalledMarker {
				fields = append(fields, field)
			}
		}

		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			logger.Warnf("[poetry] Ignoring unexpected output line %q", line)
			continue
		}

		updates = append(updates, entities.PackageUpdate{
			Name:      fields[0],
			Installed: fields[1],
			Latest:    fields[2],
		})
	}
	return updates
}
