package entities

import (
	"fmt"
	"strings"
)

// ChangelogFileName is the Keep-a-Changelog file looked up next to a manifest.
const ChangelogFileName = "CHANGELOG.md"

const (
	unreleasedHeading = "## [Unreleased]"
	changedSubheading = "### Changed"
	releasePrefix     = "## ["
	bulletPrefix      = "- "
)

// ChangelogEntries formats one bullet per applied change, skipping duplicates
// (the same package updated in several sections).
func ChangelogEntries(changes []Change) []string {
	seen := make(map[string]bool)
	var entries []string
	for _, change := range changes {
		if !change.Applied() {
			continue
		}
		entry := fmt.Sprintf(
			"%schanged the Python dependency `%s` from `%s` to `%s`",
			bulletPrefix, change.Package, change.From, change.To,
		)
		if seen[entry] {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
	}
	return entries
}

// InsertChangelogEntry adds bullet entries under "## [Unreleased]" /
// "### Changed" of a Keep-a-Changelog document.
//
//   - Without an Unreleased release the content is returned unchanged.
//   - An existing Changed subsection receives the entries after its last bullet.
//   - Otherwise a Changed subsection is opened right below the Unreleased heading.
func InsertChangelogEntry(content string, entries []string) string {
	if len(entries) == 0 {
		return content
	}

	doc := changelog{lines: strings.Split(content, "\n")}

	unreleased := doc.indexOf(0, len(doc.lines), unreleasedHeading)
	if unreleased < 0 {
		return content
	}
	end := doc.nextRelease(unreleased)

	if changed := doc.indexOf(unreleased+1, end, changedSubheading); changed >= 0 {
		doc.insert(doc.lastBullet(changed, end)+1, entries)
	} else {
		block := append([]string{"", changedSubheading, ""}, entries...)
		doc.insert(unreleased+1, block)
	}

	return strings.Join(doc.lines, "\n")
}

type changelog struct {
	lines []string
}

// indexOf returns the first line in [from, to) equal to heading once trimmed.
func (c *changelog) indexOf(from, to int, heading string) int {
	for i := from; i < to; i++ {
		if strings.TrimSpace(c.lines[i]) == heading {
			return i
		}
	}
	return -1
}

// nextRelease returns the line of the release heading following start, or EOF.
func (c *changelog) nextRelease(start int) int {
	for i := start + 1; i < len(c.lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(c.lines[i]), releasePrefix) {
			return i
		}
	}
	return len(c.lines)
}

// lastBullet returns the last bullet line of the subsection opened at start.
func (c *changelog) lastBullet(start, end int) int {
	last := start
	for i := start + 1; i < end; i++ {
		trimmed := strings.TrimSpace(c.lines[i])
		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, bulletPrefix):
			last = i
		default:
			return last
		}
	}
	return last
}

func (c *changelog) insert(at int, extra []string) {
	lines := make([]string, 0, len(c.lines)+len(extra))
	lines = append(lines, c.lines[:at]...)
	lines = append(lines, extra...)
	c.lines = append(lines, c.lines[at:]...)
}
