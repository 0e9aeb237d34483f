// Package report renders the outcome of a run as width-aligned text tables.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
)

// Table is a plain text table whose columns grow to fit their widest cell.
type Table struct {
	headers   []string
	widths    []int
	rows      [][]string
	separator string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	return &Table{headers: headers, widths: widths, separator: "  "}
}

// AddRow appends a row; missing cells are empty and extra cells are dropped.
func (t *Table) AddRow(values ...string) *Table {
	row := make([]string, len(t.headers))
	copy(row, values)
	for i, value := range row {
		if width := runewidth.StringWidth(value); width > t.widths[i] {
			t.widths[i] = width
		}
	}
	t.rows = append(t.rows, row)
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the header, a dashed separator and every row to w.
func (t *Table) Render(w io.Writer) error {
	dashes := make([]string, len(t.widths))
	for i, width := range t.widths {
		dashes[i] = strings.Repeat("-", width)
	}

	lines := []string{t.format(t.headers), t.format(dashes)}
	for _, row := range t.rows {
		lines = append(lines, t.format(row))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) format(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = runewidth.FillRight(cell, t.widths[i])
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// Changes renders one row per change of the report, relative to base when possible.
func Changes(w io.Writer, report *entities.RunReport, base string) error {
	if len(report.Changes) == 0 {
		_, err := fmt.Fprintln(w, "All dependencies are up to date.")
		return err
	}

	table := NewTable("PROJECT", "SECTION", "PACKAGE", "FROM", "TO", "KIND", "STATUS")
	for _, change := range report.Changes {
		table.AddRow(
			relative(base, filepath.Dir(change.Manifest)),
			change.Section,
			change.Package,
			change.From,
			change.To,
			string(change.Kind),
			string(change.Status),
		)
	}
	if err := table.Render(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d project(s), %d version(s) changed\n", len(report.Projects), report.AppliedCount())
	return err
}

// Order renders the processing order, one project per row. Local
// dependencies are read from the plan graph, so edges to projects outside
// the scanned paths are listed too.
func Order(w io.Writer, plan *entities.Plan, base string) error {
	table := NewTable("#", "PROJECT", "NAME", "VERSION", "GROUPS", "LOCAL DEPENDENCIES")
	if plan == nil {
		return table.Render(w)
	}
	for i, manifest := range plan.Manifests {
		dependencies := manifest.Dependencies
		if plan.Graph != nil {
			dependencies = plan.Graph.Dependencies(manifest.Path)
		}
		deps := make([]string, 0, len(dependencies))
		for _, dep := range dependencies {
			deps = append(deps, relative(base, filepath.Dir(dep)))
		}
		table.AddRow(
			strconv.Itoa(i + 1),
			relative(base, manifest.Dir),
			manifest.Name,
			manifest.Version,
			strings.Join(manifest.Groups, ", "),
			strings.Join(deps, ", "),
		)
	}
	return table.Render(w)
}

func relative(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
