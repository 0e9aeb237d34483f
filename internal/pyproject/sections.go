package pyproject

import (
	"regexp"
	"strings"
)

const (
	toolKey    = "tool"
	poetryKey  = "poetry"
	groupKey   = "group"
	versionKey = "version"
	pathKey    = "path"
)

// sectionNames are the table names holding dependency declarations, wherever
// they appear below [tool.poetry].
// separatorRun is the PEP 503 rule: runs of "-", "_" and "." are equivalent.
var separatorRun = regexp.MustCompile(`[-_.]+`)

var sectionNames = map[string]bool{ //nolint:gochecknoglobals // fixed lookup set
	"dependencies":     true,
	"dev-dependencies": true,
}

// Section is a table of dependency declarations.
type Section struct {
	// Path is the full key path, e.g. tool.poetry.group.docs.dependencies.
	Path []string
	// Group is the dependency group owning the section, empty for the main one.
	Group string

	table *Value
}

// Name returns the dotted path of the section.
func (s Section) Name() string {
	return strings.Join(s.Path, ".")
}

// Declarations lists the section entries that look like dependency
// declarations: a bare string or a table.
func (s Section) Declarations() []Declaration {
	var declarations []Declaration
	for _, key := range s.table.Keys() {
		value := s.table.items[key]
		if value.Kind != KindString && value.Kind != KindTable {
			continue
		}
		declarations = append(declarations, Declaration{Name: key, Section: s, value: value})
	}
	return declarations
}

// Find returns the declaration whose name matches name once both are
// normalized, so "typing_extensions" is found by "Typing-Extensions".
func (s Section) Find(name string) (Declaration, bool) {
	wanted := canonicalName(name)
	for _, declaration := range s.Declarations() {
		if canonicalName(declaration.Name) == wanted {
			return declaration, true
		}
	}
	return Declaration{}, false
}

// Declaration is a single dependency entry, with the name as written.
type Declaration struct {
	Name    string
	Section Section

	value *Value
}

// VersionValue returns the string node carrying the version: the entry itself
// for `name = "1.0"`, the version key for `name = { version = "1.0" }`.
func (d Declaration) VersionValue() (*Value, bool) {
	switch d.value.Kind {
	case KindString:
		return d.value, true
	case KindTable:
		version, ok := d.value.Get(versionKey)
		if !ok || version.Kind != KindString {
			return nil, false
		}
		return version, true
	default:
		return nil, false
	}
}

// LocalPath returns the path attribute of a path dependency.
func (d Declaration) LocalPath() (string, bool) {
	if d.value.Kind != KindTable {
		return "", false
	}
	return d.value.String(pathKey)
}

// Poetry returns the [tool.poetry] table.
func (d *Document) Poetry() (*Value, bool) {
	poetry, ok := d.root.Lookup(toolKey, poetryKey)
	if !ok || poetry.Kind != KindTable {
		return nil, false
	}
	return poetry, true
}

// Sections walks [tool.poetry] recursively and returns every dependency
// section in declaration order.
func (d *Document) Sections() []Section {
	poetry, ok := d.Poetry()
	if !ok {
		return nil
	}
	var sections []Section
	collectSections(poetry, []string{toolKey, poetryKey}, &sections)
	return sections
}

func collectSections(table *Value, path []string, out *[]Section) {
	for _, key := range table.keys {
		child := table.items[key]
		if child.Kind != KindTable {
			continue
		}
		childPath := make([]string, 0, len(path)+1)
		childPath = append(childPath, path...)
		childPath = append(childPath, key)

		if sectionNames[key] {
			*out = append(*out, Section{Path: childPath, Group: groupOf(childPath), table: child})
			continue
		}
		collectSections(child, childPath, out)
	}
}

func groupOf(path []string) string {
	for i := len(path) - 2; i > 0; i-- {
		if path[i-1] == groupKey {
			return path[i]
		}
	}
	if path[len(path)-1] == "dev-dependencies" {
		return "dev"
	}
	return ""
}

// Groups returns the dependency group names declared under [tool.poetry.group].
func (d *Document) Groups() []string {
	groups, ok := d.root.Lookup(toolKey, poetryKey, groupKey)
	if !ok {
		return nil
	}
	var names []string
	for _, key := range groups.Keys() {
		if child, _ := groups.Get(key); child.Kind == KindTable {
			names = append(names, key)
		}
	}
	return names
}

// PathDependencies returns the relative paths of every local path dependency,
// in declaration order and without duplicates.
func (d *Document) PathDependencies() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, section := range d.Sections() {
		for _, declaration := range section.Declarations() {
			path, ok := declaration.LocalPath()
			if !ok || seen[path] {
				continue
			}
			seen[path] = true
			paths = append(paths, path)
		}
	}
	return paths
}

func canonicalName(name string) string {
	return strings.ToLower(separatorRun.ReplaceAllString(name, "-"))
}
