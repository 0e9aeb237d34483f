package repositories

// ManifestRepository gives access to the project files the updater reads and
// rewrites: pyproject.toml manifests and their CHANGELOG.md.
type ManifestRepository interface {
	// Locate returns the absolute path of every manifest below root, sorted,
	// never descending into directories named in excludeDirs.
	Locate(root string, excludeDirs []string) ([]string, error)

	// Read returns the whole content of a file.
	Read(path string) ([]byte, error)

	// Write replaces the whole content of an existing file, keeping its mode.
	Write(path string, content []byte) error

	// Exists reports whether path is a regular file.
	Exists(path string) bool
}
