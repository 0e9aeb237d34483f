package pyproject

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Project is the strictly validated, semantic view of a manifest.
type Project struct {
	Name    string
	Version string
	// Poetry is true when the manifest defines a [tool.poetry] table.
	Poetry bool
}

type projectFile struct {
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
}

// Decode validates data against the full TOML grammar (duplicate keys, table
// redefinitions, ...) and extracts what identifies a Poetry project.
func Decode(data []byte) (*Project, error) {
	var file projectFile
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	project := &Project{
		Name:    file.Tool.Poetry.Name,
		Version: file.Tool.Poetry.Version,
		Poetry:  meta.IsDefined(toolKey, poetryKey),
	}
	if project.Name == "" {
		project.Name = file.Project.Name
	}
	if project.Version == "" {
		project.Version = file.Project.Version
	}
	return project, nil
}
