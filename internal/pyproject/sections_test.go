//go:build unit

package pyproject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/poetryupdater/internal/pyproject"
)

const groupedManifest = `[tool.poetry]
name = "outer"
version = "1.0.0"

[tool.poetry.dependencies]
python = "^3.11"
inner_1 = { path = "../inner_1", develop = true }

[tool.poetry.dev-dependencies]
pytest = "7.4.0"

[tool.poetry.group.docs.dependencies]
mkdocs = "1.5.0"

[tool.poetry.group.lint]
optional = true

[tool.poetry.group.lint.dependencies]
ruff = "0.1.0"
inner_1 = { path = "../inner_1" }
`

func TestDocumentSections(t *testing.T) {
	t.Parallel()

	t.Run("should find main, dev and every group section", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte(groupedManifest))
		require.NoError(t, err)

		// when
		sections := doc.Sections()

		// then
		names := make([]string, 0, len(sections))
		groups := make([]string, 0, len(sections))
		for _, section := range sections {
			names = append(names, section.Name())
			groups = append(groups, section.Group)
		}
		assert.Equal(t, []string{
			"tool.poetry.dependencies",
			"tool.poetry.dev-dependencies",
			"tool.poetry.group.docs.dependencies",
			"tool.poetry.group.lint.dependencies",
		}, names)
		assert.Equal(t, []string{"", "dev", "docs", "lint"}, groups)
	})

	t.Run("should find sections under arbitrarily nested tables", func(t *testing.T) {
		t.Parallel()

		// given
		data := "[tool.poetry]\nname = \"x\"\n\n[tool.poetry.group.ci.sub.dependencies]\nblack = \"23.1.0\"\n"
		doc, err := pyproject.Parse([]byte(data))
		require.NoError(t, err)

		// when
		sections := doc.Sections()

		// then
		require.Len(t, sections, 1)
		assert.Equal(t, "tool.poetry.group.ci.sub.dependencies", sections[0].Name())
		assert.Equal(t, "ci", sections[0].Group)
	})

	t.Run("should return nothing without a tool.poetry table", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte("[project]\nname = \"x\"\ndependencies = [\"requests\"]\n"))
		require.NoError(t, err)

		// when
		sections := doc.Sections()

		// then
		assert.Empty(t, sections)
		_, ok := doc.Poetry()
		assert.False(t, ok)
	})
}

func TestSectionFind(t *testing.T) {
	t.Parallel()

	t.Run("should match names case-insensitively and report the declared casing", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte("[tool.poetry.dependencies]\nPyYAML = \"6.0\"\n"))
		require.NoError(t, err)
		section := doc.Sections()[0]

		// when
		declaration, found := section.Find("pyyaml")

		// then
		require.True(t, found)
		assert.Equal(t, "PyYAML", declaration.Name)
		version, ok := declaration.VersionValue()
		require.True(t, ok)
		assert.Equal(t, "6.0", version.Str)
	})

	t.Run("should match names differing only by separators", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte(
			"[tool.poetry.dependencies]\ntyping_extensions = \"4.8.0\"\nBackports-Zoneinfo = \"0.2.1\"\n",
		))
		require.NoError(t, err)
		section := doc.Sections()[0]

		// when
		typing, typingFound := section.Find("typing-extensions")
		backports, backportsFound := section.Find("backports.zoneinfo")
		_, missingFound := section.Find("typingextensions")

		// then
		require.True(t, typingFound)
		assert.Equal(t, "typing_extensions", typing.Name)
		require.True(t, backportsFound)
		assert.Equal(t, "Backports-Zoneinfo", backports.Name)
		assert.False(t, missingFound)
	})

	t.Run("should report no version for a table without one", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte("[tool.poetry.dependencies]\nlib = { git = \"https://example.com/lib.git\" }\n"))
		require.NoError(t, err)
		declaration, found := doc.Sections()[0].Find("lib")
		require.True(t, found)

		// when
		_, ok := declaration.VersionValue()

		// then
		assert.False(t, ok)
	})
}

func TestDocumentGroups(t *testing.T) {
	t.Parallel()

	t.Run("should list group names in declaration order", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte(groupedManifest))
		require.NoError(t, err)

		// when
		groups := doc.Groups()

		// then
		assert.Equal(t, []string{"docs", "lint"}, groups)
	})
}

func TestDocumentPathDependencies(t *testing.T) {
	t.Parallel()

	t.Run("should collect path dependencies from every section once", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte(groupedManifest))
		require.NoError(t, err)

		// when
		paths := doc.PathDependencies()

		// then
		assert.Equal(t, []string{"../inner_1"}, paths)
	})
}
