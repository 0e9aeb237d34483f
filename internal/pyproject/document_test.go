//go:build unit

package pyproject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/poetryupdater/internal/pyproject"
)

const sampleManifest = `# Workspace library
[tool.poetry]
name = "inner_1"
version = "0.1.0"
authors = ["Team <team@example.com>"]

[tool.poetry.dependencies]
python = "^3.11"   # interpreter
shpyx = "0.0.13"
Requests = { version = "2.31.0", extras = ["socks"] }
inner_2 = { path = "../inner_2", develop = true }

[[tool.poetry.source]]
name = "internal"
url = "https://pypi.example.com/simple"

[build-system]
requires = ["poetry-core"]
build-backend = "poetry.core.masonry.api"
`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("should render an untouched document byte for byte", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(sampleManifest)

		// when
		doc, err := pyproject.Parse(data)

		// then
		require.NoError(t, err)
		assert.False(t, doc.Changed())
		assert.Equal(t, sampleManifest, string(doc.Bytes()))
	})

	t.Run("should expose tables in declaration order with original casing", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(sampleManifest)

		// when
		doc, err := pyproject.Parse(data)

		// then
		require.NoError(t, err)
		deps, ok := doc.Root().Lookup("tool", "poetry", "dependencies")
		require.True(t, ok)
		assert.Equal(t, []string{"python", "shpyx", "Requests", "inner_2"}, deps.Keys())

		requests, ok := deps.Get("Requests")
		require.True(t, ok)
		assert.Equal(t, pyproject.KindTable, requests.Kind)
		version, ok := requests.String("version")
		require.True(t, ok)
		assert.Equal(t, "2.31.0", version)
	})

	t.Run("should resolve dotted keys into nested tables", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte("[tool]\npoetry.name = \"x\"\npoetry.dependencies.shpyx = \"0.0.13\"\n")

		// when
		doc, err := pyproject.Parse(data)

		// then
		require.NoError(t, err)
		shpyx, ok := doc.Root().Lookup("tool", "poetry", "dependencies", "shpyx")
		require.True(t, ok)
		assert.Equal(t, "0.0.13", shpyx.Str)
	})

	t.Run("should return ErrParse for invalid TOML", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte("[tool.poetry\nname = \"x\"\n")

		// when
		_, err := pyproject.Parse(data)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, pyproject.ErrParse)
	})

	t.Run("should return ErrParse for duplicate keys", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte("[tool.poetry.dependencies]\nshpyx = \"1\"\nshpyx = \"2\"\n")

		// when
		_, err := pyproject.Parse(data)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, pyproject.ErrParse)
	})
}

func TestDocumentSetString(t *testing.T) {
	t.Parallel()

	t.Run("should splice the new value and keep everything else", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte(sampleManifest))
		require.NoError(t, err)
		shpyx, _ := doc.Root().Lookup("tool", "poetry", "dependencies", "shpyx")

		// when
		err = doc.SetString(shpyx, "0.0.14")

		// then
		require.NoError(t, err)
		assert.True(t, doc.Changed())
		expected := replaceOnce(sampleManifest, `shpyx = "0.0.13"`, `shpyx = "0.0.14"`)
		assert.Equal(t, expected, string(doc.Bytes()))
	})

	t.Run("should keep literal string quoting", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte("[tool.poetry.dependencies]\nshpyx = '0.0.13'  # pinned by hand\n"))
		require.NoError(t, err)
		shpyx, _ := doc.Root().Lookup("tool", "poetry", "dependencies", "shpyx")

		// when
		err = doc.SetString(shpyx, "0.0.14")

		// then
		require.NoError(t, err)
		assert.Equal(t, "[tool.poetry.dependencies]\nshpyx = '0.0.14'  # pinned by hand\n", string(doc.Bytes()))
	})

	t.Run("should escape characters basic strings cannot hold", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte("a = \"1\"\n"))
		require.NoError(t, err)
		a, _ := doc.Root().Get("a")

		// when
		err = doc.SetString(a, `say "hi"`)

		// then
		require.NoError(t, err)
		assert.Equal(t, "a = \"say \\\"hi\\\"\"\n", string(doc.Bytes()))
	})

	t.Run("should not record an edit when the value is unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte(sampleManifest))
		require.NoError(t, err)
		shpyx, _ := doc.Root().Lookup("tool", "poetry", "dependencies", "shpyx")

		// when
		err = doc.SetString(shpyx, "0.0.13")

		// then
		require.NoError(t, err)
		assert.False(t, doc.Changed())
	})

	t.Run("should refuse non-string values", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := pyproject.Parse([]byte(sampleManifest))
		require.NoError(t, err)
		deps, _ := doc.Root().Lookup("tool", "poetry", "dependencies")

		// when
		err = doc.SetString(deps, "1.0")

		// then
		require.Error(t, err)
		assert.False(t, doc.Changed())
	})
}
