package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocumentLeadingH1(t *testing.T) {
	testcases := []struct {
		name     string
		markdown string
		expected string
	}{
		{"plain", "# a\n\ntext\n", "a"},
		{"after text", "intro\n\n# Title here\n", "Title here"},
		{"closing hashes", "# Title #\n", "Title"},
		{"h2 only", "## Not this\n", ""},
		{"no heading", "text\n", ""},
		{"no newline", "# last", "last"},
	}

	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			assert.Equal(t, testcase.expected, ExtractDocumentLeadingH1([]byte(testcase.markdown)))
		})
	}
}

func TestSetTitleFromFilename(t *testing.T) {
	t.Run("set title from filename", func(t *testing.T) {
		meta := &Meta{Title: ""}
		setTitleFromFilename(meta, "/path/to/test.md")
		assert.Equal(t, "Test", meta.Title)
	})

	t.Run("replace underscores with spaces", func(t *testing.T) {
		meta := &Meta{Title: ""}
		setTitleFromFilename(meta, "/path/to/test_with_underscores.md")
		assert.Equal(t, "Test With Underscores", meta.Title)
	})

	t.Run("mixed underscores and dashes", func(t *testing.T) {
		meta := &Meta{Title: ""}
		setTitleFromFilename(meta, "/path/to/test_with-mixed_separators.md")
		assert.Equal(t, "Test With Mixed Separators", meta.Title)
	})
}

func TestExtractMetaYAML(t *testing.T) {
	data := []byte("---\ntitle: Hello\nlang: de\nauthor: jane\nstylesheets:\n  - a.css\n  - b.css\n---\n# Heading\n")

	meta, body, err := ExtractMeta(data, true, false, "")
	require.NoError(t, err)

	assert.Equal(t, "Hello", meta.Title)
	assert.Equal(t, "de", meta.Lang)
	assert.Equal(t, []string{"a.css", "b.css"}, meta.Stylesheets)
	assert.Equal(t, "jane", meta.Raw["author"])
	assert.Equal(t, "# Heading\n", string(body))
}

func TestExtractMetaTOML(t *testing.T) {
	data := []byte("+++\ntitle = \"From TOML\"\n+++\nbody\n")

	meta, body, err := ExtractMeta(data, false, false, "")
	require.NoError(t, err)

	assert.Equal(t, "From TOML", meta.Title)
	assert.Equal(t, "body\n", string(body))
}

func TestExtractMetaWithoutFrontmatter(t *testing.T) {
	data := []byte("just text\n")

	meta, body, err := ExtractMeta(data, false, false, "")
	require.NoError(t, err)

	assert.Empty(t, meta.Title)
	assert.Empty(t, meta.Raw)
	assert.Equal(t, data, body)
}

func TestExtractMetaHeaders(t *testing.T) {
	data := []byte("<!-- Title: Commented -->\n<!-- stylesheet: site.css -->\n\n# Heading\n")

	meta, body, err := ExtractMeta(data, true, false, "")
	require.NoError(t, err)

	assert.Equal(t, "Commented", meta.Title)
	assert.Equal(t, []string{"site.css"}, meta.Stylesheets)
	assert.Equal(t, "\n# Heading\n", string(body))
}

func TestExtractMetaKeepsIncludes(t *testing.T) {
	data := []byte("<!-- Title: Parts -->\n<!-- Include: part.md -->\n\nBody\n")

	meta, body, err := ExtractMeta(data, false, false, "")
	require.NoError(t, err)

	assert.Equal(t, "Parts", meta.Title)
	assert.Equal(t, "<!-- Include: part.md -->\n\nBody\n", string(body))
}

func TestExtractMetaTitleFallbacks(t *testing.T) {
	meta, _, err := ExtractMeta([]byte("text\n\n# From H1\n"), true, true, "some-file.md")
	require.NoError(t, err)
	assert.Equal(t, "From H1", meta.Title)

	meta, _, err = ExtractMeta([]byte("text\n"), true, true, "some-file.md")
	require.NoError(t, err)
	assert.Equal(t, "Some File", meta.Title)

	meta, _, err = ExtractMeta([]byte("# Ignored\n"), false, false, "some-file.md")
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
}

func TestExtractMetaInvalid(t *testing.T) {
	_, _, err := ExtractMeta([]byte("---\ntitle: [unclosed\n---\n"), false, false, "")
	assert.Error(t, err)
}
