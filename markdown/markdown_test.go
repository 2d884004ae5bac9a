package markdown_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaneui/md/markdown"
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/util"
)

func TestCompile(t *testing.T) {
	result, err := markdown.Compile(
		[]byte("# Title\n\nSome *text* with `code`.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"),
		nil,
		nil,
		markdown.Options{},
	)
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Attachments)
	assert.Contains(t, result.HTML, `<h1 class="`)
	assert.Contains(t, result.HTML, `<em class="`)
	assert.Contains(t, result.HTML, "rounded-full")
	assert.Contains(t, result.HTML, "<tbody>")
}

func TestCompileValidationErrors(t *testing.T) {
	result, err := markdown.Compile(
		[]byte("# One {level=\"x\"}\n\n## Two\n"),
		nil,
		nil,
		markdown.Options{},
	)
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "heading", result.Errors[0].Node)
	assert.Equal(t, "level", result.Errors[0].Attribute)
	assert.Contains(t, result.HTML, ">Error:</strong>")
	assert.Contains(t, result.HTML, "<h2")
}

func TestCompileUserConfig(t *testing.T) {
	cfg := &types.Config{
		Nodes: types.Nodes{
			"heading": {Render: "Heading"},
		},
		Components: types.Components{
			"Heading": func(w util.BufWriter, p *types.Props) error {
				if !p.Entering {
					_, _ = w.WriteString("</header>\n")
					return nil
				}

				meta, _ := p.Variables["frontmatter"].(map[string]any)
				_, _ = w.WriteString(`<header data-author="`)
				_, _ = w.WriteString(meta["author"].(string))
				_, _ = w.WriteString(`">`)
				return nil
			},
		},
	}

	result, err := markdown.Compile(
		[]byte("# Hi\n\ntext\n"),
		map[string]any{"author": "jane"},
		cfg,
		markdown.Options{},
	)
	require.NoError(t, err)

	assert.Contains(t, result.HTML, `<header data-author="jane"><span`)
	assert.Contains(t, result.HTML, "</header>\n")
	// other nodes keep their defaults
	assert.Contains(t, result.HTML, `<p class="`)
}

func TestCompileTheme(t *testing.T) {
	result, err := markdown.Compile(
		[]byte("# Title\n"),
		nil,
		nil,
		markdown.Options{
			Theme: ui.Theme{
				"title": {
					ExtraClasses: map[string]string{"xl": "tracking-tight"},
				},
			},
		},
	)
	require.NoError(t, err)

	assert.Contains(t, result.HTML, "text-4xl")
	assert.Contains(t, result.HTML, "tracking-tight")
}

func TestCompileAnchors(t *testing.T) {
	result, err := markdown.Compile([]byte("## Install\n"), nil, nil, markdown.Options{
		Features: []string{"anchors"},
	})
	require.NoError(t, err)

	assert.Contains(t, result.HTML, `href="#install"`)
}

func TestCompileSanitize(t *testing.T) {
	source := []byte("hello <script>alert(1)</script>\n\n[x](/a)\n")

	result, err := markdown.Compile(source, nil, nil, markdown.Options{
		Unsafe:   true,
		Sanitize: true,
	})
	require.NoError(t, err)

	assert.NotContains(t, result.HTML, "<script>")
	assert.Contains(t, result.HTML, `class="`)
	assert.Contains(t, result.HTML, `href="/a"`)
}

func TestCompileUnsafe(t *testing.T) {
	source := []byte("<div>raw</div>\n")

	result, err := markdown.Compile(source, nil, nil, markdown.Options{})
	require.NoError(t, err)
	assert.Contains(t, result.HTML, "&lt;div&gt;raw&lt;/div&gt;")
	assert.NotContains(t, result.HTML, "<div>raw</div>")

	result, err = markdown.Compile(source, nil, nil, markdown.Options{Unsafe: true})
	require.NoError(t, err)
	assert.Contains(t, result.HTML, "<div>raw</div>")
}

func TestCompileInlineHTMLAsText(t *testing.T) {
	result, err := markdown.Compile([]byte("<invalid>markdown</invalid>"), nil, nil, markdown.Options{})
	require.NoError(t, err)

	assert.Contains(t, result.HTML, "&lt;invalid&gt;<span")
	assert.Contains(t, result.HTML, ">markdown</span>&lt;/invalid&gt;")
	assert.NotContains(t, result.HTML, "<invalid>")
}

func TestCompileTemplatesDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "md:mermaid.html"),
		[]byte(`<div class="diagram">{{ .Source }}</div>`),
		0o644,
	))

	result, err := markdown.Compile(
		[]byte("```mermaid\ngraph TD\n```\n"),
		nil,
		nil,
		markdown.Options{
			Features:     []string{"mermaid"},
			TemplatesDir: dir,
		},
	)
	require.NoError(t, err)

	assert.Contains(t, result.HTML, "<div class=\"diagram\">graph TD\n</div>")
}

func TestCompileFunctions(t *testing.T) {
	_, err := markdown.Compile([]byte("x"), nil, &types.Config{
		Functions: map[string]any{"broken": "not a function"},
	}, markdown.Options{})
	assert.Error(t, err)
}
