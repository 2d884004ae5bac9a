package stdlib

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFence(t *testing.T) {
	lib, err := New(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = lib.Execute(&buf, "md:fence", map[string]any{
		"Title":        "main.go",
		"TitleClasses": []string{"text-sm", "font-bold"},
		"Language":     "go",
		"Code":         "a < b",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<div class="text-sm font-bold">main.go</div>`)
	assert.Contains(t, out, `<code class="language-go">a &lt; b</code>`)
}

func TestFenceHighlighted(t *testing.T) {
	lib, err := New(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = lib.Execute(&buf, "md:fence", map[string]any{
		"Code": template.HTML(`<span class="kw">func</span>`),
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `<code><span class="kw">func</span></code>`)
}

func TestPage(t *testing.T) {
	lib, err := New(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = lib.Execute(&buf, "md:page", map[string]any{
		"Title":   "Hello",
		"Body":    template.HTML("<p>hi</p>"),
		"Styles":  template.CSS(".chroma { color: red }"),
		"Mermaid": true,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, `<title>Hello</title>`)
	assert.Contains(t, out, `<style>.chroma { color: red }</style>`)
	assert.Contains(t, out, `mermaid.initialize`)
	assert.Contains(t, out, "<p>hi</p>")
}

func TestFunctions(t *testing.T) {
	lib, err := New(map[string]any{
		"shout": func(s string) string { return strings.ToUpper(s) + "!" },
	})
	require.NoError(t, err)

	_, err = lib.Templates.New("greeting").Parse(`{{ shout . }}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, lib.Execute(&buf, "greeting", "hi"))
	assert.Equal(t, "HI!", buf.String())
}

func TestSprigFunctions(t *testing.T) {
	lib, err := New(nil)
	require.NoError(t, err)

	_, err = lib.Templates.New("title").Parse(`{{ . | title }} {{ default "none" "" }}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, lib.Execute(&buf, "title", "hello world"))
	assert.Equal(t, "Hello World none", buf.String())
}

func TestFunctionsRejectNonFunc(t *testing.T) {
	_, err := New(map[string]any{"answer": 42})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "custom"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "custom", "hello.html"),
		[]byte(`<b>{{ . }}</b>`),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "md:mermaid.html"),
		[]byte(`<div class="diagram">{{ .Source }}</div>`),
		0o644,
	))

	lib, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, lib.Load(dir))

	var buf bytes.Buffer
	require.NoError(t, lib.Execute(&buf, "custom/hello", "world"))
	assert.Equal(t, "<b>world</b>", buf.String())

	buf.Reset()
	require.NoError(t, lib.Execute(&buf, "md:mermaid", map[string]any{"Source": "graph TD"}))
	assert.Equal(t, `<div class="diagram">graph TD</div>`, buf.String())
}

func TestExecuteUnknown(t *testing.T) {
	lib, err := New(nil)
	require.NoError(t, err)

	err = lib.Execute(&bytes.Buffer{}, "missing", nil)
	assert.Error(t, err)
}
