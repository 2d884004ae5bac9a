package util

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"github.com/vaneui/md/markdown"
	"github.com/vaneui/md/metadata"
)

func runWithArgs(args []string) error {
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "title-from-h1"},
			&cli.BoolFlag{Name: "title-from-filename"},
		},
		Before: CheckMutuallyExclusiveTitleFlags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return nil
		},
	}
	return cmd.Run(context.Background(), args)
}

func TestCheckMutuallyExclusiveTitleFlags(t *testing.T) {
	t.Run("neither flag set", func(t *testing.T) {
		assert.NoError(t, runWithArgs([]string{"cmd"}))
	})

	t.Run("only title-from-h1 set", func(t *testing.T) {
		assert.NoError(t, runWithArgs([]string{"cmd", "--title-from-h1"}))
	})

	t.Run("only title-from-filename set", func(t *testing.T) {
		assert.NoError(t, runWithArgs([]string{"cmd", "--title-from-filename"}))
	})

	t.Run("both flags set", func(t *testing.T) {
		assert.Error(t, runWithArgs([]string{"cmd", "--title-from-h1", "--title-from-filename"}))
	})
}

// run executes the md command with args and returns the command as seen by
// the action.
func run(t *testing.T, args ...string) *cli.Command {
	t.Helper()

	var seen *cli.Command

	cmd := &cli.Command{
		Name:  "md",
		Flags: Flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			seen = cmd
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"md"}, args...)))
	require.NotNil(t, seen)

	return seen
}

func TestOptions(t *testing.T) {
	theme := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(theme, []byte("title:\n  base: custom-title\n"), 0o644))

	cmd := run(t,
		"--drop-h1",
		"--features", "d2",
		"--features", "anchors",
		"--d2-format", "png",
		"--output-dir", "out",
		"--theme", theme,
	)

	opts, err := Options(cmd)
	require.NoError(t, err)

	assert.True(t, opts.DropFirstH1)
	assert.Equal(t, []string{"d2", "anchors"}, opts.Features)
	assert.Equal(t, "png", opts.D2Format)
	assert.Equal(t, 1.0, opts.D2Scale)
	assert.Equal(t, "browser", opts.MermaidProvider)
	assert.True(t, opts.LinkAttachments)
	assert.Equal(t, "custom-title", opts.Theme["title"].Base)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("MD_MERMAID_PROVIDER", "mermaid-go")
	t.Setenv("MD_SANITIZE", "true")

	opts, err := Options(run(t))
	require.NoError(t, err)

	assert.Equal(t, "mermaid-go", opts.MermaidProvider)
	assert.True(t, opts.Sanitize)
	assert.False(t, opts.LinkAttachments)
	assert.Equal(t, []string{"mermaid", "highlight"}, opts.Features)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out")
	source := filepath.Join(dir, "readme.md")

	require.NoError(t, os.WriteFile(
		source,
		[]byte("---\ntitle: Readme\n---\r\n# Hello\r\n\r\nworld\r\n"),
		0o644,
	))

	cmd := run(t, "--output-dir", output, "--standalone")

	opts, err := Options(cmd)
	require.NoError(t, err)

	path := processFile(source, cmd, opts, NewErrorHandler(true))
	assert.Equal(t, filepath.Join(output, "readme.html"), path)

	html, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(html), "<!DOCTYPE html>"))
	assert.Contains(t, string(html), "<title>Readme</title>")
	assert.Contains(t, string(html), ">Hello</span></h1>")
	assert.Contains(t, string(html), ".chroma")
	assert.NotContains(t, string(html), "\r")
}

func TestProcessFileMissing(t *testing.T) {
	cmd := run(t)

	opts, err := Options(cmd)
	require.NoError(t, err)

	path := processFile(filepath.Join(t.TempDir(), "missing.md"), cmd, opts, NewErrorHandler(true))
	assert.Empty(t, path)
}

func TestWriteOutputChangesOnly(t *testing.T) {
	dir := t.TempDir()

	path, err := writeOutput(dir, "docs/page.md", "<p>a</p>", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "page.html"), path)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))

	_, err = writeOutput(dir, "docs/page.md", "<p>a</p>", true)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "unchanged output must not be rewritten")

	_, err = writeOutput(dir, "docs/page.md", "<p>b</p>", true)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>b</p>", string(data))
}

func TestPage(t *testing.T) {
	html, err := Page(
		"<p>body</p>",
		&metadata.Meta{Title: "T", Lang: "fr", Stylesheets: []string{"site.css"}},
		markdown.Options{Features: []string{"mermaid"}, MermaidProvider: "mermaid-go"},
	)
	require.NoError(t, err)

	assert.Contains(t, html, `<html lang="fr">`)
	assert.Contains(t, html, `<link rel="stylesheet" href="site.css">`)
	assert.Contains(t, html, "<p>body</p>")
	assert.NotContains(t, html, "mermaid.initialize")
	assert.NotContains(t, html, "<style>")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "page.md")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	changed := make(chan string, 8)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, []string{file}, func(file string) {
			select {
			case changed <- file:
			default:
			}
		})
	}()

	// give the watcher time to register the directory
	require.Eventually(t, func() bool {
		_ = os.WriteFile(file, []byte("b"), 0o644)
		select {
		case name := <-changed:
			return name == file
		default:
			return false
		}
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestProcessFileIncludes(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, "shared")
	output := filepath.Join(dir, "out")
	source := filepath.Join(dir, "page.md")

	require.NoError(t, os.MkdirAll(shared, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(shared, "footer.md"),
		[]byte("Written by {{ .author }}\n"),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		source,
		[]byte("# Page\n\n<!-- Include: footer.md\nauthor: Ann -->\n"),
		0o644,
	))

	cmd := run(t, "--output-dir", output, "--include-path", shared)

	opts, err := Options(cmd)
	require.NoError(t, err)

	path := processFile(source, cmd, opts, NewErrorHandler(true))
	require.NotEmpty(t, path)

	html, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(html), "Written by Ann")
}

func TestProcessFileLeadingInclude(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out")
	source := filepath.Join(dir, "page.md")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "part.md"), []byte("Included text\n"), 0o644))
	require.NoError(t, os.WriteFile(source, []byte("<!-- Include: part.md -->\n\nBody text\n"), 0o644))

	cmd := run(t, "--output-dir", output)

	opts, err := Options(cmd)
	require.NoError(t, err)

	path := processFile(source, cmd, opts, NewErrorHandler(true))
	require.NotEmpty(t, path)

	html, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(html), ">Included text</span>")
	assert.Contains(t, string(html), ">Body text</span>")
}
