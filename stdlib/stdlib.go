package stdlib

import (
	"html/template"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
)

type Lib struct {
	Templates *template.Template
}

// New builds the template library. functions are installed as template
// functions next to the built-in ones and may override them.
func New(functions map[string]any) (*Lib, error) {
	var (
		lib Lib
		err error
	)

	lib.Templates, err = templates(functions)
	if err != nil {
		return nil, err
	}

	return &lib, nil
}

// Load parses every *.html file under dir as a template named after its path
// relative to dir without the extension, e.g. md/fence.html defines
// "md/fence". A file named md:fence.html replaces the built-in md:fence.
func (lib *Lib) Load(dir string) error {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "**", "*.html"))
	if err != nil {
		return karma.Format(err, "unable to glob templates in %q", dir)
	}

	sort.Strings(matches)

	for _, path := range matches {
		relative, err := filepath.Rel(dir, path)
		if err != nil {
			return karma.Format(err, "unable to resolve template path %q", path)
		}

		name := strings.TrimSuffix(filepath.ToSlash(relative), ".html")

		body, err := os.ReadFile(path)
		if err != nil {
			return karma.Format(err, "unable to read template %q", path)
		}

		log.Debugf(nil, "loading template %q from %q", name, path)

		_, err = lib.Templates.New(name).Parse(string(body))
		if err != nil {
			return karma.Describe("path", path).Format(
				err,
				"unable to parse template %q",
				name,
			)
		}
	}

	return nil
}

// Execute runs a named template.
func (lib *Lib) Execute(w io.Writer, name string, data any) error {
	err := lib.Templates.ExecuteTemplate(w, name, data)
	if err != nil {
		return karma.Format(err, "unable to execute template %q", name)
	}

	return nil
}

func templates(functions map[string]any) (*template.Template, error) {
	text := func(line ...string) string {
		return strings.Join(line, ``)
	}

	funcs := sprig.HtmlFuncMap()
	funcs["classes"] = func(classes []string) string {
		return strings.Join(classes, " ")
	}

	for name, function := range functions {
		// html/template panics on non-function values.
		if function == nil || reflect.TypeOf(function).Kind() != reflect.Func {
			return nil, karma.Describe("function", name).Reason(
				"template function must be a func",
			)
		}

		funcs[name] = function
	}

	templates := template.New(`stdlib`).Funcs(funcs)

	var err error

	for name, body := range map[string]string{
		// This template is used for rendering code in ```
		`md:fence`: text(
			`{{ if .Title }}<div class="{{ classes .TitleClasses }}">{{ .Title }}</div>{{ end }}`,
			`<pre style="margin: 0; font-family: monospace; font-size: 0.875rem">`,
			`<code{{ if .Language }} class="language-{{ .Language }}"{{ end }}>`,
			`{{ .Code }}`,
			`</code></pre>`,
		),

		// This template is used for rasterized diagrams.
		`md:image`: text(
			`<img src="{{ .Src }}" alt="{{ .Alt }}"`,
			`{{ if .Title }} title="{{ .Title }}"{{ end }}`,
			`{{ if .Width }} width="{{ .Width }}"{{ end }}`,
			`{{ if .Height }} height="{{ .Height }}"{{ end }}`,
			` style="display: block; max-width: 100%; height: auto">`,
		),

		// This template is used for inline SVG diagrams.
		`md:diagram`: text(
			`<figure class="md-diagram" style="margin: 0">`,
			`{{ .SVG }}`,
			`{{ if .Title }}<figcaption>{{ .Title }}</figcaption>{{ end }}`,
			`</figure>`,
		),

		// This template is used for mermaid diagrams rendered in the browser.
		`md:mermaid`: text(
			`<pre class="mermaid">{{ .Source }}</pre>`,
		),

		`md:error-label`: text(
			`<strong class="{{ classes .Classes }}">{{ .Label }}</strong> `,
		),

		// This template is used to wrap a document into a standalone page.
		`md:page`: text(
			`<!DOCTYPE html>{{ printf "\n" }}`,
			`<html lang="{{ or .Lang "en" }}">`,
			`<head>`,
			`<meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>{{ .Title }}</title>`,
			`{{ range .Stylesheets }}<link rel="stylesheet" href="{{ . }}">{{ end }}`,
			`{{ with .Styles }}<style>{{ . }}</style>{{ end }}`,
			`{{ if .Mermaid }}`,
			/**/ `<script type="module">`,
			/**/ `import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";`,
			/**/ `mermaid.initialize({ startOnLoad: true });`,
			/**/ `</script>`,
			`{{ end }}`,
			`</head>`,
			`<body>{{ printf "\n" }}{{ .Body }}{{ printf "\n" }}</body>`,
			`</html>{{ printf "\n" }}`,
		),
	} {
		templates, err = templates.New(name).Parse(body)
		if err != nil {
			err = karma.
				Describe("template", body).
				Format(
					err,
					"unable to parse template",
				)

			return nil, err
		}
	}

	return templates, nil
}
