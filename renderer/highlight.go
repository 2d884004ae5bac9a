package renderer

import (
	"bytes"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/reconquest/karma-go"
)

const DefaultHighlightStyle = "github"

func formatter() *chromahtml.Formatter {
	return chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)
}

// Highlight tokenizes code with the lexer registered for language and
// returns chroma markup using CSS classes. It reports false when there is no
// lexer for the language.
func Highlight(code, language string) (template.HTML, bool, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", false, nil
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false, karma.Format(err, "unable to tokenise %s code", language)
	}

	var buf bytes.Buffer
	err = formatter().Format(&buf, styles.Fallback, iterator)
	if err != nil {
		return "", false, karma.Format(err, "unable to format %s code", language)
	}

	return template.HTML(buf.String()), true, nil
}

// HighlightCSS returns the stylesheet for the classes Highlight emits.
func HighlightCSS(style string) (template.CSS, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}

	var buf bytes.Buffer
	err := formatter().WriteCSS(&buf, styles.Get(style))
	if err != nil {
		return "", karma.Format(err, "unable to write css for style %q", style)
	}

	return template.CSS(buf.String()), nil
}
