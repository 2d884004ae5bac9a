package transformer

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/reconquest/regexputil-go"
	admonitions "github.com/stefanfritsch/goldmark-admonitions"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

var (
	// lang? options? {attributes}?
	reFenceInfo = regexp.MustCompile(
		`^(?P<language>[^\s{]*)\s*(?P<options>[^{]*?)\s*(?:\{(?P<attributes>[^}]*)\})?\s*$`,
	)

	reFenceAttribute = regexp.MustCompile(
		`(?P<name>[\w-]+)\s*=\s*(?:"(?P<quoted>[^"]*)"|'(?P<single>[^']*)'|(?P<bare>[^\s"']+))`,
	)
)

// Extract reads the attributes goldmark stores in node fields. Values are
// raw: strings, ints and bools that validation coerces afterwards.
func Extract(node ast.Node, source []byte) map[string]any {
	attributes := map[string]any{}

	switch n := node.(type) {
	case *ast.Heading:
		attributes["level"] = n.Level

	case *ast.Image:
		attributes["src"] = string(n.Destination)
		attributes["alt"] = plainText(n, source)
		if len(n.Title) > 0 {
			attributes["title"] = string(n.Title)
		}

	case *ast.Link:
		attributes["href"] = string(n.Destination)
		if len(n.Title) > 0 {
			attributes["title"] = string(n.Title)
		}

	case *ast.AutoLink:
		href := string(n.URL(source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(href), "mailto:") {
			href = "mailto:" + href
		}
		attributes["href"] = href

	case *ast.FencedCodeBlock:
		attributes["content"] = lines(n, source)

		var info string
		if n.Info != nil {
			info = string(n.Info.Segment.Value(source))
		}

		for name, value := range ParseFenceInfo(info) {
			attributes[name] = value
		}

	case *ast.CodeBlock:
		attributes["content"] = lines(n, source)

	case *east.TableCell:
		if n.Alignment != east.AlignNone {
			attributes["align"] = n.Alignment.String()
		}

	case *ast.List:
		attributes["ordered"] = n.IsOrdered()
		if n.IsOrdered() && n.Start != 1 {
			attributes["start"] = n.Start
		}

	case *ast.CodeSpan:
		attributes["content"] = plainText(n, source)

	case *ast.Text:
		attributes["content"] = string(n.Segment.Value(source))

	case *ast.String:
		attributes["content"] = string(n.Value)

	case *admonitions.Admonition:
		if len(n.AdmonitionClass) > 0 {
			attributes["kind"] = string(n.AdmonitionClass)
		}
		if len(n.Title) > 0 {
			attributes["title"] = string(n.Title)
		}

	case *east.TaskCheckBox:
		attributes["checked"] = n.IsChecked
	}

	return attributes
}

// ParseFenceInfo parses the info string of a fenced code block, e.g.
//
//	go {process=false title="main.go"}
//	d2 title Architecture
func ParseFenceInfo(info string) map[string]any {
	attributes := map[string]any{}

	groups := reFenceInfo.FindStringSubmatch(strings.TrimSpace(info))
	if len(groups) == 0 {
		return attributes
	}

	if language := regexputil.Subexp(reFenceInfo, groups, "language"); language != "" {
		attributes["language"] = language
	}

	options := regexputil.Subexp(reFenceInfo, groups, "options")
	if title, ok := strings.CutPrefix(options, "title "); ok {
		attributes["title"] = strings.TrimSpace(title)
	}

	for _, pair := range reFenceAttribute.FindAllStringSubmatch(
		regexputil.Subexp(reFenceInfo, groups, "attributes"),
		-1,
	) {
		var (
			name   = regexputil.Subexp(reFenceAttribute, pair, "name")
			quoted = regexputil.Subexp(reFenceAttribute, pair, "quoted")
			single = regexputil.Subexp(reFenceAttribute, pair, "single")
			bare   = regexputil.Subexp(reFenceAttribute, pair, "bare")
		)

		switch {
		case quoted != "":
			attributes[name] = quoted
		case single != "":
			attributes[name] = single
		default:
			attributes[name] = bare
		}
	}

	return attributes
}

func lines(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < node.Lines().Len(); i++ {
		line := node.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// plainText concatenates the text below node, the way an image alt or a code
// span is displayed.
func plainText(node ast.Node, source []byte) string {
	_, isCode := node.(*ast.CodeSpan)

	var buf bytes.Buffer
	_ = ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch child := child.(type) {
		case *ast.Text:
			value := child.Segment.Value(source)
			if isCode && bytes.HasSuffix(value, []byte("\n")) {
				buf.Write(value[:len(value)-1])
				buf.WriteByte(' ')
				break
			}

			buf.Write(value)
			if child.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(child.Value)
		}

		return ast.WalkContinue, nil
	})

	return buf.String()
}
