package transformer

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// TextMergeTransformer joins adjacent text nodes that cover one continuous
// run of the source. Inline parsers such as linkify stop text at spaces and
// punctuation, which would otherwise give every word its own text component.
type TextMergeTransformer struct{}

func NewTextMergeTransformer() *TextMergeTransformer {
	return &TextMergeTransformer{}
}

// Transform implements the parser.ASTTransformer interface
func (t *TextMergeTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		current, ok := node.(*ast.Text)
		if !ok {
			return ast.WalkContinue, nil
		}

		for {
			next, ok := current.NextSibling().(*ast.Text)
			if !ok || !mergeable(current, next) {
				break
			}

			current.Segment = current.Segment.WithStop(next.Segment.Stop)
			current.SetSoftLineBreak(next.SoftLineBreak())
			current.SetHardLineBreak(next.HardLineBreak())

			current.Parent().RemoveChild(current.Parent(), next)
		}

		return ast.WalkContinue, nil
	})
}

func mergeable(prev, next *ast.Text) bool {
	return !prev.SoftLineBreak() &&
		!prev.HardLineBreak() &&
		!prev.IsRaw() &&
		!next.IsRaw() &&
		prev.Segment.Padding == 0 &&
		next.Segment.Padding == 0 &&
		prev.Segment.Stop == next.Segment.Start
}
