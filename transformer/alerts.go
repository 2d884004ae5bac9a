package transformer

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var reLegacyQuoteType = regexp.MustCompile(`(?i)^\s*(info|note|warn|warning|tip)\b`)

// BlockquoteTypeTransformer classifies blockquotes and stores the class in
// the "type" attribute. GitHub alert markers ([!NOTE], [!TIP], ...) are
// removed from the text, legacy "Info:" style prefixes are kept.
type BlockquoteTypeTransformer struct{}

func NewBlockquoteTypeTransformer() *BlockquoteTypeTransformer {
	return &BlockquoteTypeTransformer{}
}

// Transform implements the parser.ASTTransformer interface
func (t *BlockquoteTypeTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		blockquote, ok := node.(*ast.Blockquote)
		if !ok {
			return ast.WalkContinue, nil
		}

		if _, ok := blockquote.AttributeString("type"); ok {
			return ast.WalkContinue, nil
		}

		paragraph, ok := blockquote.FirstChild().(*ast.Paragraph)
		if !ok {
			return ast.WalkContinue, nil
		}

		if alertType, markers := extractAlertType(paragraph, source); alertType != "" {
			blockquote.SetAttributeString("type", alertType)
			removeAlertMarkers(blockquote, paragraph, markers)
			return ast.WalkContinue, nil
		}

		if first, ok := paragraph.FirstChild().(*ast.Text); ok {
			groups := reLegacyQuoteType.FindStringSubmatch(string(first.Segment.Value(source)))
			if len(groups) > 0 {
				quoteType := strings.ToLower(groups[1])
				if quoteType == "warn" {
					quoteType = "warning"
				}
				blockquote.SetAttributeString("type", quoteType)
			}
		}

		return ast.WalkContinue, nil
	})
}

// extractAlertType checks if the paragraph starts with GitHub alert syntax.
// goldmark splits [!TYPE] into three text nodes: "[", "!TYPE" and "]".
func extractAlertType(paragraph *ast.Paragraph, source []byte) (string, []ast.Node) {
	var nodes []ast.Node
	for node := paragraph.FirstChild(); len(nodes) < 3 && node != nil && node.Kind() == ast.KindText; node = node.NextSibling() {
		nodes = append(nodes, node)
	}

	if len(nodes) < 3 {
		return "", nil
	}

	var (
		left   = string(nodes[0].(*ast.Text).Segment.Value(source))
		middle = string(nodes[1].(*ast.Text).Segment.Value(source))
		right  = string(nodes[2].(*ast.Text).Segment.Value(source))
	)

	if left != "[" || right != "]" || !strings.HasPrefix(middle, "!") {
		return "", nil
	}

	alertType := strings.ToLower(strings.TrimPrefix(middle, "!"))
	switch alertType {
	case "note", "tip", "important", "warning", "caution":
		return alertType, nodes
	}

	return "", nil
}

func removeAlertMarkers(blockquote *ast.Blockquote, paragraph *ast.Paragraph, markers []ast.Node) {
	for _, marker := range markers {
		paragraph.RemoveChild(paragraph, marker)
	}

	if paragraph.ChildCount() == 0 {
		blockquote.RemoveChild(blockquote, paragraph)
	}
}
