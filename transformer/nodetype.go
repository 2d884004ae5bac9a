package transformer

import (
	admonitions "github.com/stefanfritsch/goldmark-admonitions"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// NodeType names a goldmark node with the node type used by node configs.
// Nodes without a name return an empty string.
func NodeType(node ast.Node) string {
	switch node.Kind() {
	case ast.KindDocument:
		return "document"
	case ast.KindHeading:
		return "heading"
	case ast.KindParagraph:
		return "paragraph"
	case ast.KindThematicBreak:
		return "hr"
	case ast.KindImage:
		return "image"
	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		return "fence"
	case ast.KindBlockquote:
		return "blockquote"
	case ast.KindList:
		return "list"
	case ast.KindListItem:
		return "item"
	case east.KindTable:
		return "table"
	case east.KindTableHeader:
		return "thead"
	case KindTableBody:
		return "tbody"
	case east.KindTableRow:
		return "tr"
	case east.KindTableCell:
		if inTableHeader(node) {
			return "th"
		}
		return "td"
	case ast.KindTextBlock:
		return "inline"
	case ast.KindEmphasis:
		if node.(*ast.Emphasis).Level >= 2 {
			return "strong"
		}
		return "em"
	case east.KindStrikethrough:
		return "s"
	case ast.KindLink, ast.KindAutoLink:
		return "link"
	case ast.KindCodeSpan:
		return "code"
	case ast.KindText, ast.KindString:
		return "text"
	case KindError:
		return "error"
	case admonitions.KindAdmonition:
		return "admonition"
	case east.KindTaskCheckBox:
		return "checkbox"
	case ast.KindHTMLBlock, ast.KindRawHTML:
		return "html"
	}

	return ""
}

// Kinds lists the node kinds NodeType can name.
func Kinds() []ast.NodeKind {
	return []ast.NodeKind{
		ast.KindDocument,
		ast.KindHeading,
		ast.KindParagraph,
		ast.KindThematicBreak,
		ast.KindImage,
		ast.KindFencedCodeBlock,
		ast.KindCodeBlock,
		ast.KindBlockquote,
		ast.KindList,
		ast.KindListItem,
		east.KindTable,
		east.KindTableHeader,
		KindTableBody,
		east.KindTableRow,
		east.KindTableCell,
		ast.KindTextBlock,
		ast.KindEmphasis,
		east.KindStrikethrough,
		ast.KindLink,
		ast.KindAutoLink,
		ast.KindCodeSpan,
		ast.KindText,
		ast.KindString,
		KindError,
		admonitions.KindAdmonition,
		east.KindTaskCheckBox,
		ast.KindHTMLBlock,
		ast.KindRawHTML,
	}
}

func inTableHeader(node ast.Node) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case east.KindTableHeader:
			return true
		case east.KindTable, KindTableBody:
			return false
		}
	}
	return false
}
