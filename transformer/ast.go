package transformer

import (
	"github.com/yuin/goldmark/ast"
)

// KindError is the kind of nodes that failed validation.
var KindError = ast.NewNodeKind("Error")

// Error replaces a node whose attributes failed validation. The message is
// kept as its only child so that it renders through the text component.
type Error struct {
	ast.BaseBlock
	Message string
}

func NewError(message string) *Error {
	node := &Error{Message: message}

	text := ast.NewString([]byte(message))
	text.SetAttributeString("content", message)
	node.AppendChild(node, text)

	return node
}

func (n *Error) Kind() ast.NodeKind {
	return KindError
}

func (n *Error) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Message": n.Message}, nil)
}

// KindTableBody is the kind of TableBody nodes.
var KindTableBody = ast.NewNodeKind("TableBody")

// TableBody groups the body rows of a table.
type TableBody struct {
	ast.BaseBlock
}

func NewTableBody() *TableBody {
	return &TableBody{}
}

func (n *TableBody) Kind() ast.NodeKind {
	return KindTableBody
}

func (n *TableBody) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}
