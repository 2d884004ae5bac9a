package transformer

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// TableBodyTransformer gives every table section a node of its own: header
// cells are wrapped in a row and body rows are moved into a TableBody.
type TableBodyTransformer struct{}

func NewTableBodyTransformer() *TableBodyTransformer {
	return &TableBodyTransformer{}
}

// Transform implements the parser.ASTTransformer interface
func (t *TableBodyTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var tables []*east.Table

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if table, ok := node.(*east.Table); ok {
				tables = append(tables, table)
			}
		}
		return ast.WalkContinue, nil
	})

	for _, table := range tables {
		var body *TableBody

		for child := table.FirstChild(); child != nil; {
			next := child.NextSibling()

			switch section := child.(type) {
			case *east.TableHeader:
				wrapHeaderCells(section)

			case *east.TableRow:
				if body == nil {
					body = NewTableBody()
					table.InsertBefore(table, section, body)
				}

				table.RemoveChild(table, section)
				body.AppendChild(body, section)
			}

			child = next
		}
	}
}

func wrapHeaderCells(header *east.TableHeader) {
	if header.FirstChild() == nil || header.FirstChild().Kind() == east.KindTableRow {
		return
	}

	row := east.NewTableRow(header.Alignments)

	for cell := header.FirstChild(); cell != nil; {
		next := cell.NextSibling()
		header.RemoveChild(header, cell)
		row.AppendChild(row, cell)
		cell = next
	}

	header.AppendChild(header, row)
}
