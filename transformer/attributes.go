package transformer

import (
	"strings"

	"github.com/reconquest/pkg/log"
	"github.com/vaneui/md/types"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var errorsKey = parser.NewContextKey()

// Errors returns the validation errors recorded while transforming a
// document parsed with pc.
func Errors(pc parser.Context) []ValidationError {
	if pc == nil {
		return nil
	}

	errs, _ := pc.Get(errorsKey).([]ValidationError)
	return errs
}

func addErrors(pc parser.Context, errs []ValidationError) {
	pc.Set(errorsKey, append(Errors(pc), errs...))
}

// AttributeTransformer validates the attributes of every configured node and
// stores them on the node. Nodes that fail validation are replaced with an
// Error node.
type AttributeTransformer struct {
	Config *types.Config
}

func NewAttributeTransformer(config *types.Config) *AttributeTransformer {
	return &AttributeTransformer{
		Config: config,
	}
}

type replacement struct {
	node ast.Node
	with *Error
}

// Transform implements the parser.ASTTransformer interface
func (t *AttributeTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var replacements []replacement

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if link, ok := node.(*ast.AutoLink); ok && link.ChildCount() == 0 {
			link.AppendChild(link, ast.NewString(link.Label(source)))
		}

		nodeType := NodeType(node)

		config, ok := t.Config.Lookup(nodeType)
		if !ok {
			return ast.WalkContinue, nil
		}

		attributes := Extract(node, source)
		for name, value := range types.AttributesOf(node) {
			if _, ok := config.Attributes[name]; ok {
				attributes[name] = value
			}
		}

		validated, errs := Validate(nodeType, config, attributes)
		errs = append(errs, ValidateChildren(nodeType, config, node)...)

		if len(errs) > 0 {
			addErrors(pc, errs)

			messages := make([]string, len(errs))
			for i, err := range errs {
				messages[i] = err.Error()
			}

			log.Debugf(nil, "replacing invalid %s node: %s", nodeType, strings.Join(messages, "; "))

			replacements = append(replacements, replacement{
				node: node,
				with: NewError(strings.Join(messages, "; ")),
			})

			return ast.WalkSkipChildren, nil
		}

		for name, value := range attributes {
			if _, ok := config.Attributes[name]; !ok {
				if _, user := node.AttributeString(name); !user {
					node.SetAttributeString(name, value)
				}
			}
		}

		for name, value := range validated {
			node.SetAttributeString(name, value)
		}

		return ast.WalkContinue, nil
	})

	for _, r := range replacements {
		parent := r.node.Parent()
		if parent == nil {
			doc.InsertBefore(doc, doc.FirstChild(), r.with)
			continue
		}

		parent.ReplaceChild(parent, r.node, r.with)
	}
}
