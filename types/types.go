package types

import (
	"slices"

	"github.com/vaneui/md/attachment"
	"github.com/vaneui/md/stdlib"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

type AttributeType string

const (
	String  AttributeType = "String"
	Number  AttributeType = "Number"
	Boolean AttributeType = "Boolean"
)

// Attribute is the schema of a single node attribute.
type Attribute struct {
	Type     AttributeType
	Default  any
	Required bool
}

// NodeConfig maps a node type to the component that renders it. An empty
// Render renders the children of the node only. Children, when set, lists
// the node types allowed as direct children.
type NodeConfig struct {
	Render     string
	Attributes map[string]Attribute
	Children   []string
}

type Nodes map[string]NodeConfig

type Components map[string]Component

// Component renders a node. It is called twice per node, once when entering
// and once when leaving it, see Props.Entering.
type Component func(w util.BufWriter, p *Props) error

type Config struct {
	Nodes      Nodes
	Components Components
	Variables  map[string]any
	// Tags configures extension nodes such as admonitions and task list
	// checkboxes.
	Tags      Nodes
	Functions map[string]any
}

// Lookup finds the node config of a node type in Nodes, then in Tags.
func (c *Config) Lookup(nodeType string) (NodeConfig, bool) {
	if c == nil {
		return NodeConfig{}, false
	}

	if config, ok := c.Nodes[nodeType]; ok {
		return config, true
	}

	config, ok := c.Tags[nodeType]
	return config, ok
}

type RenderConfig struct {
	DropFirstH1     bool
	Features        []string
	HighlightStyle  string
	MermaidProvider string
	MermaidScale    float64
	D2Scale         float64
	D2Format        string
	Unsafe          bool
	// LinkAttachments references rasterized diagrams by file name instead
	// of embedding them as data URIs.
	LinkAttachments bool
}

func (c RenderConfig) HasFeature(feature string) bool {
	return slices.Contains(c.Features, feature)
}

// Props is the render instruction a component receives.
type Props struct {
	Node       ast.Node
	Source     []byte
	Type       string
	Component  string
	Attributes Attributes
	Variables  map[string]any
	Theme      ui.Theme
	Lib        *stdlib.Lib
	Config     RenderConfig
	Attacher   attachment.Attacher
	Writer     html.Writer
	Entering   bool

	// Status is returned to goldmark after the component ran on enter;
	// components set it to ast.WalkSkipChildren when they render the
	// children themselves.
	Status ast.WalkStatus
}

// WriteText writes text from the markdown source, escaping HTML and resolving
// entity references the way goldmark does.
func (p *Props) WriteText(w util.BufWriter, text string) {
	p.Writer.Write(w, []byte(text))
}
