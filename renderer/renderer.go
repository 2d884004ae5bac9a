package renderer

import (
	"strings"

	"github.com/reconquest/pkg/log"
	"github.com/vaneui/md/attachment"
	"github.com/vaneui/md/stdlib"
	"github.com/vaneui/md/transformer"
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer dispatches every node goldmark hands it to the component its node
// config names.
type Renderer struct {
	html.Config
	MdConfig     *types.Config
	Theme        ui.Theme
	Stdlib       *stdlib.Lib
	RenderConfig types.RenderConfig
	Attachments  attachment.Attacher

	dropFirstH1 bool
}

// NewRenderer creates a new instance of the Renderer
func NewRenderer(
	config *types.Config,
	theme ui.Theme,
	stdlib *stdlib.Lib,
	attachments attachment.Attacher,
	cfg types.RenderConfig,
	opts ...html.Option,
) renderer.NodeRenderer {
	r := &Renderer{
		Config:       html.NewConfig(),
		MdConfig:     config,
		Theme:        theme,
		Stdlib:       stdlib,
		RenderConfig: cfg,
		Attachments:  attachments,
		dropFirstH1:  cfg.DropFirstH1,
	}

	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}

	return r
}

// RegisterFuncs implements NodeRenderer.RegisterFuncs .
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	for _, kind := range transformer.Kinds() {
		reg.Register(kind, r.render)
	}
}

func (r *Renderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	nodeType := transformer.NodeType(node)

	// If this is the first h1 heading of the document and we want to drop it,
	// let's not render it at all.
	if heading, ok := node.(*ast.Heading); ok && heading.Level == 1 && r.dropFirstH1 {
		if !entering {
			r.dropFirstH1 = false
		}
		return ast.WalkSkipChildren, nil
	}

	if nodeType == "html" {
		if _, ok := r.MdConfig.Lookup(nodeType); !ok {
			return r.renderRawHTML(w, source, node, entering)
		}
	}

	config, ok := r.MdConfig.Lookup(nodeType)
	if !ok || config.Render == "" {
		if entering && nodeType == "text" {
			r.Writer.Write(w, []byte(r.props(node, source, nodeType, "", entering).Attributes.String("content")))
		}

		if !entering {
			return ast.WalkContinue, r.renderBreak(w, source, node)
		}

		return ast.WalkContinue, nil
	}

	props := r.props(node, source, nodeType, config.Render, entering)

	component, ok := r.MdConfig.Components[config.Render]
	if !ok {
		log.Tracef(nil, "no component %q for %s node, rendering a plain element", config.Render, nodeType)
		component = generic(strings.ToLower(config.Render))
	}

	err := component(w, props)
	if err != nil {
		return ast.WalkStop, err
	}

	if !entering {
		return ast.WalkContinue, r.renderBreak(w, source, node)
	}

	return props.Status, nil
}

func (r *Renderer) props(node ast.Node, source []byte, nodeType, component string, entering bool) *types.Props {
	attributes := types.AttributesOf(node)

	if nodeType == "text" || nodeType == "code" {
		if !attributes.Has("content") {
			for name, value := range transformer.Extract(node, source) {
				attributes[name] = value
			}
		}
	}

	return &types.Props{
		Node:       node,
		Source:     source,
		Type:       nodeType,
		Component:  component,
		Attributes: attributes,
		Variables:  r.MdConfig.Variables,
		Theme:      r.Theme,
		Lib:        r.Stdlib,
		Config:     r.RenderConfig,
		Attacher:   r.Attachments,
		Writer:     r.Writer,
		Entering:   entering,
		Status:     ast.WalkContinue,
	}
}

// renderBreak renders the line break that follows a text node through the
// hardbreak or softbreak component.
func (r *Renderer) renderBreak(w util.BufWriter, source []byte, node ast.Node) error {
	text, ok := node.(*ast.Text)
	if !ok {
		return nil
	}

	var nodeType string
	switch {
	case text.HardLineBreak() || (text.SoftLineBreak() && r.HardWraps):
		nodeType = "hardbreak"
	case text.SoftLineBreak():
		nodeType = "softbreak"
	default:
		return nil
	}

	config, ok := r.MdConfig.Lookup(nodeType)
	component, found := r.MdConfig.Components[config.Render]
	if !ok || !found {
		if nodeType == "hardbreak" {
			_, _ = w.WriteString("<br>\n")
		} else {
			_ = w.WriteByte('\n')
		}
		return nil
	}

	for _, entering := range []bool{true, false} {
		props := r.props(node, source, nodeType, config.Render, entering)
		props.Attributes = types.Attributes{}

		err := component(w, props)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.HTMLBlock:
		if entering {
			for i := 0; i < n.Lines().Len(); i++ {
				r.writeHTML(w, n.Lines().At(i).Value(source))
			}
		} else if n.HasClosure() {
			r.writeHTML(w, n.ClosureLine.Value(source))
		}

	case *ast.RawHTML:
		if !entering {
			return ast.WalkContinue, nil
		}

		for i := 0; i < n.Segments.Len(); i++ {
			r.writeHTML(w, n.Segments.At(i).Value(source))
		}

		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

// writeHTML writes raw HTML as is in unsafe mode and as escaped text
// otherwise.
func (r *Renderer) writeHTML(w util.BufWriter, value []byte) {
	if r.Unsafe {
		r.Writer.SecureWrite(w, value)
		return
	}

	r.Writer.RawWrite(w, value)
}

// generic renders a component name without an implementation as a plain
// element of the same name.
func generic(tag string) types.Component {
	return func(w util.BufWriter, p *types.Props) error {
		if p.Type == "text" || p.Type == "code" {
			if p.Entering {
				element := ui.NewElement(tag, nil, p.Attributes.Rest("content"))
				element.Open(w)
				p.WriteText(w, p.Attributes.String("content"))
				element.Close(w)
			}
			p.Status = ast.WalkSkipChildren
			return nil
		}

		ui.NewElement(tag, nil, p.Attributes.Rest()).Render(w, p.Entering)
		return nil
	}
}
