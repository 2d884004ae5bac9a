package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	admonitions "github.com/stefanfritsch/goldmark-admonitions"
	"github.com/vaneui/md/attachment"
	"github.com/vaneui/md/config"
	mdrenderer "github.com/vaneui/md/renderer"
	"github.com/vaneui/md/stdlib"
	"github.com/vaneui/md/transformer"
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/anchor"
)

// Options tune a single compilation.
type Options struct {
	// Theme is merged over the default theme.
	Theme ui.Theme

	DropFirstH1     bool
	Features        []string
	MermaidProvider string
	MermaidScale    float64
	D2Scale         float64
	D2Format        string
	HighlightStyle  string
	LinkAttachments bool

	// Unsafe keeps raw HTML and dangerous link destinations.
	Unsafe bool

	// Sanitize passes the rendered HTML through Policy.
	Sanitize bool

	// TemplatesDir holds *.html template overrides.
	TemplatesDir string
}

type Result struct {
	HTML        string
	Errors      []transformer.ValidationError
	Attachments []attachment.Attachment
}

// Extension wires the node transformers and the component renderer into
// goldmark. It collects the attachments rendered diagrams produce.
type Extension struct {
	Config       *types.Config
	Theme        ui.Theme
	Stdlib       *stdlib.Lib
	RenderConfig types.RenderConfig
	Attachments  []attachment.Attachment
}

func NewExtension(
	config *types.Config,
	theme ui.Theme,
	stdlib *stdlib.Lib,
	cfg types.RenderConfig,
) *Extension {
	return &Extension{
		Config:       config,
		Theme:        theme,
		Stdlib:       stdlib,
		RenderConfig: cfg,
		Attachments:  []attachment.Attachment{},
	}
}

func (e *Extension) Attach(a attachment.Attachment) {
	e.Attachments = append(e.Attachments, a)
}

func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithAttribute(),
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(
			util.Prioritized(transformer.NewTableBodyTransformer(), 100),
			util.Prioritized(transformer.NewBlockquoteTypeTransformer(), 100),
			util.Prioritized(transformer.NewTextMergeTransformer(), 500),
			// Runs after the structural transformers so that it sees the
			// final tree.
			util.Prioritized(transformer.NewAttributeTransformer(e.Config), 1000),
		),
	)

	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(
			mdrenderer.NewRenderer(e.Config, e.Theme, e.Stdlib, e, e.RenderConfig),
			100,
		),
	))

	if e.RenderConfig.HasFeature("mkdocsadmonitions") {
		m.Parser().AddOptions(
			parser.WithBlockParsers(
				util.Prioritized(admonitions.NewAdmonitionParser(), 100),
			),
		)
	}

	if e.RenderConfig.HasFeature("anchors") {
		(&anchor.Extender{Position: anchor.After}).Extend(m)
	}
}

// Compile renders markdown content into HTML. frontmatter is exposed to
// templates and components as the "frontmatter" variable; cfg is merged over
// the default configuration.
func Compile(
	content []byte,
	frontmatter map[string]any,
	cfg *types.Config,
	opts Options,
) (*Result, error) {
	log.Tracef(nil, "rendering markdown:\n%s", string(content))

	defaults := config.Default()
	defaults.Variables["frontmatter"] = frontmatter

	merged := config.MergeConfig(defaults, cfg)

	lib, err := stdlib.New(merged.Functions)
	if err != nil {
		return nil, err
	}

	if opts.TemplatesDir != "" {
		err = lib.Load(opts.TemplatesDir)
		if err != nil {
			return nil, err
		}
	}

	ext := NewExtension(
		merged,
		ui.DefaultTheme().Merge(opts.Theme),
		lib,
		types.RenderConfig{
			DropFirstH1:     opts.DropFirstH1,
			Features:        opts.Features,
			HighlightStyle:  opts.HighlightStyle,
			MermaidProvider: opts.MermaidProvider,
			MermaidScale:    opts.MermaidScale,
			D2Scale:         opts.D2Scale,
			D2Format:        opts.D2Format,
			Unsafe:          opts.Unsafe,
			LinkAttachments: opts.LinkAttachments,
		},
	)

	var rendererOptions []renderer.Option
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	converter := goldmark.New(
		goldmark.WithExtensions(extension.GFM, ext),
		goldmark.WithRendererOptions(rendererOptions...),
	)

	ctx := parser.NewContext()

	var buf bytes.Buffer
	err = converter.Convert(content, &buf, parser.WithContext(ctx))
	if err != nil {
		return nil, karma.Format(err, "unable to render markdown")
	}

	output := buf.String()
	if opts.Sanitize {
		output = Policy().Sanitize(output)
	}

	log.Tracef(nil, "rendered markdown to html:\n%s", output)

	return &Result{
		HTML:        output,
		Errors:      transformer.Errors(ctx),
		Attachments: ext.Attachments,
	}, nil
}

// Policy is the sanitizing policy: user generated content plus the class and
// style attributes the components emit and embedded diagram images.
func Policy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "style", "role", "data-type").Globally()
	policy.AllowDataURIImages()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return policy
}
