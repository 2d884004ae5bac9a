package renderer

import (
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// destination escapes a link or image URL. Dangerous URLs such as
// javascript: are dropped unless unsafe rendering is enabled.
func destination(p *types.Props, url string) string {
	if !p.Config.Unsafe && html.IsDangerousURL([]byte(url)) {
		return ""
	}
	return string(util.URLEscape([]byte(url), true))
}

func MdLink(w util.BufWriter, p *types.Props) error {
	link := p.Theme.Link(
		destination(p, p.Attributes.String("href")),
		nil,
		p.Attributes.Rest("href"),
	)

	link.Render(w, p.Entering)
	return nil
}

func MdImage(w util.BufWriter, p *types.Props) error {
	p.Status = ast.WalkSkipChildren
	if !p.Entering {
		return nil
	}

	image := ui.NewElement("img", nil, nil)
	image.Void = true
	image.Set("src", destination(p, p.Attributes.String("src")))
	image.Set("alt", p.Attributes.String("alt"))
	for _, attr := range p.Attributes.Rest("src", "alt") {
		image.Set(attr.Name, attr.Value)
	}
	image.AddStyle("display: block; max-width: 100%; height: auto; border-radius: 0.5rem")

	image.Open(w)
	return nil
}
