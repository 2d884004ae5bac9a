package renderer

import (
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

func MdText(w util.BufWriter, p *types.Props) error {
	if !p.Entering {
		return nil
	}

	element := p.Theme.Text("span", nil, p.Attributes.Rest("content"))
	element.Open(w)

	content := []byte(p.Attributes.String("content"))
	if raw, ok := p.Node.(interface{ IsRaw() bool }); ok && raw.IsRaw() {
		p.Writer.RawWrite(w, content)
	} else {
		p.Writer.Write(w, content)
	}

	element.Close(w)
	return nil
}

func MdStrong(w util.BufWriter, p *types.Props) error {
	p.Theme.Text("strong", ui.Flags{"bold": true}, p.Attributes.Rest()).Render(w, p.Entering)
	return nil
}

func MdEm(w util.BufWriter, p *types.Props) error {
	p.Theme.Text("em", ui.Flags{"italic": true}, p.Attributes.Rest()).Render(w, p.Entering)
	return nil
}

func MdS(w util.BufWriter, p *types.Props) error {
	element := p.Theme.Text("s", ui.Flags{"lineThrough": true}, p.Attributes.Rest())
	element.AddStyle("text-decoration: line-through")
	element.Render(w, p.Entering)
	return nil
}

// MdCode renders a code span as a badge. The content is written verbatim,
// without resolving entities or backslash escapes.
func MdCode(w util.BufWriter, p *types.Props) error {
	p.Status = ast.WalkSkipChildren
	if !p.Entering {
		return nil
	}

	badge := p.Theme.Badge(nil, p.Attributes.Rest("content"))
	badge.Open(w)
	p.Writer.RawWrite(w, []byte(p.Attributes.String("content")))
	badge.Close(w)

	return nil
}
