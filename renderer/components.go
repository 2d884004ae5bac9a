package renderer

import (
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/util"
)

// block renders an element that goldmark would end with a newline.
func block(w util.BufWriter, p *types.Props, element *ui.Element) {
	element.Render(w, p.Entering)
	if !p.Entering {
		_ = w.WriteByte('\n')
	}
}

// container renders a block element whose children are blocks as well.
func container(w util.BufWriter, p *types.Props, element *ui.Element) {
	element.Render(w, p.Entering)
	_ = w.WriteByte('\n')
}

func MdDocument(w util.BufWriter, p *types.Props) error {
	container(w, p, p.Theme.Col(nil, p.Attributes.Rest()))
	return nil
}

func MdInline(w util.BufWriter, p *types.Props) error {
	ui.NewElement("span", nil, p.Attributes.Rest()).Render(w, p.Entering)
	return nil
}

func MdParagraph(w util.BufWriter, p *types.Props) error {
	block(w, p, p.Theme.Text("p", nil, p.Attributes.Rest()))
	return nil
}

func MdHr(w util.BufWriter, p *types.Props) error {
	if p.Entering {
		p.Theme.Divider(nil, p.Attributes.Rest()).Open(w)
		_ = w.WriteByte('\n')
	}
	return nil
}

func MdHardbreak(w util.BufWriter, p *types.Props) error {
	if p.Entering {
		_, _ = w.WriteString("<br>\n")
	}
	return nil
}

func MdSoftbreak(w util.BufWriter, p *types.Props) error {
	if p.Entering {
		_ = w.WriteByte(' ')
	}
	return nil
}
