package renderer

import (
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/util"
)

// MdTable wraps the table into a card so that wide tables scroll.
func MdTable(w util.BufWriter, p *types.Props) error {
	card := p.Theme.Card(nil, nil)
	card.AddStyle("overflow: auto; margin: 1rem 0")

	table := ui.NewElement("table", nil, p.Attributes.Rest())
	table.AddStyle("width: 100%; border-collapse: collapse")

	if p.Entering {
		card.Open(w)
		_ = w.WriteByte('\n')
		table.Open(w)
		_ = w.WriteByte('\n')
	} else {
		table.Close(w)
		_ = w.WriteByte('\n')
		card.Close(w)
		_ = w.WriteByte('\n')
	}

	return nil
}

func MdThead(w util.BufWriter, p *types.Props) error {
	container(w, p, ui.NewElement("thead", nil, p.Attributes.Rest()))
	return nil
}

func MdTbody(w util.BufWriter, p *types.Props) error {
	container(w, p, ui.NewElement("tbody", nil, p.Attributes.Rest()))
	return nil
}

func MdTr(w util.BufWriter, p *types.Props) error {
	container(w, p, ui.NewElement("tr", nil, p.Attributes.Rest()))
	return nil
}

func MdTd(w util.BufWriter, p *types.Props) error {
	block(w, p, cell("td", p))
	return nil
}

func MdTh(w util.BufWriter, p *types.Props) error {
	element := cell("th", p, "width")
	if width := p.Attributes.String("width"); width != "" {
		element.AddStyle("width: " + width)
	}

	block(w, p, element)
	return nil
}

func cell(tag string, p *types.Props, consumed ...string) *ui.Element {
	element := ui.NewElement(tag, nil, p.Attributes.Rest(append(consumed, "align")...))
	if align := p.Attributes.String("align"); align != "" && align != "none" {
		element.AddStyle("text-align: " + align)
	}
	return element
}
