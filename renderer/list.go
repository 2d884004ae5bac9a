package renderer

import (
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/util"
)

func MdList(w util.BufWriter, p *types.Props) error {
	flags := ui.Flags{"disc": true}
	if p.Attributes.Bool("ordered") {
		flags = ui.Flags{"decimal": true}
	}

	container(w, p, p.Theme.List(flags, p.Attributes.Rest("ordered")))
	return nil
}

func MdItem(w util.BufWriter, p *types.Props) error {
	block(w, p, p.Theme.ListItem(nil, p.Attributes.Rest()))
	return nil
}
