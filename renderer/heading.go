package renderer

import (
	"strconv"

	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/util"
)

var headingSizes = map[int]string{
	1: "xl",
	2: "lg",
	3: "md",
	4: "sm",
	5: "xs",
	6: "xs",
}

func MdHeading(w util.BufWriter, p *types.Props) error {
	level := p.Attributes.Int("level")
	level = min(max(level, 1), 6)

	title := p.Theme.Title(
		"h"+strconv.Itoa(level),
		ui.Flags{headingSizes[level]: true},
		p.Attributes.Rest("level"),
	)

	block(w, p, title)
	return nil
}
