package renderer

import (
	"strings"

	parser "github.com/stefanfritsch/goldmark-admonitions"
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/util"
)

// appearances maps blockquote types and admonition classes to card
// appearances.
var appearances = map[string]string{
	"info":      "info",
	"note":      "info",
	"abstract":  "info",
	"tip":       "success",
	"success":   "success",
	"important": "primary",
	"question":  "primary",
	"example":   "accent",
	"quote":     "secondary",
	"warning":   "warning",
	"caution":   "danger",
	"danger":    "danger",
	"failure":   "danger",
	"bug":       "danger",
}

func appearance(kind string) ui.Flags {
	if name, ok := appearances[strings.ToLower(kind)]; ok {
		return ui.Flags{name: true}
	}
	return nil
}

func MdBlockquote(w util.BufWriter, p *types.Props) error {
	kind := p.Attributes.String("type")

	card := p.Theme.Card(appearance(kind), p.Attributes.Rest("type"))
	card.AddStyle("border-left: 4px solid #d1d5db; padding-left: 1rem")
	if kind != "" {
		card.Set("data-type", kind)
	}

	container(w, p, card)
	return nil
}

// MdAdmonition renders a mkdocs admonition (!!! note "Title") as a card with
// an optional title line.
func MdAdmonition(w util.BufWriter, p *types.Props) error {
	kind := p.Attributes.String("kind")

	card := p.Theme.Card(appearance(kind), p.Attributes.Rest("kind", "title"))
	card.Set("data-type", kind)

	container(w, p, card)

	if p.Entering {
		title := p.Attributes.String("title")
		if title == "" {
			if _, ok := p.Node.(*parser.Admonition); ok && kind != "" {
				title = strings.ToUpper(kind[:1]) + kind[1:]
			}
		}

		if title != "" {
			element := p.Theme.Text("p", ui.Flags{"bold": true}, nil)
			element.Open(w)
			p.WriteText(w, title)
			element.Close(w)
			_ = w.WriteByte('\n')
		}
	}

	return nil
}
