package renderer

import (
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/util"
)

// MdCheckbox renders the checkbox of a task list item.
func MdCheckbox(w util.BufWriter, p *types.Props) error {
	if !p.Entering {
		return nil
	}

	checkbox := ui.NewElement("input", nil, nil)
	checkbox.Void = true
	checkbox.Set("type", "checkbox")
	checkbox.Set("disabled", "")
	if p.Attributes.Bool("checked") {
		checkbox.Set("checked", "")
	}
	for _, attr := range p.Attributes.Rest("checked") {
		checkbox.Set(attr.Name, attr.Value)
	}

	checkbox.Open(w)
	_ = w.WriteByte(' ')

	return nil
}
