package renderer

import (
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/util"
)

// MdError renders a node that failed validation. Its children carry the
// validation message.
func MdError(w util.BufWriter, p *types.Props) error {
	card := p.Theme.Card(ui.Flags{"danger": true}, p.Attributes.Rest())
	card.AddStyle(
		"background-color: #fef2f2",
		"border: 1px solid #fecaca",
		"color: #dc2626",
		"margin: 1rem 0",
	)
	card.Set("role", "alert")

	if !p.Entering {
		card.Close(w)
		_ = w.WriteByte('\n')
		return nil
	}

	card.Open(w)

	return p.Lib.Execute(w, "md:error-label", struct {
		Classes []string
		Label   string
	}{
		p.Theme.ClassNames("text", ui.Flags{"bold": true, "danger": true}),
		"Error:",
	})
}
