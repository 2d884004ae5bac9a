package renderer

import (
	"context"
	"html/template"

	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	"github.com/vaneui/md/attachment"
	"github.com/vaneui/md/d2"
	"github.com/vaneui/md/mermaid"
	"github.com/vaneui/md/types"
	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

// MdFence renders a code block as a card wrapping pre > code. When the block
// is processed, d2 and mermaid diagrams are rendered instead of their source
// and code is highlighted.
func MdFence(w util.BufWriter, p *types.Props) error {
	p.Status = ast.WalkSkipChildren
	if !p.Entering {
		return nil
	}

	var (
		content  = p.Attributes.String("content")
		language = p.Attributes.String("language")
		title    = p.Attributes.String("title")
		process  = p.Attributes.Bool("process")
	)

	if process {
		switch {
		case language == "d2" && p.Config.HasFeature("d2"):
			return renderD2(w, p, title, content)
		case language == "mermaid" && p.Config.HasFeature("mermaid"):
			return renderMermaid(w, p, title, content)
		}
	}

	var code any = content
	if process && language != "" && p.Config.HasFeature("highlight") {
		highlighted, ok, err := Highlight(content, language)
		if err != nil {
			return err
		}

		if ok {
			code = highlighted
		} else {
			log.Debugf(nil, "no lexer for language %q", language)
		}
	}

	card := p.Theme.Card(
		ui.Flags{"secondary": true},
		p.Attributes.Rest("content", "language", "process", "title"),
	)
	card.Open(w)

	err := p.Lib.Execute(w, "md:fence", struct {
		Title        string
		TitleClasses []string
		Language     string
		Code         any
	}{
		title,
		p.Theme.ClassNames("text", ui.Flags{"sm": true, "bold": true}),
		language,
		code,
	})
	if err != nil {
		return err
	}

	card.Close(w)
	_ = w.WriteByte('\n')

	return nil
}

func renderD2(w util.BufWriter, p *types.Props, title, content string) error {
	if p.Config.D2Format == "png" {
		attachment, err := d2.ProcessD2(title, []byte(content), scale(p.Config.D2Scale))
		if err != nil {
			return karma.Describe("title", title).Format(err, "unable to process d2 diagram")
		}

		return renderAttachment(w, p, title, attachment)
	}

	svg, err := d2.RenderSVG(context.TODO(), []byte(content))
	if err != nil {
		return karma.Describe("title", title).Format(err, "unable to process d2 diagram")
	}

	err = p.Lib.Execute(w, "md:diagram", struct {
		Title string
		SVG   template.HTML
	}{
		title,
		template.HTML(svg),
	})
	if err != nil {
		return err
	}

	_ = w.WriteByte('\n')
	return nil
}

func renderMermaid(w util.BufWriter, p *types.Props, title, content string) error {
	if p.Config.MermaidProvider == "mermaid-go" {
		attachment, err := mermaid.ProcessMermaidLocally(title, []byte(content), scale(p.Config.MermaidScale))
		if err != nil {
			return karma.Describe("title", title).Format(err, "unable to process mermaid diagram")
		}

		return renderAttachment(w, p, title, attachment)
	}

	err := p.Lib.Execute(w, "md:mermaid", struct {
		Title  string
		Source string
	}{
		title,
		content,
	})
	if err != nil {
		return err
	}

	_ = w.WriteByte('\n')
	return nil
}

// renderAttachment hands a rasterized diagram to the attacher and renders an
// image referencing it, by file name when attachments are linked and as a
// data URI otherwise.
func renderAttachment(w util.BufWriter, p *types.Props, title string, a attachment.Attachment) error {
	if p.Attacher != nil {
		p.Attacher.Attach(a)
	}

	src := a.DataURI()
	if p.Config.LinkAttachments {
		src = a.Filename
	}

	err := p.Lib.Execute(w, "md:image", struct {
		Src    template.URL
		Alt    string
		Title  string
		Width  string
		Height string
	}{
		template.URL(src),
		title,
		title,
		a.Width,
		a.Height,
	})
	if err != nil {
		return err
	}

	_ = w.WriteByte('\n')
	return nil
}

func scale(value float64) float64 {
	if value <= 0 {
		return 1.0
	}
	return value
}
