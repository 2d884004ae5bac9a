package mermaid

import (
	"bytes"
	"context"
	"strconv"
	"time"

	mermaid "github.com/dreampuf/mermaid.go"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	"github.com/vaneui/md/attachment"
)

var renderTimeout = 90 * time.Second

// ProcessMermaidLocally renders a mermaid diagram to a PNG attachment with a
// local headless browser.
func ProcessMermaidLocally(title string, mermaidDiagram []byte, scale float64) (attachment.Attachment, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), renderTimeout)
	defer cancel()

	log.Debugf(nil, "Setting up Mermaid renderer: %q", title)
	renderer, err := mermaid.NewRenderEngine(ctx)
	if err != nil {
		return attachment.Attachment{}, karma.Format(err, "unable to start mermaid renderer")
	}

	log.Debugf(nil, "Rendering: %q", title)
	pngBytes, boxModel, err := renderer.RenderAsScaledPng(string(mermaidDiagram), scale)
	if err != nil {
		return attachment.Attachment{}, karma.Format(err, "unable to render mermaid diagram")
	}

	checkSum, err := attachment.GetChecksum(bytes.NewReader(mermaidDiagram))
	log.Debugf(nil, "Checksum: %q -> %s", title, checkSum)

	if err != nil {
		return attachment.Attachment{}, err
	}
	if title == "" {
		title = checkSum
	}

	return attachment.Attachment{
		Name:      title,
		Filename:  title + ".png",
		MimeType:  "image/png",
		FileBytes: pngBytes,
		Checksum:  checkSum,
		Width:     strconv.FormatInt(boxModel.Width, 10),
		Height:    strconv.FormatInt(boxModel.Height, 10),
	}, nil
}
