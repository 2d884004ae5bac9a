package metadata

import (
	"bufio"
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	HeaderTitle      = `Title`
	HeaderLang       = `Lang`
	HeaderStylesheet = `Stylesheet`
	HeaderInclude    = `Include`
)

// Meta is the document metadata. Raw holds the frontmatter as parsed and is
// exposed to components as the "frontmatter" variable.
type Meta struct {
	Title       string
	Lang        string
	Stylesheets []string
	Raw         map[string]any
}

var (
	reHeaderPattern = regexp.MustCompile(`^<!--\s*([^:]+):\s*(.*?)\s*-->$`)
	reLeadingH1     = regexp.MustCompile(`(?m)^#[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)
)

// ExtractMeta reads the YAML or TOML frontmatter of a document, followed by
// optional <!-- Header: value --> lines, and returns the metadata and the
// remaining body.
func ExtractMeta(
	data []byte,
	titleFromH1 bool,
	titleFromFilename bool,
	filename string,
) (*Meta, []byte, error) {
	meta := &Meta{Raw: map[string]any{}}

	body, err := frontmatter.Parse(bytes.NewReader(data), &meta.Raw)
	if err != nil {
		return nil, nil, karma.Format(err, "unable to parse frontmatter")
	}

	if title, ok := meta.Raw["title"].(string); ok {
		meta.Title = title
	}

	if lang, ok := meta.Raw["lang"].(string); ok {
		meta.Lang = lang
	}

	switch stylesheets := meta.Raw["stylesheets"].(type) {
	case []any:
		for _, stylesheet := range stylesheets {
			if stylesheet, ok := stylesheet.(string); ok {
				meta.Stylesheets = append(meta.Stylesheets, stylesheet)
			}
		}
	case string:
		meta.Stylesheets = append(meta.Stylesheets, stylesheets)
	}

	body, err = extractHeaders(meta, body)
	if err != nil {
		return nil, nil, err
	}

	if titleFromH1 && meta.Title == "" {
		meta.Title = ExtractDocumentLeadingH1(body)
	}

	if titleFromFilename && meta.Title == "" && filename != "" {
		setTitleFromFilename(meta, filename)
	}

	meta.Title = strings.TrimSpace(meta.Title)

	return meta, body, nil
}

func extractHeaders(meta *Meta, data []byte) ([]byte, error) {
	var offset int

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()

		matches := reHeaderPattern.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			break
		}

		header := cases.Title(language.English).String(strings.TrimSpace(matches[1]))
		value := matches[2]

		// Includes are part of the body.
		if header == HeaderInclude {
			break
		}

		offset += len(line) + 1

		switch header {
		case HeaderTitle:
			meta.Title = value

		case HeaderLang:
			meta.Lang = value

		case HeaderStylesheet:
			meta.Stylesheets = append(meta.Stylesheets, value)

		default:
			log.Warningf(
				nil,
				`encountered unknown header %q line: %#v`,
				header,
				line,
			)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, karma.Format(err, "unable to read headers")
	}

	return data[min(offset, len(data)):], nil
}

func setTitleFromFilename(meta *Meta, filename string) {
	base := filepath.Base(filename)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	meta.Title = cases.Title(language.English).String(title)
}

// ExtractDocumentLeadingH1 returns the text of the first ATX h1 heading.
func ExtractDocumentLeadingH1(markdown []byte) string {
	groups := reLeadingH1.FindSubmatch(markdown)
	if groups == nil {
		return ""
	}

	return string(groups[1])
}
