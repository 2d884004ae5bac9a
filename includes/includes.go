// Package includes expands <!-- Include: path --> directives with the
// contents of other markdown files, rendered as text templates.
package includes

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	"github.com/reconquest/regexputil-go"
	"gopkg.in/yaml.v3"
)

// <!-- Include: <template path>
//
//	(Delims: (none | "<left>","<right>"))?
//	<optional yaml data> -->
var reIncludeDirective = regexp.MustCompile(
	`(?s)` +
		`<!--\s*Include:\s*(?P<path>.+?)\s*` +
		`(?:\n\s*Delims:\s*(?:(?P<none>none)|"(?P<left>.*?)"\s*,\s*"(?P<right>.*?)"))?\s*` +
		`(?:\n(?P<data>.*?))?-->`,
)

// DefaultMaxDepth bounds nested includes so that a file including itself
// fails instead of looping.
const DefaultMaxDepth = 10

type Processor struct {
	// Base is the directory of the including document.
	Base string

	// IncludePath is searched when a path does not exist under Base.
	IncludePath string

	MaxDepth int

	templates *template.Template
}

func New(base, includePath string) *Processor {
	return &Processor{
		Base:        base,
		IncludePath: includePath,
		MaxDepth:    DefaultMaxDepth,
		templates:   template.New("includes").Funcs(sprig.TxtFuncMap()),
	}
}

// Process expands include directives until none are left. Directives inside
// fenced code blocks are kept verbatim.
func (p *Processor) Process(contents []byte) ([]byte, error) {
	for depth := 0; ; depth++ {
		expanded, changed, err := p.expand(contents)
		if err != nil {
			return nil, err
		}

		if !changed {
			return expanded, nil
		}

		if depth >= p.MaxDepth {
			return nil, karma.Describe("depth", p.MaxDepth).Reason(
				"includes are nested too deep",
			)
		}

		contents = expanded
	}
}

func (p *Processor) expand(contents []byte) ([]byte, bool, error) {
	matches := reIncludeDirective.FindAllSubmatchIndex(contents, -1)
	if len(matches) == 0 {
		return contents, false, nil
	}

	fences := fencedRanges(contents)

	var (
		result  bytes.Buffer
		last    int
		changed bool
	)

	for _, match := range matches {
		start, end := match[0], match[1]

		result.Write(contents[last:start])
		last = end

		if fences.contain(start) {
			result.Write(contents[start:end])
			continue
		}

		directive := contents[start:end]
		groups := reIncludeDirective.FindStringSubmatch(string(directive))

		output, err := p.include(groups)
		if err != nil {
			return nil, false, err
		}

		result.Write(output)
		changed = true
	}

	result.Write(contents[last:])

	return result.Bytes(), changed, nil
}

func (p *Processor) include(groups []string) ([]byte, error) {
	var (
		path  = regexputil.Subexp(reIncludeDirective, groups, "path")
		left  = regexputil.Subexp(reIncludeDirective, groups, "left")
		right = regexputil.Subexp(reIncludeDirective, groups, "right")
		data  = map[string]any{}

		facts = karma.Describe("path", path)
	)

	if regexputil.Subexp(reIncludeDirective, groups, "none") != "" {
		left, right = "\x00", "\x01"
	}

	config := regexputil.Subexp(reIncludeDirective, groups, "data")

	err := yaml.Unmarshal([]byte(config), &data)
	if err != nil {
		return nil, facts.Describe("data", config).Format(
			err,
			"unable to unmarshal include data",
		)
	}

	log.Tracef(vardump(facts, data), "including %q", path)

	tpl, err := p.load(path, left, right)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer

	err = tpl.Execute(&buffer, data)
	if err != nil {
		return nil, vardump(facts, data).Format(
			err,
			"unable to execute include",
		)
	}

	return buffer.Bytes(), nil
}

func (p *Processor) load(path, left, right string) (*template.Template, error) {
	var (
		name  = strings.TrimSuffix(path, filepath.Ext(path))
		facts = karma.Describe("name", name)
	)

	if tpl := p.templates.Lookup(name); tpl != nil {
		return tpl, nil
	}

	body, err := os.ReadFile(filepath.Join(p.Base, path))
	if err != nil && p.IncludePath != "" {
		body, err = os.ReadFile(filepath.Join(p.IncludePath, path))
	}
	if err != nil {
		return nil, facts.Format(err, "unable to read include file")
	}

	body = bytes.ReplaceAll(body, []byte("\r\n"), []byte("\n"))

	tpl, err := p.templates.New(name).Delims(left, right).Parse(string(body))
	if err != nil {
		return nil, facts.Format(err, "unable to parse include file")
	}

	return tpl, nil
}

func vardump(facts *karma.Context, data map[string]any) *karma.Context {
	for key, value := range data {
		key = "var " + key
		facts = facts.Describe(
			key,
			strings.ReplaceAll(
				fmt.Sprint(value),
				"\n",
				"\n"+strings.Repeat(" ", len(key)+2),
			),
		)
	}

	return facts
}

// span is a byte range [start, end) of a fenced code block, fences included.
type span struct {
	start int
	end   int
}

type spans []span

func (s spans) contain(pos int) bool {
	for _, span := range s {
		if pos >= span.start && pos < span.end {
			return true
		}
	}
	return false
}

// fencedRanges finds fenced code blocks. A block is closed by a fence of the
// same character that is at least as long as the opening one; an unclosed
// block runs to the end of contents.
func fencedRanges(contents []byte) spans {
	var (
		result  spans
		offset  int
		open    bool
		current span
		marker  string
	)

	scanner := bufio.NewScanner(bytes.NewReader(contents))
	scanner.Buffer(nil, len(contents)+1)

	for scanner.Scan() {
		line := scanner.Text()
		next := min(offset+len(line)+1, len(contents))

		fence := fenceOf(line)

		switch {
		case !open && fence != "":
			open = true
			marker = fence
			current = span{start: offset}

		case open && fence != "" && fence[0] == marker[0] && len(fence) >= len(marker):
			open = false
			current.end = next
			result = append(result, current)
		}

		offset = next
	}

	if open {
		current.end = len(contents)
		result = append(result, current)
	}

	return result
}

func fenceOf(line string) string {
	if !strings.HasPrefix(line, "```") && !strings.HasPrefix(line, "~~~") {
		return ""
	}

	length := 0
	for length < len(line) && line[length] == line[0] {
		length++
	}

	return line[:length]
}
