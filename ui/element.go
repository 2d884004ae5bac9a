package ui

import (
	"strings"

	"github.com/yuin/goldmark/util"
)

// Attr is a single HTML attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is an HTML element produced by a primitive. Style holds CSS
// declarations such as "text-align: left".
type Element struct {
	Tag     string
	Classes []string
	Attrs   []Attr
	Style   []string
	Void    bool
}

// NewElement builds an element and folds rest attributes into it: "class"
// extends the class list, "style" extends the declarations and everything
// else is kept as is.
func NewElement(tag string, classes []string, rest []Attr) *Element {
	element := &Element{Tag: tag, Classes: classes}
	for _, attr := range rest {
		element.Set(attr.Name, attr.Value)
	}
	return element
}

// Set adds an attribute, replacing a previous value of the same name.
func (e *Element) Set(name, value string) *Element {
	switch name {
	case "class":
		e.Classes = dedupe(append(e.Classes, strings.Fields(value)...))
		return e
	case "style":
		e.AddStyle(value)
		return e
	}

	for i, attr := range e.Attrs {
		if attr.Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}

	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// AddStyle appends CSS declarations separated by semicolons.
func (e *Element) AddStyle(declarations ...string) *Element {
	for _, declaration := range declarations {
		for _, part := range strings.Split(declaration, ";") {
			part = strings.TrimSpace(part)
			if part != "" {
				e.Style = append(e.Style, part)
			}
		}
	}
	return e
}

// Open writes the start tag.
func (e *Element) Open(w util.BufWriter) {
	_ = w.WriteByte('<')
	_, _ = w.WriteString(e.Tag)

	if len(e.Classes) > 0 {
		writeAttr(w, "class", strings.Join(e.Classes, " "))
	}

	for _, attr := range e.Attrs {
		writeAttr(w, attr.Name, attr.Value)
	}

	if len(e.Style) > 0 {
		writeAttr(w, "style", strings.Join(e.Style, "; "))
	}

	_ = w.WriteByte('>')
}

// Close writes the end tag. Void elements have none.
func (e *Element) Close(w util.BufWriter) {
	if e.Void {
		return
	}
	_, _ = w.WriteString("</")
	_, _ = w.WriteString(e.Tag)
	_ = w.WriteByte('>')
}

// Render writes the start tag when entering and the end tag otherwise, which
// matches the way goldmark calls node renderers.
func (e *Element) Render(w util.BufWriter, entering bool) {
	if entering {
		e.Open(w)
	} else {
		e.Close(w)
	}
}

func writeAttr(w util.BufWriter, name, value string) {
	_ = w.WriteByte(' ')
	_, _ = w.WriteString(name)
	_, _ = w.WriteString(`="`)
	_, _ = w.Write(util.EscapeHTML([]byte(value)))
	_ = w.WriteByte('"')
}
