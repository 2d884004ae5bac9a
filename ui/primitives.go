package ui

func (t Theme) element(component, tag string, flags Flags, rest []Attr) *Element {
	return NewElement(tag, t.ClassNames(component, flags), rest)
}

// Title is a heading primitive; tag is one of h1..h6.
func (t Theme) Title(tag string, flags Flags, rest []Attr) *Element {
	if tag == "" {
		tag = "h2"
	}
	return t.element("title", tag, flags, rest)
}

// Text is the inline and paragraph text primitive.
func (t Theme) Text(tag string, flags Flags, rest []Attr) *Element {
	if tag == "" {
		tag = "p"
	}
	return t.element("text", tag, flags, rest)
}

func (t Theme) Link(href string, flags Flags, rest []Attr) *Element {
	element := t.element("link", "a", flags, nil)
	element.Set("href", href)
	for _, attr := range rest {
		element.Set(attr.Name, attr.Value)
	}
	return element
}

// List renders as ol when the decimal marker is active and as ul otherwise.
func (t Theme) List(flags Flags, rest []Attr) *Element {
	tag := "ul"
	for _, flag := range t["list"].Resolve(flags) {
		if flag == "decimal" {
			tag = "ol"
		}
	}
	return t.element("list", tag, flags, rest)
}

func (t Theme) ListItem(flags Flags, rest []Attr) *Element {
	return t.element("listItem", "li", flags, rest)
}

func (t Theme) Badge(flags Flags, rest []Attr) *Element {
	return t.element("badge", "span", flags, rest)
}

func (t Theme) Card(flags Flags, rest []Attr) *Element {
	return t.element("card", "div", flags, rest)
}

func (t Theme) Divider(flags Flags, rest []Attr) *Element {
	element := t.element("divider", "hr", flags, rest)
	element.Void = true
	return element
}

func (t Theme) Col(flags Flags, rest []Attr) *Element {
	return t.element("col", "div", flags, rest)
}
