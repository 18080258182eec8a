package ena

import (
	"encoding/xml"
	"strings"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Attr is a single XML attribute. Attributes are kept as an ordered slice,
// not a map, so serialization order is exactly insertion order.
type Attr struct {
	Name  string
	Value string
}

// Element is a node in an explicit ordered element tree.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement returns a new element with the given tag name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// SetAttr appends an attribute, replacing an existing attribute of the same
// name in place.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Child appends a new child element and returns it.
func (e *Element) Child(name string) *Element {
	child := NewElement(name)
	e.Children = append(e.Children, child)
	return child
}

// TextChild appends a new child element carrying text content and returns it.
func (e *Element) TextChild(name, text string) *Element {
	child := e.Child(name)
	child.Text = text
	return child
}

// Render serializes the element tree to an XML document string with an XML
// declaration and 2-space indentation.
func (e *Element) Render() string {
	var b strings.Builder
	b.WriteString(header)
	e.render(&b, 0)
	return b.String()
}

func (e *Element) render(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(e.Name)
	for _, attr := range e.Attrs {
		b.WriteString(" ")
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(escape(attr.Value))
		b.WriteString(`"`)
	}

	if len(e.Children) == 0 && e.Text == "" {
		b.WriteString("/>\n")
		return
	}

	b.WriteString(">")
	if len(e.Children) == 0 {
		b.WriteString(escape(e.Text))
		b.WriteString("</")
		b.WriteString(e.Name)
		b.WriteString(">\n")
		return
	}

	b.WriteString("\n")
	for _, child := range e.Children {
		child.render(b, depth+1)
	}
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteString(">\n")
}

func escape(s string) string {
	var b strings.Builder
	// EscapeText only fails on a failing writer; strings.Builder never does.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
