package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// WordprocessingML namespaces used by element and attribute helpers.
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsXML = "http://www.w3.org/XML/1998/namespace"
)

// defaultPrefixes maps the namespaces Word commonly declares on w:document
// back to their canonical prefixes. A document's own xmlns declarations take
// priority over this table (see Document.prefixes).
var defaultPrefixes = map[string]string{
	nsW: "w",
	nsR: "r",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":      "mc",
	"http://schemas.openxmlformats.org/drawingml/2006/main":            "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":         "pic",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"urn:schemas-microsoft-com:vml":                                    "v",
	"urn:schemas-microsoft-com:office:office":                          "o",
	"urn:schemas-microsoft-com:office:word":                            "w10",
	"http://schemas.microsoft.com/office/word/2010/wordml":             "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":             "w15",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingShape": "wps",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup": "wpg",
}

// rawContent is one piece of a rawNode's ordered content: either a child
// element (*rawNode) or a text segment (rawText).
type rawContent interface{ isRawContent() }

type rawText string

func (rawText) isRawContent()  {}
func (*rawNode) isRawContent() {}

// rawNode is a verbatim-preserved XML element. Everything the typed document
// model does not interpret — section properties, bookmarks, drawings, every
// property element under pPr/rPr/tcPr/trPr/tblPr — survives open/save as a
// rawNode tree, so mutating one paragraph never corrupts the rest of the
// part. Names and attributes are stored with resolved namespace URIs and
// mapped back to prefixes on encode.
type rawNode struct {
	name    xml.Name
	attrs   []xml.Attr
	content []rawContent
}

func newNode(local string) *rawNode {
	return &rawNode{name: xml.Name{Space: nsW, Local: local}}
}

// decodeRaw consumes the element started by start, including all nested
// content, and returns it as a rawNode tree.
func decodeRaw(d *xml.Decoder, start xml.StartElement) (*rawNode, error) {
	n := &rawNode{name: start.Name}
	n.attrs = append(n.attrs, start.Attr...)
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeRaw(d, t)
			if err != nil {
				return nil, err
			}
			n.content = append(n.content, child)
		case xml.CharData:
			if len(t) > 0 {
				n.content = append(n.content, rawText(string(t)))
			}
		case xml.EndElement:
			return n, nil
		}
	}
}

func (n *rawNode) encode(e *xml.Encoder, prefixes map[string]string) error {
	start := xml.StartElement{Name: xml.Name{Local: prefixedName(n.name, prefixes)}}
	for _, a := range n.attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: prefixedAttrName(a.Name, prefixes)},
			Value: a.Value,
		})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.content {
		switch v := c.(type) {
		case rawText:
			if err := e.EncodeToken(xml.CharData(v)); err != nil {
				return err
			}
		case *rawNode:
			if err := v.encode(e, prefixes); err != nil {
				return err
			}
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func prefixedName(name xml.Name, prefixes map[string]string) string {
	if name.Space == "" {
		return name.Local
	}
	if p, ok := prefixes[name.Space]; ok {
		return p + ":" + name.Local
	}
	return name.Local
}

func prefixedAttrName(name xml.Name, prefixes map[string]string) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == "xmlns":
		return "xmlns:" + name.Local
	case name.Space == nsXML:
		return "xml:" + name.Local
	}
	if p, ok := prefixes[name.Space]; ok {
		return p + ":" + name.Local
	}
	return name.Local
}

// child returns the first child element with the given local name, or nil.
func (n *rawNode) child(local string) *rawNode {
	if n == nil {
		return nil
	}
	for _, c := range n.content {
		if el, ok := c.(*rawNode); ok && el.name.Local == local {
			return el
		}
	}
	return nil
}

func (n *rawNode) children() []*rawNode {
	var out []*rawNode
	for _, c := range n.content {
		if el, ok := c.(*rawNode); ok {
			out = append(out, el)
		}
	}
	return out
}

// ensureChild returns the child with the given local name, creating it when
// absent. New children are inserted before the first element whose name is in
// successors, else appended, so property containers keep a schema-valid
// child order.
func (n *rawNode) ensureChild(local string, successors ...string) *rawNode {
	if c := n.child(local); c != nil {
		return c
	}
	c := newNode(local)
	n.insertChild(c, successors...)
	return c
}

func (n *rawNode) insertChild(c *rawNode, successors ...string) {
	idx := len(n.content)
	for i, existing := range n.content {
		el, ok := existing.(*rawNode)
		if !ok {
			continue
		}
		for _, s := range successors {
			if el.name.Local == s {
				idx = i
				break
			}
		}
		if idx == i {
			break
		}
	}
	n.content = append(n.content, nil)
	copy(n.content[idx+1:], n.content[idx:])
	n.content[idx] = c
}

func (n *rawNode) removeChild(local string) {
	if n == nil {
		return
	}
	out := n.content[:0]
	for _, c := range n.content {
		if el, ok := c.(*rawNode); ok && el.name.Local == local {
			continue
		}
		out = append(out, c)
	}
	n.content = out
}

// attr returns the value of the attribute with the given local name,
// regardless of namespace, or "" when absent.
func (n *rawNode) attr(local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func (n *rawNode) hasAttr(local string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return true
		}
	}
	return false
}

// setAttr upserts a w-namespaced attribute.
func (n *rawNode) setAttr(local, value string) {
	for i, a := range n.attrs {
		if a.Name.Local == local {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, xml.Attr{Name: xml.Name{Space: nsW, Local: local}, Value: value})
}

func (n *rawNode) removeAttr(local string) {
	out := n.attrs[:0]
	for _, a := range n.attrs {
		if a.Name.Local == local {
			continue
		}
		out = append(out, a)
	}
	n.attrs = out
}

// intAttr parses the attribute as a base-10 integer, returning nil when the
// attribute is absent or not numeric.
func (n *rawNode) intAttr(local string) *int {
	v := n.attr(local)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &i
}

// isEmpty reports whether the node carries no attributes and no content, in
// which case encoding it adds nothing to the document.
func (n *rawNode) isEmpty() bool {
	return n == nil || (len(n.attrs) == 0 && len(n.content) == 0)
}
