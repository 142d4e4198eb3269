package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Successor lists for w:rPr children, per CT_RPr.
var (
	rFontsSuccessors = []string{
		"b", "bCs", "i", "iCs", "caps", "smallCaps", "strike", "dstrike",
		"outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid",
		"vanish", "webHidden", "color", "spacing", "w", "kern", "position",
		"sz", "szCs", "highlight", "u", "effect", "bdr", "shd", "fitText",
		"vertAlign", "rtl", "cs", "em", "lang", "eastAsianLayout",
		"specVanish", "oMath",
	}
	boldSuccessors  = rFontsSuccessors[1:]
	colorSuccessors = []string{
		"spacing", "w", "kern", "position", "sz", "szCs", "highlight", "u",
		"effect", "bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em",
		"lang", "eastAsianLayout", "specVanish", "oMath",
	}
	sizeSuccessors = []string{
		"szCs", "highlight", "u", "effect", "bdr", "shd", "fitText",
		"vertAlign", "rtl", "cs", "em", "lang", "eastAsianLayout",
		"specVanish", "oMath",
	}
)

// Run is a w:r element: optional run properties followed by text content.
// Tabs and breaks are preserved and surface in Text as \t and \n; drawings
// and other non-text content are preserved untouched.
type Run struct {
	attrs    []xml.Attr
	props    *rawNode
	children []RunContent
}

// RunContent is an ordered child of a run: *Text or preserved raw content.
type RunContent interface {
	runContent()
	encodeRunContent(e *xml.Encoder, prefixes map[string]string) error
}

func (*rawNode) runContent() {}

func (n *rawNode) encodeRunContent(e *xml.Encoder, prefixes map[string]string) error {
	return n.encode(e, prefixes)
}

// Text is a w:t element.
type Text struct {
	value    string
	preserve bool
}

func (*Text) runContent() {}

func (t *Text) encodeRunContent(e *xml.Encoder, prefixes map[string]string) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:t"}}
	if t.preserve {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "xml:space"},
			Value: "preserve",
		})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.CharData(t.value)); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (*Run) paragraphContent() {}

func (r *Run) encodeContent(e *xml.Encoder, prefixes map[string]string) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:r"}}
	for _, a := range r.attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: prefixedAttrName(a.Name, prefixes)},
			Value: a.Value,
		})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if !r.props.isEmpty() {
		if err := r.props.encode(e, prefixes); err != nil {
			return err
		}
	}
	for _, c := range r.children {
		if err := c.encodeRunContent(e, prefixes); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func newRun(text string) *Run {
	r := &Run{}
	r.SetText(text)
	return r
}

func parseRun(d *xml.Decoder, start xml.StartElement) (*Run, error) {
	r := &Run{attrs: append([]xml.Attr{}, start.Attr...)}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				props, err := decodeRaw(d, t)
				if err != nil {
					return nil, err
				}
				r.props = props
			case "t":
				txt, err := parseText(d, t)
				if err != nil {
					return nil, err
				}
				r.children = append(r.children, txt)
			default:
				n, err := decodeRaw(d, t)
				if err != nil {
					return nil, err
				}
				r.children = append(r.children, n)
			}
		case xml.EndElement:
			return r, nil
		}
	}
}

func parseText(d *xml.Decoder, start xml.StartElement) (*Text, error) {
	t := &Text{}
	for _, a := range start.Attr {
		if a.Name.Local == "space" && a.Value == "preserve" {
			t.preserve = true
		}
	}
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case xml.CharData:
			sb.Write(v)
		case xml.StartElement:
			if err := d.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			t.value = sb.String()
			return t, nil
		}
	}
}

// Text returns the run's visible text: w:t content with tabs as \t and
// breaks as \n.
func (r *Run) Text() string {
	var sb strings.Builder
	for _, c := range r.children {
		switch v := c.(type) {
		case *Text:
			sb.WriteString(v.value)
		case *rawNode:
			switch v.name.Local {
			case "tab":
				sb.WriteString("\t")
			case "br", "cr":
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// SetText replaces the run's content with a single text element, preserving
// significant leading/trailing whitespace.
func (r *Run) SetText(text string) {
	r.children = []RunContent{&Text{
		value:    text,
		preserve: text != strings.TrimSpace(text),
	}}
}

func (r *Run) ensureProps() *rawNode {
	if r.props == nil {
		r.props = newNode("rPr")
	}
	return r.props
}

// FontName returns the run's ASCII font name, or nil when inherited.
func (r *Run) FontName() *string {
	v := r.props.child("rFonts").attr("ascii")
	if v == "" {
		return nil
	}
	return &v
}

// SetFontName sets the ASCII and high-ANSI fonts, the pair Word uses for
// Latin text.
func (r *Run) SetFontName(name string) {
	f := r.ensureProps().ensureChild("rFonts", rFontsSuccessors...)
	f.setAttr("ascii", name)
	f.setAttr("hAnsi", name)
}

// Size returns the run's font size in whole points, or nil when inherited.
// Half-point remainders truncate.
func (r *Run) Size() *int {
	hp := r.props.child("sz").intAttr("val")
	if hp == nil {
		return nil
	}
	pts := *hp / 2
	return &pts
}

// SetSize sets the font size in points.
func (r *Run) SetSize(points int) {
	r.ensureProps().ensureChild("sz", sizeSuccessors...).setAttr("val", strconv.Itoa(points*2))
}

// Bold reports the run's explicit bold toggle, or nil when inherited.
func (r *Run) Bold() *bool {
	b := r.props.child("b")
	if b == nil {
		return nil
	}
	v := true
	switch b.attr("val") {
	case "0", "false", "none":
		v = false
	}
	return &v
}

func (r *Run) SetBold(bold bool) {
	b := r.ensureProps().ensureChild("b", boldSuccessors...)
	if bold {
		b.removeAttr("val")
	} else {
		b.setAttr("val", "0")
	}
}

// Color returns the run's explicit color as an RRGGBB hex string, or nil.
func (r *Run) Color() *string {
	v := r.props.child("color").attr("val")
	if v == "" {
		return nil
	}
	return &v
}

// SetColor sets the run color to an RRGGBB hex value, dropping any theme
// color so the explicit value wins.
func (r *Run) SetColor(hex string) {
	c := r.ensureProps().ensureChild("color", colorSuccessors...)
	c.setAttr("val", hex)
	c.removeAttr("themeColor")
}
