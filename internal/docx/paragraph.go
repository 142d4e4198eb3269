package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Successor lists keep properties inserted into w:pPr in schema order
// (CT_PPrBase). Each list names every element that may legally follow the
// one being inserted.
var (
	pStyleSuccessors = []string{
		"keepNext", "keepLines", "pageBreakBefore", "framePr", "widowControl",
		"numPr", "suppressLineNumbers", "pBdr", "shd", "tabs",
		"suppressAutoHyphens", "kinsoku", "wordWrap", "overflowPunct",
		"topLinePunct", "autoSpaceDE", "autoSpaceDN", "bidi", "adjustRightInd",
		"snapToGrid", "spacing", "ind", "contextualSpacing", "mirrorIndents",
		"suppressOverlap", "jc", "textDirection", "textAlignment",
		"textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr",
		"sectPr", "pPrChange",
	}
	spacingSuccessors = []string{
		"ind", "contextualSpacing", "mirrorIndents", "suppressOverlap", "jc",
		"textDirection", "textAlignment", "textboxTightWrap", "outlineLvl",
		"divId", "cnfStyle", "rPr", "sectPr", "pPrChange",
	}
	indSuccessors = spacingSuccessors[1:]
	jcSuccessors  = []string{
		"textDirection", "textAlignment", "textboxTightWrap", "outlineLvl",
		"divId", "cnfStyle", "rPr", "sectPr", "pPrChange",
	}
)

// Paragraph is a w:p element: optional paragraph properties followed by
// ordered content. Runs are modeled; hyperlinks, bookmarks and other content
// are preserved verbatim and contribute nothing to Text, matching how the
// accounts-notice templates are authored.
type Paragraph struct {
	attrs    []xml.Attr
	props    *rawNode
	children []ParagraphContent
}

// ParagraphContent is an ordered child of a paragraph: *Run or preserved
// raw content.
type ParagraphContent interface {
	paragraphContent()
	encodeContent(e *xml.Encoder, prefixes map[string]string) error
}

func (*rawNode) paragraphContent() {}

func (n *rawNode) encodeContent(e *xml.Encoder, prefixes map[string]string) error {
	return n.encode(e, prefixes)
}

func (*Paragraph) bodyElement() {}

func parseParagraph(d *xml.Decoder, start xml.StartElement) (*Paragraph, error) {
	p := &Paragraph{attrs: append([]xml.Attr{}, start.Attr...)}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				props, err := decodeRaw(d, t)
				if err != nil {
					return nil, err
				}
				p.props = props
			case "r":
				r, err := parseRun(d, t)
				if err != nil {
					return nil, err
				}
				p.children = append(p.children, r)
			default:
				n, err := decodeRaw(d, t)
				if err != nil {
					return nil, err
				}
				p.children = append(p.children, n)
			}
		case xml.EndElement:
			return p, nil
		}
	}
}

func (p *Paragraph) encodeElement(e *xml.Encoder, prefixes map[string]string) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:p"}}
	for _, a := range p.attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: prefixedAttrName(a.Name, prefixes)},
			Value: a.Value,
		})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if !p.props.isEmpty() {
		if err := p.props.encode(e, prefixes); err != nil {
			return err
		}
	}
	for _, c := range p.children {
		if err := c.encodeContent(e, prefixes); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Runs returns the paragraph's runs in order.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, c := range p.children {
		if r, ok := c.(*Run); ok {
			out = append(out, r)
		}
	}
	return out
}

// Text returns the concatenated text of the paragraph's runs. Tabs render as
// \t, breaks as \n.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// SetText replaces the paragraph's entire content with a single plain run.
// Paragraph-level formatting is kept; run-level formatting is not.
func (p *Paragraph) SetText(text string) {
	p.children = nil
	p.AddRun(text)
}

// AddRun appends a run containing text.
func (p *Paragraph) AddRun(text string) *Run {
	r := newRun(text)
	p.children = append(p.children, r)
	return r
}

func (p *Paragraph) ensureProps() *rawNode {
	if p.props == nil {
		p.props = newNode("pPr")
	}
	return p.props
}

// StyleID returns the paragraph style reference (w:pStyle), or nil when the
// paragraph uses the default style.
func (p *Paragraph) StyleID() *string {
	v := p.props.child("pStyle").attr("val")
	if v == "" {
		return nil
	}
	return &v
}

func (p *Paragraph) SetStyleID(id string) {
	p.ensureProps().ensureChild("pStyle", pStyleSuccessors...).setAttr("val", id)
}

// Alignment returns the w:jc value ("left", "center", "right", "both"), or
// nil when inherited.
func (p *Paragraph) Alignment() *string {
	v := p.props.child("jc").attr("val")
	if v == "" {
		return nil
	}
	return &v
}

func (p *Paragraph) SetAlignment(val string) {
	p.ensureProps().ensureChild("jc", jcSuccessors...).setAttr("val", val)
}

// ParagraphSpacing is a paragraph's spacing triple. Before and After are in
// twips; Line is in w:line units (240 per line when Rule is "auto"). Nil
// fields are inherited.
type ParagraphSpacing struct {
	Before *int
	After  *int
	Line   *int
	Rule   string
}

// IsZero reports whether no spacing field is set.
func (s ParagraphSpacing) IsZero() bool {
	return s.Before == nil && s.After == nil && s.Line == nil && s.Rule == ""
}

func (p *Paragraph) Spacing() ParagraphSpacing {
	sp := p.props.child("spacing")
	if sp == nil {
		return ParagraphSpacing{}
	}
	return ParagraphSpacing{
		Before: sp.intAttr("before"),
		After:  sp.intAttr("after"),
		Line:   sp.intAttr("line"),
		Rule:   sp.attr("lineRule"),
	}
}

// SetSpacing applies the non-nil fields of s to the paragraph, leaving the
// others as they are.
func (p *Paragraph) SetSpacing(s ParagraphSpacing) {
	if s.IsZero() {
		return
	}
	sp := p.ensureProps().ensureChild("spacing", spacingSuccessors...)
	if s.Before != nil {
		sp.setAttr("before", strconv.Itoa(*s.Before))
	}
	if s.After != nil {
		sp.setAttr("after", strconv.Itoa(*s.After))
	}
	if s.Line != nil {
		sp.setAttr("line", strconv.Itoa(*s.Line))
	}
	if s.Rule != "" {
		sp.setAttr("lineRule", s.Rule)
	}
}

// ParagraphIndent is a paragraph's indent triple in twips. A negative
// FirstLine means a hanging indent of that magnitude. Nil fields are
// inherited.
type ParagraphIndent struct {
	Left      *int
	Right     *int
	FirstLine *int
}

// IsZero reports whether no indent field is set.
func (in ParagraphIndent) IsZero() bool {
	return in.Left == nil && in.Right == nil && in.FirstLine == nil
}

func (p *Paragraph) Indent() ParagraphIndent {
	ind := p.props.child("ind")
	if ind == nil {
		return ParagraphIndent{}
	}
	out := ParagraphIndent{}
	if v := ind.intAttr("left"); v != nil {
		out.Left = v
	} else {
		out.Left = ind.intAttr("start")
	}
	if v := ind.intAttr("right"); v != nil {
		out.Right = v
	} else {
		out.Right = ind.intAttr("end")
	}
	if h := ind.intAttr("hanging"); h != nil {
		neg := -*h
		out.FirstLine = &neg
	} else {
		out.FirstLine = ind.intAttr("firstLine")
	}
	return out
}

// SetIndent applies the non-nil fields of in to the paragraph.
func (p *Paragraph) SetIndent(in ParagraphIndent) {
	if in.IsZero() {
		return
	}
	ind := p.ensureProps().ensureChild("ind", indSuccessors...)
	if in.Left != nil {
		ind.setAttr("left", strconv.Itoa(*in.Left))
		ind.removeAttr("start")
	}
	if in.Right != nil {
		ind.setAttr("right", strconv.Itoa(*in.Right))
		ind.removeAttr("end")
	}
	if in.FirstLine != nil {
		if *in.FirstLine < 0 {
			ind.setAttr("hanging", strconv.Itoa(-*in.FirstLine))
			ind.removeAttr("firstLine")
		} else {
			ind.setAttr("firstLine", strconv.Itoa(*in.FirstLine))
			ind.removeAttr("hanging")
		}
	}
}
