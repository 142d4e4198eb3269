package docx

import (
	"encoding/xml"
	"strconv"
)

// Successor lists for table-level property containers, per CT_TblPr,
// CT_TrPr and CT_TcPr.
var (
	tblStyleSuccessors = []string{
		"tblpPr", "tblOverlap", "bidiVisual", "tblStyleRowBandSize",
		"tblStyleColBandSize", "tblW", "jc", "tblCellSpacing", "tblInd",
		"tblBorders", "shd", "tblLayout", "tblCellMar", "tblLook",
		"tblCaption", "tblDescription",
	}
	tblJcSuccessors = []string{
		"tblCellSpacing", "tblInd", "tblBorders", "shd", "tblLayout",
		"tblCellMar", "tblLook", "tblCaption", "tblDescription",
	}
	tblBordersSuccessors = []string{
		"shd", "tblLayout", "tblCellMar", "tblLook", "tblCaption",
		"tblDescription",
	}
	trHeightSuccessors = []string{
		"tblHeader", "tblCellSpacing", "jc", "hidden", "ins", "del",
		"trPrChange",
	}
	tcWSuccessors = []string{
		"gridSpan", "hMerge", "vMerge", "tcBorders", "shd", "noWrap",
		"tcMar", "textDirection", "tcFitText", "vAlign", "hideMark",
		"headers", "cellIns", "cellDel", "cellMerge", "tcPrChange",
	}
	tcBordersSuccessors = []string{
		"shd", "noWrap", "tcMar", "textDirection", "tcFitText", "vAlign",
		"hideMark", "headers", "cellIns", "cellDel", "cellMerge",
		"tcPrChange",
	}
	tcMarSuccessors = []string{
		"textDirection", "tcFitText", "vAlign", "hideMark", "headers",
		"cellIns", "cellDel", "cellMerge", "tcPrChange",
	}
	vAlignSuccessors = []string{
		"hideMark", "headers", "cellIns", "cellDel", "cellMerge",
		"tcPrChange",
	}
)

// Table is a w:tbl element.
type Table struct {
	props *rawNode
	grid  *rawNode
	rows  []*TableRow
	extra []*rawNode
}

// TableRow is a w:tr element.
type TableRow struct {
	attrs []xml.Attr
	props *rawNode
	cells []*TableCell
	extra []*rawNode
}

// TableCell is a w:tc element. Cell content reuses the body element model,
// so cells can hold paragraphs, nested tables and preserved content.
type TableCell struct {
	attrs []xml.Attr
	props *rawNode
	items []BodyElement
}

func (*Table) bodyElement() {}

func newTable(rows, cols int) *Table {
	t := &Table{props: newNode("tblPr"), grid: newNode("tblGrid")}
	for i := 0; i < cols; i++ {
		t.grid.content = append(t.grid.content, newNode("gridCol"))
	}
	for i := 0; i < rows; i++ {
		t.AddRow()
	}
	return t
}

func parseTable(d *xml.Decoder, start xml.StartElement) (*Table, error) {
	t := &Table{}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch tk := tok.(type) {
		case xml.StartElement:
			switch tk.Name.Local {
			case "tblPr":
				n, err := decodeRaw(d, tk)
				if err != nil {
					return nil, err
				}
				t.props = n
			case "tblGrid":
				n, err := decodeRaw(d, tk)
				if err != nil {
					return nil, err
				}
				t.grid = n
			case "tr":
				row, err := parseRow(d, tk)
				if err != nil {
					return nil, err
				}
				t.rows = append(t.rows, row)
			default:
				n, err := decodeRaw(d, tk)
				if err != nil {
					return nil, err
				}
				t.extra = append(t.extra, n)
			}
		case xml.EndElement:
			return t, nil
		}
	}
}

func parseRow(d *xml.Decoder, start xml.StartElement) (*TableRow, error) {
	row := &TableRow{attrs: append([]xml.Attr{}, start.Attr...)}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch tk := tok.(type) {
		case xml.StartElement:
			switch tk.Name.Local {
			case "trPr":
				n, err := decodeRaw(d, tk)
				if err != nil {
					return nil, err
				}
				row.props = n
			case "tc":
				cell, err := parseCell(d, tk)
				if err != nil {
					return nil, err
				}
				row.cells = append(row.cells, cell)
			default:
				n, err := decodeRaw(d, tk)
				if err != nil {
					return nil, err
				}
				row.extra = append(row.extra, n)
			}
		case xml.EndElement:
			return row, nil
		}
	}
}

func parseCell(d *xml.Decoder, start xml.StartElement) (*TableCell, error) {
	cell := &TableCell{attrs: append([]xml.Attr{}, start.Attr...)}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch tk := tok.(type) {
		case xml.StartElement:
			switch tk.Name.Local {
			case "tcPr":
				n, err := decodeRaw(d, tk)
				if err != nil {
					return nil, err
				}
				cell.props = n
			case "p":
				p, err := parseParagraph(d, tk)
				if err != nil {
					return nil, err
				}
				cell.items = append(cell.items, p)
			case "tbl":
				nested, err := parseTable(d, tk)
				if err != nil {
					return nil, err
				}
				cell.items = append(cell.items, nested)
			default:
				n, err := decodeRaw(d, tk)
				if err != nil {
					return nil, err
				}
				cell.items = append(cell.items, n)
			}
		case xml.EndElement:
			return cell, nil
		}
	}
}

func (t *Table) encodeElement(e *xml.Encoder, prefixes map[string]string) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:tbl"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if t.props != nil {
		if err := t.props.encode(e, prefixes); err != nil {
			return err
		}
	}
	if t.grid != nil {
		if err := t.grid.encode(e, prefixes); err != nil {
			return err
		}
	}
	for _, row := range t.rows {
		if err := row.encode(e, prefixes); err != nil {
			return err
		}
	}
	for _, n := range t.extra {
		if err := n.encode(e, prefixes); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (row *TableRow) encode(e *xml.Encoder, prefixes map[string]string) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:tr"}}
	for _, a := range row.attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: prefixedAttrName(a.Name, prefixes)},
			Value: a.Value,
		})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if !row.props.isEmpty() {
		if err := row.props.encode(e, prefixes); err != nil {
			return err
		}
	}
	for _, cell := range row.cells {
		if err := cell.encode(e, prefixes); err != nil {
			return err
		}
	}
	for _, n := range row.extra {
		if err := n.encode(e, prefixes); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (c *TableCell) encode(e *xml.Encoder, prefixes map[string]string) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:tc"}}
	for _, a := range c.attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: prefixedAttrName(a.Name, prefixes)},
			Value: a.Value,
		})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if !c.props.isEmpty() {
		if err := c.props.encode(e, prefixes); err != nil {
			return err
		}
	}
	items := c.items
	if !hasBlockElement(items) {
		items = append(items, &Paragraph{})
	}
	for _, item := range items {
		if err := item.encodeElement(e, prefixes); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// hasBlockElement reports whether items contains a paragraph or table; a
// table cell must end with at least one block element to stay valid.
func hasBlockElement(items []BodyElement) bool {
	for _, item := range items {
		switch item.(type) {
		case *Paragraph, *Table:
			return true
		}
	}
	return false
}

// Rows returns the table's rows in order.
func (t *Table) Rows() []*TableRow {
	return t.rows
}

// ColumnCount returns the number of grid columns, falling back to the first
// row's cell count when the table has no grid.
func (t *Table) ColumnCount() int {
	if t.grid != nil {
		n := 0
		for _, c := range t.grid.children() {
			if c.name.Local == "gridCol" {
				n++
			}
		}
		if n > 0 {
			return n
		}
	}
	if len(t.rows) > 0 {
		return len(t.rows[0].cells)
	}
	return 0
}

// Cell returns the cell at (row, col), or nil when out of range.
func (t *Table) Cell(row, col int) *TableCell {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	r := t.rows[row]
	if col < 0 || col >= len(r.cells) {
		return nil
	}
	return r.cells[col]
}

// RemoveRow deletes the row at index i.
func (t *Table) RemoveRow(i int) {
	if i < 0 || i >= len(t.rows) {
		return
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
}

// AddRow appends a row with one cell per grid column, each holding a single
// empty paragraph. Declared grid widths are copied onto the new cells.
func (t *Table) AddRow() *TableRow {
	row := &TableRow{}
	cols := t.ColumnCount()
	if cols == 0 {
		cols = 1
	}
	var widths []*int
	if t.grid != nil {
		for _, c := range t.grid.children() {
			if c.name.Local == "gridCol" {
				widths = append(widths, c.intAttr("w"))
			}
		}
	}
	for i := 0; i < cols; i++ {
		cell := &TableCell{items: []BodyElement{&Paragraph{}}}
		if i < len(widths) && widths[i] != nil {
			cell.SetWidth(*widths[i])
		}
		row.cells = append(row.cells, cell)
	}
	t.rows = append(t.rows, row)
	return row
}

func (t *Table) ensureProps() *rawNode {
	if t.props == nil {
		t.props = newNode("tblPr")
	}
	return t.props
}

// StyleID returns the table style reference, or nil.
func (t *Table) StyleID() *string {
	v := t.props.child("tblStyle").attr("val")
	if v == "" {
		return nil
	}
	return &v
}

// SetStyleID points the table at a style definition, e.g. "TableGrid".
func (t *Table) SetStyleID(id string) {
	t.ensureProps().ensureChild("tblStyle", tblStyleSuccessors...).setAttr("val", id)
}

// Alignment returns the table's w:jc value, or nil.
func (t *Table) Alignment() *string {
	v := t.props.child("jc").attr("val")
	if v == "" {
		return nil
	}
	return &v
}

func (t *Table) SetAlignment(val string) {
	t.ensureProps().ensureChild("jc", tblJcSuccessors...).setAttr("val", val)
}

// SetAllBorders replaces the table's border set with single lines on all six
// edges (four outer plus both inside edges). sz is in eighths of a point,
// color an RRGGBB hex string.
func (t *Table) SetAllBorders(sz int, color string) {
	props := t.ensureProps()
	props.removeChild("tblBorders")
	borders := newNode("tblBorders")
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		borders.content = append(borders.content, borderEdge(edge, sz, color))
	}
	props.insertChild(borders, tblBordersSuccessors...)
}

func borderEdge(edge string, sz int, color string) *rawNode {
	el := newNode(edge)
	el.setAttr("val", "single")
	el.setAttr("sz", strconv.Itoa(sz))
	el.setAttr("space", "0")
	el.setAttr("color", color)
	return el
}

func (row *TableRow) ensureProps() *rawNode {
	if row.props == nil {
		row.props = newNode("trPr")
	}
	return row.props
}

// Cells returns the row's cells in order.
func (row *TableRow) Cells() []*TableCell {
	return row.cells
}

// Height returns the row's declared height in twips, or nil.
func (row *TableRow) Height() *int {
	return row.props.child("trHeight").intAttr("val")
}

// SetHeight declares the row height in twips with the given rule
// ("atLeast", "exact" or "auto").
func (row *TableRow) SetHeight(twips int, rule string) {
	h := row.ensureProps().ensureChild("trHeight", trHeightSuccessors...)
	h.setAttr("val", strconv.Itoa(twips))
	h.setAttr("hRule", rule)
}

func (c *TableCell) ensureProps() *rawNode {
	if c.props == nil {
		c.props = newNode("tcPr")
	}
	return c.props
}

// Paragraphs returns the cell's paragraphs in order.
func (c *TableCell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, item := range c.items {
		if p, ok := item.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Text returns the cell's paragraph text joined with newlines.
func (c *TableCell) Text() string {
	return bodyText(c.items)
}

// SetText replaces the cell's content with a single paragraph holding text.
func (c *TableCell) SetText(text string) {
	p := &Paragraph{}
	p.AddRun(text)
	c.items = []BodyElement{p}
}

// Width returns the cell's declared width attribute as an integer, or nil
// when absent or non-numeric.
func (c *TableCell) Width() *int {
	return c.props.child("tcW").intAttr("w")
}

// SetWidth declares the cell width in twips.
func (c *TableCell) SetWidth(twips int) {
	w := c.ensureProps().ensureChild("tcW", tcWSuccessors...)
	w.setAttr("w", strconv.Itoa(twips))
	w.setAttr("type", "dxa")
}

// SetMargins sets all four cell margins, in twips.
func (c *TableCell) SetMargins(top, left, bottom, right int) {
	props := c.ensureProps()
	props.removeChild("tcMar")
	mar := newNode("tcMar")
	for _, side := range []struct {
		name string
		val  int
	}{{"top", top}, {"left", left}, {"bottom", bottom}, {"right", right}} {
		el := newNode(side.name)
		el.setAttr("w", strconv.Itoa(side.val))
		el.setAttr("type", "dxa")
		mar.content = append(mar.content, el)
	}
	props.insertChild(mar, tcMarSuccessors...)
}

// SetAllBorders replaces the cell's border set with single lines on all four
// edges. sz is in eighths of a point, color an RRGGBB hex string.
func (c *TableCell) SetAllBorders(sz int, color string) {
	props := c.ensureProps()
	props.removeChild("tcBorders")
	borders := newNode("tcBorders")
	for _, edge := range []string{"top", "left", "bottom", "right"} {
		borders.content = append(borders.content, borderEdge(edge, sz, color))
	}
	props.insertChild(borders, tcBordersSuccessors...)
}

// SetVerticalAlignment sets the cell's vertical content alignment ("top",
// "center" or "bottom").
func (c *TableCell) SetVerticalAlignment(val string) {
	c.ensureProps().ensureChild("vAlign", vAlignSuccessors...).setAttr("val", val)
}
