package notice

import (
	"strings"

	"noticegen-web/internal/docx"
)

// Defaults applied by Options.withDefaults when a field is unset.
const (
	DefaultPlaceholder = "ICICI BANK"
	DefaultFontName    = "Bookman Old Style"
	DefaultFontSize    = 8
)

const (
	// Border weight in eighths of a point, drawn on tables and data cells.
	tableBorderSize  = 8
	tableBorderColor = "000000"
	// Cell padding in twips on all four sides.
	cellMarginTwips = 36
	// Style applied to the regenerated accounts table. Borders are still
	// drawn explicitly since not every grid style renders them.
	gridTableStyle = "TableGrid"

	nodalLabel = "nodal officer"
)

// Options configures how a template is turned into a notice.
type Options struct {
	// Placeholder is the substring replaced with the bank name.
	Placeholder string
	Tone        Tone
	// FontName and FontSize are fallbacks used when the template does not
	// declare its own.
	FontName string
	FontSize int
}

func (o Options) withDefaults() Options {
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	if o.Tone == "" {
		o.Tone = ToneFormal
	}
	if o.FontName == "" {
		o.FontName = DefaultFontName
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	return o
}

// BuildNotice mutates an opened template document into a branch notice:
// tone styling, placeholder replacement, the accounts table rebuilt with one
// row per record, and "Nodal Officer" adjacent paragraphs/cells rewritten to
// the bank name in the template's own style. The caller saves the document.
func BuildNotice(doc *docx.Document, bankName string, records []AccountRecord, opts Options) {
	opts = opts.withDefaults()
	base := ExtractTemplateBaseline(doc, opts.FontName, opts.FontSize)

	applyTone(doc, resolveTone(doc, opts.Tone))

	replacePlaceholder(doc, opts.Placeholder, bankName)
	fillAccountsTable(doc, records, base)

	nodal := ExtractNodalBaseline(doc, base.FontName, base.FontSize)
	rewriteNodalParagraphs(doc, bankName, nodal)
	rewriteNodalCells(doc, bankName, nodal)
}

// replacePlaceholder substitutes every occurrence of the placeholder in body
// paragraphs and table cell paragraphs. Touched paragraphs collapse to a
// single plain run; paragraphs without the placeholder keep their runs.
func replacePlaceholder(doc *docx.Document, placeholder, bankName string) {
	for _, p := range doc.Paragraphs() {
		if strings.Contains(p.Text(), placeholder) {
			p.SetText(strings.ReplaceAll(p.Text(), placeholder, bankName))
		}
	}
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				for _, p := range cell.Paragraphs() {
					if strings.Contains(p.Text(), placeholder) {
						p.SetText(strings.ReplaceAll(p.Text(), placeholder, bankName))
					}
				}
			}
		}
	}
}

// fillAccountsTable rebuilds the accounts table: header restyled from the
// baseline, all data rows replaced with one row per record. Missing table is
// not an error — the notice simply carries no table.
func fillAccountsTable(doc *docx.Document, records []AccountRecord, base TemplateBaseline) {
	table := findAccountsTable(doc)
	if table == nil {
		return
	}

	rowHeight := (base.FontSize + 6) * 20
	if base.HeaderHeight != nil {
		rowHeight = *base.HeaderHeight
	}

	header := table.Rows()[0]
	for _, cell := range header.Cells() {
		applyCellStyle(cell, base)
		for _, p := range cell.Paragraphs() {
			for _, r := range p.Runs() {
				r.SetBold(true)
			}
		}
	}
	header.SetHeight(rowHeight, "atLeast")

	for len(table.Rows()) > 1 {
		table.RemoveRow(len(table.Rows()) - 1)
	}

	for _, rec := range records {
		row := table.AddRow()
		cells := row.Cells()
		cells[0].SetText(rec.AccountNo)
		cells[1].SetText(rec.AccountName)
		cells[2].SetText(rec.RoutingCode)
		for i, cell := range cells {
			applyCellStyle(cell, base)
			cell.SetAllBorders(tableBorderSize, tableBorderColor)
			if i < len(base.HeaderWidths) && base.HeaderWidths[i] != nil {
				cell.SetWidth(*base.HeaderWidths[i])
			}
		}
		row.SetHeight(rowHeight, "atLeast")
	}

	table.SetStyleID(gridTableStyle)
	table.SetAllBorders(tableBorderSize, tableBorderColor)
}

// applyCellStyle sets the baseline font and paragraph spacing on every
// paragraph of the cell and pads it with the standard margins.
func applyCellStyle(cell *docx.TableCell, base TemplateBaseline) {
	for _, p := range cell.Paragraphs() {
		for _, r := range p.Runs() {
			r.SetFontName(base.FontName)
			r.SetSize(base.FontSize)
		}
		p.SetSpacing(base.HeaderSpacing)
	}
	cell.SetMargins(cellMarginTwips, cellMarginTwips, cellMarginTwips, cellMarginTwips)
}

// rewriteNodalParagraphs overwrites the paragraph following each body
// paragraph labeled "nodal officer" with the bank name in the captured
// style.
func rewriteNodalParagraphs(doc *docx.Document, bankName string, base NodalBaseline) {
	paras := doc.Paragraphs()
	for i, p := range paras {
		if strings.Contains(strings.ToLower(p.Text()), nodalLabel) && i+1 < len(paras) {
			applyNodalBaseline(paras[i+1], bankName, base)
		}
	}
}

// rewriteNodalCells does the same for table layouts: the cell directly
// below a "nodal officer" cell, in the same column, gets every paragraph
// rewritten.
func rewriteNodalCells(doc *docx.Document, bankName string, base NodalBaseline) {
	for _, table := range doc.Tables() {
		rows := table.Rows()
		for rIdx, row := range rows {
			for cIdx, cell := range row.Cells() {
				if !strings.Contains(strings.ToLower(cell.Text()), nodalLabel) {
					continue
				}
				if rIdx+1 >= len(rows) {
					continue
				}
				target := table.Cell(rIdx+1, cIdx)
				if target == nil {
					continue
				}
				for _, p := range target.Paragraphs() {
					applyNodalBaseline(p, bankName, base)
				}
			}
		}
	}
}

// applyNodalBaseline replaces the paragraph's text and reapplies the
// captured style, alignment, spacing, indent and font.
func applyNodalBaseline(p *docx.Paragraph, text string, base NodalBaseline) {
	p.SetText(text)
	if base.StyleID != nil {
		p.SetStyleID(*base.StyleID)
	}
	if base.Alignment != nil {
		p.SetAlignment(*base.Alignment)
	}
	p.SetSpacing(base.Spacing)
	p.SetIndent(base.Indent)
	for _, r := range p.Runs() {
		r.SetFontName(base.FontName)
		r.SetSize(base.FontSize)
		if base.Bold != nil {
			r.SetBold(*base.Bold)
		}
	}
}
