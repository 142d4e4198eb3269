package notice

import (
	"strings"

	"noticegen-web/internal/docx"
)

// TemplateBaseline carries the formatting captured from a template before
// any mutation: the document's leading font, and the accounts table header
// geometry when that table exists. Nil fields mean the template never
// declared the value and the builder must not apply it.
type TemplateBaseline struct {
	FontName      string
	FontSize      int
	HeaderWidths  []*int
	HeaderHeight  *int
	HeaderSpacing docx.ParagraphSpacing
}

// NodalBaseline is the style of the paragraph following the first
// "Nodal Officer" label, reapplied after that paragraph's text is replaced.
type NodalBaseline struct {
	StyleID   *string
	Alignment *string
	Spacing   docx.ParagraphSpacing
	Indent    docx.ParagraphIndent
	FontName  string
	FontSize  int
	Bold      *bool
}

// ExtractTemplateBaseline scans body paragraphs for the first declared run
// font name and size (independently; they may come from different runs),
// falling back to the given defaults, and captures the accounts table's
// header cell widths, row height and first-cell paragraph spacing when the
// table is present.
func ExtractTemplateBaseline(doc *docx.Document, fallbackFont string, fallbackSize int) TemplateBaseline {
	base := TemplateBaseline{}
	for _, p := range doc.Paragraphs() {
		for _, r := range p.Runs() {
			if base.FontName == "" {
				if name := r.FontName(); name != nil && *name != "" {
					base.FontName = *name
				}
			}
			if base.FontSize == 0 {
				if size := r.Size(); size != nil {
					base.FontSize = *size
				}
			}
			if base.FontName != "" && base.FontSize != 0 {
				break
			}
		}
		if base.FontName != "" && base.FontSize != 0 {
			break
		}
	}
	if base.FontName == "" {
		base.FontName = fallbackFont
	}
	if base.FontSize == 0 {
		base.FontSize = fallbackSize
	}

	if table := findAccountsTable(doc); table != nil {
		header := table.Rows()[0]
		for _, cell := range header.Cells() {
			base.HeaderWidths = append(base.HeaderWidths, cell.Width())
		}
		base.HeaderHeight = header.Height()
		if cells := header.Cells(); len(cells) > 0 {
			if paras := cells[0].Paragraphs(); len(paras) > 0 {
				base.HeaderSpacing = paras[0].Spacing()
			}
		}
	}
	return base
}

// ExtractNodalBaseline captures the style of the paragraph following the
// first body paragraph containing "nodal officer". Font name and size fall
// back to the given defaults; the remaining fields stay nil when absent, in
// which case the builder leaves them untouched.
func ExtractNodalBaseline(doc *docx.Document, fallbackFont string, fallbackSize int) NodalBaseline {
	base := NodalBaseline{}
	paras := doc.Paragraphs()
	for i, p := range paras {
		if !strings.Contains(strings.ToLower(p.Text()), "nodal officer") {
			continue
		}
		if i+1 < len(paras) {
			next := paras[i+1]
			base.StyleID = next.StyleID()
			base.Alignment = next.Alignment()
			base.Spacing = next.Spacing()
			base.Indent = next.Indent()
			for _, r := range next.Runs() {
				if base.FontName == "" {
					if name := r.FontName(); name != nil && *name != "" {
						base.FontName = *name
					}
				}
				if base.FontSize == 0 {
					if size := r.Size(); size != nil {
						base.FontSize = *size
					}
				}
				if base.Bold == nil {
					base.Bold = r.Bold()
				}
			}
		}
		break
	}
	if base.FontName == "" {
		base.FontName = fallbackFont
	}
	if base.FontSize == 0 {
		base.FontSize = fallbackSize
	}
	return base
}

// findAccountsTable returns the first table with exactly 3 columns whose
// header row text mentions both "account" and "ifsc", or nil.
func findAccountsTable(doc *docx.Document) *docx.Table {
	for _, table := range doc.Tables() {
		if table.ColumnCount() != 3 {
			continue
		}
		rows := table.Rows()
		if len(rows) == 0 {
			continue
		}
		var b strings.Builder
		for _, cell := range rows[0].Cells() {
			b.WriteString(cell.Text())
		}
		header := strings.ToLower(b.String())
		if strings.Contains(header, "account") && strings.Contains(header, "ifsc") {
			return table
		}
	}
	return nil
}
