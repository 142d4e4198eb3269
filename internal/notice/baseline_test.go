package notice

import (
	"testing"

	"noticegen-web/internal/docx"
)

func intPtr(n int) *int { return &n }

// addAccountsTable appends the 3-column header table the builder targets,
// with dataRows empty rows under the header.
func addAccountsTable(doc *docx.Document, dataRows int) *docx.Table {
	tbl := doc.AddTable(1+dataRows, 3)
	tbl.Cell(0, 0).SetText("Account Number")
	tbl.Cell(0, 1).SetText("Account Name")
	tbl.Cell(0, 2).SetText("IFSC Code")
	return tbl
}

func TestExtractTemplateBaselineFonts(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	first := doc.AddParagraph("To the Branch Manager")
	first.Runs()[0].SetFontName("Garamond")
	second := doc.AddParagraph("ICICI BANK")
	second.Runs()[0].SetSize(11)

	base := ExtractTemplateBaseline(doc, "Bookman Old Style", 8)

	if base.FontName != "Garamond" {
		t.Fatalf("FontName = %q, want Garamond", base.FontName)
	}
	// Size comes from a later paragraph than the name; both are captured
	// independently.
	if base.FontSize != 11 {
		t.Fatalf("FontSize = %d, want 11", base.FontSize)
	}
}

func TestExtractTemplateBaselineFallbacks(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("No declared fonts anywhere")

	base := ExtractTemplateBaseline(doc, "Bookman Old Style", 8)

	if base.FontName != "Bookman Old Style" || base.FontSize != 8 {
		t.Fatalf("fallbacks not applied: %q/%d", base.FontName, base.FontSize)
	}
	if base.HeaderWidths != nil || base.HeaderHeight != nil {
		t.Fatalf("header geometry captured without an accounts table")
	}
}

func TestExtractTemplateBaselineHeaderGeometry(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	tbl := addAccountsTable(doc, 1)
	header := tbl.Rows()[0]
	header.Cells()[0].SetWidth(2400)
	header.Cells()[1].SetWidth(4800)
	// third column left undeclared
	header.SetHeight(400, "atLeast")
	header.Cells()[0].Paragraphs()[0].SetSpacing(docx.ParagraphSpacing{
		Before: intPtr(60),
		After:  intPtr(120),
	})

	base := ExtractTemplateBaseline(doc, "Bookman Old Style", 8)

	if len(base.HeaderWidths) != 3 {
		t.Fatalf("HeaderWidths has %d entries, want 3", len(base.HeaderWidths))
	}
	if base.HeaderWidths[0] == nil || *base.HeaderWidths[0] != 2400 {
		t.Fatalf("HeaderWidths[0] = %v, want 2400", base.HeaderWidths[0])
	}
	if base.HeaderWidths[1] == nil || *base.HeaderWidths[1] != 4800 {
		t.Fatalf("HeaderWidths[1] = %v, want 4800", base.HeaderWidths[1])
	}
	if base.HeaderWidths[2] != nil {
		t.Fatalf("HeaderWidths[2] = %v, want nil for undeclared width", *base.HeaderWidths[2])
	}
	if base.HeaderHeight == nil || *base.HeaderHeight != 400 {
		t.Fatalf("HeaderHeight = %v, want 400", base.HeaderHeight)
	}
	if base.HeaderSpacing.Before == nil || *base.HeaderSpacing.Before != 60 {
		t.Fatalf("HeaderSpacing.Before = %v, want 60", base.HeaderSpacing.Before)
	}
	if base.HeaderSpacing.After == nil || *base.HeaderSpacing.After != 120 {
		t.Fatalf("HeaderSpacing.After = %v, want 120", base.HeaderSpacing.After)
	}
}

func TestExtractTemplateBaselineIgnoresOtherTables(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	// 3 columns but not an accounts header
	other := doc.AddTable(1, 3)
	other.Cell(0, 0).SetText("Date")
	other.Cell(0, 1).SetText("Reference")
	other.Cell(0, 2).SetText("Amount")
	other.Rows()[0].SetHeight(999, "atLeast")
	// 2-column table mentioning the keywords
	two := doc.AddTable(1, 2)
	two.Cell(0, 0).SetText("Account")
	two.Cell(0, 1).SetText("IFSC")

	tbl := addAccountsTable(doc, 0)
	tbl.Rows()[0].SetHeight(360, "atLeast")

	base := ExtractTemplateBaseline(doc, "Bookman Old Style", 8)

	if base.HeaderHeight == nil || *base.HeaderHeight != 360 {
		t.Fatalf("HeaderHeight = %v, want 360 from the accounts table", base.HeaderHeight)
	}
}

func TestExtractNodalBaseline(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("Forward this to your Nodal Officer")
	styled := doc.AddParagraph("ICICI BANK")
	styled.SetStyleID("Heading2")
	styled.SetAlignment("right")
	styled.SetSpacing(docx.ParagraphSpacing{Before: intPtr(240)})
	styled.SetIndent(docx.ParagraphIndent{Left: intPtr(720)})
	r := styled.Runs()[0]
	r.SetFontName("Garamond")
	r.SetSize(12)
	r.SetBold(true)

	base := ExtractNodalBaseline(doc, "Bookman Old Style", 8)

	if base.StyleID == nil || *base.StyleID != "Heading2" {
		t.Fatalf("StyleID = %v, want Heading2", base.StyleID)
	}
	if base.Alignment == nil || *base.Alignment != "right" {
		t.Fatalf("Alignment = %v, want right", base.Alignment)
	}
	if base.Spacing.Before == nil || *base.Spacing.Before != 240 {
		t.Fatalf("Spacing.Before = %v, want 240", base.Spacing.Before)
	}
	if base.Indent.Left == nil || *base.Indent.Left != 720 {
		t.Fatalf("Indent.Left = %v, want 720", base.Indent.Left)
	}
	if base.FontName != "Garamond" || base.FontSize != 12 {
		t.Fatalf("font = %q/%d, want Garamond/12", base.FontName, base.FontSize)
	}
	if base.Bold == nil || !*base.Bold {
		t.Fatalf("Bold = %v, want true", base.Bold)
	}
}

func TestExtractNodalBaselineAbsent(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("No officer mentioned here")

	base := ExtractNodalBaseline(doc, "Bookman Old Style", 8)

	if base.StyleID != nil || base.Alignment != nil || base.Bold != nil {
		t.Fatalf("captured style from a document without the label: %+v", base)
	}
	if base.FontName != "Bookman Old Style" || base.FontSize != 8 {
		t.Fatalf("fallback font = %q/%d", base.FontName, base.FontSize)
	}
}

func TestExtractNodalBaselineLabelIsLastParagraph(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("Nodal Officer")

	base := ExtractNodalBaseline(doc, "Bookman Old Style", 8)

	if base.StyleID != nil || base.Alignment != nil {
		t.Fatalf("captured style with no following paragraph: %+v", base)
	}
}
