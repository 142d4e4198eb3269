package notice

import (
	"strings"
	"testing"

	"noticegen-web/internal/docx"
)

var testRecords = []AccountRecord{
	{AccountNo: "1001", AccountName: "Asha Verma", RoutingCode: "SBIN0001234"},
	{AccountNo: "1002", AccountName: "Rohit Shah", RoutingCode: "SBIN0001234"},
}

func TestBuildNoticeReplacesPlaceholder(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("To the Manager, ICICI BANK, Main Branch")
	doc.AddParagraph("ICICI BANK is requested twice: ICICI BANK")
	tbl := doc.AddTable(1, 2)
	tbl.Cell(0, 0).SetText("Bank")
	tbl.Cell(0, 1).SetText("ICICI BANK")

	BuildNotice(doc, "STATE BANK OF INDIA", testRecords, Options{})

	paras := doc.Paragraphs()
	if got := paras[0].Text(); got != "To the Manager, STATE BANK OF INDIA, Main Branch" {
		t.Fatalf("paragraph text = %q", got)
	}
	if got := paras[1].Text(); got != "STATE BANK OF INDIA is requested twice: STATE BANK OF INDIA" {
		t.Fatalf("multiple occurrences not all replaced: %q", got)
	}
	if got := tbl.Cell(0, 1).Text(); got != "STATE BANK OF INDIA" {
		t.Fatalf("cell text = %q", got)
	}
}

func TestBuildNoticeCustomPlaceholder(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("Dear {{BANK}}, please verify")

	BuildNotice(doc, "HDFC BANK", nil, Options{Placeholder: "{{BANK}}"})

	if got := doc.Paragraphs()[0].Text(); got != "Dear HDFC BANK, please verify" {
		t.Fatalf("paragraph text = %q", got)
	}
}

func TestBuildNoticeFillsAccountsTable(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("Accounts held with ICICI BANK")
	tbl := addAccountsTable(doc, 2)
	header := tbl.Rows()[0]
	header.Cells()[0].SetWidth(2400)
	header.Cells()[1].SetWidth(4800)
	header.Cells()[2].SetWidth(2400)
	header.SetHeight(400, "atLeast")
	tbl.Cell(1, 0).SetText("stale")
	tbl.Cell(2, 0).SetText("rows")

	BuildNotice(doc, "STATE BANK OF INDIA", testRecords, Options{})

	rows := tbl.Rows()
	if len(rows) != 3 {
		t.Fatalf("table has %d rows, want header + 2 data rows", len(rows))
	}
	if got := tbl.Cell(0, 0).Text(); got != "Account Number" {
		t.Fatalf("header cell rewritten: %q", got)
	}
	wantCells := [][3]string{
		{"1001", "Asha Verma", "SBIN0001234"},
		{"1002", "Rohit Shah", "SBIN0001234"},
	}
	for i, want := range wantCells {
		for c := 0; c < 3; c++ {
			if got := tbl.Cell(i+1, c).Text(); got != want[c] {
				t.Fatalf("cell (%d,%d) = %q, want %q", i+1, c, got, want[c])
			}
		}
	}

	// Header runs go bold; data rows inherit the header geometry.
	for _, cell := range header.Cells() {
		for _, p := range cell.Paragraphs() {
			for _, r := range p.Runs() {
				if b := r.Bold(); b == nil || !*b {
					t.Fatalf("header run not bold")
				}
			}
		}
	}
	for i := 1; i < len(rows); i++ {
		if h := rows[i].Height(); h == nil || *h != 400 {
			t.Fatalf("data row %d height = %v, want 400", i, h)
		}
		if w := rows[i].Cells()[1].Width(); w == nil || *w != 4800 {
			t.Fatalf("data row %d middle width = %v, want 4800", i, w)
		}
	}

	if id := tbl.StyleID(); id == nil || *id != "TableGrid" {
		t.Fatalf("table style = %v, want TableGrid", id)
	}
	if a := tbl.Alignment(); a == nil || *a != "center" {
		t.Fatalf("table alignment = %v, want center", a)
	}
}

func TestBuildNoticeTableFontFromBaseline(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	lead := doc.AddParagraph("Notice issued by the bank")
	lead.Runs()[0].SetFontName("Garamond")
	lead.Runs()[0].SetSize(10)
	tbl := addAccountsTable(doc, 0)

	BuildNotice(doc, "STATE BANK OF INDIA", testRecords[:1], Options{})

	r := tbl.Cell(1, 0).Paragraphs()[0].Runs()[0]
	if name := r.FontName(); name == nil || *name != "Garamond" {
		t.Fatalf("data run font = %v, want Garamond from template", name)
	}
	if size := r.Size(); size == nil || *size != 10 {
		t.Fatalf("data run size = %v, want 10 from template", size)
	}
}

func TestBuildNoticeRowHeightFallback(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	tbl := addAccountsTable(doc, 0)

	BuildNotice(doc, "STATE BANK OF INDIA", testRecords[:1], Options{FontSize: 9})

	// (9 + 6)pt at 20 twips per point
	if h := tbl.Rows()[0].Height(); h == nil || *h != 300 {
		t.Fatalf("header height = %v, want 300", h)
	}
	if h := tbl.Rows()[1].Height(); h == nil || *h != 300 {
		t.Fatalf("data height = %v, want 300", h)
	}
}

func TestBuildNoticeWithoutAccountsTable(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("ICICI BANK notice without any table")

	BuildNotice(doc, "YES BANK", testRecords, Options{})

	if got := doc.Paragraphs()[0].Text(); !strings.Contains(got, "YES BANK") {
		t.Fatalf("placeholder not replaced without table: %q", got)
	}
}

func TestBuildNoticeNodalParagraph(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("Copy to the Nodal Officer:")
	target := doc.AddParagraph("Bank Name Here")
	target.Runs()[0].SetFontName("Garamond")
	target.Runs()[0].SetSize(12)
	target.Runs()[0].SetBold(true)

	BuildNotice(doc, "STATE BANK OF INDIA", nil, Options{})

	if got := target.Text(); got != "STATE BANK OF INDIA" {
		t.Fatalf("nodal paragraph text = %q", got)
	}
	r := target.Runs()[0]
	if name := r.FontName(); name == nil || *name != "Garamond" {
		t.Fatalf("nodal run font = %v, want Garamond", name)
	}
	if size := r.Size(); size == nil || *size != 12 {
		t.Fatalf("nodal run size = %v, want 12", size)
	}
	if b := r.Bold(); b == nil || !*b {
		t.Fatalf("nodal run lost bold")
	}
	// The baseline is captured after tone styling, so the reapplied
	// alignment is the tone's left.
	if a := target.Alignment(); a == nil || *a != "left" {
		t.Fatalf("nodal alignment = %v, want left", a)
	}
}

func TestBuildNoticeNodalCell(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	tbl := doc.AddTable(2, 2)
	tbl.Cell(0, 0).SetText("Branch Manager")
	tbl.Cell(0, 1).SetText("Nodal Officer")
	tbl.Cell(1, 0).SetText("Signature")
	tbl.Cell(1, 1).SetText("ICICI BANK")

	BuildNotice(doc, "CANARA BANK", nil, Options{})

	if got := tbl.Cell(1, 1).Text(); got != "CANARA BANK" {
		t.Fatalf("cell below nodal label = %q, want CANARA BANK", got)
	}
	if got := tbl.Cell(1, 0).Text(); got != "Signature" {
		t.Fatalf("adjacent column rewritten: %q", got)
	}
}

func TestBuildNoticeNodalLabelInLastRow(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	tbl := doc.AddTable(1, 2)
	tbl.Cell(0, 0).SetText("Nodal Officer")
	tbl.Cell(0, 1).SetText("unchanged")

	BuildNotice(doc, "CANARA BANK", nil, Options{})

	if got := tbl.Cell(0, 1).Text(); got != "unchanged" {
		t.Fatalf("label in last row mutated the table: %q", got)
	}
}

func TestBuildNoticeAutoToneUrgent(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	p := doc.AddParagraph("FINAL NOTICE regarding frozen accounts")

	BuildNotice(doc, "STATE BANK OF INDIA", nil, Options{Tone: ToneAuto})

	for _, r := range p.Runs() {
		if b := r.Bold(); b == nil || !*b {
			t.Fatalf("auto tone did not style the urgent paragraph")
		}
		if c := r.Color(); c == nil || *c != "990000" {
			t.Fatalf("auto tone color = %v, want 990000", c)
		}
	}
}
