package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func saveAndReopen(t *testing.T, doc *Document) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.docx")
	if err := doc.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	return out
}

func TestNewSaveOpenRoundTrip(t *testing.T) {
	t.Parallel()

	doc := New()
	doc.AddParagraph("First paragraph")
	doc.AddParagraph("Second paragraph")
	tbl := doc.AddTable(2, 3)
	tbl.Cell(0, 0).SetText("Header A")
	tbl.Cell(1, 2).SetText("Data C")

	out := saveAndReopen(t, doc)

	paras := out.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("reopened document has %d paragraphs, want 2", len(paras))
	}
	if got := paras[0].Text(); got != "First paragraph" {
		t.Fatalf("paragraph text = %q", got)
	}
	tables := out.Tables()
	if len(tables) != 1 {
		t.Fatalf("reopened document has %d tables, want 1", len(tables))
	}
	if got := tables[0].ColumnCount(); got != 3 {
		t.Fatalf("ColumnCount = %d, want 3", got)
	}
	if got := tables[0].Cell(0, 0).Text(); got != "Header A" {
		t.Fatalf("cell (0,0) = %q", got)
	}
	if got := tables[0].Cell(1, 2).Text(); got != "Data C" {
		t.Fatalf("cell (1,2) = %q", got)
	}
}

func TestRoundTripPreservesFormatting(t *testing.T) {
	t.Parallel()

	doc := New()
	p := doc.AddParagraph("Styled text")
	p.SetAlignment("center")
	p.SetStyleID("Heading1")
	r := p.Runs()[0]
	r.SetFontName("Garamond")
	r.SetSize(11)
	r.SetBold(true)
	r.SetColor("990000")

	out := saveAndReopen(t, doc)

	got := out.Paragraphs()[0]
	if a := got.Alignment(); a == nil || *a != "center" {
		t.Fatalf("alignment = %v", a)
	}
	if s := got.StyleID(); s == nil || *s != "Heading1" {
		t.Fatalf("style = %v", s)
	}
	gr := got.Runs()[0]
	if n := gr.FontName(); n == nil || *n != "Garamond" {
		t.Fatalf("font = %v", n)
	}
	if sz := gr.Size(); sz == nil || *sz != 11 {
		t.Fatalf("size = %v", sz)
	}
	if b := gr.Bold(); b == nil || !*b {
		t.Fatalf("bold = %v", b)
	}
	if c := gr.Color(); c == nil || *c != "990000" {
		t.Fatalf("color = %v", c)
	}
}

func TestRoundTripPreservesSpacingAndIndent(t *testing.T) {
	t.Parallel()

	before, line, left := 240, 360, 720
	doc := New()
	p := doc.AddParagraph("Spaced")
	p.SetSpacing(ParagraphSpacing{Before: &before, Line: &line, Rule: "auto"})
	p.SetIndent(ParagraphIndent{Left: &left})

	out := saveAndReopen(t, doc)

	sp := out.Paragraphs()[0].Spacing()
	if sp.Before == nil || *sp.Before != 240 {
		t.Fatalf("spacing before = %v", sp.Before)
	}
	if sp.After != nil {
		t.Fatalf("spacing after = %v, want nil", *sp.After)
	}
	if sp.Line == nil || *sp.Line != 360 || sp.Rule != "auto" {
		t.Fatalf("spacing line = %v rule %q", sp.Line, sp.Rule)
	}
	in := out.Paragraphs()[0].Indent()
	if in.Left == nil || *in.Left != 720 {
		t.Fatalf("indent left = %v", in.Left)
	}
}

func TestRoundTripPreservesTableProperties(t *testing.T) {
	t.Parallel()

	doc := New()
	tbl := doc.AddTable(2, 2)
	tbl.SetStyleID("TableGrid")
	tbl.SetAlignment("center")
	tbl.SetAllBorders(8, "000000")
	tbl.Rows()[0].SetHeight(400, "atLeast")
	cell := tbl.Cell(0, 0)
	cell.SetText("v")
	cell.SetWidth(2400)
	cell.SetMargins(36, 36, 36, 36)
	cell.SetAllBorders(8, "000000")
	cell.SetVerticalAlignment("center")

	out := saveAndReopen(t, doc)

	gt := out.Tables()[0]
	if s := gt.StyleID(); s == nil || *s != "TableGrid" {
		t.Fatalf("table style = %v", s)
	}
	if a := gt.Alignment(); a == nil || *a != "center" {
		t.Fatalf("table alignment = %v", a)
	}
	if h := gt.Rows()[0].Height(); h == nil || *h != 400 {
		t.Fatalf("row height = %v", h)
	}
	if w := gt.Cell(0, 0).Width(); w == nil || *w != 2400 {
		t.Fatalf("cell width = %v", w)
	}
	if w := gt.Cell(0, 1).Width(); w != nil {
		t.Fatalf("cell (0,1) width = %v, want undeclared", *w)
	}
}

func TestSaveCarriesUnparsedParts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.docx")
	doc := New()
	doc.AddParagraph("body")
	if err := doc.Save(src); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Repack with an extra part the model does not interpret.
	styles := []byte(`<?xml version="1.0"?><w:styles xmlns:w="` + nsW + `"/>`)
	withExtra := filepath.Join(dir, "extra.docx")
	repackWith(t, src, withExtra, "word/styles.xml", styles)

	opened, err := Open(withExtra)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	opened.AddParagraph("appended")
	resaved := filepath.Join(dir, "resaved.docx")
	if err := opened.Save(resaved); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got := readZipPart(t, resaved, "word/styles.xml")
	if !bytes.Equal(got, styles) {
		t.Fatalf("styles part altered:\n got %q\nwant %q", got, styles)
	}
}

func TestSaveFailureLeavesNoOutput(t *testing.T) {
	t.Parallel()

	doc := New()
	doc.AddParagraph("body")
	missingDir := filepath.Join(t.TempDir(), "absent")
	target := filepath.Join(missingDir, "out.docx")

	if err := doc.Save(target); err == nil {
		t.Fatal("save into a missing directory succeeded")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("failed save left output behind: %v", err)
	}
}

func TestOpenRejectsNonDocx(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("Open accepted a non-zip file")
	}
}

func TestOpenRejectsZipWithoutDocumentPart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/other.xml")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := w.Write([]byte("<x/>")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	if _, err := Open(path); err == nil || !strings.Contains(err.Error(), documentPart) {
		t.Fatalf("Open err = %v, want missing %s", err, documentPart)
	}
}

// repackWith copies a .docx adding one extra part.
func repackWith(t *testing.T, src, dst, name string, data []byte) {
	t.Helper()
	zr, err := zip.OpenReader(src)
	if err != nil {
		t.Fatalf("open src: %v", err)
	}
	defer zr.Close()

	out, err := os.Create(dst)
	if err != nil {
		t.Fatalf("create dst: %v", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part: %v", err)
		}
		w, err := zw.Create(f.Name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := io.Copy(w, rc); err != nil {
			t.Fatalf("copy part: %v", err)
		}
		rc.Close()
	}
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("create extra part: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write extra part: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}

func readZipPart(t *testing.T, path, name string) []byte {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part: %v", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		return data
	}
	t.Fatalf("part %s not found in %s", name, path)
	return nil
}
